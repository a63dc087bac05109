package models

import (
	"time"

	"gorm.io/gorm"
)

// RSVP status values.
const (
	RSVPGoing      = "going"
	RSVPInterested = "interested"
	RSVPDeclined   = "declined"
)

// Event is an association event (reunion, fundraiser, meetup).
type Event struct {
	gorm.Model
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	PhotoURL    string     `json:"photoUrl"`
	StartsAt    time.Time  `json:"startsAt" gorm:"index;not null"`
	EndsAt      *time.Time `json:"endsAt"`
	Capacity    int        `json:"capacity"`
	CreatedByID uint       `json:"createdById"`

	RSVPs []EventRSVP `json:"rsvps,omitempty" gorm:"foreignKey:EventID"`
}

// EventInput binds create/update requests for an event.
type EventInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	PhotoURL    string     `json:"photoUrl"`
	StartsAt    time.Time  `json:"startsAt" binding:"required"`
	EndsAt      *time.Time `json:"endsAt"`
	Capacity    int        `json:"capacity"`
}

// EventRSVP is one user's attendance answer for one event.
type EventRSVP struct {
	gorm.Model
	EventID uint   `json:"eventId" gorm:"uniqueIndex:idx_event_user;not null"`
	UserID  uint   `json:"userId" gorm:"uniqueIndex:idx_event_user;not null"`
	Status  string `json:"status" gorm:"size:16;not null"`
}

// Announcement is a post on the association's news board.
type Announcement struct {
	gorm.Model
	Title       string     `json:"title" gorm:"not null"`
	Body        string     `json:"body" gorm:"type:text;not null"`
	AuthorID    uint       `json:"authorId"`
	Pinned      bool       `json:"pinned" gorm:"index"`
	PublishedAt *time.Time `json:"publishedAt"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// AnnouncementInput binds create/update requests for an announcement.
type AnnouncementInput struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body" binding:"required"`
	Pinned bool   `json:"pinned"`
}
