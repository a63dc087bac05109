package models

import (
	"time"

	"gorm.io/gorm"
)

// Alumnus is one directory entry. A profile may exist without a platform
// account (imported from the association's records) — UserID is nil then.
type Alumnus struct {
	gorm.Model
	UserID *uint `json:"userId"`

	FirstName   string `json:"firstName" gorm:"not null"`
	LastName    string `json:"lastName" gorm:"not null"`
	Email       string `json:"email" gorm:"index"`
	PhotoURL    string `json:"photoUrl"`
	GradYear    int    `json:"gradYear" gorm:"index"`
	Degree      string `json:"degree"`
	Industry    string `json:"industry" gorm:"index"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
	IsPublic    *bool  `json:"isPublic" gorm:"default:true"`
	LinkedInURL string `json:"linkedInUrl"`

	Memberships []ClassGroupMember `json:"memberships,omitempty" gorm:"foreignKey:AlumnusID"`
}

// AlumnusInput binds create/update requests for a directory entry.
type AlumnusInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoUrl"`
	GradYear    int    `json:"gradYear" binding:"required,min=1900,max=2100"`
	Degree      string `json:"degree"`
	Industry    string `json:"industry"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Phone       string `json:"phone"`
	Bio         string `json:"bio"`
	IsPublic    *bool  `json:"isPublic"`
	LinkedInURL string `json:"linkedInUrl"`
}

// ClassGroup gathers alumni of one graduating class.
type ClassGroup struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	GradYear    int    `json:"gradYear" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`

	Members []ClassGroupMember `json:"members,omitempty" gorm:"foreignKey:ClassGroupID"`
}

// ClassGroupMember links an alumnus to a class group.
type ClassGroupMember struct {
	gorm.Model
	ClassGroupID uint      `json:"classGroupId" gorm:"uniqueIndex:idx_group_member;not null"`
	AlumnusID    uint      `json:"alumnusId" gorm:"uniqueIndex:idx_group_member;not null"`
	JoinedAt     time.Time `json:"joinedAt"`

	Alumnus *Alumnus `json:"alumnus,omitempty" gorm:"foreignKey:AlumnusID"`
}

// ClassGroupResponse is the list-view shape with an aggregated member count.
type ClassGroupResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	GradYear    int    `json:"gradYear"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
	MemberCount int64  `json:"memberCount"`
}
