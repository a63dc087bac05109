package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/config"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// ListEventsHandler returns events, paginated, newest first. With
// ?upcoming=true only events that have not started yet are returned.
func ListEventsHandler(c *gin.Context) {
	query := config.DB.Model(&models.Event{})
	if c.Query("upcoming") == "true" {
		query = query.Where("starts_at > ?", time.Now())
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count events"})
		return
	}

	var events []models.Event
	if err := query.Order("starts_at asc").Scopes(Paginate(c)).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch events"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, events, totalRows))
}

// GetEventHandler returns one event with RSVP counts per status.
func GetEventHandler(c *gin.Context) {
	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch the event"})
		return
	}

	counts := map[string]int64{}
	for _, status := range []string{models.RSVPGoing, models.RSVPInterested, models.RSVPDeclined} {
		var n int64
		config.DB.Model(&models.EventRSVP{}).Where("event_id = ? AND status = ?", event.ID, status).Count(&n)
		counts[status] = n
	}

	c.JSON(http.StatusOK, gin.H{"event": event, "rsvpCounts": counts})
}

// CreateEventHandler adds an event (admin only).
func CreateEventHandler(c *gin.Context) {
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data: " + err.Error()})
		return
	}

	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		PhotoURL:    input.PhotoURL,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Capacity:    input.Capacity,
	}
	if userID, ok := c.Get("user_id"); ok {
		event.CreatedByID = userID.(uint)
	}

	if err := config.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// UpdateEventHandler edits an event (admin only).
func UpdateEventHandler(c *gin.Context) {
	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event data: " + err.Error()})
		return
	}

	event.Title = input.Title
	event.Description = input.Description
	event.Location = input.Location
	event.PhotoURL = input.PhotoURL
	event.StartsAt = input.StartsAt
	event.EndsAt = input.EndsAt
	event.Capacity = input.Capacity

	if err := config.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEventHandler removes an event and its RSVPs (admin only).
func DeleteEventHandler(c *gin.Context) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", c.Param("id")).Delete(&models.EventRSVP{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, c.Param("id")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// RSVPHandler upserts the caller's attendance answer for an event.
func RSVPHandler(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required,oneof=going interested declined"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be going, interested or declined"})
		return
	}

	var event models.Event
	if err := config.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if input.Status == models.RSVPGoing && event.Capacity > 0 {
		var going int64
		config.DB.Model(&models.EventRSVP{}).Where("event_id = ? AND status = ?", event.ID, models.RSVPGoing).Count(&going)
		if going >= int64(event.Capacity) {
			c.JSON(http.StatusConflict, gin.H{"error": "This event is at capacity"})
			return
		}
	}

	var rsvp models.EventRSVP
	err := config.DB.Where("event_id = ? AND user_id = ?", event.ID, userID).First(&rsvp).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rsvp = models.EventRSVP{EventID: event.ID, UserID: userID.(uint), Status: input.Status}
		if err := config.DB.Create(&rsvp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not record the RSVP"})
			return
		}
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not look up the RSVP"})
		return
	default:
		rsvp.Status = input.Status
		if err := config.DB.Save(&rsvp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the RSVP"})
			return
		}
	}

	c.JSON(http.StatusOK, rsvp)
}
