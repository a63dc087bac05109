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

// ListAnnouncementsHandler returns announcements, pinned posts first,
// then newest first. Paginated.
func ListAnnouncementsHandler(c *gin.Context) {
	query := config.DB.Model(&models.Announcement{})

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count announcements"})
		return
	}

	var announcements []models.Announcement
	err := query.Preload("Author").
		Order("pinned desc, created_at desc").
		Scopes(Paginate(c)).
		Find(&announcements).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch announcements"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, announcements, totalRows))
}

// GetAnnouncementHandler returns a single announcement.
func GetAnnouncementHandler(c *gin.Context) {
	var announcement models.Announcement
	if err := config.DB.Preload("Author").First(&announcement, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch the announcement"})
		return
	}
	c.JSON(http.StatusOK, announcement)
}

// CreateAnnouncementHandler posts a new announcement (admin only).
func CreateAnnouncementHandler(c *gin.Context) {
	var input models.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement data: " + err.Error()})
		return
	}

	now := time.Now()
	announcement := models.Announcement{
		Title:       input.Title,
		Body:        input.Body,
		Pinned:      input.Pinned,
		PublishedAt: &now,
	}
	if userID, ok := c.Get("user_id"); ok {
		announcement.AuthorID = userID.(uint)
	}

	if err := config.DB.Create(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the announcement"})
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

// UpdateAnnouncementHandler edits an announcement (admin only).
func UpdateAnnouncementHandler(c *gin.Context) {
	var announcement models.Announcement
	if err := config.DB.First(&announcement, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Announcement not found"})
		return
	}

	var input models.AnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid announcement data: " + err.Error()})
		return
	}

	announcement.Title = input.Title
	announcement.Body = input.Body
	announcement.Pinned = input.Pinned

	if err := config.DB.Save(&announcement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the announcement"})
		return
	}

	c.JSON(http.StatusOK, announcement)
}

// DeleteAnnouncementHandler removes an announcement (admin only).
func DeleteAnnouncementHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.Announcement{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the announcement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted"})
}
