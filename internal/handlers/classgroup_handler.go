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

// ClassGroupInput binds create/update requests for a class group.
type ClassGroupInput struct {
	Name        string `json:"name" binding:"required"`
	GradYear    int    `json:"gradYear" binding:"required,min=1900,max=2100"`
	Description string `json:"description"`
	PhotoURL    string `json:"photoUrl"`
}

// ListClassGroupsHandler returns every class group with its member count.
func ListClassGroupsHandler(c *gin.Context) {
	var groups []models.ClassGroup
	if err := config.DB.Order("grad_year desc").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch class groups"})
		return
	}

	out := make([]models.ClassGroupResponse, 0, len(groups))
	for _, g := range groups {
		var count int64
		config.DB.Model(&models.ClassGroupMember{}).Where("class_group_id = ?", g.ID).Count(&count)
		out = append(out, models.ClassGroupResponse{
			ID:          g.ID,
			Name:        g.Name,
			GradYear:    g.GradYear,
			Description: g.Description,
			PhotoURL:    g.PhotoURL,
			MemberCount: count,
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetClassGroupHandler returns one group with its members preloaded.
func GetClassGroupHandler(c *gin.Context) {
	var group models.ClassGroup
	if err := config.DB.Preload("Members.Alumnus").First(&group, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Class group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch the class group"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateClassGroupHandler adds a class group (admin only).
func CreateClassGroupHandler(c *gin.Context) {
	var input ClassGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class group data: " + err.Error()})
		return
	}

	group := models.ClassGroup{
		Name:        input.Name,
		GradYear:    input.GradYear,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
	}
	if err := config.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the class group"})
		return
	}

	c.JSON(http.StatusCreated, group)
}

// UpdateClassGroupHandler edits a class group (admin only).
func UpdateClassGroupHandler(c *gin.Context) {
	var group models.ClassGroup
	if err := config.DB.First(&group, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class group not found"})
		return
	}

	var input ClassGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class group data: " + err.Error()})
		return
	}

	group.Name = input.Name
	group.GradYear = input.GradYear
	group.Description = input.Description
	group.PhotoURL = input.PhotoURL
	if err := config.DB.Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the class group"})
		return
	}

	c.JSON(http.StatusOK, group)
}

// DeleteClassGroupHandler removes a class group and its memberships
// (admin only).
func DeleteClassGroupHandler(c *gin.Context) {
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_group_id = ?", c.Param("id")).Delete(&models.ClassGroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ClassGroup{}, c.Param("id")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the class group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class group deleted"})
}

// JoinClassGroupHandler adds the caller's alumnus profile to a group.
func JoinClassGroupHandler(c *gin.Context) {
	alumnus, ok := alumnusForCaller(c)
	if !ok {
		return
	}

	var group models.ClassGroup
	if err := config.DB.First(&group, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class group not found"})
		return
	}

	member := models.ClassGroupMember{
		ClassGroupID: group.ID,
		AlumnusID:    alumnus.ID,
		JoinedAt:     time.Now(),
	}
	if err := config.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this class group"})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// LeaveClassGroupHandler removes the caller's membership.
func LeaveClassGroupHandler(c *gin.Context) {
	alumnus, ok := alumnusForCaller(c)
	if !ok {
		return
	}

	result := config.DB.
		Where("class_group_id = ? AND alumnus_id = ?", c.Param("id"), alumnus.ID).
		Delete(&models.ClassGroupMember{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not leave the class group"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this class group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left the class group"})
}

// alumnusForCaller resolves the signed-in user's directory profile,
// writing the error response itself when there is none.
func alumnusForCaller(c *gin.Context) (*models.Alumnus, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	var alumnus models.Alumnus
	if err := config.DB.Where("user_id = ?", userID).First(&alumnus).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No alumnus profile is linked to this account"})
		return nil, false
	}
	return &alumnus, true
}
