package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/config"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// ListAlumniHandler returns the paginated directory. Supports free-text
// search over names plus gradYear and industry filters. Non-public
// profiles are only visible to admins.
func ListAlumniHandler(c *gin.Context) {
	query := config.DB.Model(&models.Alumnus{})

	if role, _ := c.Get("role"); role != models.RoleAdmin {
		query = query.Where("is_public = ?", true)
	}

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR company ILIKE ?", like, like, like)
	}
	if year := c.Query("gradYear"); year != "" {
		query = query.Where("grad_year = ?", year)
	}
	if industry := c.Query("industry"); industry != "" {
		query = query.Where("industry = ?", industry)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count alumni"})
		return
	}

	var alumni []models.Alumnus
	if err := query.Order("grad_year desc, last_name asc").Scopes(Paginate(c)).Find(&alumni).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch alumni"})
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, alumni, totalRows))
}

// GetAlumnusHandler returns one directory entry with class memberships.
func GetAlumnusHandler(c *gin.Context) {
	var alumnus models.Alumnus
	if err := config.DB.Preload("Memberships").First(&alumnus, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alumnus not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch the alumnus"})
		return
	}

	if alumnus.IsPublic != nil && !*alumnus.IsPublic {
		if role, _ := c.Get("role"); role != models.RoleAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alumnus not found"})
			return
		}
	}

	c.JSON(http.StatusOK, alumnus)
}

// CreateAlumnusHandler adds a directory entry (admin only, enforced by the
// route group).
func CreateAlumnusHandler(c *gin.Context) {
	var input models.AlumnusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alumnus data: " + err.Error()})
		return
	}

	alumnus := alumnusFromInput(&input)
	if err := config.DB.Create(&alumnus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the alumnus"})
		return
	}

	c.JSON(http.StatusCreated, alumnus)
}

// UpdateAlumnusHandler replaces a directory entry's editable fields.
// Admins may edit anyone; members only the profile linked to their account.
func UpdateAlumnusHandler(c *gin.Context) {
	var alumnus models.Alumnus
	if err := config.DB.First(&alumnus, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alumnus not found"})
		return
	}

	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		userID, _ := c.Get("user_id")
		if alumnus.UserID == nil || userID == nil || *alumnus.UserID != userID.(uint) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own profile"})
			return
		}
	}

	var input models.AlumnusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alumnus data: " + err.Error()})
		return
	}

	updated := alumnusFromInput(&input)
	updated.ID = alumnus.ID
	updated.UserID = alumnus.UserID
	if err := config.DB.Model(&alumnus).Updates(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update the alumnus"})
		return
	}

	c.JSON(http.StatusOK, alumnus)
}

// DeleteAlumnusHandler removes a directory entry (admin only).
func DeleteAlumnusHandler(c *gin.Context) {
	result := config.DB.Delete(&models.Alumnus{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete the alumnus"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alumnus not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alumnus deleted"})
}

func alumnusFromInput(input *models.AlumnusInput) models.Alumnus {
	return models.Alumnus{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhotoURL:    input.PhotoURL,
		GradYear:    input.GradYear,
		Degree:      input.Degree,
		Industry:    input.Industry,
		JobTitle:    input.JobTitle,
		Company:     input.Company,
		Location:    input.Location,
		Phone:       input.Phone,
		Bio:         input.Bio,
		IsPublic:    input.IsPublic,
		LinkedInURL: input.LinkedInURL,
	}
}
