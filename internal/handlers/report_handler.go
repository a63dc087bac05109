package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/config"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

func completedDonations(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Donation{}).Where("status = ?", models.DonationCompleted)
}

// donationsWorkbook renders completed donations into an .xlsx workbook with
// one row per donation.
func donationsWorkbook(donations []models.Donation) *excelize.File {
	f := excelize.NewFile()
	sheetName := "Donations"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Donation Number", "Date", "Donor", "Email", "Type", "Frequency", "Category", "Method", "Amount", "Fee Estimate", "Transaction ID"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, d := range donations {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), d.DonationNumber)
		if d.CompletedAt != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), d.CompletedAt.Format("2006-01-02"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), d.DonorName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), d.DonorEmail)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(d.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), string(d.Frequency))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), models.CategoryLabel(d.Category))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), string(d.PaymentMethod))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), d.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), d.FeeEstimate)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), d.TransactionID)
	}

	return f
}

// ExportDonationsHandler streams completed donations as an .xlsx file.
// Admin only. Optional ?from=YYYY-MM-DD and ?to=YYYY-MM-DD bound the
// export by completion date.
func ExportDonationsHandler(c *gin.Context) {
	query := completedDonations(config.DB)

	if from := c.Query("from"); from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("completed_at >= ?", start)
	}
	if to := c.Query("to"); to != "" {
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("completed_at < ?", end.AddDate(0, 0, 1))
	}

	var donations []models.Donation
	if err := query.Order("completed_at asc").Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := donationsWorkbook(donations)

	fileName := fmt.Sprintf("donations_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}

type categoryTotal struct {
	Category models.DonationCategory `json:"category"`
	Total    float64                 `json:"total"`
	Count    int64                   `json:"count"`
}

type methodTotal struct {
	Method models.PaymentMethod `json:"method"`
	Total  float64              `json:"total"`
	Count  int64                `json:"count"`
}

func overallTotalsQuery(db *gorm.DB) *gorm.DB {
	return completedDonations(db).
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count")
}

func categoryTotalsQuery(db *gorm.DB) *gorm.DB {
	return completedDonations(db).
		Select("category, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Group("category").Order("total desc")
}

// methodTotalsQuery groups on the stored payment_method column; the alias
// keeps the methodTotal scan keyed on "method".
func methodTotalsQuery(db *gorm.DB) *gorm.DB {
	return completedDonations(db).
		Select("payment_method AS method, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Group("payment_method").Order("total desc")
}

// DonationSummaryHandler returns aggregate totals for the admin
// dashboard: overall sum and breakdowns by category and method.
func DonationSummaryHandler(c *gin.Context) {
	var overall struct {
		Total float64
		Count int64
	}
	if err := overallTotalsQuery(config.DB).Scan(&overall).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute donation totals"})
		return
	}

	var byCategory []categoryTotal
	if err := categoryTotalsQuery(config.DB).Scan(&byCategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute category totals"})
		return
	}

	var byMethod []methodTotal
	if err := methodTotalsQuery(config.DB).Scan(&byMethod).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute method totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      overall.Total,
		"count":      overall.Count,
		"byCategory": byCategory,
		"byMethod":   byMethod,
	})
}
