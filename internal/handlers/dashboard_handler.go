package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/doganiot/mywordismyword/config"
	"github.com/doganiot/mywordismyword/models"
)

type statusCount struct {
	Status models.ContractStatus `json:"status"`
	Count  int64                 `json:"count"`
}

type typeCount struct {
	ContractType string `json:"contract_type"`
	Count        int64  `json:"count"`
}

// DashboardStatsHandler returns platform-wide aggregates for the admin
// dashboard.
func DashboardStatsHandler(c *gin.Context) {
	var totalUsers, totalContracts, totalTemplates, totalSignatures, activeSubscriptions int64
	config.DB.Model(&models.User{}).Count(&totalUsers)
	config.DB.Model(&models.Contract{}).Count(&totalContracts)
	config.DB.Model(&models.ContractTemplate{}).Where("is_active = ?", true).Count(&totalTemplates)
	config.DB.Model(&models.ContractSignature{}).Where("is_signed = ?", true).Count(&totalSignatures)
	config.DB.Model(&models.UserSubscription{}).Where("is_active = ?", true).Count(&activeSubscriptions)

	var byStatus []statusCount
	config.DB.Model(&models.Contract{}).
		Select("status, COUNT(*) as count").
		Group("status").Scan(&byStatus)

	var byType []typeCount
	config.DB.Model(&models.Contract{}).
		Select("contract_type, COUNT(*) as count").
		Group("contract_type").Scan(&byType)

	since := time.Now().AddDate(0, 0, -30)
	var recentContracts, recentUsers int64
	config.DB.Model(&models.Contract{}).Where("created_at >= ?", since).Count(&recentContracts)
	config.DB.Model(&models.User{}).Where("created_at >= ?", since).Count(&recentUsers)

	c.JSON(http.StatusOK, gin.H{
		"total_users":          totalUsers,
		"total_contracts":      totalContracts,
		"total_templates":      totalTemplates,
		"total_signatures":     totalSignatures,
		"active_subscriptions": activeSubscriptions,
		"contracts_by_status":  byStatus,
		"contracts_by_type":    byType,
		"contracts_last_30d":   recentContracts,
		"new_users_last_30d":   recentUsers,
	})
}

// ExportContractsXLSXHandler dumps the contract register as a
// spreadsheet for offline analysis.
func ExportContractsXLSXHandler(c *gin.Context) {
	query := config.DB.Model(&models.Contract{}).
		Preload("Creator").
		Preload("Parties.User").
		Preload("Signatures")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}

	var contracts []models.Contract
	if err := query.Order("contract_number ASC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Contracts"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Number", "Title", "Status", "Type", "Creator", "Parties", "Signed", "Created", "Completed"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, ct := range contracts {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), ct.ContractNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), ct.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), string(ct.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), ct.ContractType)
		if ct.Creator != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), ct.Creator.FullName())
		}
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), ct.TotalParties())
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), ct.SignedParties())
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), ct.CreatedAt.Format("02.01.2006"))
		if ct.CompletedAt != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), ct.CompletedAt.Format("02.01.2006"))
		}
	}

	fileName := fmt.Sprintf("contracts_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
