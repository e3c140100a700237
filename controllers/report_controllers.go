package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/utils"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GetAllReports memakai envelope lama, sama seperti informations.
func (rc *ReportController) GetAllReports(c *gin.Context) {
	params := ParseListParams(c)

	query := rc.DB.Model(&models.Report{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("reason LIKE ?", like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	if !params.Paginated {
		var reports []models.Report
		if err := query.Preload("Reporter").Preload("ReportedUser").
			Order(params.Order()).Find(&reports).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "All reports", reports)
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var reports []models.Report
	if err := query.Preload("Reporter").Preload("ReportedUser").
		Order(params.Order()).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&reports).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondLegacyPage(c, "Reports retrieved", reports, params.Page, params.PerPage, total)
}

// GetReportByID
func (rc *ReportController) GetReportByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("report_id"))

	var report models.Report
	if err := rc.DB.Preload("Reporter").Preload("ReportedUser").First(&report, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Report detail", report)
}

// CreateReport -> biasanya dari aplikasi user, admin juga bisa input manual
func (rc *ReportController) CreateReport(c *gin.Context) {
	type reqBody struct {
		Reason         string `json:"reason" binding:"required"`
		Priority       string `json:"priority"`
		ReporterID     *uint  `json:"reporter_id"`
		ReportedUserID *uint  `json:"reported_user_id"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	priority := body.Priority
	if priority == "" {
		priority = models.ReportPriorityMedium
	}
	if !validReportPriority(priority) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid report priority"))
		return
	}

	report := models.Report{
		Reason:         body.Reason,
		Status:         models.ReportStatusPending,
		Priority:       priority,
		ReporterID:     body.ReporterID,
		ReportedUserID: body.ReportedUserID,
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Report created: id=%d priority=%s", report.ID, report.Priority)
	utils.RespondJSON(c, http.StatusCreated, "Report created", report)
}

// UpdateReport -> admin mengubah status/priority saat menindaklanjuti
func (rc *ReportController) UpdateReport(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("report_id"))

	var report models.Report
	if err := rc.DB.First(&report, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Status   *string `json:"status"`
		Priority *string `json:"priority"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Status != nil {
		if !validReportStatus(*body.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid report status"))
			return
		}
		report.Status = *body.Status
	}
	if body.Priority != nil {
		if !validReportPriority(*body.Priority) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid report priority"))
			return
		}
		report.Priority = *body.Priority
	}

	if err := rc.DB.Save(&report).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Report updated", report)
}

// DeleteReport
func (rc *ReportController) DeleteReport(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("report_id"))

	if err := rc.DB.Delete(&models.Report{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Report deleted", gin.H{"report_id": id})
}

func validReportStatus(status string) bool {
	switch status {
	case models.ReportStatusPending, models.ReportStatusReviewed,
		models.ReportStatusResolved, models.ReportStatusRejected:
		return true
	}
	return false
}

func validReportPriority(priority string) bool {
	switch priority {
	case models.ReportPriorityLow, models.ReportPriorityMedium, models.ReportPriorityHigh:
		return true
	}
	return false
}
