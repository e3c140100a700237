package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/utils"
	"gorm.io/gorm"
)

type InformationController struct {
	DB *gorm.DB
}

func NewInformationController(db *gorm.DB) *InformationController {
	return &InformationController{DB: db}
}

// GetAllInformations memakai envelope lama (data.data + current_page dst),
// modul ini belum dimigrasi ke format items/pagination.
func (ic *InformationController) GetAllInformations(c *gin.Context) {
	params := ParseListParams(c)

	query := ic.DB.Model(&models.Information{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if !params.Paginated {
		var infos []models.Information
		if err := query.Order(params.Order()).Find(&infos).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "All informations", infos)
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var infos []models.Information
	if err := query.Order(params.Order()).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&infos).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondLegacyPage(c, "Informations retrieved", infos, params.Page, params.PerPage, total)
}

// GetInformationByID
func (ic *InformationController) GetInformationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("info_id"))

	var info models.Information
	if err := ic.DB.First(&info, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Information detail", info)
}

// CreateInformation
func (ic *InformationController) CreateInformation(c *gin.Context) {
	type request struct {
		Title     string     `json:"title" binding:"required"`
		Content   string     `json:"content" binding:"required"`
		Status    string     `json:"status"`
		PublishAt *time.Time `json:"publish_at"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.InformationStatusDraft
	}
	if !validInformationStatus(status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid information status"))
		return
	}

	info := models.Information{
		Title:     req.Title,
		Content:   req.Content,
		Status:    status,
		PublishAt: req.PublishAt,
	}
	if info.Status == models.InformationStatusPublished && info.PublishAt == nil {
		now := time.Now()
		info.PublishAt = &now
	}

	if err := ic.DB.Create(&info).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Information created: %s (status=%s)", info.Title, info.Status)
	utils.RespondJSON(c, http.StatusCreated, "Information created", info)
}

// UpdateInformation
func (ic *InformationController) UpdateInformation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("info_id"))

	var info models.Information
	if err := ic.DB.First(&info, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Title     *string    `json:"title"`
		Content   *string    `json:"content"`
		Status    *string    `json:"status"`
		PublishAt *time.Time `json:"publish_at"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		info.Title = *req.Title
	}
	if req.Content != nil {
		info.Content = *req.Content
	}
	if req.Status != nil {
		if !validInformationStatus(*req.Status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid information status"))
			return
		}
		// Publish pertama kali mengisi publish_at otomatis
		if *req.Status == models.InformationStatusPublished && info.PublishAt == nil {
			now := time.Now()
			info.PublishAt = &now
		}
		info.Status = *req.Status
	}
	if req.PublishAt != nil {
		info.PublishAt = req.PublishAt
	}

	if err := ic.DB.Save(&info).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Information updated", info)
}

// DeleteInformation
func (ic *InformationController) DeleteInformation(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("info_id"))

	if err := ic.DB.Delete(&models.Information{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Information deleted", gin.H{"info_id": id})
}

func validInformationStatus(status string) bool {
	switch status {
	case models.InformationStatusDraft, models.InformationStatusPublished, models.InformationStatusArchived:
		return true
	}
	return false
}
