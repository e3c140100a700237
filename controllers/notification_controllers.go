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

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications mendukung page/per_page/sort/s + filter status,
// envelope items/pagination.
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	params := ParseListParams(c)

	query := nc.DB.Model(&models.Notification{})
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR message LIKE ?", like, like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if !params.Paginated {
		var notifs []models.Notification
		if err := query.Preload("TargetUser").Order(params.Order()).Find(&notifs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var notifs []models.Notification
	if err := query.Preload("TargetUser").
		Order(params.Order()).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondItemsPage(c, "Notifications retrieved", notifs, params.Page, params.PerPage, total)
}

// CreateNotification -> draft atau langsung dijadwalkan
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	type reqBody struct {
		Title        string     `json:"title" binding:"required"`
		Message      string     `json:"message" binding:"required"`
		Target       string     `json:"target"`
		TargetUserID *uint      `json:"target_user_id"`
		ScheduleAt   *time.Time `json:"schedule_at"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	target := body.Target
	if target == "" {
		target = models.NotificationTargetAll
	}
	if !validNotificationTarget(target) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification target"))
		return
	}
	if target == models.NotificationTargetUser && body.TargetUserID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("target_user_id required for user target"))
		return
	}

	notif := models.Notification{
		Title:        body.Title,
		Message:      body.Message,
		Target:       target,
		TargetUserID: body.TargetUserID,
		Status:       models.NotificationStatusDraft,
		ScheduleAt:   body.ScheduleAt,
	}
	if body.ScheduleAt != nil {
		notif.Status = models.NotificationStatusScheduled
	}

	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Notification created: %q (status=%s)", notif.Title, notif.Status)
	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notif_id"))

	var notif models.Notification
	if err := nc.DB.Preload("TargetUser").First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// UpdateNotification -> hanya draft/scheduled yang boleh diubah
func (nc *NotificationController) UpdateNotification(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notif_id"))

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if notif.Status == models.NotificationStatusSent {
		utils.RespondError(c, http.StatusConflict, errors.New("notification already sent"))
		return
	}

	type reqBody struct {
		Title      *string    `json:"title"`
		Message    *string    `json:"message"`
		Target     *string    `json:"target"`
		ScheduleAt *time.Time `json:"schedule_at"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Title != nil {
		notif.Title = *body.Title
	}
	if body.Message != nil {
		notif.Message = *body.Message
	}
	if body.Target != nil {
		if !validNotificationTarget(*body.Target) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification target"))
			return
		}
		notif.Target = *body.Target
	}
	if body.ScheduleAt != nil {
		notif.ScheduleAt = body.ScheduleAt
		notif.Status = models.NotificationStatusScheduled
	}

	if err := nc.DB.Save(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification updated", notif)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("notif_id"))

	if err := nc.DB.Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}

func validNotificationTarget(target string) bool {
	switch target {
	case models.NotificationTargetAll, models.NotificationTargetUser, models.NotificationTargetSegment:
		return true
	}
	return false
}
