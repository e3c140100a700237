package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adminpanel/dashboard/controllers"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/utils"
)

func setupTestDBForNotifications(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Notification{}, &models.User{}); err != nil {
		panic(err)
	}
	// Seed: user untuk target notifikasi
	user := models.User{
		Name:     "Test User",
		Email:    "testuser@example.com",
		Password: "secret",
		Role:     "admin",
		Status:   "active",
	}
	db.Create(&user)
	return db
}

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)
	router.GET("/notifications", notifCtrl.GetAllNotifications)
	router.POST("/notifications", notifCtrl.CreateNotification)
	router.GET("/notifications/:notif_id", notifCtrl.GetNotificationByID)
	router.PUT("/notifications/:notif_id", notifCtrl.UpdateNotification)
	router.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)
	return router
}

func TestNotificationCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications("notifcrudtest")
	router := setupNotificationRouter(db)

	// Create tanpa jadwal -> draft
	payload := map[string]interface{}{
		"title":   "Promo Akhir Pekan",
		"message": "Diskon 20% untuk semua item",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	created := resp["data"].(map[string]interface{})
	assert.Equal(t, "draft", created["status"])
	assert.Equal(t, "all", created["target"])
	draftID := int(created["id"].(float64))

	// Create dengan jadwal -> scheduled
	scheduleAt := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)
	payload = map[string]interface{}{
		"title":       "Pengingat",
		"message":     "Event dimulai besok",
		"schedule_at": scheduleAt,
	}
	payloadBytes, _ = json.Marshal(payload)
	req, _ = http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	created = resp["data"].(map[string]interface{})
	assert.Equal(t, "scheduled", created["status"])

	// Target user tanpa target_user_id ditolak
	payload = map[string]interface{}{
		"title":   "Personal",
		"message": "Halo",
		"target":  "user",
	}
	payloadBytes, _ = json.Marshal(payload)
	req, _ = http.NewRequest("POST", "/notifications", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Notifikasi yang sudah terkirim tidak boleh diubah
	now := time.Now()
	sent := models.Notification{
		Title:   "Sudah Terkirim",
		Message: "x",
		Target:  "all",
		Status:  models.NotificationStatusSent,
		SentAt:  &now,
	}
	db.Create(&sent)

	update := map[string]interface{}{"title": "Ubah"}
	payloadBytes, _ = json.Marshal(update)
	req, _ = http.NewRequest("PUT", "/notifications/"+itoa(int(sent.ID)), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Delete draft
	req, _ = http.NewRequest("DELETE", "/notifications/"+itoa(draftID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotificationListFilterStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications("notiffiltertest")
	router := setupNotificationRouter(db)

	db.Create(&models.Notification{Title: "A", Message: "a", Target: "all", Status: "draft"})
	db.Create(&models.Notification{Title: "B", Message: "b", Target: "all", Status: "scheduled"})

	req, _ := http.NewRequest("GET", "/notifications?page=1&status=scheduled", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})

	for _, item := range items {
		assert.Equal(t, "scheduled", item.(map[string]interface{})["status"])
	}
	assert.NotEmpty(t, items)
}
