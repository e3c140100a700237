package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adminpanel/dashboard/controllers"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/utils"
)

// setupTestDB menggunakan SQLite in-memory untuk testing
func setupTestDB(name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

func setupRouterForTest(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	authCtrl := controllers.NewAuthController(db, nil)
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", authCtrl.Register)
	router.POST("/login", authCtrl.Login)
	router.POST("/refresh", authCtrl.Refresh)
	router.GET("/users", userCtrl.GetAllUsers)
	router.POST("/users", userCtrl.CreateUser)
	router.PUT("/users/:user_id", userCtrl.UpdateUser)
	router.DELETE("/users/:user_id", userCtrl.DeleteUser)

	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB("authtest")
	router := setupRouterForTest(db)

	// --- Register ---
	registerPayload := map[string]string{
		"name":     "Test Admin",
		"email":    "admin@example.com",
		"password": "password123",
		"role":     "admin",
	}
	payloadBytes, err := json.Marshal(registerPayload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &registerResponse)
	assert.NoError(t, err)
	assert.Equal(t, true, registerResponse["status"])
	data := registerResponse["data"].(map[string]interface{})
	assert.NotNil(t, data["user_id"])

	// --- Login ---
	loginPayload := map[string]string{
		"email":    "admin@example.com",
		"password": "password123",
	}
	payloadBytes, err = json.Marshal(loginPayload)
	assert.NoError(t, err)

	req, err = http.NewRequest("POST", "/login", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &loginResponse)
	assert.NoError(t, err)
	assert.Equal(t, true, loginResponse["status"])
	data = loginResponse["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["refresh_token"])
	assert.Equal(t, "admin", data["user_role"])

	// --- Refresh: token lama dirotasi ---
	refreshPayload := map[string]string{
		"refresh_token": data["refresh_token"].(string),
	}
	payloadBytes, _ = json.Marshal(refreshPayload)

	req, _ = http.NewRequest("POST", "/refresh", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Refresh token yang sama tidak bisa dipakai dua kali
	req, _ = http.NewRequest("POST", "/refresh", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserListEnvelope(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB("userlisttest")
	router := setupRouterForTest(db)

	// Seed beberapa user
	for _, u := range []models.User{
		{Name: "Alpha", Email: "alpha@example.com", Password: "x", Role: "staff", Status: "active"},
		{Name: "Bravo", Email: "bravo@example.com", Password: "x", Role: "staff", Status: "inactive"},
		{Name: "Charlie", Email: "charlie@example.com", Password: "x", Role: "admin", Status: "active"},
	} {
		db.Create(&u)
	}

	// Dengan page: envelope items/pagination
	req, _ := http.NewRequest("GET", "/users?page=1&per_page=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	assert.Len(t, items, 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["current_page"])
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["last_page"])

	// Tanpa page: array mentah
	req, _ = http.NewRequest("GET", "/users", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, isArray := resp["data"].([]interface{})
	assert.True(t, isArray)

	// Pencarian global + filter status
	req, _ = http.NewRequest("GET", "/users?page=1&s=alpha&status=active", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data = resp["data"].(map[string]interface{})
	items = data["items"].([]interface{})
	assert.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Alpha", first["name"])
}

func TestUserCRUD(t *testing.T) {
	utils.InitLogger()

	db := setupTestDB("usercrudtest")
	router := setupRouterForTest(db)

	// Create
	payload := map[string]string{
		"name":     "Dina",
		"email":    "dina@example.com",
		"password": "password123",
		"role":     "staff",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	created := resp["data"].(map[string]interface{})
	id := created["id"].(float64)
	assert.Equal(t, "active", created["status"])

	// Update status
	update := map[string]string{"status": "banned"}
	payloadBytes, _ = json.Marshal(update)
	req, _ = http.NewRequest("PUT", "/users/"+itoa(int(id)), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	assert.NoError(t, db.First(&updated, uint(id)).Error)
	assert.Equal(t, "banned", updated.Status)

	// Status asing ditolak
	update = map[string]string{"status": "bogus"}
	payloadBytes, _ = json.Marshal(update)
	req, _ = http.NewRequest("PUT", "/users/"+itoa(int(id)), bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Delete
	req, _ = http.NewRequest("DELETE", "/users/"+itoa(int(id)), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Where("id = ?", uint(id)).Count(&count)
	assert.Equal(t, int64(0), count)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
