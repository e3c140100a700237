package main

import (
	"context"
	"log"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adminpanel/dashboard/client"
	"github.com/adminpanel/dashboard/models"
	"github.com/adminpanel/dashboard/router"
	"github.com/adminpanel/dashboard/tablestate"
	"github.com/adminpanel/dashboard/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama dashboard:
// 0. Seed admin + data, login -> token
// 1. List informations (envelope lama) lewat client -> pagination ternormalisasi
// 2. List users (envelope items/pagination) lewat client
// 3. State tabel dari query string menggerakkan fetch halaman berikutnya
// 4. Create information lewat client -> cache list di-invalidate
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db, utils.NewTokenBlacklist())

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx := context.Background()
	session := client.NewPasswordSession(srv.URL, "admin@example.com", "admin-password")
	assert.NoError(t, session.Login(ctx))

	api := client.New(srv.URL, session)

	checkInformationPaging(t, ctx, api)
	checkUserListing(t, ctx, api)
	checkTableStateDrivesFetch(t, ctx, api)
	checkCreateInvalidatesCache(t, ctx, api)
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed data
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integrationtest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Information{},
		&models.Notification{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	db.Create(&models.User{
		Name:     "Integration Admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     "admin",
		Status:   models.UserStatusActive,
	})

	for i := 0; i < 25; i++ {
		db.Create(&models.Information{
			Title:   "Pengumuman",
			Content: "isi pengumuman",
			Status:  models.InformationStatusPublished,
		})
	}
	return db
}

// Envelope lama dari server harus sampai ke pemakai sebagai Pagination normal.
func checkInformationPaging(t *testing.T, ctx context.Context, api *client.Client) {
	list, err := api.ListInformations(ctx, client.ListParams{Page: 2, PerPage: 10})
	assert.NoError(t, err)
	assert.Len(t, list.Informations, 10)
	assert.Equal(t, 2, list.Pagination.Page)
	assert.Equal(t, 25, list.Pagination.Total)
	assert.Equal(t, 3, list.Pagination.LastPage)
	assert.True(t, list.Pagination.HasNext)
	assert.True(t, list.Pagination.HasPrevious)

	last, err := api.ListInformations(ctx, client.ListParams{Page: 3, PerPage: 10})
	assert.NoError(t, err)
	assert.Len(t, last.Informations, 5)
	assert.False(t, last.Pagination.HasNext)
}

func checkUserListing(t *testing.T, ctx context.Context, api *client.Client) {
	list, err := api.ListUsers(ctx, client.ListParams{Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Len(t, list.Users, 1)
	assert.Equal(t, "Integration Admin", list.Users[0].Name)
	assert.Equal(t, "admin", list.Users[0].Role)
	assert.Equal(t, 1, list.Pagination.Total)
}

// State tabel hidup di query string: pagination dibaca dari sana, dan hasil
// fetch menggerakkan EnsurePageInRange kalau halaman keluar jangkauan.
func checkTableStateDrivesFetch(t *testing.T, ctx context.Context, api *client.Client) {
	search, _ := url.ParseQuery("page=9&pageSize=10")
	ctl := tablestate.New(search, func(transform func(url.Values) url.Values) {
		search = transform(search)
	}, tablestate.Config{})

	fetch := func() (*client.InformationList, error) {
		p := tablestate.New(search, nil, tablestate.Config{}).Pagination()
		return api.ListInformations(ctx, client.ListParams{
			Page:    p.PageIndex + 1,
			PerPage: p.PageSize,
		})
	}

	list, err := fetch()
	assert.NoError(t, err)
	assert.Empty(t, list.Informations) // halaman 9 dari 3 -> kosong

	// Hasil fetch selesai -> clamp ke halaman terakhir, lalu fetch ulang
	ctl.EnsurePageInRange(list.Pagination.LastPage, false, false)
	assert.Equal(t, "3", search.Get("page"))

	list, err = fetch()
	assert.NoError(t, err)
	assert.Len(t, list.Informations, 5)
}

func checkCreateInvalidatesCache(t *testing.T, ctx context.Context, api *client.Client) {
	before, err := api.ListInformations(ctx, client.ListParams{Page: 1, PerPage: 10})
	assert.NoError(t, err)
	total := before.Pagination.Total

	_, err = api.CreateInformation(ctx, client.InformationInput{
		Title:   "Info Baru",
		Content: "konten baru",
	})
	assert.NoError(t, err)

	after, err := api.ListInformations(ctx, client.ListParams{Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, total+1, after.Pagination.Total)
}
