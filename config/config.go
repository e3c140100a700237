package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB membuka koneksi database sesuai DB_DRIVER (mysql, postgres, sqlite).
// Default mysql, mengikuti deployment utama.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")

	switch driver {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "dashboard.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_USER", "postgres"),
			os.Getenv("DB_PASS"),
			envOr("DB_NAME", "dashboard"),
			envOr("DB_PORT", "5432"),
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			envOr("DB_USER", "root"),
			os.Getenv("DB_PASS"),
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_PORT", "3306"),
			envOr("DB_NAME", "dashboard"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
