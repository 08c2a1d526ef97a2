package controllers

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"Inkwell/api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPageSize = 10

type Server struct {
	DB     *gorm.DB
	Router *gin.Engine

	// PageSize is the fixed listing page size, read once from
	// configuration at startup and passed around explicitly.
	PageSize int
}

// ===============================
// SERVER INITIALIZATION
// ===============================
func (server *Server) Initialize(DbUser, DbPassword, DbPort, DbHost, DbName string) {
	var dsn string

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		dsn = os.Getenv("DATABASE_URL")
		if dsn != "" && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DbHost, DbUser, DbPassword, DbName, DbPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to Postgres: %v", err)
	}
	server.DB = db

	if err := server.DB.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	server.PageSize = PageSizeFromEnv()

	server.Router = gin.Default()
	server.initializeRoutes()
}

// PageSizeFromEnv reads the configured listing page size, falling back to
// the default when unset or invalid.
func PageSizeFromEnv() int {
	raw := os.Getenv("POSTS_PER_PAGE")
	if raw == "" {
		return defaultPageSize
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 {
		log.Printf("invalid POSTS_PER_PAGE %q, using default %d", raw, defaultPageSize)
		return defaultPageSize
	}
	return size
}

func (server *Server) Run(addr string) {
	log.Printf("Listening to port %s", addr)
	log.Fatal(server.Router.Run(addr))
}
