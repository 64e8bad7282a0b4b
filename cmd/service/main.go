package main

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"gitlab.com/dirk.krummacker/contact-list/internal/config"
	"gitlab.com/dirk.krummacker/contact-list/internal/logger"
	"gitlab.com/dirk.krummacker/contact-list/internal/service"
	"gitlab.com/dirk.krummacker/contact-list/internal/store"
)

// Usage example on the command line:
// > DATABASE_DSN="dirk:bullo92@tcp(localhost)/test?parseTime=true" SERVER_ADDRESS=":8080" go run main.go
func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.Init(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync(zlog)

	// Connect once at startup; the handle is shared by all requests.
	sqlDB, err := sql.Open("mysql", cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatalw("opening database", "error", err)
	}
	db := sqlx.NewDb(sqlDB, "mysql")

	users, err := store.NewUserStore(db)
	if err != nil {
		zlog.Fatalw("preparing user store", "error", err)
	}
	contacts, err := store.NewContactStore(db)
	if err != nil {
		zlog.Fatalw("preparing contact store", "error", err)
	}

	router := service.New(users, contacts, zlog).SetupHttpRouter(cfg.GinLogging)
	zlog.Infow("starting contact-list service", "addr", cfg.RunAddr)
	if err := router.Run(cfg.RunAddr); err != nil {
		zlog.Fatalw("server stopped", "error", err)
	}
}
