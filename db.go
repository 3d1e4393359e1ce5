package main

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/apex/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func init() {
	dbname, ok := os.LookupEnv("PGDATABASE")
	if !ok {
		dbname = "test"
	}
	connStr := strings.Join([]string{"dbname", dbname}, "=")

	database, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		QueryFields: true,
	})
	if err != nil {
		log.WithError(err).WithField("connStr", connStr).Fatal("failed to connect database")
	}

	sqlDB, err := database.DB()
	if err != nil {
		log.WithError(err).Fatal("error")
	}

	// Decodes are single-row writes; keep a small idle pool and cap the total.
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// Recycle connections hourly so postgres restarts are picked up.
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.AutoMigrate(&Decode{}); err != nil {
		log.WithError(err).Fatal("failed to migrate decodes")
	}

	db = database
}

// benignError reports errors the idle loop and shutdown expect to see.
func benignError(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, http.ErrServerClosed) {
		return true
	}
	if errors.Is(err, sql.ErrConnDone) {
		return true
	}
	// database/sql keeps its closed-pool error unexported.
	e := err
	for errors.Unwrap(e) != nil {
		e = errors.Unwrap(e)
	}
	return e.Error() == "sql: database is closed"
}

func idleError(message string, err error) {
	if err == nil {
		return
	}
	if benignError(err) {
		return
	}
	log.WithField("type", reflect.TypeOf(err)).WithError(err).Error(message)
}
