package database

import (
	"github.com/cheevoguild/uwcbot/api/env"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sync"
	"time"
)

var databaseConn *gorm.DB
var locker sync.Mutex

// Get returns the shared process-wide connection, opening it on first use.
// Feature services take the handle as a constructor argument; only the bot
// wiring in module Load functions reaches for this singleton.
func Get() (*gorm.DB, error) {
	var err error

	locker.Lock()
	defer locker.Unlock()
	if databaseConn == nil {
		databaseConn, err = load()
	}

	return databaseConn, err
}

func Close() {
	locker.Lock()
	defer locker.Unlock()
	if databaseConn != nil {
		if sqlDb, err := databaseConn.DB(); err == nil {
			_ = sqlDb.Close()
		}
		databaseConn = nil
	}
}

func load() (db *gorm.DB, err error) {
	connString := env.Get("database")
	if connString == "" {
		connString = "discord:discord@/discord?charset=utf8mb4&parseTime=True"
	}

	db, err = gorm.Open(mysql.Open(connString), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if db != nil {
		sqlDb, _ := db.DB()
		sqlDb.SetConnMaxLifetime(time.Second * 10)
		sqlDb.SetMaxIdleConns(0)
		sqlDb.SetMaxOpenConns(10)
	}
	return
}
