package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"go-supermart-pos/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite store at path and syncs the schema. The DSN
// options make concurrent sale transactions queue on the write lock
// instead of failing fast.
func Open(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)

	// No schema-level foreign keys: sale items outlive their product
	// (they carry name/price snapshots) and audit rows outlive actors.
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.AuditLog{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// Connect opens the store configured by DB_PATH (default supermart.db),
// retrying a few times so the server survives a slow volume mount.
func Connect() *gorm.DB {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "supermart.db"
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = Open(path)
		if err == nil {
			break
		}
		log.Printf("Failed to open database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Failed to open database after 5 attempts:", err)
	}

	log.Println("✅ Database ready:", path)
	return db
}
