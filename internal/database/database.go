package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zachricha/medium-clone-api/internal/models"
)

type Database struct {
	DB     *gorm.DB
	Driver string
}

// Init opens the configured database and migrates the schema.
func Init(driver, dsn string) (*Database, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error
	switch driver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), config)
	case "sqlite":
		db, err = initSQLite(dsn, config)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection failed (%s): %w", driver, err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.Post{},
		&models.UserLike{},
		&models.PostLike{},
	)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	logrus.WithField("driver", driver).Info("database migrated")

	return &Database{DB: db, Driver: driver}, nil
}

func initSQLite(dsn string, config *gorm.Config) (*gorm.DB, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(dsn), config)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
