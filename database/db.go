package database

import (
	"aftech-backend/config"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteMemoryDSN is a private in-memory database with foreign keys enforced.
const SQLiteMemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

func getDSNAndDialector() (string, gorm.Dialector, error) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			config.DBHost, config.DBUser, config.DBPassword, config.DBName, config.DBPort)
		return dsn, postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)
		return dsn, mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)
		return dsn, sqlserver.Open(dsn), nil
	case "sqlite":
		// DB_NAME is a file path here; pragma keeps ON DELETE rules live.
		dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", config.DBName)
		return dsn, sqlite.Open(dsn), nil
	default:
		return "", nil, fmt.Errorf("unsupported DB_DRIVER: %s", config.DBDriver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	}
}

// OpenDatabaseConnection opens the configured database and sizes its pool.
func OpenDatabaseConnection() (*gorm.DB, error) {
	_, dialector, err := getDSNAndDialector()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if config.DBDriver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(config.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if config.DBTracing {
		if err := db.Use(otelgorm.NewPlugin()); err != nil {
			config.LogError(config.GetLogger(), "database", "OpenDatabaseConnection", "install otelgorm plugin", nil, err)
		}
	}
	return db, nil
}

// OpenSQLite opens a single-connection SQLite database. Used for local
// runs and tests.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	cfg := gormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
