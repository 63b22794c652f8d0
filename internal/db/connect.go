package db

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zulandar/changetrack/internal/config"
)

// DSN builds a MySQL DSN from connection settings. An empty database selects
// none, for CREATE DATABASE.
func DSN(m config.MySQLConfig) string {
	c := mysqldriver.NewConfig()
	c.User = m.User
	c.Passwd = m.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	c.DBName = m.Database
	c.ParseTime = true
	return c.FormatDSN()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// Connect opens a GORM connection to the export database named by cfg. For
// MySQL without an explicit DSN the database is created first if missing.
func Connect(cfg config.ReportConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return connectSQLite(cfg.DSN)
	case config.DriverMySQL:
		dsn := cfg.DSN
		if dsn == "" {
			if err := ensureDatabase(cfg.MySQL); err != nil {
				return nil, err
			}
			dsn = DSN(cfg.MySQL)
		}
		db, err := gorm.Open(mysql.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("db: connect to mysql: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("db: unknown driver %q", cfg.Driver)
	}
}

func connectSQLite(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "changetrack.db"
	}
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("db: create directory for %s: %w", dsn, err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("db: connect to sqlite %s: %w", dsn, err)
	}
	return db, nil
}

// ConnectAdmin opens a GORM connection to the MySQL server without selecting
// a database, used for CREATE DATABASE.
func ConnectAdmin(m config.MySQLConfig) (*gorm.DB, error) {
	m.Database = ""
	db, err := gorm.Open(mysql.Open(DSN(m)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("db: admin connect to %s:%d: %w", m.Host, m.Port, err)
	}
	return db, nil
}

// CreateDatabase creates the named database if it doesn't already exist.
func CreateDatabase(adminDB *gorm.DB, name string) error {
	sql := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", name)
	if err := adminDB.Exec(sql).Error; err != nil {
		return fmt.Errorf("db: create database %s: %w", name, err)
	}
	return nil
}

func ensureDatabase(m config.MySQLConfig) error {
	admin, err := ConnectAdmin(m)
	if err != nil {
		return err
	}
	if sqlDB, err := admin.DB(); err == nil {
		defer sqlDB.Close()
	}
	return CreateDatabase(admin, m.Database)
}
