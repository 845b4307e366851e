package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName           string        `json:"appname"`
	AppEnv            string        `json:"appenv"`
	AppPort           uint16        `json:"appport"`
	GinMode           string        `json:"ginmode"`
	DBDriver          string        `json:"dbdriver"`
	DBHost            string        `json:"dbhost"`
	DBPort            uint16        `json:"dbport"`
	DBName            string        `json:"dbname"`
	DBUSER            string        `json:"dbuser"`
	DBPass            string        `json:"dbpass"`
	DBSSLMode         string        `json:"dbsslmode"`
	JWTSecret         string        `json:"-"`
	LogFormat         string        `json:"logformat"`
	InflationCacheTTL time.Duration `json:"inflation_cache_ttl"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is only fatal in production, where every value is expected to come from it.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			if os.Getenv("APPENV") == "production" {
				log.Fatalf("Error loading .env file: %v", err)
			}
			log.Printf("No .env file loaded, using process environment: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)
		cacheTTL, err := time.ParseDuration(getEnv("INFLATION_CACHE_TTL", "10m"))
		if err != nil {
			cacheTTL = 10 * time.Minute
		}

		config = &Config{
			AppName:           getEnv("APPNAME", "psico-app"),
			AppEnv:            getEnv("APPENV", "development"),
			AppPort:           uint16(appPort),
			GinMode:           getEnv("GINMODE", "debug"),
			DBDriver:          strings.ToLower(getEnv("DBDRIVER", "postgres")),
			DBHost:            os.Getenv("DBHOST"),
			DBPort:            uint16(dbPort),
			DBName:            os.Getenv("DBNAME"),
			DBUSER:            os.Getenv("DBUSER"),
			DBPass:            os.Getenv("DBPASS"),
			DBSSLMode:         getEnv("DBSSLMODE", "require"),
			JWTSecret:         os.Getenv("JWTSECRET"),
			LogFormat:         getEnv("LOGFORMAT", "text"),
			InflationCacheTTL: cacheTTL,
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// DSN builds the data source name for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.DBUSER, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		if c.DBName == "" {
			return "file:psico?mode=memory&cache=shared"
		}
		return c.DBName
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUSER, c.DBPass, c.DBName, c.DBSSLMode)
	}
}

// ConnectDatabase opens a gorm connection for the configured driver.
// With APPENV=test it always opens a private in-memory SQLite database.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if os.Getenv("APPENV") == "test" || cfg.AppEnv == "test" {
		dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "postgres", "postgresql":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}
