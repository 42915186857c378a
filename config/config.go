package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultReferenceYear is the year vehicle_age is measured against.
const DefaultReferenceYear = 2024

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SalesInputPath  string
	SpecsInputPath  string
	SalesOutputPath string
	SpecsOutputPath string

	ReferenceYear       int
	PipelineConcurrency int
	LogLevel            string

	ExportPostgres   bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	SQLiteExportPath string

	DashboardHTMLPath string
	DashboardPNGPath  string
	ChromeBin         string
	DashboardAddr     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		SalesInputPath:  getEnv("SALES_INPUT_PATH", "car_prices.csv"),
		SpecsInputPath:  getEnv("SPECS_INPUT_PATH", "data.csv"),
		SalesOutputPath: getEnv("SALES_OUTPUT_PATH", "sales_cleaned.csv"),
		SpecsOutputPath: getEnv("SPECS_OUTPUT_PATH", "specs_cleaned.csv"),

		ReferenceYear:       getEnvInt("REFERENCE_YEAR", DefaultReferenceYear),
		PipelineConcurrency: getEnvInt("PIPELINE_CONCURRENCY", 1),
		LogLevel:            getEnv("LOG_LEVEL", "info"),

		ExportPostgres:   getEnvBool("EXPORT_POSTGRES", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "analyst"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "analyst"),
		PostgresDB:       getEnv("POSTGRES_DB", "automotive"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		SQLiteExportPath: getEnv("SQLITE_EXPORT_PATH", ""),

		DashboardHTMLPath: getEnv("DASHBOARD_HTML_PATH", "dashboard.html"),
		DashboardPNGPath:  getEnv("DASHBOARD_PNG_PATH", ""),
		ChromeBin:         getEnv("CHROME_BIN", ""),
		DashboardAddr:     getEnv("DASHBOARD_ADDR", ":8501"),
	}
}

// EffectiveReferenceYear resolves a zero ReferenceYear to the current calendar year.
func (c *Config) EffectiveReferenceYear() int {
	if c.ReferenceYear <= 0 {
		return time.Now().Year()
	}
	return c.ReferenceYear
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
