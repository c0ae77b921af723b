package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	ProjectName string

	HeaderScanRows    int
	StrictMatch       bool
	PreviewItems      int
	BudgetPreviewRows int
	DBPageSize        int

	InboxDir   string
	ArchiveDir string

	ListenerIntervalSec  int
	ListenerFetchMax     int
	ListenerProcessBatch int
	ListenerFormat       string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "specs.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		ProjectName: getEnv("PROJECT_NAME", "Projeto Elétrico"),

		HeaderScanRows:    getEnvInt("HEADER_SCAN_ROWS", 10),
		StrictMatch:       getEnvBool("STRICT_MATCH", true),
		PreviewItems:      getEnvInt("PREVIEW_ITEMS", 5),
		BudgetPreviewRows: getEnvInt("BUDGET_PREVIEW_ROWS", 20),
		DBPageSize:        getEnvInt("DB_PAGE_SIZE", 10),

		InboxDir:   getEnv("INBOX_DIR", filepath.Join(cwd, "inbox")),
		ArchiveDir: getEnv("ARCHIVE_DIR", filepath.Join(cwd, "data", "budgets")),

		ListenerIntervalSec:  getEnvInt("LISTENER_INTERVAL_SEC", 60),
		ListenerFetchMax:     getEnvInt("LISTENER_FETCH_MAX", 50),
		ListenerProcessBatch: getEnvInt("LISTENER_PROCESS_BATCH", 20),
		ListenerFormat:       getEnv("LISTENER_FORMAT", "txt"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
