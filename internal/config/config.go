package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultFeedURL is the issuer's master holdings CSV covering every fund.
	DefaultFeedURL = "https://amplifyetfs.com/wp-content/uploads/feeds/AmplifyWeb.40XL.XL_Holdings.csv"
	// DefaultStockQURL is the index history page, with %s replaced by the index code.
	DefaultStockQURL = "https://en.stockq.org/index/%s.php"
	// DefaultUserAgent mimics a desktop browser; both sources reject bare clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FeedURL             string
	FeedRetryMax        int
	FeedRetryDelay      time.Duration
	StockQURL           string
	StockQRetryMax      int
	StockQRetryDelay    time.Duration
	HTTPTimeout         time.Duration
	BrowserTimeout      time.Duration // includes the first-run Chromium download
	UserAgent           string
	OutputDir           string
	UseBrowser          bool
	DatabaseURL         string
	SheetsSpreadsheetID string
	GoogleCredentials   string
	XLSXPath            string
	UpdateInterval      time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FeedURL:             envOrDefault("AMPLIFY_FEED_URL", DefaultFeedURL),
		FeedRetryMax:        envOrDefaultInt("AMPLIFY_RETRY_MAX", 3),
		FeedRetryDelay:      envOrDefaultDuration("AMPLIFY_RETRY_DELAY", 5*time.Second),
		StockQURL:           envOrDefault("STOCKQ_URL", DefaultStockQURL),
		StockQRetryMax:      envOrDefaultInt("STOCKQ_RETRY_MAX", 3),
		StockQRetryDelay:    envOrDefaultDuration("STOCKQ_RETRY_DELAY", 2*time.Second),
		HTTPTimeout:         envOrDefaultDuration("HTTP_TIMEOUT", 30*time.Second),
		BrowserTimeout:      envOrDefaultDuration("BROWSER_TIMEOUT", 5*time.Minute),
		UserAgent:           envOrDefault("USER_AGENT", DefaultUserAgent),
		OutputDir:           envOrDefault("OUTPUT_DIR", "."),
		UseBrowser:          envOrDefaultBool("USE_BROWSER", false),
		DatabaseURL:         envOrDefault("DATABASE_URL", ""),
		SheetsSpreadsheetID: envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		GoogleCredentials:   envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
		XLSXPath:            envOrDefault("XLSX_PATH", ""),
		UpdateInterval:      envOrDefaultDuration("UPDATE_INTERVAL", 24*time.Hour),
	}
}

// SheetsEnabled reports whether Google Sheets publishing is fully configured.
func (c Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != "" && c.GoogleCredentials != ""
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
