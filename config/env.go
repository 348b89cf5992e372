package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const defaultPort = "8080"

const savedQuotesFile = "saved_quotes.json"

func init() {
	// Load env from .env; missing file is fine for production deployments.
	godotenv.Load()
}

func GetPort() string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		return defaultPort
	}
	return port
}

// GetDataDir returns the directory that holds the per-install saved quotes
// bucket. Created lazily by the file store.
func GetDataDir() string {
	dir := strings.TrimSpace(os.Getenv("QUOTES_DATA_DIR"))
	if dir == "" {
		return "./data"
	}
	return dir
}

func GetSavedQuotesPath() string {
	return filepath.Join(GetDataDir(), savedQuotesFile)
}

// GetQuoteFontPath points at a TTF/OTF file used for rendering Hangul on the
// quote template. Empty means the renderer falls back to its built-in face.
func GetQuoteFontPath() string {
	return strings.TrimSpace(os.Getenv("QUOTE_FONT_PATH"))
}
