package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	EmbeddingBaseURL string
	EmbeddingModel   string
	EmbeddingAPIKey  string
	VectorSize       int

	QdrantURL    string
	QdrantAPIKey string

	DocsCollection string
	ChatCollection string
	CodeCollection string

	DocsFolderPath string
	ChatFolderPath string
	CodeFolderPath string

	ChunkSize        int
	ChunkOverlap     int
	CodeChunkSize    int
	CodeChunkOverlap int
	CodeMaxFileSize  int64
	CodeIgnoredDirs  []string
	DocsExtensions   []string
	CodeExtensions   []string

	RateWindow      time.Duration
	RateMaxRequests int

	DBPath  string
	APIPort string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels looking for a .env at the project root
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingAPIKey:  getEnv("OPENAI_API_KEY", ""),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		DocsCollection:   getEnv("DOCS_COLLECTION", "docs_documents"),
		ChatCollection:   getEnv("CHAT_COLLECTION", "chat_messages"),
		CodeCollection:   getEnv("CODE_COLLECTION", "codebase"),
		DocsFolderPath:   getEnv("DOCS_FOLDER_PATH", filepath.Join("data", "docs")),
		ChatFolderPath:   getEnv("CHAT_FOLDER_PATH", filepath.Join("data", "chat")),
		CodeFolderPath:   getEnv("CODE_FOLDER_PATH", filepath.Join("data", "code")),
		DBPath:           getEnv("DB_PATH", "./data/corpussearch.db"),
		APIPort:          getEnv("API_PORT", "3000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}
	if cfg.CodeChunkSize, err = getEnvInt("CODE_CHUNK_SIZE", 500); err != nil {
		return nil, err
	}
	if cfg.CodeChunkOverlap, err = getEnvInt("CODE_CHUNK_OVERLAP", 100); err != nil {
		return nil, err
	}

	maxFileSize, err := getEnvInt("CODE_MAX_FILE_SIZE", 500000)
	if err != nil {
		return nil, err
	}
	cfg.CodeMaxFileSize = int64(maxFileSize)

	ignored := getEnv("CODE_IGNORED_DIRS", "node_modules,dist,build,.git,coverage,vendor")
	for _, dir := range strings.Split(ignored, ",") {
		if dir = strings.TrimSpace(dir); dir != "" {
			cfg.CodeIgnoredDirs = append(cfg.CodeIgnoredDirs, dir)
		}
	}

	cfg.DocsExtensions = splitExtensions(getEnv("DOCS_EXTENSIONS", ".md,.mdx"))
	cfg.CodeExtensions = splitExtensions(getEnv("CODE_EXTENSIONS", ".ts,.tsx,.js,.jsx"))

	windowMs, err := getEnvInt("RATE_WINDOW_MS", 60000)
	if err != nil {
		return nil, err
	}
	cfg.RateWindow = time.Duration(windowMs) * time.Millisecond
	if cfg.RateMaxRequests, err = getEnvInt("RATE_MAX_REQUESTS", 10); err != nil {
		return nil, err
	}

	// Vector size must match the embedding model's output dimension. For
	// text-embedding-3-small this is 1536; if the model changes, the Qdrant
	// collections must be recreated with the new size.
	vectorSizeStr := getEnv("VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}
	if cfg.CodeChunkOverlap >= cfg.CodeChunkSize {
		return nil, fmt.Errorf("CODE_CHUNK_OVERLAP (%d) must be smaller than CODE_CHUNK_SIZE (%d)", cfg.CodeChunkOverlap, cfg.CodeChunkSize)
	}
	if cfg.RateMaxRequests <= 0 {
		return nil, fmt.Errorf("RATE_MAX_REQUESTS must be greater than 0")
	}

	// Create the data directory if it doesn't exist (for the run ledger DB)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// CollectionFor resolves a corpus name (docs, chat, code) to its configured
// collection name. Returns an empty string for unknown corpus names.
func (c *Config) CollectionFor(corpus string) string {
	switch corpus {
	case "docs":
		return c.DocsCollection
	case "chat":
		return c.ChatCollection
	case "code":
		return c.CodeCollection
	}
	return ""
}

// splitExtensions parses a comma-separated extension list, normalizing
// entries to lower case with a leading dot.
func splitExtensions(raw string) []string {
	var exts []string
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

// parseLogLevel converts a level name to a slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", level)
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}
