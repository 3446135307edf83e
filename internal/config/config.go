package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Optional bearer token; empty disables auth.
	APIKey string

	// Worker pool
	WorkerCount          int
	MaxQueueSize         int
	MaxConcurrentExtract int

	// External tools
	MaxConcurrentTools int
	ToolTimeout        time.Duration
	Merger             string // "pdfcpu" or "pdfunite"
	PdfunitePath       string
	Converter          string // "docx" or "pandoc"
	PandocPath         string
	PdftotextFallback  bool
	PdftotextPath      string

	// Upload limits
	MaxUploadBytes int64
	MaxBatchFiles  int

	// Batch state
	JobTTL      time.Duration
	StrictFacts bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PDDEPACK_API_KEY"),

		WorkerCount:          envInt("WORKER_COUNT", 4),
		MaxQueueSize:         envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentExtract: envInt("MAX_CONCURRENT_EXTRACT", 5),

		MaxConcurrentTools: envInt("MAX_CONCURRENT_TOOLS", 4),
		ToolTimeout:        envDuration("TOOL_TIMEOUT", 60*time.Second),
		Merger:             envOr("MERGER", "pdfcpu"),
		PdfunitePath:       envOr("PDFUNITE_PATH", "pdfunite"),
		Converter:          envOr("CONVERTER", "docx"),
		PandocPath:         envOr("PANDOC_PATH", "pandoc"),
		PdftotextFallback:  envBool("PDF_FALLBACK_PDFTOTEXT", true),
		PdftotextPath:      envOr("PDFTOTEXT_PATH", "pdftotext"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		MaxBatchFiles:  envInt("MAX_BATCH_FILES", 100),

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StrictFacts: envBool("STRICT_FACTS", false),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentExtract <= 0 {
		cfg.MaxConcurrentExtract = 5
	}
	if cfg.MaxConcurrentTools <= 0 {
		cfg.MaxConcurrentTools = 4
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = 60 * time.Second
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxBatchFiles <= 0 {
		cfg.MaxBatchFiles = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Merger {
	case "pdfcpu", "pdfunite":
	default:
		return fmt.Errorf("MERGER must be pdfcpu or pdfunite, got %q", c.Merger)
	}
	switch c.Converter {
	case "docx", "pandoc":
	default:
		return fmt.Errorf("CONVERTER must be docx or pandoc, got %q", c.Converter)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
