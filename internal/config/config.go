package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type ContentSource string

const (
	SourceHTTP ContentSource = "http"
	SourceFS   ContentSource = "fs"
	SourceSQL  ContentSource = "sql"
)

type Config struct {
	HTTPAddr string

	ContentSource  ContentSource
	ContentBaseURL string // for http
	ContentDir     string // for fs
	FetchTimeout   time.Duration
	RequireBank    bool // exit at startup when the question bank cannot be loaded

	DBDriver string
	DBDSN    string

	// Optional document cache in front of the content source; empty disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	ExamSize    int
	SessionTTL  time.Duration
	MaxSessions int

	CORSOrigins []string

	LogLevel  string
	LogFormat string // json|text
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       str("HTTP_ADDR", ":8080"),
		ContentSource:  ContentSource(str("CONTENT_SOURCE", string(SourceFS))),
		ContentBaseURL: strings.TrimSuffix(str("CONTENT_BASE_URL", "http://localhost:8000"), "/"),
		ContentDir:     str("CONTENT_DIR", "./content"),
		FetchTimeout:   seconds("FETCH_TIMEOUT_SEC", 10*time.Second),
		RequireBank:    flag("REQUIRE_BANK", false),
		DBDriver:       str("DB_DRIVER", "sqlite"),
		DBDSN:          str("DB_DSN", ""),
		RedisAddr:      str("REDIS_ADDR", ""),
		RedisPassword:  str("REDIS_PASSWORD", ""),
		RedisDB:        number("REDIS_DB", 0),
		CacheTTL:       seconds("CACHE_TTL_SEC", 5*time.Minute),
		ExamSize:       number("EXAM_SIZE", 10),
		SessionTTL:     seconds("SESSION_TTL_SEC", 2*time.Hour),
		MaxSessions:    number("MAX_SESSIONS", 10000),
		CORSOrigins:    list("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000"),
		LogLevel:       str("LOG_LEVEL", "info"),
		LogFormat:      str("LOG_FORMAT", "text"),
	}
}

// lookup returns the trimmed value of k; unset and blank read the same.
func lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(k))
	return v, v != ""
}

func str(k, def string) string {
	if v, ok := lookup(k); ok {
		return v
	}
	return def
}

func flag(k string, def bool) bool {
	v, ok := lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func number(k string, def int) int {
	v, ok := lookup(k)
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

func seconds(k string, def time.Duration) time.Duration {
	return time.Duration(number(k, int(def/time.Second))) * time.Second
}

func list(k, def string) []string {
	var out []string
	for _, p := range strings.Split(str(k, def), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
