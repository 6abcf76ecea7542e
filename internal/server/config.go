package server

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven settings for the HTTP surface and the
// comparator tunables threaded into cross-validation.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	DateToleranceDays          int
	WeightDiscrepancyThreshold float64
	Timezone                   string
	MaxConcurrentAttachments   int

	// DebugCompare enables logging of literal compared values in the
	// comparison debug sink.
	DebugCompare bool
}

func LoadConfig() Config {
	return Config{
		Addr:                       getenv("CROSSVAL_ADDR", ":8080"),
		ReadTimeout:                getDuration("CROSSVAL_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:               getDuration("CROSSVAL_WRITE_TIMEOUT", 30*time.Second),
		DateToleranceDays:          getInt("DATE_TOLERANCE_DAYS", 3),
		WeightDiscrepancyThreshold: getFloat("WEIGHT_DISCREPANCY_THRESHOLD", 0.10),
		Timezone:                   getenv("CROSSVAL_TZ", "UTC"),
		MaxConcurrentAttachments:   getInt("CROSSVAL_MAX_CONCURRENT_ATTACHMENTS", 4),
		DebugCompare:               getBool("CROSSVAL_DEBUG_COMPARE", false),
	}
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
