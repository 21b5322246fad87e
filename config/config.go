package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 汇总服务与命令行共用的运行配置。
type Config struct {
	ListenAddr   string
	Backend      string // fpdf | canvas
	ThemePath    string
	LogLevel     string
	Minify       bool
	PrintEnabled bool
	ChromePath   string
	PrintTimeout time.Duration
	MaxBodyBytes int64
}

const (
	BackendFPDF   = "fpdf"
	BackendCanvas = "canvas"
)

// Load 先读取可选的 .env，再从环境变量加载配置，缺失时使用默认值。
func Load() Config {
	// .env 不存在时静默忽略
	_ = godotenv.Load(".env")
	return FromEnv()
}

// FromEnv 只读取当前进程的环境变量。
func FromEnv() Config {
	return Config{
		ListenAddr:   getEnv("VITAE_LISTEN_ADDR", ":8080"),
		Backend:      strings.ToLower(getEnv("VITAE_BACKEND", BackendFPDF)),
		ThemePath:    getEnv("VITAE_THEME", ""),
		LogLevel:     getEnv("VITAE_LOG_LEVEL", "info"),
		Minify:       getEnvBool("VITAE_MINIFY", false),
		PrintEnabled: getEnvBool("VITAE_PRINT_ENABLED", false),
		ChromePath:   getEnv("CHROME_PATH", ""),
		PrintTimeout: getEnvDuration("VITAE_PRINT_TIMEOUT", 60*time.Second),
		MaxBodyBytes: int64(getEnvInt("VITAE_MAX_BODY_BYTES", 1<<20)),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
