// Package config provides environment-driven configuration for the blindhunter
// web application: name/version, log level, folders and listen address.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

// LogLevel is the textual log level read from BH_LOG_LEVEL.
type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const defaultPort = 5000

// LoadEnv loads variables from the given .env files (".env" when none given)
// without overriding variables already present in the environment.
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("BH_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("BH_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("BH_DB_FOLDER")
	if dbFolderPath == "" {
		if IsDebug() {
			return "db"
		}
		dbFolderPath = "/etc/blindhunter"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return filepath.Join(GetDBFolderPath(), fmt.Sprintf("%s.db", GetName()))
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("BH_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetListen returns the listen IP, empty meaning all interfaces.
func GetListen() string {
	return os.Getenv("BH_LISTEN")
}

// GetPort returns BH_PORT, falling back to 5000 when unset or invalid.
func GetPort() int {
	port, err := strconv.Atoi(os.Getenv("BH_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return defaultPort
	}
	return port
}

// GetSessionSecret returns the operator supplied session secret, if any.
func GetSessionSecret() string {
	return os.Getenv("BH_SESSION_SECRET")
}
