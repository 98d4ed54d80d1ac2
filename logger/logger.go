// Package logger provides logging for blindhunter with dual backends
// (console/syslog and file) and a buffered copy of recent entries.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/blindhunter/blindhunter/config"
	"github.com/op/go-logging"
)

const (
	module           = "blindhunter"
	maxLogBufferSize = 10240                 // Maximum log entries kept in memory
	logFileName      = "blindhunter.log"     // Log file name
	timeFormat       = "2006/01/02 15:04:05" // Log timestamp format
)

type entry struct {
	time  string
	level logging.Level
	log   string
}

var (
	// Until InitLogger runs, messages go to go-logging's default stderr backend.
	logger  = logging.MustGetLogger(module)
	logFile *os.File

	bufferMu  sync.Mutex
	logBuffer []entry
)

// InitLogger initializes dual logging backends: console/syslog and file.
// Console logging uses the specified level, file logging always uses DEBUG level.
func InitLogger(level logging.Level) {
	newLogger := logging.MustGetLogger(module)
	backends := make([]logging.Backend, 0, 2)

	if consoleBackend := initDefaultBackend(); consoleBackend != nil {
		leveledBackend := logging.AddModuleLevel(consoleBackend)
		leveledBackend.SetLevel(level, module)
		backends = append(backends, leveledBackend)
	}

	if fileBackend := initFileBackend(); fileBackend != nil {
		leveledBackend := logging.AddModuleLevel(fileBackend)
		leveledBackend.SetLevel(logging.DEBUG, module)
		backends = append(backends, leveledBackend)
	}

	newLogger.SetBackend(logging.MultiLogger(backends...))
	logger = newLogger
}

// ParseLevel maps a config log level onto a go-logging level.
func ParseLevel(level config.LogLevel) (logging.Level, error) {
	switch level {
	case config.Debug:
		return logging.DEBUG, nil
	case config.Info:
		return logging.INFO, nil
	case config.Notice:
		return logging.NOTICE, nil
	case config.Warn:
		return logging.WARNING, nil
	case config.Error:
		return logging.ERROR, nil
	}
	return logging.INFO, fmt.Errorf("unknown log level: %s", level)
}

// initDefaultBackend creates the console/syslog logging backend.
// Windows always logs to stderr; elsewhere syslog is tried first.
func initDefaultBackend() logging.Backend {
	var backend logging.Backend
	includeTime := false

	if runtime.GOOS == "windows" {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = true
	} else {
		if syslogBackend, err := logging.NewSyslogBackend(""); err != nil {
			fmt.Fprintf(os.Stderr, "syslog backend disabled: %v\n", err)
			backend = logging.NewLogBackend(os.Stderr, "", 0)
			includeTime = os.Getppid() > 0
		} else {
			backend = syslogBackend
		}
	}

	return logging.NewBackendFormatter(backend, newFormatter(includeTime))
}

// initFileBackend creates the file logging backend, truncating the log file on startup.
func initFileBackend() logging.Backend {
	logDir := config.GetLogFolder()
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	backend := logging.NewLogBackend(file, "", 0)
	return logging.NewBackendFormatter(backend, newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// CloseLogger closes the log file. Called during shutdown.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
	addToBuffer(logging.DEBUG, fmt.Sprint(args...))
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
	addToBuffer(logging.DEBUG, fmt.Sprintf(format, args...))
}

func Info(args ...any) {
	logger.Info(args...)
	addToBuffer(logging.INFO, fmt.Sprint(args...))
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
	addToBuffer(logging.INFO, fmt.Sprintf(format, args...))
}

func Notice(args ...any) {
	logger.Notice(args...)
	addToBuffer(logging.NOTICE, fmt.Sprint(args...))
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
	addToBuffer(logging.NOTICE, fmt.Sprintf(format, args...))
}

func Warning(args ...any) {
	logger.Warning(args...)
	addToBuffer(logging.WARNING, fmt.Sprint(args...))
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
	addToBuffer(logging.WARNING, fmt.Sprintf(format, args...))
}

func Error(args ...any) {
	logger.Error(args...)
	addToBuffer(logging.ERROR, fmt.Sprint(args...))
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
	addToBuffer(logging.ERROR, fmt.Sprintf(format, args...))
}

func addToBuffer(level logging.Level, newLog string) {
	bufferMu.Lock()
	defer bufferMu.Unlock()

	if len(logBuffer) >= maxLogBufferSize {
		logBuffer = logBuffer[1:]
	}
	logBuffer = append(logBuffer, entry{
		time:  time.Now().Format(timeFormat),
		level: level,
		log:   newLog,
	})
}

// GetLogs returns up to c of the most recent entries at or above the
// severity of level ("DEBUG" returns everything), newest first.
func GetLogs(c int, level string) []string {
	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.DEBUG
	}

	bufferMu.Lock()
	defer bufferMu.Unlock()

	var output []string
	for i := len(logBuffer) - 1; i >= 0 && len(output) < c; i-- {
		if logBuffer[i].level <= logLevel {
			output = append(output, fmt.Sprintf("%s %s - %s", logBuffer[i].time, logBuffer[i].level, logBuffer[i].log))
		}
	}
	return output
}
