package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/antibyte/nxterm/pkg/configuration"
)

// LogLevel definiert die verschiedenen Log-Level
type LogLevel int32

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	}
	return "UNKNOWN"
}

// LogArea definiert die verschiedenen Log-Bereiche
type LogArea string

const (
	AreaWebSocket   LogArea = "websocket"
	AreaTerminal    LogArea = "terminal"
	AreaAuth        LogArea = "auth"
	AreaSecurity    LogArea = "security"
	AreaSession     LogArea = "session"
	AreaInterpreter LogArea = "interpreter"
	AreaMachine     LogArea = "machine"
	AreaDisk        LogArea = "disk"
	AreaDatabase    LogArea = "database"
	AreaConfig      LogArea = "config"
	AreaGeneral     LogArea = "general"
)

var allAreas = []LogArea{
	AreaWebSocket, AreaTerminal, AreaAuth, AreaSecurity, AreaSession,
	AreaInterpreter, AreaMachine, AreaDisk, AreaDatabase, AreaConfig,
	AreaGeneral,
}

// Logger schreibt Einträge gefiltert nach Level und Bereich
type Logger struct {
	enabled       atomic.Bool
	level         atomic.Int32
	areaEnabled   map[LogArea]*atomic.Bool
	mutex         sync.Mutex
	out           io.Writer
	file          *os.File
	logPath       string
	maxSize       int64
	rotationCount int
	currentSize   int64
}

var (
	globalLogger *Logger
	initOnce     sync.Once
)

// Initialize initialisiert das globale Logging-System aus der [Debug] Sektion
func Initialize() error {
	var err error
	initOnce.Do(func() {
		l := newLogger()
		l.loadConfig()
		if err = l.openLogFile(); err == nil {
			globalLogger = l
		}
	})
	return err
}

// InitializeWriter leitet alle Einträge auf w um. Alle Bereiche und Level sind aktiv.
// Wird von Tests verwendet.
func InitializeWriter(w io.Writer) {
	l := newLogger()
	l.enabled.Store(true)
	l.level.Store(int32(DEBUG))
	for _, flag := range l.areaEnabled {
		flag.Store(true)
	}
	l.out = w
	globalLogger = l
}

func newLogger() *Logger {
	l := &Logger{areaEnabled: make(map[LogArea]*atomic.Bool, len(allAreas))}
	for _, area := range allAreas {
		l.areaEnabled[area] = new(atomic.Bool)
	}
	return l
}

func (l *Logger) loadConfig() {
	l.enabled.Store(configuration.GetBool("Debug", "enable_debug_logging", true))
	l.level.Store(int32(parseLogLevel(configuration.GetString("Debug", "log_level", "INFO"))))

	l.logPath = configuration.GetString("Debug", "log_file", "debug.log")
	l.maxSize = int64(configuration.GetInt("Debug", "max_log_size_mb", 10)) * 1024 * 1024
	l.rotationCount = configuration.GetInt("Debug", "log_rotation_count", 3)

	for area, flag := range l.areaEnabled {
		flag.Store(configuration.GetBool("Debug", "log_"+string(area), false))
	}
}

func (l *Logger) openLogFile() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.openLocked(os.O_APPEND)
}

func (l *Logger) openLocked(mode int) error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
		return err
	}
	file, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_WRONLY|mode, 0644)
	if err != nil {
		return err
	}
	l.file = file
	l.out = file
	l.currentSize = 0
	if stat, err := file.Stat(); err == nil {
		l.currentSize = stat.Size()
	}
	return nil
}

// rotateLocked verschiebt debug.log nach debug.log.1 usw.
func (l *Logger) rotateLocked() {
	if l.file == nil {
		return
	}
	l.file.Close()
	l.file = nil

	os.Remove(fmt.Sprintf("%s.%d", l.logPath, l.rotationCount))
	for i := l.rotationCount - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", l.logPath, i), fmt.Sprintf("%s.%d", l.logPath, i+1))
	}
	os.Rename(l.logPath, l.logPath+".1")

	if err := l.openLocked(os.O_TRUNC); err != nil {
		log.Printf("[ERROR] [GENERAL] log rotation failed: %v", err)
	}
}

func (l *Logger) shouldLog(level LogLevel, area LogArea) bool {
	if !l.enabled.Load() || LogLevel(l.level.Load()) > level {
		return false
	}
	flag, ok := l.areaEnabled[area]
	return ok && flag.Load()
}

func (l *Logger) write(level LogLevel, area LogArea, message string) {
	_, file, line, _ := runtime.Caller(3)
	entry := fmt.Sprintf("[%s] %s [%s:%d] [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"),
		level,
		filepath.Base(file),
		line,
		strings.ToUpper(string(area)),
		message)

	l.mutex.Lock()
	if l.out != nil {
		n, err := io.WriteString(l.out, entry)
		if err == nil && l.file != nil {
			l.currentSize += int64(n)
			if l.maxSize > 0 && l.currentSize > l.maxSize {
				l.rotateLocked()
			}
		}
	}
	l.mutex.Unlock()

	// Wichtige Meldungen zusätzlich ins Standard-Log
	if level >= WARN {
		log.Printf("[%s] [%s] %s", level, strings.ToUpper(string(area)), message)
	}
}

func logf(level LogLevel, area LogArea, format string, args ...interface{}) {
	if l := globalLogger; l != nil && l.shouldLog(level, area) {
		l.write(level, area, fmt.Sprintf(format, args...))
	}
}

// Debug schreibt Debug-Logs
func Debug(area LogArea, format string, args ...interface{}) { logf(DEBUG, area, format, args...) }

// Info schreibt Info-Logs
func Info(area LogArea, format string, args ...interface{}) { logf(INFO, area, format, args...) }

// Warn schreibt Warning-Logs
func Warn(area LogArea, format string, args ...interface{}) { logf(WARN, area, format, args...) }

// Error schreibt Error-Logs
func Error(area LogArea, format string, args ...interface{}) { logf(ERROR, area, format, args...) }

// Fatal schreibt Fatal-Logs und beendet das Programm
func Fatal(area LogArea, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if l := globalLogger; l != nil {
		l.write(FATAL, area, message)
	}
	log.Fatalf("[FATAL] [%s] %s", strings.ToUpper(string(area)), message)
}

// Convenience-Funktionen für häufig verwendete Bereiche

func WebSocketDebug(format string, args ...interface{}) { logf(DEBUG, AreaWebSocket, format, args...) }
func WebSocketInfo(format string, args ...interface{})  { logf(INFO, AreaWebSocket, format, args...) }
func WebSocketWarn(format string, args ...interface{})  { logf(WARN, AreaWebSocket, format, args...) }
func WebSocketError(format string, args ...interface{}) { logf(ERROR, AreaWebSocket, format, args...) }

func AuthDebug(format string, args ...interface{}) { logf(DEBUG, AreaAuth, format, args...) }
func AuthInfo(format string, args ...interface{})  { logf(INFO, AreaAuth, format, args...) }
func AuthWarn(format string, args ...interface{})  { logf(WARN, AreaAuth, format, args...) }
func AuthError(format string, args ...interface{}) { logf(ERROR, AreaAuth, format, args...) }

func SecurityWarn(format string, args ...interface{}) { logf(WARN, AreaSecurity, format, args...) }

func ConfigInfo(format string, args ...interface{}) { logf(INFO, AreaConfig, format, args...) }
func ConfigWarn(format string, args ...interface{}) { logf(WARN, AreaConfig, format, args...) }

// ReloadConfig lädt die Konfiguration neu
func ReloadConfig() error {
	if globalLogger == nil {
		return fmt.Errorf("logger not initialized")
	}
	globalLogger.loadConfig()
	return nil
}

// EnableArea aktiviert Logging für einen Bereich
func EnableArea(area LogArea) { setArea(area, true) }

// DisableArea deaktiviert Logging für einen Bereich
func DisableArea(area LogArea) { setArea(area, false) }

func setArea(area LogArea, on bool) {
	if globalLogger == nil {
		return
	}
	if flag, ok := globalLogger.areaEnabled[area]; ok {
		flag.Store(on)
	}
}

// GetAreaStatus gibt den Status eines Bereichs zurück
func GetAreaStatus(area LogArea) bool {
	if globalLogger == nil {
		return false
	}
	flag, ok := globalLogger.areaEnabled[area]
	return ok && flag.Load()
}

// ListAreas gibt alle verfügbaren Bereiche zurück
func ListAreas() []LogArea {
	return append([]LogArea(nil), allAreas...)
}

func parseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

// Close schließt das Logging-System
func Close() {
	if l := globalLogger; l != nil {
		l.mutex.Lock()
		defer l.mutex.Unlock()
		if l.file != nil {
			l.file.Close()
			l.file = nil
		}
		l.out = nil
	}
}
