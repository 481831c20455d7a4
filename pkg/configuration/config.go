package configuration

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// LocalConfigPath wird nach der Hauptdatei geladen und überschreibt einzelne Werte
const LocalConfigPath = "settings.local.cfg"

// Config verwaltet die Anwendungskonfiguration
type Config struct {
	settings map[string]map[string]string
	filePath string
	mu       sync.RWMutex
}

var (
	globalConfig *Config
	once         sync.Once
)

// sectionOrder bestimmt die Reihenfolge beim Speichern
var sectionOrder = []string{"Server", "Console", "Disk", "Network", "JWT", "TLS", "Debug"}

// Initialize initialisiert die globale Konfiguration
func Initialize(configPath string) error {
	var err error
	once.Do(func() {
		globalConfig, err = loadConfig(configPath)
		if err != nil {
			return
		}
		if _, statErr := os.Stat(LocalConfigPath); statErr == nil {
			// Fehler in der lokalen Datei sind nicht fatal
			_ = globalConfig.mergeFile(LocalConfigPath)
		}
	})
	return err
}

// Use ersetzt die globale Konfiguration, z.B. in Tests
func Use(c *Config) {
	globalConfig = c
}

// New erstellt eine Konfiguration mit Standardwerten ohne Datei
func New() *Config {
	c := &Config{settings: make(map[string]map[string]string)}
	c.createDefaultConfig()
	return c
}

func loadConfig(filePath string) (*Config, error) {
	config := &Config{
		settings: make(map[string]map[string]string),
		filePath: filePath,
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		config.createDefaultConfig()
		if err := config.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}
	if err := config.mergeFile(filePath); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) mergeFile(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()
	return c.Merge(file)
}

// Merge liest INI-Text und überschreibt vorhandene Werte
func (c *Config) Merge(r io.Reader) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	scanner := bufio.NewScanner(r)
	section := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			if c.settings[section] == nil {
				c.settings[section] = make(map[string]string)
			}
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || section == "" {
			continue
		}
		c.settings[section][strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return scanner.Err()
}

func (c *Config) createDefaultConfig() {
	c.settings["Server"] = map[string]string{
		"http_port":     "8080",
		"static_dir":    "./static",
		"read_timeout":  "15s",
		"write_timeout": "15s",
	}

	// Konsole: ein Interpreter pro Verbindung
	c.settings["Console"] = map[string]string{
		"frame_rate":           "60",
		"boot_program":         "",
		"max_sessions":         "32",
		"session_idle_timeout": "30m",
		"input_queue_size":     "64",
		"max_source_kb":        "128",
	}

	c.settings["Disk"] = map[string]string{
		"database_path": "nxterm.db",
		"default_disk":  "DISK",
	}

	c.settings["Network"] = map[string]string{
		"pong_timeout":               "60s",
		"write_wait_timeout":         "10s",
		"max_message_size_kb":        "160",
		"send_buffer":                "8",
		"max_messages_per_second":    "120",
		"max_connections_per_minute": "30",
		"allowed_origins":            "",
	}

	c.settings["JWT"] = map[string]string{
		"secret_key":     "",
		"token_lifetime": "24h",
	}

	c.settings["TLS"] = map[string]string{
		"enabled":              "false",
		"domain":               "",
		"email":                "",
		"cache_dir":            "certs",
		"cert_file":            "",
		"key_file":             "",
		"force_https_redirect": "true",
		"https_port":           "443",
		"http_port":            "80",
	}

	c.settings["Debug"] = map[string]string{
		"enable_debug_logging": "true",
		"log_level":            "INFO",
		"log_file":             "debug.log",
		"max_log_size_mb":      "10",
		"log_rotation_count":   "3",
		"log_websocket":        "false",
		"log_terminal":         "false",
		"log_auth":             "true",
		"log_security":         "true",
		"log_session":          "false",
		"log_interpreter":      "false",
		"log_machine":          "false",
		"log_disk":             "true",
		"log_database":         "false",
		"log_config":           "true",
		"log_general":          "true",
	}
}

func (c *Config) saveToFile() error {
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return err
	}
	file, err := os.Create(c.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := c.write(w); err != nil {
		return err
	}
	return w.Flush()
}

func (c *Config) write(w io.Writer) error {
	if _, err := io.WriteString(w, "; nxterm configuration file\n; Generated automatically - modify with care\n;\n\n"); err != nil {
		return err
	}

	// Bekannte Sektionen zuerst, danach alle übrigen alphabetisch
	sections := append([]string(nil), sectionOrder...)
	var extra []string
	for name := range c.settings {
		known := false
		for _, s := range sectionOrder {
			if s == name {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	sections = append(sections, extra...)

	for _, section := range sections {
		settings, exists := c.settings[section]
		if !exists {
			continue
		}
		keys := make([]string, 0, len(settings))
		for key := range settings {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		if _, err := fmt.Fprintf(w, "[%s]\n", section); err != nil {
			return err
		}
		for _, key := range keys {
			if _, err := fmt.Fprintf(w, "%s = %s\n", key, settings[key]); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) lookup(section, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.settings[section][key]
	return value, ok
}

// GetString gibt einen String-Wert aus der Konfiguration zurück
func GetString(section, key, defaultValue string) string {
	if globalConfig == nil {
		return defaultValue
	}
	if value, ok := globalConfig.lookup(section, key); ok {
		return value
	}
	return defaultValue
}

// GetInt gibt einen Integer-Wert aus der Konfiguration zurück
func GetInt(section, key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetString(section, key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetFloat gibt einen Float-Wert aus der Konfiguration zurück
func GetFloat(section, key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(GetString(section, key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

// GetBool gibt einen Boolean-Wert aus der Konfiguration zurück
func GetBool(section, key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(GetString(section, key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetDuration gibt einen Duration-Wert aus der Konfiguration zurück
func GetDuration(section, key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(GetString(section, key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetSection returns a copy of all key-value pairs of a section
func GetSection(sectionName string) map[string]string {
	result := make(map[string]string)
	if globalConfig == nil {
		return result
	}
	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()
	for key, value := range globalConfig.settings[sectionName] {
		result[key] = value
	}
	return result
}

// SetString setzt einen String-Wert in der Konfiguration
func SetString(section, key, value string) {
	if globalConfig == nil {
		return
	}
	globalConfig.mu.Lock()
	defer globalConfig.mu.Unlock()
	if globalConfig.settings[section] == nil {
		globalConfig.settings[section] = make(map[string]string)
	}
	globalConfig.settings[section][key] = value
}

// Save speichert die aktuelle Konfiguration in die Datei
func Save() error {
	if globalConfig == nil {
		return fmt.Errorf("configuration not initialized")
	}
	globalConfig.mu.RLock()
	defer globalConfig.mu.RUnlock()
	if globalConfig.filePath == "" {
		return fmt.Errorf("configuration has no file path")
	}
	return globalConfig.saveToFile()
}
