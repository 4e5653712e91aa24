package config

import "os"

const (
	PlatformNative = "native"
	PlatformWeb    = "web"
)

type Config struct {
	ListenAddr   string
	Platform     string
	DataDir      string
	PrefsBackend string
	DBPath       string
	FileBaseURL  string
	LogLevel     string
	LogFormat    string
	LogFile      string
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		Platform:     getEnv("PLATFORM", PlatformNative),
		DataDir:      getEnv("DATA_DIR", "/data"),
		PrefsBackend: getEnv("PREFS_BACKEND", "sqlite"),
		DBPath:       getEnv("DB_PATH", "/data/lumo.db"),
		FileBaseURL:  getEnv("FILE_BASE_URL", "/files"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		LogFile:      getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
