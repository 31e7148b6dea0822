package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName      string
	Port         string
	Env          string
	Debug        bool
	TemplatePath string
	// IDPrefix marks auto-generated element identifiers produced by the
	// upstream editor (ids like "i1", "i2", ...). NewIDPrefix is prepended
	// to freshly minted replacement identifiers.
	IDPrefix    string
	NewIDPrefix string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:      os.Getenv("APP_NAME"),
			Port:         getEnv("PORT", "3000"),
			Env:          os.Getenv("APP_ENV"),
			Debug:        os.Getenv("DEBUG") == "true",
			TemplatePath: getEnv("TEMPLATE_PATH", "template.html"),
			IDPrefix:     getEnv("ID_PREFIX", "i"),
			NewIDPrefix:  getEnv("NEW_ID_PREFIX", "el-"),
		}
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
