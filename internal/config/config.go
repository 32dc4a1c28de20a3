package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	APIURL       string
	APITimeout   time.Duration
	DBDSN        string
	LogFile      string
	LogLevel     string
	CookieSecret string
	CookieSecure bool
	TemplatesDir string
	StaticDir    string
}

func Load() Config {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_URL", "http://localhost:4000")
	v.SetDefault("API_TIMEOUT", "0s") // 0 = transport default
	v.SetDefault("DB_DSN", "eduadmin.db")
	v.SetDefault("LOG_FILE", "./eduadmin.log")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COOKIE_SECRET", "change-me-in-production")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("[warn] could not read config file %s: %v", file, err)
		}
	}

	cfg := Config{
		Port:         v.GetString("PORT"),
		APIURL:       v.GetString("API_URL"),
		APITimeout:   v.GetDuration("API_TIMEOUT"),
		DBDSN:        v.GetString("DB_DSN"),
		LogFile:      v.GetString("LOG_FILE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		CookieSecret: v.GetString("COOKIE_SECRET"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		TemplatesDir: v.GetString("TEMPLATES_DIR"),
		StaticDir:    v.GetString("STATIC_DIR"),
	}
	log.Printf("[config] PORT=%s API_URL=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, cfg.APIURL, cfg.DBDSN, cfg.LogFile)
	return cfg
}
