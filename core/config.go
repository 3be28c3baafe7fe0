package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		WorkDir      string
		RollbarToken string

		Server  ServerConfig
		Storage StorageConfig
		Booking BookingConfig
		Log     LogConfig
	}

	ServerConfig struct {
		Address         string
		ShutdownTimeout time.Duration
	}

	StorageConfig struct {
		Driver    string
		DSN       string
		RedisAddr string
		RedisDB   int
	}

	BookingConfig struct {
		Delay time.Duration
		Days  int
	}

	LogConfig struct {
		Level  string
		Format string
	}
)

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Masomo Apply")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.address", "127.0.0.1:8000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("storage.driver", StorageSQLite)
	conf.SetDefault("storage.dsn", "file:masomo.db")
	conf.SetDefault("storage.redisAddr", "127.0.0.1:6379")
	conf.SetDefault("storage.redisDB", 0)
	conf.SetDefault("booking.delay", 1500*time.Millisecond)
	conf.SetDefault("booking.days", 7)
	conf.SetDefault("log.level", "info")
	conf.SetDefault("log.format", "console")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		WorkDir:      wd,
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:         conf.GetString("server.address"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(conf.GetString("storage.driver")),
			DSN:       conf.GetString("storage.dsn"),
			RedisAddr: conf.GetString("storage.redisAddr"),
			RedisDB:   conf.GetInt("storage.redisDB"),
		},
		Booking: BookingConfig{
			Delay: conf.GetDuration("booking.delay"),
			Days:  conf.GetInt("booking.days"),
		},
		Log: LogConfig{
			Level:  conf.GetString("log.level"),
			Format: conf.GetString("log.format"),
		},
	}
}
