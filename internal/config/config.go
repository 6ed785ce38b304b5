package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/storage"
)

// Режимы хранения
const (
	ModeDatabase = "database"
	ModeRedis    = "redis"
	ModeSQLite   = "sqlite"
	ModeFile     = "file"
	ModeMemory   = "in-memory"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress   string
	BaseURL         string
	FileStoragePath string
	DatabaseDSN     string
	RedisAddr       string
	SQLitePath      string
	StorageKey      string
	SubmitDelay     time.Duration
	SessionSecret   string
	ShutdownTimeout time.Duration
	Mode            string
}

// jsonConfig формат файла конфигурации, длительности задаются строкой ("1.5s")
type jsonConfig struct {
	ServerAddress   string `json:"server_address"`
	BaseURL         string `json:"base_url"`
	FileStoragePath string `json:"file_storage_path"`
	DatabaseDSN     string `json:"database_dsn"`
	RedisAddr       string `json:"redis_addr"`
	SQLitePath      string `json:"sqlite_path"`
	StorageKey      string `json:"storage_key"`
	SessionSecret   string `json:"session_secret"`
	SubmitDelay     string `json:"submit_delay"`
	ShutdownTimeout string `json:"shutdown_timeout"`
}

// NewConfig читает конфигурацию из аргументов процесса
func NewConfig(logger *zap.Logger) (*Config, error) {
	return Load(os.Args[1:], logger)
}

// Load собирает конфигурацию. Приоритет: флаги, окружение, JSON-файл, значения по умолчанию.
func Load(args []string, logger *zap.Logger) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	v.SetDefault("BASE_URL", "http://localhost:8080")
	v.SetDefault("FILE_STORAGE_PATH", "")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("SQLITE_PATH", "")
	v.SetDefault("STORAGE_KEY", storage.DefaultKey)
	v.SetDefault("SUBMIT_DELAY", 1500*time.Millisecond)
	v.SetDefault("SESSION_SECRET", "change-me")
	v.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
	v.SetDefault("CONFIG", "")

	v.AutomaticEnv()

	// Читаем .env, если есть (не переопределяет переменные окружения)
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	serverAddress := fs.String("a", "", "server address")
	baseURL := fs.String("b", "", "base URL")
	fileStoragePath := fs.String("f", "", "file storage path (JSON file)")
	databaseDSN := fs.String("d", "", "PostgreSQL DSN")
	redisAddr := fs.String("r", "", "Redis address")
	sqlitePath := fs.String("l", "", "SQLite database path")
	configPath := fs.String("c", "", "path to JSON config file")
	fs.StringVar(configPath, "config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if *configPath == "" {
		*configPath = v.GetString("CONFIG")
	}
	if *configPath != "" {
		if err := applyJSON(v, *configPath); err != nil {
			logger.Warn("Не удалось прочитать JSON-файл конфигурации", zap.String("path", *configPath), zap.Error(err))
		}
	}

	cfg := &Config{
		ServerAddress:   v.GetString("SERVER_ADDRESS"),
		BaseURL:         v.GetString("BASE_URL"),
		FileStoragePath: v.GetString("FILE_STORAGE_PATH"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		SQLitePath:      v.GetString("SQLITE_PATH"),
		StorageKey:      v.GetString("STORAGE_KEY"),
		SubmitDelay:     v.GetDuration("SUBMIT_DELAY"),
		SessionSecret:   v.GetString("SESSION_SECRET"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	// Флаги имеют наивысший приоритет
	if *serverAddress != "" {
		cfg.ServerAddress = *serverAddress
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *fileStoragePath != "" {
		cfg.FileStoragePath = *fileStoragePath
	}
	if *databaseDSN != "" {
		cfg.DatabaseDSN = *databaseDSN
	}
	if *redisAddr != "" {
		cfg.RedisAddr = *redisAddr
	}
	if *sqlitePath != "" {
		cfg.SQLitePath = *sqlitePath
	}

	cfg.Mode = cfg.detectMode()

	logger.Info("Инициализация конфигурации",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("base_url", cfg.BaseURL),
		zap.String("file_storage_path", cfg.FileStoragePath),
		zap.Bool("database", cfg.DatabaseDSN != ""),
		zap.String("redis_addr", cfg.RedisAddr),
		zap.String("sqlite_path", cfg.SQLitePath),
		zap.String("storage_key", cfg.StorageKey),
		zap.Duration("submit_delay", cfg.SubmitDelay),
		zap.String("mode", cfg.Mode),
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	return cfg, nil
}

// applyJSON подставляет значения из файла вместо значений по умолчанию,
// поэтому окружение по-прежнему их переопределяет
func applyJSON(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw jsonConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ошибка разбора JSON: %w", err)
	}

	set := func(key, val string) {
		if val != "" {
			v.SetDefault(key, val)
		}
	}
	set("SERVER_ADDRESS", raw.ServerAddress)
	set("BASE_URL", raw.BaseURL)
	set("FILE_STORAGE_PATH", raw.FileStoragePath)
	set("DATABASE_DSN", raw.DatabaseDSN)
	set("REDIS_ADDR", raw.RedisAddr)
	set("SQLITE_PATH", raw.SQLitePath)
	set("STORAGE_KEY", raw.StorageKey)
	set("SESSION_SECRET", raw.SessionSecret)

	for key, val := range map[string]string{"SUBMIT_DELAY": raw.SubmitDelay, "SHUTDOWN_TIMEOUT": raw.ShutdownTimeout} {
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		v.SetDefault(key, d)
	}
	return nil
}

// detectMode выбирает хранилище: database > redis > sqlite > file > in-memory
func (cfg *Config) detectMode() string {
	switch {
	case cfg.DatabaseDSN != "":
		return ModeDatabase
	case cfg.RedisAddr != "":
		return ModeRedis
	case cfg.SQLitePath != "":
		return ModeSQLite
	case cfg.FileStoragePath != "":
		return ModeFile
	default:
		return ModeMemory
	}
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return errors.New("адрес сервера не может быть пустым")
	}
	if cfg.BaseURL == "" {
		return errors.New("базовый URL не может быть пустым")
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("некорректный базовый URL %q", cfg.BaseURL)
	}
	if cfg.StorageKey == "" {
		return errors.New("ключ хранилища не может быть пустым")
	}
	if cfg.SubmitDelay < 0 {
		return errors.New("задержка отправки не может быть отрицательной")
	}
	if cfg.SessionSecret == "" {
		return errors.New("секрет сессии не может быть пустым")
	}
	return nil
}
