package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// DBConfig содержит параметры подключения к PostgreSQL.
type DBConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"password"`
	Name          string `yaml:"name"`
	SSLMode       string `yaml:"ssl_mode"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// DSN возвращает строку подключения в формате lib/pq. Значения заключены в кавычки,
// иначе пустой пароль или пароль с пробелом сдвигает разбор остальных параметров.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(c.Host), c.Port, quoteDSN(c.User), quoteDSN(c.Password), quoteDSN(c.Name), quoteDSN(c.SSLMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

type HTTPConfig struct {
	Port             string `yaml:"port"`
	CORSAllowOrigins string `yaml:"cors_allow_origins"`
	UploadDir        string `yaml:"upload_dir"`
}

// AllowOrigins разбирает список источников CORS, разделённых запятыми.
func (c HTTPConfig) AllowOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type SFNConfig struct {
	StateMachineARN string `yaml:"state_machine_arn"`
}

// Config - полная конфигурация приложения.
type Config struct {
	Env           string         `yaml:"env"`
	HTTP          HTTPConfig     `yaml:"http"`
	DB            DBConfig       `yaml:"database"`
	Auth          AuthConfig     `yaml:"auth"`
	Redis         RedisConfig    `yaml:"redis"`
	OpenAI        OpenAIConfig   `yaml:"openai"`
	Telegram      TelegramConfig `yaml:"telegram"`
	SFN           SFNConfig      `yaml:"sfn"`
	EnableTracing bool           `yaml:"enable_tracing"`

	// Defaulted - переменные окружения, для которых не нашлось значения ни в окружении,
	// ни в YAML-файле.
	Defaulted []string `yaml:"-"`

	fromFile map[string]bool
}

// IsLocal сообщает, запущено ли приложение в локальном окружении.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Env, "LOCAL")
}

func defaults() *Config {
	return &Config{
		Env: "LOCAL",
		HTTP: HTTPConfig{
			Port:             "5001",
			CORSAllowOrigins: "*",
			UploadDir:        "./uploads",
		},
		DB: DBConfig{
			Host:          "localhost",
			Port:          5432,
			User:          "safaruz_user",
			Name:          "safaruz",
			SSLMode:       "disable",
			MigrationsDir: "./migrations",
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// envKeys сопоставляет пути в YAML-файле с переменными окружения.
var envKeys = map[string]string{
	"env":                     "ENV",
	"http.port":               "API_PORT",
	"http.cors_allow_origins": "CORS_ALLOW_ORIGINS",
	"http.upload_dir":         "UPLOAD_DIR",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASS",
	"database.name":           "DB_NAME",
	"database.ssl_mode":       "DB_SSL_MODE",
	"database.migrations_dir": "MIGRATIONS_DIR",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.token_ttl":          "TOKEN_TTL",
	"redis.addr":              "REDIS_ADDR",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
	"openai.api_key":          "OPENAI_API_KEY",
	"openai.model":            "OPENAI_MODEL",
	"openai.base_url":         "OPENAI_BASE_URL",
	"telegram.bot_token":      "BOT_TOKEN",
	"telegram.admin_chat_id":  "TELEGRAM_ADMIN_CHAT_ID",
	"sfn.state_machine_arn":   "SFN_STATE_MACHINE_ARN",
}

// Load читает конфигурацию API: значения по умолчанию, затем YAML-файл из CONFIG_FILE (если задан),
// затем переменные окружения. Переменные окружения имеют наивысший приоритет.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadBot читает ту же конфигурацию для процесса бота. JWT_SECRET не нужен,
// зато обязательны токен бота и чат администраторов.
func LoadBot() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.verifyBot(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() (*Config, error) {
	cfg := defaults()
	cfg.fromFile = map[string]bool{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: не удалось прочитать %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: не удалось разобрать %s: %w", path, err)
		}
		var tree map[interface{}]interface{}
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("config: не удалось разобрать %s: %w", path, err)
		}
		markFileKeys("", tree, cfg.fromFile)
	}

	cfg.Env = cfg.getEnvOrDefault("ENV", cfg.Env)
	cfg.HTTP.Port = cfg.getEnvOrDefault("API_PORT", cfg.HTTP.Port)
	cfg.HTTP.CORSAllowOrigins = cfg.getEnvOrDefault("CORS_ALLOW_ORIGINS", cfg.HTTP.CORSAllowOrigins)
	cfg.HTTP.UploadDir = cfg.getEnvOrDefault("UPLOAD_DIR", cfg.HTTP.UploadDir)

	cfg.DB.Host = cfg.getEnvOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = cfg.getEnvAsIntOrDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.User = cfg.getEnvOrDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = cfg.getEnvOrDefault("DB_PASS", cfg.DB.Password)
	cfg.DB.Name = cfg.getEnvOrDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = cfg.getEnvOrDefault("DB_SSL_MODE", cfg.DB.SSLMode)
	cfg.DB.MigrationsDir = cfg.getEnvOrDefault("MIGRATIONS_DIR", cfg.DB.MigrationsDir)

	cfg.Auth.JWTSecret = cfg.getEnvOrDefault("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.TokenTTL = cfg.getEnvAsDurationOrDefault("TOKEN_TTL", cfg.Auth.TokenTTL)

	cfg.Redis.Addr = cfg.getEnvOrDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = cfg.getEnvOrDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = cfg.getEnvAsIntOrDefault("REDIS_DB", cfg.Redis.DB)

	cfg.OpenAI.APIKey = cfg.getEnvOrDefault("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = cfg.getEnvOrDefault("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = cfg.getEnvOrDefault("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)

	cfg.Telegram.BotToken = cfg.getEnvOrDefault("BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.AdminChatID = int64(cfg.getEnvAsIntOrDefault("TELEGRAM_ADMIN_CHAT_ID", int(cfg.Telegram.AdminChatID)))

	cfg.SFN.StateMachineARN = cfg.getEnvOrDefault("SFN_STATE_MACHINE_ARN", cfg.SFN.StateMachineARN)

	// Трассировка X-Ray включается только явно. AWS_XRAY_SDK_DISABLED=true выключает её всегда.
	enableKey := os.Getenv("SAFARUZ_ENABLE_TRACING")
	if enableKey != "" {
		cfg.EnableTracing = strings.EqualFold(enableKey, "true") || enableKey == "1"
	}
	if sdkDisabled() {
		cfg.EnableTracing = false
	}
	if cfg.EnableTracing {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "FALSE")
	} else {
		os.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")
	}
	return cfg, nil
}

// markFileKeys отмечает переменные окружения, значения которых заданы в YAML-файле.
func markFileKeys(prefix string, tree map[interface{}]interface{}, out map[string]bool) {
	for k, v := range tree {
		path := fmt.Sprint(k)
		if prefix != "" {
			path = prefix + "." + path
		}
		if nested, ok := v.(map[interface{}]interface{}); ok {
			markFileKeys(path, nested, out)
			continue
		}
		if key, ok := envKeys[path]; ok {
			out[key] = true
		}
	}
}

// Verify отсекает заведомо неверные значения конфигурации API.
func (c *Config) Verify() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET не задан")
	}
	return c.verifyCommon()
}

func (c *Config) verifyBot() error {
	if c.Telegram.BotToken == "" || c.Telegram.AdminChatID == 0 {
		return fmt.Errorf("config: не указан токен бота (BOT_TOKEN) или чат администраторов (TELEGRAM_ADMIN_CHAT_ID)")
	}
	return c.verifyCommon()
}

func (c *Config) verifyCommon() error {
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL должен быть положительным")
	}
	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		return fmt.Errorf("config: некорректный API_PORT %q", c.HTTP.Port)
	}
	if c.DB.Port <= 0 {
		return fmt.Errorf("config: некорректный DB_PORT %d", c.DB.Port)
	}
	return nil
}

func (c *Config) getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	c.markDefaulted(key)
	return defaultValue
}

func (c *Config) getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	c.markDefaulted(key)
	return defaultValue
}

func (c *Config) getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	c.markDefaulted(key)
	return defaultValue
}

func (c *Config) markDefaulted(key string) {
	if !c.fromFile[key] {
		c.Defaulted = append(c.Defaulted, key)
	}
}

func sdkDisabled() bool {
	return strings.EqualFold(os.Getenv("AWS_XRAY_SDK_DISABLED"), "true")
}
