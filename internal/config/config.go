// config реализует конфигурацию engagement-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env        string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig     `yaml:"http"`
	Ops        OpsConfig      `yaml:"ops"`
	DB         DBConfig       `yaml:"db"`
	IdentityDB IdentityConfig `yaml:"identity_db"`
	S3         S3Config       `yaml:"s3"`
	Auth       AuthConfig     `yaml:"auth"`
	Limits     LimitsConfig   `yaml:"limits"`
	Timeouts   TimeoutConfig  `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки API-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50086"`
}

// OpsConfig — служебный HTTP (health/metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"50096"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// DBConfig — настройки подключения к MongoDB (контент-store).
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// IdentityConfig — настройки подключения к PostgreSQL со справочником профилей.
type IdentityConfig struct {
	URL string `yaml:"url" env:"IDENTITY_DATABASE_URL" env-required:"true"`
}

// S3Config — доступ к MinIO/S3 с аватарами. Секция опциональна: при пустом
// endpoint presign-резолвер не поднимается и используются только avatar_url
// из профилей.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT"`
	RootUser      string        `yaml:"root_user" env:"S3_ROOT_USER"`
	RootPassword  string        `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET"`
	PresignTTL    time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"10m"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// Enabled сообщает, сконфигурирован ли доступ к бакету аватаров.
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// AuthConfig — проверка access-токенов сессионного провайдера.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer" env:"JWT_ISSUER" env-default:"coffee-shop"`
}

// LimitsConfig — границы пользовательского ввода и выдачи.
type LimitsConfig struct {
	// Длина текста в рунах: [BodyMin, BodyMax].
	BodyMin int `yaml:"body_min" env:"BODY_MIN" env-default:"3"`
	BodyMax int `yaml:"body_max" env:"BODY_MAX" env-default:"1000"`
	// Верхняя граница размера выдачи по одному родителю.
	MaxList int64 `yaml:"max_list" env:"MAX_LIST" env-default:"500"`
}

// TimeoutConfig — сервисные таймауты.
type TimeoutConfig struct {
	// Общий дедлайн обработки запроса.
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	// Таймаут одного обращения к справочнику профилей при регидрации.
	// Применяется к каждому lookup отдельно, а не ко всей выборке.
	IdentityLookup time.Duration `yaml:"identity_lookup" env:"IDENTITY_LOOKUP_TIMEOUT" env-default:"1s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.IdentityDB.URL == "" {
		return fmt.Errorf("identity_db.url is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.S3.Enabled() {
		if c.S3.RootUser == "" {
			return fmt.Errorf("s3.root_user is required when s3.endpoint is set")
		}

		if c.S3.RootPassword == "" {
			return fmt.Errorf("s3.root_password is required when s3.endpoint is set")
		}

		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
		}

		if c.S3.PresignTTL <= 0 {
			return fmt.Errorf("s3.presign_ttl must be > 0")
		}
	}

	if c.Limits.BodyMin <= 0 {
		return fmt.Errorf("limits.body_min must be > 0")
	}

	if c.Limits.BodyMax < c.Limits.BodyMin {
		return fmt.Errorf("limits.body_max must be >= limits.body_min")
	}

	if c.Limits.MaxList <= 0 {
		return fmt.Errorf("limits.max_list must be > 0")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	if c.Timeouts.IdentityLookup <= 0 {
		return fmt.Errorf("timeouts.identity_lookup must be > 0")
	}

	return nil
}
