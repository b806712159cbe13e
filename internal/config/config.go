// config предоставляет структуру конфигурации портфолио-сервисов
// (feed-service и events-manifest) и функции загрузки из YAML/ENV
// с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/merttpolat/portfolio/internal/models"
)

// Config — корневая конфигурация.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Feed    FeedConfig    `yaml:"feed"`
	Events  EventsConfig  `yaml:"events"`
	S3      S3Config      `yaml:"s3"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host              string        `yaml:"host"                env:"HTTP_HOST"                env-default:"0.0.0.0"`
	Port              string        `yaml:"port"                env:"HTTP_PORT"                env-default:"3001"`
	BasePath          string        `yaml:"base_path"           env:"HTTP_BASE_PATH"           env-default:"/api"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	RequestTimeout    time.Duration `yaml:"request_timeout"     env:"HTTP_REQUEST_TIMEOUT"     env-default:"15s"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// FeedConfig — источник(и) RSS-ленты блога.
//
// Основной источник собирается подстановкой Username в URLTemplate;
// Sources — дополнительные ленты изданий, их элементы сливаются с основной
// до дедупликации. Без явного списка подключаются ленты изданий, где
// публикуется автор по умолчанию.
type FeedConfig struct {
	Username    string        `yaml:"username"     env:"MEDIUM_USERNAME"   env-default:"merttpolat"`
	URLTemplate string        `yaml:"url_template" env:"FEED_URL_TEMPLATE" env-default:"https://medium.com/feed/@%s"`
	Publication string        `yaml:"publication"  env:"FEED_PUBLICATION"  env-default:"Personal Blog"`
	Sources     FeedSources   `yaml:"sources"      env:"FEED_SOURCES"      env-default:"DevOps Türkiye|https://medium.com/feed/devopsturkiye/author/merttpolat,Türk Telekom Bulut|https://medium.com/feed/t%C3%BCrk-telekom-bulut-teknolojileri/author/merttpolat"`
	Timeout     time.Duration `yaml:"timeout"      env:"FEED_TIMEOUT"      env-default:"10s"`
	UserAgent   string        `yaml:"user_agent"   env:"FEED_USER_AGENT"   env-default:"portfolio-feed/1.0"`
}

// SourceConfig — дополнительная лента и подпись её издания.
type SourceConfig struct {
	URL         string `yaml:"url"`
	Publication string `yaml:"publication"`
}

// FeedSources — список дополнительных лент.
//
// В ENV задаётся через запятую, элемент — "Издание|URL" или просто URL.
// Пустой список в YAML (sources: []) отключает ленты по умолчанию.
type FeedSources []SourceConfig

// SetValue разбирает значение FEED_SOURCES.
func (s *FeedSources) SetValue(raw string) error {
	out := FeedSources{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		label, u, found := strings.Cut(part, "|")
		if !found {
			label, u = "", part
		}

		u = strings.TrimSpace(u)
		if u == "" {
			return fmt.Errorf("feed source %q has no url", part)
		}

		out = append(out, SourceConfig{URL: u, Publication: strings.TrimSpace(label)})
	}

	*s = out
	return nil
}

// URL возвращает адрес основной ленты.
func (f FeedConfig) URL() string {
	if f.Username == "" {
		return ""
	}

	return fmt.Sprintf(f.URLTemplate, f.Username)
}

// SourceList — единая точка конфигурации списка лент: основная первой,
// затем дополнительные в порядке объявления. Порядок важен для дедупликации.
func (f FeedConfig) SourceList() []models.FeedSource {
	var out []models.FeedSource

	if u := f.URL(); u != "" {
		out = append(out, models.FeedSource{URL: u, Publication: f.Publication})
	}

	for _, s := range f.Sources {
		u := strings.TrimSpace(s.URL)
		if u == "" {
			continue
		}
		out = append(out, models.FeedSource{URL: u, Publication: strings.TrimSpace(s.Publication)})
	}

	return out
}

// EventsConfig — каталог фотографий событий и имя манифеста.
type EventsConfig struct {
	Dir         string `yaml:"dir"          env:"EVENTS_DIR"          env-default:"public/events-photos"`
	Manifest    string `yaml:"manifest"     env:"EVENTS_MANIFEST"     env-default:"manifest.json"`
	Calendar    string `yaml:"calendar"     env:"EVENTS_CALENDAR"     env-default:"events.ics"`
	ImagePrefix string `yaml:"image_prefix" env:"EVENTS_IMAGE_PREFIX" env-default:"/events-photos/"`
}

// ManifestPath — полный путь к manifest.json.
func (e EventsConfig) ManifestPath() string {
	return filepath.Join(e.Dir, e.Manifest)
}

// S3Config — необязательная публикация манифеста в объектное хранилище (MinIO/S3).
type S3Config struct {
	Endpoint  string `yaml:"endpoint"   env:"S3_ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket    string `yaml:"bucket"     env:"S3_BUCKET"`
	Prefix    string `yaml:"prefix"     env:"S3_PREFIX"     env-default:"events-photos"`
}

// Enabled сообщает, настроена ли публикация.
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// MetricsConfig — экспорт метрик Prometheus. Экспорт включён, пока
// не выставлен Disabled.
type MetricsConfig struct {
	Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
	Path     string `yaml:"path"     env:"METRICS_PATH"     env-default:"/metrics"`
}

// Enabled сообщает, нужно ли поднимать /metrics и регистрировать коллекторы.
func (m MetricsConfig) Enabled() bool {
	return !m.Disabled
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
func Load(path string) (*Config, error) {
	var cfg Config

	finish := func() (*Config, error) {
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return finish()
	}

	// 1) Явный путь.
	if path != "" {
		return readFile(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return finish()
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.Feed.Username != "" && strings.Count(c.Feed.URLTemplate, "%s") != 1 {
		return fmt.Errorf("feed.url_template must contain exactly one %%s")
	}
	if len(c.Feed.SourceList()) == 0 {
		return fmt.Errorf("feed: username or sources must be set")
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be > 0")
	}
	if c.Events.Dir == "" {
		return fmt.Errorf("events.dir is required")
	}
	if c.Events.Manifest == "" || filepath.Base(c.Events.Manifest) != c.Events.Manifest {
		return fmt.Errorf("events.manifest must be a plain file name")
	}
	if c.S3.Enabled() && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}
	if c.HTTP.BasePath != "" && !strings.HasPrefix(c.HTTP.BasePath, "/") {
		return fmt.Errorf("http.base_path must start with /")
	}
	return nil
}
