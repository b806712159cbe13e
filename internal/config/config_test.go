package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/merttpolat/portfolio/internal/models"
)

// writeFile — утилита записи временного файла конфигурации.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// chdir — смена текущего рабочего каталога с автоматическим откатом.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// Полный корректный YAML (не зависит от дефолтов).
const sampleYAML = `
env: "prod"
http:
  host: "127.0.0.1"
  port: "8080"
  base_path: "/v1"
feed:
  username: "someone"
  url_template: "https://feeds.example/@%s"
  publication: "Blog"
  sources:
    - url: "https://b.example/feed"
      publication: "B Weekly"
  timeout: "3s"
events:
  dir: "/srv/events"
  manifest: "index.json"
s3:
  endpoint: "http://minio:9000"
  bucket: "site"
metrics:
  disabled: true
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
feed:
  sources: ["https://example.org/rss.xml"
`

// TestHTTPConfig_Addr — проверяем, что Addr() корректно собирает host:port.
func TestHTTPConfig_Addr(t *testing.T) {
	t.Parallel()
	cfg := HTTPConfig{Host: "127.0.0.1", Port: "3001"}
	require.Equal(t, "127.0.0.1:3001", cfg.Addr())
}

// TestFeedConfig_SourceList — основной источник первым, подписи изданий
// сохраняются, пустые URL отброшены.
func TestFeedConfig_SourceList(t *testing.T) {
	t.Parallel()

	cfg := FeedConfig{
		Username:    "merttpolat",
		URLTemplate: "https://medium.com/feed/@%s",
		Publication: "Personal Blog",
		Sources: FeedSources{
			{URL: " https://medium.com/feed/devopsturkiye/author/merttpolat ", Publication: "DevOps Türkiye"},
			{URL: "", Publication: "Nowhere"},
			{URL: "https://dev.to/feed/x"},
		},
	}

	require.Equal(t, []models.FeedSource{
		{URL: "https://medium.com/feed/@merttpolat", Publication: "Personal Blog"},
		{URL: "https://medium.com/feed/devopsturkiye/author/merttpolat", Publication: "DevOps Türkiye"},
		{URL: "https://dev.to/feed/x"},
	}, cfg.SourceList())

	require.Empty(t, FeedConfig{}.SourceList())
}

// TestLoad_WithExplicitPath_OK — явный путь имеет высший приоритет.
func TestLoad_WithExplicitPath_OK(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	require.Equal(t, "/v1", cfg.HTTP.BasePath)
	require.Equal(t, "https://feeds.example/@someone", cfg.Feed.URL())
	require.Equal(t, 3*time.Second, cfg.Feed.Timeout)
	require.Equal(t, []models.FeedSource{
		{URL: "https://feeds.example/@someone", Publication: "Blog"},
		{URL: "https://b.example/feed", Publication: "B Weekly"},
	}, cfg.Feed.SourceList())
	require.Equal(t, filepath.Join("/srv/events", "index.json"), cfg.Events.ManifestPath())
	require.True(t, cfg.S3.Enabled())
	require.Equal(t, "events-photos", cfg.S3.Prefix)
	require.True(t, cfg.Metrics.Disabled)
	require.False(t, cfg.Metrics.Enabled())
}

// TestLoad_WithExplicitPath_FileDoesNotExist — явный путь на несуществующий файл.
func TestLoad_WithExplicitPath_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Load(missing)
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file does not exist")
}

// TestLoad_WithExplicitPath_BrokenYAML — битый YAML по явному пути.
func TestLoad_WithExplicitPath_BrokenYAML(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

// TestLoad_WithCONFIG_PATH_Defaults — минимальный файл, остальное из дефолтов.
func TestLoad_WithCONFIG_PATH_Defaults(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "min.yaml", "env: dev\n")
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "0.0.0.0:3001", cfg.HTTP.Addr())
	require.Equal(t, "/api", cfg.HTTP.BasePath)
	require.Equal(t, "https://medium.com/feed/@merttpolat", cfg.Feed.URL())
	require.Equal(t, "Personal Blog", cfg.Feed.Publication)
	require.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	require.Equal(t, filepath.Join("public/events-photos", "manifest.json"), cfg.Events.ManifestPath())
	require.Equal(t, "/events-photos/", cfg.Events.ImagePrefix)
	require.False(t, cfg.S3.Enabled())
	require.True(t, cfg.Metrics.Enabled())
	require.Equal(t, "/metrics", cfg.Metrics.Path)

	require.Equal(t, []models.FeedSource{
		{URL: "https://medium.com/feed/@merttpolat", Publication: "Personal Blog"},
		{URL: "https://medium.com/feed/devopsturkiye/author/merttpolat", Publication: "DevOps Türkiye"},
		{URL: "https://medium.com/feed/t%C3%BCrk-telekom-bulut-teknolojileri/author/merttpolat", Publication: "Türk Telekom Bulut"},
	}, cfg.Feed.SourceList())
}

// TestLoad_EmptySourcesDisablesDefaults — явный пустой список в YAML
// оставляет только основную ленту.
func TestLoad_EmptySourcesDisablesDefaults(t *testing.T) {
	t.Parallel()

	cfgPath := writeFile(t, t.TempDir(), "only-blog.yaml", "feed:\n  sources: []\n")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, []models.FeedSource{
		{URL: "https://medium.com/feed/@merttpolat", Publication: "Personal Blog"},
	}, cfg.Feed.SourceList())
}

// TestFeedSources_SetValue — формат FEED_SOURCES.
func TestFeedSources_SetValue(t *testing.T) {
	t.Parallel()

	var s FeedSources
	require.NoError(t, s.SetValue("DevOps Türkiye|https://a.example/rss, https://b.example/rss ,"))
	require.Equal(t, FeedSources{
		{URL: "https://a.example/rss", Publication: "DevOps Türkiye"},
		{URL: "https://b.example/rss"},
	}, s)

	require.Error(t, s.SetValue("Label|"))
}

// TestLoad_WithLocalYAML_OK — если нет CONFIG_PATH, берётся ./local.yaml.
func TestLoad_WithLocalYAML_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, ".", "local.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "someone", cfg.Feed.Username)
}

// TestLoad_EnvOnly_OK — конфигурация полностью из ENV без YAML-файлов.
func TestLoad_EnvOnly_OK(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	t.Setenv("ENV", "prod")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MEDIUM_USERNAME", "author")
	t.Setenv("FEED_SOURCES", "https://a.example/rss.xml,Weekly|https://b.example/rss.xml")
	t.Setenv("METRICS_DISABLED", "true")
	t.Setenv("FEED_TIMEOUT", "7s")
	t.Setenv("EVENTS_DIR", "/data/events")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "9090", cfg.HTTP.Port)
	require.Equal(t, 7*time.Second, cfg.Feed.Timeout)
	require.Equal(t, "/data/events", cfg.Events.Dir)
	require.Equal(t, []models.FeedSource{
		{URL: "https://medium.com/feed/@author", Publication: "Personal Blog"},
		{URL: "https://a.example/rss.xml"},
		{URL: "https://b.example/rss.xml", Publication: "Weekly"},
	}, cfg.Feed.SourceList())
	require.False(t, cfg.Metrics.Enabled())
}

// TestLoad_Priority_ExplicitWinsOverEnvAndLocal — явный путь важнее CONFIG_PATH и local.yaml.
func TestLoad_Priority_ExplicitWinsOverEnvAndLocal(t *testing.T) {
	dir := t.TempDir()

	explicit := writeFile(t, dir, "explicit.yaml", `
feed: { username: "explicit" }
`)
	badEnvPath := writeFile(t, dir, "env_bad.yaml", brokenYAML)
	t.Setenv("CONFIG_PATH", badEnvPath)
	writeFile(t, dir, "local.yaml", `
feed: { username: "local" }
`)

	chdir(t, dir)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	require.Equal(t, "explicit", cfg.Feed.Username)
}

// TestValidate_Errors — таблица некорректных значений.
func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			HTTP: HTTPConfig{BasePath: "/api"},
			Feed: FeedConfig{
				Username:    "u",
				URLTemplate: "https://medium.com/feed/@%s",
				Timeout:     time.Second,
			},
			Events: EventsConfig{Dir: "events", Manifest: "manifest.json"},
		}
	}

	base := valid()
	require.NoError(t, base.validate())

	cases := map[string]func(c *Config){
		"template without verb": func(c *Config) { c.Feed.URLTemplate = "https://medium.com/feed" },
		"no sources":            func(c *Config) { c.Feed.Username = "" },
		"zero timeout":          func(c *Config) { c.Feed.Timeout = 0 },
		"empty events dir":      func(c *Config) { c.Events.Dir = "" },
		"manifest with dir":     func(c *Config) { c.Events.Manifest = "sub/manifest.json" },
		"s3 without bucket":     func(c *Config) { c.S3.Endpoint = "http://minio:9000" },
		"relative base path":    func(c *Config) { c.HTTP.BasePath = "api" },
	}

	for name, mutate := range cases {
		c := valid()
		mutate(&c)
		require.Error(t, c.validate(), name)
	}
}
