// minio предоставляет реализацию storage.Publisher на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, настраивает
// Secure/creds и проверяет наличие целевого бакета.
// publish.go — загрузка артефактов сборки событий.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/merttpolat/portfolio/internal/config"
	"github.com/merttpolat/portfolio/internal/storage"
)

// Publisher — адаптер MinIO для публикации артефактов.
type Publisher struct {
	cfg    config.S3Config
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Убирает схему из endpoint, подбирает Secure по схеме и выполняет
// fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg config.S3Config) (*Publisher, error) {
	const op = "storage/minio/New"

	endpoint, secure := parseEndpoint(cfg.Endpoint)

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: %q: %w", op, cfg.Bucket, storage.ErrBucketNotFound)
	}

	return &Publisher{cfg: cfg, client: client}, nil
}

// parseEndpoint возвращает host[:port] и признак TLS.
// Endpoint без схемы считается незащищённым.
func parseEndpoint(endpoint string) (string, bool) {
	endpoint = strings.TrimSpace(endpoint)
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host, u.Scheme == "https"
	}

	return strings.TrimRight(endpoint, "/"), secure
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Publisher = (*Publisher)(nil)
