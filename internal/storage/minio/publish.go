package minio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	mclient "github.com/minio/minio-go/v7"

	"github.com/merttpolat/portfolio/internal/storage"
	"github.com/merttpolat/portfolio/pkg/log"
)

// Publish загружает data в бакет под ключом <prefix>/<name>.
// Объекты отдаются с Cache-Control: no-cache, чтобы сайт видел свежий манифест.
func (p *Publisher) Publish(ctx context.Context, name, contentType string, data []byte) (storage.Object, error) {
	const op = "storage/minio/Publish"

	key := objectKey(p.cfg.Prefix, name)

	info, err := p.client.PutObject(ctx, p.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), mclient.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "no-cache",
	})
	if err != nil {
		return storage.Object{}, fmt.Errorf("%s: put %s: %w", op, key, err)
	}

	log.From(ctx).Info("object_published",
		slog.String("op", op),
		slog.String("bucket", p.cfg.Bucket),
		slog.String("key", key),
		slog.Int64("size", info.Size),
	)

	return storage.Object{Key: key, Size: info.Size, ETag: info.ETag}, nil
}

// objectKey склеивает префикс и имя без ведущего "/".
func objectKey(prefix, name string) string {
	return strings.TrimPrefix(path.Join(prefix, name), "/")
}
