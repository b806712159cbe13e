// storage описывает публикацию артефактов сборки (manifest.json, events.ics)
// во внешнее объектное хранилище.
package storage

import (
	"context"
	"errors"
)

// ErrBucketNotFound — целевой бакет не существует.
var ErrBucketNotFound = errors.New("bucket not found")

// Object — загруженный объект.
//   - Key: полный ключ в бакете (prefix/name).
//   - Size: размер в байтах.
//   - ETag: ETag, который вернуло хранилище.
type Object struct {
	Key  string
	Size int64
	ETag string
}

// Publisher — контракт загрузки артефактов. Повторная публикация с тем же
// именем перезаписывает объект.
type Publisher interface {
	Publish(ctx context.Context, name, contentType string, data []byte) (Object, error)
}
