package events

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/merttpolat/portfolio/pkg/log"
)

// recordStore — общие для всех производных хендлеров записи.
type recordStore struct {
	mu      sync.Mutex
	records []slog.Record
}

// recordHandler — slog.Handler, запоминающий записи для проверок.
// Атрибуты из Logger.With добавляются к каждой записи.
type recordHandler struct {
	store *recordStore
	attrs []slog.Attr
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(h.attrs...)

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, r)
	return nil
}

func (h *recordHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordHandler{store: h.store, attrs: append(slices.Clip(h.attrs), attrs...)}
}

func (h *recordHandler) WithGroup(string) slog.Handler { return h }

// count — сколько записей с сообщением msg и уровнем level.
func (h *recordHandler) count(level slog.Level, msg string) int {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	n := 0
	for _, r := range h.store.records {
		if r.Level == level && r.Message == msg {
			n++
		}
	}
	return n
}

// attr — значения атрибута key во всех записях с сообщением msg.
func (h *recordHandler) attr(msg, key string) []string {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	var out []string
	for _, r := range h.store.records {
		if r.Message != msg {
			continue
		}
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				out = append(out, a.Value.String())
			}
			return true
		})
	}
	return out
}

// logCtx возвращает контекст с логгером, пишущим в новый recordHandler.
func logCtx() (context.Context, *recordHandler) {
	h := &recordHandler{store: &recordStore{}}
	return log.Into(context.Background(), slog.New(h)), h
}

// writeFixture раскладывает файлы name → содержимое в dir.
func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600))
	}
}
