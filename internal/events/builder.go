package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/merttpolat/portfolio/internal/models"
	"github.com/merttpolat/portfolio/pkg/log"
)

var (
	// ErrCaptionMissing — у изображения нет одноимённого файла подписи.
	ErrCaptionMissing = errors.New("caption file missing")
	// ErrNoManifest — manifest.json отсутствует в каталоге событий.
	ErrNoManifest = errors.New("manifest not found")
)

// CaptionExt — расширение файла подписи.
const CaptionExt = ".txt"

// Builder сканирует каталог фотографий и собирает манифест.
type Builder struct {
	dir          string
	manifestName string
}

// NewBuilder создаёт сборщик для каталога dir; манифест пишется в dir/manifestName.
func NewBuilder(dir, manifestName string) *Builder {
	return &Builder{dir: dir, manifestName: manifestName}
}

// ManifestPath — полный путь к файлу манифеста.
func (b *Builder) ManifestPath() string {
	return filepath.Join(b.dir, b.manifestName)
}

// Build сканирует каталог и возвращает манифест, отсортированный по дате
// (новые первыми, без даты — в конце, равные сохраняют порядок обхода).
//
// Событие попадает в манифест, только если у изображения есть подпись
// <slug>.txt. Ранги Order переносятся из предыдущего манифеста для слагов,
// которые всё ещё существуют.
func (b *Builder) Build(ctx context.Context) (*models.Manifest, error) {
	const op = "events.Build"

	lg := log.From(ctx)

	slugs, images, err := scanImages(b.dir)
	if err != nil {
		return nil, fmt.Errorf("%s: scan %s: %w", op, b.dir, err)
	}

	prevOrder := b.previousOrder(ctx)
	m := models.NewManifest()

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		slg := log.From(log.With(ctx, slog.String("slug", slug)))

		caption, err := readCaption(b.dir, slug)
		if err != nil {
			if errors.Is(err, ErrCaptionMissing) {
				slg.Warn("caption_missing",
					slog.String("op", op),
					slog.String("image", images[slug]),
				)
			} else {
				slg.Error("caption_read_failed",
					slog.String("op", op),
					slog.String("err", err.Error()),
				)
			}
			continue
		}

		m.Events = append(m.Events, slug)
		m.Images[slug] = images[slug]
		if d := ExtractDate(caption); d != "" {
			m.Dates[slug] = d
		}
		if l := ExtractLocation(caption); l != "" {
			m.Locations[slug] = l
		}
		if o, ok := prevOrder[slug]; ok {
			m.Order[slug] = o
		}

		slg.Debug("event_processed",
			slog.String("op", op),
			slog.String("date", m.Dates[slug]),
			slog.String("location", m.Locations[slug]),
		)
	}

	sort.SliceStable(m.Events, func(i, j int) bool {
		return sortKey(m.Dates[m.Events[i]]).After(sortKey(m.Dates[m.Events[j]]))
	})

	lg.Info("manifest_built",
		slog.String("op", op),
		slog.String("dir", b.dir),
		slog.Int("images", len(slugs)),
		slog.Int("events", len(m.Events)),
	)

	return m, nil
}

// Write сериализует манифест (отступ в два пробела) и атомарно заменяет
// предыдущую версию файла.
func (b *Builder) Write(ctx context.Context, m *models.Manifest) error {
	const op = "events.Write"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := Marshal(m)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	path := b.ManifestPath()
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("manifest_written",
		slog.String("op", op),
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// Run — Build + Write.
func (b *Builder) Run(ctx context.Context) (*models.Manifest, error) {
	m, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Write(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// previousOrder читает ранги из уже существующего манифеста. Отсутствующий
// или повреждённый файл означает «рангов нет».
func (b *Builder) previousOrder(ctx context.Context) map[string]int {
	const op = "events.previousOrder"

	prev, err := ReadManifest(b.ManifestPath())
	if err != nil {
		if !errors.Is(err, ErrNoManifest) {
			log.From(ctx).Warn("previous_manifest_ignored",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
		return nil
	}

	return prev.Order
}

// Marshal возвращает JSON манифеста с отступом в два пробела и переводом строки в конце.
func Marshal(m *models.Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}

	return append(data, '\n'), nil
}

// ReadManifest читает и разбирает manifest.json. Отсутствие файла — ErrNoManifest.
func ReadManifest(path string) (*models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoManifest)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := models.NewManifest()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	return m, nil
}

// scanImages возвращает слаги изображений в порядке обхода каталога и имя
// файла, первым встреченного для каждого слага.
func scanImages(dir string) ([]string, map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var slugs []string
	images := map[string]string{}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := e.Name()
		ext := filepath.Ext(name)
		switch strings.ToLower(ext) {
		case ".jpg", ".jpeg":
		default:
			continue
		}

		slug := strings.TrimSuffix(name, ext)
		if slug == "" {
			continue
		}
		if _, seen := images[slug]; seen {
			continue
		}

		slugs = append(slugs, slug)
		images[slug] = name
	}

	return slugs, images, nil
}

// readCaption читает <slug>.txt. Отсутствие файла — ErrCaptionMissing.
func readCaption(dir, slug string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, slug+CaptionExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", slug, ErrCaptionMissing)
		}
		return "", err
	}

	return string(data), nil
}

// writeFileAtomic пишет во временный файл рядом с целевым и переименовывает его.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
