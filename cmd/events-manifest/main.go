package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/merttpolat/portfolio/internal/config"
	"github.com/merttpolat/portfolio/internal/events"
	"github.com/merttpolat/portfolio/internal/storage/minio"
	"github.com/merttpolat/portfolio/pkg/log"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// .env необязателен: его отсутствие не ошибка.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("events_manifest_failed", slog.String("err", err.Error()))
		cancel()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "events-manifest",
		Usage: "Build and inspect the events manifest of the portfolio site.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to config file (overrides CONFIG_PATH env)"},
		},
		Commands: []*cli.Command{
			buildCommand(),
			showCommand(),
		},
	}
}

// setup загружает конфиг и кладёт логгер в контекст команды.
func setup(c *cli.Context) (context.Context, *config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	lg := setupLogger(cfg.Env, c.App.ErrWriter)
	slog.SetDefault(lg)

	return log.Into(c.Context, lg), cfg, nil
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Scan the events directory and write the manifest.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "ics", Usage: "Also write an iCalendar file next to the manifest."},
			&cli.BoolFlag{Name: "publish", Usage: "Upload the manifest (and calendar) to the configured S3 bucket."},
		},
		Action: func(c *cli.Context) error {
			ctx, cfg, err := setup(c)
			if err != nil {
				return err
			}
			lg := log.From(ctx)

			if c.Bool("publish") && !cfg.S3.Enabled() {
				return errors.New("--publish requires s3.endpoint to be configured")
			}

			b := events.NewBuilder(cfg.Events.Dir, cfg.Events.Manifest)
			m, err := b.Run(ctx)
			if err != nil {
				return fmt.Errorf("build manifest: %w", err)
			}

			if err := events.WriteSummary(c.App.Writer, m); err != nil {
				return fmt.Errorf("print summary: %w", err)
			}

			calendarPath := ""
			if c.Bool("ics") {
				calendarPath, err = b.WriteCalendarFile(ctx, m, cfg.Events.Calendar, time.Now())
				switch {
				case errors.Is(err, events.ErrNoDatedEvents):
					lg.Warn("calendar_skipped", slog.String("reason", err.Error()))
				case err != nil:
					return fmt.Errorf("write calendar: %w", err)
				}
			}

			if !c.Bool("publish") {
				return nil
			}

			return publish(ctx, cfg, b.ManifestPath(), calendarPath)
		},
	}
}

// publish загружает собранные артефакты в бакет.
func publish(ctx context.Context, cfg *config.Config, manifestPath, calendarPath string) error {
	p, err := minio.New(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("connect s3: %w", err)
	}

	uploads := []struct{ path, contentType string }{
		{manifestPath, "application/json"},
	}
	if calendarPath != "" {
		uploads = append(uploads, struct{ path, contentType string }{calendarPath, "text/calendar"})
	}

	for _, u := range uploads {
		data, err := os.ReadFile(u.path)
		if err != nil {
			return fmt.Errorf("read %s: %w", u.path, err)
		}

		if _, err := p.Publish(ctx, filepath.Base(u.path), u.contentType, data); err != nil {
			return err
		}
	}

	return nil
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Load the manifest with captions and print events in display order.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print events as JSON."},
		},
		Action: func(c *cli.Context) error {
			ctx, cfg, err := setup(c)
			if err != nil {
				return err
			}

			list, err := events.NewLoader(cfg.Events.Dir, cfg.Events.Manifest, cfg.Events.ImagePrefix).Load(ctx)
			if err != nil {
				return fmt.Errorf("load events: %w", err)
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"events": list})
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tTITLE\tDATE\tLOCATION\tLINK")
			for _, e := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.Order, e.Title, e.Date, e.Location, e.Link)
			}
			return tw.Flush()
		},
	}
}

func setupLogger(env string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
