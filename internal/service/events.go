package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/merttpolat/portfolio/internal/models"
	"github.com/merttpolat/portfolio/pkg/log"
)

// Events возвращает события в порядке отображения.
func (s *Service) Events(ctx context.Context) ([]models.EventData, error) {
	const op = "service.Events"

	events, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(events) == 0 {
		log.From(ctx).Warn("events_empty", slog.String("op", op))
	}

	return events, nil
}
