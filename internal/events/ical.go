package events

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/emersion/go-ical"

	"github.com/merttpolat/portfolio/internal/models"
	"github.com/merttpolat/portfolio/pkg/log"
)

const (
	calendarProductID = "-//merttpolat//portfolio events//EN"
	uidDomain         = "portfolio"
)

// Calendar строит iCalendar из манифеста: по одному событию на весь день для
// каждого слага с распознаваемой датой. Дата без числа — первое число месяца.
func Calendar(ctx context.Context, m *models.Manifest, stamp time.Time) *ical.Calendar {
	const op = "events.Calendar"

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProductID)

	for _, slug := range m.Events {
		start, ok := ParseDate(m.Dates[slug])
		if !ok {
			log.From(ctx).Debug("calendar_event_skipped",
				slog.String("op", op),
				slog.String("slug", slug),
				slog.String("date", m.Dates[slug]),
			)
			continue
		}

		cal.Children = append(cal.Children, toVEvent(slug, m.Locations[slug], start, stamp))
	}

	return cal
}

// ErrNoDatedEvents — в манифесте нет ни одного события с распознаваемой датой.
var ErrNoDatedEvents = errors.New("no events with a recognizable date")

// WriteCalendar кодирует Calendar(m) в w.
func WriteCalendar(ctx context.Context, w io.Writer, m *models.Manifest, stamp time.Time) error {
	cal := Calendar(ctx, m, stamp)
	if len(cal.Children) == 0 {
		return ErrNoDatedEvents
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}

	return nil
}

// WriteCalendarFile пишет календарь манифеста в dir/name рядом с манифестом.
func (b *Builder) WriteCalendarFile(ctx context.Context, m *models.Manifest, name string, stamp time.Time) (string, error) {
	const op = "events.WriteCalendarFile"

	var buf bytes.Buffer
	if err := WriteCalendar(ctx, &buf, m, stamp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	path := filepath.Join(b.dir, name)
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("calendar_written",
		slog.String("op", op),
		slog.String("path", path),
		slog.Int("bytes", buf.Len()),
	)

	return path, nil
}

func toVEvent(slug, location string, start, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, slug+"@"+uidDomain)
	ve.Props.SetText(ical.PropSummary, FormatTitle(slug))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDate(ical.PropDateTimeStart, start)

	if location != "" {
		ve.Props.SetText(ical.PropLocation, location)
	}

	return ve
}
