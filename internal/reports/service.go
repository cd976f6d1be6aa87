package reports

import (
	"context"
	"time"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

type EventSource interface {
	ListBandEvents(ctx context.Context, bandID uint, from, to *time.Time) ([]event.Event, error)
}

type BandNames interface {
	GetBandName(ctx context.Context, bandID uint) (string, error)
}

type Service struct {
	events   EventSource
	bands    BandNames
	exporter ScheduleExporter
	audit    auditlog.Service
}

func NewService(events EventSource, bands BandNames, exporter ScheduleExporter, audit auditlog.Service) *Service {
	return &Service{events: events, bands: bands, exporter: exporter, audit: audit}
}

// ExportSchedule renders the acting band's events in the requested range as a
// downloadable file.
func (s *Service) ExportSchedule(ctx context.Context, actor membership.Membership, format string, from, to *time.Time, ip string) ([]byte, string, string, error) {
	if format != FormatCSV && format != FormatExcel && format != FormatPDF {
		return nil, "", "", httperr.Validation("unsupported format: " + format)
	}

	name, err := s.bands.GetBandName(ctx, actor.BandID)
	if err != nil {
		return nil, "", "", err
	}
	events, err := s.events.ListBandEvents(ctx, actor.BandID, from, to)
	if err != nil {
		return nil, "", "", err
	}

	data := ScheduleData{BandName: name, Rows: make([]ScheduleRow, 0, len(events))}
	for _, e := range events {
		data.Rows = append(data.Rows, toRow(e))
	}

	payload, filename, contentType, err := s.exporter.Export(format, data)
	if err != nil {
		return nil, "", "", httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "SCHEDULE_EXPORTED",
		map[string]interface{}{"format": format, "rows": len(data.Rows)}, ip, "success")

	return payload, filename, contentType, nil
}

func toRow(e event.Event) ScheduleRow {
	row := ScheduleRow{
		EventID:   e.ID,
		Kind:      string(e.Kind),
		Title:     e.Title,
		StartDate: e.StartDate,
		EndDate:   e.IntervalEnd(),
		IsPublic:  e.IsPublic,
		Notes:     e.Notes,
	}
	if e.StartTime != nil && e.EndTime != nil {
		row.StartTime = e.StartTime.Format("15:04")
		row.EndTime = e.EndTime.Format("15:04")
	}
	if e.IsPublic {
		row.Place = e.Venue
	} else {
		row.Place = e.Location
	}
	return row
}
