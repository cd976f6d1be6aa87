package reports

import "time"

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ScheduleRow is one event flattened for export.
type ScheduleRow struct {
	EventID   uint
	Kind      string
	Title     string
	StartDate time.Time
	EndDate   time.Time
	StartTime string // "15:04" or empty for all-day
	EndTime   string
	Place     string // venue for public events, location for private
	IsPublic  bool
	Notes     string
}

// ScheduleData is everything the exporter needs to render one report.
type ScheduleData struct {
	BandName string
	Rows     []ScheduleRow
}
