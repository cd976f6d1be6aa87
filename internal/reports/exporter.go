package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ScheduleExporter renders a band schedule in the requested format and
// returns the payload, a filename and a content type.
type ScheduleExporter interface {
	Export(format string, data ScheduleData) ([]byte, string, string, error)
}

type scheduleExporter struct{}

func NewScheduleExporter() ScheduleExporter {
	return &scheduleExporter{}
}

func (e *scheduleExporter) Export(format string, data ScheduleData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		payload, err := e.exportCSV(data.Rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("schedule_report_%s.csv", timestamp)
		return payload, filename, "text/csv", nil

	case FormatExcel:
		payload, err := e.exportExcel(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("schedule_report_%s.xlsx", timestamp)
		return payload, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		payload, err := e.exportPDF(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("schedule_report_%s.pdf", timestamp)
		return payload, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format for schedule: %s", format)
	}
}

func timeWindow(r ScheduleRow) string {
	if r.StartTime == "" {
		return "all day"
	}
	return r.StartTime + " - " + r.EndTime
}

func visibility(r ScheduleRow) string {
	if r.IsPublic {
		return "public"
	}
	return "private"
}

func (e *scheduleExporter) exportCSV(rows []ScheduleRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Kind", "Title", "Start Date", "End Date", "Time", "Place", "Visibility", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.EventID), 10),
			r.Kind,
			r.Title,
			r.StartDate.Format("2006-01-02"),
			r.EndDate.Format("2006-01-02"),
			timeWindow(r),
			r.Place,
			visibility(r),
			r.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *scheduleExporter) exportExcel(data ScheduleData) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Schedule"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Kind", "Title", "Start Date", "End Date", "Time", "Place", "Visibility", "Notes"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range data.Rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.EventID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Kind)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.StartDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.EndDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), timeWindow(r))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.Place)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), visibility(r))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), r.Notes)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *scheduleExporter) exportPDF(data ScheduleData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, data.BandName+" - Schedule")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{15, 30, 55, 25, 25, 30, 45, 20, 30}
	headers := []string{"ID", "Kind", "Title", "Start", "End", "Time", "Place", "Visibility", "Notes"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range data.Rows {
		notes := r.Notes
		if len(notes) > 25 {
			notes = notes[:22] + "..."
		}

		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(r.EventID), 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Kind, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.StartDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.EndDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, timeWindow(r), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Place, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[7], 6, visibility(r), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[8], 6, notes, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
