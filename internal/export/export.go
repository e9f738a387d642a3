package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter writes booking reports as xlsx files for the owner.
type Exporter struct {
	bookings domain.BookingService
	path     string
	logger   *zerolog.Logger
}

func NewExporter(bookings domain.BookingService, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		bookings: bookings,
		path:     path,
		logger:   logger,
	}
}

var exportHeaders = []string{
	"ID", "Date", "Time", "Customer", "Phone", "Email",
	"Services", "Total", "Status", "Note",
}

// ExportBookings writes the bookings in the range grouped by day and
// returns the file path. Each day gets a section header row followed by
// that day's bookings.
func (e *Exporter) ExportBookings(ctx context.Context, startDate, endDate time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	daily, err := e.bookings.GetDailyBookings(ctx, startDate, endDate)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	dayStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	row := 2
	total := 0
	for _, date := range dates {
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(exportHeaders), row)
		_ = f.SetCellValue(sheetName, start, date)
		_ = f.MergeCell(sheetName, start, end)
		_ = f.SetCellStyle(sheetName, start, end, dayStyle)
		row++

		for i := range daily[date] {
			e.writeBookingRow(f, sheetName, row, &daily[date][i])
			row++
			total++
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "B", "C", 12)
	_ = f.SetColWidth(sheetName, "D", "F", 22)
	_ = f.SetColWidth(sheetName, "G", "G", 40)
	_ = f.SetColWidth(sheetName, "H", "J", 14)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("days", len(dates)).Int("bookings", total).Msg("Excel file created")
	return filePath, nil
}

func (e *Exporter) writeBookingRow(f *excelize.File, sheetName string, row int, booking *models.Booking) {
	names := make([]string, 0, len(booking.Services))
	for _, svc := range booking.Services {
		names = append(names, fmt.Sprintf("%s (%d mins)", svc.Name, svc.Duration))
	}
	note := ""
	if booking.Note != nil {
		note = *booking.Note
	}

	values := []interface{}{
		booking.ID,
		booking.BookingDate,
		booking.BookingTime,
		booking.CustomerName,
		booking.CustomerPhone,
		booking.CustomerEmail,
		strings.Join(names, ", "),
		booking.TotalPrice,
		booking.Status,
		note,
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheetName, cell, v)
	}
}
