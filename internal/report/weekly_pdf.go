package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"waste_tracker/internal/domain"
)

const dateLayout = "01/02/2006"

// BuildWeeklyPDF renders a user's weekly report as a single A4 document
func BuildWeeklyPDF(username string, r *domain.WeeklyReport, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Weekly Waste Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Weekly Waste Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Week: %s - %s", r.WeekStart.Format(dateLayout), r.WeekEnd.Format(dateLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 8, "User: "+username)
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Items wasted: %d", r.Total()))
	pdf.Ln(10)

	for i, day := range domain.Weekdays {
		date := r.WeekStart.AddDate(0, 0, i)
		entries := r.Days[day]

		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("%s %s (%d)", day, date.Format(dateLayout), len(entries)))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		if len(entries) == 0 {
			pdf.Cell(0, 6, "No items")
			pdf.Ln(6)
			continue
		}
		for _, e := range entries {
			pdf.Cell(30, 6, e.Timestamp.In(loc).Format("15:04"))
			pdf.Cell(0, 6, e.ItemName)
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WeeklyFilename is the attachment name for the report of the week starting on weekStart
func WeeklyFilename(weekStart time.Time) string {
	return "waste-report-" + weekStart.Format(time.DateOnly) + ".pdf"
}
