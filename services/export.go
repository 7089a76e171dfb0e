package services

import (
	"ReframeGo/models"
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ExportSummary is the aggregate view a PDF export renders. GeneratedAt
// is the only timestamp embedded in the document, so two exports of the
// same summary are byte-identical.
type ExportSummary struct {
	GeneratedAt time.Time
	Days        []models.DayBucket
	Triggers    []models.TriggerCount
	Emotions    []models.EmotionCount
}

var csvHeader = []string{"timestamp", "trigger", "behavior", "severity", "reflection", "emotion", "confidence"}

// EventsToCSV renders raw events, one row each, in a fixed column
// order. Quoting follows RFC 4180 so free text with commas or quotes
// round-trips.
func EventsToCSV(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range events {
		emotion := ""
		confidence := ""
		if e.Emotion != nil {
			emotion = *e.Emotion
		}
		if e.EmotionConfidence != nil {
			confidence = strconv.FormatFloat(*e.EmotionConfidence, 'f', -1, 64)
		}
		row := []string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.Trigger,
			e.Behavior,
			strconv.Itoa(e.Severity),
			e.Reflection,
			emotion,
			confidence,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SummaryToPDF renders the aggregate view as a simple paginated A4
// document. The PDF creation date is pinned to summary.GeneratedAt, not
// the wall clock.
func SummaryToPDF(summary ExportSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(summary.GeneratedAt)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Event Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated at %s", summary.GeneratedAt.UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	writeSectionHeader(pdf, "Events per day")
	writeTableHeader(pdf, []string{"Date", "Count", "Avg severity"}, []float64{50, 30, 40})
	for _, d := range summary.Days {
		writeTableRow(pdf, []string{
			d.Date,
			strconv.Itoa(d.Count),
			strconv.FormatFloat(d.AvgSeverity, 'f', 2, 64),
		}, []float64{50, 30, 40})
	}
	pdf.Ln(8)

	writeSectionHeader(pdf, "Top triggers")
	writeTableHeader(pdf, []string{"Trigger", "Count"}, []float64{120, 30})
	for _, t := range summary.Triggers {
		writeTableRow(pdf, []string{t.Trigger, strconv.Itoa(t.Count)}, []float64{120, 30})
	}
	pdf.Ln(8)

	writeSectionHeader(pdf, "Emotions")
	writeTableHeader(pdf, []string{"Emotion", "Count"}, []float64{120, 30})
	for _, e := range summary.Emotions {
		writeTableRow(pdf, []string{e.Emotion, strconv.Itoa(e.Count)}, []float64{120, 30})
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
}

func writeTableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 6, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func writeTableRow(pdf *gofpdf.Fpdf, cells []string, widths []float64) {
	pdf.SetFont("Helvetica", "", 9)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
