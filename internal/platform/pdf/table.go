// Package pdf is the document-rendering collaborator. RenderTable produces the
// printable week roster; RenderPayslip the per-employee payslip.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderTable lays out rows under headers on a landscape A4 page, first column
// wider and bold, in the shape the dashboard's exported roster uses.
func RenderTable(title, subtitle string, headers []string, rows [][]string) ([]byte, error) {
	doc := gofpdf.New("L", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, title)
	doc.Ln(8)
	if subtitle != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.Cell(0, 8, subtitle)
		doc.Ln(10)
	} else {
		doc.Ln(4)
	}

	pageWidth, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	usable := pageWidth - left - right

	firstWidth := 48.0
	cellWidth := usable
	if len(headers) > 1 {
		cellWidth = (usable - firstWidth) / float64(len(headers)-1)
	}

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(59, 130, 246)
	doc.SetTextColor(255, 255, 255)
	for i, header := range headers {
		width := cellWidth
		if i == 0 {
			width = firstWidth
		}
		doc.CellFormat(width, 8, header, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetTextColor(0, 0, 0)
	for _, row := range rows {
		rowHeight := 10.0
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			width := cellWidth
			style := ""
			if i == 0 {
				width = firstWidth
				style = "B"
			}
			doc.SetFont("Helvetica", style, 8)
			// Two-line cells ("Turno\nhoras") collapse to one line here.
			doc.CellFormat(width, rowHeight, strings.ReplaceAll(cell, "\n", " "), "1", 0, "C", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type PayslipData struct {
	EmployeeName string
	Locale       string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Deposited    float64
	Cash         float64
	Total        float64
	Notes        string
}

func RenderPayslip(data PayslipData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(40, 10, "Nomina")
	doc.Ln(12)
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, fmt.Sprintf("Empleado: %s", data.EmployeeName))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Local: %s", data.Locale))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Periodo: %s a %s", data.PeriodStart.Format("2006-01-02"), data.PeriodEnd.Format("2006-01-02")))
	doc.Ln(10)
	doc.Cell(0, 8, fmt.Sprintf("Ingresado: %.2f EUR", data.Deposited))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Efectivo: %.2f EUR", data.Cash))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Total: %.2f EUR", data.Total))
	if data.Notes != "" {
		doc.Ln(10)
		doc.SetFont("Helvetica", "I", 10)
		doc.MultiCell(0, 6, data.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
