package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/record"
	"github.com/tritonmech/fieldforms-backend-go/internal/domain/timesheet"
)

func newDocument(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	return pdf
}

func labelValue(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

// BuildTimeSheetPDF renders one daily time sheet: header, the entry rows
// with their computed hours and expense totals, and the sheet aggregates.
func BuildTimeSheetPDF(sheet timesheet.TimeSheet) ([]byte, error) {
	pdf := newDocument("Daily Time Sheet")

	ownerName := ""
	if sheet.OwnerName != nil {
		ownerName = *sheet.OwnerName
	}
	labelValue(pdf, "Technician", ownerName)
	labelValue(pdf, "Customer", sheet.CustomerName)
	labelValue(pdf, "Job Order", sheet.JobOrder)
	if sheet.WeekEnding != nil {
		labelValue(pdf, "Week Ending", sheet.WeekEnding.Format("2006-01-02"))
	}
	labelValue(pdf, "Status", sheet.Status)
	pdf.Ln(4)

	// Entry table
	headers := []string{"Date", "Start", "Stop", "Description", "Travel", "Total", "Expenses"}
	widths := []float64{22, 14, 14, 70, 16, 16, 20}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, entry := range sheet.Entries {
		date := ""
		if entry.EntryDate != nil {
			date = entry.EntryDate.Format("2006-01-02")
		}
		description := entry.JobDescription
		if runes := []rune(description); len(runes) > 48 {
			description = string(runes[:45]) + "..."
		}
		cells := []string{
			date,
			entry.StartTime,
			entry.StopTime,
			description,
			fmt.Sprintf("%.2f", entry.TravelHours),
			fmt.Sprintf("%.2f", entry.TotalHours),
			entry.ExpenseTotal,
		}
		for i, cell := range cells {
			align := "L"
			if i != 3 {
				align = "C"
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Regular Hours: %.2f", sheet.TotalRegularHours), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Grand Total Hours: %.2f", sheet.GrandTotalHours), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRecordPDF renders one form record: metadata header, every section
// with its labeled fields, and the signatory lines.
func BuildRecordPDF(rec record.Record) ([]byte, error) {
	title := record.FolderLabels[rec.FormType]
	if title == "" {
		title = rec.FormType
	}
	pdf := newDocument(title)

	ownerName := ""
	if rec.OwnerName != nil {
		ownerName = *rec.OwnerName
	}
	labelValue(pdf, "Technician", ownerName)
	labelValue(pdf, "Customer", rec.CustomerName)
	labelValue(pdf, "Equipment", rec.EquipmentName)
	labelValue(pdf, "Serial Number", rec.SerialNumber)
	labelValue(pdf, "Job Order", rec.JobOrder)
	if rec.ReportDate != nil {
		labelValue(pdf, "Report Date", rec.ReportDate.Format("2006-01-02"))
	}
	labelValue(pdf, "Status", rec.Status)
	pdf.Ln(4)

	for _, section := range rec.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, section.Title, "B", 1, "L", false, 0, "")
		pdf.Ln(1)

		for _, field := range section.Fields {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(60, 6, field.Label, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 6, field.Value, "", "L", false)
		}
		pdf.Ln(3)
	}

	if len(rec.Signatories) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Signatures", "B", 1, "L", false, 0, "")
		pdf.Ln(2)

		for _, signatory := range rec.Signatories {
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(90, 6, signatory.Name, "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(0, 6, signatory.RoleLabel, "", 1, "L", false, 0, "")
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
