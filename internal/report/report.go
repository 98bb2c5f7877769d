// Package report renders single-transaction fraud analysis reports as PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/fraudguard/fraudguard/internal/domain"
)

// Generate writes a one-page PDF report for an analyzed transaction.
func Generate(entry domain.HistoryEntry, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Fraud Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Report ID: %s", entry.ID), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section(pdf, "Transaction Details")
	row(pdf, "Timestamp", entry.TransDateTransTime)
	row(pdf, "Merchant", entry.Merchant)
	row(pdf, "Category", string(entry.Category))
	row(pdf, "Amount", fmt.Sprintf("$%.2f", entry.Amt))
	row(pdf, "State", entry.State)
	row(pdf, "City Population", fmt.Sprintf("%d", entry.CityPop))
	pdf.Ln(4)

	section(pdf, "Risk Assessment")
	level := entry.RiskLevel
	if level == "" {
		if entry.IsFraud {
			level = domain.Fraud
		} else {
			level = domain.RiskFree
		}
	}
	row(pdf, "Risk Level", string(level))
	row(pdf, "Risk Score", fmt.Sprintf("%.1f%%", entry.RiskScore*100))
	action := entry.ActionTaken
	if action == "" {
		action = domain.ActionNone
	}
	row(pdf, "Action Taken", action)
	pdf.Ln(4)

	if entry.Lat != nil && entry.Long != nil {
		section(pdf, "Location")
		row(pdf, "Cardholder", fmt.Sprintf("%.4f, %.4f", *entry.Lat, *entry.Long))
		row(pdf, "Merchant", fmt.Sprintf("%.4f, %.4f", entry.MerchLat, entry.MerchLon))
		row(pdf, "Distance", fmt.Sprintf("%.2f degrees", entry.Dist))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report PDF: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.Ln(1)
}

func row(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}
