package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// DocumentService renders receipts and schedules for download
type DocumentService struct {
	repos *repository.Repositories
}

func NewDocumentService(repos *repository.Repositories) *DocumentService {
	return &DocumentService{repos: repos}
}

// ReceiptPDF renders the receipt of a registered payment
func (s *DocumentService) ReceiptPDF(ctx context.Context, paymentID uint) ([]byte, string, error) {
	payment, err := s.repos.Payment.FindByID(ctx, paymentID)
	if err != nil {
		return nil, "", lookupError("pago", paymentID, err)
	}

	pdf := gofpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Recibo de pago"))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, payment.Reference)
	pdf.Ln(10)

	rows := [][2]string{
		{"Fecha de pago", payment.PaymentDate.Format(dateLayout)},
		{"Préstamo", fmt.Sprintf("#%d", payment.LoanID)},
	}
	if payment.Loan != nil && payment.Loan.Client != nil {
		rows = append(rows,
			[2]string{"Cliente", payment.Loan.Client.FullName()},
			[2]string{"DNI", payment.Loan.Client.DNI},
		)
	}
	if payment.Installment != nil {
		rows = append(rows,
			[2]string{"Cuota", fmt.Sprintf("%d", payment.Installment.Number)},
			[2]string{"Días", fmt.Sprintf("%d", payment.Installment.Days)},
		)
	}
	rows = append(rows,
		[2]string{"Capital", payment.Principal.StringFixed(2)},
		[2]string{"Capital pagado", payment.PrincipalPaid.StringFixed(2)},
		[2]string{"Interés", payment.InterestPaid.StringFixed(2)},
	)

	for _, row := range rows {
		pdf.Cell(45, 7, tr(row[0]+":"))
		pdf.Cell(60, 7, tr(row[1]))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(45, 8, "Total pagado:")
	pdf.Cell(60, 8, payment.TotalPaid.StringFixed(2))
	pdf.Ln(8)

	if payment.InterestReduced {
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr("Interés calculado sobre días transcurridos por abono parcial anticipado."), "", "L", false)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("recibo_%s.pdf", payment.Reference), nil
}

// ScheduleXLSX renders a loan's payment book as a spreadsheet
func (s *DocumentService) ScheduleXLSX(ctx context.Context, loanID uint) ([]byte, string, error) {
	loan, err := s.repos.Loan.FindByIDWithDetails(ctx, loanID)
	if err != nil {
		return nil, "", lookupError("préstamo", loanID, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cuotas"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Préstamo #%d", loan.ID))
	if loan.Client != nil {
		_ = f.SetCellValue(sheet, "C1", loan.Client.FullName())
		_ = f.SetCellValue(sheet, "F1", loan.Client.DNI)
	}
	_ = f.SetCellValue(sheet, "A2", "Capital")
	_ = f.SetCellValue(sheet, "B2", loan.Principal.InexactFloat64())
	_ = f.SetCellValue(sheet, "C2", "Tasa diaria %")
	_ = f.SetCellValue(sheet, "D2", loan.DailyRate.InexactFloat64())
	_ = f.SetCellValue(sheet, "E2", "Estado")
	_ = f.SetCellValue(sheet, "F2", models.LoanStatusName(loan.Status))

	headers := []string{"Cuota", "Inicio", "Pago", "Días", "Capital", "Interés", "Capital pagado", "Saldo", "Total", "Estado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheet, cell, h)
	}
	_ = f.SetCellStyle(sheet, "A4", "J4", headerStyle)

	for i, inst := range loan.Installments {
		row := i + 5
		values := []interface{}{
			inst.Number,
			formatDate(inst.StartDate),
			formatDate(inst.DueDate),
			inst.Days,
			inst.Principal.InexactFloat64(),
			inst.InterestAmount.InexactFloat64(),
			inst.PrincipalPaid.InexactFloat64(),
			inst.Balance.InexactFloat64(),
			inst.TotalDue.InexactFloat64(),
			inst.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("talonario_%d.xlsx", loan.ID), nil
}

// PaymentsCSV exports the payment ledger of a loan
func (s *DocumentService) PaymentsCSV(ctx context.Context, loanID uint) ([]byte, string, error) {
	if _, err := s.repos.Loan.FindByID(ctx, loanID); err != nil {
		return nil, "", lookupError("préstamo", loanID, err)
	}
	payments, err := s.repos.Payment.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, "", storageError("listar pagos", err)
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Recibo", "Fecha", "Cuota", "Capital", "Capital pagado", "Interés", "Total", "Interés reducido"})
	for _, p := range payments {
		reduced := "no"
		if p.InterestReduced {
			reduced = "si"
		}
		_ = writer.Write([]string{
			p.Reference,
			p.PaymentDate.Format(dateLayout),
			fmt.Sprintf("%d", p.InstallmentID),
			p.Principal.StringFixed(2),
			p.PrincipalPaid.StringFixed(2),
			p.InterestPaid.StringFixed(2),
			p.TotalPaid.StringFixed(2),
			reduced,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), fmt.Sprintf("pagos_prestamo_%d.csv", loanID), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
