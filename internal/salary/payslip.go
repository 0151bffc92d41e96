package salary

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"time"

	"go-hrpay/internal/events"
	"go-hrpay/internal/notification"
	"go-hrpay/internal/shared/storage"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const payslipBucket = "payslips"

// PayslipService turns a paid salary into a stored PDF and mails it to the
// employee. It backs the salary_paid consumer.
type PayslipService struct {
	repo   Repository
	store  storage.Storage
	mailer notification.Mailer
	logger *zap.Logger
}

func NewPayslipService(repo Repository, store storage.Storage, mailer notification.Mailer, logger ...*zap.Logger) *PayslipService {
	l := zap.L().Named("salary.payslip")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.payslip")
	}
	return &PayslipService{repo: repo, store: store, mailer: mailer, logger: l}
}

// DeliverPayslip is safe to call again for the same event: a salary that
// already has a payslip is left untouched and its URL returned. Mail
// failures are logged and do not fail the delivery.
func (p *PayslipService) DeliverPayslip(ctx context.Context, event events.SalaryPaidEvent) (string, error) {
	sal, err := p.repo.FindByID(ctx, event.SalaryID)
	if err != nil {
		p.logger.Error("payslip salary lookup failed", zap.String("salary_id", event.SalaryID), zap.Error(err))
		return "", mapRepositoryError(err)
	}
	if sal.Status != StatusPaid {
		return "", fmt.Errorf("salary %s is %s, payslip needs PAID", sal.ID, sal.Status)
	}
	if sal.PayslipURL != nil && *sal.PayslipURL != "" {
		p.logger.Info("payslip already delivered", zap.String("salary_id", event.SalaryID))
		return *sal.PayslipURL, nil
	}

	pdf, err := RenderPayslip(*sal)
	if err != nil {
		p.logger.Error("render payslip failed", zap.String("salary_id", event.SalaryID), zap.Error(err))
		return "", err
	}

	url, err := p.store.Upload(ctx, bytes.NewReader(pdf), ".pdf", payslipBucket)
	if err != nil {
		p.logger.Error("store payslip failed", zap.String("salary_id", event.SalaryID), zap.Error(err))
		return "", err
	}
	if err := p.repo.SetPayslipURL(ctx, sal.ID.String(), url); err != nil {
		p.logger.Error("save payslip url failed", zap.String("salary_id", event.SalaryID), zap.Error(err))
		return "", err
	}

	if sal.Employee == nil || sal.Employee.Email == "" {
		p.logger.Warn("payslip mail skipped, employee has no email", zap.String("salary_id", event.SalaryID))
		return url, nil
	}

	msg := notification.Message{
		To:       sal.Employee.Email,
		Subject:  fmt.Sprintf("Payslip %s/%s", sal.Month, sal.Year),
		HTMLBody: payslipMailBody(*sal),
		Attachments: []notification.Attachment{
			{Filename: fmt.Sprintf("payslip-%s-%s.pdf", sal.Year, sal.Month), Content: pdf},
		},
	}
	if err := p.mailer.Send(ctx, msg); err != nil {
		p.logger.Warn("payslip mail failed", zap.String("salary_id", event.SalaryID), zap.Error(err))
	}
	return url, nil
}

// RenderPayslip draws a one page A4 payslip.
func RenderPayslip(sal Salary) ([]byte, error) {
	var name, number, position string
	if sal.Employee != nil {
		name = sal.Employee.FullName
		number = sal.Employee.EmployeeNumber
		position = sal.Employee.Position
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s/%s", sal.Month, sal.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	info := [][2]string{
		{"Employee", name},
		{"Employee Number", number},
		{"Position", position},
		{"Period", sal.Month + "/" + sal.Year},
	}
	if sal.PaidAt != nil {
		info = append(info, [2]string{"Paid At", sal.PaidAt.Format("02 Jan 2006")})
	}
	for _, kv := range info {
		pdf.CellFormat(45, 7, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, ": "+kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	lines := []struct {
		label  string
		amount int64
	}{
		{"Base Salary", sal.BaseSalary},
		{"Bonus", sal.Bonus},
		{"Attendance Bonus", sal.AttendanceBonus},
		{"Deduction", -sal.Deduction},
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 8, "Component", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(110, 8, l.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, formatMoney(l.amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, formatMoney(sal.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, "Generated "+time.Now().UTC().Format(time.RFC3339))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var moneyPrinter = message.NewPrinter(language.Indonesian)

func formatMoney(v int64) string {
	return moneyPrinter.Sprintf("Rp %d", v)
}

func payslipMailBody(sal Salary) string {
	name := ""
	if sal.Employee != nil {
		name = sal.Employee.FullName
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Your salary for %s/%s has been paid. Total: <b>%s</b>.</p><p>The payslip is attached.</p>",
		html.EscapeString(name), sal.Month, sal.Year, html.EscapeString(formatMoney(sal.Total)),
	)
}
