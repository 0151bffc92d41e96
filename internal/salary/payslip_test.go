package salary_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go-hrpay/internal/events"
	"go-hrpay/internal/notification"
	"go-hrpay/internal/salary"
	salaryMock "go-hrpay/internal/salary/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type memStorage struct {
	uploads map[string][]byte
	err     error
}

func (m *memStorage) Upload(_ context.Context, r io.Reader, ext, bucket string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	url := "/uploads/" + bucket + "/slip" + ext
	m.uploads[url] = data
	return url, nil
}

func (m *memStorage) Update(ctx context.Context, _ string, r io.Reader, ext, bucket string) (string, error) {
	return m.Upload(ctx, r, ext, bucket)
}

type fakeMailer struct {
	sent []notification.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg notification.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func paidSalary() *salary.Salary {
	s := unpaidSalary()
	paidAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.Status = salary.StatusPaid
	s.PaidAt = &paidAt
	s.Employee = budi()
	return s
}

func TestRenderPayslip(t *testing.T) {
	pdf, err := salary.RenderPayslip(*paidSalary())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestPayslipService_DeliverPayslip(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*salaryMock.MockRepository, *memStorage, *fakeMailer, *salary.PayslipService) {
		ctrl := gomock.NewController(t)
		repo := salaryMock.NewMockRepository(ctrl)
		store := &memStorage{uploads: map[string][]byte{}}
		mailer := &fakeMailer{}
		return repo, store, mailer, salary.NewPayslipService(repo, store, mailer, zap.NewNop())
	}

	t.Run("renders, stores and mails the payslip", func(t *testing.T) {
		repo, store, mailer, svc := setup(t)
		s := paidSalary()
		repo.EXPECT().FindByID(ctx, s.ID.String()).Return(s, nil)
		repo.EXPECT().SetPayslipURL(ctx, s.ID.String(), "/uploads/payslips/slip.pdf").Return(nil)

		url, err := svc.DeliverPayslip(ctx, events.SalaryPaidEvent{SalaryID: s.ID.String()})

		require.NoError(t, err)
		assert.Equal(t, "/uploads/payslips/slip.pdf", url)
		assert.True(t, bytes.HasPrefix(store.uploads[url], []byte("%PDF-")))
		if assert.Len(t, mailer.sent, 1) {
			msg := mailer.sent[0]
			assert.Equal(t, "budi@example.com", msg.To)
			assert.Equal(t, "Payslip 04/2024", msg.Subject)
			assert.Contains(t, msg.HTMLBody, "Rp 5.130.000")
			if assert.Len(t, msg.Attachments, 1) {
				assert.Equal(t, "payslip-2024-04.pdf", msg.Attachments[0].Filename)
			}
		}
	})

	t.Run("redelivery returns the stored payslip", func(t *testing.T) {
		repo, store, mailer, svc := setup(t)
		s := paidSalary()
		existing := "/uploads/payslips/first.pdf"
		s.PayslipURL = &existing
		repo.EXPECT().FindByID(ctx, s.ID.String()).Return(s, nil)

		url, err := svc.DeliverPayslip(ctx, events.SalaryPaidEvent{SalaryID: s.ID.String()})

		require.NoError(t, err)
		assert.Equal(t, existing, url)
		assert.Empty(t, store.uploads)
		assert.Empty(t, mailer.sent)
	})

	t.Run("unpaid salary is refused", func(t *testing.T) {
		repo, _, _, svc := setup(t)
		s := unpaidSalary()
		repo.EXPECT().FindByID(ctx, s.ID.String()).Return(s, nil)

		_, err := svc.DeliverPayslip(ctx, events.SalaryPaidEvent{SalaryID: s.ID.String()})

		assert.Error(t, err)
	})

	t.Run("storage failure is returned for redelivery", func(t *testing.T) {
		repo, store, _, svc := setup(t)
		store.err = errors.New("disk full")
		s := paidSalary()
		repo.EXPECT().FindByID(ctx, s.ID.String()).Return(s, nil)

		_, err := svc.DeliverPayslip(ctx, events.SalaryPaidEvent{SalaryID: s.ID.String()})

		assert.EqualError(t, err, "disk full")
	})

	t.Run("mail failure does not fail delivery", func(t *testing.T) {
		repo, _, mailer, svc := setup(t)
		mailer.err = errors.New("smtp down")
		s := paidSalary()
		repo.EXPECT().FindByID(ctx, s.ID.String()).Return(s, nil)
		repo.EXPECT().SetPayslipURL(ctx, s.ID.String(), gomock.Any()).Return(nil)

		url, err := svc.DeliverPayslip(ctx, events.SalaryPaidEvent{SalaryID: s.ID.String()})

		assert.NoError(t, err)
		assert.NotEmpty(t, url)
	})
}
