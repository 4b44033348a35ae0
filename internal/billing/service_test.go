package billing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorhaus/motorhaus/internal/shared"
)

type mockRepository struct {
	bills  map[int64]Bill
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{bills: make(map[int64]Bill), nextID: 1}
}

func (m *mockRepository) ListByJobCard(ctx context.Context, jobCardID int64) ([]Bill, error) {
	var out []Bill
	for _, b := range m.bills {
		if b.JobCardID == jobCardID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Bill, error) {
	b, ok := m.bills[id]
	if !ok {
		return Bill{}, shared.ErrNotFound
	}
	return b, nil
}

func (m *mockRepository) Create(ctx context.Context, bill Bill) (Bill, error) {
	bill.ID = m.nextID
	m.bills[bill.ID] = bill
	m.nextID++
	return bill, nil
}

func (m *mockRepository) MarkPaid(ctx context.Context, id int64, method string, paidAt time.Time) error {
	b, ok := m.bills[id]
	if !ok {
		return shared.ErrNotFound
	}
	b.PaymentStatus = PaymentPaid
	b.PaymentMethod = method
	b.PaymentDate = &paidAt
	m.bills[id] = b
	return nil
}

func sampleBill() Bill {
	return Bill{
		JobCardID:        3,
		TotalServiceCost: 150,
		TotalPartsCost:   80,
		TaxAmount:        23,
		DiscountAmount:   10,
		GrandTotal:       243,
		Notes:            "winter check",
	}
}

func TestRecordBillForcesInitialState(t *testing.T) {
	svc := NewService(newMockRepository())

	stamped := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamped }

	bill := sampleBill()
	bill.PaymentStatus = PaymentPaid
	created, err := svc.Record(context.Background(), bill)
	require.NoError(t, err)

	assert.Equal(t, PaymentPending, created.PaymentStatus)
	assert.True(t, created.BillDate.Equal(stamped))
	assert.Nil(t, created.PaymentDate)
}

func TestRecordBillRejectsInvalidRecords(t *testing.T) {
	svc := NewService(newMockRepository())

	cases := map[string]func(*Bill){
		"missing job card":  func(b *Bill) { b.JobCardID = 0 },
		"negative total":    func(b *Bill) { b.GrandTotal = -1 },
		"negative tax":      func(b *Bill) { b.TaxAmount = -0.01 },
		"negative discount": func(b *Bill) { b.DiscountAmount = -5 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			b := sampleBill()
			mutate(&b)
			_, err := svc.Record(context.Background(), b)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestMarkPaid(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.Record(context.Background(), sampleBill())
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(context.Background(), created.ID, "CARD"))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "CARD", got.PaymentMethod)
	require.NotNil(t, got.PaymentDate)
}

func TestMarkPaidRequiresMethod(t *testing.T) {
	svc := NewService(newMockRepository())
	err := svc.MarkPaid(context.Background(), 1, "  ")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListByJobCard(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Record(context.Background(), sampleBill())
	require.NoError(t, err)
	other := sampleBill()
	other.JobCardID = 9
	_, err = svc.Record(context.Background(), other)
	require.NoError(t, err)

	bills, err := svc.ListByJobCard(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, int64(3), bills[0].JobCardID)
}
