package customers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorhaus/motorhaus/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	customers map[int64]Customer
	nextID    int64
	failWith  error
}

func newMockRepository() *mockRepository {
	return &mockRepository{customers: make(map[int64]Customer), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context) ([]Customer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (m *mockRepository) SearchByName(ctx context.Context, term string) ([]Customer, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	term = strings.ToLower(term)
	var out []Customer
	for _, c := range m.customers {
		if strings.Contains(strings.ToLower(c.FirstName), term) || strings.Contains(strings.ToLower(c.LastName), term) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Customer, error) {
	if m.failWith != nil {
		return Customer{}, m.failWith
	}
	c, ok := m.customers[id]
	if !ok {
		return Customer{}, shared.ErrNotFound
	}
	return c, nil
}

func (m *mockRepository) GetByPhone(ctx context.Context, phone string) (Customer, error) {
	for _, c := range m.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return Customer{}, shared.ErrNotFound
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (Customer, error) {
	for _, c := range m.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return Customer{}, shared.ErrNotFound
}

func (m *mockRepository) Create(ctx context.Context, customer Customer) (Customer, error) {
	if m.failWith != nil {
		return Customer{}, m.failWith
	}
	customer.ID = m.nextID
	customer.RegistrationDate = time.Now()
	m.customers[customer.ID] = customer
	m.nextID++
	return customer, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, customer Customer) error {
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.customers[id]
	if !ok {
		return shared.ErrNotFound
	}
	customer.ID = id
	customer.RegistrationDate = existing.RegistrationDate
	m.customers[id] = customer
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.customers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func validCustomer() Customer {
	return Customer{
		FirstName: "Maria",
		LastName:  "Santos",
		Phone:     "(555) 123-4567",
		Email:     "maria@example.com",
		Address:   "12 Elm Street",
		City:      "Springfield",
		State:     "IL",
		ZipCode:   "62704",
	}
}

// ============================================================================
// SERVICE TESTS
// ============================================================================

func TestCreateCustomer(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), validCustomer())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.RegistrationDate.IsZero())
	assert.Equal(t, "Maria Santos", created.FullName())
}

func TestCreateCustomerRejectsInvalidRecords(t *testing.T) {
	svc := NewService(newMockRepository())

	cases := map[string]func(*Customer){
		"missing first name": func(c *Customer) { c.FirstName = "  " },
		"missing last name":  func(c *Customer) { c.LastName = "" },
		"short phone":        func(c *Customer) { c.Phone = "12345" },
		"long phone":         func(c *Customer) { c.Phone = "555-123-456789" },
		"malformed email":    func(c *Customer) { c.Email = "not-an-email" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := validCustomer()
			mutate(&c)
			_, err := svc.Create(context.Background(), c)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestCreateCustomerAcceptsPhoneFormats(t *testing.T) {
	for _, phone := range []string{"(555) 123-4567", "555-123-4567", "5551234567"} {
		svc := NewService(newMockRepository())
		c := validCustomer()
		c.Phone = phone
		_, err := svc.Create(context.Background(), c)
		assert.NoError(t, err, "phone %q should be accepted", phone)
	}
}

func TestCreateCustomerAllowsEmptyEmail(t *testing.T) {
	svc := NewService(newMockRepository())
	c := validCustomer()
	c.Email = ""
	_, err := svc.Create(context.Background(), c)
	assert.NoError(t, err)
}

func TestUpdateCustomer(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validCustomer())
	require.NoError(t, err)

	updated := created
	updated.City = "Shelbyville"
	require.NoError(t, svc.Update(context.Background(), created.ID, updated))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", got.City)
}

func TestUpdateCustomerMissingRecord(t *testing.T) {
	svc := NewService(newMockRepository())
	err := svc.Update(context.Background(), 42, validCustomer())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetCustomerRejectsBadID(t *testing.T) {
	svc := NewService(newMockRepository())
	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestDeleteCustomer(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), validCustomer())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSearchByNameBlankTermListsAll(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validCustomer())
	require.NoError(t, err)
	second := validCustomer()
	second.FirstName = "Jo"
	second.LastName = "Abbott"
	second.Phone = "5559876543"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	all, err := svc.SearchByName(context.Background(), "   ")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Abbott", all[0].LastName, "listing should be ordered by last name")
}

func TestSearchByNameFiltersByTerm(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.Create(context.Background(), validCustomer())
	require.NoError(t, err)

	matches, err := svc.SearchByName(context.Background(), "sant")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Santos", matches[0].LastName)

	none, err := svc.SearchByName(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateCustomerPropagatesRepoErrors(t *testing.T) {
	repo := newMockRepository()
	repo.failWith = errors.New("connection reset")
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validCustomer())
	assert.Error(t, err)
}
