package vehicles

import (
	"context"
	"sort"
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
	vehicles map[int64]Vehicle
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{vehicles: make(map[int64]Vehicle), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context) ([]Vehicle, error) {
	out := make([]Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockRepository) ListByCustomer(ctx context.Context, customerID int64) ([]Vehicle, error) {
	var out []Vehicle
	for _, v := range m.vehicles {
		if v.CustomerID == customerID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (m *mockRepository) ListDueForService(ctx context.Context, before time.Time) ([]Vehicle, error) {
	var out []Vehicle
	for _, v := range m.vehicles {
		if v.LastServiceDate != nil && !v.LastServiceDate.After(before) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return Vehicle{}, shared.ErrNotFound
	}
	return v, nil
}

func (m *mockRepository) GetByLicensePlate(ctx context.Context, plate string) (Vehicle, error) {
	for _, v := range m.vehicles {
		if v.LicensePlate == plate {
			return v, nil
		}
	}
	return Vehicle{}, shared.ErrNotFound
}

func (m *mockRepository) Create(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	vehicle.ID = m.nextID
	m.vehicles[vehicle.ID] = vehicle
	m.nextID++
	return vehicle, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, vehicle Vehicle) error {
	if _, ok := m.vehicles[id]; !ok {
		return shared.ErrNotFound
	}
	vehicle.ID = id
	m.vehicles[id] = vehicle
	return nil
}

func (m *mockRepository) SetLastServiceDate(ctx context.Context, id int64, servicedAt time.Time) error {
	v, ok := m.vehicles[id]
	if !ok {
		return shared.ErrNotFound
	}
	v.LastServiceDate = &servicedAt
	m.vehicles[id] = v
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.vehicles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

func validVehicle() Vehicle {
	return Vehicle{
		CustomerID:   1,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2019,
		LicensePlate: "ABC-1234",
		VIN:          "1HGCM82633A004352",
		Color:        "Silver",
		Mileage:      42000,
	}
}

// ============================================================================
// SERVICE TESTS
// ============================================================================

func TestCreateVehicle(t *testing.T) {
	svc := NewService(newMockRepository())

	created, err := svc.Create(context.Background(), validVehicle())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "2019 Toyota Corolla", created.Description())
	assert.Nil(t, created.LastServiceDate)
}

func TestCreateVehicleRejectsInvalidRecords(t *testing.T) {
	svc := NewService(newMockRepository())

	cases := map[string]func(*Vehicle){
		"missing owner":    func(v *Vehicle) { v.CustomerID = 0 },
		"missing make":     func(v *Vehicle) { v.Make = " " },
		"missing model":    func(v *Vehicle) { v.Model = "" },
		"year too old":     func(v *Vehicle) { v.Year = 1899 },
		"year in future":   func(v *Vehicle) { v.Year = time.Now().Year() + 2 },
		"missing plate":    func(v *Vehicle) { v.LicensePlate = "" },
		"short VIN":        func(v *Vehicle) { v.VIN = "ABC123" },
		"negative mileage": func(v *Vehicle) { v.Mileage = -1 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := validVehicle()
			mutate(&v)
			_, err := svc.Create(context.Background(), v)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestCreateVehicleAllowsEmptyVIN(t *testing.T) {
	svc := NewService(newMockRepository())
	v := validVehicle()
	v.VIN = ""
	_, err := svc.Create(context.Background(), v)
	assert.NoError(t, err)
}

func TestCreateVehicleAllowsNextModelYear(t *testing.T) {
	svc := NewService(newMockRepository())
	v := validVehicle()
	v.Year = time.Now().Year() + 1
	_, err := svc.Create(context.Background(), v)
	assert.NoError(t, err)
}

func TestRecordServiceVisit(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validVehicle())
	require.NoError(t, err)

	visited := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, svc.RecordServiceVisit(context.Background(), created.ID, visited))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastServiceDate)
	assert.True(t, got.LastServiceDate.Equal(visited))
}

func TestListByCustomerRejectsBadID(t *testing.T) {
	svc := NewService(newMockRepository())
	_, err := svc.ListByCustomer(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestListDueForService(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	serviced, err := svc.Create(context.Background(), validVehicle())
	require.NoError(t, err)
	longAgo := time.Now().AddDate(-1, 0, 0)
	require.NoError(t, svc.RecordServiceVisit(context.Background(), serviced.ID, longAgo))

	fresh := validVehicle()
	fresh.LicensePlate = "XYZ-9876"
	_, err = svc.Create(context.Background(), fresh)
	require.NoError(t, err)

	due, err := svc.ListDueForService(context.Background(), time.Now().AddDate(0, -6, 0))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, serviced.ID, due[0].ID)
}
