package catalog

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorhaus/motorhaus/internal/shared"
)

type mockRepository struct {
	services map[int64]Service
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{services: make(map[int64]Service), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context) ([]Service, error) {
	out := make([]Service, 0, len(m.services))
	for _, s := range m.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockRepository) SearchByName(ctx context.Context, term string) ([]Service, error) {
	var out []Service
	for _, s := range m.services {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(term)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Service, error) {
	s, ok := m.services[id]
	if !ok {
		return Service{}, shared.ErrNotFound
	}
	return s, nil
}

func (m *mockRepository) Create(ctx context.Context, service Service) (Service, error) {
	service.ID = m.nextID
	m.services[service.ID] = service
	m.nextID++
	return service, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, service Service) error {
	if _, ok := m.services[id]; !ok {
		return shared.ErrNotFound
	}
	service.ID = id
	m.services[id] = service
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.services[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func oilChange() Service {
	return Service{
		Name:           "Oil Change",
		Description:    "Drain and replace engine oil, new filter",
		StandardPrice:  49.99,
		EstimatedHours: 0.5,
	}
}

func TestCreateService(t *testing.T) {
	cat := NewCatalog(newMockRepository())

	created, err := cat.Create(context.Background(), oilChange())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestCreateServiceRejectsInvalidRecords(t *testing.T) {
	cat := NewCatalog(newMockRepository())

	cases := map[string]func(*Service){
		"missing name":   func(s *Service) { s.Name = "  " },
		"negative price": func(s *Service) { s.StandardPrice = -1 },
		"negative hours": func(s *Service) { s.EstimatedHours = -0.5 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := oilChange()
			mutate(&s)
			_, err := cat.Create(context.Background(), s)
			assert.ErrorIs(t, err, shared.ErrValidation)
		})
	}
}

func TestSearchByNameBlankTermListsAll(t *testing.T) {
	cat := NewCatalog(newMockRepository())

	_, err := cat.Create(context.Background(), oilChange())
	require.NoError(t, err)

	all, err := cat.SearchByName(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSearchByNameFiltersByTerm(t *testing.T) {
	cat := NewCatalog(newMockRepository())

	_, err := cat.Create(context.Background(), oilChange())
	require.NoError(t, err)
	rotation := oilChange()
	rotation.Name = "Tire Rotation"
	_, err = cat.Create(context.Background(), rotation)
	require.NoError(t, err)

	matches, err := cat.SearchByName(context.Background(), "oil")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Oil Change", matches[0].Name)
}

func TestUpdateServiceMissingRecord(t *testing.T) {
	cat := NewCatalog(newMockRepository())
	err := cat.Update(context.Background(), 7, oilChange())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteService(t *testing.T) {
	cat := NewCatalog(newMockRepository())

	created, err := cat.Create(context.Background(), oilChange())
	require.NoError(t, err)

	require.NoError(t, cat.Delete(context.Background(), created.ID))
	_, err = cat.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
