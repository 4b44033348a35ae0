package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	customers int64
	vehicles  int64
	services  int64
	open      int64
	failWith  error
}

func (m *mockRepository) CountCustomers(ctx context.Context) (int64, error) {
	return m.customers, m.failWith
}

func (m *mockRepository) CountVehicles(ctx context.Context) (int64, error) {
	return m.vehicles, nil
}

func (m *mockRepository) CountServices(ctx context.Context) (int64, error) {
	return m.services, nil
}

func (m *mockRepository) CountJobCardsByStatus(ctx context.Context, status string) (int64, error) {
	if status != "OPEN" {
		return 0, errors.New("unexpected status " + status)
	}
	return m.open, nil
}

func TestStatsGathersAllCounts(t *testing.T) {
	svc := NewService(&mockRepository{customers: 12, vehicles: 18, services: 9, open: 4})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Customers: 12, Vehicles: 18, Services: 9, OpenJobCards: 4}, stats)
}

func TestStatsPropagatesFailure(t *testing.T) {
	svc := NewService(&mockRepository{failWith: errors.New("db down")})

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}
