package jobcards

import (
	"context"

	"github.com/motorhaus/motorhaus/internal/vehicles"
)

// VehicleHistory adapts job card records into the visit summaries the
// vehicle detail page renders.
type VehicleHistory struct {
	service *Service
}

func NewVehicleHistory(service *Service) *VehicleHistory {
	return &VehicleHistory{service: service}
}

func (a *VehicleHistory) VehicleHistory(ctx context.Context, vehicleID int64) ([]vehicles.ServiceHistoryEntry, error) {
	cards, err := a.service.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	entries := make([]vehicles.ServiceHistoryEntry, 0, len(cards))
	for _, card := range cards {
		entries = append(entries, vehicles.ServiceHistoryEntry{
			ID:        card.ID,
			OpenDate:  card.OpenDate,
			CloseDate: card.CloseDate,
			Status:    string(card.Status),
		})
	}
	return entries, nil
}
