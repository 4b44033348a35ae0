package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/motorhaus/motorhaus/internal/customers"
	"github.com/motorhaus/motorhaus/internal/vehicles"
)

// ServiceDueScanner finds vehicles whose last visit is older than the
// configured interval and queues a reminder email to each owner.
type ServiceDueScanner struct {
	logger   *slog.Logger
	fleet    *vehicles.Service
	owners   *customers.Service
	mailer   *Client
	dueAfter time.Duration
}

func NewServiceDueScanner(logger *slog.Logger, fleet *vehicles.Service, owners *customers.Service, mailer *Client, dueAfter time.Duration) *ServiceDueScanner {
	return &ServiceDueScanner{logger: logger, fleet: fleet, owners: owners, mailer: mailer, dueAfter: dueAfter}
}

// Handle processes TaskTypeServiceDueScan tasks. Owners without an
// email address on file are skipped; a single bad record never stops
// the scan.
func (s *ServiceDueScanner) Handle(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-s.dueAfter)
	due, err := s.fleet.ListDueForService(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list due vehicles: %w", err)
	}

	reminded := 0
	for _, vehicle := range due {
		owner, err := s.owners.Get(ctx, vehicle.CustomerID)
		if err != nil {
			s.logger.Warn("service due scan: owner lookup failed", "error", err, "vehicle_id", vehicle.ID)
			continue
		}
		if owner.Email == "" {
			continue
		}

		payload := SendEmailPayload{
			To:      owner.Email,
			Subject: "Your " + vehicle.Description() + " is due for a service",
			Body: fmt.Sprintf("Hello %s,\n\nour records show the last service of your %s (plate %s) was on %s. Give us a call to book the next visit.",
				owner.FullName(), vehicle.Description(), vehicle.LicensePlate, vehicle.LastServiceDate.Format("02 Jan 2006")),
		}
		if _, err := s.mailer.EnqueueSendEmail(ctx, payload); err != nil {
			s.logger.Warn("service due scan: enqueue reminder failed", "error", err, "vehicle_id", vehicle.ID)
			continue
		}
		reminded++
	}

	s.logger.Info("service due scan finished", "due", len(due), "reminded", reminded)
	return nil
}
