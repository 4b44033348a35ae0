package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeServiceDueScan is the periodic scan for vehicles that are
	// overdue for a service visit.
	TaskTypeServiceDueScan = "vehicles:service_due_scan"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewServiceDueScanTask constructs the scheduler task for the reminder
// scan. The payload is empty; the scan derives everything from config.
func NewServiceDueScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeServiceDueScan, nil)
}

// SendEmailHandler processes TaskTypeSendEmail tasks. Delivery is a log
// line until an SMTP relay is configured for the shop.
func SendEmailHandler(logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		logger.Info("send email", "to", payload.To, "subject", payload.Subject)
		return nil
	}
}
