package jobcards

import "github.com/motorhaus/motorhaus/internal/shared"

// Status is the lifecycle state of a job card.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// AllStatuses lists every job card status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusCompleted, StatusDelivered, StatusCancelled}
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ClosesCard reports whether the status marks the end of the workshop
// visit. These states stamp the close date; every other state clears it.
func (s Status) ClosesCard() bool {
	return s == StatusCompleted || s == StatusDelivered
}

// ParseStatus converts a raw form value into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", shared.ErrValidation
	}
	return s, nil
}

// JobServiceStatus is the progress state of one service line on a job
// card. It moves independently of the card's own status.
type JobServiceStatus string

const (
	JobServicePending    JobServiceStatus = "PENDING"
	JobServiceInProgress JobServiceStatus = "IN_PROGRESS"
	JobServiceCompleted  JobServiceStatus = "COMPLETED"
)

// AllJobServiceStatuses lists every job service status.
func AllJobServiceStatuses() []JobServiceStatus {
	return []JobServiceStatus{JobServicePending, JobServiceInProgress, JobServiceCompleted}
}

func (s JobServiceStatus) Valid() bool {
	switch s {
	case JobServicePending, JobServiceInProgress, JobServiceCompleted:
		return true
	}
	return false
}

// ParseJobServiceStatus converts a raw form value into a JobServiceStatus.
func ParseJobServiceStatus(raw string) (JobServiceStatus, error) {
	s := JobServiceStatus(raw)
	if !s.Valid() {
		return "", shared.ErrValidation
	}
	return s, nil
}
