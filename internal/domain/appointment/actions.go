package appointment

import (
	"time"

	"github.com/clipperdesk/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	ap.StartedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}
