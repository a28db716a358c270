package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medcore-io/appointment-service/internal/domain"
	"github.com/medcore-io/appointment-service/internal/events"
	"github.com/medcore-io/appointment-service/internal/repository"
	"github.com/medcore-io/appointment-service/internal/risk"
	apperrors "github.com/medcore-io/appointment-service/pkg/util"
)

// BookingService coordinates the appointment lifecycle: booking with slot
// conflict resolution, ownership-checked cancellation and status updates.
type BookingService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	history      repository.HistoryRepository
	estimator    risk.Estimator
	dispatcher   events.Dispatcher
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	DoctorRepo      repository.DoctorRepository
	HistoryRepo     repository.HistoryRepository
	Estimator       risk.Estimator
	Dispatcher      events.Dispatcher
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		appointments: deps.AppointmentRepo,
		doctors:      deps.DoctorRepo,
		history:      deps.HistoryRepo,
		estimator:    deps.Estimator,
		dispatcher:   deps.Dispatcher,
	}
}

// Book creates a Confirmed appointment for the patient. The slot check is
// enforced by the store's active-slot uniqueness, so concurrent bookings for
// the same (doctor, time) resolve to exactly one winner.
func (s *BookingService) Book(ctx context.Context, patient *domain.User, doctorID string, appointmentTime time.Time) (*domain.Appointment, error) {
	if patient == nil {
		return nil, apperrors.NewUnauthorized("patient required")
	}
	if doctorID == "" {
		return nil, apperrors.NewValidationError("doctor_id and appointment_time are required", nil)
	}
	if appointmentTime.IsZero() {
		return nil, apperrors.NewValidationError("doctor_id and appointment_time are required", nil)
	}

	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", map[string]any{"doctor_id": doctorID})
		}
		return nil, apperrors.MapError(err)
	}

	appt := &domain.Appointment{
		UserID:          patient.ID,
		DoctorID:        doctorID,
		AppointmentTime: appointmentTime,
		Status:          domain.AppointmentStatusConfirmed,
		RiskFlag:        s.estimateRisk(ctx, patient, appointmentTime),
	}

	if err := s.appointments.Create(ctx, appt, patient.ID); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.NewConflict("this time slot is already booked", map[string]any{
				"doctor_id":        doctorID,
				"appointment_time": appointmentTime,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventAppointmentBooked,
		AppointmentID: appt.ID,
		Actor:         patientActor(patient.ID),
		Payload: events.AppointmentBookedPayload{
			DoctorID:        appt.DoctorID,
			AppointmentTime: appt.AppointmentTime,
			Status:          appt.Status,
			RiskFlag:        appt.RiskFlag,
		},
	})
	return appt, nil
}

// ListForPatient returns the patient's appointments ascending by time.
func (s *BookingService) ListForPatient(ctx context.Context, patientID string) ([]domain.AppointmentView, error) {
	views, err := s.appointments.ListByUser(ctx, patientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return views, nil
}

// ListForDoctor returns the doctor's schedule ascending by time.
func (s *BookingService) ListForDoctor(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	appts, err := s.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return appts, nil
}

// Cancel soft-deletes the appointment for its owning patient. Cancelling an
// already-Cancelled appointment is a no-op success.
func (s *BookingService) Cancel(ctx context.Context, patientID, appointmentID string) error {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("appointment", map[string]any{"appointment_id": appointmentID})
		}
		return apperrors.MapError(err)
	}
	if appt.UserID != patientID {
		return apperrors.NewForbidden("you can only cancel your own appointments")
	}
	if appt.Status == domain.AppointmentStatusCancelled {
		return nil
	}

	if err := s.appointments.SetStatus(ctx, appt, domain.AppointmentStatusCancelled, domain.ActorTypePatient, patientID, "patient_cancelled"); err != nil {
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventAppointmentCancelled,
		AppointmentID: appt.ID,
		Actor:         patientActor(patientID),
		Payload: events.AppointmentCancelledPayload{
			DoctorID:        appt.DoctorID,
			AppointmentTime: appt.AppointmentTime,
		},
	})
	return nil
}

// UpdateStatus overwrites the status for the owning doctor. The enum is
// validated; transition legality deliberately is not.
func (s *BookingService) UpdateStatus(ctx context.Context, doctorID, appointmentID string, newStatus domain.AppointmentStatus) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"appointment_id": appointmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if appt.DoctorID != doctorID {
		return nil, apperrors.NewForbidden("you can only update your own appointments")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": newStatus})
	}

	oldStatus := appt.Status
	if err := s.appointments.SetStatus(ctx, appt, newStatus, domain.ActorTypeDoctor, doctorID, "doctor_updated"); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.NewConflict("this time slot is already booked", map[string]any{
				"doctor_id":        appt.DoctorID,
				"appointment_time": appt.AppointmentTime,
			})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventAppointmentStatusChanged,
		AppointmentID: appt.ID,
		Actor:         doctorActor(doctorID),
		Payload: events.AppointmentStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return appt, nil
}

// HistoryForDoctor returns audit entries for one of the doctor's appointments.
func (s *BookingService) HistoryForDoctor(ctx context.Context, doctorID, appointmentID string) ([]domain.AppointmentHistory, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"appointment_id": appointmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if appt.DoctorID != doctorID {
		return nil, apperrors.NewForbidden("you can only view your own appointments")
	}
	entries, err := s.history.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *BookingService) estimateRisk(ctx context.Context, patient *domain.User, t time.Time) domain.RiskFlag {
	if s.estimator == nil {
		return domain.RiskFlagUnknown
	}
	flag, err := s.estimator.Estimate(ctx, risk.FeaturesFromTime(t, patient.PriorMissed))
	if err != nil {
		return domain.RiskFlagUnknown
	}
	return flag
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func patientActor(userID string) events.Actor {
	return events.Actor{
		Type:   domain.SubjectTypePatient,
		UserID: &userID,
	}
}

func doctorActor(doctorID string) events.Actor {
	return events.Actor{
		Type:     domain.SubjectTypeDoctor,
		DoctorID: &doctorID,
	}
}
