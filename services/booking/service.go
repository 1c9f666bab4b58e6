package booking

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "mediconnect/database/repository/appointment"
	doctorRepo "mediconnect/database/repository/doctor"
	"mediconnect/models"
	"mediconnect/services/notification"
	"mediconnect/services/payments"
	"mediconnect/services/scheduling"
	"mediconnect/services/tasks"
	"mediconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService wires the scheduling engine to storage, payments
// and notifications.
type DefaultBookingService struct {
	Engine       *scheduling.Engine
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Gateway      payments.Gateway
	Notifier     notification.NotificationService
	Reminders    tasks.ReminderScheduler
}

func NewDefaultBookingService(
	engine *scheduling.Engine,
	doctors doctorRepo.DoctorRepository,
	appointments appointmentRepo.AppointmentRepository,
	gateway payments.Gateway,
	notifier notification.NotificationService,
	reminders tasks.ReminderScheduler,
) *DefaultBookingService {
	return &DefaultBookingService{
		Engine:       engine,
		Doctors:      doctors,
		Appointments: appointments,
		Gateway:      gateway,
		Notifier:     notifier,
		Reminders:    reminders,
	}
}

// AvailableSlots lists the bookable slots for one doctor on one local
// calendar date.
func (s *DefaultBookingService) AvailableSlots(doctorID, date string, now time.Time) (*SlotListing, error) {
	sched, err := s.Doctors.GetSchedule(doctorID)
	if err != nil {
		return nil, err
	}

	loc, err := scheduling.ResolveLocation(sched.Availability.Timezone)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, scheduling.NewRuleError(scheduling.CodeInvalidInput,
			fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date))
	}
	dayEnd := day.AddDate(0, 0, 1)

	existing, err := s.Appointments.ListForDoctorBetween(doctorID, day.UTC(), dayEnd.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load day appointments: %w", err)
	}

	slots, err := s.Engine.ComputeAvailableSlots(sched.Availability, date, existing, now)
	if err != nil {
		return nil, err
	}
	return &SlotListing{
		DoctorID:     sched.ID,
		DoctorName:   sched.Name,
		Date:         date,
		WorkingHours: sched.Availability.WorkingHours,
		Timezone:     sched.Availability.Timezone,
		Slots:        slots,
	}, nil
}

// Book validates and persists a new appointment. Validation reruns against
// live data and the insert itself is guarded by the storage conflict check,
// so two racing patients cannot both win the same interval.
func (s *DefaultBookingService) Book(ctx context.Context, req BookingRequest, now time.Time) (*BookingResult, error) {
	if req.PaymentMethod != models.PaymentMethodCash && req.PaymentMethod != models.PaymentMethodOnline {
		return nil, scheduling.NewRuleError(scheduling.CodeInvalidInput,
			fmt.Sprintf("payment method %q not supported", req.PaymentMethod))
	}

	sched, err := s.Doctors.GetSchedule(req.DoctorID)
	if err != nil {
		return nil, err
	}
	if !sched.Active {
		return nil, newBookingError(CodeDoctorUnavailable, "doctor %s is not accepting bookings", sched.Name)
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	if duration <= 0 {
		duration = scheduling.DefaultSlotMinutes * time.Minute
		req.DurationMinutes = scheduling.DefaultSlotMinutes
	}
	buffer := scheduling.BufferMinutes * time.Minute

	// The validation window covers every appointment that could overlap
	// the candidate or sit inside its buffer zone.
	candStart := req.StartTime.UTC()
	windowFrom := candStart.Add(-buffer)
	windowTo := candStart.Add(duration).Add(buffer)
	existing, err := s.Appointments.ListForDoctorBetween(req.DoctorID, windowFrom, windowTo)
	if err != nil {
		return nil, fmt.Errorf("failed to load neighbouring appointments: %w", err)
	}
	if err := s.Engine.ValidateBooking(candStart, duration, existing, now); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		StartTime:       candStart,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Payment: models.Payment{
			Method: req.PaymentMethod,
			Status: models.PaymentPending,
		},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	var clientSecret string
	switch req.PaymentMethod {
	case models.PaymentMethodCash:
		// Cash is settled at the visit; the booking confirms right away.
		appt.Status = models.AppointmentConfirmed
	case models.PaymentMethodOnline:
		appt.Status = models.AppointmentPending
		orderID, secret, err := s.Gateway.CreateOrder(ctx, appt, sched.Fee)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment order: %w", err)
		}
		appt.Payment.ExternalOrderID = orderID
		clientSecret = secret
	}

	if err := s.Appointments.InsertIfFree(ctx, appt, buffer); err != nil {
		if err == appointmentRepo.ErrConflict {
			return nil, scheduling.NewRuleError(scheduling.CodeSlotAlreadyBooked,
				fmt.Sprintf("slot starting %s is already booked", candStart.Format(time.RFC3339)))
		}
		return nil, fmt.Errorf("failed to store appointment: %w", err)
	}

	s.notifyBooked(ctx, appt, sched.Name)
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(appt); err != nil {
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	return &BookingResult{Appointment: appt, PaymentIntent: clientSecret}, nil
}

// Cancel is allowed to the owning patient or the owning doctor while the
// appointment is not terminal. Paid online bookings are refunded.
func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID, actorID, actorRole, reason string, now time.Time) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}

	switch actorRole {
	case utils.RolePatient:
		if appt.PatientID != actorID {
			return nil, newBookingError(CodeUnauthorized, "appointment belongs to another patient")
		}
	case utils.RoleDoctor:
		if appt.DoctorID != actorID {
			return nil, newBookingError(CodeUnauthorized, "appointment belongs to another doctor")
		}
	default:
		return nil, newBookingError(CodeUnauthorized, "unknown role %q", actorRole)
	}

	if appt.Terminal() {
		return nil, newBookingError(CodeNotCancellable, "appointment is already %s", appt.Status)
	}

	if appt.Payment.Method == models.PaymentMethodOnline && appt.Payment.Status == models.PaymentPaid {
		if err := s.Gateway.Refund(ctx, appt.Payment.ExternalOrderID); err != nil {
			return nil, fmt.Errorf("failed to refund payment: %w", err)
		}
		if err := s.Appointments.SetPaymentStatus(appt.ID, models.PaymentRefunded); err != nil {
			return nil, fmt.Errorf("failed to record refund: %w", err)
		}
		appt.Payment.Status = models.PaymentRefunded
	}

	if err := s.Appointments.UpdateStatus(appt.ID, models.AppointmentCancelled, reason); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	appt.Status = models.AppointmentCancelled
	appt.CancelReason = reason
	appt.UpdatedAt = now.UTC()

	s.notifyCancelled(ctx, appt)
	return appt, nil
}

// Confirm lets the owning doctor confirm a pending booking, typically a
// cash one made on the phone.
func (s *DefaultBookingService) Confirm(appointmentID, doctorID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, newBookingError(CodeUnauthorized, "appointment belongs to another doctor")
	}
	if appt.Status != models.AppointmentPending {
		return nil, newBookingError(CodeNotCancellable, "appointment is %s, only pending ones can be confirmed", appt.Status)
	}
	if err := s.Appointments.UpdateStatus(appt.ID, models.AppointmentConfirmed, ""); err != nil {
		return nil, fmt.Errorf("failed to confirm appointment: %w", err)
	}
	appt.Status = models.AppointmentConfirmed
	return appt, nil
}

func (s *DefaultBookingService) UpcomingForPatient(patientID string, now time.Time) ([]models.Appointment, error) {
	return s.Appointments.ListUpcomingForPatient(patientID, now)
}

// Notifications are best effort; a push failure never fails the booking.

func (s *DefaultBookingService) notifyBooked(ctx context.Context, appt *models.Appointment, doctorName string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{
		"appointmentId": appt.ID,
		"startTime":     appt.StartTime.Format(time.RFC3339),
	}
	when := appt.StartTime.Format("3:04 PM, Jan 2")
	if err := s.Notifier.NotifyPatient(ctx, appt.PatientID, "Appointment booked",
		fmt.Sprintf("Your appointment with %s is set for %s.", doctorName, when), data); err != nil {
		utils.GetLogger().Warn("patient booking push failed", zap.Error(err))
	}
	if err := s.Notifier.NotifyDoctor(ctx, appt.DoctorID, "New appointment",
		fmt.Sprintf("A patient booked %s.", when), data); err != nil {
		utils.GetLogger().Warn("doctor booking push failed", zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyCancelled(ctx context.Context, appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{
		"appointmentId": appt.ID,
		"startTime":     appt.StartTime.Format(time.RFC3339),
	}
	when := appt.StartTime.Format("3:04 PM, Jan 2")
	if err := s.Notifier.NotifyPatient(ctx, appt.PatientID, "Appointment cancelled",
		fmt.Sprintf("Your appointment on %s was cancelled.", when), data); err != nil {
		utils.GetLogger().Warn("patient cancel push failed", zap.Error(err))
	}
	if err := s.Notifier.NotifyDoctor(ctx, appt.DoctorID, "Appointment cancelled",
		fmt.Sprintf("The appointment on %s was cancelled.", when), data); err != nil {
		utils.GetLogger().Warn("doctor cancel push failed", zap.Error(err))
	}
}
