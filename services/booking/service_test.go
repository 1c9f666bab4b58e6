package booking

import (
	"context"
	"testing"
	"time"

	appointmentRepo "mediconnect/database/repository/appointment"
	doctorRepo "mediconnect/database/repository/doctor"
	"mediconnect/models"
	"mediconnect/services/scheduling"
	"mediconnect/utils"
)

type fakeDoctorRepo struct {
	doctorRepo.DoctorRepository
	sched *models.DoctorSchedule
	err   error
}

func (f *fakeDoctorRepo) GetSchedule(id string) (*models.DoctorSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sched, nil
}

type fakeAppointmentRepo struct {
	appointmentRepo.AppointmentRepository

	existing   []models.Appointment
	stored     []*models.Appointment
	insertErr  error
	byID       *models.Appointment
	statusSet  string
	reasonSet  string
	paymentSet string
}

func (f *fakeAppointmentRepo) ListForDoctorBetween(doctorID string, from, to time.Time) ([]models.Appointment, error) {
	return f.existing, nil
}

func (f *fakeAppointmentRepo) InsertIfFree(ctx context.Context, appt *models.Appointment, buffer time.Duration) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.stored = append(f.stored, appt)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	if f.byID == nil {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *f.byID
	return &cp, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(id, status, reason string) error {
	f.statusSet = status
	f.reasonSet = reason
	return nil
}

func (f *fakeAppointmentRepo) SetPaymentStatus(id, paymentStatus string) error {
	f.paymentSet = paymentStatus
	return nil
}

func (f *fakeAppointmentRepo) ListUpcomingForPatient(patientID string, now time.Time) ([]models.Appointment, error) {
	return f.existing, nil
}

type fakeGateway struct {
	orderID      string
	clientSecret string
	orderErr     error
	refunded     []string
}

func (f *fakeGateway) CreateOrder(ctx context.Context, appt *models.Appointment, amount float64) (string, string, error) {
	if f.orderErr != nil {
		return "", "", f.orderErr
	}
	return f.orderID, f.clientSecret, nil
}

func (f *fakeGateway) Refund(ctx context.Context, paymentID string) error {
	f.refunded = append(f.refunded, paymentID)
	return nil
}

func activeSchedule() *models.DoctorSchedule {
	return &models.DoctorSchedule{
		ID:     "doc1",
		Name:   "Dr. Rao",
		Active: true,
		Availability: models.Availability{
			WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
			Timezone:     "Asia/Kolkata",
		},
		Fee: 500,
	}
}

func newTestService(doctors *fakeDoctorRepo, appts *fakeAppointmentRepo, gw *fakeGateway) *DefaultBookingService {
	return NewDefaultBookingService(scheduling.NewEngine(), doctors, appts, gw, nil, nil)
}

var testNow = time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC)

func validRequest() BookingRequest {
	return BookingRequest{
		DoctorID:        "doc1",
		PatientID:       "pat1",
		StartTime:       testNow.Add(26 * time.Hour),
		DurationMinutes: 30,
		PaymentMethod:   models.PaymentMethodCash,
	}
}

func TestBook(t *testing.T) {
	t.Run("cash booking is confirmed immediately", func(t *testing.T) {
		appts := &fakeAppointmentRepo{}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		result, err := svc.Book(context.Background(), validRequest(), testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		appt := result.Appointment
		if appt.Status != models.AppointmentConfirmed {
			t.Errorf("status %q, want confirmed", appt.Status)
		}
		if appt.Payment.Status != models.PaymentPending {
			t.Errorf("payment status %q, want pending until the visit", appt.Payment.Status)
		}
		if result.PaymentIntent != "" {
			t.Errorf("cash booking should carry no client secret")
		}
		if len(appts.stored) != 1 {
			t.Fatalf("stored %d appointments, want 1", len(appts.stored))
		}
	})

	t.Run("online booking stays pending with a payment intent", func(t *testing.T) {
		appts := &fakeAppointmentRepo{}
		gw := &fakeGateway{orderID: "pi_123", clientSecret: "secret_123"}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, gw)

		req := validRequest()
		req.PaymentMethod = models.PaymentMethodOnline
		result, err := svc.Book(context.Background(), req, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Appointment.Status != models.AppointmentPending {
			t.Errorf("status %q, want pending", result.Appointment.Status)
		}
		if result.Appointment.Payment.ExternalOrderID != "pi_123" {
			t.Errorf("order id %q, want pi_123", result.Appointment.Payment.ExternalOrderID)
		}
		if result.PaymentIntent != "secret_123" {
			t.Errorf("client secret %q, want secret_123", result.PaymentIntent)
		}
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, &fakeAppointmentRepo{}, &fakeGateway{})
		req := validRequest()
		req.PaymentMethod = "barter"
		_, err := svc.Book(context.Background(), req, testNow)
		if scheduling.CodeOf(err) != scheduling.CodeInvalidInput {
			t.Fatalf("got %v, want %s", err, scheduling.CodeInvalidInput)
		}
	})

	t.Run("inactive doctor is unavailable", func(t *testing.T) {
		sched := activeSchedule()
		sched.Active = false
		svc := newTestService(&fakeDoctorRepo{sched: sched}, &fakeAppointmentRepo{}, &fakeGateway{})

		_, err := svc.Book(context.Background(), validRequest(), testNow)
		be, ok := err.(*BookingError)
		if !ok || be.Code != CodeDoctorUnavailable {
			t.Fatalf("got %v, want %s", err, CodeDoctorUnavailable)
		}
	})

	t.Run("overlapping appointment rejects before the insert", func(t *testing.T) {
		req := validRequest()
		appts := &fakeAppointmentRepo{
			existing: []models.Appointment{{
				ID:              "other",
				DoctorID:        "doc1",
				StartTime:       req.StartTime,
				DurationMinutes: 30,
				Status:          models.AppointmentConfirmed,
			}},
		}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		_, err := svc.Book(context.Background(), req, testNow)
		if scheduling.CodeOf(err) != scheduling.CodeSlotAlreadyBooked {
			t.Fatalf("got %v, want %s", err, scheduling.CodeSlotAlreadyBooked)
		}
		if len(appts.stored) != 0 {
			t.Errorf("losing booking must not be stored")
		}
	})

	t.Run("storage conflict maps to slot already booked", func(t *testing.T) {
		appts := &fakeAppointmentRepo{insertErr: appointmentRepo.ErrConflict}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		_, err := svc.Book(context.Background(), validRequest(), testNow)
		if scheduling.CodeOf(err) != scheduling.CodeSlotAlreadyBooked {
			t.Fatalf("got %v, want %s", err, scheduling.CodeSlotAlreadyBooked)
		}
	})
}

func TestCancel(t *testing.T) {
	base := models.Appointment{
		ID:              "appt1",
		DoctorID:        "doc1",
		PatientID:       "pat1",
		StartTime:       testNow.Add(26 * time.Hour),
		DurationMinutes: 30,
		Status:          models.AppointmentConfirmed,
		Payment:         models.Payment{Method: models.PaymentMethodCash, Status: models.PaymentPending},
	}

	t.Run("patient cancels own booking", func(t *testing.T) {
		appt := base
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		got, err := svc.Cancel(context.Background(), "appt1", "pat1", utils.RolePatient, "feeling better", testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != models.AppointmentCancelled {
			t.Errorf("status %q, want cancelled", got.Status)
		}
		if appts.statusSet != models.AppointmentCancelled || appts.reasonSet != "feeling better" {
			t.Errorf("repo got status %q reason %q", appts.statusSet, appts.reasonSet)
		}
	})

	t.Run("paid online booking is refunded", func(t *testing.T) {
		appt := base
		appt.Payment = models.Payment{
			Method:          models.PaymentMethodOnline,
			Status:          models.PaymentPaid,
			ExternalOrderID: "pi_123",
		}
		appts := &fakeAppointmentRepo{byID: &appt}
		gw := &fakeGateway{}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, gw)

		got, err := svc.Cancel(context.Background(), "appt1", "pat1", utils.RolePatient, "", testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(gw.refunded) != 1 || gw.refunded[0] != "pi_123" {
			t.Errorf("refunded %v, want [pi_123]", gw.refunded)
		}
		if got.Payment.Status != models.PaymentRefunded || appts.paymentSet != models.PaymentRefunded {
			t.Errorf("refund not recorded: %q / %q", got.Payment.Status, appts.paymentSet)
		}
	})

	t.Run("doctor cancels own appointment", func(t *testing.T) {
		appt := base
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		if _, err := svc.Cancel(context.Background(), "appt1", "doc1", utils.RoleDoctor, "", testNow); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("foreign patient is rejected", func(t *testing.T) {
		appt := base
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		_, err := svc.Cancel(context.Background(), "appt1", "someone-else", utils.RolePatient, "", testNow)
		be, ok := err.(*BookingError)
		if !ok || be.Code != CodeUnauthorized {
			t.Fatalf("got %v, want %s", err, CodeUnauthorized)
		}
	})

	t.Run("terminal appointment cannot be cancelled", func(t *testing.T) {
		appt := base
		appt.Status = models.AppointmentCompleted
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		_, err := svc.Cancel(context.Background(), "appt1", "pat1", utils.RolePatient, "", testNow)
		be, ok := err.(*BookingError)
		if !ok || be.Code != CodeNotCancellable {
			t.Fatalf("got %v, want %s", err, CodeNotCancellable)
		}
	})
}

func TestConfirm(t *testing.T) {
	pending := models.Appointment{
		ID:        "appt1",
		DoctorID:  "doc1",
		PatientID: "pat1",
		Status:    models.AppointmentPending,
	}

	t.Run("doctor confirms a pending booking", func(t *testing.T) {
		appt := pending
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		got, err := svc.Confirm("appt1", "doc1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != models.AppointmentConfirmed {
			t.Errorf("status %q, want confirmed", got.Status)
		}
	})

	t.Run("foreign doctor is rejected", func(t *testing.T) {
		appt := pending
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		_, err := svc.Confirm("appt1", "doc2")
		be, ok := err.(*BookingError)
		if !ok || be.Code != CodeUnauthorized {
			t.Fatalf("got %v, want %s", err, CodeUnauthorized)
		}
	})

	t.Run("already confirmed booking is rejected", func(t *testing.T) {
		appt := pending
		appt.Status = models.AppointmentConfirmed
		appts := &fakeAppointmentRepo{byID: &appt}
		svc := newTestService(&fakeDoctorRepo{sched: activeSchedule()}, appts, &fakeGateway{})

		if _, err := svc.Confirm("appt1", "doc1"); err == nil {
			t.Fatal("expected rejection")
		}
	})
}
