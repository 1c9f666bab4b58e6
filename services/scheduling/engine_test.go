package scheduling

import (
	"testing"
	"time"

	"mediconnect/models"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func stdAvailability() models.Availability {
	return models.Availability{
		WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
		Timezone:     "Asia/Kolkata",
	}
}

// farPast is a "now" far before any test date, so no slot is filtered as
// past.
var farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func appointmentAt(loc *time.Location, y int, m time.Month, d, h, min, durationMin int, status string) models.Appointment {
	return models.Appointment{
		ID:              "a1",
		DoctorID:        "doc1",
		PatientID:       "pat1",
		StartTime:       time.Date(y, m, d, h, min, 0, 0, loc).UTC(),
		DurationMinutes: durationMin,
		Status:          status,
	}
}

func TestComputeAvailableSlots(t *testing.T) {
	loc := kolkata(t)
	e := NewEngine()

	t.Run("free day yields fourteen slots around lunch", func(t *testing.T) {
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", nil, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 14 {
			t.Fatalf("got %d slots, want 14", len(slots))
		}
		first := slots[0].StartUTC.In(loc)
		if first.Hour() != 9 || first.Minute() != 0 {
			t.Errorf("first slot starts %s, want 09:00 local", first.Format("15:04"))
		}
		last := slots[len(slots)-1].StartUTC.In(loc)
		if last.Hour() != 16 || last.Minute() != 30 {
			t.Errorf("last slot starts %s, want 16:30 local", last.Format("15:04"))
		}
	})

	t.Run("no slot starts inside the lunch hour", func(t *testing.T) {
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", nil, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, s := range slots {
			if s.StartUTC.In(loc).Hour() == 12 {
				t.Errorf("slot %s starts during lunch", s.LocalLabel)
			}
		}
	})

	t.Run("booked interval is hidden", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentConfirmed),
		}
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", existing, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 13 {
			t.Fatalf("got %d slots, want 13", len(slots))
		}
		for _, s := range slots {
			local := s.StartUTC.In(loc)
			if local.Hour() == 10 && local.Minute() == 0 {
				t.Errorf("booked 10:00 slot still listed")
			}
		}
	})

	t.Run("cancelled appointment still hides its slot on the read path", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentCancelled),
		}
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", existing, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 13 {
			t.Fatalf("got %d slots, want 13", len(slots))
		}
	})

	t.Run("long appointment hides every overlapped slot", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 90, models.AppointmentConfirmed),
		}
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", existing, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 11 {
			t.Fatalf("got %d slots, want 11", len(slots))
		}
	})

	t.Run("slots already begun today are dropped", func(t *testing.T) {
		now := time.Date(2026, 10, 5, 14, 10, 0, 0, loc)
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", nil, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Remaining starts: 14:30, 15:00, 15:30, 16:00, 16:30.
		if len(slots) != 5 {
			t.Fatalf("got %d slots, want 5", len(slots))
		}
		if !slots[0].StartUTC.After(now.UTC()) {
			t.Errorf("first slot %s not after now %s", slots[0].StartUTC, now.UTC())
		}
	})

	t.Run("partial final slot is dropped", func(t *testing.T) {
		avail := stdAvailability()
		avail.WorkingHours.End = "17:20"
		slots, err := e.ComputeAvailableSlots(avail, "2026-10-05", nil, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last := slots[len(slots)-1]
		lastEnd := last.EndUTC.In(loc)
		if lastEnd.Hour() != 17 || lastEnd.Minute() != 0 {
			t.Errorf("last slot ends %s, want 17:00 local", lastEnd.Format("15:04"))
		}
	})

	t.Run("legacy appointment without duration blocks thirty minutes", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 11, 0, 0, models.AppointmentConfirmed),
		}
		slots, err := e.ComputeAvailableSlots(stdAvailability(), "2026-10-05", existing, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 13 {
			t.Fatalf("got %d slots, want 13", len(slots))
		}
	})

	t.Run("IST alias resolves", func(t *testing.T) {
		avail := stdAvailability()
		avail.Timezone = "IST"
		slots, err := e.ComputeAvailableSlots(avail, "2026-10-05", nil, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 14 {
			t.Fatalf("got %d slots, want 14", len(slots))
		}
	})

	t.Run("lunch skip follows local wall clock across DST", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Fatalf("load location: %v", err)
		}
		avail := models.Availability{
			WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
			Timezone:     "America/New_York",
		}
		// US DST begins 2026-03-08.
		slots, err := e.ComputeAvailableSlots(avail, "2026-03-08", nil, farPast)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 14 {
			t.Fatalf("got %d slots, want 14", len(slots))
		}
		for _, s := range slots {
			if s.StartUTC.In(ny).Hour() == 12 {
				t.Errorf("slot %s starts during lunch", s.LocalLabel)
			}
		}
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		_, err := e.ComputeAvailableSlots(stdAvailability(), "05-10-2026", nil, farPast)
		if CodeOf(err) != CodeInvalidInput {
			t.Fatalf("got %v, want %s", err, CodeInvalidInput)
		}
	})

	t.Run("inverted working hours are rejected", func(t *testing.T) {
		avail := stdAvailability()
		avail.WorkingHours = models.WorkingHours{Start: "17:00", End: "09:00"}
		_, err := e.ComputeAvailableSlots(avail, "2026-10-05", nil, farPast)
		if CodeOf(err) != CodeInvalidInput {
			t.Fatalf("got %v, want %s", err, CodeInvalidInput)
		}
	})
}

func TestValidateBooking(t *testing.T) {
	loc := kolkata(t)
	e := NewEngine()
	now := time.Date(2026, 10, 5, 8, 0, 0, 0, loc)
	at := func(h, m int) time.Time {
		return time.Date(2026, 10, 5, h, m, 0, 0, loc).UTC()
	}
	dur := 30 * time.Minute

	t.Run("past start is rejected first", func(t *testing.T) {
		err := e.ValidateBooking(at(7, 0), dur, nil, now)
		if CodeOf(err) != CodePastOrInvalidTime {
			t.Fatalf("got %v, want %s", err, CodePastOrInvalidTime)
		}
	})

	t.Run("start equal to now is rejected", func(t *testing.T) {
		err := e.ValidateBooking(now.UTC(), dur, nil, now)
		if CodeOf(err) != CodePastOrInvalidTime {
			t.Fatalf("got %v, want %s", err, CodePastOrInvalidTime)
		}
	})

	t.Run("overlap with confirmed appointment", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentConfirmed),
		}
		err := e.ValidateBooking(at(10, 15), dur, existing, now)
		if CodeOf(err) != CodeSlotAlreadyBooked {
			t.Fatalf("got %v, want %s", err, CodeSlotAlreadyBooked)
		}
	})

	t.Run("overlap with pending appointment", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentPending),
		}
		err := e.ValidateBooking(at(10, 0), dur, existing, now)
		if CodeOf(err) != CodeSlotAlreadyBooked {
			t.Fatalf("got %v, want %s", err, CodeSlotAlreadyBooked)
		}
	})

	t.Run("cancelled appointment does not block", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentCancelled),
		}
		if err := e.ValidateBooking(at(10, 0), dur, existing, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("completed appointment does not block", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentCompleted),
		}
		if err := e.ValidateBooking(at(10, 0), dur, existing, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("back to back fails the buffer", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentConfirmed),
		}
		err := e.ValidateBooking(at(10, 30), dur, existing, now)
		if CodeOf(err) != CodeInsufficientBuffer {
			t.Fatalf("got %v, want %s", err, CodeInsufficientBuffer)
		}
	})

	t.Run("short gap before a neighbour fails the buffer", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 11, 0, 30, models.AppointmentConfirmed),
		}
		// Candidate 10:15-10:45 leaves only 15 minutes before 11:00.
		err := e.ValidateBooking(at(10, 15), dur, existing, now)
		if CodeOf(err) != CodeInsufficientBuffer {
			t.Fatalf("got %v, want %s", err, CodeInsufficientBuffer)
		}
	})

	t.Run("exactly thirty minutes of gap passes", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentConfirmed),
		}
		if err := e.ValidateBooking(at(11, 0), dur, existing, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("overlap wins over buffer when both apply", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 0, 30, models.AppointmentConfirmed),
		}
		err := e.ValidateBooking(at(10, 0), dur, existing, now)
		if CodeOf(err) != CodeSlotAlreadyBooked {
			t.Fatalf("got %v, want %s", err, CodeSlotAlreadyBooked)
		}
	})

	t.Run("zero duration falls back to the default slot length", func(t *testing.T) {
		existing := []models.Appointment{
			appointmentAt(loc, 2026, 10, 5, 10, 45, 30, models.AppointmentConfirmed),
		}
		// With the 30-minute default the candidate ends 10:30, leaving
		// only 15 minutes before the neighbour.
		err := e.ValidateBooking(at(10, 0), 0, existing, now)
		if CodeOf(err) != CodeInsufficientBuffer {
			t.Fatalf("got %v, want %s", err, CodeInsufficientBuffer)
		}
	})
}
