package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"mediconnect/models"
)

func TestNewReminderTask(t *testing.T) {
	fireAt := time.Now().Add(2 * time.Hour)
	payload := ReminderPayload{
		AppointmentID: "appt1",
		DoctorID:      "doc1",
		PatientID:     "pat1",
		StartTime:     fireAt.Add(ReminderLeadTime),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeSendReminder {
		t.Errorf("task type %q, want %q", task.Type(), TypeSendReminder)
	}
	if len(opts) == 0 {
		t.Error("expected a schedule option")
	}

	var decoded ReminderPayload
	if err := json.Unmarshal(task.Payload(), &decoded); err != nil {
		t.Fatalf("payload does not round-trip: %v", err)
	}
	if decoded.AppointmentID != "appt1" || decoded.PatientID != "pat1" {
		t.Errorf("decoded payload %+v", decoded)
	}
}

func TestScheduleReminderSkipsShortNotice(t *testing.T) {
	// Client stays nil; a booking inside the lead time must not enqueue.
	s := &AsynqReminderScheduler{}
	appt := &models.Appointment{
		ID:        "appt1",
		StartTime: time.Now().Add(30 * time.Minute),
	}
	if err := s.ScheduleReminder(appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
