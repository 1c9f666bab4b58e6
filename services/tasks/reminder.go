package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"mediconnect/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderLeadTime is how long before the appointment the reminder fires.
const ReminderLeadTime = time.Hour

// ReminderPayload is the task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	DoctorID      string    `json:"doctorId"`
	PatientID     string    `json:"patientId"`
	StartTime     time.Time `json:"startTime"`
}

// NewReminderTask builds the asynq task and its schedule option.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// ReminderScheduler enqueues appointment reminders.
type ReminderScheduler interface {
	ScheduleReminder(appt *models.Appointment) error
}

// AsynqReminderScheduler schedules reminders on the redis-backed queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client}
}

// ScheduleReminder enqueues a reminder one hour before the appointment.
// Appointments booked at shorter notice get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(appt *models.Appointment) error {
	fireAt := appt.StartTime.Add(-ReminderLeadTime)
	if !fireAt.After(time.Now()) {
		return nil
	}
	payload := ReminderPayload{
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		StartTime:     appt.StartTime,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
