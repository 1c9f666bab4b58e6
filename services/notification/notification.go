package notification

import (
	"context"
	"fmt"

	doctorRepo "mediconnect/database/repository/doctor"
	patientRepo "mediconnect/database/repository/patient"
	"mediconnect/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes. Pushes are
// best effort; booking outcomes never depend on them.
type NotificationService interface {
	NotifyPatient(ctx context.Context, patientID, title, body string, data map[string]string) error
	NotifyDoctor(ctx context.Context, doctorID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
}

func NewDefaultNotificationService(doctors doctorRepo.DoctorRepository, patients patientRepo.PatientRepository) *DefaultNotificationService {
	return &DefaultNotificationService{Doctors: doctors, Patients: patients}
}

// NotifyPatient looks up the patient's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyPatient(ctx context.Context, patientID, title, body string, data map[string]string) error {
	patient, err := s.Patients.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("notify patient %s: %w", patientID, err)
	}
	return send(ctx, patient.FCMToken, title, body, data)
}

// NotifyDoctor looks up the doctor's FCM token and sends a push.
func (s *DefaultNotificationService) NotifyDoctor(ctx context.Context, doctorID, title, body string, data map[string]string) error {
	doctor, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return fmt.Errorf("notify doctor %s: %w", doctorID, err)
	}
	return send(ctx, doctor.FCMToken, title, body, data)
}

func send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" || utils.FCMClient == nil {
		// No registered device or pushes disabled; nothing to do.
		return nil
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("push sent", zap.String("title", title))
	return nil
}
