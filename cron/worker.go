package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mediconnect/config"
	"mediconnect/services/notification"
	"mediconnect/services/tasks"
	"mediconnect/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	logger := utils.GetLogger().Named("reminder-worker")

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, logger))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
				if attempt == maxAttempts {
					logger.Fatal("reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Info("firing appointment reminder",
			zap.String("appointmentId", p.AppointmentID),
			zap.String("patientId", p.PatientID),
			zap.Time("startTime", p.StartTime))

		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"doctorId":      p.DoctorID,
			"startTime":     p.StartTime.Format(time.RFC3339),
		}
		title := "Upcoming appointment"
		body := fmt.Sprintf("Your appointment starts at %s.", p.StartTime.Format("3:04 PM, Jan 2"))

		if err := notifSvc.NotifyPatient(ctx, p.PatientID, title, body, data); err != nil {
			logger.Error("failed to deliver reminder", zap.Error(err))
			return err
		}
		return nil
	}
}
