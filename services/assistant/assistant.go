package assistant

import (
	"context"
	"fmt"
	"strings"

	doctorRepo "mediconnect/database/repository/doctor"
	"mediconnect/utils"

	"go.uber.org/zap"
)

// AssistantService answers patient health questions and can point them at
// a specialization the platform actually offers.
type AssistantService interface {
	Chat(ctx context.Context, message string) (string, error)
}

type DefaultAssistantService struct {
	Gemini  *GeminiClient
	Doctors doctorRepo.DoctorRepository
}

func NewDefaultAssistantService(gemini *GeminiClient, doctors doctorRepo.DoctorRepository) *DefaultAssistantService {
	return &DefaultAssistantService{Gemini: gemini, Doctors: doctors}
}

const chatPreamble = `You are a medical triage assistant for an appointment booking platform.
Answer the patient's question briefly and in plain language.
You are not a doctor: never give a diagnosis or prescribe medication.
If the question suggests the patient should see a doctor, recommend one of
these specializations available on the platform: %s.
Always advise calling emergency services for symptoms that sound urgent.

Patient question: %s`

func (s *DefaultAssistantService) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message must not be empty")
	}

	specs, err := s.Doctors.Specializations()
	if err != nil {
		// The chat still works without the catalogue.
		utils.GetLogger().Warn("failed to load specializations for assistant", zap.Error(err))
		specs = nil
	}
	catalogue := "general medicine"
	if len(specs) > 0 {
		catalogue = strings.Join(specs, ", ")
	}

	prompt := fmt.Sprintf(chatPreamble, catalogue, message)
	reply, err := s.Gemini.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant chat failed: %w", err)
	}
	return reply, nil
}
