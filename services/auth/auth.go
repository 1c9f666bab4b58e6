package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	doctorRepo "mediconnect/database/repository/doctor"
	patientRepo "mediconnect/database/repository/patient"
	"mediconnect/models"
	"mediconnect/services/scheduling"
	"mediconnect/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DoctorRegistration is the signup payload for a doctor account.
type DoctorRegistration struct {
	Name           string              `json:"name" binding:"required"`
	Email          string              `json:"email" binding:"required,email"`
	Password       string              `json:"password" binding:"required,min=8"`
	Specialization string              `json:"specialization" binding:"required"`
	Phone          string              `json:"phone"`
	Fee            float64             `json:"fee"`
	Availability   models.Availability `json:"availability"`
}

// PatientRegistration is the signup payload for a patient account.
type PatientRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// LoginResult pairs the issued token with the account's public fields.
type LoginResult struct {
	Token   string      `json:"token"`
	Role    string      `json:"role"`
	Account interface{} `json:"account"`
}

// AuthService handles registration, login and logout for both roles.
type AuthService interface {
	RegisterDoctor(reg DoctorRegistration) (*models.Doctor, error)
	RegisterPatient(reg PatientRegistration) (*models.Patient, error)
	LoginDoctor(email, password string) (*LoginResult, error)
	LoginPatient(email, password string) (*LoginResult, error)
	Logout(subjectID string) error
}

type DefaultAuthService struct {
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
}

func NewDefaultAuthService(doctors doctorRepo.DoctorRepository, patients patientRepo.PatientRepository) *DefaultAuthService {
	return &DefaultAuthService{Doctors: doctors, Patients: patients}
}

func (s *DefaultAuthService) RegisterDoctor(reg DoctorRegistration) (*models.Doctor, error) {
	email := normalizeEmail(reg.Email)
	if existing, err := s.Doctors.GetByEmail(email); err == nil && existing != nil {
		return nil, newAuthError(CodeEmailTaken, "a doctor with this email already exists")
	} else if err != nil && err != doctorRepo.ErrNotFound {
		utils.GetLogger().Error("RegisterDoctor: email lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	avail := reg.Availability
	if avail.WorkingHours.Start == "" {
		avail.WorkingHours = models.WorkingHours{Start: "09:00", End: "17:00"}
	}
	if avail.Timezone == "" {
		avail.Timezone = scheduling.DefaultTimezone
	}
	if err := scheduling.ValidateAvailability(avail); err != nil {
		return nil, newAuthError(CodeInvalidInput, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	doctor := &models.Doctor{
		ID:             uuid.New().String(),
		Name:           reg.Name,
		Email:          email,
		PasswordHash:   string(hash),
		Specialization: reg.Specialization,
		Phone:          reg.Phone,
		Fee:            reg.Fee,
		Active:         true,
		Availability:   avail,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Doctors.Create(doctor); err != nil {
		utils.GetLogger().Error("RegisterDoctor: create failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	return doctor, nil
}

func (s *DefaultAuthService) RegisterPatient(reg PatientRegistration) (*models.Patient, error) {
	email := normalizeEmail(reg.Email)
	if existing, err := s.Patients.GetByEmail(email); err == nil && existing != nil {
		return nil, newAuthError(CodeEmailTaken, "a patient with this email already exists")
	} else if err != nil && err != patientRepo.ErrNotFound {
		utils.GetLogger().Error("RegisterPatient: email lookup failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	patient := &models.Patient{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        reg.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Patients.Create(patient); err != nil {
		utils.GetLogger().Error("RegisterPatient: create failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	return patient, nil
}

func (s *DefaultAuthService) LoginDoctor(email, password string) (*LoginResult, error) {
	doctor, err := s.Doctors.GetByEmail(normalizeEmail(email))
	if err != nil {
		if err == doctorRepo.ErrNotFound {
			return nil, newAuthError(CodeInvalidCredentials, "invalid email or password")
		}
		utils.GetLogger().Error("LoginDoctor: lookup failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	token, err := issueSession(doctor.ID, utils.RoleDoctor, doctor.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: utils.RoleDoctor, Account: doctor}, nil
}

func (s *DefaultAuthService) LoginPatient(email, password string) (*LoginResult, error) {
	patient, err := s.Patients.GetByEmail(normalizeEmail(email))
	if err != nil {
		if err == patientRepo.ErrNotFound {
			return nil, newAuthError(CodeInvalidCredentials, "invalid email or password")
		}
		utils.GetLogger().Error("LoginPatient: lookup failed", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	token, err := issueSession(patient.ID, utils.RolePatient, patient.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: utils.RolePatient, Account: patient}, nil
}

// Logout drops the cached token hash so the current token stops validating.
func (s *DefaultAuthService) Logout(subjectID string) error {
	client := utils.GetAuthCacheClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Del(ctx, utils.AuthCachePrefix+subjectID).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// issueSession verifies the password, mints a JWT and caches its hash. A
// later login replaces the cached hash, so only the newest token is live.
func issueSession(subjectID, role, passwordHash, password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return "", newAuthError(CodeInvalidCredentials, "invalid email or password")
	}

	token, err := utils.GenerateToken(subjectID, role, utils.AuthCacheTTL)
	if err != nil {
		utils.GetLogger().Error("issueSession: token generation failed", zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}

	client := utils.GetAuthCacheClient()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := utils.AuthCachePrefix + subjectID
	if err := client.Set(ctx, key, utils.HashToken(token), utils.AuthCacheTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
