package doctor

import (
	"fmt"
	"time"

	appointmentRepo "mediconnect/database/repository/appointment"
	doctorRepo "mediconnect/database/repository/doctor"
	"mediconnect/models"
	"mediconnect/services/scheduling"
	"mediconnect/utils"

	"go.uber.org/zap"
)

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// stored value alone.
type ProfileUpdate struct {
	Name             *string          `json:"name,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Gender           *string          `json:"gender,omitempty"`
	DateOfBirth      *time.Time       `json:"dateOfBirth,omitempty"`
	Address          *string          `json:"address,omitempty"`
	HospitalLocation *models.GeoPoint `json:"hospitalLocation,omitempty"`
	Specialization   *string          `json:"specialization,omitempty"`
	Fee              *float64         `json:"fee,omitempty"`
	ProfilePhoto     *string          `json:"profilePhoto,omitempty"`
	Certificate      *string          `json:"certificate,omitempty"`
	FCMToken         *string          `json:"fcmToken,omitempty"`
}

// DoctorService covers profile management, discovery and performance.
type DoctorService interface {
	GetProfile(id string) (*models.Doctor, error)
	UpdateProfile(id string, update ProfileUpdate) (*models.Doctor, error)
	UpdateAvailability(id string, avail models.Availability) error
	SetActive(id string, active bool) (bool, error)
	AddReview(doctorID, patientID string, rating int, comment string) error
	GetReviews(doctorID string, page, limit int) ([]models.Review, error)
	Nearby(q doctorRepo.NearbyQuery) ([]doctorRepo.NearbyResult, int64, error)
	TopRated(limit int) ([]models.Doctor, error)
	ListActive(page, limit int) ([]models.Doctor, int64, error)
	Specializations() ([]string, error)
	Search(query string, page, limit int) ([]models.Doctor, int64, error)
	Performance(doctorID string, from, to *time.Time, page, limit int) (*models.PerformanceReport, error)
}

type DefaultDoctorService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
}

func NewDefaultDoctorService(doctors doctorRepo.DoctorRepository, appointments appointmentRepo.AppointmentRepository) *DefaultDoctorService {
	return &DefaultDoctorService{Doctors: doctors, Appointments: appointments}
}

func (s *DefaultDoctorService) GetProfile(id string) (*models.Doctor, error) {
	return s.Doctors.GetByID(id)
}

func (s *DefaultDoctorService) UpdateProfile(id string, update ProfileUpdate) (*models.Doctor, error) {
	doc, err := s.Doctors.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		doc.Name = *update.Name
	}
	if update.Phone != nil {
		doc.Phone = *update.Phone
	}
	if update.Gender != nil {
		doc.Gender = *update.Gender
	}
	if update.DateOfBirth != nil {
		doc.DateOfBirth = update.DateOfBirth
	}
	if update.Address != nil {
		doc.Address = *update.Address
	}
	if update.HospitalLocation != nil {
		loc := *update.HospitalLocation
		if loc.Type == "" {
			loc.Type = "Point"
		}
		if len(loc.Coordinates) != 2 {
			return nil, newDoctorError(CodeInvalidInput, "hospital location needs [longitude, latitude]")
		}
		doc.HospitalLocation = &loc
	}
	if update.Specialization != nil {
		doc.Specialization = *update.Specialization
	}
	if update.Fee != nil {
		if *update.Fee < 0 {
			return nil, newDoctorError(CodeInvalidInput, "fee must not be negative")
		}
		doc.Fee = *update.Fee
	}
	if update.ProfilePhoto != nil {
		doc.ProfilePhoto = *update.ProfilePhoto
	}
	if update.Certificate != nil {
		doc.Certificate = *update.Certificate
	}
	if update.FCMToken != nil {
		doc.FCMToken = *update.FCMToken
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.Doctors.Update(doc); err != nil {
		utils.GetLogger().Error("UpdateProfile: update failed", zap.String("doctorId", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return doc, nil
}

// UpdateAvailability validates and stores new working hours. Appointments
// already booked outside the new window stay untouched.
func (s *DefaultDoctorService) UpdateAvailability(id string, avail models.Availability) error {
	if avail.Timezone == "" {
		avail.Timezone = scheduling.DefaultTimezone
	}
	if err := scheduling.ValidateAvailability(avail); err != nil {
		return err
	}
	return s.Doctors.UpdateAvailability(id, avail)
}

func (s *DefaultDoctorService) SetActive(id string, active bool) (bool, error) {
	return s.Doctors.SetActive(id, active)
}

func (s *DefaultDoctorService) AddReview(doctorID, patientID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return newDoctorError(CodeInvalidReview, "rating %d out of range, want 1..5", rating)
	}
	review := models.Review{
		PatientID: patientID,
		Rating:    rating,
		Comment:   comment,
		Date:      time.Now().UTC(),
	}
	return s.Doctors.AddReview(doctorID, review)
}

func (s *DefaultDoctorService) GetReviews(doctorID string, page, limit int) ([]models.Review, error) {
	doc, err := s.Doctors.GetReviews(doctorID, page, limit)
	if err != nil {
		return nil, err
	}
	return doc.Reviews, nil
}

func (s *DefaultDoctorService) Nearby(q doctorRepo.NearbyQuery) ([]doctorRepo.NearbyResult, int64, error) {
	return s.Doctors.Nearby(q)
}

func (s *DefaultDoctorService) TopRated(limit int) ([]models.Doctor, error) {
	return s.Doctors.TopRated(limit)
}

func (s *DefaultDoctorService) ListActive(page, limit int) ([]models.Doctor, int64, error) {
	return s.Doctors.ListActive(page, limit)
}

func (s *DefaultDoctorService) Specializations() ([]string, error) {
	return s.Doctors.Specializations()
}

func (s *DefaultDoctorService) Search(query string, page, limit int) ([]models.Doctor, int64, error) {
	return s.Doctors.Search(query, page, limit)
}

// Performance builds the doctor dashboard numbers. Earnings count every
// completed appointment in the range at the current fee, not the fee at
// booking time.
func (s *DefaultDoctorService) Performance(doctorID string, from, to *time.Time, page, limit int) (*models.PerformanceReport, error) {
	doc, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return nil, err
	}

	appts, total, err := s.Appointments.ListCompleted(appointmentRepo.CompletedQuery{
		DoctorID: doctorID,
		From:     from,
		To:       to,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed appointments: %w", err)
	}

	patients, err := s.Appointments.CountDistinctPatients(doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	cancellations, err := s.Appointments.CountCancelled(doctorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count cancellations: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return &models.PerformanceReport{
		PatientsTreated: int(patients),
		Earnings:        float64(total) * doc.Fee,
		AverageRating:   doc.Rating,
		Cancellations:   cancellations,
		Appointments:    appts,
		Page:            page,
		Limit:           limit,
		Total:           total,
	}, nil
}
