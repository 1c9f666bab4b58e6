package doctorRepo

import (
	"errors"

	"mediconnect/models"
)

// ErrNotFound is returned when no doctor matches the query.
var ErrNotFound = errors.New("doctor not found")

// NearbyQuery carries the filters for a geo search.
type NearbyQuery struct {
	Longitude      float64
	Latitude       float64
	MaxDistance    float64 // metres
	Specialization string
	MinRating      float64
	Search         string
	ActiveOnly     bool
	Page           int
	Limit          int
}

// NearbyResult pairs a doctor with the computed distance.
type NearbyResult struct {
	models.Doctor `bson:",inline"`
	DistanceKm    float64 `bson:"distance_km" json:"distanceKm"`
}

// DoctorRepository defines persistence operations for doctors.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	GetByID(id string) (*models.Doctor, error)
	GetByEmail(email string) (*models.Doctor, error)
	// GetSchedule fetches only the scheduling subset of a doctor document.
	GetSchedule(id string) (*models.DoctorSchedule, error)
	Update(doctor *models.Doctor) error
	UpdateAvailability(id string, avail models.Availability) error
	SetActive(id string, active bool) (bool, error)
	AddReview(id string, review models.Review) error
	GetReviews(id string, page, limit int) (*models.Doctor, error)
	Nearby(q NearbyQuery) ([]NearbyResult, int64, error)
	TopRated(limit int) ([]models.Doctor, error)
	ListActive(page, limit int) ([]models.Doctor, int64, error)
	Specializations() ([]string, error)
	Search(query string, page, limit int) ([]models.Doctor, int64, error)
}
