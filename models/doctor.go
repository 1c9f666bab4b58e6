package models

import "time"

// WorkingHours is the daily time-of-day window, as "HH:MM" strings,
// interpreted in the doctor's timezone.
type WorkingHours struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Availability groups the scheduling configuration for a doctor.
type Availability struct {
	WorkingHours WorkingHours `bson:"working_hours" json:"workingHours"`
	Timezone     string       `bson:"timezone" json:"timezone"` // IANA name or "IST"
}

// GeoPoint is a GeoJSON point, [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Review is a patient review embedded on the doctor document.
type Review struct {
	PatientID string    `bson:"patient_id" json:"patientId"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment" json:"comment"`
	Date      time.Time `bson:"date" json:"date"`
}

// Doctor is the provider-side account document.
type Doctor struct {
	ID               string       `bson:"id" json:"id"`
	Name             string       `bson:"name" json:"name"`
	Email            string       `bson:"email" json:"email"`
	PasswordHash     string       `bson:"password_hash" json:"-"`
	Specialization   string       `bson:"specialization" json:"specialization"`
	Certificate      string       `bson:"certificate,omitempty" json:"certificate,omitempty"` // uploaded document URL
	ProfilePhoto     string       `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	Phone            string       `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender           string       `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth      *time.Time   `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"`
	Address          string       `bson:"address,omitempty" json:"address,omitempty"`
	HospitalLocation *GeoPoint    `bson:"hospital_location,omitempty" json:"hospitalLocation,omitempty"`
	Active           bool         `bson:"active" json:"active"` // accepting bookings
	Availability     Availability `bson:"availability" json:"availability"`
	Fee              float64      `bson:"fee" json:"fee"`
	Rating           float64      `bson:"rating" json:"rating"` // derived from reviews
	Reviews          []Review     `bson:"reviews,omitempty" json:"reviews,omitempty"`
	FCMToken         string       `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt        time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time    `bson:"updated_at" json:"updatedAt"`
}

// DoctorSchedule is the scheduling subset of a doctor document, fetched
// with a projection on the slot read/booking paths.
type DoctorSchedule struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Active       bool         `bson:"active" json:"active"`
	Availability Availability `bson:"availability" json:"availability"`
	Fee          float64      `bson:"fee" json:"fee"`
}
