package models

// PerformanceReport summarises a doctor's completed work over a period.
type PerformanceReport struct {
	PatientsTreated int           `json:"patientsTreated"`
	Earnings        float64       `json:"earnings"`
	AverageRating   float64       `json:"averageRating"`
	Cancellations   int64         `json:"cancellations"`
	Appointments    []Appointment `json:"appointments"`
	Page            int           `json:"page"`
	Limit           int           `json:"limit"`
	Total           int64         `json:"total"`
}
