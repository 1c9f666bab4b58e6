package handlers

import (
	patientRepo "mediconnect/database/repository/patient"
	"mediconnect/services/assistant"
	"mediconnect/services/auth"
	"mediconnect/services/booking"
	"mediconnect/services/doctor"
	"mediconnect/services/payments"
	"mediconnect/services/storage"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every endpoint handler for route registration.
type HandlerBundle struct {
	// Auth
	RegisterDoctor  gin.HandlerFunc
	RegisterPatient gin.HandlerFunc
	LoginDoctor     gin.HandlerFunc
	LoginPatient    gin.HandlerFunc
	Logout          gin.HandlerFunc

	// Doctors
	GetDoctor          gin.HandlerFunc
	UpdateProfile      gin.HandlerFunc
	UpdateAvailability gin.HandlerFunc
	SetActive          gin.HandlerFunc
	Nearby             gin.HandlerFunc
	TopRated           gin.HandlerFunc
	ActiveDoctors      gin.HandlerFunc
	Specializations    gin.HandlerFunc
	Search             gin.HandlerFunc
	AddReview          gin.HandlerFunc
	GetReviews         gin.HandlerFunc
	Performance        gin.HandlerFunc

	// Appointments
	AvailableSlots     gin.HandlerFunc
	BookAppointment    gin.HandlerFunc
	CancelAppointment  gin.HandlerFunc
	ConfirmAppointment gin.HandlerFunc
	Upcoming           gin.HandlerFunc

	// Patients
	GetPatientProfile    gin.HandlerFunc
	UpdatePatientProfile gin.HandlerFunc
	UpdateFCMToken       gin.HandlerFunc

	// Payments, assistant, storage
	StripeWebhook gin.HandlerFunc
	AssistantChat gin.HandlerFunc
	UploadFile    gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	authSvc auth.AuthService,
	doctorSvc doctor.DoctorService,
	bookingSvc booking.BookingService,
	patients patientRepo.PatientRepository,
	webhooks *payments.WebhookProcessor,
	assistantSvc assistant.AssistantService,
	storageSvc storage.StorageService,
) *HandlerBundle {
	b := &HandlerBundle{
		RegisterDoctor:  RegisterDoctorHandler(authSvc),
		RegisterPatient: RegisterPatientHandler(authSvc),
		LoginDoctor:     LoginDoctorHandler(authSvc),
		LoginPatient:    LoginPatientHandler(authSvc),
		Logout:          LogoutHandler(authSvc),

		GetDoctor:          GetDoctorHandler(doctorSvc),
		UpdateProfile:      UpdateDoctorProfileHandler(doctorSvc),
		UpdateAvailability: UpdateAvailabilityHandler(doctorSvc),
		SetActive:          SetActiveHandler(doctorSvc),
		Nearby:             NearbyDoctorsHandler(doctorSvc),
		TopRated:           TopRatedDoctorsHandler(doctorSvc),
		ActiveDoctors:      ActiveDoctorsHandler(doctorSvc),
		Specializations:    SpecializationsHandler(doctorSvc),
		Search:             SearchDoctorsHandler(doctorSvc),
		AddReview:          AddReviewHandler(doctorSvc),
		GetReviews:         GetReviewsHandler(doctorSvc),
		Performance:        PerformanceHandler(doctorSvc),

		AvailableSlots:     AvailableSlotsHandler(bookingSvc),
		BookAppointment:    BookAppointmentHandler(bookingSvc),
		CancelAppointment:  CancelAppointmentHandler(bookingSvc),
		ConfirmAppointment: ConfirmAppointmentHandler(bookingSvc),
		Upcoming:           UpcomingAppointmentsHandler(bookingSvc),

		GetPatientProfile:    GetPatientProfileHandler(patients),
		UpdatePatientProfile: UpdatePatientProfileHandler(patients),
		UpdateFCMToken:       UpdateFCMTokenHandler(patients),

		StripeWebhook: StripeWebhookHandler(webhooks),
		UploadFile:    UploadFileHandler(storageSvc),
	}
	if assistantSvc != nil {
		b.AssistantChat = AssistantChatHandler(assistantSvc)
	}
	return b
}
