package handlers

import (
	"net/http"
	"time"

	"mediconnect/middleware"
	"mediconnect/services/booking"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// AvailableSlotsHandler handles GET /api/doctors/:id/slots?date=YYYY-MM-DD.
// It is public: patients browse slots before logging in.
func AvailableSlotsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doctorID := c.Param("id")
		date := c.Query("date")
		if date == "" {
			utils.JSONError(c, http.StatusBadRequest, "date query parameter is required", "")
			return
		}
		listing, err := svc.AvailableSlots(doctorID, date, time.Now())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, listing)
	}
}

// BookAppointmentHandler handles POST /api/appointments.
func BookAppointmentHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req booking.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
			return
		}
		req.PatientID = c.GetString(middleware.CtxSubjectID)

		result, err := svc.Book(c.Request.Context(), req, time.Now())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, result)
	}
}

// CancelAppointmentHandler handles PUT /api/appointments/:id/cancel for
// either the owning patient or the owning doctor.
func CancelAppointmentHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Reason string `json:"reason"`
		}
		// The body is optional; cancelling without a reason is fine.
		_ = c.ShouldBindJSON(&req)

		appt, err := svc.Cancel(c.Request.Context(), c.Param("id"),
			c.GetString(middleware.CtxSubjectID), c.GetString(middleware.CtxRole),
			req.Reason, time.Now())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// ConfirmAppointmentHandler handles PUT /api/appointments/:id/confirm,
// doctor only.
func ConfirmAppointmentHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		appt, err := svc.Confirm(c.Param("id"), c.GetString(middleware.CtxSubjectID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// UpcomingAppointmentsHandler handles GET /api/appointments/upcoming for
// the logged-in patient.
func UpcomingAppointmentsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		appts, err := svc.UpcomingForPatient(c.GetString(middleware.CtxSubjectID), time.Now())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": appts})
	}
}
