package handlers

import (
	"net/http"

	appointmentRepo "mediconnect/database/repository/appointment"
	doctorRepo "mediconnect/database/repository/doctor"
	patientRepo "mediconnect/database/repository/patient"
	"mediconnect/services/auth"
	"mediconnect/services/booking"
	"mediconnect/services/doctor"
	"mediconnect/services/scheduling"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service-layer error to the HTTP response.
// Rule and validation rejections are 4xx with the message passed through;
// anything unrecognised is a 500 with details hidden.
func respondServiceError(c *gin.Context, err error) {
	switch err {
	case doctorRepo.ErrNotFound, patientRepo.ErrNotFound, appointmentRepo.ErrNotFound:
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
		return
	}

	if re, ok := err.(*scheduling.RuleError); ok {
		utils.JSONError(c, http.StatusBadRequest, re.Message, re.Code)
		return
	}
	if be, ok := err.(*booking.BookingError); ok {
		status := http.StatusBadRequest
		if be.Code == booking.CodeUnauthorized {
			status = http.StatusForbidden
		}
		utils.JSONError(c, status, be.Message, be.Code)
		return
	}
	if ae, ok := err.(*auth.AuthError); ok {
		status := http.StatusBadRequest
		if ae.Code == auth.CodeInvalidCredentials {
			status = http.StatusUnauthorized
		}
		utils.JSONError(c, status, ae.Message, ae.Code)
		return
	}
	if de, ok := err.(*doctor.DoctorError); ok {
		utils.JSONError(c, http.StatusBadRequest, de.Message, de.Code)
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, "request failed", err.Error())
}
