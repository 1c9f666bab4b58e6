package handlers

import (
	"net/http"

	"mediconnect/middleware"
	"mediconnect/services/auth"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterDoctorHandler handles POST /api/auth/doctor/register.
func RegisterDoctorHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.DoctorRegistration
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid registration payload", err.Error())
			return
		}
		doctor, err := svc.RegisterDoctor(req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, doctor)
	}
}

// RegisterPatientHandler handles POST /api/auth/patient/register.
func RegisterPatientHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.PatientRegistration
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid registration payload", err.Error())
			return
		}
		patient, err := svc.RegisterPatient(req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, patient)
	}
}

// LoginDoctorHandler handles POST /api/auth/doctor/login.
func LoginDoctorHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid login payload", err.Error())
			return
		}
		result, err := svc.LoginDoctor(req.Email, req.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// LoginPatientHandler handles POST /api/auth/patient/login.
func LoginPatientHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid login payload", err.Error())
			return
		}
		result, err := svc.LoginPatient(req.Email, req.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// LogoutHandler handles POST /api/auth/logout for either role.
func LogoutHandler(svc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID := c.GetString(middleware.CtxSubjectID)
		if err := svc.Logout(subjectID); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}
