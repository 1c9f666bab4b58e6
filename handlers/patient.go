package handlers

import (
	"net/http"
	"time"

	patientRepo "mediconnect/database/repository/patient"
	"mediconnect/middleware"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// GetPatientProfileHandler handles GET /api/patients/me.
func GetPatientProfileHandler(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		patient, err := repo.GetByID(c.GetString(middleware.CtxSubjectID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, patient)
	}
}

// UpdatePatientProfileHandler handles PUT /api/patients/me.
func UpdatePatientProfileHandler(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name         *string    `json:"name"`
			Phone        *string    `json:"phone"`
			Gender       *string    `json:"gender"`
			DateOfBirth  *time.Time `json:"dateOfBirth"`
			ProfilePhoto *string    `json:"profilePhoto"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid profile payload", err.Error())
			return
		}

		patient, err := repo.GetByID(c.GetString(middleware.CtxSubjectID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if req.Name != nil {
			patient.Name = *req.Name
		}
		if req.Phone != nil {
			patient.Phone = *req.Phone
		}
		if req.Gender != nil {
			patient.Gender = *req.Gender
		}
		if req.DateOfBirth != nil {
			patient.DateOfBirth = req.DateOfBirth
		}
		if req.ProfilePhoto != nil {
			patient.ProfilePhoto = *req.ProfilePhoto
		}
		patient.UpdatedAt = time.Now().UTC()

		if err := repo.Update(patient); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, patient)
	}
}

// UpdateFCMTokenHandler handles PUT /api/patients/me/fcm-token so the
// mobile app can rotate its push token.
func UpdateFCMTokenHandler(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "token is required", err.Error())
			return
		}
		if err := repo.UpdateFCMToken(c.GetString(middleware.CtxSubjectID), req.Token); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "token updated"})
	}
}
