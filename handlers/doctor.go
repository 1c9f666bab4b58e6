package handlers

import (
	"net/http"
	"strconv"
	"time"

	doctorRepo "mediconnect/database/repository/doctor"
	"mediconnect/middleware"
	"mediconnect/models"
	"mediconnect/services/doctor"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
)

// GetDoctorHandler handles GET /api/doctors/:id.
func GetDoctorHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := svc.GetProfile(c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// UpdateDoctorProfileHandler handles PUT /api/doctors/me.
func UpdateDoctorProfileHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update doctor.ProfileUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid profile payload", err.Error())
			return
		}
		doc, err := svc.UpdateProfile(c.GetString(middleware.CtxSubjectID), update)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// UpdateAvailabilityHandler handles PUT /api/doctors/me/availability.
func UpdateAvailabilityHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var avail models.Availability
		if err := c.ShouldBindJSON(&avail); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid availability payload", err.Error())
			return
		}
		if err := svc.UpdateAvailability(c.GetString(middleware.CtxSubjectID), avail); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "availability updated"})
	}
}

// SetActiveHandler handles PUT /api/doctors/me/active.
func SetActiveHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Active *bool `json:"active" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "active flag is required", err.Error())
			return
		}
		active, err := svc.SetActive(c.GetString(middleware.CtxSubjectID), *req.Active)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"active": active})
	}
}

// NearbyDoctorsHandler handles GET /api/doctors/nearby.
func NearbyDoctorsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lng, errLng := strconv.ParseFloat(c.Query("longitude"), 64)
		lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
		if errLng != nil || errLat != nil {
			utils.JSONError(c, http.StatusBadRequest, "longitude and latitude are required", "")
			return
		}
		q := doctorRepo.NearbyQuery{
			Longitude:      lng,
			Latitude:       lat,
			MaxDistance:    queryFloat(c, "maxDistance", 10_000),
			Specialization: c.Query("specialization"),
			MinRating:      queryFloat(c, "minRating", 0),
			Search:         c.Query("search"),
			ActiveOnly:     c.DefaultQuery("activeOnly", "true") == "true",
			Page:           queryInt(c, "page", 1),
			Limit:          queryInt(c, "limit", 10),
		}
		results, total, err := svc.Nearby(q)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"doctors": results,
			"total":   total,
			"page":    q.Page,
			"limit":   q.Limit,
		})
	}
}

// TopRatedDoctorsHandler handles GET /api/doctors/top-rated.
func TopRatedDoctorsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		doctors, err := svc.TopRated(queryInt(c, "limit", 10))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"doctors": doctors})
	}
}

// SpecializationsHandler handles GET /api/doctors/specializations.
func SpecializationsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		specs, err := svc.Specializations()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"specializations": specs})
	}
}

// SearchDoctorsHandler handles GET /api/doctors/search?q=.
func SearchDoctorsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			utils.JSONError(c, http.StatusBadRequest, "q query parameter is required", "")
			return
		}
		page := queryInt(c, "page", 1)
		limit := queryInt(c, "limit", 10)
		doctors, total, err := svc.Search(query, page, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"doctors": doctors,
			"total":   total,
			"page":    page,
			"limit":   limit,
		})
	}
}

// ActiveDoctorsHandler handles GET /api/doctors/active.
func ActiveDoctorsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := queryInt(c, "page", 1)
		limit := queryInt(c, "limit", 10)
		doctors, total, err := svc.ListActive(page, limit)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"doctors": doctors,
			"total":   total,
			"page":    page,
			"limit":   limit,
		})
	}
}

// AddReviewHandler handles POST /api/doctors/:id/reviews, patient only.
func AddReviewHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Rating  int    `json:"rating" binding:"required"`
			Comment string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid review payload", err.Error())
			return
		}
		patientID := c.GetString(middleware.CtxSubjectID)
		if err := svc.AddReview(c.Param("id"), patientID, req.Rating, req.Comment); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "review added"})
	}
}

// GetReviewsHandler handles GET /api/doctors/:id/reviews.
func GetReviewsHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.GetReviews(c.Param("id"), queryInt(c, "page", 1), queryInt(c, "limit", 10))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}

// PerformanceHandler handles GET /api/doctors/me/performance with an
// optional from/to date range.
func PerformanceHandler(svc doctor.DoctorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := queryTime(c, "from")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid from date, want YYYY-MM-DD", "")
			return
		}
		to, err := queryTime(c, "to")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid to date, want YYYY-MM-DD", "")
			return
		}
		report, err := svc.Performance(c.GetString(middleware.CtxSubjectID), from, to,
			queryInt(c, "page", 1), queryInt(c, "limit", 10))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func queryFloat(c *gin.Context, key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(c.Query(key), 64); err == nil && v > 0 {
		return v
	}
	return fallback
}

func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
