package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/dailylit-backend/internal/services"
)

type RecommendationHandler struct {
	dailyService services.DailyService
	poolService  services.PoolService
}

func NewRecommendationHandler(dailyService services.DailyService, poolService services.PoolService) *RecommendationHandler {
	return &RecommendationHandler{
		dailyService: dailyService,
		poolService:  poolService,
	}
}

// GET /users/:id/recommendations/today?date=2025-06-01
func (rh *RecommendationHandler) GetToday(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date", "detail": "expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	picks, err := rh.dailyService.PicksFor(c.Request.Context(), userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendations_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"picks": picks})
}

// POST /users/:id/pool/populate
func (rh *RecommendationHandler) PopulatePool(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	if err := rh.poolService.Populate(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "populate_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PATCH /recommendations/:id
// body: { "status": "completed", "rating": 4, "feedback": "..." }
func (rh *RecommendationHandler) UpdateFeedback(c *gin.Context) {
	pickID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_recommendation_id"})
		return
	}

	var req struct {
		Status   string `json:"status"`
		Rating   *int   `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	pick, err := rh.dailyService.UpdateFeedback(c.Request.Context(), pickID, req.Status, req.Rating, req.Feedback)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedback_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": pick})
}
