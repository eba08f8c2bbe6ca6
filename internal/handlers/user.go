package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/services"
)

type UserHandler struct {
	userRepo          repos.UserRepo
	preferenceService services.PreferenceService
}

func NewUserHandler(userRepo repos.UserRepo, preferenceService services.PreferenceService) *UserHandler {
	return &UserHandler{
		userRepo:          userRepo,
		preferenceService: preferenceService,
	}
}

// POST /users
func (uh *UserHandler) Create(c *gin.Context) {
	var req struct {
		Email                string  `json:"email" binding:"required"`
		Username             string  `json:"username" binding:"required"`
		AdventurousnessLevel float64 `json:"adventurousness_level"`
		DifficultyPreference string  `json:"difficulty_preference"`
		PreferredLength      string  `json:"preferred_length"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	user := &types.User{
		Email:                req.Email,
		Username:             req.Username,
		AdventurousnessLevel: req.AdventurousnessLevel,
		DifficultyPreference: req.DifficultyPreference,
		PreferredLength:      req.PreferredLength,
		Active:               true,
	}
	if user.DifficultyPreference == "" {
		user.DifficultyPreference = types.DifficultyIntermediate
	}
	if user.PreferredLength == "" {
		user.PreferredLength = types.LengthMedium
	}
	if _, err := uh.userRepo.Create(c.Request.Context(), nil, []*types.User{user}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GET /users/:id
func (uh *UserHandler) Get(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}
	user, err := uh.userRepo.GetByID(c.Request.Context(), nil, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch_failed", "detail": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /users/:id/preferences
// body: { "preferences": [{"type": "author", "value": "Borges"}] }
func (uh *UserHandler) ReplacePreferences(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_user_id"})
		return
	}

	var req struct {
		Preferences []services.PreferenceInput `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	user, err := uh.preferenceService.ReplacePreferences(c.Request.Context(), userID, req.Preferences)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "preferences_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
