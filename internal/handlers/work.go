package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/dailylit-backend/internal/data/repos"
	types "github.com/yungbote/dailylit-backend/internal/domain"
	"github.com/yungbote/dailylit-backend/internal/services"
)

type WorkHandler struct {
	workRepo         repos.WorkRepo
	embeddingService services.EmbeddingService
}

func NewWorkHandler(workRepo repos.WorkRepo, embeddingService services.EmbeddingService) *WorkHandler {
	return &WorkHandler{
		workRepo:         workRepo,
		embeddingService: embeddingService,
	}
}

// GET /works?category=poem
func (wh *WorkHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !types.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_category"})
		return
	}

	works, err := wh.workRepo.ListActiveByCategory(c.Request.Context(), nil, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"works": works})
}

// POST /works
func (wh *WorkHandler) Create(c *gin.Context) {
	var req struct {
		Title                string `json:"title" binding:"required"`
		Author               string `json:"author" binding:"required"`
		Category             string `json:"category" binding:"required"`
		ContentURL           string `json:"content_url"`
		Summary              string `json:"summary"`
		Themes               string `json:"themes"`
		Genres               string `json:"genres"`
		EstimatedReadingTime int    `json:"estimated_reading_time"`
		DifficultyLevel      string `json:"difficulty_level"`
		PublicationYear      int    `json:"publication_year"`
		WordCount            int    `json:"word_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	if !types.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_category"})
		return
	}

	work := &types.Work{
		Title:                req.Title,
		Author:               req.Author,
		Category:             req.Category,
		ContentURL:           req.ContentURL,
		Summary:              req.Summary,
		Themes:               req.Themes,
		Genres:               req.Genres,
		EstimatedReadingTime: req.EstimatedReadingTime,
		DifficultyLevel:      req.DifficultyLevel,
		PublicationYear:      req.PublicationYear,
		WordCount:            req.WordCount,
		PublicDomain:         true,
		Active:               true,
	}
	if _, err := wh.workRepo.Create(c.Request.Context(), nil, []*types.Work{work}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"work": work})
}

// POST /works/embeddings/backfill?regenerate=true
func (wh *WorkHandler) BackfillEmbeddings(c *gin.Context) {
	regenerate := c.Query("regenerate") == "true"
	generated, err := wh.embeddingService.GenerateWorkEmbeddings(c.Request.Context(), regenerate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backfill_failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"generated": generated})
}
