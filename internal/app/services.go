package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
	"github.com/yungbote/dailylit-backend/internal/services"
)

type Services struct {
	Embedding  services.EmbeddingService
	Retrieval  services.RetrievalService
	Rerank     services.RerankService
	Pool       services.PoolService
	Daily      services.DailyService
	Preference services.PreferenceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	embedding := services.NewEmbeddingService(db, log, clients.Gemini, reposet.Work, reposet.User, cfg.EmbeddingDim)
	retrieval := services.NewRetrievalService(log, reposet.Work)
	rerank := services.NewRerankService(log, clients.Gemini)
	pool := services.NewPoolService(db, log, reposet.User, reposet.Work, reposet.Pool, retrieval, rerank, cfg.CandidateLimit, cfg.PoolSizePerCategory)
	daily := services.NewDailyService(db, log, reposet.Pool, reposet.DailyPick, clients.Redis)
	preference := services.NewPreferenceService(db, log, reposet.User, reposet.UserPreference, embedding)

	return Services{
		Embedding:  embedding,
		Retrieval:  retrieval,
		Rerank:     rerank,
		Pool:       pool,
		Daily:      daily,
		Preference: preference,
	}
}
