package app

import (
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
	"github.com/yungbote/dailylit-backend/internal/services"
	"github.com/yungbote/dailylit-backend/internal/utils"
)

type Config struct {
	EmbeddingDim        int
	CandidateLimit      int
	PoolSizePerCategory int
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		EmbeddingDim:        utils.GetEnvAsInt("EMBEDDING_DIM", services.DefaultEmbeddingDim, log),
		CandidateLimit:      utils.GetEnvAsInt("POOL_CANDIDATE_LIMIT", services.DefaultCandidateLimit, log),
		PoolSizePerCategory: utils.GetEnvAsInt("POOL_SIZE_PER_CATEGORY", services.DefaultPoolSizePerCategory, log),
	}
}
