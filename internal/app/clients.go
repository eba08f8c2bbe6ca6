package app

import (
	"context"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/dailylit-backend/internal/clients/gemini"
	"github.com/yungbote/dailylit-backend/internal/pkg/logger"
)

type Clients struct {
	Gemini gemini.Client
	Redis  *goredis.Client
}

func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	gem, err := gemini.NewClient(log)
	if err != nil {
		// The pipeline degrades to its heuristic fallback without Gemini;
		// booting without a key is a supported (if limited) mode.
		log.Warn("Gemini client unavailable, recommendations fall back to heuristics", "error", err.Error())
		gem = gemini.NewUnavailableClient(err.Error())
	}

	var rdb *goredis.Client
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, pick caching disabled", "error", err.Error())
			_ = rdb.Close()
			rdb = nil
		}
	}

	return Clients{Gemini: gem, Redis: rdb}
}
