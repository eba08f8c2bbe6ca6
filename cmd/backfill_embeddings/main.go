package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/dailylit-backend/internal/app"
)

func main() {
	var regenerate bool
	flag.BoolVar(&regenerate, "regenerate", false, "recompute vectors for every work, not just missing ones")
	flag.Parse()

	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	generated, err := application.Services.Embedding.GenerateWorkEmbeddings(context.Background(), regenerate)
	if err != nil {
		application.Log.Fatal("Embedding backfill failed", "error", err)
	}
	application.Log.Info("Embedding backfill complete", "generated", generated)
}
