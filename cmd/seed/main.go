package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/dailylit-backend/internal/app"
	types "github.com/yungbote/dailylit-backend/internal/domain"
)

type seedWork struct {
	Title                string `yaml:"title"`
	Author               string `yaml:"author"`
	Category             string `yaml:"category"`
	ContentURL           string `yaml:"content_url"`
	Summary              string `yaml:"summary"`
	Themes               string `yaml:"themes"`
	Genres               string `yaml:"genres"`
	EstimatedReadingTime int    `yaml:"estimated_reading_time"`
	DifficultyLevel      string `yaml:"difficulty_level"`
	PublicationYear      int    `yaml:"publication_year"`
	WordCount            int    `yaml:"word_count"`
}

type seedFile struct {
	Works []seedWork `yaml:"works"`
}

func main() {
	var path string
	var embed bool
	flag.StringVar(&path, "file", "works.yaml", "path to the works catalog file")
	flag.BoolVar(&embed, "embed", false, "generate embeddings for newly seeded works")
	flag.Parse()

	_ = godotenv.Load()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		application.Log.Fatal("Read catalog file failed", "path", path, "error", err)
	}
	var catalog seedFile
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		application.Log.Fatal("Parse catalog file failed", "path", path, "error", err)
	}

	ctx := context.Background()
	created := 0
	for _, sw := range catalog.Works {
		if !types.ValidCategory(sw.Category) {
			application.Log.Warn("Skipping work with unknown category", "title", sw.Title, "category", sw.Category)
			continue
		}
		existing, err := application.Repos.Work.GetByTitleAndAuthor(ctx, nil, sw.Title, sw.Author)
		if err != nil {
			application.Log.Fatal("Catalog lookup failed", "title", sw.Title, "error", err)
		}
		if existing != nil {
			continue
		}
		work := &types.Work{
			Title:                sw.Title,
			Author:               sw.Author,
			Category:             sw.Category,
			ContentURL:           sw.ContentURL,
			Summary:              sw.Summary,
			Themes:               sw.Themes,
			Genres:               sw.Genres,
			EstimatedReadingTime: sw.EstimatedReadingTime,
			DifficultyLevel:      sw.DifficultyLevel,
			PublicationYear:      sw.PublicationYear,
			WordCount:            sw.WordCount,
			PublicDomain:         true,
			Active:               true,
		}
		if _, err := application.Repos.Work.Create(ctx, nil, []*types.Work{work}); err != nil {
			application.Log.Fatal("Seed insert failed", "title", sw.Title, "error", err)
		}
		created++
	}
	application.Log.Info("Catalog seed complete", "created", created, "total", len(catalog.Works))

	if embed {
		generated, err := application.Services.Embedding.GenerateWorkEmbeddings(ctx, false)
		if err != nil {
			application.Log.Fatal("Embedding generation failed", "error", err)
		}
		application.Log.Info("Embeddings generated", "generated", generated)
	}
}
