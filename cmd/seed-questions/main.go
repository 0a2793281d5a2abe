package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/prepmind/neetprep-backend/internal/config"
	"github.com/prepmind/neetprep-backend/internal/database"
	"github.com/prepmind/neetprep-backend/internal/llm"
	"github.com/prepmind/neetprep-backend/internal/logger"
	"github.com/prepmind/neetprep-backend/internal/model"
	"github.com/prepmind/neetprep-backend/internal/repository"
	"github.com/prepmind/neetprep-backend/internal/service"
)

func main() {
	var (
		perBatch   int
		batches    int
		difficulty string
	)
	flag.IntVar(&perBatch, "count", 10, "Questions per subject per batch")
	flag.IntVar(&batches, "batches", 1, "Batches per subject")
	flag.StringVar(&difficulty, "difficulty", "Medium", "Difficulty (Easy, Medium, Hard)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if cfg.GroqAPIKey == "" {
		log.Fatal().Msg("GROQ_API_KEY is required for seeding")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	questionService := service.NewQuestionService(questionRepo, llm.NewGroqClient(cfg), log)

	subjects := []model.Subject{model.SubjectPhysics, model.SubjectChemistry, model.SubjectBiology}

	fmt.Printf("=== Seeding Questions (%d per subject per batch, %d batches) ===\n", perBatch, batches)

	total := 0
	for _, subject := range subjects {
		for b := 0; b < batches; b++ {
			questions, err := questionService.Generate(ctx, subject, perBatch, model.Difficulty(difficulty))
			if err != nil {
				fmt.Printf("Error generating %s batch %d: %v\n", subject, b+1, err)
				continue
			}
			total += len(questions)
			fmt.Printf("Stored %d %s questions (batch %d/%d)\n", len(questions), subject, b+1, batches)
		}
	}

	fmt.Printf("\nSeed completed! Stored %d questions total.\n", total)
}
