package main

import (
	"context"
	"log"

	"github.com/justsurfingit/job-tracker/internal/config"
	"github.com/justsurfingit/job-tracker/internal/database"
	"github.com/justsurfingit/job-tracker/internal/handlers"
	"github.com/justsurfingit/job-tracker/internal/metrics"
	"github.com/justsurfingit/job-tracker/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// 1. Configuration (.env, environment, interview YAML)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Database Connection
	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	// 4. Core Services
	llmService, err := services.NewLLMService(context.Background(), cfg)
	if err != nil {
		log.Fatalf("LLM setup failed: %v", err)
	}
	jobService := services.NewJobService(db)
	jobService.Metrics = m
	interviewService := services.NewInterviewService(llmService, jobService, cfg.Interview, m)
	resumeService := services.NewResumeService(llmService, jobService, cfg.ResumeDir, m)

	// 5. Router
	r := handlers.NewRouter(handlers.RouterDeps{
		DB:           db,
		Jobs:         handlers.NewJobHandler(llmService, jobService),
		Interviews:   handlers.NewInterviewHandler(interviewService),
		Resumes:      handlers.NewResumeHandler(resumeService),
		Gatherer:     registry,
		AllowOrigins: cfg.AllowOrigins,
	})

	log.Printf("🚀 Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
