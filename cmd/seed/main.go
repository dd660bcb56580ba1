package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	listingapp "github.com/jobseeker/backend/internal/application/listing"
	"github.com/jobseeker/backend/internal/domain/shared"
	"github.com/jobseeker/backend/internal/infrastructure/cache"
	"github.com/jobseeker/backend/internal/infrastructure/config"
	"github.com/jobseeker/backend/internal/infrastructure/logger"
	"github.com/jobseeker/backend/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	jobRepo := persistence.NewGormJobRepository(db.DB)
	listingService := listingapp.NewListingService(jobRepo, cache.NewInMemoryListingCache(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	created, skipped := 0, 0
	for _, input := range sampleListings() {
		_, err := listingService.Create(ctx, input)
		if err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == "JOB_ALREADY_POSTED" {
				skipped++
				log.Debug("Listing already present, skipping",
					zap.String("title", input.Title),
					zap.String("company", input.Company),
				)
				continue
			}
			log.Fatal("Failed to seed listing",
				zap.String("title", input.Title),
				zap.String("company", input.Company),
				zap.Error(err),
			)
		}
		created++
	}

	log.Info("Seeding complete",
		zap.Int("created", created),
		zap.Int("skipped", skipped),
	)
}

// sampleListings returns a fixed set of listings spread across categories
// so the feed, filters, and salary insights have data to work with.
// Seeding is idempotent: a listing that already exists is skipped.
func sampleListings() []listingapp.CreateJobInput {
	return []listingapp.CreateJobInput{
		{
			Title:       "Senior Backend Engineer",
			Company:     "Acme Corp",
			Location:    "Berlin, Germany",
			Salary:      "$130,000 - $160,000",
			Description: "Design and operate the services behind our marketplace. You will own features end to end, from API design to production monitoring.",
			Category:    "Engineering",
			Type:        "Full-time",
			Level:       "Senior",
			Requirements: []string{
				"5+ years building backend services",
				"Production experience with PostgreSQL",
				"Fluency in Go or a similar systems language",
			},
			Responsibilities: []string{
				"Own services from design to operation",
				"Review code and mentor mid-level engineers",
			},
			Benefits: []string{"Remote-friendly", "Learning budget", "30 days vacation"},
		},
		{
			Title:       "Frontend Engineer",
			Company:     "Acme Corp",
			Location:    "Remote",
			Salary:      "$100,000 - $125,000",
			Description: "Build the mobile web experience our job seekers use every day.",
			Category:    "Engineering",
			Type:        "Full-time",
			Level:       "Mid",
			Requirements: []string{
				"3+ years of modern frontend development",
				"Experience shipping mobile-first interfaces",
			},
			Benefits: []string{"Remote-first", "Home office budget"},
		},
		{
			Title:       "Platform Engineer",
			Company:     "Cloudline",
			Location:    "Amsterdam, Netherlands",
			Salary:      "$120,000 - $145,000",
			Description: "Run the Kubernetes platform that hosts hundreds of internal services.",
			Category:    "Engineering",
			Type:        "Full-time",
			Level:       "Senior",
			Requirements: []string{
				"Deep Kubernetes operational experience",
				"Comfort with infrastructure as code",
			},
		},
		{
			Title:       "Product Designer",
			Company:     "Pixel Studio",
			Location:    "Lisbon, Portugal",
			Salary:      "$75,000 - $95,000",
			Description: "Shape the end-to-end experience of our hiring products, from discovery to polished UI.",
			Category:    "Design",
			Type:        "Full-time",
			Level:       "Mid",
			Requirements: []string{
				"A portfolio of shipped product work",
				"Experience running usability tests",
			},
			Benefits: []string{"Relocation support"},
		},
		{
			Title:       "UX Researcher",
			Company:     "Pixel Studio",
			Location:    "Remote",
			Salary:      "$70,000 - $85,000",
			Description: "Talk to job seekers and hiring managers, then turn what you learn into product direction.",
			Category:    "Design",
			Type:        "Part-time",
			Level:       "Senior",
		},
		{
			Title:       "Data Analyst",
			Company:     "Insight Labs",
			Location:    "London, UK",
			Salary:      "$80,000 - $100,000",
			Description: "Own the reporting stack and help product teams make evidence-based decisions.",
			Category:    "Development",
			Type:        "Full-time",
			Level:       "Mid",
			Requirements: []string{
				"Strong SQL",
				"Experience with dashboarding tools",
			},
		},
		{
			Title:       "Machine Learning Engineer",
			Company:     "Insight Labs",
			Location:    "Remote",
			Salary:      "$140,000 - $170,000",
			Description: "Build the ranking models behind our job recommendations.",
			Category:    "Development",
			Type:        "Full-time",
			Level:       "Senior",
		},
		{
			Title:       "Engineering Manager",
			Company:     "Cloudline",
			Location:    "Amsterdam, Netherlands",
			Salary:      "$150,000 - $180,000",
			Description: "Lead a team of six platform engineers. Hands-on technical background expected.",
			Category:    "Engineering",
			Type:        "Full-time",
			Level:       "Lead",
		},
		{
			Title:       "Technical Writer",
			Company:     "Docsmith",
			Location:    "Remote",
			Salary:      "$60,000 - $75,000",
			Description: "Write and maintain developer documentation for our public APIs.",
			Category:    "Marketing",
			Type:        "Contract",
			Level:       "Mid",
		},
		{
			Title:       "Customer Support Specialist",
			Company:     "Acme Corp",
			Location:    "Berlin, Germany",
			Salary:      "$45,000 - $55,000",
			Description: "Be the first point of contact for our job seekers and employers.",
			Category:    "Sales",
			Type:        "Full-time",
			Level:       "Junior",
		},
	}
}
