// Command seeder loads a batch of sample questions into the store so local
// search, similarity, and suggestion endpoints have a corpus to work with.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/askdesk/askdesk/internal/config"
	dbRedis "github.com/askdesk/askdesk/internal/db/redis"
	"github.com/askdesk/askdesk/internal/domain/question"
	logpkg "github.com/askdesk/askdesk/internal/logger"
	questionrepo "github.com/askdesk/askdesk/internal/repository/question"
)

type sample struct {
	title    string
	content  string
	priority question.Priority
	tags     []string
}

var samples = []sample{
	{
		title:    "How do we rotate the staging database credentials?",
		content:  "The staging PostgreSQL password expires next week. What is the current rotation procedure and who approves it?",
		priority: question.PriorityHigh,
		tags:     []string{"postgresql", "security", "staging"},
	},
	{
		title:    "Next.js 15でのJWT認証実装について",
		content:  "Next.js 15のApp RouterでJWTベースの認証を実装したいのですが、ミドルウェアでのトークン検証のベストプラクティスを教えてください。",
		priority: question.PriorityMedium,
		tags:     []string{"next.js", "authentication", "jwt"},
	},
	{
		title:    "Terraform state locking errors on CI",
		content:  "Our pipeline intermittently fails with a state lock timeout against the S3 backend. Is anyone else seeing this since the runner upgrade?",
		priority: question.PriorityMedium,
		tags:     []string{"terraform", "ci"},
	},
	{
		title:    "Recommended way to profile a Go service in production",
		content:  "We suspect a goroutine leak in the ingestion service. Can we enable pprof endpoints in prod safely, and what is the approval process?",
		priority: question.PriorityLow,
		tags:     []string{"go", "profiling", "observability"},
	},
	{
		title:    "Kubernetes pod stuck in CrashLoopBackOff after config change",
		content:  "After updating the ConfigMap for the billing service the pods keep restarting. kubectl logs shows a nil pointer on startup. How do I roll back just the ConfigMap?",
		priority: question.PriorityHigh,
		tags:     []string{"kubernetes", "billing"},
	},
}

func main() {
	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	repo := questionrepo.New(store)

	for _, s := range samples {
		q, err := question.New(
			uuid.NewString(), s.title, s.content, "grp-platform", "usr-seeder", s.priority, s.tags,
		)
		if err != nil {
			logger.Fatal("Invalid sample question", zap.String("title", s.title), zap.Error(err))
		}
		if err := repo.Save(ctx, &q); err != nil {
			logger.Fatal("Failed to save question", zap.String("id", q.ID()), zap.Error(err))
		}
		logger.Info("Seeded question", zap.String("id", q.ID()), zap.String("title", q.Title()))
	}

	logger.Info("Seeding complete", zap.Int("count", len(samples)))
}
