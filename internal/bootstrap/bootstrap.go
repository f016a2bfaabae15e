package bootstrap

import (
	"context"
	"fmt"

	"github.com/dreschagin/macro-watch/internal/application/port"
	"github.com/dreschagin/macro-watch/internal/application/usecase"
	"github.com/dreschagin/macro-watch/internal/domain/catalogue"
	"github.com/dreschagin/macro-watch/internal/domain/repository"
	redisCache "github.com/dreschagin/macro-watch/internal/infrastructure/cache/redis"
	"github.com/dreschagin/macro-watch/internal/infrastructure/delivery/mail"
	"github.com/dreschagin/macro-watch/internal/infrastructure/diagnostics"
	natsInfra "github.com/dreschagin/macro-watch/internal/infrastructure/messaging/nats"
	"github.com/dreschagin/macro-watch/internal/infrastructure/observability/cloudwatch"
	dynamodbRepo "github.com/dreschagin/macro-watch/internal/infrastructure/persistence/dynamodb"
	"github.com/dreschagin/macro-watch/internal/infrastructure/persistence/postgres"
	"github.com/dreschagin/macro-watch/internal/infrastructure/render"
	localStorage "github.com/dreschagin/macro-watch/internal/infrastructure/storage/local"
	s3storage "github.com/dreschagin/macro-watch/internal/infrastructure/storage/s3"
	"github.com/dreschagin/macro-watch/internal/infrastructure/source"
	"github.com/dreschagin/macro-watch/pkg/config"
	"github.com/dreschagin/macro-watch/pkg/logger"
)

// Closer releases every connection the bootstrap opened
type Closer func()

// BuildUseCase wires the full run pipeline from configuration. Optional
// integrations that are disabled stay nil and the use case skips them.
func BuildUseCase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*usecase.RunReportUseCase, Closer, error) {
	if err := catalogue.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid indicator catalogue: %w", err)
	}

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Source payload cache
	var cache port.Cache
	if cfg.Redis.Enabled {
		redis, err := redisCache.NewRedisCache(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Fetch.CacheTTL,
		)
		if err != nil {
			log.Warn("Redis unavailable, sources will not be cached", "error", err.Error())
		} else {
			cache = redis
			closers = append(closers, func() { _ = redis.Close() })
			log.Info("Source cache enabled", "ttl", cfg.Fetch.CacheTTL.String())
		}
	}

	// Source adapters, bound in catalogue order
	client := source.NewClient(source.ClientConfig{
		UserAgent:     cfg.Fetch.UserAgent,
		Timeout:       cfg.Fetch.Timeout,
		RatePerSecond: cfg.Fetch.RatePerSecond,
		RateBurst:     cfg.Fetch.RateBurst,
	})
	adapters := source.BuildAdapters(client, source.Endpoints{}, cache, log)

	specs := catalogue.Indicators()
	bindings := make([]usecase.SourceBinding, 0, len(specs))
	for _, spec := range specs {
		adapter, ok := adapters[spec.ID]
		if !ok {
			closeAll()
			return nil, nil, fmt.Errorf("no source adapter for indicator %s", spec.ID)
		}
		bindings = append(bindings, usecase.SourceBinding{Spec: spec, Adapter: adapter})
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	// Artifact storages: local directory always, bucket when configured
	var storages []port.ArtifactStorage
	local, err := localStorage.NewReportStorage(cfg.Report.OutputDir)
	if err != nil {
		closeAll()
		return nil, nil, fmt.Errorf("failed to create local storage: %w", err)
	}
	storages = append(storages, local)

	if cfg.S3.Enabled {
		s3, err := s3storage.NewReportStorage(ctx, s3storage.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			UsePathStyle:    cfg.S3.UsePathStyle,
			KeyPrefix:       cfg.S3.KeyPrefix,
			URLMode:         s3storage.URLMode(cfg.S3.URLMode),
			PresignedTTL:    cfg.S3.PresignedTTL,
		})
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create S3 storage: %w", err)
		}
		storages = append(storages, s3)
		log.Info("S3 artifact storage enabled", "bucket", cfg.S3.Bucket)
	}

	var delivery port.ReportDelivery
	if cfg.SMTP.Enabled {
		delivery = mail.NewMailer(cfg.SMTP, log)
	}

	var events port.EventPublisher
	if cfg.NATS.Enabled {
		publisher, err := natsInfra.NewRunEventPublisher(cfg.NATS.URL, log)
		if err != nil {
			log.Warn("NATS unavailable, run events disabled", "error", err.Error())
		} else {
			events = publisher
			closers = append(closers, func() { _ = publisher.Close() })
		}
	}

	var metrics port.MetricsPublisher
	if cfg.CloudWatch.Enabled {
		publisher, err := cloudwatch.NewMetricsPublisher(ctx, cloudwatch.MetricsPublisherConfig{
			Namespace:       cfg.CloudWatch.Namespace,
			Region:          cfg.CloudWatch.Region,
			Endpoint:        cfg.CloudWatch.Endpoint,
			AccessKeyID:     cfg.CloudWatch.AccessKeyID,
			SecretAccessKey: cfg.CloudWatch.SecretAccessKey,
		})
		if err != nil {
			log.Warn("CloudWatch unavailable, run metrics disabled", "error", err.Error())
		} else {
			metrics = publisher
		}
	}

	var history repository.RunRepository
	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database)
		if err != nil {
			log.Warn("Database unavailable, run history disabled", "error", err.Error())
		} else {
			repo := postgres.NewPostgresRunRepository(db)
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Warn("Failed to ensure run history schema", "error", err.Error())
				db.Close()
			} else {
				history = repo
				closers = append(closers, func() { _ = db.Close() })
				log.Info("Run history enabled", "database", cfg.Database.Database)
			}
		}
	}

	var index port.ReportMetadataRepository
	if cfg.DynamoDB.Enabled {
		repo, err := dynamodbRepo.NewReportMetadataRepository(ctx, dynamodbRepo.Config{
			TableName:       cfg.DynamoDB.TableName,
			Region:          cfg.DynamoDB.Region,
			Endpoint:        cfg.DynamoDB.Endpoint,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
		})
		if err != nil {
			log.Warn("DynamoDB unavailable, run index disabled", "error", err.Error())
		} else {
			index = repo
		}
	}

	uc := usecase.NewRunReportUseCase(
		bindings,
		renderer,
		storages,
		delivery,
		events,
		metrics,
		history,
		index,
		diagnostics.NewGopsutilHostInspector(),
		usecase.RunReportConfig{
			Concurrency:  cfg.Fetch.Concurrency,
			EventSubject: cfg.NATS.Subject,
		},
		log,
	)

	return uc, closeAll, nil
}
