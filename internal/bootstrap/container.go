package bootstrap

import (
	"context"
	"fmt"
	"log"

	"ai-tagging-be/internal/config"
	"ai-tagging-be/internal/controller"
	"ai-tagging-be/internal/pkg/logger"
	"ai-tagging-be/internal/service"
	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/classifier/factory"
	"ai-tagging-be/pkg/tagging"

	pktNats "ai-tagging-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	TagController    controller.ITagController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	TagService service.ITagService

	closers []func() error
}

// Dependencies are the pieces NewContainer resolves from configuration.
// Classifier nil means the model failed to initialise; Forwarder nil keeps
// events in-process.
type Dependencies struct {
	Logger      logger.ILogger
	AuditLogger logger.ILogger
	Vocabulary  *tagging.Vocabulary
	Classifier  classifier.ZeroShotClassifier
	Forwarder   service.EventForwarder
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction(), cfg.App.LogLevel)
	auditLogger := logger.NewIsolatedLogger(cfg.Events.AuditLogPath)

	vocabulary, err := cfg.LoadVocabulary()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	sysLogger.Info("BOOT", "Vocabulary loaded", map[string]interface{}{
		"topics": vocabulary.Len(),
		"source": vocabularySource(cfg),
	})

	// 2. Classifier
	zeroShot := initClassifier(cfg, vocabulary, sysLogger)

	// 3. Infrastructure
	var forwarder service.EventForwarder
	var closers []func() error
	if cfg.Events.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOT", "Failed to connect to NATS, events stay in-process", map[string]interface{}{
				"url":   cfg.Events.NatsURL,
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			closers = append(closers, func() error { natsPub.Close(); return nil })
		}
	}

	var pool *classifier.Pool
	var pooled classifier.ZeroShotClassifier
	if zeroShot != nil {
		pool = classifier.NewPool(zeroShot, cfg.Classifier.Workers, cfg.Classifier.QueueSize)
		pooled = pool
	}

	c := NewContainerFromDependencies(cfg, Dependencies{
		Logger:      sysLogger,
		AuditLogger: auditLogger,
		Vocabulary:  vocabulary,
		Classifier:  pooled,
		Forwarder:   forwarder,
	})
	// Close runs these backwards: drain the pool, stop the bus, then NATS and logs.
	syncLogs := func() error {
		_ = auditLogger.Sync()
		_ = sysLogger.Sync()
		return nil
	}
	c.closers = append(append([]func() error{syncLogs}, closers...), c.closers...)
	if pool != nil {
		c.closers = append(c.closers, pool.Close)
	}

	return c, nil
}

// NewContainerFromDependencies wires services and controllers around already
// constructed infrastructure.
func NewContainerFromDependencies(cfg *config.Config, deps Dependencies) *Container {
	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Events.Topic,
		deps.Forwarder,
		deps.AuditLogger,
		deps.Logger,
	)

	tagService := service.NewTagService(
		deps.Classifier,
		deps.Vocabulary,
		service.TagServiceConfig{
			Selection: cfg.Selection,
			Timeout:   cfg.App.RequestTimeout,
		},
		publisherService,
		deps.Logger,
	)

	return &Container{
		Logger:           deps.Logger,
		TagController:    controller.NewTagController(tagService),
		HealthController: controller.NewHealthController(tagService),
		ConsumerService:  consumerService,
		TagService:       tagService,
		closers:          []func() error{pubSub.Close},
	}
}

// Close releases background resources in reverse order of creation.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// initClassifier returns nil when the model cannot be used; the service then
// answers 503 instead of the process exiting.
func initClassifier(cfg *config.Config, vocabulary *tagging.Vocabulary, sysLogger logger.ILogger) classifier.ZeroShotClassifier {
	zeroShot, err := factory.NewClassifier(cfg.Classifier.Config)
	if err != nil {
		sysLogger.Error("BOOT", "CRITICAL: Failed to initialize classifier", map[string]interface{}{
			"provider": cfg.Classifier.Provider,
			"error":    err.Error(),
		})
		return nil
	}

	if cfg.Classifier.Warmup {
		if err := factory.Warmup(context.Background(), zeroShot, vocabulary.Labels(), cfg.Classifier.WarmupTimeout); err != nil {
			sysLogger.Error("BOOT", "CRITICAL: Classifier warmup failed", map[string]interface{}{
				"model": cfg.Classifier.Model,
				"error": err.Error(),
			})
			return nil
		}
	}

	log.Printf("[INFO] Using Classifier: %s (%s)", cfg.Classifier.Provider, cfg.Classifier.Model)
	return zeroShot
}

func vocabularySource(cfg *config.Config) string {
	if cfg.App.VocabularyFile == "" {
		return "builtin"
	}
	return cfg.App.VocabularyFile
}
