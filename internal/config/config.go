package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/tagging"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Classifier ClassifierConfig
	Selection  tagging.SelectionConfig
	Events     EventsConfig
	Tracing    TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LogLevel           string
	CorsAllowedOrigins string
	BodyLimitBytes     int
	RequestTimeout     time.Duration
	VocabularyFile     string
}

type ClassifierConfig struct {
	classifier.Config
	Workers       int
	QueueSize     int
	Warmup        bool
	WarmupTimeout time.Duration
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string // host:port of the OTLP/HTTP collector
	Insecure    bool
	ServiceName string
	SampleRatio float64
}

type EventsConfig struct {
	Topic        string
	NatsURL      string // empty disables forwarding to NATS
	AuditLogPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LogLevel:           getEnv("LOG_LEVEL", "debug"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimitBytes:     getEnvAsInt("APP_BODY_LIMIT_BYTES", 1024*1024),
			RequestTimeout:     getEnvAsDuration("APP_REQUEST_TIMEOUT", 90*time.Second),
			VocabularyFile:     getEnv("VOCABULARY_FILE", ""),
		},
		Classifier: ClassifierConfig{
			Config: classifier.Config{
				Provider:           getEnv("CLASSIFIER_PROVIDER", "huggingface"),
				Model:              getEnv("CLASSIFIER_MODEL", classifier.DefaultModel),
				BaseURL:            getEnv("CLASSIFIER_BASE_URL", ""),
				APIKey:             getEnv("HUGGINGFACE_API_KEY", ""),
				HypothesisTemplate: getEnv("CLASSIFIER_HYPOTHESIS_TEMPLATE", classifier.DefaultHypothesisTemplate),
				Timeout:            getEnvAsDuration("CLASSIFIER_TIMEOUT", 60*time.Second),
			},
			Workers:       getEnvAsInt("CLASSIFIER_WORKERS", 4),
			QueueSize:     getEnvAsInt("CLASSIFIER_QUEUE_SIZE", 64),
			Warmup:        getEnvAsBool("CLASSIFIER_WARMUP", false),
			WarmupTimeout: getEnvAsDuration("CLASSIFIER_WARMUP_TIMEOUT", 2*time.Minute),
		},
		Selection: tagging.SelectionConfig{
			MaxTags:       getEnvAsInt("SELECTION_MAX_TAGS", 3),
			MinConfidence: getEnvAsFloat("SELECTION_MIN_CONFIDENCE", 0.15),
		},
		Events: EventsConfig{
			Topic:        getEnv("EVENTS_TOPIC", "tags_suggested"),
			NatsURL:      getEnv("NATS_URL", ""),
			AuditLogPath: getEnv("EVENTS_AUDIT_LOG_PATH", "logs/events.log"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			Insecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "ai-tagging-be"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if err := c.Selection.Validate(); err != nil {
		return err
	}
	if c.Classifier.Workers < 1 {
		return fmt.Errorf("CLASSIFIER_WORKERS must be at least 1, got %d", c.Classifier.Workers)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when OTEL_ENABLED=true")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0,1], got %v", c.Tracing.SampleRatio)
	}
	if c.App.BodyLimitBytes < 1 {
		return fmt.Errorf("APP_BODY_LIMIT_BYTES must be positive, got %d", c.App.BodyLimitBytes)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

type vocabularyFile struct {
	Topics []string `yaml:"topics"`
}

// LoadVocabulary returns the vocabulary from VOCABULARY_FILE, or the built-in
// course topics when no file is configured.
func (c *Config) LoadVocabulary() (*tagging.Vocabulary, error) {
	if c.App.VocabularyFile == "" {
		return tagging.DefaultVocabulary(), nil
	}

	data, err := os.ReadFile(c.App.VocabularyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var vf vocabularyFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}

	return tagging.NewVocabulary(vf.Topics)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
