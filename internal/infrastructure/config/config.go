package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/ml"
	"github.com/yadav-krish/ticket-booking-prediction/pkg/kafka"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Telemetry   TelemetryConfig
	Artifacts   ArtifactConfig
	Environment string
	LogLevel    string
	LogFormat   string
	Profile     string
	HTTPPort    int
	GRPCPort    int
	RateLimit   float64
	Kafka       KafkaConfig
	DB          DBConfig
	Threshold   ThresholdConfig
	GRPC        GRPCConfig
}

// ArtifactConfig locates the model, scaler and encoding table.
type ArtifactConfig struct {
	ModelPath         string
	ModelURL          string
	ModelSHA256       string
	ScalerPath        string
	ScalerURL         string
	ScalerSHA256      string
	EncodingTablePath string
	EncodingMode      string
	// StubProbability, when set, replaces the model artifact with a fixed
	// probability. Development only.
	StubProbability string
	FetchTimeout    time.Duration
	FetchRetries    int
}

type ThresholdConfig struct {
	Path    string
	Default float64
}

type DBConfig struct {
	URL           string
	MigrationsDir string
	MaxConns      int32
	MinConns      int32
}

type KafkaConfig struct {
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	TLS           bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
	SampleRatio  float64
}

type GRPCConfig struct {
	TLSCertFile     string
	TLSKeyFile      string
	TLSClientCAFile string
	Reflection      bool

	// TLSCAFile is the CA the -healthcheck client trusts. Empty means the
	// system roots.
	TLSCAFile string

	// DevCertsDir, when set, mints a throwaway CA and server certificate
	// there at startup. Not allowed in production.
	DevCertsDir string
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Profile:     getEnv("PROFILE", "pipeline"),
		RateLimit:   getEnvFloat("RATE_LIMIT", 20),
		Artifacts: ArtifactConfig{
			ModelPath:         getEnv("MODEL_PATH", "random_forest_booking_pipeline.json"),
			ModelURL:          getEnv("MODEL_URL", ""),
			ModelSHA256:       getEnv("MODEL_SHA256", ""),
			ScalerPath:        getEnv("SCALER_PATH", "scaler.json"),
			ScalerURL:         getEnv("SCALER_URL", ""),
			ScalerSHA256:      getEnv("SCALER_SHA256", ""),
			EncodingTablePath: getEnv("ENCODING_TABLE_PATH", "encoding_table.yaml"),
			EncodingMode:      getEnv("ENCODING_MODE", ml.EncodingModeTable),
			StubProbability:   getEnv("MODEL_STUB_PROBABILITY", ""),
			FetchTimeout:      getEnvDuration("ARTIFACT_FETCH_TIMEOUT", 2*time.Minute),
			FetchRetries:      getEnvInt("ARTIFACT_FETCH_RETRIES", 3),
		},
		Threshold: ThresholdConfig{
			Path:    getEnv("THRESHOLD_PATH", "best_threshold.json"),
			Default: getEnvFloat("THRESHOLD_DEFAULT", valueobject.DefaultThreshold.Value()),
		},
		DB: DBConfig{
			URL:           getEnv("DATABASE_URL", ""),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/infrastructure/postgres/migrations"),
			MaxConns:      int32(getEnvInt("DB_MAX_CONNS", 10)),
			MinConns:      int32(getEnvInt("DB_MIN_CONNS", 1)),
		},
		Kafka: KafkaConfig{
			Brokers:       kafka.ParseBrokers(getEnv("KAFKA_BROKERS", "")),
			Topic:         getEnv("KAFKA_TOPIC", "booking.predictions"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  "booking-predictor",
			SampleRatio:  getEnvFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
		GRPC: GRPCConfig{
			Reflection:      getEnvBool("GRPC_REFLECTION", false),
			TLSCertFile:     getEnv("GRPC_TLS_CERT_FILE", ""),
			TLSKeyFile:      getEnv("GRPC_TLS_KEY_FILE", ""),
			TLSClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
			TLSCAFile:       getEnv("GRPC_TLS_CA_FILE", ""),
			DevCertsDir:     getEnv("GRPC_TLS_DEV_CERTS_DIR", ""),
		},
	}
}

// Validate checks the configuration for values the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	profile, err := valueobject.ProfileFromString(c.Profile)
	if err != nil {
		errs = append(errs, err)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT out of range: %d", c.GRPCPort))
	}
	if c.Artifacts.ModelPath == "" && c.Artifacts.StubProbability == "" {
		errs = append(errs, errors.New("MODEL_PATH is required"))
	}
	if c.Artifacts.StubProbability != "" {
		if _, err := c.StubProbability(); err != nil {
			errs = append(errs, err)
		}
	}
	if profile.UsesScaler() && c.Artifacts.ScalerPath == "" {
		errs = append(errs, errors.New("SCALER_PATH is required for the scaled profile"))
	}
	switch c.Artifacts.EncodingMode {
	case ml.EncodingModeTable, ml.EncodingModeLegacyHash, ml.EncodingModePassthrough:
	default:
		errs = append(errs, fmt.Errorf("unsupported ENCODING_MODE %q", c.Artifacts.EncodingMode))
	}
	if c.Artifacts.FetchTimeout <= 0 {
		errs = append(errs, errors.New("ARTIFACT_FETCH_TIMEOUT must be positive"))
	}
	if c.Artifacts.FetchRetries < 0 {
		errs = append(errs, errors.New("ARTIFACT_FETCH_RETRIES must not be negative"))
	}
	if _, err := valueobject.NewThreshold(c.Threshold.Default); err != nil {
		errs = append(errs, fmt.Errorf("THRESHOLD_DEFAULT: %w", err))
	}
	if (c.GRPC.TLSCertFile == "") != (c.GRPC.TLSKeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.GRPC.DevCertsDir != "" {
		if c.Environment == "production" {
			errs = append(errs, errors.New("GRPC_TLS_DEV_CERTS_DIR is not allowed in production"))
		}
		if c.GRPC.TLSCertFile != "" {
			errs = append(errs, errors.New("GRPC_TLS_DEV_CERTS_DIR and GRPC_TLS_CERT_FILE are mutually exclusive"))
		}
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}

	return errors.Join(errs...)
}

// ProfileValue returns the parsed profile. Call Validate first.
func (c Config) ProfileValue() valueobject.Profile {
	p, err := valueobject.ProfileFromString(c.Profile)
	if err != nil {
		return valueobject.ProfilePipeline
	}
	return p
}

// StubProbability parses MODEL_STUB_PROBABILITY.
func (c Config) StubProbability() (valueobject.Probability, error) {
	f, err := strconv.ParseFloat(c.Artifacts.StubProbability, 64)
	if err != nil {
		return valueobject.Probability{}, fmt.Errorf("MODEL_STUB_PROBABILITY: %w", err)
	}
	p, err := valueobject.NewProbability(f)
	if err != nil {
		return valueobject.Probability{}, fmt.Errorf("MODEL_STUB_PROBABILITY: %w", err)
	}
	return p, nil
}

// KafkaEnabled reports whether predictions are published to Kafka.
func (c Config) KafkaEnabled() bool { return len(c.Kafka.Brokers) > 0 }

// DatabaseEnabled reports whether predictions are persisted to PostgreSQL.
func (c Config) DatabaseEnabled() bool { return c.DB.URL != "" }

// KafkaClientConfig maps the service settings onto the shared producer config.
func (c Config) KafkaClientConfig() kafka.Config {
	return kafka.Config{
		Brokers:       c.Kafka.Brokers,
		TLS:           c.Kafka.TLS,
		SASLEnabled:   c.Kafka.SASLMechanism != "",
		SASLMechanism: c.Kafka.SASLMechanism,
		SASLUsername:  c.Kafka.SASLUsername,
		SASLPassword:  c.Kafka.SASLPassword,
	}
}

// GRPCTLSEnabled reports whether the gRPC listener serves TLS.
func (c Config) GRPCTLSEnabled() bool {
	return c.GRPC.TLSCertFile != "" || c.GRPC.DevCertsDir != ""
}

// GRPCAddress returns the full gRPC listen address.
func (c Config) GRPCAddress() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
