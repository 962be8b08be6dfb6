package ml

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/port"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/service"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
	"github.com/yadav-krish/ticket-booking-prediction/internal/infrastructure/artifact"
)

// Encoding modes accepted by LoaderConfig.EncodingMode.
const (
	EncodingModeTable       = "table"
	EncodingModeLegacyHash  = "legacy-hash"
	EncodingModePassthrough = "passthrough"
)

// ArtifactFetcher makes an artifact available on local disk.
type ArtifactFetcher interface {
	Ensure(ctx context.Context, src artifact.Source) (string, error)
}

// LoaderConfig selects the artifacts that make up a Predictor.
type LoaderConfig struct {
	// StubProbability replaces the model artifact when set.
	StubProbability   *valueobject.Probability
	Profile           valueobject.Profile
	Model             artifact.Source
	Scaler            artifact.Source
	EncodingTablePath string
	// EncodingMode applies to the scaled profile only; the pipeline
	// profile always passes categorical text through.
	EncodingMode string
}

// LoadPredictor fetches missing artifacts, deserializes them and validates
// them against each other. It runs once at process start; any error should
// abort startup.
func LoadPredictor(ctx context.Context, cfg LoaderConfig, fetcher ArtifactFetcher, logger *slog.Logger) (*Predictor, error) {
	m, err := loadModel(ctx, cfg, fetcher, logger)
	if err != nil {
		return nil, err
	}

	encoder, err := newEncoder(cfg, m, logger)
	if err != nil {
		return nil, err
	}

	var scaler port.Scaler
	if cfg.Profile.UsesScaler() {
		path, err := fetcher.Ensure(ctx, cfg.Scaler)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch scaler: %w", err)
		}
		s, err := LoadScaler(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load scaler: %w", err)
		}
		scaler = s
	}

	p, err := NewPredictor(m, encoder, scaler, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("predictor loaded",
		"profile", cfg.Profile.String(),
		"model_version", p.ModelVersion(),
		"encoding_version", p.EncodingVersion(),
		"scaler", p.UsesScaler(),
	)
	return p, nil
}

func loadModel(ctx context.Context, cfg LoaderConfig, fetcher ArtifactFetcher, logger *slog.Logger) (port.ProbabilityModel, error) {
	if cfg.StubProbability != nil {
		logger.Warn("using stub model; predictions are constant",
			"probability", cfg.StubProbability.Value())
		return NewStubModel(cfg.StubProbability.Value(), logger), nil
	}

	path, err := fetcher.Ensure(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model: %w", err)
	}
	m, err := LoadModel(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return m, nil
}

func newEncoder(cfg LoaderConfig, m port.ProbabilityModel, logger *slog.Logger) (port.Encoder, error) {
	if !cfg.Profile.Equal(valueobject.ProfileScaled) {
		return service.PassthroughEncoder{}, nil
	}

	switch cfg.EncodingMode {
	case EncodingModeTable, "":
		table, err := LoadEncodingTable(cfg.EncodingTablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load encoding table: %w", err)
		}
		enc, err := service.NewTableEncoder(table, m.Columns())
		if err != nil {
			return nil, fmt.Errorf("encoding table %s does not fit model %s: %w",
				cfg.EncodingTablePath, m.Version(), err)
		}
		return enc, nil
	case EncodingModeLegacyHash:
		logger.Warn("legacy-hash encoding is deprecated: route and booking_origin codes differ between processes; use an encoding table")
		return service.NewLegacyHashEncoder(), nil
	case EncodingModePassthrough:
		return service.PassthroughEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported encoding mode %q", cfg.EncodingMode)
	}
}
