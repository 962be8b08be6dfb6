// Package threshold loads the decision threshold from its JSON file.
package threshold

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

// Status is the outcome of reading the threshold file.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusParseError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Result is the typed outcome of Load. Value is set only for StatusFound,
// Err only for StatusParseError.
type Result struct {
	Err    error
	Value  valueobject.Threshold
	Status Status
}

type file struct {
	Threshold *float64 `json:"threshold"`
}

// Load reads {"threshold": <float>} from path. A missing file is NotFound;
// unreadable JSON, a missing key or a value outside [0,1] is ParseError.
func Load(path string) Result {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Status: StatusNotFound}
	}
	if err != nil {
		return Result{Status: StatusParseError, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return Result{Status: StatusParseError, Err: fmt.Errorf("failed to decode %s: %w", path, err)}
	}
	if f.Threshold == nil {
		return Result{Status: StatusParseError, Err: fmt.Errorf("%s has no \"threshold\" key", path)}
	}
	t, err := valueobject.NewThreshold(*f.Threshold)
	if err != nil {
		return Result{Status: StatusParseError, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return Result{Status: StatusFound, Value: t}
}

// Resolve picks the threshold for a load result, falling back for
// NotFound and ParseError. Each case is logged differently.
func Resolve(r Result, fallback valueobject.Threshold, path string, logger *slog.Logger) valueobject.Threshold {
	switch r.Status {
	case StatusFound:
		logger.Info("decision threshold loaded", "path", path, "threshold", r.Value.Value())
		return r.Value
	case StatusNotFound:
		logger.Info("threshold file not found, using default", "path", path, "threshold", fallback.Value())
	default:
		logger.Warn("threshold file unusable, using default",
			"path", path, "threshold", fallback.Value(), "error", r.Err)
	}
	return fallback
}

// ForProfile returns the threshold a profile decides with. The scaled
// profile uses a fixed cutoff and never reads the file.
func ForProfile(profile valueobject.Profile, path string, fallback valueobject.Threshold, logger *slog.Logger) valueobject.Threshold {
	if profile.HasFixedThreshold() {
		logger.Info("using fixed decision threshold",
			"profile", profile.String(), "threshold", valueobject.ScaledProfileThreshold.Value())
		return valueobject.ScaledProfileThreshold
	}
	return Resolve(Load(path), fallback, path, logger)
}
