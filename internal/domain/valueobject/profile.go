package valueobject

import (
	"fmt"
	"strings"
)

// Profile selects how a query is prepared for the model.
//
//	pipeline: categorical text is passed through; the model artifact embeds
//	          its own encoding; threshold comes from the threshold file.
//	scaled:   categorical fields go through the versioned encoding table,
//	          numeric features through the scaler; threshold is fixed at 0.4.
type Profile struct {
	value string
}

var (
	ProfilePipeline = Profile{value: "pipeline"}
	ProfileScaled   = Profile{value: "scaled"}
)

// ProfileFromString parses a profile name, case-insensitively.
func ProfileFromString(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pipeline":
		return ProfilePipeline, nil
	case "scaled":
		return ProfileScaled, nil
	default:
		return Profile{}, fmt.Errorf("invalid profile: %q", s)
	}
}

func (p Profile) String() string           { return p.value }
func (p Profile) IsZero() bool             { return p.value == "" }
func (p Profile) Equal(other Profile) bool { return p.value == other.value }

// UsesScaler reports whether the profile scales features before prediction.
func (p Profile) UsesScaler() bool { return p.value == "scaled" }

// HasFixedThreshold reports whether the profile ignores the threshold file.
func (p Profile) HasFixedThreshold() bool { return p.value == "scaled" }
