package reference

import (
	"encoding/json"
	"fmt"
)

// BandTarget is the per-band reference entry in a genre profile.
type BandTarget struct {
	TargetDB float64 `json:"target_db"`
	TolDB    float64 `json:"tol_db"`
}

// Profile is the per-genre reference document. Numeric fields are pointers so
// an absent field is distinguishable from a zero target; absent fields fall
// back to the resolver's defaults.
type Profile struct {
	Genre       string `json:"genre"`
	DisplayName string `json:"display_name,omitempty"`

	LUFSTarget *float64 `json:"lufs_target,omitempty"`
	TolLUFS    *float64 `json:"tol_lufs,omitempty"`

	TruePeakTarget *float64 `json:"true_peak_target,omitempty"`
	TolTruePeak    *float64 `json:"tol_true_peak,omitempty"`

	DRTarget *float64 `json:"dr_target,omitempty"`
	TolDR    *float64 `json:"tol_dr,omitempty"`

	LRATarget *float64 `json:"lra_target,omitempty"`
	TolLRA    *float64 `json:"tol_lra,omitempty"`

	StereoTarget *float64 `json:"stereo_target,omitempty"`
	TolStereo    *float64 `json:"tol_stereo,omitempty"`

	Bands map[string]BandTarget `json:"bands,omitempty"`
}

// ParseProfile decodes and validates a genre profile document.
func ParseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse genre profile: %w", err)
	}
	if profile.Genre == "" {
		return nil, fmt.Errorf("genre profile missing genre identifier")
	}
	return &profile, nil
}

// Target is a resolved (target, tolerance) pair for one metric key.
type Target struct {
	Target    float64 `json:"target"`
	Tolerance float64 `json:"tolerance"`
}
