package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed detect.yaml
var detectYAML []byte

type Config struct {
	Detector DetectorConfig
	Web      WebConfig
	Output   OutputConfig
	Tuning   TuningConfig
}

type DetectorConfig struct {
	Backend     string // "pigo" (default) or "remote"
	CascadePath string // path to the pigo facefinder cascade file
	RemoteURL   string // base URL of a remote detector service
}

type WebConfig struct {
	MaxUploadBytes int64 // limit for roster and photo uploads
}

type OutputConfig struct {
	Dir string // directory for saved attendance reports
}

// TuningConfig holds detector tuning values, loaded from the embedded
// detect.yaml. They correspond to the cascade's sliding-window sweep.
type TuningConfig struct {
	Detector DetectorTuning `yaml:"detector"`
}

type DetectorTuning struct {
	MinSize          int     `yaml:"min_size"`          // smallest face edge in pixels
	MaxSize          int     `yaml:"max_size"`          // largest face edge in pixels
	ShiftFactor      float64 `yaml:"shift_factor"`      // window shift as a fraction of its size
	ScaleFactor      float64 `yaml:"scale_factor"`      // window growth step between sweeps
	QualityThreshold float64 `yaml:"quality_threshold"` // minimum detection score to keep
	OverlapIoU       float64 `yaml:"overlap_iou"`       // threshold for merging overlapping boxes
}

// envInt64 reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt64(key string, defaultVal int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback.
func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	var tuning TuningConfig
	if err := yaml.Unmarshal(detectYAML, &tuning); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded detect.yaml: " + err.Error())
	}

	return &Config{
		Detector: DetectorConfig{
			Backend:     envString("DETECTOR_BACKEND", "pigo"),
			CascadePath: envString("CASCADE_PATH", "facefinder"),
			RemoteURL:   os.Getenv("DETECTOR_URL"),
		},
		Web: WebConfig{
			MaxUploadBytes: envInt64("WEB_MAX_UPLOAD_BYTES", 32<<20),
		},
		Output: OutputConfig{
			Dir: envString("OUTPUT_DIR", "."),
		},
		Tuning: tuning,
	}
}
