package config

import (
	"encoding/json"
	"os"
	"time"
)

// CompareConfig holds runtime configuration for the imagecomp tool.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type CompareConfig struct {
	Debug bool `json:"debug"`

	// Pipeline parameters
	Root           string `json:"root"`
	Threshold      int    `json:"threshold"`
	MinArea        int    `json:"min_area"`
	AlignMaxOffset int    `json:"align_max_offset"`
	ResultsDir     string `json:"results_dir"`
	Show           bool   `json:"show"`

	// Watch mode
	WatchInterval time.Duration `json:"watch_interval"`
	WatchFrames   int           `json:"watch_frames"`
}

// DefaultCompareConfig returns a CompareConfig populated with standard defaults.
func DefaultCompareConfig() *CompareConfig {
	return &CompareConfig{
		Debug:          false,
		Root:           "test_cases",
		Threshold:      50,
		MinArea:        50,
		AlignMaxOffset: 0,
		ResultsDir:     "",
		Show:           false,
		WatchInterval:  500 * time.Millisecond,
		WatchFrames:    0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *CompareConfig) Validate() error {
	if c.Root == "" {
		c.Root = "test_cases"
	}
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.Threshold > 255 {
		c.Threshold = 255
	}
	if c.MinArea < 0 {
		c.MinArea = 0
	}
	if c.AlignMaxOffset < 0 {
		c.AlignMaxOffset = 0
	}
	if c.WatchInterval <= 0 {
		c.WatchInterval = 500 * time.Millisecond
	}
	if c.WatchFrames < 0 {
		c.WatchFrames = 0
	}
	return nil
}

// OverlapConfig holds runtime configuration for the overlap tool.
type OverlapConfig struct {
	Debug bool `json:"debug"`

	NumROIs     int   `json:"num_rois"`
	ImageWidth  int   `json:"image_width"`
	ImageHeight int   `json:"image_height"`
	MinSize     int   `json:"min_size"`
	MaxSize     int   `json:"max_size"`
	Seed        int64 `json:"seed"`
	Rect        bool  `json:"rect"`
}

// DefaultOverlapConfig returns an OverlapConfig populated with standard defaults.
func DefaultOverlapConfig() *OverlapConfig {
	return &OverlapConfig{
		Debug:       false,
		NumROIs:     50,
		ImageWidth:  1000,
		ImageHeight: 1000,
		MinSize:     10,
		MaxSize:     100,
		Seed:        0,
		Rect:        false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *OverlapConfig) Validate() error {
	if c.NumROIs < 1 {
		c.NumROIs = 1
	}
	if c.ImageWidth < 1 {
		c.ImageWidth = 1
	}
	if c.ImageHeight < 1 {
		c.ImageHeight = 1
	}
	if c.MinSize < 1 {
		c.MinSize = 1
	}
	if c.MaxSize < c.MinSize {
		c.MaxSize = c.MinSize
	}
	return nil
}

// LoadCompare attempts to read imagecomp configuration from the given JSON file
// path. If the file does not exist it returns DefaultCompareConfig(). On JSON
// error it returns defaults with the error.
func LoadCompare(path string) (*CompareConfig, error) {
	cfg := DefaultCompareConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// LoadOverlap is LoadCompare for the overlap tool's configuration.
func LoadOverlap(path string) (*OverlapConfig, error) {
	cfg := DefaultOverlapConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *CompareConfig) Save(path string) error {
	_ = c.Validate()
	return saveJSON(path, c)
}

// Save writes the configuration to the given path in JSON format.
func (c *OverlapConfig) Save(path string) error {
	_ = c.Validate()
	return saveJSON(path, c)
}

func saveJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
