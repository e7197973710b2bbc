package optimize

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archlens/pkg/errors"
	"github.com/matzehuels/archlens/pkg/icons"
)

// Default configuration values.
const (
	DefaultLazyLoadingThreshold    = 50
	DefaultLevelOfDetailThreshold  = 75
	DefaultVirtualizationThreshold = 100

	DefaultBuffer             = 100.0
	DefaultZoomThreshold      = 0.5
	DefaultLabelThreshold     = 0.25
	DefaultStrokeReduction    = 0.5
	DefaultStrokeWidth        = 2.0
	DefaultBatchSize          = 10
	DefaultCacheCapacity      = 0
	defaultLabelToZoomDivisor = 2
)

// Config holds every tunable of the engine. Load it with [LoadConfig] or
// start from [DefaultConfig].
type Config struct {
	Strategies StrategyFlags  `toml:"strategies" yaml:"strategies" json:"strategies"`
	Thresholds Thresholds     `toml:"thresholds" yaml:"thresholds" json:"thresholds"`
	Viewport   ViewportConfig `toml:"viewport" yaml:"viewport" json:"viewport"`
	LOD        LODConfig      `toml:"lod" yaml:"lod" json:"lod"`
	Loading    LoadingConfig  `toml:"loading" yaml:"loading" json:"loading"`
	Icons      IconConfig     `toml:"icons" yaml:"icons" json:"icons"`
	Cache      CacheConfig    `toml:"cache" yaml:"cache" json:"cache"`
}

// StrategyFlags enables or disables each strategy. A disabled flag always
// wins over a satisfied threshold.
type StrategyFlags struct {
	Virtualization bool `toml:"virtualization" yaml:"virtualization" json:"virtualization"`
	LevelOfDetail  bool `toml:"level_of_detail" yaml:"level_of_detail" json:"level_of_detail"`
	LazyLoading    bool `toml:"lazy_loading" yaml:"lazy_loading" json:"lazy_loading"`
	Batching       bool `toml:"batching" yaml:"batching" json:"batching"`
	Caching        bool `toml:"caching" yaml:"caching" json:"caching"`
}

// Thresholds are node counts at which strategies activate. Batching shares
// the lazy-loading threshold.
type Thresholds struct {
	LazyLoading    int `toml:"lazy_loading" yaml:"lazy_loading" json:"lazy_loading"`
	LevelOfDetail  int `toml:"level_of_detail" yaml:"level_of_detail" json:"level_of_detail"`
	Virtualization int `toml:"virtualization" yaml:"virtualization" json:"virtualization"`
}

// ViewportConfig controls virtualization.
type ViewportConfig struct {
	Buffer float64 `toml:"buffer" yaml:"buffer" json:"buffer"`
}

// LODConfig controls level-of-detail decisions.
type LODConfig struct {
	// ZoomThreshold: below it nodes are simplified and lose their icon.
	ZoomThreshold float64 `toml:"zoom_threshold" yaml:"zoom_threshold" json:"zoom_threshold"`
	// LabelThreshold: below it nodes also lose their label.
	LabelThreshold float64 `toml:"label_threshold" yaml:"label_threshold" json:"label_threshold"`
	// StrokeReduction multiplies the stroke width of simplified nodes.
	StrokeReduction float64 `toml:"stroke_reduction" yaml:"stroke_reduction" json:"stroke_reduction"`
	// DefaultStrokeWidth applies to nodes without their own width.
	DefaultStrokeWidth float64 `toml:"default_stroke_width" yaml:"default_stroke_width" json:"default_stroke_width"`
}

// LoadingConfig controls the icon load queue.
type LoadingConfig struct {
	BatchSize int `toml:"batch_size" yaml:"batch_size" json:"batch_size"`
}

// IconConfig holds the load parameters for icon requests.
type IconConfig struct {
	Format  string `toml:"format" yaml:"format" json:"format"`
	Source  string `toml:"source" yaml:"source" json:"source"`
	BaseURL string `toml:"base_url" yaml:"base_url" json:"base_url,omitempty"`
}

// CacheConfig bounds the default in-memory icon cache.
type CacheConfig struct {
	Capacity int `toml:"capacity" yaml:"capacity" json:"capacity"`
}

// DefaultConfig returns a configuration with every strategy enabled and the
// default thresholds.
func DefaultConfig() Config {
	return Config{
		Strategies: StrategyFlags{
			Virtualization: true,
			LevelOfDetail:  true,
			LazyLoading:    true,
			Batching:       true,
			Caching:        true,
		},
		Thresholds: Thresholds{
			LazyLoading:    DefaultLazyLoadingThreshold,
			LevelOfDetail:  DefaultLevelOfDetailThreshold,
			Virtualization: DefaultVirtualizationThreshold,
		},
		Viewport: ViewportConfig{Buffer: DefaultBuffer},
		LOD: LODConfig{
			ZoomThreshold:      DefaultZoomThreshold,
			LabelThreshold:     DefaultLabelThreshold,
			StrokeReduction:    DefaultStrokeReduction,
			DefaultStrokeWidth: DefaultStrokeWidth,
		},
		Loading: LoadingConfig{BatchSize: DefaultBatchSize},
		Icons:   IconConfig{Format: icons.DefaultFormat, Source: icons.DefaultSource},
		Cache:   CacheConfig{Capacity: DefaultCacheCapacity},
	}
}

// SetDefaults replaces invalid values with defaults and returns one warning
// per correction. Invalid configuration is never fatal.
func (c *Config) SetDefaults() []string {
	var warnings []string
	fixInt := func(name string, v *int, def int) {
		if *v <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s must be positive (got %d), using %d", name, *v, def))
			*v = def
		}
	}
	fixFloat := func(name string, v *float64, def float64, ok func(float64) bool) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || !ok(*v) {
			warnings = append(warnings, fmt.Sprintf("%s is invalid (got %g), using %g", name, *v, def))
			*v = def
		}
	}
	positive := func(f float64) bool { return f > 0 }

	fixInt("thresholds.lazy_loading", &c.Thresholds.LazyLoading, DefaultLazyLoadingThreshold)
	fixInt("thresholds.level_of_detail", &c.Thresholds.LevelOfDetail, DefaultLevelOfDetailThreshold)
	fixInt("thresholds.virtualization", &c.Thresholds.Virtualization, DefaultVirtualizationThreshold)
	fixInt("loading.batch_size", &c.Loading.BatchSize, DefaultBatchSize)

	fixFloat("viewport.buffer", &c.Viewport.Buffer, DefaultBuffer, func(f float64) bool { return f >= 0 })
	fixFloat("lod.zoom_threshold", &c.LOD.ZoomThreshold, DefaultZoomThreshold, positive)
	fixFloat("lod.label_threshold", &c.LOD.LabelThreshold, DefaultLabelThreshold, positive)
	fixFloat("lod.stroke_reduction", &c.LOD.StrokeReduction, DefaultStrokeReduction,
		func(f float64) bool { return f > 0 && f < 1 })
	fixFloat("lod.default_stroke_width", &c.LOD.DefaultStrokeWidth, DefaultStrokeWidth, positive)

	if c.LOD.LabelThreshold >= c.LOD.ZoomThreshold {
		label := DefaultLabelThreshold
		if label >= c.LOD.ZoomThreshold {
			label = c.LOD.ZoomThreshold / defaultLabelToZoomDivisor
		}
		warnings = append(warnings, fmt.Sprintf(
			"lod.label_threshold (%g) must be below lod.zoom_threshold (%g), using %g",
			c.LOD.LabelThreshold, c.LOD.ZoomThreshold, label))
		c.LOD.LabelThreshold = label
	}

	if c.Icons.Format == "" {
		c.Icons.Format = icons.DefaultFormat
	}
	if c.Icons.Source == "" {
		c.Icons.Source = icons.DefaultSource
	}
	if c.Cache.Capacity < 0 {
		warnings = append(warnings, fmt.Sprintf("cache.capacity cannot be negative (got %d), using unbounded", c.Cache.Capacity))
		c.Cache.Capacity = 0
	}
	return warnings
}

// Resolver returns the icon request resolver for this configuration.
func (c Config) Resolver() icons.Resolver {
	return icons.Resolver{Format: c.Icons.Format, Source: c.Icons.Source, BaseURL: c.Icons.BaseURL}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file on top of
// DefaultConfig. Keys absent from the file keep their defaults; unknown
// keys are rejected so typos do not silently fall back. Values are not
// validated here, see [Config.SetDefaults].
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml or .yaml)", filepath.Ext(path))
	}
	return cfg, nil
}
