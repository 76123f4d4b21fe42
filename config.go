package img2skel

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Kernel is a 3x3 grid of integer convolution weights indexed
// [row][column], i.e. [dy+1][dx+1] for a neighbor at offset (dx, dy).
type Kernel [3][3]int

// DefaultKernel is the blur kernel used by Sharpen: every neighbor counts
// once and the center pixel twice.
var DefaultKernel = Kernel{
	{1, 1, 1},
	{1, 2, 1},
	{1, 1, 1},
}

// Band is an inclusive luminance interval [Low, High].
type Band struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Config carries every tunable of the transforms. The zero value is not
// useful; start from DefaultConfig.
type Config struct {
	// Kernel holds the 3x3 neighbor weights of the sharpen blur.
	Kernel Kernel `yaml:"kernel"`
	// Scale multiplies every weighted neighbor before the sum is floored.
	Scale float64 `yaml:"scale"`
	// BiasA and BiasB give delta = BiasA + BiasB*S - V in Sharpen.
	BiasA int `yaml:"bias_a"`
	BiasB int `yaml:"bias_b"`

	// Band is the luminance interval painted white by BrightnessBand.
	// When nil the pipeline derives it from the image with DefaultBand.
	Band *Band `yaml:"band,omitempty"`

	// Darkness is the largest channel value still treated as foreground
	// when binarizing for Skeletonize.
	Darkness int `yaml:"darkness"`
	// MaxPasses bounds the number of thinning passes. Zero selects a bound
	// derived from the image diagonal.
	MaxPasses int `yaml:"max_passes"`

	// Foreground and Background color the rendered skeleton.
	Foreground RGB `yaml:"foreground"`
	Background RGB `yaml:"background"`

	// Workers is the number of row bands processed concurrently. Zero uses
	// GOMAXPROCS and one disables concurrency.
	Workers int `yaml:"workers"`

	// LegacyBinarize tests the blue channel twice instead of green when
	// binarizing, as earlier releases of the tool did.
	LegacyBinarize bool `yaml:"legacy_binarize"`
	// LegacyEdges addresses neighbors by linear index, so a neighbor past
	// the end of a row wraps onto the adjacent row instead of counting as
	// off the image.
	LegacyEdges bool `yaml:"legacy_edges"`

	// OnPass, when set, is called after every completed thinning pass.
	OnPass PassFunc `yaml:"-"`
}

// DefaultConfig returns the standard settings: the DefaultKernel with a
// scale of 0.1, biases A=0 and B=1, a darkness threshold of 15 and black
// skeletons on white.
func DefaultConfig() Config {
	return Config{
		Kernel:     DefaultKernel,
		Scale:      0.1,
		BiasA:      0,
		BiasB:      1,
		Darkness:   15,
		Foreground: Black,
		Background: White,
	}
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) {
		errs = append(errs, fmt.Errorf("scale must be finite, got %v", c.Scale))
	}
	if c.Darkness < 0 || c.Darkness > 255 {
		errs = append(errs, fmt.Errorf("darkness must be in [0,255], got %d", c.Darkness))
	}
	if c.MaxPasses < 0 {
		errs = append(errs, fmt.Errorf("max_passes must not be negative, got %d", c.MaxPasses))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Band != nil && c.Band.Low > c.Band.High {
		errs = append(errs, fmt.Errorf("band low %d exceeds high %d", c.Band.Low, c.Band.High))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML config file. Keys that are absent keep their
// DefaultConfig values; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a YAML config on top of DefaultConfig.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// UnmarshalYAML accepts colors written as hex strings.
func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML writes colors as hex strings.
func (c RGB) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}
