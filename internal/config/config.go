package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/cgmdust/cosmology"
	"github.com/hupe1980/cgmdust/dust"
	"github.com/hupe1980/cgmdust/geometry"
	"github.com/hupe1980/cgmdust/persistence"
)

// ErrInvalid is matched by every validation error returned from this package.
var ErrInvalid = errors.New("invalid config")

// Config is the root of the configuration file.
type Config struct {
	Profile   ProfileConfig   `yaml:"profile"`
	Cosmology CosmologyConfig `yaml:"cosmology"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Storage   StorageConfig   `yaml:"storage"`
}

// ProfileConfig mirrors dust.Profile.
type ProfileConfig struct {
	RMinKpc float64 `yaml:"r_min_kpc" validate:"gt=0"`
	Alpha   float64 `yaml:"alpha" validate:"lt=0"`
	KV      float64 `yaml:"k_v" validate:"gt=0"`
}

// CosmologyConfig selects the distance model. H0 and Om0 are only read for
// the custom preset.
type CosmologyConfig struct {
	Preset    string  `yaml:"preset" validate:"oneof=planck18 wmap9 custom"`
	H0        float64 `yaml:"h0" validate:"required_if=Preset custom,gte=0"`
	Om0       float64 `yaml:"om0" validate:"gte=0,lte=1"`
	CacheSize int     `yaml:"cache_size" validate:"gte=0"`
}

// PipelineConfig bounds the estimator's parallelism and memory.
type PipelineConfig struct {
	Workers          int   `yaml:"workers" validate:"gte=0"`
	MaxWorkers       int64 `yaml:"max_workers" validate:"gte=0"` // across concurrent estimates
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes" validate:"gte=0"`
	ThetaMaxCheck    bool  `yaml:"theta_max_check"`
}

// CatalogConfig describes input catalogs.
type CatalogConfig struct {
	Unit string `yaml:"unit" validate:"angunit"`
}

// StorageConfig selects where result files are kept.
type StorageConfig struct {
	Backend     string `yaml:"backend" validate:"oneof=local memory minio s3"`
	Root        string `yaml:"root" validate:"required_if=Backend local"`
	Bucket      string `yaml:"bucket"`
	Prefix      string `yaml:"prefix"`
	Endpoint    string `yaml:"endpoint" validate:"required_if=Backend minio"`
	Region      string `yaml:"region"`
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	UseSSL      bool   `yaml:"use_ssl"`
	Compression string `yaml:"compression" validate:"compression"`

	// IOLimitBytesPerSec throttles result uploads and downloads. 0 disables it.
	IOLimitBytesPerSec int64 `yaml:"io_limit_bytes_per_sec" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{
			RMinKpc: dust.DefaultProfile.RMinKpc,
			Alpha:   dust.DefaultProfile.Alpha,
			KV:      dust.DefaultProfile.KV,
		},
		Cosmology: CosmologyConfig{
			Preset:    "planck18",
			CacheSize: 1024,
		},
		Catalog: CatalogConfig{
			Unit: geometry.Degree.String(),
		},
		Storage: StorageConfig{
			Backend:     "local",
			Root:        ".",
			Compression: persistence.CompressionZstd.String(),
		},
	}
}

// Load reads and validates the file at path. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks all fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Cosmology.Preset == "custom" {
		if _, err := cosmology.NewFlatLambdaCDM(c.Cosmology.H0, c.Cosmology.Om0); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	return nil
}

// DustProfile returns the configured extinction profile.
func (c *Config) DustProfile() dust.Profile {
	return dust.Profile{
		RMinKpc: c.Profile.RMinKpc,
		Alpha:   c.Profile.Alpha,
		KV:      c.Profile.KV,
	}
}

// CosmologyModel returns the configured distance model.
func (c *Config) CosmologyModel() (cosmology.FlatLambdaCDM, error) {
	switch c.Cosmology.Preset {
	case "planck18":
		return cosmology.Planck18, nil
	case "wmap9":
		return cosmology.WMAP9, nil
	case "custom":
		return cosmology.NewFlatLambdaCDM(c.Cosmology.H0, c.Cosmology.Om0)
	default:
		return cosmology.FlatLambdaCDM{}, fmt.Errorf("%w: unknown cosmology preset %q", ErrInvalid, c.Cosmology.Preset)
	}
}

// Unit returns the configured angular unit of catalog positions.
func (c *Config) Unit() (geometry.Unit, error) {
	return geometry.ParseUnit(c.Catalog.Unit)
}

// Compression returns the configured result compression.
func (c *Config) Compression() (persistence.Compression, error) {
	return persistence.ParseCompression(c.Storage.Compression)
}
