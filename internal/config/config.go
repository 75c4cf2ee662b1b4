// Package config holds the settings shared by the subseq command and the
// API server. Values are unmarshalled from viper, which merges defaults, an
// optional subseq.yaml, SUBSEQ_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/aria-lang/subseq-go/internal/alignment"
	"github.com/aria-lang/subseq-go/internal/selection"
	"github.com/aria-lang/subseq-go/internal/sequence"
)

// Setting keys.
const (
	KeyGapCost     = "gapcost"
	KeyMinScore    = "minscore"
	KeyMatrix      = "matrix"
	KeySearch      = "search"
	KeyFirstOnly   = "firstonly"
	KeyTemplate    = "template"
	KeyPlaceholder = "placeholder"
	KeyModels      = "models"
	KeyChains      = "chains"
	KeyServerHost  = "server.host"
	KeyServerPort  = "server.port"
)

// ServerConfig are the settings of the API server.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr is the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Config is the root-level settings struct.
type Config struct {
	// penalty per gap position
	GapCost float64 `mapstructure:"gapcost"`

	// minimum local score as a percentage of the best possible score
	MinScore float64 `mapstructure:"minscore"`

	// built-in matrix name or path to a matrix file
	Matrix string `mapstructure:"matrix"`

	// alphabet residues are translated with
	Search string `mapstructure:"search"`

	// stop at the first match
	FirstOnly bool `mapstructure:"firstonly"`

	// selection name template
	Template string `mapstructure:"template"`

	// symbol for untranslatable residues
	Placeholder string `mapstructure:"placeholder"`

	// model and chain whitelists, empty means all
	Models []string `mapstructure:"models"`
	Chains []string `mapstructure:"chains"`

	Server ServerConfig `mapstructure:"server"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyGapCost, 10.0)
	v.SetDefault(KeyMinScore, 51.0)
	v.SetDefault(KeyMatrix, alignment.Blosum62)
	v.SetDefault(KeySearch, sequence.AminoAcids.String())
	v.SetDefault(KeyFirstOnly, false)
	v.SetDefault(KeyTemplate, selection.DefaultTemplate)
	v.SetDefault(KeyPlaceholder, string(sequence.DefaultPlaceholder))
	v.SetDefault(KeyModels, []string{})
	v.SetDefault(KeyChains, []string{})
	v.SetDefault(KeyServerHost, "localhost")
	v.SetDefault(KeyServerPort, 8080)
}

// Setup prepares v to read subseq.yaml from the working directory or
// $HOME/.subseq and SUBSEQ_* environment variables.
func Setup(v *viper.Viper) {
	SetDefaults(v)
	v.SetConfigName("subseq")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join("$HOME", ".subseq"))
	v.SetEnvPrefix("subseq")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// ReadFile reads the settings file. A missing file is not an error. An
// explicit path overrides the search paths.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// New unmarshals the settings held by v.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, nil
}

// Alphabet parses the search setting.
func (c Config) Alphabet() (sequence.Alphabet, error) {
	return sequence.ParseAlphabet(c.Search)
}

// PlaceholderSymbol returns the placeholder as a single upper-case symbol.
func (c Config) PlaceholderSymbol() (byte, error) {
	if len(c.Placeholder) != 1 {
		return 0, fmt.Errorf("placeholder must be a single symbol, got %q", c.Placeholder)
	}
	return strings.ToUpper(c.Placeholder)[0], nil
}

// Validate reports every invalid numeric or enumerated setting.
func (c Config) Validate() []error {
	var errs []error
	if c.GapCost < 0 {
		errs = append(errs, fmt.Errorf("gapcost must be >= 0, got %g", c.GapCost))
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		errs = append(errs, fmt.Errorf("minscore must be between 0 and 100, got %g", c.MinScore))
	}
	if _, err := c.Alphabet(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.PlaceholderSymbol(); err != nil {
		errs = append(errs, err)
	}
	return errs
}
