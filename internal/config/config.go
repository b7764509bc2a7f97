package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/idlocator/internal/engine"
	"github.com/standardbeagle/idlocator/internal/semantic"
)

// DefaultFileName is the config file looked up in the working directory and
// in the user's home directory
const DefaultFileName = ".idlocator.kdl"

type Config struct {
	Version int
	Dataset Dataset
	Search  Search
	Weights Weights
	Scoring Scoring
	Lexicon Lexicon

	// Dir is the directory of the project config file; relative dataset and
	// lexicon paths resolve against it
	Dir string
}

type Dataset struct {
	Path            string // CSV file or doublestar glob; empty loads the built-in sample
	Watch           bool   // Reload when the dataset changes on disk
	WatchDebounceMs int    // Debounce time for file change events
}

type Search struct {
	UsePhonetic bool
	CodeLength  int
	MaxResults  int // 0 = unlimited
	Parallelism int // 0 = auto-detect (NumCPU)
}

type Weights struct {
	FirstName   float64
	LastName    float64
	Street      float64
	City        float64
	HouseNumber float64
}

// Scoring holds the score assigned by each tier of the text cascade
type Scoring struct {
	Exact                 float64
	Nickname              float64
	Abbreviation          float64
	Prefix                float64
	EditDistance          float64
	EditDistanceThreshold float64
	Phonetic              float64
	Substring             float64
	PhoneticNormalized    float64
}

type Lexicon struct {
	Path string // TOML file merged over the built-in nickname and abbreviation tables
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	layers := semantic.DefaultScoreLayers
	return &Config{
		Version: 1,
		Dataset: Dataset{
			Watch:           false,
			WatchDebounceMs: 300,
		},
		Search: Search{
			UsePhonetic: true,
			CodeLength:  4,
			MaxResults:  0,
			Parallelism: 1,
		},
		Weights: Weights(engine.DefaultWeights),
		Scoring: Scoring{
			Exact:                 layers.ExactWeight,
			Nickname:              layers.NicknameWeight,
			Abbreviation:          layers.AbbreviationWeight,
			Prefix:                layers.PrefixWeight,
			EditDistance:          layers.EditDistanceWeight,
			EditDistanceThreshold: layers.EditDistanceThreshold,
			Phonetic:              layers.PhoneticWeight,
			Substring:             layers.SubstringWeight,
			PhoneticNormalized:    layers.PhoneticNormalizedWeight,
		},
		Dir: cwd,
	}
}

// Load reads the config at path, layered over ~/.idlocator.kdl. An empty path
// means DefaultFileName in the working directory. Missing files are not an
// error; the defaults apply. The result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	cfg := Default()

	// Step 1: global base config
	if homeDir, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(homeDir, DefaultFileName)
		if !samePath(globalPath, path) {
			if _, err := LoadKDLInto(cfg, globalPath); err != nil {
				return nil, err
			}
		}
	}

	// Step 2: project config overrides only the keys it sets
	found, err := LoadKDLInto(cfg, path)
	if err != nil {
		return nil, err
	}
	if found {
		if dir, err := filepath.Abs(filepath.Dir(path)); err == nil {
			cfg.Dir = dir
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatasetPath returns the dataset location resolved against Dir
func (c *Config) DatasetPath() string {
	return c.resolve(c.Dataset.Path)
}

// LexiconPath returns the lexicon file resolved against Dir
func (c *Config) LexiconPath() string {
	return c.resolve(c.Lexicon.Path)
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Clean(filepath.Join(c.Dir, p))
}

// ScoreLayers converts the scoring section for the field scorer
func (c *Config) ScoreLayers() semantic.ScoreLayers {
	return semantic.ScoreLayers{
		ExactWeight:              c.Scoring.Exact,
		NicknameWeight:           c.Scoring.Nickname,
		AbbreviationWeight:       c.Scoring.Abbreviation,
		PrefixWeight:             c.Scoring.Prefix,
		EditDistanceWeight:       c.Scoring.EditDistance,
		PhoneticWeight:           c.Scoring.Phonetic,
		SubstringWeight:          c.Scoring.Substring,
		PhoneticNormalizedWeight: c.Scoring.PhoneticNormalized,
		EditDistanceThreshold:    c.Scoring.EditDistanceThreshold,
	}
}

// EngineWeights converts the weights section for the match engine
func (c *Config) EngineWeights() engine.Weights {
	return engine.Weights(c.Weights)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
