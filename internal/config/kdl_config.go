package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	lcierrors "github.com/standardbeagle/idlocator/internal/errors"
)

// LoadKDLInto applies the KDL file at path on top of cfg. Keys the file does
// not mention keep their current values. It reports whether the file exists.
func LoadKDLInto(cfg *Config, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, lcierrors.NewFileError("read", path, err)
	}

	prevDataset, prevLexicon := cfg.Dataset.Path, cfg.Lexicon.Path
	if err := applyKDL(cfg, string(content)); err != nil {
		return true, lcierrors.NewConfigError("file", path, err)
	}

	// paths in a config file are relative to that file
	dir := filepath.Dir(path)
	if cfg.Dataset.Path != prevDataset {
		cfg.Dataset.Path = relativeTo(dir, cfg.Dataset.Path)
	}
	if cfg.Lexicon.Path != prevLexicon {
		cfg.Lexicon.Path = relativeTo(dir, cfg.Lexicon.Path)
	}
	return true, nil
}

func relativeTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(filepath.Join(dir, p)); err == nil {
		return abs
	}
	return filepath.Join(dir, p)
}

// parseKDL builds a config from defaults plus content
func parseKDL(content string) (*Config, error) {
	cfg := Default()
	if err := applyKDL(cfg, content); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "dataset":
			for _, cn := range n.Children { // dataset { path "people.csv" watch true }
				switch nodeName(cn) {
				case "path":
					if s, ok := firstStringArg(cn); ok {
						cfg.Dataset.Path = s
					}
				case "watch":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Dataset.Watch = b
					}
				case "watch_debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Dataset.WatchDebounceMs = v
					}
				}
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "use_phonetic":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Search.UsePhonetic = b
					}
				case "code_length":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.CodeLength = v
					}
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxResults = v
					}
				case "parallelism":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.Parallelism = v
					}
				}
			}
		case "weights":
			for _, cn := range n.Children {
				target := weightField(&cfg.Weights, nodeName(cn))
				if target == nil {
					continue
				}
				if v, ok := firstFloatArg(cn); ok {
					*target = v
				}
			}
		case "scoring":
			for _, cn := range n.Children {
				target := scoringField(&cfg.Scoring, nodeName(cn))
				if target == nil {
					continue
				}
				if v, ok := firstFloatArg(cn); ok {
					*target = v
				}
			}
		case "lexicon":
			for _, cn := range n.Children {
				assignSimpleString(cn, "path", func(v string) { cfg.Lexicon.Path = v })
			}
		}
	}

	return nil
}

func weightField(w *Weights, name string) *float64 {
	switch name {
	case "first_name":
		return &w.FirstName
	case "last_name":
		return &w.LastName
	case "street":
		return &w.Street
	case "city":
		return &w.City
	case "house_number":
		return &w.HouseNumber
	}
	return nil
}

func scoringField(s *Scoring, name string) *float64 {
	switch name {
	case "exact":
		return &s.Exact
	case "nickname":
		return &s.Nickname
	case "abbreviation":
		return &s.Abbreviation
	case "prefix":
		return &s.Prefix
	case "edit_distance":
		return &s.EditDistance
	case "edit_distance_threshold":
		return &s.EditDistanceThreshold
	case "phonetic":
		return &s.Phonetic
	case "substring":
		return &s.Substring
	case "phonetic_normalized":
		return &s.PhoneticNormalized
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		log.Printf("WARNING: invalid float value for '%s' in KDL config, expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
