package sandbox

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"
)

type CollectionConfig struct {
	Path     string           `yaml:"path"`
	ReadOnly []string         `yaml:"readOnly"`
	Seed     []map[string]any `yaml:"seed"`
}

type Config struct {
	Collections []CollectionConfig `yaml:"collections"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = yaml.Unmarshal(buf, &cfg)
	if err != nil {
		return nil, err
	}

	for idx := range cfg.Collections {
		for sidx, record := range cfg.Collections[idx].Seed {
			cfg.Collections[idx].Seed[sidx] = normalize(record).(map[string]any)
		}
	}

	return cfg, nil
}

// normalize converts the map[any]any values produced by yaml into the shapes
// that encoding/json would have produced for the same document
func normalize(value any) any {
	switch v := value.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[fmt.Sprintf("%v", k)] = normalize(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = normalize(e)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, e := range v {
			l[i] = normalize(e)
		}
		return l
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return v
	}
}
