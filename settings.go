package fessanalysis

import (
	"fmt"
	"io"

	"github.com/future-architect/fessanalysis/nlp"
	"gopkg.in/yaml.v3"
)

// LoadSettings reads index settings written in YAML or JSON.
func LoadSettings(r io.Reader) (nlp.Settings, error) {
	var settings map[string]interface{}
	err := yaml.NewDecoder(r).Decode(&settings)
	if err == io.EOF {
		return nlp.Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't parse settings: %w", err)
	}
	return nlp.Settings(settings), nil
}

func analysisSettings(settings nlp.Settings) nlp.Settings {
	if settings.Has("index.analysis") {
		return settings.Sub("index.analysis")
	}
	return settings.Sub("analysis")
}
