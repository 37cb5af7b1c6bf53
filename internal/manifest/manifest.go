// Package manifest persists a YAML description of a sampled frame set:
// which timestamps were captured, which fell back to placeholders, and the
// options the set was built with.
package manifest

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/video2scroll/internal/config"
	"github.com/ivlev/video2scroll/internal/frame"
)

type Manifest struct {
	Version  string         `yaml:"version"`
	Source   string         `yaml:"source"`
	Duration float64        `yaml:"duration"`
	Options  config.Options `yaml:"options"`
	Frames   []FrameInfo    `yaml:"frames"`
}

type FrameInfo struct {
	Index       int     `yaml:"index"`
	Time        float64 `yaml:"time"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Placeholder bool    `yaml:"placeholder,omitempty"`
}

// Build assembles a manifest from a finished frame set.
func Build(sourcePath string, duration float64, opts config.Options, set frame.Set) *Manifest {
	m := &Manifest{
		Version:  "1.0",
		Source:   sourcePath,
		Duration: duration,
		Options:  opts,
		Frames:   make([]FrameInfo, 0, set.Len()),
	}
	for i, f := range set {
		m.Frames = append(m.Frames, FrameInfo{
			Index:       i,
			Time:        f.Time,
			Width:       f.Width,
			Height:      f.Height,
			Placeholder: f.Placeholder,
		})
	}
	return m
}

// Write stores a manifest as a YAML file.
func Write(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads a manifest from a YAML file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
