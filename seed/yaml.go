package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// File is the YAML seed document.
type File struct {
	Name   string   `yaml:"name"`
	Routes []Record `yaml:"routes"`
}

// ParseYAML decodes a seed document, rejecting unknown fields.
func ParseYAML(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("seed: decode yaml: %w", err)
	}
	return f, nil
}

// YAMLFile reads routes from a file on disk.
type YAMLFile struct {
	Path string
}

// Name implements Source.
func (y YAMLFile) Name() string { return "yaml:" + y.Path }

// Load implements Source.
func (y YAMLFile) Load(_ context.Context) ([]Record, error) {
	fh, err := os.Open(y.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := ParseYAML(fh)
	if err != nil {
		return nil, err
	}
	return f.Routes, nil
}

type sample struct{}

// Sample returns the embedded network of 64 routes between US cities.
func Sample() Source { return sample{} }

func (sample) Name() string { return "sample" }

func (sample) Load(_ context.Context) ([]Record, error) {
	f, err := ParseYAML(bytes.NewReader(sampleYAML))
	if err != nil {
		return nil, err
	}
	return f.Routes, nil
}
