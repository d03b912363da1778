package study

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/filmina/pkg/errors"
)

// Format is a study file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported study file %q (want .yaml, .yml or .json)", path)
}

// Decode reads a study in format f.
func Decode(r io.Reader, f Format) (*Study, error) {
	var s Study
	var err error
	switch f {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&s)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&s)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported study format %q", f)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s study", f)
	}
	return &s, nil
}

// Encode writes s in format f.
func Encode(w io.Writer, s *Study, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported study format %q", f)
}

// LoadFile reads a study file, choosing the format by extension.
func LoadFile(path string) (*Study, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "study file %s", path)
		}
		return nil, err
	}
	return Decode(bytes.NewReader(data), f)
}

// SaveFile writes s to path, choosing the format by extension.
func SaveFile(path string, s *Study) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s, f); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
