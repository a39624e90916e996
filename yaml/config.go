// Package yaml loads vivian configuration files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/leocbehe/vivian"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a configuration file. Options missing from the file keep
// their defaults. Returns ENOTFOUND if the file does not exist and EINVALID
// if it cannot be parsed or fails validation.
func LoadConfig(path string) (vivian.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return vivian.Config{}, vivian.Errorf(vivian.ENOTFOUND, "config file %s not found", path)
	}
	if err != nil {
		return vivian.Config{}, vivian.WrapError(vivian.EIO, err, "cannot read config file %s", path)
	}
	return DecodeConfig(bytes.NewReader(data))
}

// DecodeConfig decodes a configuration document from r over the defaults.
// Unknown keys are rejected.
func DecodeConfig(r io.Reader) (vivian.Config, error) {
	cfg := vivian.DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return vivian.Config{}, vivian.WrapError(vivian.EINVALID, err, "invalid config")
	}

	if err := cfg.Validate(); err != nil {
		return vivian.Config{}, err
	}
	return cfg, nil
}

// EncodeConfig writes cfg as YAML to w.
func EncodeConfig(w io.Writer, cfg vivian.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return vivian.WrapError(vivian.EINTERNAL, err, "cannot encode config")
	}
	return enc.Close()
}
