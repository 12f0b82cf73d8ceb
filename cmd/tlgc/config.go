package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type fileConfig struct {
	Format    string           `toml:"format"`
	Verbose   bool             `toml:"verbose"`
	Constants map[string]int64 `toml:"constants"`
}

type config struct {
	format    string
	verbose   bool
	constants map[string]int64
}

func loadConfig(path string) (config, error) {
	var cfg config

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, errors.Wrap(err, "load tlgc config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return config{}, errors.Errorf("load tlgc config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("format") {
		cfg.format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("verbose") {
		cfg.verbose = raw.Verbose
	}
	if meta.IsDefined("constants") {
		cfg.constants = raw.Constants
	}
	return cfg, nil
}
