package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors the command line flags; values present in the file
// override the flags.
type Config struct {
	Message    string `yaml:"message"`
	SPI        string `yaml:"spi"` // e.g. /dev/spidev0.0, empty for default
	Modules    int    `yaml:"modules"`
	Intensity  int    `yaml:"intensity"`
	IntervalMs int    `yaml:"interval_ms"`
	Step       int    `yaml:"step"`
	Loop       bool   `yaml:"loop"`
	Repeats    int    `yaml:"repeats"`
	Rotate     int    `yaml:"rotate"`
	Serpentine int    `yaml:"serpentine"` // run length, 0 for straight cabling
	Sim        bool   `yaml:"sim"`
}

func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
