/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package config loads the insights service configuration from a YAML file,
// with environment variable overrides.
package config

import (
	"net/url"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	chartjsrenderer "github.com/insightsengine/insights/server/go/chartjs_renderer"
	"github.com/insightsengine/insights/server/go/color"
	echartsrenderer "github.com/insightsengine/insights/server/go/echarts_renderer"
)

// Environment variables overriding configuration fields.
const (
	PortEnv      = "INSIGHTS_PORT"
	DataPathEnv  = "INSIGHTS_DATA_PATH"
	AssetRootEnv = "INSIGHTS_ASSET_ROOT"
	DataURLEnv   = "INSIGHTS_DATA_URL"
)

// Config represents the service configuration.
type Config struct {
	// Port to serve dashboard clients on.
	Port int `yaml:"port"`
	// DataPath is the chart configuration document.
	DataPath string `yaml:"data_path"`
	// DataURL, if set, is the base URL the chart configuration document is
	// fetched from instead of DataPath.
	DataURL string `yaml:"data_url"`
	// AssetRoot holds static assets, including geography files beneath geo/.
	AssetRoot string `yaml:"asset_root"`
	// GeoCacheSize bounds the number of cached decoded geographies.
	GeoCacheSize    int    `yaml:"geo_cache_size"`
	DefaultRenderer string `yaml:"default_renderer"`
	// Theme maps CSS variables to colors.  Entries are merged over the
	// default theme.
	Theme map[string]string `yaml:"theme"`
}

// Default returns the default configuration.
func Default() Config {
	theme := make(map[string]string, len(color.DefaultTheme))
	for k, v := range color.DefaultTheme {
		theme[k] = v
	}
	return Config{
		Port:            7410,
		DataPath:        "chart-data-reference.json",
		AssetRoot:       "assets",
		GeoCacheSize:    4,
		DefaultRenderer: echartsrenderer.Name,
		Theme:           theme,
	}
}

// Load reads configuration from the file at path, if path is non-empty,
// applies environment overrides, and validates the result.  Fields absent
// from the file keep their defaults.
func Load(path string) (cfg Config, err error) {
	cfg = Default()
	if path != "" {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to read config file: %s", path)
			return cfg, err
		}
		var file Config
		err = yaml.Unmarshal(data, &file)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
		cfg.merge(file)
	}
	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}
	return cfg, nil
}

// merge overwrites the receiver's fields with those set in other.
func (c *Config) merge(other Config) {
	if other.Port != 0 {
		c.Port = other.Port
	}
	if other.DataPath != "" {
		c.DataPath = other.DataPath
	}
	if other.DataURL != "" {
		c.DataURL = other.DataURL
	}
	if other.AssetRoot != "" {
		c.AssetRoot = other.AssetRoot
	}
	if other.GeoCacheSize != 0 {
		c.GeoCacheSize = other.GeoCacheSize
	}
	if other.DefaultRenderer != "" {
		c.DefaultRenderer = other.DefaultRenderer
	}
	for k, v := range other.Theme {
		c.Theme[k] = v
	}
}

func (c *Config) applyEnv() error {
	if port := os.Getenv(PortEnv); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.Wrapf(err, "bad %s", PortEnv)
		}
		c.Port = p
	}
	if dataPath := os.Getenv(DataPathEnv); dataPath != "" {
		c.DataPath = dataPath
	}
	if dataURL := os.Getenv(DataURLEnv); dataURL != "" {
		c.DataURL = dataURL
	}
	if assetRoot := os.Getenv(AssetRootEnv); assetRoot != "" {
		c.AssetRoot = assetRoot
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d out of range", c.Port)
	}
	if c.DataURL != "" {
		u, err := url.Parse(c.DataURL)
		if err != nil {
			return errors.Wrap(err, "bad data_url")
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.Errorf("data_url %q must be http or https", c.DataURL)
		}
	} else if c.DataPath == "" {
		return errors.New("data_path or data_url is required")
	}
	if c.GeoCacheSize <= 0 {
		return errors.Errorf("geo_cache_size must be positive, got %d", c.GeoCacheSize)
	}
	switch c.DefaultRenderer {
	case echartsrenderer.Name, chartjsrenderer.Name:
	default:
		return errors.Errorf("unknown default_renderer %q", c.DefaultRenderer)
	}
	return nil
}
