// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config types define the configuration structures used throughout
// sirseer-linear. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for sirseer-linear.
type Config struct {
	Linear    LinearConfig    `yaml:"linear"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LinearConfig contains API connection settings.
type LinearConfig struct {
	GraphQLEndpoint string        `yaml:"graphql_endpoint" validate:"required,url"`
	TokenEnv        string        `yaml:"token_env" validate:"required"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	// ErrorReport selects which GraphQL error is surfaced when a response
	// carries several: last, first or all.
	ErrorReport string `yaml:"error_report" validate:"oneof=last first all"`
}

// DefaultsConfig contains default settings for list commands. Command-line
// flags override them.
type DefaultsConfig struct {
	PageSize     int    `yaml:"page_size" validate:"gt=0,lte=250"`
	Limit        int    `yaml:"limit" validate:"gte=0"`
	Sort         string `yaml:"sort" validate:"oneof=created updated"`
	MaxPages     int    `yaml:"max_pages" validate:"gte=0"`
	OutputFormat string `yaml:"output_format" validate:"oneof=table json ndjson"`
	FullWidth    bool   `yaml:"full_width"`
	TitleWidth   int    `yaml:"title_width" validate:"gt=0"`
}

// LoggingConfig controls the diagnostic logger. Logs go to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// TelemetryConfig controls request tracing. Tracing is disabled when
// OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name" validate:"required"`
}

// DefaultConfig returns a Config with sensible defaults for Linear's public
// API.
func DefaultConfig() *Config {
	return &Config{
		Linear: LinearConfig{
			GraphQLEndpoint: "https://api.linear.app/graphql",
			TokenEnv:        "LINEAR_API_KEY",
			Timeout:         60 * time.Second,
			ErrorReport:     "last",
		},
		Defaults: DefaultsConfig{
			PageSize:     100,
			Limit:        10,
			Sort:         "created",
			MaxPages:     1000,
			OutputFormat: "table",
			TitleWidth:   60,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "sirseer-linear",
		},
	}
}
