// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/viper"

	"github.com/sciportal/portal-datastore/pkg/sanity"
)

// envPrefix is the prefix for environment overrides, e.g.
// DATASTORE_IRODS_HOST or DATASTORE_HTTP_LISTEN.
const envPrefix = "DATASTORE"

// Config holds the global configuration for the application.
type Config struct {
	Log   logx.LoggingConfig `yaml:"log" json:"log"`
	HTTP  HTTPConfig         `yaml:"http" json:"http"`
	Irods IrodsConfig        `yaml:"irods" json:"irods"`
}

// HTTPConfig represents the `http` section.
type HTTPConfig struct {
	Listen string `yaml:"listen" json:"listen"`
}

// IrodsConfig represents the `irods` section: the single long-lived
// backend connection this process holds.
type IrodsConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	User     string `yaml:"user" json:"user"`
	Password string `yaml:"password" json:"password"`
	Zone     string `yaml:"zone" json:"zone"`
}

// Validate validates all configuration fields to ensure they are safe to
// hand to the backend client.
func (c Config) Validate() error {
	if c.HTTP.Listen == "" {
		return errorx.IllegalArgument.New("http.listen must not be empty")
	}
	return c.Irods.Validate()
}

// Validate validates the backend connection settings.
func (c *IrodsConfig) Validate() error {
	if c.Host == "" {
		return errorx.IllegalArgument.New("irods.host must not be empty")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errorx.IllegalArgument.New("irods.port must be a valid port, got %d", c.Port)
	}

	if err := sanity.ValidateIdentifier(c.User); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid irods.user: %q", c.User)
	}

	if err := sanity.ValidateIdentifier(c.Zone); err != nil {
		return errorx.IllegalArgument.Wrap(err, "invalid irods.zone: %q", c.Zone)
	}

	if c.Password == "" {
		return errorx.IllegalArgument.New("irods.password must not be empty")
	}

	return nil
}

var globalConfig = defaultConfig()

func defaultConfig() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		HTTP: HTTPConfig{
			Listen: ":8080",
		},
		Irods: IrodsConfig{
			Port: 1247,
		},
	}
}

// Initialize loads the configuration from the optional file path, then
// applies DATASTORE_* environment overrides on top.
func Initialize(path string) error {
	globalConfig = defaultConfig()
	viper.Reset()
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Register every key so environment-only deployments resolve without a
	// config file.
	viper.SetDefault("log.level", globalConfig.Log.Level)
	viper.SetDefault("http.listen", globalConfig.HTTP.Listen)
	viper.SetDefault("irods.host", globalConfig.Irods.Host)
	viper.SetDefault("irods.port", globalConfig.Irods.Port)
	viper.SetDefault("irods.user", globalConfig.Irods.User)
	viper.SetDefault("irods.password", globalConfig.Irods.Password)
	viper.SetDefault("irods.zone", globalConfig.Irods.Zone)

	if path != "" {
		viper.SetConfigFile(path)

		err := viper.ReadInConfig()
		if err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	return nil
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

// Set replaces the loaded configuration; for tests.
func Set(c *Config) {
	globalConfig = *c
}
