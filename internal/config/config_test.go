// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitialize_Defaults(t *testing.T) {
	req := require.New(t)

	req.NoError(Initialize(""))

	cfg := Get()
	req.Equal(":8080", cfg.HTTP.Listen)
	req.Equal(1247, cfg.Irods.Port)
	req.Equal("Info", cfg.Log.Level)
}

func TestInitialize_FromFile(t *testing.T) {
	req := require.New(t)

	path := writeConfigFile(t, `
http:
  listen: ":9090"
irods:
  host: irods.example.org
  port: 2247
  user: rods
  password: secret
  zone: tempZone
`)

	req.NoError(Initialize(path))

	cfg := Get()
	req.Equal(":9090", cfg.HTTP.Listen)
	req.Equal("irods.example.org", cfg.Irods.Host)
	req.Equal(2247, cfg.Irods.Port)
	req.Equal("rods", cfg.Irods.User)
	req.Equal("tempZone", cfg.Irods.Zone)
	req.NoError(cfg.Validate())
}

func TestInitialize_MissingFile(t *testing.T) {
	req := require.New(t)

	err := Initialize(filepath.Join(t.TempDir(), "nope.yaml"))
	req.Error(err)
	req.True(errorx.IsOfType(err, NotFoundError))
}

func TestInitialize_EnvOverride(t *testing.T) {
	req := require.New(t)

	t.Setenv("DATASTORE_IRODS_HOST", "env.example.org")
	t.Setenv("DATASTORE_HTTP_LISTEN", ":7070")

	req.NoError(Initialize(""))

	cfg := Get()
	req.Equal("env.example.org", cfg.Irods.Host)
	req.Equal(":7070", cfg.HTTP.Listen)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		HTTP: HTTPConfig{Listen: ":8080"},
		Irods: IrodsConfig{
			Host:     "irods.example.org",
			Port:     1247,
			User:     "rods",
			Password: "secret",
			Zone:     "tempZone",
		},
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		errText string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty listen",
			mutate:  func(c *Config) { c.HTTP.Listen = "" },
			errText: "http.listen",
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Irods.Host = "" },
			errText: "irods.host",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Irods.Port = 70000 },
			errText: "irods.port",
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Irods.Port = 0 },
			errText: "irods.port",
		},
		{
			name:    "bad user",
			mutate:  func(c *Config) { c.Irods.User = "rods;drop" },
			errText: "irods.user",
		},
		{
			name:    "bad zone",
			mutate:  func(c *Config) { c.Irods.Zone = "temp zone" },
			errText: "irods.zone",
		},
		{
			name:    "empty password",
			mutate:  func(c *Config) { c.Irods.Password = "" },
			errText: "irods.password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			cfg := valid
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.errText == "" {
				req.NoError(err)
			} else {
				req.Error(err)
				req.Contains(err.Error(), tc.errText)
			}
		})
	}
}
