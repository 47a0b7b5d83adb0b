/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"bytes"
	"embed"
	"strings"
	"time"

	"github.com/hyperledger-labs/zk-interval/interval/services/logging"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable overriding a configuration key.
// ZKINTERVAL_SERVER_ADDRESS overrides server.address.
const EnvPrefix = "ZKINTERVAL"

//go:embed resources/core.yaml
var embeddedFiles embed.FS

type Configuration struct {
	Logging logging.Config `mapstructure:"logging"`
	Server  Server         `mapstructure:"server"`
	Storage Storage        `mapstructure:"storage"`
	Cache   Cache          `mapstructure:"cache"`
	Metrics Metrics        `mapstructure:"metrics"`
}

type Server struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
}

type Storage struct {
	Enabled      bool   `mapstructure:"enabled"`
	Driver       string `mapstructure:"driver"`
	DataSource   string `mapstructure:"dataSource"`
	TablePrefix  string `mapstructure:"tablePrefix"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type Cache struct {
	Enabled     bool  `mapstructure:"enabled"`
	NumCounters int64 `mapstructure:"numCounters"`
	MaxCost     int64 `mapstructure:"maxCost"`
	BufferItems int64 `mapstructure:"bufferItems"`
}

type Metrics struct {
	Provider  string `mapstructure:"provider"`
	Namespace string `mapstructure:"namespace"`
}

// Load reads the embedded defaults, merges configFile on top when set and applies environment overrides.
func Load(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults, err := embeddedFiles.ReadFile("resources/core.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "couldn't find the default config file 'core.yaml'")
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, errors.Wrap(err, "couldn't read the default config file 'core.yaml'")
	}

	if len(configFile) != 0 {
		v.SetConfigFile(configFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrapf(err, "couldn't read the config file '%s'", configFile)
		}
	}

	c := &Configuration{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal the configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Configuration) Validate() error {
	switch c.Storage.Driver {
	case SQLite, Postgres:
	default:
		return errors.Errorf("unsupported storage driver [%s]", c.Storage.Driver)
	}
	switch c.Metrics.Provider {
	case PrometheusProvider, DisabledProvider:
	default:
		return errors.Errorf("unsupported metrics provider [%s]", c.Metrics.Provider)
	}
	if len(c.Server.Address) == 0 {
		return errors.New("server address must be set")
	}
	return nil
}

const (
	SQLite   = "sqlite"
	Postgres = "postgres"

	PrometheusProvider = "prometheus"
	DisabledProvider   = "disabled"
)
