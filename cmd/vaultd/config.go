package main

import (
	"io"
	"os"
	"text/tabwriter"

	"github.com/iov-one/vault/errors"
	"github.com/kelseyhightower/envconfig"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	envVarPrefix = "vault"

	usageListFormat = `vaultd is configured via environment vars. The following environment variables can be used:
{{range .}}
{{usage_key .}}
  description: {{usage_description .}}
  type:        {{usage_type .}}
  default:     {{usage_default .}}
{{end}}
`
)

// Config is the runtime configuration of vaultd.
type Config struct {
	Home     string `default:".vaultd" desc:"Directory holding the wallet database"`
	LogLevel string `split_words:"true" default:"info" desc:"Lowest level of logged messages: debug, info, error or none"`
	Debug    bool   `default:"false" desc:"Print full error stack traces"`
	Merkle   bool   `default:"false" desc:"Keep the state in a versioned merkle tree"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &c, nil
}

// OutputUsage prints the description of all environment variables.
func (c *Config) OutputUsage(w io.Writer) {
	tabs := tabwriter.NewWriter(w, 1, 0, 4, ' ', 0)
	_ = envconfig.Usagef(envVarPrefix, c, tabs, usageListFormat)
	_ = tabs.Flush()
}

// Logger returns a logger writing to stderr, filtered by configured level.
func (c *Config) Logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, opt), nil
}
