// Package config defines the data structures related to application
// configuration and includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"os"

	"github.com/dealdesk/dealpilot/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for dealpilot.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Rules   RulesConfig   `yaml:"rules,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`

	adminPasscode string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// RulesConfig locates the persisted lender rule set.
type RulesConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds the HTTP API listen parameters.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
}

// LoadConfiguration loads the YAML-formatted configuration at configPath.
// A missing file yields the defaults rather than an error so the tool runs
// without any setup. The admin pass-code is resolved from the
// DEALPILOT_ADMIN_PASSCODE environment variable with a fixed fallback; it
// never lives in the config file.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetDefault("rules.path", constants.DefaultRulesFile)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("admin.passcode", constants.DefaultAdminPasscode)

	v.AutomaticEnv()
	if err := v.BindEnv("admin.passcode", constants.AdminPasscodeEnv); err != nil {
		return nil, fmt.Errorf("failed to bind admin pass-code env, %s", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")

		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.adminPasscode = v.GetString("admin.passcode")
	if configuration.Rules.Path == "" {
		configuration.Rules.Path = constants.DefaultRulesFile
	}
	if configuration.Server.Address == "" {
		configuration.Server.Address = constants.DefaultServerAddress
	}

	return &configuration, nil
}

// AdminPasscode returns the resolved admin pass-code.
func (c *Configuration) AdminPasscode() string {
	return c.adminPasscode
}
