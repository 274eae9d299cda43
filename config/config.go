package config

import (
	"fmt"
	"strings"

	"heliumtx/blockchain"

	"github.com/spf13/viper"
)

type Config struct {
	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`
	RPC struct {
		Listen string `mapstructure:"listen"`
	} `mapstructure:"rpc"`
	Network string `mapstructure:"network"`
}

// NetType resolves the configured network name.
func (c *Config) NetType() (blockchain.NetType, error) {
	return blockchain.ParseNetType(c.Network)
}

// Load reads path (YAML) if given, then HELIUMTX_* environment overrides.
// An empty path skips the file and leaves the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("db.path", "heliumtx.db")
	v.SetDefault("rpc.listen", ":8082")
	v.SetDefault("network", "mainnet")

	v.SetEnvPrefix("heliumtx")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.NetType(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
