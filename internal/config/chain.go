package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ChainConfig carries the ledger parameters shared by the mining commands.
type ChainConfig struct {
	Difficulty int
	Miner      string
}

func (c ChainConfig) Validate() error {
	if c.Difficulty < 0 {
		return fmt.Errorf("difficulty must be non-negative, got %d", c.Difficulty)
	}
	if c.Difficulty > 64 {
		return fmt.Errorf("difficulty %d exceeds the hash length of 64 hex characters", c.Difficulty)
	}
	if c.Miner == "" {
		return fmt.Errorf("missing miner address")
	}
	return nil
}

func LoadChainConfigFromCLI() ChainConfig {
	return ChainConfig{
		Difficulty: viper.GetInt("difficulty"),
		Miner:      viper.GetString("miner"),
	}
}
