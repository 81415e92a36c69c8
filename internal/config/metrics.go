package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// MetricsConfig controls the optional Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

func (c MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("missing Prometheus listen address")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid Prometheus listen address: %w", err)
	}
	return nil
}

func LoadMetricsConfigFromCLI() MetricsConfig {
	return MetricsConfig{
		Enabled: viper.GetBool("enable-prometheus"),
		Addr:    viper.GetString("prometheus-addr"),
	}
}
