package main

import (
	"fmt"

	"github.com/spf13/viper"

	fastmcp "github.com/liudonghua123/fastmcp-go"
)

type demoConfig struct {
	Transport    string `mapstructure:"transport"`
	Addr         string `mapstructure:"addr"`
	Endpoint     string `mapstructure:"endpoint"`
	JSONResponse bool   `mapstructure:"jsonResponse"`
}

// loadConfig merges, lowest to highest: built-in defaults, the optional
// yaml config file, FASTMCP_-prefixed environment variables, and command
// line flags.
func loadConfig(opts *serveOptions) (*demoConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("transport", string(fastmcp.TransportStdio))
	v.SetDefault("addr", ":8080")
	v.SetEnvPrefix("FASTMCP")
	v.AutomaticEnv()

	if opts.configPath != "" {
		v.SetConfigFile(opts.configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.configPath, err)
		}
	}
	if opts.transport != "" {
		v.Set("transport", opts.transport)
	}
	if opts.addr != "" {
		v.Set("addr", opts.addr)
	}

	var cfg demoConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *demoConfig) transportConfig() fastmcp.TransportConfig {
	switch fastmcp.TransportKind(c.Transport) {
	case fastmcp.TransportSSE:
		return fastmcp.TransportConfig{
			Kind: fastmcp.TransportSSE,
			SSE:  &fastmcp.SSEConfig{Addr: c.Addr, Endpoint: c.Endpoint},
		}
	case fastmcp.TransportStreamableHTTP:
		return fastmcp.TransportConfig{
			Kind: fastmcp.TransportStreamableHTTP,
			HTTP: &fastmcp.StreamableHTTPConfig{
				Addr:         c.Addr,
				Endpoint:     c.Endpoint,
				JSONResponse: c.JSONResponse,
			},
		}
	default:
		return fastmcp.TransportConfig{Kind: fastmcp.TransportKind(c.Transport)}
	}
}
