// Package config holds the CLI and demo-server configuration, loaded
// from config files, environment variables and defaults in that order.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var v *viper.Viper

func init() {
	v = viper.New()

	// Set default values
	v.SetDefault("provider.type", "rest")
	v.SetDefault("api.url", "http://localhost:28090")
	v.SetDefault("graphql.endpoint", "http://localhost:28090/graphql")
	v.SetDefault("live.url", "ws://localhost:28090/live")
	v.SetDefault("panel.file", "panel.yml")
	v.SetDefault("server.port", 28090)

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("provider.type", "FILACT_PROVIDER")
	v.BindEnv("api.url", "FILACT_API_URL")
	v.BindEnv("graphql.endpoint", "FILACT_GRAPHQL_ENDPOINT")
	v.BindEnv("live.url", "FILACT_LIVE_URL")
	v.BindEnv("panel.file", "FILACT_PANEL_FILE")
	v.BindEnv("server.port", "FILACT_PORT")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	configPaths := []string{
		".",
		"$HOME/.filact",
		"/etc/filact",
	}
	for _, path := range configPaths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
		// Config file not found; defaults apply.
	}
}

// GetProviderType returns "rest" or "graphql".
func GetProviderType() string {
	return v.GetString("provider.type")
}

// GetAPIURL returns the REST backend base URL.
func GetAPIURL() string {
	return v.GetString("api.url")
}

// GetGraphQLEndpoint returns the GraphQL endpoint URL.
func GetGraphQLEndpoint() string {
	return v.GetString("graphql.endpoint")
}

// GetLiveURL returns the websocket live-feed URL.
func GetLiveURL() string {
	return v.GetString("live.url")
}

// GetHeaders returns headers attached to every provider request.
func GetHeaders() map[string]string {
	return v.GetStringMapString("headers")
}

// GetPanelFile returns the path of the panel definition file.
func GetPanelFile() string {
	return v.GetString("panel.file")
}

// GetServerPort returns the demo server port.
func GetServerPort() int {
	return v.GetInt("server.port")
}
