package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr     string
	LogLevel string
}

// LoadServerConfig reads the HTTP server settings from config.yaml and
// the LITTLELIBRARY_SERVER_* environment.
func LoadServerConfig() ServerConfig {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("LITTLELIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	return ServerConfig{
		Addr:     v.GetString("server.addr"),
		LogLevel: v.GetString("server.log_level"),
	}
}
