package util

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig. reads data/config.yaml, environment variables override file values (search.max_iterations -> SEARCH_MAX_ITERATIONS).
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
