package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads an optional discharge.yaml providing default directories
// (conf_dir, rule_dir, send_case_dir) and max_degree. Flags always win over
// the config file; a missing file is not an error.
func ReadConfig() error {
	viper.SetConfigName("discharge")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
