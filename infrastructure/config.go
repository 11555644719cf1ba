// Package infrastructure reads the process configuration from the
// environment.
package infrastructure

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type (
	//ServiceConfig describes how to receive inbound communication
	ServiceConfig struct {
		Protocol      string `default:"http"`
		SslKeyFile    string `split_words:"true" default:""`
		SslCertFile   string `split_words:"true" default:""`
		ListenAddress string `split_words:"true" required:"true"`
		LogLevel      string `split_words:"true" default:"debug"`
	}

	// WorkflowConfig tunes the page state
	WorkflowConfig struct {
		// TimeUnit is the base delay of the send-link control
		TimeUnit       time.Duration `split_words:"true" default:"1s"`
		Locale         string        `default:"en"`
		LocalesPath    string        `split_words:"true" default:""`
		EventQueueSize int           `split_words:"true" default:"64"`
	}
)

// LoadDotEnv reads path into the environment when it exists. Variables
// already set win over the file.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	return nil
}

func ServiceConfigProvider() (ServiceConfig, error) {
	var config ServiceConfig
	err := envconfig.Process("service", &config)
	if err != nil {
		return ServiceConfig{}, err
	}
	if config.SslCertFile != "" && config.SslKeyFile == "" {
		return ServiceConfig{}, errors.New("SERVICE_SSL_KEY_FILE is required with SERVICE_SSL_CERT_FILE")
	}
	return config, nil
}

func WorkflowConfigProvider() (WorkflowConfig, error) {
	var config WorkflowConfig
	err := envconfig.Process("landing", &config)
	if err != nil {
		return WorkflowConfig{}, err
	}
	if config.TimeUnit <= 0 {
		return WorkflowConfig{}, errors.Errorf("LANDING_TIME_UNIT must be positive, got %s", config.TimeUnit)
	}
	return config, nil
}
