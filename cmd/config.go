package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/umlgarden/umlgarden/internal/logger"
	"github.com/umlgarden/umlgarden/internal/plantuml"
	"github.com/umlgarden/umlgarden/internal/uml"
	"github.com/umlgarden/umlgarden/types"
)

const (
	configName = ".umlgarden"
	configType = "yaml"
	envPrefix  = "UMLGARDEN"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	return validate.Struct(config)
}

// setDefaults registers the default value of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "plantumls")
	v.SetDefault("output.file", "uml-garden.puml")
	v.SetDefault("render.enabled", true)
	v.SetDefault("render.command", plantuml.DefaultCommand)
	v.SetDefault("render.args", []string{})
	v.SetDefault("render.timeout", plantuml.DefaultTimeout)
	v.SetDefault("scan.rootObject", uml.DefaultRootObject)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.dir", logger.DefaultDir)
	v.SetDefault("watch.debounce", defaultDebounce)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	if err := loadConfig(viper.GetViper()); err != nil {
		HandleFatalError("Configuration error: "+err.Error(), err)
	}
	logger.SetBasePath(GlobalAppConfig.Log.Dir)
	logger.SetVersion(version)
}

// loadConfig resolves configuration from .env, environment, config file and
// defaults, then unmarshals and validates it into GlobalAppConfig.
func loadConfig(v *viper.Viper) error {
	// It's okay if .env file doesn't exist.
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix) // e.g., UMLGARDEN_OUTPUT_DIR
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfgFileFlag := v.GetString("config")
	if cfgFileFlag != "" {
		v.SetConfigFile(cfgFileFlag)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
	}

	if err := v.ReadInConfig(); err == nil {
		if v.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		isNotFound := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		switch {
		case isNotFound && cfgFileFlag != "":
			// A config file given explicitly must exist.
			return fmt.Errorf("config file not found: %s", cfgFileFlag)
		case isNotFound:
			if v.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		default:
			return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validateAppConfig(&cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	GlobalAppConfig = cfg
	return nil
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
