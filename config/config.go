package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LEDGER"

var (
	//go:embed default-config.yml
	configFile string

	validate = validator.New()
)

// LedgerConfig is the node configuration. Values come from the embedded
// defaults, an optional config file, LEDGER_* environment variables and
// command line flags, in increasing order of precedence.
type LedgerConfig struct {
	ConfigFile string        `validate:"omitempty,file" mapstructure:"config-file"`
	LogLevel   zerolog.Level `mapstructure:"log-level"`
	Storage    StorageConfig `mapstructure:"storage"`
	Engine     EngineConfig  `mapstructure:"engine"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
}

type StorageConfig struct {
	Backend         string `validate:"oneof=badger pebble" mapstructure:"backend"`
	Dir             string `validate:"required" mapstructure:"dir"`
	CacheSize       uint   `validate:"gt=0" mapstructure:"cache-size"`
	BlockCacheMB    uint   `validate:"gt=0" mapstructure:"block-cache-mb"`
	ConflictRetries uint64 `validate:"gt=0" mapstructure:"conflict-retries"`
}

type EngineConfig struct {
	AdmissionWorkers int `validate:"gte=1" mapstructure:"admission-workers"`
}

type MetricsConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Address         string        `validate:"required_if=Enabled true" mapstructure:"address"`
	ShutdownTimeout time.Duration `validate:"gt=0" mapstructure:"shutdown-timeout"`
}

// Validate checks the config against its struct tags.
func (c *LedgerConfig) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("invalid config: %s", validationErrs.Error())
		}
		return fmt.Errorf("failed to validate config: %w", err)
	}
	return nil
}

// flagKeys maps command line flags onto their config key.
var flagKeys = map[string]string{
	"config":    "config-file",
	"log-level": "log-level",
	"data-dir":  "storage.dir",
	"backend":   "storage.backend",
	"workers":   "engine.admission-workers",
	"metrics":   "metrics.address",
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() (*LedgerConfig, error) {
	return Load(nil)
}

// Load builds the config. Flags set on the command line override everything
// else; flags not in flags are ignored.
func Load(flags *pflag.FlagSet) (*LedgerConfig, error) {
	conf := viper.New()
	conf.SetConfigType("yaml")
	err := conf.ReadConfig(bytes.NewBufferString(configFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	conf.SetEnvPrefix(envPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	conf.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			err := conf.BindPFlag(key, flag)
			if err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	path := conf.GetString("config-file")
	if path != "" {
		conf.SetConfigFile(path)
		err := conf.MergeInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var c LedgerConfig
	err = conf.Unmarshal(&c, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			stringToLevelHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func stringToLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(zerolog.Level(0)) {
			return data, nil
		}
		level, err := zerolog.ParseLevel(strings.ToLower(data.(string)))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", data, err)
		}
		return level, nil
	}
}
