package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"fitscore/internal/structures"
)

const AppName = "fitscore"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("store.driver", "memory")
	v.SetDefault("cache.ttl", "60s")
	v.SetDefault("compliance.timezone", "UTC")

	_ = v.BindEnv("logger.level", "FITSCORE_LOG_LEVEL")
	_ = v.BindEnv("store.driver", "FITSCORE_STORE_DRIVER")
	_ = v.BindEnv("store.dsn", "FITSCORE_STORE_DSN")
	_ = v.BindEnv("persistence.saveInterval", "FITSCORE_SAVE_INTERVAL")
	_ = v.BindEnv("cache.enabled", "FITSCORE_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "FITSCORE_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
