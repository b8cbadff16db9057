package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"moodchart/internal/structures"
)

const AppName = "MoodChart"

// DefaultConfig returns the configuration used when a key is absent from the config file.
func DefaultConfig() *structures.Config {
	return &structures.Config{
		AppName: AppName,
		Storage: structures.Storage{
			SaveFile:       "happy_chart_save.ser",
			LegacySaveFile: "save.ser",
			SessionFile:    "happy_chart_last_session.ser",
		},
		Backup: structures.Backup{
			Method:       "deflate",
			Level:        -1,
			Prefix:       "happy_chart_backup_",
			ManualSuffix: "_manual",
			Extension:    "zip",
		},
		Encryption: structures.Encryption{
			NonceMode:    "random",
			MinKeyLength: 4,
			MaxKeyLength: 32,
		},
		Statistic: structures.StatisticConfig{
			StreakStartMode: "reference",
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
		},
		Cache: structures.CacheConfig{
			Enabled: true,
			Size:    1,
		},
	}
}

// DefaultDataDir resolves ~/.moodchart.
func DefaultDataDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".moodchart"), nil
}

func setDefaults(v *viper.Viper, def *structures.Config) {
	v.SetDefault("storage.saveFile", def.Storage.SaveFile)
	v.SetDefault("storage.legacySaveFile", def.Storage.LegacySaveFile)
	v.SetDefault("storage.sessionFile", def.Storage.SessionFile)
	v.SetDefault("backup.method", def.Backup.Method)
	v.SetDefault("backup.level", def.Backup.Level)
	v.SetDefault("backup.prefix", def.Backup.Prefix)
	v.SetDefault("backup.manualSuffix", def.Backup.ManualSuffix)
	v.SetDefault("backup.extension", def.Backup.Extension)
	v.SetDefault("encryption.nonceMode", def.Encryption.NonceMode)
	v.SetDefault("encryption.minKeyLength", def.Encryption.MinKeyLength)
	v.SetDefault("encryption.maxKeyLength", def.Encryption.MaxKeyLength)
	v.SetDefault("statistic.streakStartMode", def.Statistic.StreakStartMode)
	v.SetDefault("logger.level", def.Logger.Level)
	v.SetDefault("logger.mode", def.Logger.Mode)
	v.SetDefault("cache.enabled", def.Cache.Enabled)
	v.SetDefault("cache.size", def.Cache.Size)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v, DefaultConfig())

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.BindEnv("logger.level", "MOODCHART_LOG_LEVEL")
	v.BindEnv("storage.dataDir", "MOODCHART_DATA_DIR")
	v.BindEnv("backup.method", "MOODCHART_BACKUP_METHOD")
	v.BindEnv("cache.enabled", "MOODCHART_CACHE_ENABLED")
	v.BindEnv("encryption.nonceMode", "MOODCHART_NONCE_MODE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	if conf.Storage.DataDir == "" {
		if conf.Storage.DataDir, err = DefaultDataDir(); err != nil {
			return nil, fmt.Errorf("unable to resolve data dir: %w", err)
		}
	}
	if conf.Logger.Dir == "" {
		conf.Logger.Dir = conf.Storage.DataDir
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
