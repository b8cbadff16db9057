package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Storage struct {
	DataDir        string `mapstructure:"dataDir" yaml:"dataDir" validate:"required|unixPath"`
	SaveFile       string `mapstructure:"saveFile" yaml:"saveFile" validate:"required"`
	LegacySaveFile string `mapstructure:"legacySaveFile" yaml:"legacySaveFile" validate:"required"`
	SessionFile    string `mapstructure:"sessionFile" yaml:"sessionFile" validate:"required"`
}

type Backup struct {
	Method       string `mapstructure:"method" yaml:"method" validate:"required|in:deflate,zstd"`
	Level        int    `mapstructure:"level" yaml:"level" validate:"min:-2|max:9"`
	Prefix       string `mapstructure:"prefix" yaml:"prefix" validate:"required"`
	ManualSuffix string `mapstructure:"manualSuffix" yaml:"manualSuffix" validate:"required"`
	Extension    string `mapstructure:"extension" yaml:"extension" validate:"required"`
}

type Encryption struct {
	NonceMode    string `mapstructure:"nonceMode" yaml:"nonceMode" validate:"required|in:random,fixed"`
	MinKeyLength int    `mapstructure:"minKeyLength" yaml:"minKeyLength" validate:"required|min:1"`
	MaxKeyLength int    `mapstructure:"maxKeyLength" yaml:"maxKeyLength" validate:"required|min:1|max:32"`
}

type StatisticConfig struct {
	StreakStartMode string `mapstructure:"streakStartMode" yaml:"streakStartMode" validate:"required|in:reference,loop"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `mapstructure:"mode" yaml:"mode" validate:"required|uint"`
	Dir   string `mapstructure:"dir" yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Size    int  `mapstructure:"size" yaml:"size"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Textfile string `mapstructure:"textfile" yaml:"textfile"`
}

type Config struct {
	AppName    string          `mapstructure:"-" yaml:"-"`
	Debug      bool            `mapstructure:"-" yaml:"-"`
	Path       string          `mapstructure:"-" yaml:"-"`
	Storage    Storage         `mapstructure:"storage" yaml:"storage"`
	Backup     Backup          `mapstructure:"backup" yaml:"backup"`
	Encryption Encryption      `mapstructure:"encryption" yaml:"encryption"`
	Statistic  StatisticConfig `mapstructure:"statistic" yaml:"statistic"`
	Logger     LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Cache      CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Metrics    MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}
