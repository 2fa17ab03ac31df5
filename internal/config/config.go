package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                  string        `mapstructure:"ENV"`
	Port                 string        `mapstructure:"PORT"`
	SheetURL             string        `mapstructure:"SHEET_URL"`
	CacheTTL             time.Duration `mapstructure:"CACHE_TTL"`
	RefreshInterval      time.Duration `mapstructure:"REFRESH_INTERVAL"`
	Timezone             string        `mapstructure:"TIMEZONE"`
	WorkdayStartHour     int           `mapstructure:"WORKDAY_START_HOUR"`
	WorkdayEndHour       int           `mapstructure:"WORKDAY_END_HOUR"`
	AuthCredentials      string        `mapstructure:"AUTH_CREDENTIALS"`
	DeltaMissingBaseline string        `mapstructure:"DELTA_MISSING_BASELINE"`
	CORSAllowed          string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout       time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("CACHE_TTL", "120s")
	v.SetDefault("REFRESH_INTERVAL", "120s")
	v.SetDefault("TIMEZONE", "America/New_York")
	v.SetDefault("WORKDAY_START_HOUR", 9)
	v.SetDefault("WORKDAY_END_HOUR", 17)
	v.SetDefault("DELTA_MISSING_BASELINE", "zero")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
