package config

import "github.com/spf13/viper"

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token      string
		TimeoutSec int `mapstructure:"timeout_sec"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Data struct {
		File        string
		RefreshCron string `mapstructure:"refresh_cron"`
	} `mapstructure:"data"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	// Токен и путь к файлу можно переопределять через ENV (APP_*)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Telegram.TimeoutSec == 0 {
		c.Telegram.TimeoutSec = 30
	}
	return c, nil
}
