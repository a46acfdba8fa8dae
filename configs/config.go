package configs

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/AmirSomo/api/internal/logger"
)

type Config struct {
	Server struct {
		Addr            string `mapstructure:"addr"`
		ReadTimeoutSec  int    `mapstructure:"read-timeout-sec"`
		WriteTimeoutSec int    `mapstructure:"write-timeout-sec"`
		IdleTimeoutSec  int    `mapstructure:"idle-timeout-sec"`
	} `mapstructure:"server"`
	Seed struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"seed"`
}

var AppConfig Config

func LoadConfig() {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.read-timeout-sec", 10)
	viper.SetDefault("server.write-timeout-sec", 15)
	viper.SetDefault("server.idle-timeout-sec", 60)

	viper.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &fileLookupError) {
			logger.Log.Fatal("config file not found", zap.Error(err))
		}
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}

	viper.Unmarshal(&AppConfig)
}
