package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config 整個服務的設定, 啟動時載入一次後以參數傳遞
// 不做全域單例, 依賴它的元件一律由建構式注入
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	DbName string `mapstructure:"POSTGRES_DB"`
	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"` // 逗號分隔
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	MenuPath      string `mapstructure:"MENU_PATH"`
	OffersPath    string `mapstructure:"OFFERS_PATH"`
	LocationsPath string `mapstructure:"LOCATIONS_PATH"`
}

func (c *Config) Brokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "ristorante.cart.events")
	v.SetDefault("MENU_PATH", "data/menu.json")
	v.SetDefault("OFFERS_PATH", "data/offers.json")
	v.SetDefault("LOCATIONS_PATH", "data/locations.json")

	// 設定檔不存在時退回環境變數, 不視為錯誤
	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config file not loaded, using env only")
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.Unmarshal(cf); err != nil {
			log.Error().Err(err).Msg("failed to reload config file")
		}
	})

	return cf, nil
}
