package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string `env:"TELEGRAM_BOT_TOKEN" validate:"required"`
	DatabaseDSN   string `env:"DATABASE_URI"       validate:"required"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	RunAddress    string `env:"RUN_ADDRESS"`
	AdminIDs      string `env:"ADMIN_CHAT_IDS"`
	BTCWallet     string `env:"BTC_WALLET"`
	ETHWallet     string `env:"ETH_WALLET"`
	USDTWallet    string `env:"USDT_WALLET"`
	BroadcastAt   string `env:"BROADCAST_AT" validate:"datetime=15:04"`
}

func LoadConfig() (*Config, error) {
	// .env подхватываем по возможности, его отсутствие не ошибка.
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("validate config: %s", err.Error())
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

// AdminChatIDs возвращает список идентификаторов операторов из конфига.
// Невалидные элементы списка молча отбрасываются.
func (c *Config) AdminChatIDs() []int64 {
	var ids []int64
	for _, raw := range strings.Split(c.AdminIDs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address for health server in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.BroadcastAt, "b", "09:00", "Daily broadcast time in HH:MM (UTC)")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		BotToken:      envConfig.BotToken,
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir: defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		RunAddress:    defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		AdminIDs:      envConfig.AdminIDs,
		BTCWallet:     envConfig.BTCWallet,
		ETHWallet:     envConfig.ETHWallet,
		USDTWallet:    envConfig.USDTWallet,
		BroadcastAt:   defaultIfBlank(envConfig.BroadcastAt, flagsConfig.BroadcastAt),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
