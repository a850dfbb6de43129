package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverBadger   = "badger"
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Port    string `mapstructure:"port"`
		Env     string `mapstructure:"env"`
		SiteURL string `mapstructure:"site_url"`
	} `mapstructure:"app"`
	Storage struct {
		Driver     string `mapstructure:"driver"`
		Prefix     string `mapstructure:"prefix"`
		BadgerPath string `mapstructure:"badger_path"`
	} `mapstructure:"storage"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwt_secret"`
		TokenLifespan     time.Duration `mapstructure:"token_lifespan"`
		DefaultPassword   string        `mapstructure:"default_password"`
		MinPasswordLength int           `mapstructure:"min_password_length"`
		BcryptCost        int           `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`
	Persistence struct {
		Debounce time.Duration `mapstructure:"debounce"`
	} `mapstructure:"persistence"`
	Tracing struct {
		Enabled      bool   `mapstructure:"enabled"`
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.site_url", "http://localhost:8080")
	v.SetDefault("storage.driver", StorageDriverBadger)
	v.SetDefault("storage.prefix", "folio:")
	v.SetDefault("storage.badger_path", "./data/folio")
	v.SetDefault("auth.token_lifespan", 12*time.Hour)
	v.SetDefault("auth.default_password", "admin")
	v.SetDefault("auth.min_password_length", 4)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("persistence.debounce", 300*time.Millisecond)
	v.SetDefault("tracing.otlp_endpoint", "localhost:4317")
}

// LoadConfig reads .env and config.yaml from the given search paths (the working
// directory when none is given), then applies environment overrides.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read environment only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.site_url", "SITE_URL")
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.prefix", "STORAGE_PREFIX")
	v.BindEnv("storage.badger_path", "BADGER_PATH")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("auth.default_password", "OWNER_DEFAULT_PASSWORD")
	v.BindEnv("auth.bcrypt_cost", "BCRYPT_COST")
	v.BindEnv("persistence.debounce", "PERSIST_DEBOUNCE")
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	return
}
