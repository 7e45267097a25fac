package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Payment PaymentConfig
	Mailer  MailerConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port string
	Env  string
	// PublicBaseURL is used to build payment return URLs.
	PublicBaseURL string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type PaymentConfig struct {
	GatewayBaseURL string
	// PendingTTL is how long an unpaid pending-payment appointment may
	// hold its slot before the expiry sweep cancels it.
	PendingTTL    time.Duration
	SweepInterval time.Duration
}

type MailerConfig struct {
	BaseURL string
}

type BookingConfig struct {
	SessionTTL  time.Duration
	SlotHoldTTL time.Duration
	OTPExpiry   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port:          viper.GetString("APP_PORT"),
			Env:           viper.GetString("APP_ENV"),
			PublicBaseURL: viper.GetString("APP_PUBLIC_BASE_URL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  durationOrDefault("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOrDefault("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Payment: PaymentConfig{
			GatewayBaseURL: viper.GetString("PAYMENT_GATEWAY_BASE_URL"),
			PendingTTL:     durationOrDefault("PAYMENT_PENDING_TTL", 2*time.Hour),
			SweepInterval:  durationOrDefault("PAYMENT_SWEEP_INTERVAL", 10*time.Minute),
		},
		Mailer: MailerConfig{
			BaseURL: viper.GetString("MAILER_BASE_URL"),
		},
		Booking: BookingConfig{
			SessionTTL:  durationOrDefault("BOOKING_SESSION_TTL", 30*time.Minute),
			SlotHoldTTL: durationOrDefault("BOOKING_SLOT_HOLD_TTL", 30*time.Second),
			OTPExpiry:   durationOrDefault("OTP_EXPIRY", 10*time.Minute),
		},
	}

	return config, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return value
}
