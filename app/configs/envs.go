package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Rakhulsr/go-storefront-cart/app/utils/calc"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	Port           string
	AppEnv         string
	SessionKey     string
	AppAuthKey     string
	AppEncKey      string
	CSRFKey        string
	CartStorage    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CartTTL        time.Duration
	TaxRate        decimal.Decimal
	CurrencySymbol string
}

const (
	CartStorageSession = "session"
	CartStorageMySQL   = "mysql"
	CartStorageRedis   = "redis"
	CartStorageMemory  = "memory"
)

func LoadEnv() ENV {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:         os.Getenv("DB_HOST"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getEnv("DB_PORT", "3306"),
		Port:           getEnv("APP_PORT", ":8080"),
		AppEnv:         getEnv("APP_ENV", "production"),
		SessionKey:     os.Getenv("SESSION_KEY"),
		AppAuthKey:     os.Getenv("APP_AUTH_KEY"),
		AppEncKey:      os.Getenv("APP_ENC_KEY"),
		CSRFKey:        os.Getenv("CSRF_KEY"),
		CartStorage:    getEnv("CART_STORAGE", CartStorageSession),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CartTTL:        time.Duration(getEnvInt("CART_TTL_HOURS", 168)) * time.Hour,
		TaxRate:        getEnvDecimal("TAX_RATE", calc.DefaultTaxRate()),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
	}
}

func (e ENV) IsDevelopment() bool {
	return e.AppEnv == "development" || e.AppEnv == "local"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not an integer, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		log.Printf("Warning: %s=%q is not a non-negative number, using %s", key, value, fallback)
		return fallback
	}
	return d
}
