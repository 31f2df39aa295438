package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBDriver    string
	DBSource    string
	Port        string
	JWTSecret   string
	JWTTTL      time.Duration
	DeliveryFee decimal.Decimal
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	fee, err := decimal.NewFromString(getEnv("DELIVERY_FEE", "20.00"))
	if err != nil {
		log.Fatalf("invalid DELIVERY_FEE: %v", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL", "24"))
	if err != nil {
		log.Fatalf("invalid JWT_TTL: %v", err)
	}

	return &Config{
		DBDriver:    getEnv("DB_DRIVER", "sqlite"),
		DBSource:    getEnv("DB_SOURCE", "delixmi.db"),
		Port:        getEnv("PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      time.Duration(ttlHours) * time.Hour,
		DeliveryFee: fee,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
