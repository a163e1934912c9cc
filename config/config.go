package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Config holds everything the handlers need. It is built once in main
// and never mutated afterwards.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   []byte
	TokenTTL    time.Duration
	SeedDB      bool
	MongoClient *mongo.Client
	Logger      *zap.Logger

	// Food-bank conversion amounts. Business parameters, not constants:
	// how much money buys one meal / supports one family for a month.
	MealCost   float64
	FamilyCost float64

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load reads .env (if present) and the process environment, connects to
// Mongo, and returns the assembled Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       envOr("PORT", "5000"),
		MongoURI:   envOr("MONGO_URI", "mongodb://localhost:27017"),
		DBName:     envOr("DB_NAME", "curerise"),
		JWTSecret:  []byte(envOr("JWT_SECRET_KEY", "jwt-secret-change-in-production")),
		TokenTTL:   envDurationOr("TOKEN_TTL", 24*time.Hour),
		SeedDB:     os.Getenv("SEED_DB") == "true",
		MealCost:   envFloatOr("FOOD_BANK_MEAL_COST", 50),
		FamilyCost: envFloatOr("FOOD_BANK_FAMILY_COST", 1500),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	logger, err := newLogger(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}
	cfg.Logger = logger

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	cfg.MongoClient = client

	return cfg, nil
}

// Collection is a shorthand for the named collection in the configured database.
func (c *Config) Collection(name string) *mongo.Collection {
	return c.MongoClient.Database(c.DBName).Collection(name)
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if err := zcfg.Level.UnmarshalText([]byte(level)); err != nil {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build(zap.Fields(zap.String("service", "curerise-backend")))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
