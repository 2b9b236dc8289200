package config

import (
	"flag"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"runs"`
	KafkaGroupId string   `env:"KAFKA_GROUP_ID" envDefault:"train-service"`

	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	ArtifactBucket    string `env:"ARTIFACT_BUCKET" envDefault:"artifacts"`

	CoreServiceURL    string `env:"CORE_BASE_URL" envDefault:"http://localhost:8000"`
	JWTSecret         string `env:"CORE_JWT_SECRET,notEmpty"`
	JWTExpiresMinutes int    `env:"CORE_JWT_EXPIRES_MINUTES" envDefault:"60"`

	APIPort string `env:"TRAIN_PORT" envDefault:"8005"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile loads environment variables from the file given by the -env
// flag, if any. Useful for local development.
func LoadEnvFile() {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", configPath)
	if err := godotenv.Load(configPath); err != nil {
		log.Fatalf("error loading .env file '%s': %v", configPath, err)
	}
}
