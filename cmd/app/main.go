package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	v1 "fleetfuel/internal/controller/http/v1"
	"fleetfuel/internal/domain/entity"
	"fleetfuel/internal/domain/usecase"
	psqlRepo "fleetfuel/internal/repository/psql"
	"fleetfuel/internal/repository/rabbitmq"
	redisRepo "fleetfuel/internal/repository/redis"
	s3Repo "fleetfuel/internal/repository/s3"
	"fleetfuel/pkg/client/psql"
	redisGo "fleetfuel/pkg/client/redis"
	s3ClientGo "fleetfuel/pkg/client/s3"
)

type Config struct {
	RedisAddr string
	RedisDB   int

	PSQLHost     string
	PSQLPort     int
	PSQLUser     string
	PSQLPassword string
	PSQLDBName   string
	PSQLSSLMode  string

	S3Host      string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	RabbitMQURL string
	HTTPAddr    string

	FuelParams usecase.FuelParams
}

func loadConfig() Config {
	if err := godotenv.Load("./.env.local"); err != nil {
		log.Println("No .env file found. Falling back to OS environment variables.")
	}
	mustGetEnv := func(key string) string {
		val := os.Getenv(key)
		if val == "" {
			log.Fatalf("Environment variable %s is not set", key)
		}
		return val
	}
	floatEnv := func(key string, fallback float64) float64 {
		raw := os.Getenv(key)
		if raw == "" {
			return fallback
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("Invalid %s value: %v", key, err)
		}
		return val
	}

	// REDIS
	redisHost := mustGetEnv("REDIS_HOST")
	redisPort := mustGetEnv("REDIS_PORT")
	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		redisDBStr = "0"
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		log.Fatalf("Invalid REDIS_DB value: %v", err)
	}

	// PSQL
	psqlPortStr := mustGetEnv("PSQL_PORT")
	psqlPort, err := strconv.Atoi(psqlPortStr)
	if err != nil {
		log.Fatalf("Invalid PSQL_PORT value: %v", err)
	}

	// RABBITMQ
	rmqUser := mustGetEnv("RABBITMQ_USER")
	rmqPassword := mustGetEnv("RABBITMQ_PASSWORD")
	rmqHost := mustGetEnv("RABBITMQ_HOST")
	rmqPort := mustGetEnv("RABBITMQ_PORT")
	rabbitMQURL := "amqp://" + rmqUser + ":" + rmqPassword + "@" + rmqHost + ":" + rmqPort + "/"

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	// FUEL MODEL — demonstration defaults unless overridden
	defaults := usecase.DefaultFuelParams()
	params := usecase.FuelParams{
		Alpha:           floatEnv("FUEL_ALPHA", defaults.Alpha),
		MassKG:          floatEnv("FUEL_MASS_KG", defaults.MassKG),
		GearRatio:       floatEnv("FUEL_GEAR_RATIO", defaults.GearRatio),
		MaxPower:        floatEnv("FUEL_MAX_POWER", defaults.MaxPower),
		EfficiencyCoeff: floatEnv("FUEL_EFFICIENCY_COEFF", defaults.EfficiencyCoeff),
		AccelCoeff:      floatEnv("FUEL_ACCEL_COEFF", defaults.AccelCoeff),
	}

	return Config{
		RedisAddr: redisHost + ":" + redisPort,
		RedisDB:   redisDB,

		PSQLHost:     mustGetEnv("PSQL_HOST"),
		PSQLPort:     psqlPort,
		PSQLUser:     mustGetEnv("PSQL_USER"),
		PSQLPassword: mustGetEnv("PSQL_PASSWORD"),
		PSQLDBName:   mustGetEnv("PSQL_DB"),
		PSQLSSLMode:  mustGetEnv("PSQL_SSLMODE"),

		S3Host:      mustGetEnv("S3_HOST") + ":" + mustGetEnv("S3_PORT"),
		S3Bucket:    mustGetEnv("S3_BUCKET"),
		S3AccessKey: mustGetEnv("S3_ACCESS_KEY"),
		S3SecretKey: mustGetEnv("S3_SECRET_KEY"),

		RabbitMQURL: rabbitMQURL,
		HTTPAddr:    httpAddr,

		FuelParams: params,
	}
}

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	redisClient, err := redisGo.NewRedisClient(context.Background(), redisGo.Config{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	columnarStore := redisRepo.NewColumnarRepo(redisClient)

	db, err := psql.NewPostgresDB(psql.Config{
		Host:     cfg.PSQLHost,
		User:     cfg.PSQLUser,
		Password: cfg.PSQLPassword,
		DBName:   cfg.PSQLDBName,
		Port:     cfg.PSQLPort,
		SslMode:  cfg.PSQLSSLMode,
	})
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(&entity.GroupSummary{}); err != nil {
		panic(err)
	}
	summaryRepo := psqlRepo.NewGormSummaryRepo(db)

	s3Client, err := s3ClientGo.NewS3Client(cfg.S3Host, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("failed to init s3 client: %v", err)
	}
	archiveRepo := s3Repo.NewArchiveRepo(s3Client)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()

	resultPublisher, err := rabbitmq.NewResultPublisher(conn, "aggregation.exchange", "aggregation.results")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}

	pipelineUC := usecase.NewPipelineUseCase(columnarStore, columnarStore, summaryRepo, archiveRepo, cfg.FuelParams)

	consumer, err := rabbitmq.NewJobConsumer(conn, "aggregation.exchange", "aggregation.jobs", "aggregation.jobs.q", pipelineUC, resultPublisher)
	if err != nil {
		log.Fatalf("failed to init consumer: %v", err)
	}

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("consumer stopped with error: %v", err)
		}
	}()

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1.NewReportHandler(summaryRepo).RegisterRoutes(r)

	go func() {
		if err := r.Run(cfg.HTTPAddr); err != nil {
			log.Fatalf("http server stopped with error: %v", err)
		}
	}()

	log.Println("Fleet fuel service started")
	<-sigCh
	log.Println("Shutting down fleet fuel service...")
	cancel()
	time.Sleep(time.Second)
}
