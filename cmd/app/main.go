package main

import (
	"fmt"
	"log/slog"
	"os"

	"parceltracker/cmd"
	httpin "parceltracker/internal/adapters/in/http"
	"parceltracker/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(root.CreateRefreshTrackingCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		CbrFeedURL:      goDotEnvVariable("CBR_FEED_URL"),
		RateCacheTTL:    goDotEnvVariable("RATE_CACHE_TTL"),
		TrackingBaseURL: goDotEnvVariable("TRACKING_BASE_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// mustConnectDB opens the database connection. TranslateError is required so
// unique-constraint violations surface as gorm.ErrDuplicatedKey and can be
// mapped to conflict errors by the repositories.
func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		root.CreateRegisterUserCommandHandler(),
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderCommandHandler(),
		root.CreateDeleteOrderCommandHandler(),
		root.CreateAddOrderItemCommandHandler(),
		root.CreateUpdateOrderItemCommandHandler(),
		root.CreateRemoveOrderItemCommandHandler(),
		root.CreateCreateParcelCommandHandler(),
		root.CreateUpdateParcelCommandHandler(),
		root.CreateDeleteParcelCommandHandler(),
		root.CreateAllocateItemCommandHandler(),
		root.CreateDeallocateItemCommandHandler(),
		root.CreateListOrdersQueryHandler(),
		root.CreateGetParcelQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
