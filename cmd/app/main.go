package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"tableside/cmd"
	"tableside/internal/adapters/in/http"
	"tableside/internal/adapters/out/postgres"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	db := openDatabase(configs)
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(
		configs,
		db,
	)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		TaxRate:            decimalVariable("TAX_RATE", "0.18"),
		SessionCloseStatus: statusVariable("SESSION_CLOSE_STATUS", "paid"),
		WSSendBuffer:       intVariable("WS_SEND_BUFFER", "32"),
		EmptySessionTTL:    minutesVariable("EMPTY_SESSION_TTL_MIN", "30"),
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

func envVariableOrDefault(key string, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

func decimalVariable(key string, fallback string) decimal.Decimal {
	value, err := decimal.NewFromString(envVariableOrDefault(key, fallback))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func statusVariable(key string, fallback string) order.Status {
	value, err := order.ParseStatus(envVariableOrDefault(key, fallback))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func intVariable(key string, fallback string) int {
	value, err := strconv.Atoi(envVariableOrDefault(key, fallback))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func minutesVariable(key string, fallback string) time.Duration {
	return time.Duration(intVariable(key, fallback)) * time.Minute
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	jobManager := jobs.NewJobManager(
		app.CreateAbandonEmptySessionsCommandHandler(),
		configs.EmptySessionTTL,
		slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	finishSessionHandler, err := app.CreateFinishSessionCommandHandler()
	if err != nil {
		log.Fatalf("Error creating finish session handler: %v", err)
	}
	getInvoiceDataHandler, err := app.CreateGetInvoiceDataQueryHandler()
	if err != nil {
		log.Fatalf("Error creating invoice query handler: %v", err)
	}

	server := http.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		finishSessionHandler,
		app.CreateGetOrderQueryHandler(),
		app.CreateGetSessionQueryHandler(),
		app.CreateGetKitchenOrdersQueryHandler(),
		getInvoiceDataHandler,
		app.Hub(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
