package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"forwarding/cmd"
	httpin "forwarding/internal/adapters/in/http"
	"forwarding/internal/jobs"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(app.CreateExpireQuotesCommandHandler(), app.Logger())
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:                goDotEnvVariable("KAFKA_HOST"),
		KafkaShipmentEventsTopic: goDotEnvVariable("KAFKA_SHIPMENT_EVENTS_TOPIC"),
		RedisAddr:                goDotEnvVariable("REDIS_ADDR"),
		PaymentGatewayURL:        goDotEnvVariable("PAYMENT_GATEWAY_URL"),
		PaymentGatewayAPIKey:     goDotEnvVariable("PAYMENT_GATEWAY_API_KEY"),
		QuoteTTLMinutes:          goDotEnvInt("QUOTE_TTL_MINUTES"),
		RateCacheTTLSeconds:      goDotEnvInt("RATE_CACHE_TTL_SECONDS"),
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

func goDotEnvInt(key string) int {
	raw := goDotEnvVariable(key)
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Config %s must be an integer, got %q", key, raw)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateBatchCommandHandler(),
		app.CreateScanItemCommandHandler(),
		app.CreateCompleteBatchCommandHandler(),
		app.CreateAssignItemsCommandHandler(),
		app.CreatePreAlertParcelCommandHandler(),
		app.CreateRegisterParcelCommandHandler(),
		app.CreateChangeParcelStatusCommandHandler(),
		app.CreateAttachDocumentCommandHandler(),
		app.CreateCreateShipmentCommandHandler(),
		app.CreateQuoteShipmentCommandHandler(),
		app.CreateCompletePaymentCommandHandler(),
		app.CreateCancelShipmentCommandHandler(),
		app.CreateRecordShipmentProgressCommandHandler(),
		app.CreateGetAvailableServicesQueryHandler(),
		app.CreateGetShipmentQueryHandler(),
		app.CreateGetBatchItemsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
