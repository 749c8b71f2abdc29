package cmd

import (
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"forwarding/internal/adapters/out/kafka"
	"forwarding/internal/adapters/out/payments"
	"forwarding/internal/adapters/out/postgres"
	"forwarding/internal/adapters/out/postgres/raterepo"
	"forwarding/internal/adapters/out/redis"
	"forwarding/internal/core/application/usecases/commands"
	"forwarding/internal/core/application/usecases/queries"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	rates      ports.RateRepository
	warehouses ports.WarehouseRepository
	calculator services.RateCalculator
	verifier   ports.PaymentVerifier
	publisher  ports.EventPublisher
	logger     *slog.Logger
	quoteTTL   time.Duration
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var rates ports.RateRepository = raterepo.NewGormRateRepository(gormDB)
	if configs.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
		rates = redis.NewRateCache(rates, redisClient,
			time.Duration(configs.RateCacheTTLSeconds)*time.Second)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		rates:      rates,
		warehouses: raterepo.NewGormWarehouseRepository(gormDB),
		calculator: services.NewRateCalculator(),
		verifier:   payments.New(configs.PaymentGatewayURL, configs.PaymentGatewayAPIKey),
		publisher:  kafka.NewProducer([]string{configs.KafkaHost}, configs.KafkaShipmentEventsTopic),
		logger:     logger,
		quoteTTL:   time.Duration(configs.QuoteTTLMinutes) * time.Minute,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBatchCommandHandler(f)
}

func (c *CompositionRoot) CreateScanItemCommandHandler() commands.ScanItemCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewScanItemCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteBatchCommandHandler() commands.CompleteBatchCommandHandler {
	var f commands.BatchUoWFactory = FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteBatchCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignItemsCommandHandler() commands.AssignItemsCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignItemsCommandHandler(f)
}

func (c *CompositionRoot) CreatePreAlertParcelCommandHandler() commands.PreAlertParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPreAlertParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterParcelCommandHandler(f, c.warehouses)
}

func (c *CompositionRoot) CreateChangeParcelStatusCommandHandler() commands.ChangeParcelStatusCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeParcelStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAttachDocumentCommandHandler() commands.AttachDocumentCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachDocumentCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateQuoteShipmentCommandHandler() commands.QuoteShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewQuoteShipmentCommandHandler(f, c.rates, c.warehouses, c.calculator, c.quoteTTL)
}

func (c *CompositionRoot) CreateCompletePaymentCommandHandler() commands.CompletePaymentCommandHandler {
	var f commands.BillingUoWFactory = FuncBillingUoWFactory(func() commands.BillingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompletePaymentCommandHandler(f, c.verifier, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordShipmentProgressCommandHandler() commands.RecordShipmentProgressCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordShipmentProgressCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireQuotesCommandHandler() commands.ExpireQuotesCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireQuotesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailableServicesQueryHandler() queries.GetAvailableServicesQueryHandler {
	return queries.NewGetAvailableServicesQueryHandler(c.rates, c.calculator)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchItemsQueryHandler() queries.GetBatchItemsQueryHandler {
	return queries.NewGetBatchItemsQueryHandler(c.gormDB)
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncBillingUoWFactory func() commands.BillingUoW

func (f FuncBillingUoWFactory) Create() commands.BillingUoW {
	return f()
}
