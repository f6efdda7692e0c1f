package cmd

import (
	httpapi "bolpurmart/internal/adapters/in/http"
	"bolpurmart/internal/adapters/out/auth"
	"bolpurmart/internal/adapters/out/kafka"
	"bolpurmart/internal/adapters/out/postgres"
	"bolpurmart/internal/adapters/out/postgres/livequery"
	"bolpurmart/internal/adapters/out/postgres/outboxrepo"
	"bolpurmart/internal/adapters/out/postgres/partnerrepo"
	"bolpurmart/internal/adapters/out/push"
	"bolpurmart/internal/core/application/usecases/commands"
	"bolpurmart/internal/core/application/usecases/queries"
	"bolpurmart/internal/core/application/usecases/views"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/services"
	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/jobs"
	"bolpurmart/internal/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partnerUoWFactory() commands.PartnerUoWFactory {
	return FuncPartnerUoWFactory(func() commands.PartnerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uoWFactory())
}

func (c *CompositionRoot) CreateDeclineOrderCommandHandler() commands.DeclineOrderCommandHandler {
	return commands.NewDeclineOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	return commands.NewMarkPickedUpCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() (commands.MarkDeliveredCommandHandler, error) {
	fee, err := kernel.NewMoney(c.cfg.DefaultDeliveryFeePaise)
	if err != nil {
		return commands.MarkDeliveredCommandHandler{}, err
	}
	completer := services.NewDeliveryCompleter(services.NewFlatFeePolicy(fee))
	return commands.NewMarkDeliveredCommandHandler(c.uoWFactory(), completer), nil
}

func (c *CompositionRoot) CreateUpdatePartnerCommandHandler() commands.UpdatePartnerCommandHandler {
	return commands.NewUpdatePartnerCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateRegisterDeviceTokenCommandHandler() commands.RegisterDeviceTokenCommandHandler {
	return commands.NewRegisterDeviceTokenCommandHandler(c.partnerUoWFactory())
}

func (c *CompositionRoot) CreateRegisterPartnerCommandHandler(sessions ports.SessionProvider) commands.RegisterPartnerCommandHandler {
	return commands.NewRegisterPartnerCommandHandler(c.partnerUoWFactory(), sessions)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(outboxrepo.NewGormOutboxRepository(c.gormDB), publisher)
}

func (c *CompositionRoot) CreateArchiveDeliveredOrdersCommandHandler() commands.ArchiveDeliveredOrdersCommandHandler {
	return commands.NewArchiveDeliveredOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEarningsQueryHandler() queries.GetEarningsQueryHandler {
	return queries.NewGetEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartnerProfileQueryHandler() queries.GetPartnerProfileQueryHandler {
	return queries.NewGetPartnerProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSessionProvider() (*auth.Provider, error) {
	return auth.NewProvider(c.gormDB, auth.Config{
		Secret:     c.cfg.AuthSecret,
		TokenTTL:   c.cfg.AuthTokenTTL,
		BcryptCost: c.cfg.AuthBcryptCost,
	}, c.logger)
}

func (c *CompositionRoot) CreateChangeFeed() (*livequery.Hub, error) {
	return livequery.NewHub(c.cfg.DSN(), c.logger)
}

func (c *CompositionRoot) CreateViews(feed ports.ChangeFeed) *views.Views {
	return views.New(
		feed,
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetPartnerProfileQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateEventPublisher() *kafka.Publisher {
	return kafka.NewPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaOrderEventsTopic)
}

func (c *CompositionRoot) CreateNewOrderNotifier(feed ports.ChangeFeed) *notify.NewOrderNotifier {
	gateway := push.NewGateway(c.cfg.PushGatewayURL, c.cfg.PushGatewayAPIKey, c.cfg.PushGatewayTimeout)
	return notify.NewNewOrderNotifier(
		feed,
		c.uowFactory.CreateGorm().OrderRepository(),
		partnerrepo.NewGormPartnerRepository(c.gormDB),
		gateway,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(publisher),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxRelayBatchSize,
		c.logger,
	)
	archive := jobs.NewOrderArchiveJob(
		c.CreateArchiveDeliveredOrdersCommandHandler(),
		c.cfg.ArchiveSchedule,
		c.cfg.ArchiveRetention,
		c.cfg.ArchiveBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(relay, archive, c.logger.With(zap.String("component", "jobs")))
}

// CreateHTTPHandlers collects the use cases served by the API.
func (c *CompositionRoot) CreateHTTPHandlers(sessions ports.SessionProvider) (httpapi.Handlers, error) {
	markDelivered, err := c.CreateMarkDeliveredCommandHandler()
	if err != nil {
		return httpapi.Handlers{}, err
	}

	return httpapi.Handlers{
		RegisterPartner:     c.CreateRegisterPartnerCommandHandler(sessions),
		UpdatePartner:       c.CreateUpdatePartnerCommandHandler(),
		RegisterDeviceToken: c.CreateRegisterDeviceTokenCommandHandler(),
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		AcceptOrder:         c.CreateAcceptOrderCommandHandler(),
		DeclineOrder:        c.CreateDeclineOrderCommandHandler(),
		MarkPickedUp:        c.CreateMarkPickedUpCommandHandler(),
		MarkDelivered:       markDelivered,

		PartnerProfile:  c.CreateGetPartnerProfileQueryHandler(),
		AvailableOrders: c.CreateGetAvailableOrdersQueryHandler(),
		ActiveOrders:    c.CreateGetActiveOrdersQueryHandler(),
		DeliveryHistory: c.CreateGetDeliveryHistoryQueryHandler(),
		Earnings:        c.CreateGetEarningsQueryHandler(),
	}, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPartnerUoWFactory func() commands.PartnerUoW

func (f FuncPartnerUoWFactory) Create() commands.PartnerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
