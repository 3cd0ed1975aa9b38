package cmd

import (
	"tableside/internal/adapters/in/ws"
	"tableside/internal/adapters/out/postgres"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/services"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. One root is built at
// startup; every Create* method hands out a ready handler.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(config.WSSendBuffer),
	}
}

// Hub returns the notification fanout serving the push channel. The same
// hub instance backs the event publisher handed to command handlers.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateFinishSessionCommandHandler() (commands.FinishSessionCommandHandler, error) {
	calculator, err := services.NewBillCalculator(c.config.TaxRate)
	if err != nil {
		return commands.FinishSessionCommandHandler{}, err
	}

	var f commands.SessionOrderUoWFactory = FuncSessionOrderUoWFactory(func() commands.SessionOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFinishSessionCommandHandler(f, calculator, c.config.SessionCloseStatus)
}

func (c *CompositionRoot) CreateAbandonEmptySessionsCommandHandler() commands.AbandonEmptySessionsCommandHandler {
	var f commands.SessionOrderUoWFactory = FuncSessionOrderUoWFactory(func() commands.SessionOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAbandonEmptySessionsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSessionQueryHandler() queries.GetSessionQueryHandler {
	return queries.NewGetSessionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetKitchenOrdersQueryHandler() queries.GetKitchenOrdersQueryHandler {
	return queries.NewGetKitchenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetInvoiceDataQueryHandler() (queries.GetInvoiceDataQueryHandler, error) {
	return queries.NewGetInvoiceDataQueryHandler(c.gormDB, c.config.TaxRate)
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSessionOrderUoWFactory func() commands.SessionOrderUoW

func (f FuncSessionOrderUoWFactory) Create() commands.SessionOrderUoW {
	return f()
}
