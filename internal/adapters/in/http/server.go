// Package http is the inbound HTTP adapter: echo handlers translating the
// REST surface into commands and queries. Domain error kinds map onto
// status codes here; nothing below this layer knows about HTTP.
package http

import (
	"errors"
	"fmt"
	"net/http"

	"tableside/internal/adapters/in/ws"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	finishSessionHandler     commands.FinishSessionCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getSessionHandler       queries.GetSessionQueryHandler
	getKitchenOrdersHandler queries.GetKitchenOrdersQueryHandler
	getInvoiceDataHandler   queries.GetInvoiceDataQueryHandler

	hub *ws.Hub
}

// NewServer creates an HTTP server with the required command and query
// handlers and the websocket hub serving the push channel.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	finishSessionHandler commands.FinishSessionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getSessionHandler queries.GetSessionQueryHandler,
	getKitchenOrdersHandler queries.GetKitchenOrdersQueryHandler,
	getInvoiceDataHandler queries.GetInvoiceDataQueryHandler,
	hub *ws.Hub,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		finishSessionHandler:     finishSessionHandler,
		getOrderHandler:          getOrderHandler,
		getSessionHandler:        getSessionHandler,
		getKitchenOrdersHandler:  getKitchenOrdersHandler,
		getInvoiceDataHandler:    getInvoiceDataHandler,
		hub:                      hub,
	}
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/orders", s.PlaceOrder)
	e.GET("/orders/:id", s.GetOrder)
	e.GET("/sessions/:session_id", s.GetSession)
	e.POST("/sessions/:session_id/finish", s.FinishSession)
	e.GET("/sessions/:session_id/invoice/download", s.DownloadInvoice)
	e.GET("/kitchen/orders", s.GetKitchenOrders)
	e.PUT("/kitchen/orders/:id", s.UpdateOrderStatus)
	e.GET("/ws", s.ServeWS)
	e.GET("/health", s.Health)
}

// errorResponse maps a domain error to the HTTP status for its kind.
// Validation kinds are the caller's fault (400), missing objects are 404,
// state violations are 409. Conflicts that survived the placement retries
// and anything unrecognized surface as 500.
func errorResponse(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidState):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: clientMessage(err)})
}

// clientMessage renders the part of a domain error that is safe to show a
// client. Only the structured fields of the known error kinds are used;
// wrapped causes carry storage-engine text and stay on the server, and
// anything unrecognized collapses to a generic message.
func clientMessage(err error) string {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf("%s not found: %v", notFound.ParamName, notFound.ID)
	}

	var outOfRange *errs.ValueIsOutOfRangeError
	if errors.As(err, &outOfRange) {
		return fmt.Sprintf("value %v of %s is out of range [%v, %v]",
			outOfRange.Value, outOfRange.ParamName, outOfRange.Min, outOfRange.Max)
	}

	var invalid *errs.ValueIsInvalidError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("value of %s is invalid", invalid.ParamName)
	}

	var required *errs.ValueIsRequiredError
	if errors.As(err, &required) {
		return fmt.Sprintf("%s is required", required.ParamName)
	}

	var invalidState *errs.InvalidStateError
	if errors.As(err, &invalidState) {
		return invalidState.Details
	}

	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return fmt.Sprintf("conflicting update on %s, please retry", conflict.ParamName)
	}

	return "internal server error"
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// PlaceOrder handles POST /orders - places an order for a table, opening a
// session when the table has none. A supplied session_id must name an open
// session; quoting a closed or unknown one is a 400.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.PlaceOrderItem, 0, len(request.Items))
	for _, line := range request.Items {
		menuItemID, err := kernel.UUIDFromString(line.MenuItemID)
		if err != nil {
			return badRequest(ctx, fmt.Sprintf("Invalid menu item id: %s", line.MenuItemID))
		}
		items = append(items, commands.PlaceOrderItem{
			MenuItemID:          menuItemID,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	paymentMethod, err := order.ParsePaymentMethod(request.PaymentMethod)
	if err != nil {
		return badRequest(ctx, "Invalid payment method: "+request.PaymentMethod)
	}

	cmd, err := commands.NewPlaceOrderCommand(
		request.TableNumber,
		request.CustomerName,
		request.PhoneNumber,
		request.Email,
		items,
		paymentMethod,
		request.SpecialInstructions,
		request.SessionID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order request: "+err.Error())
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		// Quoting an unusable session is a malformed placement, not a
		// state conflict on an operation the caller could retry.
		if errors.Is(err, errs.ErrInvalidState) {
			return badRequest(ctx, "Invalid or closed session")
		}
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, placeOrderResponseFromResult(result))
}

// GetOrder handles GET /orders/:id - returns the order with customer and
// expanded line items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderDetailFromQuery(result))
}

// GetSession handles GET /sessions/:session_id - returns the session with
// its orders, oldest first.
func (s *Server) GetSession(ctx echo.Context) error {
	query, err := queries.NewGetSessionQuery(ctx.Param("session_id"))
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	result, err := s.getSessionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, sessionResponseFromQuery(result))
}

// FinishSession handles POST /sessions/:session_id/finish - settles the
// bill and closes the session. Not idempotent: finishing a closed session
// returns 409.
func (s *Server) FinishSession(ctx echo.Context) error {
	cmd, err := commands.NewFinishSessionCommand(ctx.Param("session_id"))
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	result, err := s.finishSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, billSummaryFromResult(result))
}

// DownloadInvoice handles GET /sessions/:session_id/invoice/download -
// streams the invoice data the document collaborator renders. Works before
// and after the session is finished.
func (s *Server) DownloadInvoice(ctx echo.Context) error {
	query, err := queries.NewGetInvoiceDataQuery(ctx.Param("session_id"))
	if err != nil {
		return badRequest(ctx, "Invalid session id")
	}

	result, err := s.getInvoiceDataHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%s.json"`, result.Token))
	return ctx.JSON(http.StatusOK, invoiceFromQuery(result))
}

// GetKitchenOrders handles GET /kitchen/orders?status= - lists the kitchen
// queue, filtered or defaulted to the active subset.
func (s *Server) GetKitchenOrders(ctx echo.Context) error {
	query, err := queries.NewGetKitchenOrdersQuery(ctx.QueryParam("status"))
	if err != nil {
		return badRequest(ctx, "Invalid status filter: "+ctx.QueryParam("status"))
	}

	result, err := s.getKitchenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, kitchenOrdersFromQuery(result))
}

// UpdateOrderStatus handles PUT /kitchen/orders/:id - moves an order
// through the kitchen state machine.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateOrderStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+request.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromDomain(updated))
}

// ServeWS handles GET /ws - upgrades the connection and attaches it to the
// notification fanout.
func (s *Server) ServeWS(ctx echo.Context) error {
	return s.hub.Serve(ctx.Response(), ctx.Request())
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
