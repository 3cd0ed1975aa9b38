package http

import (
	"time"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error body. Message carries the domain
// validation text; storage-engine details never reach clients.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /orders. SessionID is optional:
// when set it must be the session id returned by an earlier placement and
// pins the new order to that session; when empty the table's active session
// is used, opening one if needed.
type PlaceOrderRequest struct {
	TableNumber         string                  `json:"table_number"`
	SessionID           string                  `json:"session_id,omitempty"`
	CustomerName        string                  `json:"customer_name"`
	PhoneNumber         string                  `json:"phone_number"`
	Email               string                  `json:"email,omitempty"`
	Items               []PlaceOrderItemRequest `json:"items"`
	PaymentMethod       string                  `json:"payment_method,omitempty"`
	SpecialInstructions string                  `json:"special_instructions,omitempty"`
}

// PlaceOrderItemRequest is one requested line of a placement.
type PlaceOrderItemRequest struct {
	MenuItemID          string `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// UpdateOrderStatusRequest is the body of PUT /kitchen/orders/:id.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the representation of an order returned by the write
// endpoints (placement and status update).
type OrderResponse struct {
	ID                  string    `json:"id"`
	Number              string    `json:"order_number"`
	TableNumber         string    `json:"table_number"`
	Status              string    `json:"status"`
	TotalPrice          float64   `json:"total_price"`
	PaymentMethod       string    `json:"payment_method"`
	PaymentStatus       string    `json:"payment_status"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PlaceOrderResponse is the body of POST /orders: the created order plus
// the session id to quote on follow-up orders for the same table visit.
type PlaceOrderResponse struct {
	OrderResponse
	SessionID string `json:"session_id"`
}

func placeOrderResponseFromResult(result *commands.PlaceOrderResult) PlaceOrderResponse {
	return PlaceOrderResponse{
		OrderResponse: orderResponseFromDomain(result.Order),
		SessionID:     result.SessionToken,
	}
}

func orderResponseFromDomain(aggregate *order.Order) OrderResponse {
	return OrderResponse{
		ID:                  aggregate.ID().String(),
		Number:              aggregate.Number(),
		TableNumber:         aggregate.TableNumber(),
		Status:              aggregate.Status().String(),
		TotalPrice:          aggregate.TotalPrice().Float64(),
		PaymentMethod:       aggregate.PaymentMethod().String(),
		PaymentStatus:       aggregate.PaymentStatus().String(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

// OrderDetailResponse is the body of GET /orders/:id: the order plus the
// resolved customer and expanded line items.
type OrderDetailResponse struct {
	ID                  string                    `json:"id"`
	Number              string                    `json:"order_number"`
	SessionID           string                    `json:"session_id"`
	TableNumber         string                    `json:"table_number"`
	Status              string                    `json:"status"`
	CustomerName        string                    `json:"customer_name"`
	CustomerPhone       string                    `json:"customer_phone"`
	TotalPrice          float64                   `json:"total_price"`
	PaymentMethod       string                    `json:"payment_method"`
	PaymentStatus       string                    `json:"payment_status"`
	SpecialInstructions string                    `json:"special_instructions,omitempty"`
	Items               []OrderDetailItemResponse `json:"items"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// OrderDetailItemResponse is one expanded line of an order detail.
type OrderDetailItemResponse struct {
	MenuItemID          string  `json:"menu_item_id"`
	MenuItemName        string  `json:"menu_item_name"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	Subtotal            float64 `json:"subtotal"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

func orderDetailFromQuery(result queries.GetOrderQueryResponse) OrderDetailResponse {
	items := make([]OrderDetailItemResponse, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, OrderDetailItemResponse{
			MenuItemID:          item.MenuItemID.String(),
			MenuItemName:        item.MenuItemName,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			Subtotal:            item.Subtotal,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	return OrderDetailResponse{
		ID:                  result.ID.String(),
		Number:              result.Number,
		SessionID:           result.SessionToken,
		TableNumber:         result.TableNumber,
		Status:              result.Status,
		CustomerName:        result.CustomerName,
		CustomerPhone:       result.CustomerPhone,
		TotalPrice:          result.TotalPrice,
		PaymentMethod:       result.PaymentMethod,
		PaymentStatus:       result.PaymentStatus,
		SpecialInstructions: result.SpecialInstructions,
		Items:               items,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}
}

// SessionResponse is the body of GET /sessions/:session_id. SessionID is
// the session's public token, the same value placements return.
type SessionResponse struct {
	SessionID   string                 `json:"session_id"`
	TableNumber string                 `json:"table_number"`
	Status      string                 `json:"status"`
	Orders      []SessionOrderResponse `json:"orders"`
	CreatedAt   time.Time              `json:"created_at"`
	ClosedAt    *time.Time             `json:"closed_at,omitempty"`
}

// SessionOrderResponse is one order summary inside a session response.
type SessionOrderResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"order_number"`
	Status        string    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

func sessionResponseFromQuery(result queries.GetSessionQueryResponse) SessionResponse {
	orders := make([]SessionOrderResponse, 0, len(result.Orders))
	for _, summary := range result.Orders {
		orders = append(orders, SessionOrderResponse{
			ID:            summary.ID.String(),
			Number:        summary.Number,
			Status:        summary.Status,
			TotalPrice:    summary.TotalPrice,
			PaymentStatus: summary.PaymentStatus,
			CreatedAt:     summary.CreatedAt,
		})
	}

	return SessionResponse{
		SessionID:   result.Token,
		TableNumber: result.TableNumber,
		Status:      result.Status,
		Orders:      orders,
		CreatedAt:   result.CreatedAt,
		ClosedAt:    result.ClosedAt,
	}
}

// BillSummaryResponse is the body of POST /sessions/:session_id/finish.
type BillSummaryResponse struct {
	SessionID  string             `json:"session_id"`
	Status     string             `json:"status"`
	Lines      []BillLineResponse `json:"lines"`
	Subtotal   float64            `json:"subtotal"`
	TaxRate    float64            `json:"tax_rate"`
	TaxAmount  float64            `json:"tax_amount"`
	GrandTotal float64            `json:"grand_total"`
	ClosedAt   *time.Time         `json:"closed_at,omitempty"`
}

// BillLineResponse is one order's contribution to a bill summary.
type BillLineResponse struct {
	OrderID     string  `json:"order_id"`
	OrderNumber string  `json:"order_number"`
	Total       float64 `json:"total"`
}

func billSummaryFromResult(result *commands.FinishSessionResult) BillSummaryResponse {
	lines := make([]BillLineResponse, 0, len(result.Bill.Lines))
	for _, line := range result.Bill.Lines {
		lines = append(lines, BillLineResponse{
			OrderID:     line.OrderID.String(),
			OrderNumber: line.OrderNumber,
			Total:       line.Total.Float64(),
		})
	}

	taxRate, _ := result.Bill.TaxRate.Float64()
	return BillSummaryResponse{
		SessionID:  result.Session.Token(),
		Status:     result.Session.Status().String(),
		Lines:      lines,
		Subtotal:   result.Bill.Subtotal.Float64(),
		TaxRate:    taxRate,
		TaxAmount:  result.Bill.TaxAmount.Float64(),
		GrandTotal: result.Bill.GrandTotal.Float64(),
		ClosedAt:   result.Session.ClosedAt(),
	}
}

// KitchenOrderResponse is one order on GET /kitchen/orders.
type KitchenOrderResponse struct {
	ID                  string                     `json:"id"`
	Number              string                     `json:"order_number"`
	TableNumber         string                     `json:"table_number"`
	Status              string                     `json:"status"`
	SpecialInstructions string                     `json:"special_instructions,omitempty"`
	Items               []KitchenOrderItemResponse `json:"items"`
	CreatedAt           time.Time                  `json:"created_at"`
}

// KitchenOrderItemResponse is one line the kitchen has to prepare.
type KitchenOrderItemResponse struct {
	MenuItemName        string `json:"menu_item_name"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

func kitchenOrdersFromQuery(results []queries.GetKitchenOrdersQueryResponse) []KitchenOrderResponse {
	orders := make([]KitchenOrderResponse, 0, len(results))
	for _, result := range results {
		items := make([]KitchenOrderItemResponse, 0, len(result.Items))
		for _, item := range result.Items {
			items = append(items, KitchenOrderItemResponse{
				MenuItemName:        item.MenuItemName,
				Quantity:            item.Quantity,
				SpecialInstructions: item.SpecialInstructions,
			})
		}

		orders = append(orders, KitchenOrderResponse{
			ID:                  result.ID.String(),
			Number:              result.Number,
			TableNumber:         result.TableNumber,
			Status:              result.Status,
			SpecialInstructions: result.SpecialInstructions,
			Items:               items,
			CreatedAt:           result.CreatedAt,
		})
	}
	return orders
}

// InvoiceResponse is the body streamed by
// GET /sessions/:session_id/invoice/download. Rendering to PDF is the
// document collaborator's job; this is the data it consumes.
type InvoiceResponse struct {
	SessionID    string                `json:"session_id"`
	TableNumber  string                `json:"table_number"`
	CustomerName string                `json:"customer_name,omitempty"`
	Lines        []InvoiceLineResponse `json:"lines"`
	Subtotal     float64               `json:"subtotal"`
	TaxRate      float64               `json:"tax_rate"`
	TaxAmount    float64               `json:"tax_amount"`
	GrandTotal   float64               `json:"grand_total"`
	OpenedAt     time.Time             `json:"opened_at"`
	ClosedAt     *time.Time            `json:"closed_at,omitempty"`
	IssuedAt     time.Time             `json:"issued_at"`
}

// InvoiceLineResponse is one ordered dish on the invoice.
type InvoiceLineResponse struct {
	OrderNumber  string  `json:"order_number"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Subtotal     float64 `json:"subtotal"`
}

func invoiceFromQuery(result queries.GetInvoiceDataQueryResponse) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, InvoiceLineResponse{
			OrderNumber:  line.OrderNumber,
			MenuItemName: line.MenuItemName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Subtotal:     line.Subtotal,
		})
	}

	return InvoiceResponse{
		SessionID:    result.Token,
		TableNumber:  result.TableNumber,
		CustomerName: result.CustomerName,
		Lines:        lines,
		Subtotal:     result.Subtotal,
		TaxRate:      result.TaxRate,
		TaxAmount:    result.TaxAmount,
		GrandTotal:   result.GrandTotal,
		OpenedAt:     result.OpenedAt,
		ClosedAt:     result.ClosedAt,
		IssuedAt:     result.IssuedAt,
	}
}
