package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/pkg/pricing"
	"github.com/RoyceAzure/lab/ristorante/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type placeOrderRequest struct {
	Delivery model.DeliveryInfo `json:"delivery"`
}

type orderResponse struct {
	OrderID  string             `json:"order_id"`
	Amount   string             `json:"amount"`
	PlacedAt string             `json:"placed_at"`
	Delivery model.DeliveryInfo `json:"delivery"`
	Items    []model.OrderItem  `json:"items"`
}

func toOrderResponse(order model.Order) orderResponse {
	return orderResponse{
		OrderID:  order.OrderID,
		Amount:   pricing.Format(order.Amount),
		PlacedAt: order.PlacedAt.Format("2006-01-02T15:04:05Z07:00"),
		Delivery: order.DeliveryInfo,
		Items:    order.OrderItems,
	}
}

// PlaceOrder POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), userIDFrom(r), req.Delivery)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(*order))
}

// GetOrder GET /api/v1/orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*order))
}

// ListOrders GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetOrdersByUserID(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		resp = append(resp, toOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, resp)
}
