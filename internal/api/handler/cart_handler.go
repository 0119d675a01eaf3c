package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
	"github.com/RoyceAzure/lab/ristorante/internal/pkg/pricing"
	"github.com/RoyceAzure/lab/ristorante/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
	menuService service.IMenuService
}

func NewCartHandler(cartService service.ICartService, menuService service.IMenuService) *CartHandler {
	return &CartHandler{cartService: cartService, menuService: menuService}
}

type addToCartRequest struct {
	ItemID string `json:"item_id"`
	// 選項名稱 -> 是否勾選, 未提及的選項視為未勾選
	Options map[string]bool `json:"options"`
}

type cartLineResponse struct {
	CartItemID      string   `json:"cart_item_id"`
	ItemID          string   `json:"item_id"`
	ItemName        string   `json:"item_name"`
	SelectedOptions []string `json:"selected_options"`
	Quantity        int      `json:"quantity"`
	TotalPrice      string   `json:"total_price"`
}

type cartResponse struct {
	Lines  []cartLineResponse `json:"lines"`
	Amount string             `json:"amount"`
}

func toCartLineResponse(line model.CartItem) cartLineResponse {
	return cartLineResponse{
		CartItemID:      line.CartItemID,
		ItemID:          line.Item.ID(),
		ItemName:        line.Item.Name,
		SelectedOptions: line.Item.SelectedOptions(),
		Quantity:        line.Quantity,
		TotalPrice:      pricing.Format(pricing.LineTotal(line)),
	}
}

// AddToCart POST /api/v1/cart/items
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	item, err := h.menuService.Item(req.ItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	// 只允許勾選目錄上存在的選項
	for i, opt := range item.Options {
		if selected, ok := req.Options[opt.Name]; ok {
			item.Options[i].Value = selected
		}
	}

	line, err := h.cartService.AddToCart(r.Context(), userIDFrom(r), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartLineResponse(*line))
}

// RemoveFromCart DELETE /api/v1/cart/items/{cartItemID}
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	cartItemID := chi.URLParam(r, "cartItemID")

	line, err := h.cartService.RemoveFromCart(r.Context(), userIDFrom(r), cartItemID)
	if err != nil {
		writeError(w, err)
		return
	}
	if line == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toCartLineResponse(*line))
}

// GetCart GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.GetCart(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := cartResponse{
		Lines:  make([]cartLineResponse, 0, len(cart.Items)),
		Amount: pricing.Format(pricing.CartTotal(cart.Items)),
	}
	for _, line := range cart.Items {
		resp.Lines = append(resp.Lines, toCartLineResponse(line))
	}
	writeJSON(w, http.StatusOK, resp)
}
