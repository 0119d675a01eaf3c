package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/ristorante/internal/service"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	menuService service.IMenuService
}

func NewMenuHandler(menuService service.IMenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenu GET /api/v1/menu
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.menuService.Sections())
}

// GetItem GET /api/v1/menu/items/{itemID}
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.menuService.Item(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// GetOffers GET /api/v1/offers
func (h *MenuHandler) GetOffers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.menuService.Offers())
}

// GetOfferByPromoCode GET /api/v1/offers/promo/{code}
func (h *MenuHandler) GetOfferByPromoCode(w http.ResponseWriter, r *http.Request) {
	offer, err := h.menuService.OfferByPromoCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// GetLocations GET /api/v1/locations
func (h *MenuHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.menuService.Locations())
}
