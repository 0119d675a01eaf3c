package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/ristorante/internal/service"
	"github.com/go-chi/chi/v5"
)

type FavoriteHandler struct {
	favoriteService service.IFavoriteService
	menuService     service.IMenuService
}

func NewFavoriteHandler(favoriteService service.IFavoriteService, menuService service.IMenuService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService, menuService: menuService}
}

type toggleFavoriteResponse struct {
	ItemID    string `json:"item_id"`
	Favorited bool   `json:"favorited"`
}

// ToggleFavorite POST /api/v1/favorites/{itemID}/toggle
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	item, err := h.menuService.Item(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, err)
		return
	}

	favorited, err := h.favoriteService.ToggleFavorite(r.Context(), userIDFrom(r), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleFavoriteResponse{ItemID: item.ID(), Favorited: favorited})
}

// ListFavorites GET /api/v1/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favoriteService.ListFavorites(r.Context(), userIDFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}
