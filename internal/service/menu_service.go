package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/RoyceAzure/lab/ristorante/internal/domain/model"
)

var (
	ErrItemNotFound  = errors.New("menu item not found")
	ErrOfferNotFound = errors.New("offer not found")
)

type IMenuService interface {
	Sections() []model.MenuSection
	Item(itemID string) (model.MenuItem, error)
	Offers() []model.Offer
	OfferByPromoCode(code string) (model.Offer, error)
	Locations() []model.Location
}

// MenuService 靜態菜單目錄
// 啟動時從打包的JSON載入一次, 之後唯讀
type MenuService struct {
	sections  []model.MenuSection
	items     map[string]model.MenuItem
	offers    []model.Offer
	locations []model.Location
}

func NewMenuService(menuPath, offersPath, locationsPath string) (*MenuService, error) {
	s := &MenuService{items: make(map[string]model.MenuItem)}

	if err := loadJSON(menuPath, &s.sections); err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	if err := loadJSON(offersPath, &s.offers); err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}
	if err := loadJSON(locationsPath, &s.locations); err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	for _, section := range s.sections {
		for _, item := range section.Items {
			s.items[item.ID()] = item
		}
	}
	return s, nil
}

func loadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Sections 回傳快照, 呼叫端改動不會污染目錄
func (s *MenuService) Sections() []model.MenuSection {
	sections := make([]model.MenuSection, len(s.sections))
	for i, section := range s.sections {
		sections[i] = section.Snapshot()
	}
	return sections
}

// Item 回傳快照, 呼叫端勾選選項不會污染目錄
func (s *MenuService) Item(itemID string) (model.MenuItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return model.MenuItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	return item.Snapshot(), nil
}

func (s *MenuService) Offers() []model.Offer {
	return s.offers
}

func (s *MenuService) OfferByPromoCode(code string) (model.Offer, error) {
	for _, offer := range s.offers {
		if offer.PromoCode == code {
			return offer, nil
		}
	}
	return model.Offer{}, fmt.Errorf("%w: %s", ErrOfferNotFound, code)
}

func (s *MenuService) Locations() []model.Location {
	return s.locations
}

var _ IMenuService = (*MenuService)(nil)
