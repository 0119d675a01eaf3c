package model

// Offer 促銷活動, 由靜態JSON載入
type Offer struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	OfferText string `json:"offer_text"`
	Badge     string `json:"badge,omitempty"`
	PromoCode string `json:"promo_code"`
	Image     string `json:"image"`
}

func (o Offer) ID() string {
	return o.Title
}
