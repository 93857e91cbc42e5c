package domain

// Badge tags shown on product cards.
const (
	BadgeNew  = "new"
	BadgeSale = "sale"
	BadgeHot  = "hot"
)

type Product struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         int64             `json:"price"`
	OriginalPrice *int64            `json:"originalPrice,omitempty"`
	Image         string            `json:"image"`
	Category      string            `json:"category"`
	Rating        float64           `json:"rating"`
	Reviews       int               `json:"reviews"`
	InStock       bool              `json:"inStock"`
	Featured      bool              `json:"featured,omitempty"`
	Badge         string            `json:"badge,omitempty"`
	Specs         map[string]string `json:"specs,omitempty"`
}

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
	ProductCount int    `json:"productCount"`
	Image        string `json:"image"`
}
