package models

// MenuItem is one pizza on the menu. Prices are in the backend's decimal
// currency unit and are never converted or rounded client-side.
type MenuItem struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}
