package models

// OrderItem is one line of an order as the order endpoint expects it.
type OrderItem struct {
	MenuID      ID      `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order is the order shape sent to and returned by POST /api/order. The
// server assigns ID and Date on commit.
type Order struct {
	ID          ID          `json:"id,omitempty"`
	FranchiseID ID          `json:"franchiseId"`
	StoreID     ID          `json:"storeId"`
	Date        string      `json:"date,omitempty"`
	Items       []OrderItem `json:"items"`
}

// Total sums the line prices in the backend's decimal unit.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// OrderReceipt is the response to a successful order submission: the
// committed order plus a JWT proving it for later verification.
type OrderReceipt struct {
	Order Order  `json:"order"`
	JWT   string `json:"jwt"`
}

// OrderHistory is the diner's paginated order listing.
type OrderHistory struct {
	DinerID ID      `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}

// VerifyResult is the response of the order verification endpoint.
// Message is "valid"/"invalid" status text; Payload is rendered verbatim.
type VerifyResult struct {
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
