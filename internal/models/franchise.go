package models

// Store is a physical location under a franchise, the unit orders are placed
// against. TotalRevenue is only populated on the franchise detail endpoint.
type Store struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	FranchiseID  ID      `json:"franchiseId,omitempty"`
	TotalRevenue float64 `json:"totalRevenue,omitempty"`
}

// FranchiseAdmin is the trimmed user shape embedded in franchise detail.
type FranchiseAdmin struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Franchise struct {
	ID     ID               `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
	Stores []Store          `json:"stores"`
}

// FindStore returns the store with the given id, if present.
func (f *Franchise) FindStore(storeID ID) (Store, bool) {
	for _, s := range f.Stores {
		if s.ID == storeID {
			return s, true
		}
	}
	return Store{}, false
}

// FranchisePage is one page of the admin franchise listing.
type FranchisePage struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}
