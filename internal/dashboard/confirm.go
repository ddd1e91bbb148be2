package dashboard

import "pizza-storefront/internal/models"

// CloseKind names the entity type a close confirmation targets.
type CloseKind string

const (
	CloseStore     CloseKind = "store"
	CloseFranchise CloseKind = "franchise"
)

// CloseTarget is the entity pending a destructive close.
type CloseTarget struct {
	Kind CloseKind
	ID   models.ID
	Name string
	// FranchiseID is set when Kind is CloseStore.
	FranchiseID models.ID
}

// confirmation guards destructive actions behind an explicit second step.
// Requesting a close only records the target; the delete happens on confirm.
// Cancelling drops the target without any network call.
type confirmation struct {
	target *CloseTarget
}

func (c *confirmation) request(t CloseTarget) {
	c.target = &t
}

// pending returns the recorded target, or nil when nothing awaits confirm.
func (c *confirmation) pending() *CloseTarget {
	return c.target
}

func (c *confirmation) cancel() {
	c.target = nil
}

// take consumes the pending target so a confirm fires at most one delete.
func (c *confirmation) take() (CloseTarget, bool) {
	if c.target == nil {
		return CloseTarget{}, false
	}
	t := *c.target
	c.target = nil
	return t, true
}
