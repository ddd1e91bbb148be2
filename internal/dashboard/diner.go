package dashboard

import (
	"context"

	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"
)

// Diner shows the signed-in user's identity, roles and order history.
type Diner struct {
	api     *client.Client
	session *session.Store
	logger  logger.Logger

	user    *models.User
	history *models.OrderHistory
	page    int
}

func NewDiner(api *client.Client, sess *session.Store, log logger.Logger) *Diner {
	return &Diner{
		api:     api,
		session: sess,
		logger:  log.WithFields(map[string]interface{}{"dashboard": "diner"}),
	}
}

func (d *Diner) Role() models.RoleName {
	return models.RoleDiner
}

// Load fetches the current page of order history. Any authenticated user
// may open this view; the diner role is the floor every account has.
func (d *Diner) Load(ctx context.Context) error {
	user, err := requireRole(d.session, models.RoleDiner)
	if err != nil {
		return err
	}

	history, err := d.api.Orders(ctx, d.page)
	if err != nil {
		return err
	}

	d.user = user
	d.history = history
	return nil
}

func (d *Diner) User() *models.User {
	return d.user
}

func (d *Diner) Orders() []models.Order {
	if d.history == nil {
		return nil
	}
	return d.history.Orders
}

// HasOrders reports whether the history view has anything to show; an empty
// page renders the "buy one" prompt instead.
func (d *Diner) HasOrders() bool {
	return d.history != nil && len(d.history.Orders) > 0
}

// LoadPage jumps to the given history page.
func (d *Diner) LoadPage(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	d.page = page
	return d.Load(ctx)
}
