package dashboard

import (
	"context"
	"fmt"

	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"
)

// Franchisee manages the stores of the franchise the signed-in user
// administers. Closing a store is a two-step confirm.
type Franchisee struct {
	api     *client.Client
	session *session.Store
	logger  logger.Logger

	franchise *models.Franchise
	confirm   confirmation
}

func NewFranchisee(api *client.Client, sess *session.Store, log logger.Logger) *Franchisee {
	return &Franchisee{
		api:     api,
		session: sess,
		logger:  log.WithFields(map[string]interface{}{"dashboard": "franchisee"}),
	}
}

func (f *Franchisee) Role() models.RoleName {
	return models.RoleFranchisee
}

// Load resolves the user's franchise from their franchisee role and fetches
// it with stores and revenue. A franchisee whose franchise was closed out
// from under them loads an empty view rather than an error.
func (f *Franchisee) Load(ctx context.Context) error {
	user, err := requireRole(f.session, models.RoleFranchisee)
	if err != nil {
		return err
	}

	franchiseID, ok := user.FranchiseID()
	if !ok {
		return errors.NewAuthorizationDeniedError("franchisee role carries no franchise", 403)
	}

	franchise, err := f.api.GetFranchise(ctx, franchiseID)
	if err != nil {
		return err
	}

	f.franchise = franchise
	return nil
}

// Franchise returns the loaded franchise, nil when none exists.
func (f *Franchisee) Franchise() *models.Franchise {
	return f.franchise
}

func (f *Franchisee) Stores() []models.Store {
	if f.franchise == nil {
		return nil
	}
	return f.franchise.Stores
}

// CreateStore opens a new store and refetches the franchise so the list
// reflects the server's copy.
func (f *Franchisee) CreateStore(ctx context.Context, name string) (*models.Store, error) {
	if f.franchise == nil {
		return nil, errors.NewValidationFailedError("no franchise loaded")
	}

	store, err := f.api.CreateStore(ctx, f.franchise.ID, name)
	if err != nil {
		return nil, err
	}

	f.logger.Info("store created", map[string]interface{}{
		"franchiseId": f.franchise.ID,
		"store":       store.Name,
	})
	return store, f.Load(ctx)
}

// RequestCloseStore records the store as pending close. Nothing is deleted
// until ConfirmClose.
func (f *Franchisee) RequestCloseStore(storeID models.ID) error {
	if f.franchise == nil {
		return errors.NewValidationFailedError("no franchise loaded")
	}

	store, ok := f.franchise.FindStore(storeID)
	if !ok {
		return errors.NewValidationFailedError(fmt.Sprintf("unknown store %q", storeID))
	}

	f.confirm.request(CloseTarget{
		Kind:        CloseStore,
		ID:          store.ID,
		Name:        store.Name,
		FranchiseID: f.franchise.ID,
	})
	return nil
}

// PendingClose returns the store awaiting confirmation, nil otherwise.
func (f *Franchisee) PendingClose() *CloseTarget {
	return f.confirm.pending()
}

// CancelClose drops the pending close without any network call.
func (f *Franchisee) CancelClose() {
	f.confirm.cancel()
}

// ConfirmClose deletes the pending store and refetches the franchise.
func (f *Franchisee) ConfirmClose(ctx context.Context) error {
	target, ok := f.confirm.take()
	if !ok {
		return errors.NewValidationFailedError("no close pending")
	}

	if err := f.api.DeleteStore(ctx, target.FranchiseID, target.ID); err != nil {
		return err
	}

	f.logger.Info("store closed", map[string]interface{}{
		"franchiseId": target.FranchiseID,
		"store":       target.Name,
	})
	return f.Load(ctx)
}
