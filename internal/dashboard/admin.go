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

const (
	adminFranchiseLimit = 3
	adminUserLimit      = 10
)

// Admin is the administrator console: paged franchise and user lists with
// name filters, franchise creation, and two-step closes for franchises and
// stores.
type Admin struct {
	api     *client.Client
	session *session.Store
	logger  logger.Logger

	franchises      *models.FranchisePage
	franchisePage   int
	franchiseFilter string

	users      *models.UserPage
	userPage   int
	userFilter string

	confirm confirmation
}

func NewAdmin(api *client.Client, sess *session.Store, log logger.Logger) *Admin {
	return &Admin{
		api:     api,
		session: sess,
		logger:  log.WithFields(map[string]interface{}{"dashboard": "admin"}),
	}
}

func (a *Admin) Role() models.RoleName {
	return models.RoleAdmin
}

// wildcard turns a filter term into the server's glob form. An empty term
// matches everything.
func wildcard(term string) string {
	if term == "" {
		return "*"
	}
	return "*" + term + "*"
}

// Load fetches both lists at their current page and filter.
func (a *Admin) Load(ctx context.Context) error {
	if _, err := requireRole(a.session, models.RoleAdmin); err != nil {
		return err
	}
	if err := a.loadFranchises(ctx); err != nil {
		return err
	}
	return a.loadUsers(ctx)
}

func (a *Admin) loadFranchises(ctx context.Context) error {
	page, err := a.api.ListFranchisePage(ctx, a.franchisePage, adminFranchiseLimit, wildcard(a.franchiseFilter))
	if err != nil {
		return err
	}
	a.franchises = page
	return nil
}

func (a *Admin) loadUsers(ctx context.Context) error {
	page, err := a.api.ListUsers(ctx, a.userPage, adminUserLimit, wildcard(a.userFilter))
	if err != nil {
		return err
	}
	a.users = page
	return nil
}

func (a *Admin) Franchises() []models.Franchise {
	if a.franchises == nil {
		return nil
	}
	return a.franchises.Franchises
}

func (a *Admin) Users() []models.User {
	if a.users == nil {
		return nil
	}
	return a.users.Users
}

// FilterFranchises applies a name filter and reloads from the first page.
func (a *Admin) FilterFranchises(ctx context.Context, term string) error {
	a.franchiseFilter = term
	a.franchisePage = 0
	return a.loadFranchises(ctx)
}

// FilterUsers applies a name filter and reloads from the first page.
func (a *Admin) FilterUsers(ctx context.Context, term string) error {
	a.userFilter = term
	a.userPage = 0
	return a.loadUsers(ctx)
}

// NextFranchisePage advances when the server reported more results.
func (a *Admin) NextFranchisePage(ctx context.Context) error {
	if a.franchises == nil || !a.franchises.More {
		return nil
	}
	a.franchisePage++
	return a.loadFranchises(ctx)
}

func (a *Admin) PrevFranchisePage(ctx context.Context) error {
	if a.franchisePage == 0 {
		return nil
	}
	a.franchisePage--
	return a.loadFranchises(ctx)
}

// NextUserPage advances when the server reported more results.
func (a *Admin) NextUserPage(ctx context.Context) error {
	if a.users == nil || !a.users.More {
		return nil
	}
	a.userPage++
	return a.loadUsers(ctx)
}

func (a *Admin) PrevUserPage(ctx context.Context) error {
	if a.userPage == 0 {
		return nil
	}
	a.userPage--
	return a.loadUsers(ctx)
}

// CreateFranchise registers a franchise under the given admin email and
// reloads the list.
func (a *Admin) CreateFranchise(ctx context.Context, name, adminEmail string) (*models.Franchise, error) {
	franchise, err := a.api.CreateFranchise(ctx, name, adminEmail)
	if err != nil {
		return nil, err
	}

	a.logger.Info("franchise created", map[string]interface{}{
		"franchise": franchise.Name,
		"admin":     adminEmail,
	})
	return franchise, a.loadFranchises(ctx)
}

// RequestCloseFranchise records the franchise as pending close.
func (a *Admin) RequestCloseFranchise(id models.ID) error {
	for _, franchise := range a.Franchises() {
		if franchise.ID == id {
			a.confirm.request(CloseTarget{
				Kind: CloseFranchise,
				ID:   franchise.ID,
				Name: franchise.Name,
			})
			return nil
		}
	}
	return errors.NewValidationFailedError(fmt.Sprintf("unknown franchise %q", id))
}

// RequestCloseStore records a store in the listed franchises as pending
// close.
func (a *Admin) RequestCloseStore(franchiseID, storeID models.ID) error {
	for _, franchise := range a.Franchises() {
		if franchise.ID != franchiseID {
			continue
		}
		if store, ok := franchise.FindStore(storeID); ok {
			a.confirm.request(CloseTarget{
				Kind:        CloseStore,
				ID:          store.ID,
				Name:        store.Name,
				FranchiseID: franchise.ID,
			})
			return nil
		}
	}
	return errors.NewValidationFailedError(fmt.Sprintf("unknown store %q", storeID))
}

// PendingClose returns the entity awaiting confirmation, nil otherwise.
func (a *Admin) PendingClose() *CloseTarget {
	return a.confirm.pending()
}

// CancelClose drops the pending close without any network call.
func (a *Admin) CancelClose() {
	a.confirm.cancel()
}

// ConfirmClose deletes the pending entity and reloads the franchise list.
func (a *Admin) ConfirmClose(ctx context.Context) error {
	target, ok := a.confirm.take()
	if !ok {
		return errors.NewValidationFailedError("no close pending")
	}

	var err error
	switch target.Kind {
	case CloseFranchise:
		err = a.api.DeleteFranchise(ctx, target.ID)
	case CloseStore:
		err = a.api.DeleteStore(ctx, target.FranchiseID, target.ID)
	}
	if err != nil {
		return err
	}

	a.logger.Info("closed", map[string]interface{}{
		"kind": string(target.Kind),
		"name": target.Name,
	})
	return a.loadFranchises(ctx)
}

// DeleteUser removes the user and refetches the current page so the list
// reflects the server's copy.
func (a *Admin) DeleteUser(ctx context.Context, id models.ID) error {
	if err := a.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	return a.loadUsers(ctx)
}
