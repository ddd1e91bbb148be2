// Package dashboard implements the role-gated views: diner order history,
// franchisee store management and the admin console.
package dashboard

import (
	"context"
	"fmt"

	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"
)

// Dashboard is a role-gated view. Load fetches everything the view needs;
// it fails with an authorization error when the session lacks the role.
type Dashboard interface {
	Role() models.RoleName
	Load(ctx context.Context) error
}

// requireRole returns the current user when they hold the given role.
func requireRole(sess *session.Store, role models.RoleName) (*models.User, error) {
	user := sess.Current()
	if user == nil {
		return nil, errors.NewSessionExpiredError("no active session")
	}
	if !user.HasRole(role) {
		return nil, errors.NewAuthorizationDeniedError(
			fmt.Sprintf("role %q required", role), 403)
	}
	return user, nil
}
