// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/checkout"
	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/testutil"
)

// TestAnonymousOrderFlow walks the full storefront journey: browse the menu
// anonymously, build a cart, hit the login wall at checkout, authenticate,
// pay, and verify the receipt JWT.
func TestAnonymousOrderFlow(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()

	// Home page, anonymous.
	view, err := h.Shell.Navigate(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, "The web's best pizza", view.Title)

	// Order view: menu and stores load.
	view, err = h.Shell.Navigate(ctx, "/menu")
	require.NoError(t, err)
	assert.Contains(t, view.Body, "Veggie")
	assert.Contains(t, view.Body, "Springville")

	// Build the cart.
	require.NoError(t, h.Checkout.SelectStore("4"))
	require.NoError(t, h.Checkout.AddPizza("1"))
	require.NoError(t, h.Checkout.AddPizza("2"))
	assert.Equal(t, 2, h.Checkout.Cart().Count())

	// Checkout while anonymous lands on the login view.
	view, err = h.Shell.Navigate(ctx, "/payment")
	require.NoError(t, err)
	assert.Equal(t, "login", view.Name)
	assert.Equal(t, checkout.StateAwaitingAuth, h.Checkout.State())

	// Login resumes exactly at the confirmation with the cart intact.
	view, err = h.Shell.Login(ctx, "d@jwt.com", "a")
	require.NoError(t, err)
	assert.Equal(t, "payment", view.Name)
	assert.Contains(t, view.Body, "Send me those 2 pizzas right now!")
	assert.Contains(t, view.Body, "0.008")

	// Pay.
	receipt, err := h.Checkout.Pay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "23", receipt.Order.ID.String())
	assert.Equal(t, 0, h.Checkout.Cart().Count())

	view, err = h.Shell.Navigate(ctx, "/delivery")
	require.NoError(t, err)
	assert.Contains(t, view.Body, "jwt: eyJpYXQ")

	// Verify the receipt.
	result, err := h.Checkout.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, "valid", result.Message)
	assert.Equal(t, checkout.StateDelivered, h.Checkout.State())

	// Order history now renders for the diner.
	view, err = h.Shell.Navigate(ctx, "/diner-dashboard")
	require.NoError(t, err)
	assert.Equal(t, "diner", view.Name)
	assert.True(t, h.Shell.Diner().HasOrders())
}

// TestPaymentDeclinedFlow exercises the failure branch: a 500 on order
// submission keeps the cart and the confirmation view alive.
func TestPaymentDeclinedFlow(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.OrderStatus = 500
	ctx := context.Background()

	_, err := h.Shell.Login(ctx, "d@jwt.com", "a")
	require.NoError(t, err)

	_, err = h.Shell.Navigate(ctx, "/menu")
	require.NoError(t, err)
	require.NoError(t, h.Checkout.SelectStore("4"))
	require.NoError(t, h.Checkout.AddPizza("1"))

	_, err = h.Shell.Navigate(ctx, "/payment")
	require.NoError(t, err)

	_, err = h.Checkout.Pay(ctx)
	require.Error(t, err)
	assert.Equal(t, "Payment failed", errors.UserMessage(err))
	assert.Equal(t, checkout.StateConfirming, h.Checkout.State())
	assert.Equal(t, 1, h.Checkout.Cart().Count())
}

// TestFranchiseeFlow covers the store management journey: load the owned
// franchise, create a store, close one behind the two-step confirm.
func TestFranchiseeFlow(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.LoginUser = map[string]interface{}{
		"id": "2", "name": "Franchise Owner", "email": "f@jwt.com",
		"roles": []map[string]interface{}{{"role": "franchisee", "objectId": "1"}},
	}
	ctx := context.Background()

	_, err := h.Shell.Login(ctx, "d@jwt.com", "a")
	require.NoError(t, err)

	view, err := h.Shell.Navigate(ctx, "/franchise-dashboard")
	require.NoError(t, err)
	assert.Equal(t, "franchise", view.Name)

	fr := h.Shell.Franchisee()
	assert.Equal(t, "LotaPizza", fr.Franchise().Name)

	_, err = fr.CreateStore(ctx, "Provo")
	require.NoError(t, err)

	// Cancel the close: no DELETE issued.
	require.NoError(t, fr.RequestCloseStore("5"))
	fr.CancelClose()
	assert.Equal(t, 0, h.Backend.DeleteCount("/api/franchise"))

	// Confirm the close: exactly one DELETE.
	require.NoError(t, fr.RequestCloseStore("5"))
	require.NoError(t, fr.ConfirmClose(ctx))
	assert.Equal(t, 1, h.Backend.CallCount("DELETE", "/api/franchise/1/store/5"))
}

// TestAdminFlow covers the console: list, filter, create, close, delete.
func TestAdminFlow(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.LoginUser = map[string]interface{}{
		"id": "1", "name": "Admin User", "email": "a@jwt.com",
		"roles": []map[string]interface{}{{"role": "admin"}},
	}
	ctx := context.Background()

	_, err := h.Shell.Login(ctx, "d@jwt.com", "a")
	require.NoError(t, err)

	view, err := h.Shell.Navigate(ctx, "/admin-dashboard")
	require.NoError(t, err)
	assert.Equal(t, "admin", view.Name)

	admin := h.Shell.Admin()
	assert.Len(t, admin.Franchises(), 2)
	assert.Len(t, admin.Users(), 3)

	require.NoError(t, admin.FilterUsers(ctx, "Kai"))
	require.Len(t, admin.Users(), 1)

	_, err = admin.CreateFranchise(ctx, "PizzaPlanet", "planet@jwt.com")
	require.NoError(t, err)

	require.NoError(t, admin.RequestCloseFranchise("2"))
	require.NoError(t, admin.ConfirmClose(ctx))
	assert.Equal(t, 1, h.Backend.CallCount("DELETE", "/api/franchise/2"))

	require.NoError(t, admin.FilterUsers(ctx, ""))
	require.NoError(t, admin.DeleteUser(ctx, "3"))
	assert.Len(t, admin.Users(), 2)
}

// TestSessionSurvivesRestart: a persisted token is re-validated on startup
// and re-establishes the session without a fresh login.
func TestSessionSurvivesRestart(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.MeUser = map[string]interface{}{
		"id": "3", "name": "Kai Chen", "email": "d@jwt.com",
		"roles": []map[string]interface{}{{"role": "diner"}},
	}
	ctx := context.Background()

	_, err := h.Shell.Login(ctx, "d@jwt.com", "a")
	require.NoError(t, err)

	// "Restart": a new stack sharing the same token file.
	h2 := testutil.Rebuild(t, h)
	user, err := h2.Session.Restore(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Kai Chen", user.Name)
	assert.True(t, h2.Session.IsAuthenticated())
}
