package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/testutil"
)

func loginAs(t *testing.T, h *testutil.Harness, user map[string]interface{}) {
	t.Helper()
	h.Backend.LoginUser = user
	_, err := h.Session.Login(context.Background(), "d@jwt.com", "a")
	require.NoError(t, err)
}

func adminUser() map[string]interface{} {
	return map[string]interface{}{
		"id": "1", "name": "Admin User", "email": "a@jwt.com",
		"roles": []map[string]interface{}{{"role": "admin"}},
	}
}

func franchiseeUser() map[string]interface{} {
	return map[string]interface{}{
		"id": "2", "name": "Franchise Owner", "email": "f@jwt.com",
		"roles": []map[string]interface{}{{"role": "franchisee", "objectId": "1"}},
	}
}

func TestDinerDashboardShowsHistory(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()

	loginAs(t, h, map[string]interface{}{
		"id": "3", "name": "Kai Chen", "email": "d@jwt.com",
		"roles": []map[string]interface{}{{"role": "diner"}},
	})

	diner := h.Shell.Diner()
	require.NoError(t, diner.Load(ctx))
	assert.Equal(t, models.RoleDiner, diner.Role())
	assert.Equal(t, "Kai Chen", diner.User().Name)
	assert.True(t, diner.HasOrders())
	require.Len(t, diner.Orders(), 1)
	assert.Equal(t, "Veggie", diner.Orders()[0].Items[0].Description)
}

func TestDinerDashboardRequiresSession(t *testing.T) {
	h := testutil.NewHarness(t)

	err := h.Shell.Diner().Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionExpired, errors.CodeOf(err))
}

func TestFranchiseeLoadsOwnedFranchise(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, franchiseeUser())

	fr := h.Shell.Franchisee()
	require.NoError(t, fr.Load(ctx))
	require.NotNil(t, fr.Franchise())
	assert.Equal(t, "LotaPizza", fr.Franchise().Name)
	require.Len(t, fr.Stores(), 2)
	assert.InDelta(t, 200, fr.Stores()[1].TotalRevenue, 1e-9)
}

func TestFranchiseeDeniedWithoutRole(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	err := h.Shell.Franchisee().Load(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthorizationDenied, errors.CodeOf(err))
}

func TestFranchiseeCreateStore(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, franchiseeUser())

	fr := h.Shell.Franchisee()
	require.NoError(t, fr.Load(ctx))

	store, err := fr.CreateStore(ctx, "Provo")
	require.NoError(t, err)
	assert.Equal(t, "Provo", store.Name)
	assert.Equal(t, 1, h.Backend.CallCount("POST", "/api/franchise/1/store"))
}

func TestCloseStoreTwoStepConfirm(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, franchiseeUser())

	fr := h.Shell.Franchisee()
	require.NoError(t, fr.Load(ctx))

	t.Run("cancel performs no delete", func(t *testing.T) {
		require.NoError(t, fr.RequestCloseStore("4"))
		require.NotNil(t, fr.PendingClose())
		assert.Equal(t, "Lehi", fr.PendingClose().Name)

		fr.CancelClose()
		assert.Nil(t, fr.PendingClose())
		assert.Equal(t, 0, h.Backend.DeleteCount("/api/franchise"))
	})

	t.Run("confirm deletes exactly once", func(t *testing.T) {
		require.NoError(t, fr.RequestCloseStore("4"))
		require.NoError(t, fr.ConfirmClose(ctx))
		assert.Equal(t, 1, h.Backend.CallCount("DELETE", "/api/franchise/1/store/4"))
		assert.Nil(t, fr.PendingClose())

		// A second confirm with no pending target does nothing remotely.
		err := fr.ConfirmClose(ctx)
		require.Error(t, err)
		assert.Equal(t, 1, h.Backend.DeleteCount("/api/franchise"))
	})
}

func TestAdminListsFranchisesAndUsers(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))
	assert.Len(t, admin.Franchises(), 2)
	assert.Len(t, admin.Users(), 3)
}

func TestAdminDeniedForDiner(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, map[string]interface{}{
		"id": "3", "name": "Kai Chen", "email": "d@jwt.com",
		"roles": []map[string]interface{}{{"role": "diner"}},
	})

	err := h.Shell.Admin().Load(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAuthorizationDenied, errors.CodeOf(err))
}

func TestAdminFilterUsers(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))

	require.NoError(t, admin.FilterUsers(ctx, "Kai"))
	require.Len(t, admin.Users(), 1)
	assert.Equal(t, "Kai Chen", admin.Users()[0].Name)

	// An empty filter restores the full page.
	require.NoError(t, admin.FilterUsers(ctx, ""))
	assert.Len(t, admin.Users(), 3)
}

func TestAdminFilterFranchises(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))

	require.NoError(t, admin.FilterFranchises(ctx, "Lota"))
	require.Len(t, admin.Franchises(), 1)
	assert.Equal(t, "LotaPizza", admin.Franchises()[0].Name)
}

func TestAdminCreateFranchise(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))

	franchise, err := admin.CreateFranchise(ctx, "PizzaPlanet", "planet@jwt.com")
	require.NoError(t, err)
	assert.Equal(t, "PizzaPlanet", franchise.Name)
	require.Len(t, franchise.Admins, 1)
	assert.Equal(t, "planet@jwt.com", franchise.Admins[0].Email)
}

func TestAdminCloseFranchiseTwoStep(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))

	require.NoError(t, admin.RequestCloseFranchise("2"))
	assert.Equal(t, "PizzaCorp", admin.PendingClose().Name)

	admin.CancelClose()
	assert.Equal(t, 0, h.Backend.DeleteCount("/api/franchise"))
	require.Len(t, admin.Franchises(), 2)

	require.NoError(t, admin.RequestCloseFranchise("2"))
	require.NoError(t, admin.ConfirmClose(ctx))
	assert.Equal(t, 1, h.Backend.CallCount("DELETE", "/api/franchise/2"))

	// The refreshed list no longer carries the closed franchise.
	names := []string{}
	for _, f := range admin.Franchises() {
		names = append(names, f.Name)
	}
	assert.NotContains(t, names, "PizzaCorp")
}

func TestAdminDeleteUserRefetchesList(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))
	require.Len(t, admin.Users(), 3)

	require.NoError(t, admin.DeleteUser(ctx, "3"))
	assert.Equal(t, 1, h.Backend.CallCount("DELETE", "/api/user/3"))
	require.Len(t, admin.Users(), 2)

	names := []string{}
	for _, u := range admin.Users() {
		names = append(names, u.Name)
	}
	assert.NotContains(t, names, "Pizza User")
}

func TestAdminUnknownCloseTargetRejected(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()
	loginAs(t, h, adminUser())

	admin := h.Shell.Admin()
	require.NoError(t, admin.Load(ctx))

	err := admin.RequestCloseFranchise("99")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
	assert.Nil(t, admin.PendingClose())
}
