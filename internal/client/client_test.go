package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/testutil"
)

func TestBearerTokenAttachedAtSendTime(t *testing.T) {
	h := testutil.NewHarness(t)
	ctx := context.Background()

	// Anonymous request carries no Authorization header.
	_, err := h.Client.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", h.Backend.LastAuth)

	_, err = h.Session.Login(ctx, "d@jwt.com", "a")
	require.NoError(t, err)

	_, err = h.Client.Menu(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", h.Backend.LastAuth)
}

func TestMenuDecodesNumericIDs(t *testing.T) {
	h := testutil.NewHarness(t)

	menu, err := h.Client.Menu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 3)
	assert.Equal(t, models.ID("1"), menu[0].ID)
	assert.Equal(t, "Veggie", menu[0].Title)
	assert.InDelta(t, 0.0038, menu[0].Price, 1e-9)
}

func TestFranchiseListAcceptsBareArray(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.FranchiseEnvelope = false

	franchises, err := h.Client.ListFranchises(context.Background())
	require.NoError(t, err)
	require.Len(t, franchises, 2)
	assert.Equal(t, "LotaPizza", franchises[0].Name)
	require.Len(t, franchises[0].Stores, 2)
	assert.Equal(t, "Lehi", franchises[0].Stores[0].Name)
}

func TestFranchiseListAcceptsEnvelope(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.FranchiseEnvelope = true
	h.Backend.FranchiseMore = true

	page, err := h.Client.ListFranchisePage(context.Background(), 0, 3, "*")
	require.NoError(t, err)
	assert.True(t, page.More)
	require.Len(t, page.Franchises, 2)
	assert.Equal(t, "PizzaCorp", page.Franchises[1].Name)
}

func TestGetFranchiseTakesMatchingArrayElement(t *testing.T) {
	h := testutil.NewHarness(t)

	franchise, err := h.Client.GetFranchise(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, franchise)
	assert.Equal(t, "LotaPizza", franchise.Name)
	require.Len(t, franchise.Stores, 2)
	assert.InDelta(t, 100, franchise.Stores[0].TotalRevenue, 1e-9)
}

func TestSubmitOrderFailureIsPaymentError(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.OrderStatus = 500
	ctx := context.Background()

	order := &models.Order{
		FranchiseID: "1",
		StoreID:     "4",
		Items:       []models.OrderItem{{MenuID: "1", Description: "Veggie", Price: 0.0038}},
	}

	_, err := h.Client.SubmitOrder(ctx, order)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePaymentFailed, errors.CodeOf(err))
	assert.Equal(t, "Payment failed", errors.UserMessage(err))
}

func TestSubmitOrderValidatesBeforeSending(t *testing.T) {
	h := testutil.NewHarness(t)

	order := &models.Order{StoreID: "4", Items: nil}
	_, err := h.Client.SubmitOrder(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
	assert.Equal(t, 0, h.Backend.CallCount("POST", "/api/order"))
}

func TestSubmitOrderReturnsReceipt(t *testing.T) {
	h := testutil.NewHarness(t)

	order := &models.Order{
		FranchiseID: "1",
		StoreID:     "4",
		Items: []models.OrderItem{
			{MenuID: "1", Description: "Veggie", Price: 0.0038},
			{MenuID: "2", Description: "Pepperoni", Price: 0.0042},
		},
	}

	receipt, err := h.Client.SubmitOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, models.ID("23"), receipt.Order.ID)
	assert.Equal(t, "eyJpYXQ", receipt.JWT)
	assert.InDelta(t, 0.008, receipt.Order.Total(), 1e-9)
}

func TestVerifyValid(t *testing.T) {
	h := testutil.NewHarness(t)

	result, err := h.Client.Verify(context.Background(), "eyJpYXQ")
	require.NoError(t, err)
	assert.Equal(t, "valid", result.Message)
	assert.NotEmpty(t, result.Payload)
}

func TestVerifyInvalidIsVerdictNotError(t *testing.T) {
	h := testutil.NewHarness(t)
	h.Backend.VerifyMessage = "invalid"

	result, err := h.Client.Verify(context.Background(), "bogus")
	require.NoError(t, err)
	assert.Equal(t, "invalid", result.Message)
}

func TestListUsersPassesFilterThrough(t *testing.T) {
	h := testutil.NewHarness(t)

	page, err := h.Client.ListUsers(context.Background(), 0, 10, "*Kai*")
	require.NoError(t, err)
	require.Len(t, page.Users, 1)
	assert.Equal(t, "Kai Chen", page.Users[0].Name)
}

func TestDocs(t *testing.T) {
	h := testutil.NewHarness(t)

	docs, err := h.Client.Docs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", docs.Version)
	require.Len(t, docs.Endpoints, 1)
	assert.Contains(t, docs.Render(), "/api/order/menu")
}

func TestLogoutReturnsMessage(t *testing.T) {
	h := testutil.NewHarness(t)

	msg, err := h.Client.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "logout successful", msg)
}
