// Package checkout coordinates the order workflow: menu selection, checkout
// confirmation, order submission, payment receipt and verification.
package checkout

import (
	"context"
	"fmt"

	"pizza-storefront/internal/cart"
	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/errors"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/common/metrics"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

// State is one step of the checkout workflow.
type State string

const (
	// StateBrowsing is the resting state before the order view opens.
	StateBrowsing State = "browsing"
	// StateSelecting means the order view is open: menu and stores loaded,
	// cart being built.
	StateSelecting State = "selecting"
	// StateConfirming is the payment confirmation view.
	StateConfirming State = "confirming"
	// StateAwaitingAuth means an anonymous visitor hit checkout and was
	// redirected to login with their cart retained.
	StateAwaitingAuth State = "awaiting-auth"
	// StateSubmitting covers the in-flight order POST.
	StateSubmitting State = "submitting"
	// StateDelivered shows the committed order and its JWT.
	StateDelivered State = "delivered"
)

// Workflow is the checkout state machine. Methods invoked in the wrong state
// fail with an invalid-transition error and leave state unchanged.
// Not safe for concurrent use; the shell drives it from one event loop.
type Workflow struct {
	api     *client.Client
	session *session.Store
	cart    *cart.Cart
	logger  logger.Logger

	state      State
	menu       []models.MenuItem
	franchises []models.Franchise
	receipt    *models.OrderReceipt

	// resumePending is the single-slot resume intent carried through the
	// login redirect, consumed exactly once.
	resumePending bool
}

func New(api *client.Client, sess *session.Store, log logger.Logger) *Workflow {
	w := &Workflow{
		api:     api,
		session: sess,
		cart:    cart.New(),
		logger:  log.WithFields(map[string]interface{}{"component": "checkout"}),
		state:   StateBrowsing,
	}

	// A successful login while parked at the auth gate resumes the pending
	// checkout automatically.
	sess.Subscribe(func(user *models.User) {
		if user != nil {
			w.resumeAfterLogin()
		}
	})

	return w
}

func (w *Workflow) State() State {
	return w.state
}

func (w *Workflow) Cart() *cart.Cart {
	return w.cart
}

func (w *Workflow) Menu() []models.MenuItem {
	return w.menu
}

func (w *Workflow) Franchises() []models.Franchise {
	return w.franchises
}

// Receipt returns the committed order and JWT once delivered.
func (w *Workflow) Receipt() *models.OrderReceipt {
	return w.receipt
}

// OpenOrderView loads the menu and the franchise/store list and enters the
// selecting state. Both fetches are read-only and safe to re-issue.
func (w *Workflow) OpenOrderView(ctx context.Context) error {
	menu, err := w.api.Menu(ctx)
	if err != nil {
		return err
	}
	franchises, err := w.api.ListFranchises(ctx)
	if err != nil {
		return err
	}

	w.menu = menu
	w.franchises = franchises
	w.state = StateSelecting
	return nil
}

// SelectStore sets the active store, resolving its franchise from the
// loaded list. It clears nothing else.
func (w *Workflow) SelectStore(storeID models.ID) error {
	if w.state != StateSelecting {
		return errors.NewInvalidTransitionError(string(w.state), "select-store")
	}

	for _, franchise := range w.franchises {
		if store, ok := franchise.FindStore(storeID); ok {
			w.cart.SelectStore(franchise.ID, store.ID)
			return nil
		}
	}
	return errors.NewValidationFailedError(fmt.Sprintf("unknown store %q", storeID))
}

// AddPizza puts the identified menu item in the cart. The same pizza may be
// added repeatedly.
func (w *Workflow) AddPizza(menuID models.ID) error {
	if w.state != StateSelecting {
		return errors.NewInvalidTransitionError(string(w.state), "add-pizza")
	}

	for _, item := range w.menu {
		if item.ID == menuID {
			w.cart.AddItem(item)
			return nil
		}
	}
	return errors.NewValidationFailedError(fmt.Sprintf("unknown menu item %q", menuID))
}

// RemovePizza drops the cart line at index.
func (w *Workflow) RemovePizza(index int) error {
	if w.state != StateSelecting {
		return errors.NewInvalidTransitionError(string(w.state), "remove-pizza")
	}
	return w.cart.RemoveItem(index)
}

// Checkout moves to the confirmation view. Anonymous visitors are parked at
// the auth gate instead, keeping the cart, and resume automatically after
// login.
func (w *Workflow) Checkout() error {
	if w.state != StateSelecting {
		return errors.NewInvalidTransitionError(string(w.state), "checkout")
	}
	if !w.cart.CanCheckout() {
		return errors.NewCartNotReadyError(
			fmt.Sprintf("storeId=%q items=%d", w.cart.StoreID(), w.cart.Count()))
	}

	if !w.session.IsAuthenticated() {
		w.resumePending = true
		w.state = StateAwaitingAuth
		return nil
	}

	w.state = StateConfirming
	return nil
}

// resumeAfterLogin consumes the resume intent set by an anonymous checkout.
func (w *Workflow) resumeAfterLogin() {
	if w.state != StateAwaitingAuth || !w.resumePending {
		return
	}
	w.resumePending = false
	w.state = StateConfirming
}

// Pay submits the order. On failure the confirmation view stays active, the
// cart is preserved and the server's message is surfaced; the user may retry
// or cancel. On success the cart is cleared and the JWT receipt shown.
func (w *Workflow) Pay(ctx context.Context) (*models.OrderReceipt, error) {
	if w.state != StateConfirming {
		return nil, errors.NewInvalidTransitionError(string(w.state), "pay")
	}

	order, err := w.cart.Order()
	if err != nil {
		return nil, err
	}

	w.state = StateSubmitting
	receipt, err := w.api.SubmitOrder(ctx, order)
	if err != nil {
		w.state = StateConfirming
		metrics.OrdersSubmitted.WithLabelValues("failed").Inc()
		w.logger.Warn("order submission failed", map[string]interface{}{
			"error": errors.UserMessage(err),
		})
		return nil, err
	}

	metrics.OrdersSubmitted.WithLabelValues("succeeded").Inc()
	metrics.OrderRevenue.Observe(receipt.Order.Total())
	w.logger.Info("order delivered", map[string]interface{}{
		"orderId": receipt.Order.ID,
		"total":   receipt.Order.Total(),
	})

	w.cart.Clear()
	w.receipt = receipt
	w.state = StateDelivered
	return receipt, nil
}

// Cancel discards the pending selection from the confirmation view and
// returns to the order view. No network call is made.
func (w *Workflow) Cancel() error {
	if w.state != StateConfirming {
		return errors.NewInvalidTransitionError(string(w.state), "cancel")
	}
	w.cart.Clear()
	w.state = StateSelecting
	return nil
}

// OrderMore clears the delivered receipt and returns to the order view.
func (w *Workflow) OrderMore() error {
	if w.state != StateDelivered {
		return errors.NewInvalidTransitionError(string(w.state), "order-more")
	}
	w.receipt = nil
	w.state = StateSelecting
	return nil
}

// Verify checks the delivered order's JWT against the verification endpoint.
// Read-only: whatever the verdict, order state is untouched.
func (w *Workflow) Verify(ctx context.Context) (*models.VerifyResult, error) {
	if w.state != StateDelivered || w.receipt == nil {
		return nil, errors.NewInvalidTransitionError(string(w.state), "verify")
	}
	return w.api.Verify(ctx, w.receipt.JWT)
}

// ReceiptClaims decodes the receipt JWT's claims without verifying the
// signature, for display next to the server verdict. Verification belongs
// to the backend; an undecodable token just yields nil.
func (w *Workflow) ReceiptClaims() map[string]interface{} {
	if w.receipt == nil {
		return nil
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(w.receipt.JWT, claims); err != nil {
		return nil
	}
	return claims
}
