// Package shell is the view dispatcher: it maps paths to views, hides
// role-gated entries, and forwards form actions to the session store and
// checkout workflow.
package shell

import (
	"context"
	"fmt"
	"strings"

	"pizza-storefront/internal/checkout"
	"pizza-storefront/internal/client"
	"pizza-storefront/internal/common/logger"
	"pizza-storefront/internal/dashboard"
	"pizza-storefront/internal/models"
	"pizza-storefront/internal/session"
)

// Link is a navigation entry offered to the current user.
type Link struct {
	Path  string
	Label string
}

type Shell struct {
	api      *client.Client
	session  *session.Store
	checkout *checkout.Workflow

	diner      *dashboard.Diner
	franchisee *dashboard.Franchisee
	admin      *dashboard.Admin

	logger logger.Logger
}

func New(api *client.Client, sess *session.Store, wf *checkout.Workflow, log logger.Logger) *Shell {
	return &Shell{
		api:        api,
		session:    sess,
		checkout:   wf,
		diner:      dashboard.NewDiner(api, sess, log),
		franchisee: dashboard.NewFranchisee(api, sess, log),
		admin:      dashboard.NewAdmin(api, sess, log),
		logger:     log.WithFields(map[string]interface{}{"component": "shell"}),
	}
}

func (s *Shell) Checkout() *checkout.Workflow {
	return s.checkout
}

func (s *Shell) Diner() *dashboard.Diner {
	return s.diner
}

func (s *Shell) Franchisee() *dashboard.Franchisee {
	return s.franchisee
}

func (s *Shell) Admin() *dashboard.Admin {
	return s.admin
}

// Links lists the navigation entries the current user may follow. Gated
// entries are hidden, not disabled; the backend stays the authority on
// every mutating call.
func (s *Shell) Links() []Link {
	links := []Link{
		{Path: "/", Label: "Home"},
		{Path: "/menu", Label: "Order"},
		{Path: "/about", Label: "About"},
		{Path: "/history", Label: "History"},
		{Path: "/docs", Label: "Docs"},
	}

	user := s.session.Current()
	if user == nil {
		return append(links,
			Link{Path: "/login", Label: "Login"},
			Link{Path: "/register", Label: "Register"},
		)
	}

	links = append(links, Link{Path: "/diner-dashboard", Label: s.session.Initials()})
	if user.HasRole(models.RoleFranchisee) {
		links = append(links, Link{Path: "/franchise-dashboard", Label: "Franchise"})
	}
	if user.HasRole(models.RoleAdmin) {
		links = append(links, Link{Path: "/admin-dashboard", Label: "Admin"})
	}
	return append(links, Link{Path: "/logout", Label: "Logout"})
}

// Navigate renders the view for path. An unmatched path yields the Oops
// view, never an error; gated views surface their load errors to the
// caller alongside a fallback view.
func (s *Shell) Navigate(ctx context.Context, path string) (*View, error) {
	switch path {
	case "/":
		return &View{Name: "home", Title: homeTitle, Body: homeBody}, nil
	case "/about":
		return &View{Name: "about", Title: aboutTitle, Body: aboutBody}, nil
	case "/history":
		return &View{Name: "history", Title: historyTitle, Body: historyBody}, nil
	case "/menu":
		return s.menuView(ctx)
	case "/payment":
		return s.paymentView()
	case "/delivery":
		return s.deliveryView()
	case "/login":
		return &View{Name: "login", Title: loginTitle}, nil
	case "/register":
		return &View{Name: "register", Title: registerTitle}, nil
	case "/logout":
		return s.logoutView(ctx)
	case "/diner-dashboard":
		return s.dashboardView(ctx, "diner", dinerTitle, s.diner)
	case "/franchise-dashboard":
		return s.franchiseView(ctx)
	case "/admin-dashboard":
		return s.dashboardView(ctx, "admin", adminTitle, s.admin)
	case "/docs":
		return s.docsView(ctx)
	}

	s.logger.Warn("unmatched route", map[string]interface{}{"path": path})
	return &View{Name: "not-found", Title: oopsTitle, Body: oopsBody}, nil
}

// Login submits the login form. On failure the login view stays active and
// the error carries the server's message; on success the view is the home
// page, or the payment page when a checkout was parked behind the login.
func (s *Shell) Login(ctx context.Context, email, password string) (*View, error) {
	if _, err := s.session.Login(ctx, email, password); err != nil {
		return &View{Name: "login", Title: loginTitle}, err
	}
	return s.afterAuth()
}

// Register submits the registration form with the same routing as Login.
func (s *Shell) Register(ctx context.Context, name, email, password string) (*View, error) {
	if _, err := s.session.Register(ctx, name, email, password); err != nil {
		return &View{Name: "register", Title: registerTitle}, err
	}
	return s.afterAuth()
}

// afterAuth resumes a parked checkout if the login consumed one.
func (s *Shell) afterAuth() (*View, error) {
	if s.checkout.State() == checkout.StateConfirming {
		return s.paymentView()
	}
	return &View{Name: "home", Title: homeTitle, Body: homeBody}, nil
}

func (s *Shell) logoutView(ctx context.Context) (*View, error) {
	message := s.session.Logout(ctx)
	return &View{Name: "home", Title: homeTitle, Body: message}, nil
}

func (s *Shell) menuView(ctx context.Context) (*View, error) {
	if err := s.checkout.OpenOrderView(ctx); err != nil {
		return &View{Name: "menu", Title: menuTitle}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Selected pizzas: %d\n", s.checkout.Cart().Count())
	for _, item := range s.checkout.Menu() {
		fmt.Fprintf(&b, "%s %s %s\n", item.Title, FormatPrice(item.Price), item.Description)
	}
	for _, franchise := range s.checkout.Franchises() {
		for _, store := range franchise.Stores {
			fmt.Fprintf(&b, "%s\n", store.Name)
		}
	}
	return &View{Name: "menu", Title: menuTitle, Body: b.String()}, nil
}

// paymentView drives the checkout transition: an anonymous visitor lands on
// the login view with the cart intact, a ready cart lands on confirmation.
func (s *Shell) paymentView() (*View, error) {
	if s.checkout.State() == checkout.StateSelecting {
		if err := s.checkout.Checkout(); err != nil {
			return &View{Name: "menu", Title: menuTitle}, err
		}
	}

	switch s.checkout.State() {
	case checkout.StateAwaitingAuth:
		return &View{Name: "login", Title: loginTitle}, nil
	case checkout.StateConfirming:
		cart := s.checkout.Cart()
		body := fmt.Sprintf("Send me those %d pizzas right now!\nTotal: %s ₿",
			cart.Count(), FormatPrice(cart.TotalPrice()))
		return &View{Name: "payment", Title: paymentTitle, Body: body}, nil
	}
	return &View{Name: "not-found", Title: oopsTitle, Body: oopsBody}, nil
}

func (s *Shell) deliveryView() (*View, error) {
	receipt := s.checkout.Receipt()
	if receipt == nil {
		return &View{Name: "not-found", Title: oopsTitle, Body: oopsBody}, nil
	}

	body := fmt.Sprintf("order ID: %s\ntotal: %s ₿\njwt: %s",
		receipt.Order.ID, FormatPrice(receipt.Order.Total()), receipt.JWT)
	return &View{Name: "delivery", Title: deliveryTitle, Body: body}, nil
}

func (s *Shell) dashboardView(ctx context.Context, name, title string, d dashboard.Dashboard) (*View, error) {
	if err := d.Load(ctx); err != nil {
		return &View{Name: "not-found", Title: oopsTitle, Body: oopsBody}, err
	}
	return &View{Name: name, Title: title}, nil
}

// franchiseView shows the management dashboard to franchisees and the
// franchise sales pitch to everyone else.
func (s *Shell) franchiseView(ctx context.Context) (*View, error) {
	user := s.session.Current()
	if user == nil || !user.HasRole(models.RoleFranchisee) {
		return &View{Name: "franchise-pitch", Title: franchisePitchTitle}, nil
	}

	if err := s.franchisee.Load(ctx); err != nil {
		return &View{Name: "not-found", Title: oopsTitle, Body: oopsBody}, err
	}
	return &View{Name: "franchise", Title: franchiseTitle}, nil
}

func (s *Shell) docsView(ctx context.Context) (*View, error) {
	docs, err := s.api.Docs(ctx)
	if err != nil {
		return &View{Name: "not-found", Title: oopsTitle, Body: oopsBody}, err
	}
	return &View{Name: "docs", Title: "JWT Pizza API", Body: docs.Render()}, nil
}
