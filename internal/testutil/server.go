// Package testutil provides a fake pizza backend for package and e2e tests.
// Its fixtures and response shapes mirror the production API, including the
// endpoints that return numeric ids where others return strings.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Backend is an in-process fake of the pizza API. Zero-value fields fall
// back to the stock fixtures; tests override them before issuing calls.
type Backend struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls map[string]int

	// LoginEmail/LoginPassword are the only accepted credentials.
	LoginEmail    string
	LoginPassword string
	// LoginUser is returned on successful login.
	LoginUser map[string]interface{}
	// MeUser is returned by GET /api/user/me; nil renders JSON null.
	MeUser map[string]interface{}
	// RegisterStatus, when >= 400, fails registration with RegisterMessage.
	RegisterStatus  int
	RegisterMessage string

	// Users backs the admin list; DELETE removes from it.
	Users []map[string]interface{}

	// FranchiseEnvelope switches GET /api/franchise between the bare array
	// and the {franchises, more} envelope.
	FranchiseEnvelope bool
	FranchiseMore     bool
	Franchises        []map[string]interface{}

	// OrderStatus, when >= 400, fails POST /api/order with OrderMessage.
	OrderStatus  int
	OrderMessage string

	// VerifyMessage is the verdict of GET /api/order/verify/:jwt.
	VerifyMessage string

	// LastAuth records the Authorization header of the most recent request.
	LastAuth string
}

// NewBackend starts the fake server with stock fixtures and registers its
// shutdown with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		calls:         map[string]int{},
		LoginEmail:    "d@jwt.com",
		LoginPassword: "a",
		LoginUser: map[string]interface{}{
			"id": "3", "name": "Kai Chen", "email": "d@jwt.com",
			"roles": []map[string]interface{}{{"role": "diner"}},
		},
		Users: []map[string]interface{}{
			{"id": 1, "name": "Admin", "email": "a@jwt.com", "roles": []map[string]interface{}{{"role": "admin"}}},
			{"id": 2, "name": "Kai Chen", "email": "d@jwt.com", "roles": []map[string]interface{}{{"role": "diner"}}},
			{"id": 3, "name": "Pizza User", "email": "p@jwt.com", "roles": []map[string]interface{}{{"role": "diner"}}},
		},
		Franchises: []map[string]interface{}{
			{"id": 1, "name": "LotaPizza", "stores": []map[string]interface{}{
				{"id": 4, "name": "Lehi"}, {"id": 5, "name": "Springville"},
			}},
			{"id": 2, "name": "PizzaCorp", "stores": []map[string]interface{}{
				{"id": 7, "name": "Spanish Fork"},
			}},
		},
		VerifyMessage: "valid",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/auth", b.login)
	mux.HandleFunc("POST /api/auth", b.register)
	mux.HandleFunc("DELETE /api/auth", b.logout)
	mux.HandleFunc("GET /api/user/me", b.me)
	mux.HandleFunc("PUT /api/user/{id}", b.updateUser)
	mux.HandleFunc("GET /api/user", b.listUsers)
	mux.HandleFunc("DELETE /api/user/{id}", b.deleteUser)
	mux.HandleFunc("GET /api/order/menu", b.menu)
	mux.HandleFunc("POST /api/order", b.createOrder)
	mux.HandleFunc("GET /api/order", b.orderHistory)
	mux.HandleFunc("GET /api/order/verify/{jwt}", b.verify)
	mux.HandleFunc("GET /api/franchise", b.listFranchises)
	mux.HandleFunc("GET /api/franchise/{id}", b.getFranchise)
	mux.HandleFunc("POST /api/franchise", b.createFranchise)
	mux.HandleFunc("DELETE /api/franchise/{id}", b.deleteFranchise)
	mux.HandleFunc("POST /api/franchise/{id}/store", b.createStore)
	mux.HandleFunc("DELETE /api/franchise/{id}/store/{storeId}", b.deleteStore)
	mux.HandleFunc("GET /api/docs", b.docs)

	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.record(r)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) URL() string {
	return b.srv.URL
}

func (b *Backend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[r.Method+" "+r.URL.Path]++
	if auth := r.Header.Get("Authorization"); auth != "" {
		b.LastAuth = auth
	}
}

// CallCount returns how many requests hit the exact method and path.
func (b *Backend) CallCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method+" "+path]
}

// DeleteCount sums DELETE requests whose path starts with prefix.
func (b *Backend) DeleteCount(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for key, n := range b.calls {
		if strings.HasPrefix(key, "DELETE "+prefix) {
			total += n
		}
	}
	return total
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Email != b.LoginEmail || req.Password != b.LoginPassword {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": b.LoginUser, "token": "test-token"})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	if b.RegisterStatus >= 400 {
		writeJSON(w, b.RegisterStatus, map[string]string{"message": b.RegisterMessage})
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	user := map[string]interface{}{
		"id": "4", "name": req.Name, "email": req.Email,
		"roles": []map[string]interface{}{{"role": "diner"}},
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "token": "test-token"})
}

func (b *Backend) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logout successful"})
}

func (b *Backend) me(w http.ResponseWriter, _ *http.Request) {
	if b.MeUser == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, b.MeUser)
}

func (b *Backend) updateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	user := map[string]interface{}{
		"id": r.PathValue("id"), "name": req.Name, "email": req.Email,
		"roles": []map[string]interface{}{{"role": "diner"}},
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user, "token": "test-token"})
}

// matches applies the server's glob filter: "*" matches all, "*term*"
// matches names containing term.
func matches(pattern, name string) bool {
	if pattern == "" || pattern == "*" {
		return true
	}
	return strings.Contains(name, strings.Trim(pattern, "*"))
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("name")

	b.mu.Lock()
	var users []map[string]interface{}
	for _, u := range b.Users {
		if name, _ := u["name"].(string); matches(pattern, name) {
			users = append(users, u)
		}
	}
	b.mu.Unlock()

	if users == nil {
		users = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users, "more": false})
}

func (b *Backend) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	kept := b.Users[:0]
	for _, u := range b.Users {
		if fmt.Sprintf("%v", u["id"]) != id {
			kept = append(kept, u)
		}
	}
	b.Users = kept
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

func (b *Backend) menu(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]interface{}{
		{"id": 1, "title": "Veggie", "image": "pizza1.png", "price": 0.0038, "description": "A garden of delight"},
		{"id": 2, "title": "Pepperoni", "image": "pizza2.png", "price": 0.0042, "description": "Spicy treat"},
		{"id": 3, "title": "Margarita", "image": "pizza3.png", "price": 0.0014, "description": "Essential classic"},
	})
}

func (b *Backend) createOrder(w http.ResponseWriter, r *http.Request) {
	if b.OrderStatus >= 400 {
		message := b.OrderMessage
		if message == "" {
			message = "Payment failed"
		}
		writeJSON(w, b.OrderStatus, map[string]string{"message": message})
		return
	}

	var order map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&order)
	order["id"] = 23
	order["date"] = "2024-01-01T00:00:00.000Z"
	writeJSON(w, http.StatusOK, map[string]interface{}{"order": order, "jwt": "eyJpYXQ"})
}

func (b *Backend) orderHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dinerId": "3",
		"orders": []map[string]interface{}{
			{
				"id": "1", "franchiseId": "1", "storeId": "4",
				"date": "2024-01-01T00:00:00.000Z",
				"items": []map[string]interface{}{
					{"menuId": "1", "description": "Veggie", "price": 0.0038},
				},
			},
		},
		"page": 1,
	})
}

func (b *Backend) verify(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	if b.VerifyMessage != "valid" {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]interface{}{
		"message": b.VerifyMessage,
		"payload": map[string]interface{}{
			"vendor": map[string]interface{}{"id": "test", "name": "Test Vendor"},
			"diner":  map[string]interface{}{"id": "3", "name": "Kai Chen", "email": "d@jwt.com"},
			"order":  map[string]interface{}{"items": []interface{}{}, "franchiseId": "1", "storeId": "4", "id": "23"},
		},
	})
}

func (b *Backend) listFranchises(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("name")

	b.mu.Lock()
	var franchises []map[string]interface{}
	for _, f := range b.Franchises {
		if name, _ := f["name"].(string); matches(pattern, name) {
			franchises = append(franchises, f)
		}
	}
	envelope := b.FranchiseEnvelope
	more := b.FranchiseMore
	b.mu.Unlock()

	if franchises == nil {
		franchises = []map[string]interface{}{}
	}
	if envelope {
		writeJSON(w, http.StatusOK, map[string]interface{}{"franchises": franchises, "more": more})
		return
	}
	writeJSON(w, http.StatusOK, franchises)
}

func (b *Backend) getFranchise(w http.ResponseWriter, r *http.Request) {
	// The detail endpoint fulfills a one-element array.
	writeJSON(w, http.StatusOK, []map[string]interface{}{
		{
			"id": r.PathValue("id"), "name": "LotaPizza",
			"admins": []map[string]interface{}{
				{"id": "2", "name": "Franchise Owner", "email": "f@jwt.com"},
			},
			"stores": []map[string]interface{}{
				{"id": "4", "name": "Lehi", "totalRevenue": 100},
				{"id": "5", "name": "Springville", "totalRevenue": 200},
			},
		},
	})
}

func (b *Backend) createFranchise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Admins []struct {
			Email string `json:"email"`
		} `json:"admins"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	admins := []map[string]interface{}{}
	if len(req.Admins) > 0 {
		admins = append(admins, map[string]interface{}{"email": req.Admins[0].Email})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id": "3", "name": req.Name, "admins": admins, "stores": []interface{}{},
	})
}

func (b *Backend) deleteFranchise(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	b.mu.Lock()
	kept := b.Franchises[:0]
	for _, f := range b.Franchises {
		if fmt.Sprintf("%v", f["id"]) != id {
			kept = append(kept, f)
		}
	}
	b.Franchises = kept
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "franchise deleted"})
}

func (b *Backend) createStore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id": "10", "name": req.Name, "franchiseId": r.PathValue("id"),
	})
}

func (b *Backend) deleteStore(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "store deleted"})
}

func (b *Backend) docs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": "1.0.0",
		"endpoints": []map[string]interface{}{
			{
				"method": "GET", "path": "/api/order/menu", "requiresAuth": false,
				"description": "Get menu", "example": "curl localhost:3000/api/order/menu",
				"response": []interface{}{},
			},
		},
	})
}
