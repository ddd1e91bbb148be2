package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"pizza-storefront/internal/models"
)

type createFranchiseRequest struct {
	Name   string                  `json:"name"`
	Admins []models.FranchiseAdmin `json:"admins"`
}

type createStoreRequest struct {
	Name string `json:"name"`
}

// decodeFranchiseList accepts both observed shapes of the franchise list:
// a bare array and the `{franchises, more}` envelope. The envelope is
// treated as canonical; bare arrays are wrapped with more=false.
func decodeFranchiseList(endpoint string, body []byte) (*models.FranchisePage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return &models.FranchisePage{Franchises: []models.Franchise{}}, nil
	}

	if body[0] == '[' {
		var list []models.Franchise
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, decodeError(endpoint, err)
		}
		return &models.FranchisePage{Franchises: list, More: false}, nil
	}

	var page models.FranchisePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, decodeError(endpoint, err)
	}
	return &page, nil
}

// ListFranchises fetches the unpaginated franchise/store list shown on the
// order view.
func (c *Client) ListFranchises(ctx context.Context) ([]models.Franchise, error) {
	const endpoint = "GET /api/franchise"

	resp, err := c.request().
		SetContext(ctx).
		Get("/api/franchise")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}

	page, err := decodeFranchiseList(endpoint, resp.Body())
	if err != nil {
		return nil, err
	}
	return page.Franchises, nil
}

// ListFranchisePage fetches one filtered page of the admin franchise listing.
func (c *Client) ListFranchisePage(ctx context.Context, page, limit int, name string) (*models.FranchisePage, error) {
	const endpoint = "GET /api/franchise"

	resp, err := c.request().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":  strconv.Itoa(page),
			"limit": strconv.Itoa(limit),
			"name":  name,
		}).
		Get("/api/franchise")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return decodeFranchiseList(endpoint, resp.Body())
}

// GetFranchise fetches franchise detail (admins, stores, per-store revenue).
// The endpoint has been observed returning both a bare object and a
// one-element array; both are accepted.
func (c *Client) GetFranchise(ctx context.Context, id models.ID) (*models.Franchise, error) {
	endpoint := fmt.Sprintf("GET /api/franchise/%s", id)

	resp, err := c.request().
		SetContext(ctx).
		Get("/api/franchise/" + id.String())
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '[' {
		var list []models.Franchise
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, decodeError(endpoint, err)
		}
		for i := range list {
			if list[i].ID == id {
				return &list[i], nil
			}
		}
		if len(list) > 0 {
			return &list[0], nil
		}
		return nil, nil
	}

	var franchise models.Franchise
	if err := json.Unmarshal(body, &franchise); err != nil {
		return nil, decodeError(endpoint, err)
	}
	return &franchise, nil
}

// CreateFranchise creates a franchise with one admin email (admin only).
func (c *Client) CreateFranchise(ctx context.Context, name, adminEmail string) (*models.Franchise, error) {
	const endpoint = "POST /api/franchise"

	var out models.Franchise
	resp, err := c.request().
		SetContext(ctx).
		SetBody(createFranchiseRequest{
			Name:   name,
			Admins: []models.FranchiseAdmin{{Email: adminEmail}},
		}).
		SetResult(&out).
		Post("/api/franchise")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}

// DeleteFranchise closes a franchise via DELETE /api/franchise/:id.
func (c *Client) DeleteFranchise(ctx context.Context, id models.ID) error {
	endpoint := fmt.Sprintf("DELETE /api/franchise/%s", id)

	resp, err := c.request().
		SetContext(ctx).
		Delete("/api/franchise/" + id.String())
	if err != nil {
		return transportError(endpoint, err)
	}
	if resp.IsError() {
		return apiError(endpoint, resp)
	}
	return nil
}

// CreateStore opens a store under a franchise.
func (c *Client) CreateStore(ctx context.Context, franchiseID models.ID, name string) (*models.Store, error) {
	endpoint := fmt.Sprintf("POST /api/franchise/%s/store", franchiseID)

	var out models.Store
	resp, err := c.request().
		SetContext(ctx).
		SetBody(createStoreRequest{Name: name}).
		SetResult(&out).
		Post("/api/franchise/" + franchiseID.String() + "/store")
	if err != nil {
		return nil, transportError(endpoint, err)
	}
	if resp.IsError() {
		return nil, apiError(endpoint, resp)
	}
	return &out, nil
}

// DeleteStore closes a store via DELETE /api/franchise/:id/store/:storeId.
func (c *Client) DeleteStore(ctx context.Context, franchiseID, storeID models.ID) error {
	endpoint := fmt.Sprintf("DELETE /api/franchise/%s/store/%s", franchiseID, storeID)

	resp, err := c.request().
		SetContext(ctx).
		Delete("/api/franchise/" + franchiseID.String() + "/store/" + storeID.String())
	if err != nil {
		return transportError(endpoint, err)
	}
	if resp.IsError() {
		return apiError(endpoint, resp)
	}
	return nil
}
