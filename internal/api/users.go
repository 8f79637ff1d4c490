package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"bilty/internal/core"
)

// UpdateProfile replaces the business profile of the given user.
func (c *Client) UpdateProfile(ctx context.Context, userID string, profile core.Profile) Response[core.User] {
	return do[core.User](ctx, c, http.MethodPut, "/api/users/"+userID+"/profile", profile)
}

// UpdateBank replaces the bank details of the given user.
func (c *Client) UpdateBank(ctx context.Context, userID string, bank core.Bank) Response[core.User] {
	return do[core.User](ctx, c, http.MethodPut, "/api/users/"+userID+"/bank", bank)
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Page     int
	Limit    int
	Search   string
	Role     string
	IsActive *bool
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users []core.User `json:"users"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

func (f UserFilter) query() string {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	if f.IsActive != nil {
		q.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Users lists accounts (admin surface).
func (c *Client) Users(ctx context.Context, filter UserFilter) Response[UserPage] {
	return do[UserPage](ctx, c, http.MethodGet, "/api/users"+filter.query(), nil)
}
