package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"bilty/internal/core"
)

// EntryFilter maps list parameters onto the query string. Zero values are
// omitted; no business logic lives here.
type EntryFilter struct {
	Search        string
	Status        core.BillStatus
	From          string // YYYY-MM-DD, inclusive
	To            string // YYYY-MM-DD, inclusive
	FinancialYear string
	Page          int
	Limit         int
}

// EntryPage is one page of transport bills.
type EntryPage struct {
	Entries []core.TransportBill `json:"entries"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	Pages   int                  `json:"pages"`
}

func (f EntryFilter) query() string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.FinancialYear != "" {
		q.Set("financialYear", f.FinancialYear)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Entries lists transport bills matching the filter. Dates arrive as ISO
// strings and are decoded into core.Date in this one pass.
func (c *Client) Entries(ctx context.Context, filter EntryFilter) Response[EntryPage] {
	return do[EntryPage](ctx, c, http.MethodGet, "/api/transport-entries"+filter.query(), nil)
}

// Entry fetches a single transport bill.
func (c *Client) Entry(ctx context.Context, id string) Response[core.TransportBill] {
	return do[core.TransportBill](ctx, c, http.MethodGet, "/api/transport-entries/"+id, nil)
}

// CreateEntry creates a transport bill.
func (c *Client) CreateEntry(ctx context.Context, bill core.TransportBill) Response[core.TransportBill] {
	return do[core.TransportBill](ctx, c, http.MethodPost, "/api/transport-entries", bill)
}

// UpdateEntry replaces a transport bill.
func (c *Client) UpdateEntry(ctx context.Context, id string, bill core.TransportBill) Response[core.TransportBill] {
	return do[core.TransportBill](ctx, c, http.MethodPut, "/api/transport-entries/"+id, bill)
}

// DeleteEntry removes a transport bill.
func (c *Client) DeleteEntry(ctx context.Context, id string) Response[struct{}] {
	return do[struct{}](ctx, c, http.MethodDelete, "/api/transport-entries/"+id, nil)
}
