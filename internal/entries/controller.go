// Package entries drives the transport-bill list views: it fetches
// pages through the API gateway, re-filters and sorts them locally, and
// keeps the in-memory list consistent across create, update and delete.
package entries

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bilty/internal/api"
	"bilty/internal/core"
	"bilty/internal/log"
)

// SortKey selects the list ordering.
type SortKey string

const (
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
	SortVehicle    SortKey = "vehicle"
	SortStatus     SortKey = "status"
)

// Filter is the view-side filter. It is sent to the backend on fetch and
// applied again locally, so a stale page never shows rows the current
// filter excludes.
type Filter struct {
	Search        string
	Status        core.BillStatus
	From          core.Date
	To            core.Date
	FinancialYear string
}

// Gateway is the slice of the API client the controller depends on.
type Gateway interface {
	Entries(ctx context.Context, filter api.EntryFilter) api.Response[api.EntryPage]
	CreateEntry(ctx context.Context, bill core.TransportBill) api.Response[core.TransportBill]
	UpdateEntry(ctx context.Context, id string, bill core.TransportBill) api.Response[core.TransportBill]
	DeleteEntry(ctx context.Context, id string) api.Response[struct{}]
}

// Controller owns one list view's state.
type Controller struct {
	gateway Gateway
	logger  *log.Logger

	mu      sync.RWMutex
	entries []core.TransportBill
	total   int
	page    int
	pages   int
	filter  Filter
	sortKey SortKey
	lastErr string
}

func NewController(gateway Gateway, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentEntries})
	}
	return &Controller{
		gateway: gateway,
		logger:  logger,
		sortKey: SortDateDesc,
	}
}

// SetFilter replaces the filter. The next Load sends it to the backend;
// Entries applies it immediately to whatever is already loaded.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

func (c *Controller) SetSort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = key
}

// Load fetches the list for the current filter. On failure the previous
// list is kept and the error message is retained for the view.
func (c *Controller) Load(ctx context.Context) bool {
	c.mu.RLock()
	filter := c.filter
	c.mu.RUnlock()

	resp := c.gateway.Entries(ctx, filter.wire())
	if !resp.Success || resp.Data == nil {
		c.mu.Lock()
		c.lastErr = resp.Error
		c.mu.Unlock()
		c.logger.WarnContext(ctx, "load entries failed",
			log.FieldOperation, log.OpList,
			log.FieldError, resp.Error)
		return false
	}

	c.mu.Lock()
	c.entries = resp.Data.Entries
	c.total = resp.Data.Total
	c.page = resp.Data.Page
	c.pages = resp.Data.Pages
	c.lastErr = ""
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "entries loaded",
		log.FieldOperation, log.OpList,
		log.FieldRowCount, len(resp.Data.Entries))
	return true
}

// Entries returns the loaded rows with the filter and sort applied.
func (c *Controller) Entries() []core.TransportBill {
	c.mu.RLock()
	filter := c.filter
	key := c.sortKey
	rows := make([]core.TransportBill, 0, len(c.entries))
	for _, b := range c.entries {
		if filter.matches(b) {
			rows = append(rows, b)
		}
	}
	c.mu.RUnlock()
	sortBills(rows, key)
	return rows
}

// Create submits a new bill and, on success, reloads so the list picks
// up the backend-assigned identifier and ordering.
func (c *Controller) Create(ctx context.Context, bill core.TransportBill) api.Response[core.TransportBill] {
	resp := c.gateway.CreateEntry(ctx, bill)
	if resp.Success {
		c.logger.InfoContext(ctx, "entry created",
			log.FieldOperation, log.OpCreate,
			log.FieldVehicleNo, bill.VehicleNo)
		c.Load(ctx)
	}
	return resp
}

// Update replaces a bill and reloads on success.
func (c *Controller) Update(ctx context.Context, id string, bill core.TransportBill) api.Response[core.TransportBill] {
	resp := c.gateway.UpdateEntry(ctx, id, bill)
	if resp.Success {
		c.logger.InfoContext(ctx, "entry updated",
			log.FieldOperation, log.OpUpdate,
			log.FieldEntryID, id)
		c.Load(ctx)
	}
	return resp
}

// Delete removes a bill. On success the row is dropped from the local
// list immediately instead of refetching, so the view updates without a
// round trip. A failed delete leaves the list untouched.
func (c *Controller) Delete(ctx context.Context, id string) api.Response[struct{}] {
	resp := c.gateway.DeleteEntry(ctx, id)
	if !resp.Success {
		return resp
	}
	c.mu.Lock()
	kept := c.entries[:0]
	for _, b := range c.entries {
		if b.Ref() != id {
			kept = append(kept, b)
		}
	}
	removed := len(c.entries) - len(kept)
	c.entries = kept
	c.total -= removed
	c.mu.Unlock()
	c.logger.InfoContext(ctx, "entry deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntryID, id)
	return resp
}

// Total returns the backend-reported row count for the current filter.
func (c *Controller) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Page returns the current page and the page count.
func (c *Controller) Page() (page, pages int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page, c.pages
}

// LastError returns the message of the most recent failed load, empty
// after a successful one.
func (c *Controller) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (f Filter) wire() api.EntryFilter {
	w := api.EntryFilter{
		Search:        f.Search,
		Status:        f.Status,
		FinancialYear: f.FinancialYear,
	}
	if !f.From.IsZero() {
		w.From = f.From.FormString()
	}
	if !f.To.IsZero() {
		w.To = f.To.FormString()
	}
	return w
}

// matches applies the filter to one row. Search is case-insensitive over
// the fields a user would scan the table by.
func (f Filter) matches(b core.TransportBill) bool {
	if f.Status != "" && b.TransportBillData.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && b.Date.Time.Before(f.From.Time) {
		return false
	}
	if !f.To.IsZero() && b.Date.Time.After(f.To.Time) {
		return false
	}
	if f.FinancialYear != "" && core.FinancialYear(b.Date) != f.FinancialYear {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystacks := []string{
			b.VehicleNo,
			b.From,
			b.To,
			b.TransportBillData.InvoiceNo,
			b.OwnerLabel(),
			b.ID,
		}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// sortBills orders rows in place. Stable, so rows equal under the key
// keep their fetched order.
func sortBills(rows []core.TransportBill, key SortKey) {
	var less func(i, j int) bool
	switch key {
	case SortDateAsc:
		less = func(i, j int) bool { return rows[i].Date.Time.Before(rows[j].Date.Time) }
	case SortAmountDesc:
		less = func(i, j int) bool { return rows[i].TransportBillData.Total > rows[j].TransportBillData.Total }
	case SortAmountAsc:
		less = func(i, j int) bool { return rows[i].TransportBillData.Total < rows[j].TransportBillData.Total }
	case SortVehicle:
		less = func(i, j int) bool { return rows[i].VehicleNo < rows[j].VehicleNo }
	case SortStatus:
		less = func(i, j int) bool { return rows[i].TransportBillData.Status < rows[j].TransportBillData.Status }
	default:
		less = func(i, j int) bool { return rows[i].Date.Time.After(rows[j].Date.Time) }
	}
	sort.SliceStable(rows, less)
}
