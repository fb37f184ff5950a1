package logiwa

import (
	"encoding/json"
	"time"
)

// DateLayout is the date format expected by search parameters
const DateLayout = "01.02.2006 15:04:05"

// FormatDate formats t as wall-clock time in loc for a search parameter.
// A nil loc means UTC.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ---------------------------------------------------------------------------
// Token
// ---------------------------------------------------------------------------

// TokenResponse is the response of the password grant
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresIn        int64  `json:"expires_in"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ---------------------------------------------------------------------------
// Warehouse order search
// ---------------------------------------------------------------------------

// SearchRequest is the body of WarehouseOrderSearch
type SearchRequest struct {
	OrderDateStart           string  `json:"OrderDate_Start"`
	OrderDateEnd             string  `json:"OrderDate_End"`
	WarehouseID              int64   `json:"WarehouseID"`
	PageSize                 int     `json:"PageSize"`
	SelectedPageIndex        int     `json:"SelectedPageIndex"`
	IsGetOrderDetails        bool    `json:"IsGetOrderDetails"`
	IsGetCustomerAddressInfo bool    `json:"IsGetCustomerAddressInfo"`
	LastModifiedDateStart    *string `json:"LastModifiedDate_Start,omitempty"`
}

// SearchResponse is the response of WarehouseOrderSearch.
// Documents are kept raw; normalization happens after staging.
type SearchResponse struct {
	Data        []json.RawMessage `json:"Data"`
	Success     *bool             `json:"Success,omitempty"`
	Message     string            `json:"SuccessMessage,omitempty"`
	PageCount   int               `json:"PageCount,omitempty"`
	RecordCount int               `json:"RecordCount,omitempty"`
}

// ---------------------------------------------------------------------------
// Warehouse search
// ---------------------------------------------------------------------------

// WarehouseSearchRequest is the body of WarehouseSearch
type WarehouseSearchRequest struct {
	SelectedPageIndex int `json:"SelectedPageIndex"`
	PageSize          int `json:"PageSize"`
}

// WarehouseSearchResponse is the response of WarehouseSearch
type WarehouseSearchResponse struct {
	Data []Warehouse `json:"Data"`
}

// Warehouse is one warehouse entry
type Warehouse struct {
	ID          int64  `json:"ID"`
	Code        string `json:"Code"`
	Description string `json:"Description"`
}
