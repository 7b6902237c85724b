package models

// Record is one opaque backend row. The gateway never owns a schema for it.
type Record = map[string]any

// ListQuery is the filter and pagination state of a list view.
type ListQuery struct {
	Page     int    `form:"page" json:"page,omitempty"`
	Limit    int    `form:"limit" json:"limit,omitempty"`
	Search   string `form:"search" json:"search,omitempty"`
	Status   string `form:"status" json:"status,omitempty"`
	Priority string `form:"priority" json:"priority,omitempty"`
	Role     string `form:"role" json:"role,omitempty"`
	From     string `form:"startDate" json:"startDate,omitempty"`
	To       string `form:"endDate" json:"endDate,omitempty"`

	// Extra carries resource-specific filters verbatim.
	Extra map[string]string `form:"-" json:"extra,omitempty"`
}

// Page is the normalized result of one list fetch.
type Page struct {
	Items []Record `json:"items"`
	Total int      `json:"total"`
	Pages int      `json:"pages"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`

	// HasTotal is false when the backend sent no total and Total counts Items.
	HasTotal bool `json:"-"`
}
