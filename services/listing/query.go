package listing

import (
	"net/url"
	"strconv"
	"strings"

	"musicminds/models"
)

// WithDefaults returns q with page and limit in range.
func WithDefaults(q models.ListQuery, defaultLimit int) models.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

// Encode serializes q into backend query parameters, dropping empty filters.
func Encode(q models.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" && !strings.EqualFold(val, "all") {
			v.Set(key, val)
		}
	}
	set("search", q.Search)
	set("status", q.Status)
	set("priority", q.Priority)
	set("role", q.Role)
	set("startDate", q.From)
	set("endDate", q.To)
	for key, val := range q.Extra {
		if _, taken := v[key]; !taken {
			set(key, val)
		}
	}
	return v
}

// reservedParams are bound onto ListQuery fields directly.
var reservedParams = map[string]bool{
	"page": true, "limit": true, "search": true, "status": true,
	"priority": true, "role": true, "startDate": true, "endDate": true,
}

// ExtraParams collects the query parameters that have no ListQuery field.
func ExtraParams(values url.Values) map[string]string {
	var extra map[string]string
	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[key] = vals[0]
	}
	return extra
}
