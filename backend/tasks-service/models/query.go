package models

import (
	"net/url"
	"strings"
)

const (
	ArchivedFalse = "false"
	ArchivedTrue  = "true"
	ArchivedAll   = "all"
)

const (
	OrderByCreatedAt = "createdAt"
	OrderByUpdatedAt = "updatedAt"
	OrderByPriority  = "priority"
	OrderByTitle     = "title"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// TaskQuery holds the list filters of GET /api/tasks. Empty Status or Priority
// means no filter; empty OrderBy keeps the store's natural order.
type TaskQuery struct {
	Status   TaskStatus
	Priority TaskPriority
	Archived string
	Search   string
	OrderBy  string
	Order    string
}

// ParseTaskQuery reads the list parameters from a query string. Unknown status
// and priority values are dropped instead of rejected.
func ParseTaskQuery(values url.Values) TaskQuery {
	q := TaskQuery{
		Archived: ArchivedFalse,
		Order:    OrderAsc,
	}

	if status, ok := ParseStatus(values.Get("status")); ok {
		q.Status = status
	}
	if priority, ok := ParsePriority(values.Get("priority")); ok {
		q.Priority = priority
	}

	switch strings.ToLower(values.Get("archived")) {
	case ArchivedTrue:
		q.Archived = ArchivedTrue
	case ArchivedAll:
		q.Archived = ArchivedAll
	}

	q.Search = strings.TrimSpace(values.Get("search"))

	switch values.Get("orderBy") {
	case OrderByCreatedAt, OrderByUpdatedAt, OrderByPriority, OrderByTitle:
		q.OrderBy = values.Get("orderBy")
	}
	if strings.ToLower(values.Get("order")) == OrderDesc {
		q.Order = OrderDesc
	}

	return q
}

// Values renders the query back into URL parameters, skipping defaults.
func (q TaskQuery) Values() url.Values {
	values := url.Values{}
	if q.Status != "" {
		values.Set("status", string(q.Status))
	}
	if q.Priority != "" {
		values.Set("priority", string(q.Priority))
	}
	if q.Archived != "" && q.Archived != ArchivedFalse {
		values.Set("archived", q.Archived)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.OrderBy != "" {
		values.Set("orderBy", q.OrderBy)
		if q.Order == OrderDesc {
			values.Set("order", OrderDesc)
		}
	}
	return values
}

// ArchivedFilter returns the archived value to match and whether to filter at all.
func (q TaskQuery) ArchivedFilter() (archived bool, filter bool) {
	switch q.Archived {
	case ArchivedAll:
		return false, false
	case ArchivedTrue:
		return true, true
	}
	return false, true
}

func (q TaskQuery) Descending() bool {
	return q.Order == OrderDesc
}
