// ABOUTME: URL encoding of the table view-state
// ABOUTME: Maps filter, search, and sort query parameters to and from view.Query
package web

import (
	"net/url"

	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/view"
)

// filterParams names the query parameter for each filterable field.
var filterParams = map[models.Field]string{
	models.FieldProduct:     "product",
	models.FieldStatus:      "status",
	models.FieldAccountExec: "exec",
}

const (
	paramSearch    = "q"
	paramSort      = "sort"
	paramDirection = "dir"
	paramFlash     = "flash"
)

// parseQuery reads view-state from the URL. Unknown sort keys and
// directions are ignored rather than rejected, since they come from links.
func parseQuery(v url.Values) view.Query {
	q := view.NewQuery()
	for f, param := range filterParams {
		q.Filters.Set(f, v.Get(param))
	}
	q.Search = v.Get(paramSearch)

	if key := v.Get(paramSort); key != "" {
		if f, err := models.ParseField(key); err == nil {
			dir, _ := models.ParseDirection(v.Get(paramDirection))
			q.Sort = models.SortState{Key: f, Direction: dir}
		}
	}
	return q
}

// encodeQuery is the inverse of parseQuery, omitting defaults.
func encodeQuery(q view.Query) url.Values {
	v := url.Values{}
	for _, af := range q.Filters.Active() {
		if param, ok := filterParams[af.Field]; ok {
			v.Set(param, af.Value)
		}
	}
	if q.Search != "" {
		v.Set(paramSearch, q.Search)
	}
	if q.Sort.Active() {
		v.Set(paramSort, string(q.Sort.Key))
		v.Set(paramDirection, q.Sort.Direction.String())
	}
	return v
}

// href renders a link to the list page for q.
func href(q view.Query) string {
	if enc := encodeQuery(q).Encode(); enc != "" {
		return "/?" + enc
	}
	return "/"
}
