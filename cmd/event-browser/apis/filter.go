package apis

import (
	"event-browser-backend/cmd/event-browser/model"
	"event-browser-backend/cmd/event-browser/query"
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// parseFilter reads a FilterSpec from the query string. Empty parameters do
// not filter.
func parseFilter(c echo.Context) (query.FilterSpec, error) {
	var f query.FilterSpec

	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		f.Category = &category
	}

	f.Query = c.QueryParam("q")

	for _, p := range []struct {
		name string
		dst  *string
	}{
		{"startDate", &f.StartDate},
		{"endDate", &f.EndDate},
	} {
		v := strings.TrimSpace(c.QueryParam(p.name))
		if v == "" {
			continue
		}
		if _, ok := model.ParseDate(v); !ok {
			return f, fmt.Errorf("%s: %q is not an ISO-8601 date", p.name, v)
		}
		*p.dst = v
	}

	if v := strings.TrimSpace(c.QueryParam("online")); v != "" {
		online, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("online: %q is not a boolean", v)
		}
		f.Online = &online
	}

	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"priceMin", &f.PriceMin},
		{"priceMax", &f.PriceMax},
	} {
		v := strings.TrimSpace(c.QueryParam(p.name))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("%s: %q is not a number", p.name, v)
		}
		*p.dst = &n
	}

	sort, err := query.ParseSortKey(c.QueryParam("sort"))
	if err != nil {
		return f, err
	}
	f.Sort = sort

	return f, nil
}
