package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/ports"
)

// listResponse is the pagination envelope every list endpoint returns.
type listResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// pageFromRequest reads the page and page_size query parameters. Malformed
// or missing values fall back to defaults; a page past the end is legal and
// simply yields an empty results list.
func pageFromRequest(c echo.Context) ports.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return ports.Page{Number: page, Size: size}.Normalize()
}

// newListResponse builds the envelope, deriving next/previous links from
// the request URL so clients can walk pages without constructing URLs.
func newListResponse(c echo.Context, page ports.Page, total int64, results any) listResponse {
	resp := listResponse{Count: total, Results: results}

	if int64(page.Number)*int64(page.Size) < total {
		resp.Next = pageLink(c, page.Number+1)
	}
	if page.Number > 1 {
		resp.Previous = pageLink(c, page.Number-1)
	}
	return resp
}

func pageLink(c echo.Context, number int) *string {
	u := *c.Request().URL
	q := u.Query()
	q.Set("page", strconv.Itoa(number))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}
