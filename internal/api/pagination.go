package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidPage = errors.New("invalid page")

// Page is a page of results in page-number pagination.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type pageRequest struct {
	number int
	size   int
}

// parsePage reads ?page=N, defaulting to the first page.
func parsePage(c *gin.Context, size int) (pageRequest, error) {
	p := pageRequest{number: 1, size: size}

	raw := c.Query("page")
	if raw == "" {
		return p, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return p, errInvalidPage
	}
	p.number = n

	return p, nil
}

func (p pageRequest) offset() int {
	return (p.number - 1) * p.size
}

// newPage wraps results in the pagination envelope. Pages past the end are
// invalid, except for the first page of an empty list.
func newPage[T any](c *gin.Context, p pageRequest, total int64, results []T) (*Page[T], error) {
	if p.number > 1 && int64(p.offset()) >= total {
		return nil, errInvalidPage
	}

	page := &Page[T]{Count: total, Results: results}
	if results == nil {
		page.Results = []T{}
	}

	if int64(p.offset()+len(results)) < total {
		next := pageLink(c, p.number+1)
		page.Next = &next
	}
	if p.number > 1 {
		previous := pageLink(c, p.number-1)
		page.Previous = &previous
	}

	return page, nil
}

// pageLink is the absolute url of the request with the page replaced. The
// first page is linked without a page parameter.
func pageLink(c *gin.Context, number int) string {
	query := c.Request.URL.Query()
	if number == 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}

	link := newLinker(c).base + c.Request.URL.Path
	if encoded := query.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}
