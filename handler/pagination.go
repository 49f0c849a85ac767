package handler

import (
	"net/http"
	"strconv"
)

// pageParams is the opaque page/limit pagination contract.
type pageParams struct {
	Number int
	Limit  int
}

func parsePage(r *http.Request, defaultLimit int) pageParams {
	p := pageParams{Number: 1, Limit: defaultLimit}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p.Number = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}

func (p pageParams) offset() int {
	return (p.Number - 1) * p.Limit
}

type paginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// paginated wraps results in the envelope, with relative next/previous
// links derived from the request URL.
func paginated(r *http.Request, p pageParams, count int64, results interface{}) paginatedResponse {
	resp := paginatedResponse{Count: count, Results: results}
	if int64(p.Number*p.Limit) < count {
		resp.Next = pageURL(r, p.Number+1)
	}
	if p.Number > 1 {
		resp.Previous = pageURL(r, p.Number-1)
	}
	return resp
}

func pageURL(r *http.Request, page int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
