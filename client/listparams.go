package client

import (
	"net/url"
	"strconv"
)

// ListParams adalah parameter list standar semua endpoint admin. Field kosong
// tidak ikut dikirim; server memakai default-nya sendiri.
type ListParams struct {
	Page    int
	PerPage int
	Sort    string // asc | desc
	Search  string

	// Filter kolom
	Status   string
	Priority string // hanya dipakai reports
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Search != "" {
		q.Set("s", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Priority != "" {
		q.Set("priority", p.Priority)
	}
	return q
}

// cacheKey deterministik karena url.Values.Encode mengurutkan key.
func (p ListParams) cacheKey() string {
	return p.values().Encode()
}
