package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// ListParams adalah query parameter standar untuk semua endpoint list:
// page, per_page, sort (asc|desc atas created_at), dan s (pencarian global).
type ListParams struct {
	Page    int
	PerPage int
	Sort    string
	Search  string

	// Paginated false kalau request tidak membawa parameter page sama
	// sekali; endpoint lalu mengembalikan array mentah (kompatibel dengan
	// consumer lama yang tidak mengerti pagination).
	Paginated bool
}

func ParseListParams(c *gin.Context) ListParams {
	params := ListParams{
		Page:    1,
		PerPage: defaultPerPage,
		Sort:    "desc",
		Search:  c.Query("s"),
	}

	pageStr := c.Query("page")
	if pageStr != "" {
		params.Paginated = true
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			params.Page = page
		}
	}

	if ps := c.Query("per_page"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 {
			params.PerPage = v
		}
	}
	if params.PerPage > maxPerPage {
		params.PerPage = maxPerPage
	}

	if sort := c.Query("sort"); sort == "asc" {
		params.Sort = "asc"
	}

	return params
}

func (p ListParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

func (p ListParams) Order() string {
	if p.Sort == "asc" {
		return "created_at asc"
	}
	return "created_at desc"
}
