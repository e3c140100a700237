package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// LegacyPage adalah bentuk list lama (masih dipakai modul informations & reports).
// Frontend lama membaca format ini, jangan diubah.
type LegacyPage struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	LastPage    int         `json:"last_page"`
	NextPageURL *string     `json:"next_page_url"`
	PrevPageURL *string     `json:"prev_page_url"`
}

// PageMeta adalah metadata halaman untuk bentuk list baru.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// ItemsPage adalah bentuk list baru (modul users & notifications).
type ItemsPage struct {
	Items      interface{} `json:"items"`
	Pagination PageMeta    `json:"pagination"`
}

// LastPage menghitung jumlah halaman, minimal 1.
func LastPage(total int64, perPage int) int {
	if perPage < 1 {
		return 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// RespondLegacyPage menulis list dengan envelope lama. URL next/prev dibangun
// dari URL request supaya client bisa mengikuti tanpa menghitung sendiri.
func RespondLegacyPage(c *gin.Context, message string, items interface{}, page, perPage int, total int64) {
	lastPage := LastPage(total, perPage)

	var nextURL, prevURL *string
	if page < lastPage {
		u := pageURL(c, page+1)
		nextURL = &u
	}
	if page > 1 && page <= lastPage {
		u := pageURL(c, page-1)
		prevURL = &u
	}

	RespondJSON(c, 200, message, LegacyPage{
		Data:        items,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
		NextPageURL: nextURL,
		PrevPageURL: prevURL,
	})
}

// RespondItemsPage menulis list dengan envelope items/pagination.
func RespondItemsPage(c *gin.Context, message string, items interface{}, page, perPage int, total int64) {
	RespondJSON(c, 200, message, ItemsPage{
		Items: items,
		Pagination: PageMeta{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    LastPage(total, perPage),
		},
	})
}

func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
