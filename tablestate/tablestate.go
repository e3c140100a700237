// Package tablestate menurunkan state tabel (pagination, global filter,
// column filter) dari query string URL, dan sebaliknya menghasilkan update
// query string saat state berubah. URL adalah satu-satunya sumber kebenaran:
// state yang sama selalu bisa direkonstruksi dari URL yang sama, sehingga
// halaman list bisa di-bookmark dan dibagikan.
package tablestate

import (
	"net/url"
	"strconv"
	"strings"
)

// NavigateFunc menerima transform murni atas query string sekarang dan
// menerapkan hasilnya ke address bar. Controller tidak pernah menulis URL
// langsung; semua perubahan lewat sini.
type NavigateFunc func(transform func(prev url.Values) url.Values)

type FilterType string

const (
	FilterString FilterType = "string"
	FilterArray  FilterType = "array"
)

type PaginationConfig struct {
	DefaultPage     int
	DefaultPageSize int
	PageKey         string
	PageSizeKey     string
}

type GlobalFilterConfig struct {
	Enabled bool
	Key     string
	Trim    bool
}

type ColumnFilterConfig struct {
	ColumnID  string
	SearchKey string
	Type      FilterType
}

type Config struct {
	Pagination    PaginationConfig
	GlobalFilter  GlobalFilterConfig
	ColumnFilters []ColumnFilterConfig
}

func (cfg Config) withDefaults() Config {
	if cfg.Pagination.DefaultPage < 1 {
		cfg.Pagination.DefaultPage = 1
	}
	if cfg.Pagination.DefaultPageSize < 1 {
		cfg.Pagination.DefaultPageSize = 10
	}
	if cfg.Pagination.PageKey == "" {
		cfg.Pagination.PageKey = "page"
	}
	if cfg.Pagination.PageSizeKey == "" {
		cfg.Pagination.PageSizeKey = "pageSize"
	}
	if cfg.GlobalFilter.Key == "" {
		cfg.GlobalFilter.Key = "s"
	}
	return cfg
}

// Pagination internal zero-based; angka page di URL one-based. Konversi
// hanya boleh terjadi di package ini.
type Pagination struct {
	PageIndex int
	PageSize  int
}

// ColumnFilter: Value terisi untuk tipe string, Values untuk tipe array.
type ColumnFilter struct {
	ID     string
	Value  string
	Values []string
}

type Controller struct {
	search   url.Values
	navigate NavigateFunc
	cfg      Config
}

func New(search url.Values, navigate NavigateFunc, cfg Config) *Controller {
	return &Controller{
		search:   cloneValues(search),
		navigate: navigate,
		cfg:      cfg.withDefaults(),
	}
}

// Pagination membaca page/pageSize dari URL. Nilai hilang, bukan angka, atau
// kurang dari 1 jatuh ke default, bukan error.
func (ctl *Controller) Pagination() Pagination {
	page := positiveInt(ctl.search.Get(ctl.cfg.Pagination.PageKey), ctl.cfg.Pagination.DefaultPage)
	size := positiveInt(ctl.search.Get(ctl.cfg.Pagination.PageSizeKey), ctl.cfg.Pagination.DefaultPageSize)
	return Pagination{PageIndex: page - 1, PageSize: size}
}

func (ctl *Controller) GlobalFilter() string {
	if !ctl.cfg.GlobalFilter.Enabled {
		return ""
	}
	v := ctl.search.Get(ctl.cfg.GlobalFilter.Key)
	if ctl.cfg.GlobalFilter.Trim {
		v = strings.TrimSpace(v)
	}
	return v
}

// ColumnFilters merekonstruksi filter kolom dari query string, urut sesuai
// konfigurasi. Tipe array menerima parameter berulang maupun nilai yang
// dipisah koma.
func (ctl *Controller) ColumnFilters() []ColumnFilter {
	var filters []ColumnFilter
	for _, fc := range ctl.cfg.ColumnFilters {
		raw, ok := ctl.search[fc.SearchKey]
		if !ok {
			continue
		}

		switch fc.Type {
		case FilterArray:
			var values []string
			for _, entry := range raw {
				for _, part := range strings.Split(entry, ",") {
					if part != "" {
						values = append(values, part)
					}
				}
			}
			if len(values) > 0 {
				filters = append(filters, ColumnFilter{ID: fc.ColumnID, Values: values})
			}
		default:
			if raw[0] != "" {
				filters = append(filters, ColumnFilter{ID: fc.ColumnID, Value: raw[0]})
			}
		}
	}
	return filters
}

// OnPaginationChange menulis page/pageSize baru ke URL. PageIndex internal
// zero-based dikonversi balik ke one-based; nilai yang sama dengan default
// dihapus supaya URL tetap bersih. Filter tidak pernah disentuh dari sini.
func (ctl *Controller) OnPaginationChange(next Pagination) {
	ctl.navigate(func(prev url.Values) url.Values {
		q := cloneValues(prev)
		setOrOmit(q, ctl.cfg.Pagination.PageKey, next.PageIndex+1, ctl.cfg.Pagination.DefaultPage)
		setOrOmit(q, ctl.cfg.Pagination.PageSizeKey, next.PageSize, ctl.cfg.Pagination.DefaultPageSize)
		return q
	})
}

// OnGlobalFilterChange menulis kata kunci pencarian baru dan mengembalikan
// page ke default, supaya hasil yang menyempit tidak meninggalkan user di
// halaman yang sudah tidak ada.
func (ctl *Controller) OnGlobalFilterChange(next string) {
	if ctl.cfg.GlobalFilter.Trim {
		next = strings.TrimSpace(next)
	}
	ctl.navigate(func(prev url.Values) url.Values {
		q := cloneValues(prev)
		if !ctl.cfg.GlobalFilter.Enabled || next == "" {
			q.Del(ctl.cfg.GlobalFilter.Key)
		} else {
			q.Set(ctl.cfg.GlobalFilter.Key, next)
		}
		q.Del(ctl.cfg.Pagination.PageKey) // reset ke page default
		return q
	})
}

// OnColumnFiltersChange menulis ulang semua key filter kolom yang dikenal
// dan mengembalikan page ke default. Key yang tidak ada di konfigurasi
// dibiarkan apa adanya.
func (ctl *Controller) OnColumnFiltersChange(next []ColumnFilter) {
	ctl.navigate(func(prev url.Values) url.Values {
		q := cloneValues(prev)
		for _, fc := range ctl.cfg.ColumnFilters {
			q.Del(fc.SearchKey)
		}
		for _, f := range next {
			fc := ctl.filterConfig(f.ID)
			if fc == nil {
				continue
			}
			switch fc.Type {
			case FilterArray:
				if len(f.Values) > 0 {
					q.Set(fc.SearchKey, strings.Join(f.Values, ","))
				}
			default:
				if f.Value != "" {
					q.Set(fc.SearchKey, f.Value)
				}
			}
		}
		q.Del(ctl.cfg.Pagination.PageKey) // reset ke page default
		return q
	})
}

// EnsurePageInRange mengoreksi page yang melewati jumlah halaman terakhir
// yang diketahui. Tidak boleh jalan selama fetch masih berlangsung, karena
// pageCount-nya bisa basi (atau nol).
func (ctl *Controller) EnsurePageInRange(pageCount int, isLoading, isFetching bool) {
	if isLoading || isFetching || pageCount <= 0 {
		return
	}
	if ctl.Pagination().PageIndex <= pageCount-1 {
		return
	}
	ctl.navigate(func(prev url.Values) url.Values {
		q := cloneValues(prev)
		setOrOmit(q, ctl.cfg.Pagination.PageKey, pageCount, ctl.cfg.Pagination.DefaultPage)
		return q
	})
}

func (ctl *Controller) filterConfig(columnID string) *ColumnFilterConfig {
	for i := range ctl.cfg.ColumnFilters {
		if ctl.cfg.ColumnFilters[i].ColumnID == columnID {
			return &ctl.cfg.ColumnFilters[i]
		}
	}
	return nil
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func setOrOmit(q url.Values, key string, value, def int) {
	if value == def {
		q.Del(key)
		return
	}
	q.Set(key, strconv.Itoa(value))
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, vals := range v {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
