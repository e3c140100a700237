package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ValidationError menandai record yang gagal validasi field wajib. Satu
// record gagal berarti seluruh halaman gagal; halaman yang rusak sebagian
// tidak bisa dipercaya seluruhnya.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

type rawRecord map[string]interface{}

// listData adalah hasil pembongkaran envelope list, apapun bentuk aslinya.
// Kode hilir tidak pernah melihat envelope mentah lagi.
type listData struct {
	Records    []rawRecord
	Pagination Pagination
	Message    string
}

// decodeList membongkar salah satu dari tiga bentuk envelope list yang
// dikenal, dicoba berurutan:
//
//  1. paginated lama : data.data []record + current_page/per_page/total/...
//  2. items/pagination: data.items []record + data.pagination {...}
//  3. array datar     : data []record, pagination disintesis di client
//
// Bentuk pertama yang cocok secara struktural menang. Tidak ada yang cocok
// berarti error.
func decodeList(body []byte, requestedPage, requestedPerPage int) (*listData, error) {
	if requestedPage < 1 {
		requestedPage = 1
	}
	if requestedPerPage < 1 {
		requestedPerPage = 10
	}

	var envelope struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("envelope has no data")
	}

	var data interface{}
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("invalid data payload: %w", err)
	}

	switch payload := data.(type) {
	case map[string]interface{}:
		// Bentuk 1: paginated lama
		if records, ok := recordsAt(payload, "data"); ok {
			return &listData{
				Records:    records,
				Pagination: paginationFromMap(payload, requestedPage, requestedPerPage),
				Message:    envelope.Message,
			}, nil
		}
		// Bentuk 2: items/pagination
		if records, ok := recordsAt(payload, "items"); ok {
			meta, _ := payload["pagination"].(map[string]interface{})
			if meta == nil {
				return nil, fmt.Errorf("items payload without pagination")
			}
			return &listData{
				Records:    records,
				Pagination: paginationFromMap(meta, requestedPage, requestedPerPage),
				Message:    envelope.Message,
			}, nil
		}
		return nil, fmt.Errorf("unrecognized list envelope")
	case []interface{}:
		// Bentuk 3: array datar, pagination disintesis
		records, err := toRecords(payload)
		if err != nil {
			return nil, err
		}
		total := len(records)
		lastPage := ceilDiv(total, requestedPerPage)
		return &listData{
			Records: records,
			Pagination: Pagination{
				Page:        requestedPage,
				PerPage:     requestedPerPage,
				Total:       total,
				LastPage:    lastPage,
				HasNext:     false,
				HasPrevious: requestedPage > 1 && requestedPage <= lastPage,
			},
			Message: envelope.Message,
		}, nil
	default:
		return nil, fmt.Errorf("unrecognized list envelope")
	}
}

// paginationFromMap membaca metadata halaman gaya legacy (current_page,
// per_page, total, last_page, next_page_url, prev_page_url). Sinyal
// eksplisit berupa ada/tidaknya URL next/prev lebih dipercaya daripada
// aritmetika last_page; kalau keduanya tidak sepakat, dicatat untuk ditelusuri.
func paginationFromMap(m map[string]interface{}, requestedPage, requestedPerPage int) Pagination {
	page := intAt(m, "current_page", requestedPage)
	perPage := intAt(m, "per_page", requestedPerPage)
	if perPage < 1 {
		perPage = requestedPerPage
	}
	total := intAt(m, "total", 0)

	lastPage := intAt(m, "last_page", 0)
	if lastPage < 1 {
		lastPage = ceilDiv(total, perPage)
	}

	arithNext := page < lastPage
	arithPrev := page > 1

	hasNext := arithNext
	if raw, present := m["next_page_url"]; present {
		hasNext = urlPresent(raw)
		if hasNext != arithNext {
			logrus.Warnf("pagination disagreement: next_page_url says %v, last_page arithmetic says %v (page=%d last=%d)",
				hasNext, arithNext, page, lastPage)
		}
	}
	hasPrev := arithPrev
	if raw, present := m["prev_page_url"]; present {
		hasPrev = urlPresent(raw)
		if hasPrev != arithPrev {
			logrus.Warnf("pagination disagreement: prev_page_url says %v, page position says %v (page=%d)",
				hasPrev, arithPrev, page)
		}
	}

	return Pagination{
		Page:        page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
		HasNext:     hasNext,
		HasPrevious: hasPrev,
	}
}

func recordsAt(m map[string]interface{}, key string) ([]rawRecord, bool) {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil, false
	}
	records, err := toRecords(raw)
	if err != nil {
		return nil, false
	}
	return records, true
}

func toRecords(raw []interface{}) ([]rawRecord, error) {
	records := make([]rawRecord, 0, len(raw))
	for i, entry := range raw {
		rec, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("record[%d]: not an object", i)
		}
		records = append(records, rec)
	}
	return records, nil
}

// intAt membaca angka dari map, toleran terhadap angka yang dikirim sebagai string.
func intAt(m map[string]interface{}, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return def
		}
		return int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

func urlPresent(v interface{}) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func ceilDiv(total, perPage int) int {
	if perPage < 1 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ---- field pickers ----
//
// Server lama dan baru memakai nama field yang berbeda-beda untuk data yang
// sama. Prioritas sumber dibuat eksplisit sebagai daftar key berurutan,
// bukan rantai fallback tersebar, supaya urutannya bisa diaudit dan dites.

// stringID memaksa identifier menjadi string, dikirim server sebagai angka
// maupun string. ID wajib ada: record tanpa ID menggagalkan seluruh halaman.
func stringID(rec rawRecord) (string, error) {
	v, ok := rec["id"]
	if !ok || v == nil {
		return "", &ValidationError{Field: "id", Reason: "is missing"}
	}
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", &ValidationError{Field: "id", Reason: "is empty"}
		}
		return id, nil
	case float64:
		return strconv.FormatInt(int64(id), 10), nil
	case json.Number:
		return id.String(), nil
	default:
		return "", &ValidationError{Field: "id", Reason: "has unsupported type"}
	}
}

// pickString mengembalikan kandidat pertama yang ada dan tidak kosong,
// dicoba sesuai urutan keys.
func pickString(rec rawRecord, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// pickEnum menormalkan nilai ke lowercase dan mencocokkan dengan daftar
// yang diizinkan; nilai asing atau kosong jatuh ke default.
func pickEnum(rec rawRecord, def string, allowed []string, keys ...string) string {
	value := strings.ToLower(strings.TrimSpace(pickString(rec, keys...)))
	for _, candidate := range allowed {
		if value == candidate {
			return value
		}
	}
	return def
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// pickTime parse timestamp dari kandidat pertama yang ada. Nilai yang tidak
// bisa di-parse menghasilkan nil, bukan string menyamar jadi tanggal.
func pickTime(rec rawRecord, keys ...string) *time.Time {
	raw := pickString(rec, keys...)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// optionalIDString seperti stringID tapi untuk referensi opsional: tidak ada
// atau tidak valid berarti string kosong.
func optionalIDString(rec rawRecord, keys ...string) string {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// nestedString mengambil field dari sub-objek; sub-objek atau field-nya
// tidak ada berarti string kosong, biar pemanggil jatuh ke fallback datar.
func nestedString(rec rawRecord, objKey string, keys ...string) string {
	obj, ok := rec[objKey].(map[string]interface{})
	if !ok {
		return ""
	}
	return pickString(rawRecord(obj), keys...)
}
