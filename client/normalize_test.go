package client

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func legacyEnvelope(records []map[string]interface{}, page, perPage, total, lastPage int, next, prev *string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"status":  true,
		"message": "ok",
		"data": map[string]interface{}{
			"data":          records,
			"current_page":  page,
			"per_page":      perPage,
			"total":         total,
			"last_page":     lastPage,
			"next_page_url": next,
			"prev_page_url": prev,
		},
	})
	return body
}

func itemsEnvelope(records []map[string]interface{}, page, perPage, total, lastPage int) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"status":  true,
		"message": "ok",
		"data": map[string]interface{}{
			"items": records,
			"pagination": map[string]interface{}{
				"current_page": page,
				"per_page":     perPage,
				"total":        total,
				"last_page":    lastPage,
			},
		},
	})
	return body
}

func flatEnvelope(records []map[string]interface{}) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"status":  true,
		"message": "ok",
		"data":    records,
	})
	return body
}

func sampleInformations(n int) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, map[string]interface{}{
			"id":         i,
			"title":      fmt.Sprintf("Info %d", i),
			"content":    fmt.Sprintf("Content %d", i),
			"status":     "published",
			"created_at": "2024-03-01T10:00:00Z",
		})
	}
	return records
}

// Sepuluh record yang sama lewat tiga bentuk envelope harus menghasilkan
// entity yang identik.
func TestEnvelopeEquivalence(t *testing.T) {
	records := sampleInformations(10)

	envelopes := map[string][]byte{
		"legacy": legacyEnvelope(records, 1, 10, 10, 1, nil, nil),
		"items":  itemsEnvelope(records, 1, 10, 10, 1),
		"flat":   flatEnvelope(records),
	}

	var reference []Information
	for name, body := range envelopes {
		data, err := decodeList(body, 1, 10)
		assert.NoError(t, err, name)
		assert.Len(t, data.Records, 10, name)

		infos := make([]Information, 0, len(data.Records))
		for _, rec := range data.Records {
			info, err := normalizeInformation(rec)
			assert.NoError(t, err, name)
			infos = append(infos, info)
		}

		if reference == nil {
			reference = infos
		} else {
			assert.Equal(t, reference, infos, name)
		}

		// Semantik pagination juga harus setara dengan kenyataan:
		// satu halaman penuh, tidak ada next/prev
		assert.Equal(t, 10, data.Pagination.Total, name)
		assert.False(t, data.Pagination.HasNext, name)
		assert.False(t, data.Pagination.HasPrevious, name)
	}
}

// Skenario halaman tengah: legacy payload page 2 dari 3.
func TestLegacyPaginationMiddlePage(t *testing.T) {
	next := "https://api.example.com/informations?page=3"
	body := legacyEnvelope(sampleInformations(10), 2, 10, 25, 3, &next, nil)

	data, err := decodeList(body, 2, 10)
	assert.NoError(t, err)

	assert.Equal(t, Pagination{
		Page:        2,
		PerPage:     10,
		Total:       25,
		LastPage:    3,
		HasNext:     true,
		HasPrevious: false, // prev_page_url null menang atas posisi halaman
	}, data.Pagination)
}

func TestLegacyPaginationWithoutLastPage(t *testing.T) {
	records := sampleInformations(10)
	body, _ := json.Marshal(map[string]interface{}{
		"message": "ok",
		"data": map[string]interface{}{
			"data":         records,
			"current_page": 1,
			"per_page":     10,
			"total":        25,
		},
	})

	data, err := decodeList(body, 1, 10)
	assert.NoError(t, err)

	// last_page disintesis: ceil(25/10) = 3
	assert.Equal(t, 3, data.Pagination.LastPage)
	assert.True(t, data.Pagination.HasNext)
	assert.False(t, data.Pagination.HasPrevious)
}

func TestFlatEnvelopeSynthesizedPagination(t *testing.T) {
	body := flatEnvelope(sampleInformations(7))

	data, err := decodeList(body, 2, 3)
	assert.NoError(t, err)

	assert.Equal(t, 7, data.Pagination.Total)
	assert.Equal(t, 3, data.Pagination.LastPage) // ceil(7/3)
	assert.False(t, data.Pagination.HasNext)
	assert.True(t, data.Pagination.HasPrevious) // requestedPage 2 <= lastPage
}

func TestUnrecognizedEnvelope(t *testing.T) {
	body := []byte(`{"message":"ok","data":{"unexpected":"shape"}}`)

	_, err := decodeList(body, 1, 10)
	assert.Error(t, err)
}

func TestMissingIdentifierFailsWholePage(t *testing.T) {
	records := sampleInformations(3)
	delete(records[1], "id")
	body := flatEnvelope(records)

	data, err := decodeList(body, 1, 10)
	assert.NoError(t, err)

	for i, rec := range data.Records {
		if _, err := normalizeInformation(rec); err != nil {
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, 1, i)
			return
		}
	}
	t.Fatal("expected a record to fail validation")
}

func TestScheduleDateFallbackPriority(t *testing.T) {
	// scheduled_at dipakai kalau schedule_at tidak ada
	notif, err := normalizeNotification(rawRecord{
		"id":           float64(1),
		"title":        "Promo",
		"message":      "Diskon",
		"scheduled_at": "2024-06-01T08:00:00Z",
	})
	assert.NoError(t, err)
	assert.NotNil(t, notif.ScheduleDate)
	assert.Equal(t, "2024-06-01T08:00:00Z", notif.ScheduleDate.Format("2006-01-02T15:04:05Z07:00"))

	// kalau dua-duanya ada, schedule_at menang
	notif, err = normalizeNotification(rawRecord{
		"id":           float64(1),
		"title":        "Promo",
		"message":      "Diskon",
		"schedule_at":  "2024-05-01T08:00:00Z",
		"scheduled_at": "2024-06-01T08:00:00Z",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-01T08:00:00Z", notif.ScheduleDate.Format("2006-01-02T15:04:05Z07:00"))
}

func TestNotificationContentPriority(t *testing.T) {
	notif, err := normalizeNotification(rawRecord{
		"id":          float64(9),
		"description": "dari description",
		"body":        "dari body",
	})
	assert.NoError(t, err)
	assert.Equal(t, "dari description", notif.Content)

	notif, err = normalizeNotification(rawRecord{
		"id":      float64(9),
		"message": "dari message",
		"body":    "dari body",
	})
	assert.NoError(t, err)
	assert.Equal(t, "dari message", notif.Content)
}

func TestEnumFallbacks(t *testing.T) {
	notif, err := normalizeNotification(rawRecord{"id": "n-1", "status": "BOGUS"})
	assert.NoError(t, err)
	assert.Equal(t, "draft", notif.Status)

	report, err := normalizeReport(rawRecord{"id": float64(2), "status": nil})
	assert.NoError(t, err)
	assert.Equal(t, "pending", report.Status)

	// enum valid dinormalkan ke lowercase
	report, err = normalizeReport(rawRecord{"id": float64(2), "status": "Resolved"})
	assert.NoError(t, err)
	assert.Equal(t, "resolved", report.Status)
}

func TestReportReasonPriority(t *testing.T) {
	report, err := normalizeReport(rawRecord{
		"id":    float64(1),
		"notes": "dari notes",
	})
	assert.NoError(t, err)
	assert.Equal(t, "dari notes", report.Reason)

	report, err = normalizeReport(rawRecord{
		"id":      float64(1),
		"reason":  "dari reason",
		"message": "dari message",
		"notes":   "dari notes",
	})
	assert.NoError(t, err)
	assert.Equal(t, "dari reason", report.Reason)
}

func TestReporterFallbackChain(t *testing.T) {
	// Sub-objek relational menang
	report, err := normalizeReport(rawRecord{
		"id":            float64(1),
		"reporter":      map[string]interface{}{"name": "Budi", "email": "budi@example.com"},
		"reporter_name": "flat name",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Budi", report.ReporterName)
	assert.Equal(t, "budi@example.com", report.ReporterEmail)

	// Sub-objek hilang: jatuh ke field datar
	report, err = normalizeReport(rawRecord{
		"id":             float64(2),
		"reporter_name":  "Siti",
		"reporter_email": "siti@example.com",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Siti", report.ReporterName)

	// Tidak ada sama sekali: placeholder, bukan kosong
	report, err = normalizeReport(rawRecord{"id": float64(3)})
	assert.NoError(t, err)
	assert.Equal(t, "unknown", report.ReporterName)
	assert.Equal(t, "unknown", report.ReporterEmail)
}

func TestIDCoercion(t *testing.T) {
	user, err := normalizeUser(rawRecord{"id": float64(42), "name": "A", "email": "a@b.c"})
	assert.NoError(t, err)
	assert.Equal(t, "42", user.ID)

	user, err = normalizeUser(rawRecord{"id": "abc-123", "name": "A", "email": "a@b.c"})
	assert.NoError(t, err)
	assert.Equal(t, "abc-123", user.ID)
}

func TestUnparseableTimestampIsNil(t *testing.T) {
	user, err := normalizeUser(rawRecord{"id": "1", "created_at": "not-a-date"})
	assert.NoError(t, err)
	assert.Nil(t, user.CreatedAt)
}
