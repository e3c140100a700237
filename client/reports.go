package client

import (
	"context"
	"fmt"
	"net/http"
)

// ReportList adalah hasil list laporan yang sudah dinormalkan.
type ReportList struct {
	Reports    []Report
	Pagination Pagination
	Message    string
}

var (
	reportStatuses   = []string{"pending", "reviewed", "resolved", "rejected"}
	reportPriorities = []string{"low", "medium", "high"}
)

// ListReports mengambil satu halaman laporan user.
func (c *Client) ListReports(ctx context.Context, params ListParams) (*ReportList, error) {
	result, err := c.cache.do("reports|"+params.cacheKey(), func() (interface{}, error) {
		return c.fetchReports(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*ReportList), nil
}

func (c *Client) fetchReports(ctx context.Context, params ListParams) (*ReportList, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/reports", params.values(), nil)
	if err != nil {
		return nil, err
	}

	data, err := decodeList(body, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("unable to parse reports response: %w", err)
	}

	reports := make([]Report, 0, len(data.Records))
	for i, rec := range data.Records {
		report, err := normalizeReport(rec)
		if err != nil {
			return nil, fmt.Errorf("unable to parse reports response: record[%d]: %w", i, err)
		}
		reports = append(reports, report)
	}

	return &ReportList{Reports: reports, Pagination: data.Pagination, Message: data.Message}, nil
}

func normalizeReport(rec rawRecord) (Report, error) {
	id, err := stringID(rec)
	if err != nil {
		return Report{}, err
	}

	// Data pelapor: sub-objek relational dulu, lalu field datar, terakhir
	// placeholder. Tidak boleh kosong: kolom tabel selalu butuh nilai.
	reporterName := nestedString(rec, "reporter", "name", "full_name")
	if reporterName == "" {
		reporterName = pickString(rec, "reporter_name")
	}
	if reporterName == "" {
		reporterName = "unknown"
	}
	reporterEmail := nestedString(rec, "reporter", "email")
	if reporterEmail == "" {
		reporterEmail = pickString(rec, "reporter_email")
	}
	if reporterEmail == "" {
		reporterEmail = "unknown"
	}

	return Report{
		ID:             id,
		Reason:         pickString(rec, "reason", "message", "description", "notes"),
		Status:         pickEnum(rec, "pending", reportStatuses, "status"),
		Priority:       pickEnum(rec, "medium", reportPriorities, "priority", "severity"),
		ReporterName:   reporterName,
		ReporterEmail:  reporterEmail,
		ReportedUserID: optionalIDString(rec, "reported_user_id", "target_user_id"),
		CreatedAt:      pickTime(rec, "created_at", "createdAt"),
		UpdatedAt:      pickTime(rec, "updated_at", "updatedAt"),
	}, nil
}

// ReportInput adalah payload create/update laporan.
type ReportInput struct {
	Reason         string `json:"reason,omitempty"`
	Status         string `json:"status,omitempty"`
	Priority       string `json:"priority,omitempty"`
	ReporterID     *uint  `json:"reporter_id,omitempty"`
	ReportedUserID *uint  `json:"reported_user_id,omitempty"`
}

func (c *Client) CreateReport(ctx context.Context, input ReportInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPost, "/api/admin/reports", input)
	if err == nil {
		c.cache.Invalidate("reports|")
	}
	return result, err
}

func (c *Client) UpdateReport(ctx context.Context, id string, input ReportInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPut, "/api/admin/reports/"+id, input)
	if err == nil {
		c.cache.Invalidate("reports|")
	}
	return result, err
}

func (c *Client) DeleteReport(ctx context.Context, id string) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodDelete, "/api/admin/reports/"+id, nil)
	if err == nil {
		c.cache.Invalidate("reports|")
	}
	return result, err
}
