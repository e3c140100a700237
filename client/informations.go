package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// InformationList adalah hasil list informations yang sudah dinormalkan.
type InformationList struct {
	Informations []Information
	Pagination   Pagination
	Message      string
}

var informationStatuses = []string{"draft", "published", "archived"}

// ListInformations mengambil satu halaman pengumuman. Endpoint ini masih
// memakai envelope lama di server; normalizer yang menyamakan.
func (c *Client) ListInformations(ctx context.Context, params ListParams) (*InformationList, error) {
	result, err := c.cache.do("informations|"+params.cacheKey(), func() (interface{}, error) {
		return c.fetchInformations(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*InformationList), nil
}

func (c *Client) fetchInformations(ctx context.Context, params ListParams) (*InformationList, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/informations", params.values(), nil)
	if err != nil {
		return nil, err
	}

	data, err := decodeList(body, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("unable to parse informations response: %w", err)
	}

	infos := make([]Information, 0, len(data.Records))
	for i, rec := range data.Records {
		info, err := normalizeInformation(rec)
		if err != nil {
			return nil, fmt.Errorf("unable to parse informations response: record[%d]: %w", i, err)
		}
		infos = append(infos, info)
	}

	return &InformationList{Informations: infos, Pagination: data.Pagination, Message: data.Message}, nil
}

func normalizeInformation(rec rawRecord) (Information, error) {
	id, err := stringID(rec)
	if err != nil {
		return Information{}, err
	}

	return Information{
		ID:          id,
		Title:       pickString(rec, "title", "subject"),
		Content:     pickString(rec, "content", "body", "description"),
		Status:      pickEnum(rec, "draft", informationStatuses, "status"),
		PublishDate: pickTime(rec, "publish_at", "published_at", "publish_date"),
		CreatedAt:   pickTime(rec, "created_at", "createdAt"),
		UpdatedAt:   pickTime(rec, "updated_at", "updatedAt"),
	}, nil
}

// InformationInput adalah payload create/update pengumuman.
type InformationInput struct {
	Title     string     `json:"title,omitempty"`
	Content   string     `json:"content,omitempty"`
	Status    string     `json:"status,omitempty"`
	PublishAt *time.Time `json:"publish_at,omitempty"`
}

func (c *Client) CreateInformation(ctx context.Context, input InformationInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPost, "/api/admin/informations", input)
	if err == nil {
		c.cache.Invalidate("informations|")
	}
	return result, err
}

func (c *Client) UpdateInformation(ctx context.Context, id string, input InformationInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPut, "/api/admin/informations/"+id, input)
	if err == nil {
		c.cache.Invalidate("informations|")
	}
	return result, err
}

func (c *Client) DeleteInformation(ctx context.Context, id string) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodDelete, "/api/admin/informations/"+id, nil)
	if err == nil {
		c.cache.Invalidate("informations|")
	}
	return result, err
}
