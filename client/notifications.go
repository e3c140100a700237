package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// NotificationList adalah hasil list push notification yang sudah dinormalkan.
type NotificationList struct {
	Notifications []Notification
	Pagination    Pagination
	Message       string
}

var (
	notificationStatuses = []string{"draft", "scheduled", "sent", "failed"}
	notificationTargets  = []string{"all", "user", "segment"}
)

// ListNotifications mengambil satu halaman push notification.
func (c *Client) ListNotifications(ctx context.Context, params ListParams) (*NotificationList, error) {
	result, err := c.cache.do("notifications|"+params.cacheKey(), func() (interface{}, error) {
		return c.fetchNotifications(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*NotificationList), nil
}

func (c *Client) fetchNotifications(ctx context.Context, params ListParams) (*NotificationList, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/admin/notifications", params.values(), nil)
	if err != nil {
		return nil, err
	}

	data, err := decodeList(body, params.Page, params.PerPage)
	if err != nil {
		return nil, fmt.Errorf("unable to parse notifications response: %w", err)
	}

	notifs := make([]Notification, 0, len(data.Records))
	for i, rec := range data.Records {
		notif, err := normalizeNotification(rec)
		if err != nil {
			return nil, fmt.Errorf("unable to parse notifications response: record[%d]: %w", i, err)
		}
		notifs = append(notifs, notif)
	}

	return &NotificationList{Notifications: notifs, Pagination: data.Pagination, Message: data.Message}, nil
}

func normalizeNotification(rec rawRecord) (Notification, error) {
	id, err := stringID(rec)
	if err != nil {
		return Notification{}, err
	}

	return Notification{
		ID:    id,
		Title: pickString(rec, "title", "subject"),
		// Konten pernah dikirim dengan empat nama berbeda lintas versi API
		Content:      pickString(rec, "content", "message", "description", "body"),
		Target:       pickEnum(rec, "all", notificationTargets, "target", "audience"),
		Status:       pickEnum(rec, "draft", notificationStatuses, "status"),
		ScheduleDate: pickTime(rec, "schedule_at", "scheduled_at", "send_at"),
		CreatedAt:    pickTime(rec, "created_at", "createdAt"),
		UpdatedAt:    pickTime(rec, "updated_at", "updatedAt"),
	}, nil
}

// NotificationInput adalah payload create/update push notification.
type NotificationInput struct {
	Title        string     `json:"title,omitempty"`
	Message      string     `json:"message,omitempty"`
	Target       string     `json:"target,omitempty"`
	TargetUserID *uint      `json:"target_user_id,omitempty"`
	ScheduleAt   *time.Time `json:"schedule_at,omitempty"`
}

func (c *Client) CreateNotification(ctx context.Context, input NotificationInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPost, "/api/admin/notifications", input)
	if err == nil {
		c.cache.Invalidate("notifications|")
	}
	return result, err
}

func (c *Client) UpdateNotification(ctx context.Context, id string, input NotificationInput) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodPut, "/api/admin/notifications/"+id, input)
	if err == nil {
		c.cache.Invalidate("notifications|")
	}
	return result, err
}

func (c *Client) DeleteNotification(ctx context.Context, id string) (*MutationResult, error) {
	result, err := c.mutate(ctx, http.MethodDelete, "/api/admin/notifications/"+id, nil)
	if err == nil {
		c.cache.Invalidate("notifications|")
	}
	return result, err
}
