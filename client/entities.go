package client

import "time"

// Entity di package ini selalu hasil normalisasi respons API: field wajib
// dijamin terisi, enum dijamin salah satu nilai yang dikenal. Jangan membuat
// entity dari data parsial di luar normalizer.

// Pagination adalah deskriptor halaman kanonik, apapun bentuk envelope
// yang dikirim server.
type Pagination struct {
	Page        int
	PerPage     int
	Total       int
	LastPage    int
	HasNext     bool
	HasPrevious bool
}

type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Status    string // active, inactive, banned
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

type Information struct {
	ID          string
	Title       string
	Content     string
	Status      string // draft, published, archived
	PublishDate *time.Time
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

type Notification struct {
	ID           string
	Title        string
	Content      string
	Target       string // all, user, segment
	Status       string // draft, scheduled, sent, failed
	ScheduleDate *time.Time
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

type Report struct {
	ID             string
	Reason         string
	Status         string // pending, reviewed, resolved, rejected
	Priority       string // low, medium, high
	ReporterName   string
	ReporterEmail  string
	ReportedUserID string
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}
