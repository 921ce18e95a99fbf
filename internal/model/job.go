package model

import (
	"context"
	"strings"
)

// Status is the pipeline stage of a tracked application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusSaved     Status = "saved"
)

// Statuses lists every stage in display order.
var Statuses = []Status{StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusSaved}

// FilterAll is the list filter value that matches every status.
const FilterAll = "all"

// ValidStatus reports whether s names a known pipeline stage.
func ValidStatus(s string) bool {
	for _, st := range Statuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

// Job is a single tracked application as the server returns it.
// The server owns these records; the client holds a transient copy that is
// authoritative only until the next mutation or refetch.
type Job struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Link        string `json:"link,omitempty"`
	Status      Status `json:"status"`
	AppliedDate string `json:"appliedDate,omitempty"` // RFC 3339 date-time or bare date
	Notes       string `json:"notes,omitempty"`
}

// AppliedDay returns the date-only portion of AppliedDate, suitable for a
// date field. Empty if the record has no applied date.
func (j Job) AppliedDay() string {
	if len(j.AppliedDate) > 10 {
		return j.AppliedDate[:10]
	}
	return j.AppliedDate
}

// Draft is the mutable scratch payload bound to the add/edit form. It is sent
// verbatim as the create/update body.
type Draft struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Link        string `json:"link"`
	Status      Status `json:"status"`
	AppliedDate string `json:"appliedDate"`
	Notes       string `json:"notes"`
}

// EmptyDraft is the reset state of the form. Status defaults to "applied",
// matching the first option of the status selector.
func EmptyDraft() Draft {
	return Draft{Status: StatusApplied}
}

// Complete reports whether the draft has the two required fields. Incomplete
// drafts are never submitted.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Title) != "" && strings.TrimSpace(d.Company) != ""
}

// DraftOf copies a record's editable fields into a draft for editing.
func DraftOf(j Job) Draft {
	return Draft{
		Title:       j.Title,
		Company:     j.Company,
		Link:        j.Link,
		Status:      j.Status,
		AppliedDate: j.AppliedDay(),
		Notes:       j.Notes,
	}
}

// Session is the client-held identity: the bearer token issued by the server
// and the email it belongs to.
type Session struct {
	Token string
	Email string
}

// Active reports whether a token is present. Token validity is only ever
// decided by server responses, never client-side.
func (s Session) Active() bool {
	return s.Token != ""
}

// AuthService authenticates against the tracker API.
type AuthService interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Register(ctx context.Context, email, password string) (Session, error)
}

// JobService is the CRUD surface over the /jobs endpoints. List filtering and
// searching happen server-side; the client never filters a stale copy.
type JobService interface {
	ListJobs(ctx context.Context, status, search string) ([]Job, error)
	CreateJob(ctx context.Context, d Draft) (Job, error)
	UpdateJob(ctx context.Context, id string, d Draft) (Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// SessionStore persists the session across process runs.
type SessionStore interface {
	Load() (Session, error)
	Save(s Session) error
	Clear() error
}
