package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/model"
)

// fakeAuth records auth calls and returns a canned result.
type fakeAuth struct {
	sess  model.Session
	err   error
	calls int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (model.Session, error) {
	f.calls++
	return f.sess, f.err
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (model.Session, error) {
	f.calls++
	return f.sess, f.err
}

type listCall struct {
	status string
	search string
}

// fakeJobs is an in-memory model.JobService: List returns its current records,
// mutations change them, so refetch-after-write is observable.
type fakeJobs struct {
	jobs    []model.Job
	listErr error
	saveErr error

	lists   []listCall
	created []model.Draft
	updated map[string]model.Draft
	deleted []string
}

func (f *fakeJobs) ListJobs(ctx context.Context, status, search string) ([]model.Job, error) {
	f.lists = append(f.lists, listCall{status: status, search: search})
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Job, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

func (f *fakeJobs) CreateJob(ctx context.Context, d model.Draft) (model.Job, error) {
	if f.saveErr != nil {
		return model.Job{}, f.saveErr
	}
	f.created = append(f.created, d)
	job := model.Job{
		ID:          fmt.Sprintf("new-%d", len(f.created)),
		Title:       d.Title,
		Company:     d.Company,
		Link:        d.Link,
		Status:      d.Status,
		AppliedDate: d.AppliedDate,
		Notes:       d.Notes,
	}
	f.jobs = append(f.jobs, job)
	return job, nil
}

func (f *fakeJobs) UpdateJob(ctx context.Context, id string, d model.Draft) (model.Job, error) {
	if f.saveErr != nil {
		return model.Job{}, f.saveErr
	}
	if f.updated == nil {
		f.updated = make(map[string]model.Draft)
	}
	f.updated[id] = d
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs[i] = model.Job{
				ID:          id,
				Title:       d.Title,
				Company:     d.Company,
				Link:        d.Link,
				Status:      d.Status,
				AppliedDate: d.AppliedDate,
				Notes:       d.Notes,
			}
			return f.jobs[i], nil
		}
	}
	return model.Job{}, &model.APIError{StatusCode: 404, Message: "not found"}
}

func (f *fakeJobs) DeleteJob(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			break
		}
	}
	return nil
}

// memStore is an in-memory model.SessionStore.
type memStore struct {
	sess   model.Session
	saves  int
	clears int
}

func (s *memStore) Load() (model.Session, error) { return s.sess, nil }

func (s *memStore) Save(sess model.Session) error {
	s.sess = sess
	s.saves++
	return nil
}

func (s *memStore) Clear() error {
	s.sess = model.Session{}
	s.clears++
	return nil
}

func testDeps(auth *fakeAuth, jobs *fakeJobs, store *memStore) Deps {
	return Deps{
		Auth:    auth,
		Jobs:    jobs,
		Session: store,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// drain runs a command tree and collects every message it produces,
// flattening batches.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(t, c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type M produced by cmd.
func findMsg[M tea.Msg](t *testing.T, cmd tea.Cmd) (M, bool) {
	t.Helper()
	for _, msg := range drain(t, cmd) {
		if m, ok := msg.(M); ok {
			return m, true
		}
	}
	var zero M
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
