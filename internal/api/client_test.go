package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobdeck/jobdeck/internal/model"
)

// stubSession is an in-memory model.SessionStore for client tests.
type stubSession struct {
	sess model.Session
}

func (s *stubSession) Load() (model.Session, error)  { return s.sess, nil }
func (s *stubSession) Save(sess model.Session) error { s.sess = sess; return nil }
func (s *stubSession) Clear() error                  { s.sess = model.Session{}; return nil }

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.Client(), &stubSession{sess: model.Session{Token: token}})
}

func TestLoginSuccess(t *testing.T) {
	var gotBody map[string]string
	var gotAuth string
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"T","email":"a@b.com"}`))
	})

	sess, err := c.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != "T" || sess.Email != "a@b.com" {
		t.Errorf("unexpected session: %+v", sess)
	}
	if gotBody["email"] != "a@b.com" || gotBody["password"] != "x" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
	if gotAuth != "" {
		t.Errorf("expected unauthenticated login request, got Authorization %q", gotAuth)
	}
}

func TestLoginFailureCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := model.ErrorMessage(err, "Login failed"); got != "Invalid credentials" {
		t.Errorf("expected server message, got %q", got)
	}
}

func TestRegisterSuccess(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"T2","email":"new@b.com"}`))
	})

	sess, err := c.Register(context.Background(), "new@b.com", "x")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Token != "T2" || sess.Email != "new@b.com" {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestListJobsSendsBearerAndQuery(t *testing.T) {
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/jobs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer T" {
			t.Errorf("expected bearer T, got %q", got)
		}
		if got := r.Header.Get("X-Request-ID"); got == "" {
			t.Error("expected X-Request-ID header")
		}
		q := r.URL.Query()
		if q.Get("status") != "interview" || q.Get("search") != "acme" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`[{"_id":"1","title":"Engineer","company":"Acme","status":"interview"}]`))
	})

	jobs, err := c.ListJobs(context.Background(), "interview", "acme")
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	j := jobs[0]
	if j.ID != "1" || j.Title != "Engineer" || j.Company != "Acme" || j.Status != model.StatusInterview {
		t.Errorf("unexpected job: %+v", j)
	}
}

func TestListJobsAlwaysSendsEmptyParams(t *testing.T) {
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("status") || !q.Has("search") {
			t.Errorf("expected both params present, got %v", q)
		}
		if q.Get("status") != "all" || q.Get("search") != "" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`[]`))
	})

	jobs, err := c.ListJobs(context.Background(), "all", "")
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected empty list, got %d", len(jobs))
	}
}

func TestListJobsUnauthorized(t *testing.T) {
	c := newTestClient(t, "stale", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token invalid"}`))
	})

	_, err := c.ListJobs(context.Background(), "all", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !model.IsUnauthorized(err) {
		t.Errorf("expected 401 to be detected as unauthorized, got %v", err)
	}
}

func TestCreateJob(t *testing.T) {
	var gotDraft model.Draft
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/jobs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotDraft); err != nil {
			t.Errorf("decoding draft: %v", err)
		}
		w.Write([]byte(`{"_id":"new1","title":"Engineer","company":"Acme","status":"applied"}`))
	})

	d := model.Draft{Title: "Engineer", Company: "Acme", Status: model.StatusApplied}
	job, err := c.CreateJob(context.Background(), d)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.ID != "new1" {
		t.Errorf("unexpected job: %+v", job)
	}
	if gotDraft.Title != "Engineer" || gotDraft.Company != "Acme" {
		t.Errorf("unexpected payload: %+v", gotDraft)
	}
}

func TestUpdateJobTargetsRecord(t *testing.T) {
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/jobs/abc123" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"_id":"abc123","title":"Engineer","company":"Acme","status":"offer"}`))
	})

	job, err := c.UpdateJob(context.Background(), "abc123", model.Draft{Title: "Engineer", Company: "Acme", Status: model.StatusOffer})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if job.Status != model.StatusOffer {
		t.Errorf("unexpected job: %+v", job)
	}
}

func TestDeleteJobAcceptsNoContent(t *testing.T) {
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/jobs/abc123" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteJob(context.Background(), "abc123"); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
}

func TestErrorWithoutMessageBody(t *testing.T) {
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("gateway exploded"))
	})

	err := c.DeleteJob(context.Background(), "abc123")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := model.ErrorMessage(err, "fallback"); got != "fallback" {
		t.Errorf("expected fallback message for non-JSON body, got %q", got)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, "T", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not valid json`))
	})

	if _, err := c.ListJobs(context.Background(), "all", ""); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
