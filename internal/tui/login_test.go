package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jobdeck/jobdeck/internal/model"
)

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestLoginRejectsEmptyFieldsLocally(t *testing.T) {
	auth := &fakeAuth{}
	m := newLogin(testDeps(auth, &fakeJobs{}, &memStore{}))

	m, cmd := m.update(enterKey())

	if cmd != nil {
		t.Error("expected no command for empty fields")
	}
	if auth.calls != 0 {
		t.Errorf("expected no network call, got %d", auth.calls)
	}
	if m.errMsg == "" {
		t.Error("expected a visible validation error")
	}
}

func TestLoginRejectsWhitespaceOnlyFields(t *testing.T) {
	auth := &fakeAuth{}
	m := newLogin(testDeps(auth, &fakeJobs{}, &memStore{}))
	m.inputs[0].SetValue("  ")
	m.inputs[1].SetValue("  ")

	m, _ = m.update(enterKey())

	if auth.calls != 0 {
		t.Errorf("expected no network call, got %d", auth.calls)
	}
	if m.errMsg == "" {
		t.Error("expected a visible validation error")
	}
}

func TestLoginSuccessEmitsAuthSuccess(t *testing.T) {
	auth := &fakeAuth{sess: model.Session{Token: "T", Email: "a@b.com"}}
	m := newLogin(testDeps(auth, &fakeJobs{}, &memStore{}))
	m.inputs[0].SetValue("a@b.com")
	m.inputs[1].SetValue("x")

	m, cmd := m.update(enterKey())
	if !m.busy {
		t.Error("expected busy state while the request is in flight")
	}
	result, ok := findMsg[loginResultMsg](t, cmd)
	if !ok {
		t.Fatal("expected a login request to be issued")
	}

	m, cmd = m.update(result)
	success, ok := findMsg[authSuccessMsg](t, cmd)
	if !ok {
		t.Fatal("expected authSuccessMsg after a successful login")
	}
	if success.sess.Token != "T" || success.sess.Email != "a@b.com" {
		t.Errorf("unexpected session: %+v", success.sess)
	}
	if m.busy {
		t.Error("expected busy cleared")
	}
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	auth := &fakeAuth{err: &model.APIError{StatusCode: 400, Message: "Invalid credentials"}}
	m := newLogin(testDeps(auth, &fakeJobs{}, &memStore{}))
	m.inputs[0].SetValue("a@b.com")
	m.inputs[1].SetValue("wrong")

	m, cmd := m.update(enterKey())
	result, _ := findMsg[loginResultMsg](t, cmd)
	m, cmd = m.update(result)

	if cmd != nil {
		t.Error("expected no transition after a failed login")
	}
	if m.errMsg != "Invalid credentials" {
		t.Errorf("expected server message, got %q", m.errMsg)
	}
}

func TestLoginFailureFallsBackToGenericMessage(t *testing.T) {
	auth := &fakeAuth{err: &model.APIError{StatusCode: 500}}
	m := newLogin(testDeps(auth, &fakeJobs{}, &memStore{}))
	m.inputs[0].SetValue("a@b.com")
	m.inputs[1].SetValue("x")

	m, cmd := m.update(enterKey())
	result, _ := findMsg[loginResultMsg](t, cmd)
	m, _ = m.update(result)

	if m.errMsg != "Login failed" {
		t.Errorf("expected generic fallback, got %q", m.errMsg)
	}
}

func TestRegisterRejectsMismatchedPasswords(t *testing.T) {
	auth := &fakeAuth{}
	m := newRegister(testDeps(auth, &fakeJobs{}, &memStore{}))
	m.inputs[0].SetValue("a@b.com")
	m.inputs[1].SetValue("one")
	m.inputs[2].SetValue("two")

	m, cmd := m.update(enterKey())

	if cmd != nil {
		t.Error("expected no command for mismatched passwords")
	}
	if auth.calls != 0 {
		t.Errorf("expected no network call, got %d", auth.calls)
	}
	if m.errMsg != "Passwords do not match" {
		t.Errorf("unexpected error message %q", m.errMsg)
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	auth := &fakeAuth{}
	m := newRegister(testDeps(auth, &fakeJobs{}, &memStore{}))

	m, _ = m.update(enterKey())

	if auth.calls != 0 {
		t.Errorf("expected no network call, got %d", auth.calls)
	}
	if m.errMsg == "" {
		t.Error("expected a visible validation error")
	}
}

func TestRegisterSuccessEmitsAuthSuccess(t *testing.T) {
	auth := &fakeAuth{sess: model.Session{Token: "T", Email: "new@b.com"}}
	m := newRegister(testDeps(auth, &fakeJobs{}, &memStore{}))
	m.inputs[0].SetValue("new@b.com")
	m.inputs[1].SetValue("x")
	m.inputs[2].SetValue("x")

	m, cmd := m.update(enterKey())
	result, ok := findMsg[registerResultMsg](t, cmd)
	if !ok {
		t.Fatal("expected a register request to be issued")
	}
	_, cmd = m.update(result)
	if _, ok := findMsg[authSuccessMsg](t, cmd); !ok {
		t.Error("expected authSuccessMsg after a successful registration")
	}
}
