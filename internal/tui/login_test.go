package tui

import (
	"strings"
	"testing"
)

func newTestLoginModel() loginModel {
	m := newLoginModel(nil)
	m.width = 80
	m.height = 24
	return m
}

func TestLoginBlocksEmptySubmit(t *testing.T) {
	m := newTestLoginModel()
	m, cmd := m.Update(keyPress("enter"))
	if cmd != nil || m.submitting {
		t.Error("empty credentials must not submit")
	}
	if !strings.Contains(m.View(), "required") {
		t.Errorf("expected validation message, got:\n%s", m.View())
	}
}

func TestLoginSubmitGoesInFlight(t *testing.T) {
	m := newTestLoginModel()
	m.email = "fan@encore.fan"
	m.password = "pw"

	m, cmd := m.Update(keyPress("enter"))
	if cmd == nil || !m.submitting {
		t.Error("valid credentials must submit")
	}

	// Typing during the in-flight submit is ignored.
	m, _ = m.Update(keyPress("x"))
	if m.email != "fan@encore.fan" {
		t.Error("form must freeze while a submit is in flight")
	}
}

func TestLoginFailureClearsPassword(t *testing.T) {
	m := newTestLoginModel()
	m.email = "fan@encore.fan"
	m.password = "wrong"
	m.submitting = true

	m, _ = m.Update(loginDoneMsg{err: errDurationTest})
	if m.password != "" {
		t.Error("failed login must clear the password field")
	}
	if m.submitting {
		t.Error("submit flag must reset on failure")
	}
}

func TestLoginJoinModeSwitch(t *testing.T) {
	m := newTestLoginModel()
	m, _ = m.Update(keyPress("ctrl+j"))
	if m.mode != modeJoin {
		t.Fatal("ctrl+j should switch to the join form")
	}
	if !strings.Contains(m.View(), "create account") {
		t.Errorf("expected join form title, got:\n%s", m.View())
	}
	if m.fieldCount() != joinFieldCount {
		t.Errorf("join form exposes all fields, got %d", m.fieldCount())
	}
}

func TestLoginJoinSuccessReturnsToSignIn(t *testing.T) {
	m := newTestLoginModel()
	m.mode = modeJoin
	m.submitting = true

	m, _ = m.Update(joinDoneMsg{})
	if m.mode != modeLogin {
		t.Error("successful join should return to sign-in")
	}
	if !strings.Contains(m.View(), "account created") {
		t.Errorf("expected created notice, got:\n%s", m.View())
	}
}

func TestLoginPasswordMasked(t *testing.T) {
	m := newTestLoginModel()
	m.field = fieldPassword
	for _, r := range "hunter2" {
		m, _ = m.Update(keyPress(string(r)))
	}
	if strings.Contains(m.View(), "hunter2") {
		t.Errorf("password must render masked, got:\n%s", m.View())
	}
}
