package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// -- messages --

// loginDoneMsg hands the fresh token pair to the app, which persists it in
// the session store and reloads the profile.
type loginDoneMsg struct {
	creds domain.Credentials
	err   error
}

type joinDoneMsg struct {
	err error
}

// -- model --

type loginMode int

const (
	modeLogin loginMode = iota
	modeJoin
)

// join form field indexes; login uses the first two.
const (
	fieldEmail = iota
	fieldPassword
	fieldName
	fieldNickname
	joinFieldCount
)

type loginModel struct {
	client *api.Client

	mode  loginMode
	field int

	email    string
	password string
	name     string
	nickname string

	submitting bool
	errMsg     string
	notice     string

	width  int
	height int
}

func newLoginModel(c *api.Client) loginModel {
	return loginModel{client: c}
}

func (m loginModel) fieldCount() int {
	if m.mode == modeJoin {
		return joinFieldCount
	}
	return 2
}

func (m loginModel) submitLogin() tea.Cmd {
	c := m.client
	email, password := m.email, m.password
	return func() tea.Msg {
		tokens, err := c.Login(context.Background(), api.LoginRequest{Email: email, Password: password})
		if err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{creds: domain.Credentials{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}}
	}
}

func (m loginModel) submitJoin() tea.Cmd {
	c := m.client
	req := api.JoinRequest{Email: m.email, Password: m.password, Name: m.name, Nickname: m.nickname}
	return func() tea.Msg {
		return joinDoneMsg{err: c.Join(context.Background(), req)}
	}
}

func (m loginModel) isEditing() bool {
	return true
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "login failed")
			m.password = ""
		}
		// Success is handled by the app model; nothing to do here.

	case joinDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "sign-up failed")
			return m, nil
		}
		m.mode = modeLogin
		m.field = fieldEmail
		m.password = ""
		m.notice = "account created, sign in"
		m.errMsg = ""

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m loginModel) handleKey(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil // one in-flight submit at a time
	}
	switch msg.String() {
	case "tab", "down":
		m.field = (m.field + 1) % m.fieldCount()
	case "shift+tab", "up":
		m.field = (m.field + m.fieldCount() - 1) % m.fieldCount()
	case "ctrl+j":
		if m.mode == modeLogin {
			m.mode = modeJoin
		} else {
			m.mode = modeLogin
		}
		m.field = fieldEmail
		m.errMsg = ""
		m.notice = ""
	case "enter":
		if strings.TrimSpace(m.email) == "" || m.password == "" {
			m.errMsg = "email and password are required"
			return m, nil
		}
		if m.mode == modeJoin {
			if strings.TrimSpace(m.name) == "" || strings.TrimSpace(m.nickname) == "" {
				m.errMsg = "name and nickname are required"
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, m.submitJoin()
		}
		m.submitting = true
		m.errMsg = ""
		return m, m.submitLogin()
	default:
		switch m.field {
		case fieldEmail:
			m.email = editRune(m.email, msg.String())
		case fieldPassword:
			m.password = editRune(m.password, msg.String())
		case fieldName:
			m.name = editRune(m.name, msg.String())
		case fieldNickname:
			m.nickname = editRune(m.nickname, msg.String())
		}
	}
	return m, nil
}

func (m loginModel) View() string {
	var b strings.Builder

	title := "sign in"
	if m.mode == modeJoin {
		title = "create account"
	}
	b.WriteString(" " + accentStyle.Render(title) + "\n\n")

	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n\n")
	}

	fields := []struct {
		label string
		value string
		mask  bool
	}{
		{"email:", m.email, false},
		{"password:", m.password, true},
		{"name:", m.name, false},
		{"nickname:", m.nickname, false},
	}
	for i := 0; i < m.fieldCount(); i++ {
		f := fields[i]
		cursor := " "
		style := normalStyle
		if i == m.field {
			cursor = accentStyle.Render("▸")
			style = selectedStyle
		}
		val := f.value
		if f.mask {
			val = strings.Repeat("*", len(val))
		}
		b.WriteString(fmt.Sprintf(" %s %s %s\n", cursor, helpLabelStyle.Render(fmt.Sprintf("%-9s", f.label)), style.Render(val)))
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	other := "sign up"
	if m.mode == modeJoin {
		other = "sign in"
	}
	return helpEntry("tab", "field") + "  " + helpEntry("enter", "submit") + "  " + helpEntry("ctrl+j", other)
}
