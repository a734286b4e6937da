package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjipark/encore/pkg/api"
)

// sessionExpiredMsg routes the app to the login screen after a 401.
type sessionExpiredMsg struct{}

// authExpired returns a command emitting sessionExpiredMsg when err is the
// backend's session-expired signal, else nil. Views call it from every
// failure branch so a 401 anywhere clears the session uniformly.
func authExpired(err error) tea.Cmd {
	if err == nil || !api.IsAuthExpired(err) {
		return nil
	}
	return func() tea.Msg { return sessionExpiredMsg{} }
}

// describeErr maps a failed call to its user-facing message: permission and
// not-found statuses get fixed texts, everything else surfaces the backend's
// message verbatim when present, else the generic fallback.
func describeErr(err error, fallback string) string {
	switch {
	case api.IsAuthExpired(err):
		return "session expired, please sign in again"
	case api.IsForbidden(err):
		return "you do not have permission to do this"
	case api.IsNotFound(err):
		return "not found"
	default:
		return api.Message(err, fallback)
	}
}
