package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// -- messages --

type profileSavedMsg struct {
	member *domain.Member
	err    error
}

type passwordChangedMsg struct {
	err error
}

type ordersLoadedMsg struct {
	reqID  int
	orders []domain.Order
	err    error
}

type logoutDoneMsg struct{}

// -- model --

type myPageSection int

const (
	sectionProfile myPageSection = iota
	sectionEditProfile
	sectionPassword
	sectionOrders
)

// profile edit field indexes
const (
	fieldProfileName = iota
	fieldProfileNickname
	fieldProfileImage
	profileFieldCount
)

type myPageModel struct {
	client *api.Client
	logger *slog.Logger
	me     *domain.Member

	section myPageSection

	editName     string
	editNickname string
	editImage    string // local file path, optional
	editField    int

	pwCurrent string
	pwNew     string
	pwField   int

	orders  []domain.Order
	cursor  int
	page    int
	reqID   int
	loading bool

	saving bool
	errMsg string
	notice string

	width  int
	height int
}

func newMyPageModel(c *api.Client, logger *slog.Logger) myPageModel {
	return myPageModel{client: c, logger: logger}
}

func (m *myPageModel) setMember(me *domain.Member) {
	m.me = me
}

func (m myPageModel) loadOrders() tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	reqID := m.reqID
	return func() tea.Msg {
		orders, err := c.ListMyOrders(context.Background(), page)
		return ordersLoadedMsg{reqID: reqID, orders: orders, err: err}
	}
}

func (m myPageModel) saveProfile() tea.Cmd {
	c := m.client
	req := api.UpdateProfileRequest{Name: m.editName, Nickname: m.editNickname}
	imagePath := strings.TrimSpace(m.editImage)
	return func() tea.Msg {
		var att *api.Attachment
		if imagePath != "" {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return profileSavedMsg{err: err}
			}
			att = &api.Attachment{Field: "image", Name: filepath.Base(imagePath), Data: data}
		}
		member, err := c.UpdateProfile(context.Background(), req, att)
		return profileSavedMsg{member: member, err: err}
	}
}

func (m myPageModel) changePassword() tea.Cmd {
	c := m.client
	current, next := m.pwCurrent, m.pwNew
	return func() tea.Msg {
		return passwordChangedMsg{err: c.ChangePassword(context.Background(), current, next)}
	}
}

// logout invalidates the server token but clearing local credentials never
// waits on it; the app handles logoutDoneMsg unconditionally.
func (m myPageModel) logout() tea.Cmd {
	c := m.client
	logger := m.logger
	return func() tea.Msg {
		if err := c.Logout(context.Background()); err != nil {
			logger.Warn("token revocation failed", slog.Any("error", err))
		}
		return logoutDoneMsg{}
	}
}

func (m myPageModel) isEditing() bool {
	return m.section == sectionEditProfile || m.section == sectionPassword
}

func (m myPageModel) Update(msg tea.Msg) (myPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case profileSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to save profile")
			return m, authExpired(msg.err)
		}
		m.me = msg.member
		m.section = sectionProfile
		m.notice = "profile updated"
		m.errMsg = ""

	case passwordChangedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to change password")
			return m, authExpired(msg.err)
		}
		m.section = sectionProfile
		m.pwCurrent = ""
		m.pwNew = ""
		m.notice = "password changed"
		m.errMsg = ""

	case ordersLoadedMsg:
		if msg.reqID != m.reqID {
			return m, nil // superseded fetch
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load orders")
			return m, authExpired(msg.err)
		}
		m.orders = msg.orders
		m.errMsg = ""

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m myPageModel) handleKey(msg tea.KeyMsg) (myPageModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch m.section {
	case sectionProfile:
		switch msg.String() {
		case "e":
			if m.me == nil {
				return m, nil
			}
			m.section = sectionEditProfile
			m.editName = m.me.Name
			m.editNickname = m.me.Nickname
			m.editImage = ""
			m.editField = fieldProfileName
			m.notice = ""
			m.errMsg = ""
		case "w":
			m.section = sectionPassword
			m.pwField = 0
			m.notice = ""
			m.errMsg = ""
		case "o":
			m.section = sectionOrders
			m.cursor = 0
			m.page = 0
			m.loading = true
			m.reqID++
			m.notice = ""
			return m, m.loadOrders()
		case "Q":
			return m, m.logout()
		}

	case sectionEditProfile:
		switch msg.String() {
		case "esc":
			m.section = sectionProfile
			m.errMsg = ""
		case "tab", "down":
			m.editField = (m.editField + 1) % profileFieldCount
		case "shift+tab", "up":
			m.editField = (m.editField + profileFieldCount - 1) % profileFieldCount
		case "enter":
			if strings.TrimSpace(m.editName) == "" || strings.TrimSpace(m.editNickname) == "" {
				m.errMsg = "name and nickname are required"
				return m, nil
			}
			m.saving = true
			m.errMsg = ""
			return m, m.saveProfile()
		default:
			switch m.editField {
			case fieldProfileName:
				m.editName = editRune(m.editName, msg.String())
			case fieldProfileNickname:
				m.editNickname = editRune(m.editNickname, msg.String())
			case fieldProfileImage:
				m.editImage = editRune(m.editImage, msg.String())
			}
		}

	case sectionPassword:
		switch msg.String() {
		case "esc":
			m.section = sectionProfile
			m.pwCurrent = ""
			m.pwNew = ""
			m.errMsg = ""
		case "tab", "down", "up", "shift+tab":
			m.pwField = 1 - m.pwField
		case "enter":
			if m.pwCurrent == "" || m.pwNew == "" {
				m.errMsg = "both passwords are required"
				return m, nil
			}
			m.saving = true
			m.errMsg = ""
			return m, m.changePassword()
		default:
			if m.pwField == 0 {
				m.pwCurrent = editRune(m.pwCurrent, msg.String())
			} else {
				m.pwNew = editRune(m.pwNew, msg.String())
			}
		}

	case sectionOrders:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.orders)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "n":
			m.page++
			m.cursor = 0
			m.loading = true
			m.reqID++
			return m, m.loadOrders()
		case "p":
			if m.page > 0 {
				m.page--
				m.cursor = 0
				m.loading = true
				m.reqID++
				return m, m.loadOrders()
			}
		case "esc":
			m.section = sectionProfile
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m myPageModel) View() string {
	var b strings.Builder

	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n\n")
	}

	switch m.section {
	case sectionProfile:
		if m.me == nil {
			b.WriteString(" " + dimStyle.Render("loading profile...") + "\n")
			break
		}
		me := m.me
		b.WriteString(" " + selectedStyle.Render(me.Nickname) + "  " + metaStyle.Render(me.Email) + "\n\n")
		b.WriteString(" " + helpLabelStyle.Render("name:      ") + normalStyle.Render(me.Name) + "\n")
		b.WriteString(" " + helpLabelStyle.Render("role:      ") + normalStyle.Render(me.Role) + "\n")
		membership := "none"
		if me.MembershipPayType != "" {
			membership = me.MembershipPayType
		}
		b.WriteString(" " + helpLabelStyle.Render("membership:") + " " + normalStyle.Render(membership) + "\n")
		if me.ProfileImagePath != "" {
			b.WriteString(" " + helpLabelStyle.Render("image:     ") + metaStyle.Render(truncStr(m.client.ImageURL(me.ProfileImagePath), 64)) + "\n")
		}
		b.WriteString(" " + helpLabelStyle.Render("joined:    ") + metaStyle.Render(formatTime(me.CreatedAt)) + "\n")

	case sectionEditProfile:
		b.WriteString(" " + accentStyle.Render("edit profile") + "\n\n")
		fields := []struct {
			label string
			value string
			hint  string
		}{
			{"name:", m.editName, ""},
			{"nickname:", m.editNickname, ""},
			{"image:", m.editImage, "path to image file (optional)"},
		}
		for i, f := range fields {
			cursor := " "
			style := normalStyle
			if i == m.editField {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			val := f.value
			if val == "" && f.hint != "" {
				val = inputPlaceholderStyle.Render(f.hint)
			} else {
				val = style.Render(val)
			}
			b.WriteString(fmt.Sprintf(" %s %s %s\n", cursor, helpLabelStyle.Render(fmt.Sprintf("%-9s", f.label)), val))
		}
		if m.saving {
			b.WriteString("\n " + dimStyle.Render("saving...") + "\n")
		}

	case sectionPassword:
		b.WriteString(" " + accentStyle.Render("change password") + "\n\n")
		curCursor, newCursor := " ", " "
		if m.pwField == 0 {
			curCursor = accentStyle.Render("▸")
		} else {
			newCursor = accentStyle.Render("▸")
		}
		b.WriteString(fmt.Sprintf(" %s %s %s\n", curCursor, helpLabelStyle.Render("current:"), normalStyle.Render(strings.Repeat("*", len(m.pwCurrent)))))
		b.WriteString(fmt.Sprintf(" %s %s %s\n", newCursor, helpLabelStyle.Render("new:    "), normalStyle.Render(strings.Repeat("*", len(m.pwNew)))))
		if m.saving {
			b.WriteString("\n " + dimStyle.Render("saving...") + "\n")
		}

	case sectionOrders:
		b.WriteString(" " + accentStyle.Render("order history") + "\n\n")
		if m.loading {
			b.WriteString(" " + dimStyle.Render("loading...") + "\n")
			break
		}
		if len(m.orders) == 0 {
			b.WriteString(" " + dimStyle.Render("no orders yet") + "\n")
			break
		}
		for i, o := range m.orders {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			name := o.ItemName
			if name == "" {
				name = o.PlanCode
			}
			b.WriteString(fmt.Sprintf(" %s %s %s  %s  %s\n", cursor,
				statusStyle(o.Status).Render(fmt.Sprintf("%-9s", o.Status)),
				style.Render(truncStr(name, 30)),
				priceStyle.Render(formatWon(o.Amount)),
				metaStyle.Render(formatTime(o.CreatedAt))))
		}
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")
	}
	return b.String()
}

func (m myPageModel) helpKeys() string {
	switch m.section {
	case sectionProfile:
		return helpEntry("e", "edit") + "  " + helpEntry("w", "password") + "  " + helpEntry("o", "orders") + "  " + helpEntry("Q", "logout")
	case sectionEditProfile, sectionPassword:
		return helpEntry("tab", "field") + "  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("n/p", "page") + "  " + helpEntry("esc", "back")
	}
}
