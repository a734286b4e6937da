// Package tui implements the terminal front end: one model per screen,
// composed under a root app model that owns tab navigation, the session
// lifecycle, and the frame chrome.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjipark/encore/internal/checkout"
	"github.com/minjipark/encore/internal/media"
	"github.com/minjipark/encore/internal/session"
	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// -- messages --

type meLoadedMsg struct {
	me  *domain.Member
	err error
}

// sessionChangedMsg fires whenever another writer mutates the session store
// (a login subcommand in a second terminal, for example).
type sessionChangedMsg struct{}

// -- model --

type tab int

const (
	tabHome tab = iota
	tabBoards
	tabShop
	tabMembership
	tabMyPage
	tabAdmin
	tabCount
)

var tabLabels = [tabCount]string{"home", "boards", "shop", "membership", "my", "admin"}

// App is the root model.
type App struct {
	client *api.Client
	store  *session.Store
	logger *slog.Logger

	sessionCh <-chan struct{}

	active tab
	me     *domain.Member

	home       homeModel
	boards     boardsModel
	shop       shopModel
	membership membershipModel
	myPage     myPageModel
	admin      adminModel
	login      loginModel

	showLogin bool
	banner    string // one-line notice above the body

	shimmerFrame int
	width        int
	height       int
}

// New assembles the root model from the already-constructed support pieces.
func New(client *api.Client, store *session.Store, flow *checkout.Flow, detector *media.Detector, logger *slog.Logger) App {
	return App{
		client:     client,
		store:      store,
		logger:     logger,
		sessionCh:  store.Subscribe(),
		home:       newHomeModel(client),
		boards:     newBoardsModel(client),
		shop:       newShopModel(client),
		membership: newMembershipModel(client, flow),
		myPage:     newMyPageModel(client, logger),
		admin:      newAdminModel(client, detector),
		login:      newLoginModel(client),
		showLogin:  !store.Has(),
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd(), a.waitSession()}
	if !a.showLogin {
		cmds = append(cmds, a.loadMe(), a.home.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) loadMe() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		me, err := c.Me(context.Background())
		return meLoadedMsg{me: me, err: err}
	}
}

// waitSession blocks on the next store notification and is re-armed from the
// Update handler.
func (a App) waitSession() tea.Cmd {
	ch := a.sessionCh
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{}
	}
}

// enterTab re-fetches the profile and reloads the tab's data. Nothing is
// cached across tab switches; every entry renders fresh server state.
func (a App) enterTab(t tab) (App, tea.Cmd) {
	a.active = t
	a.banner = ""
	cmds := []tea.Cmd{a.loadMe()}
	switch t {
	case tabHome:
		a.home = newHomeModel(a.client)
		cmds = append(cmds, a.home.Init())
	case tabBoards:
		prev := a.boards
		a.boards = newBoardsModel(a.client)
		a.boards.setMember(prev.me)
		cmds = append(cmds, a.boards.Init())
	case tabShop:
		a.shop = newShopModel(a.client)
		cmds = append(cmds, a.shop.Init())
	case tabMembership:
		a.membership = newMembershipModel(a.client, a.membership.flow)
		cmds = append(cmds, a.membership.Init())
	case tabMyPage:
		a.myPage = newMyPageModel(a.client, a.logger)
		a.myPage.setMember(a.me)
	case tabAdmin:
		if a.me == nil || !a.me.IsAdmin() {
			a.active = tabHome
			a.banner = "admin role required"
			return a, tea.Batch(cmds...)
		}
		a.admin = newAdminModel(a.admin.client, a.admin.detector)
	}
	return a, tea.Batch(cmds...)
}

func (a App) isEditing() bool {
	if a.showLogin {
		return a.login.isEditing()
	}
	switch a.active {
	case tabBoards:
		return a.boards.isEditing()
	case tabMembership:
		return a.membership.isEditing()
	case tabMyPage:
		return a.myPage.isEditing()
	case tabAdmin:
		return a.admin.isEditing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every view tracks its own size.
		a.home, _ = a.home.Update(msg)
		a.boards, _ = a.boards.Update(msg)
		a.shop, _ = a.shop.Update(msg)
		a.membership, _ = a.membership.Update(msg)
		a.myPage, _ = a.myPage.Update(msg)
		a.admin, _ = a.admin.Update(msg)
		a.login, _ = a.login.Update(msg)
		return a, nil

	case shimmerTickMsg:
		a.shimmerFrame++
		return a, shimmerTickCmd()

	case sessionChangedMsg:
		if !a.store.Has() {
			a.showLogin = true
			a.me = nil
			return a, a.waitSession()
		}
		a.showLogin = false
		next, cmd := a.enterTab(tabHome)
		return next, tea.Batch(cmd, a.waitSession())

	case sessionExpiredMsg:
		// Expired token: clear credentials and return to sign-in.
		if err := a.store.Clear(); err != nil {
			a.logger.Warn("failed to clear session", slog.Any("error", err))
		}
		a.showLogin = true
		a.me = nil
		a.login = newLoginModel(a.client)
		a.login.errMsg = "session expired, sign in again"
		return a, nil

	case meLoadedMsg:
		if msg.err != nil {
			return a, authExpired(msg.err)
		}
		a.me = msg.me
		a.boards.setMember(msg.me)
		a.myPage.setMember(msg.me)
		return a, nil

	case loginDoneMsg:
		if msg.err == nil {
			if err := a.store.Set(msg.creds); err != nil {
				a.login.errMsg = "failed to save session: " + err.Error()
				return a, nil
			}
			a.showLogin = false
			next, cmd := a.enterTab(tabHome)
			return next, cmd
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case logoutDoneMsg:
		if err := a.store.Clear(); err != nil {
			a.logger.Warn("failed to clear session", slog.Any("error", err))
		}
		a.showLogin = true
		a.me = nil
		a.login = newLoginModel(a.client)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1", "2", "3", "4", "5", "6":
				t := tab(msg.String()[0] - '1')
				if a.showLogin {
					return a, nil
				}
				if t == tabAdmin && (a.me == nil || !a.me.IsAdmin()) {
					a.banner = "admin role required"
					return a, nil
				}
				next, cmd := a.enterTab(t)
				return next, cmd
			}
		}
	}
	return a.routeToActive(msg)
}

// routeToActive forwards a message to the view that owns the screen.
// Responses carry their own message types, so stale ones for a view the
// member already left simply land in that view's state without repainting.
func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.showLogin {
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}
	switch a.active {
	case tabHome:
		a.home, cmd = a.home.Update(msg)
	case tabBoards:
		a.boards, cmd = a.boards.Update(msg)
	case tabShop:
		a.shop, cmd = a.shop.Update(msg)
	case tabMembership:
		a.membership, cmd = a.membership.Update(msg)
	case tabMyPage:
		a.myPage, cmd = a.myPage.Update(msg)
	case tabAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var b strings.Builder
	b.WriteString(renderShimmerLogo(a.shimmerFrame) + "\n")

	if a.showLogin {
		b.WriteString("\n")
		body := a.login.View()
		b.WriteString(truncateToHeight(body, a.bodyBudget()))
		b.WriteString("\n" + a.helpLine(a.login.helpKeys()))
		return b.String()
	}

	b.WriteString(a.tabBar() + "\n")
	if a.banner != "" {
		b.WriteString(" " + errStyle.Render(a.banner) + "\n")
	}
	b.WriteString("\n")

	var body, help string
	switch a.active {
	case tabHome:
		body, help = a.home.View(), a.home.helpKeys()
	case tabBoards:
		body, help = a.boards.View(), a.boards.helpKeys()
	case tabShop:
		body, help = a.shop.View(), a.shop.helpKeys()
	case tabMembership:
		body, help = a.membership.View(), a.membership.helpKeys()
	case tabMyPage:
		body, help = a.myPage.View(), a.myPage.helpKeys()
	case tabAdmin:
		body, help = a.admin.View(), a.admin.helpKeys()
	}
	b.WriteString(truncateToHeight(body, a.bodyBudget()))
	b.WriteString("\n" + a.helpLine(help))
	return b.String()
}

// bodyBudget is the line count left for the body after logo, tab bar, and
// help chrome.
func (a App) bodyBudget() int {
	budget := a.height - 6
	if budget < 4 {
		budget = 4
	}
	return budget
}

func (a App) tabBar() string {
	var parts []string
	for t := tabHome; t < tabCount; t++ {
		if t == tabAdmin && (a.me == nil || !a.me.IsAdmin()) {
			continue
		}
		label := fmt.Sprintf("%d %s", int(t)+1, tabLabels[t])
		if t == a.active {
			parts = append(parts, accentStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	return " " + strings.Join(parts, dimStyle.Render("  │  "))
}

func (a App) helpLine(viewKeys string) string {
	line := " " + viewKeys
	if !a.showLogin && !a.isEditing() {
		line += "  " + helpEntry("1-6", "tab") + "  " + helpEntry("q", "quit")
	}
	return line
}
