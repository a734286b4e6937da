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

// contentsLoadedMsg carries one page of catalog content. reqID ties the
// response to the fetch that issued it; a stale reqID is dropped so a
// superseded fetch can never overwrite a newer page.
type contentsLoadedMsg struct {
	reqID    int
	contents []domain.Content
	err      error
}

type bannersLoadedMsg struct {
	banners []domain.Banner
	err     error
}

type contentDetailMsg struct {
	content *domain.Content
	err     error
}

// -- model --

type homeModel struct {
	client   *api.Client
	contents []domain.Content
	banners  []domain.Banner

	// contentsErr/bannersErr distinguish "failed to load" from an empty
	// result, which renders as "no content yet".
	contentsErr string
	bannersErr  string
	loading     bool

	cursor    int
	page      int
	reqID     int
	category  int // index into homeCategories
	filter    string
	filtering bool

	detail *domain.Content

	width  int
	height int
}

// homeCategories are the server-side category filters, cycled in order. The
// empty entry means no filter.
var homeCategories = []string{"", "video", "notice", "photo", "story", "schedule"}

func newHomeModel(c *api.Client) homeModel {
	return homeModel{client: c, loading: true}
}

// Init fans out the two independent reads in parallel; each lands in its own
// message with its own error.
func (m homeModel) Init() tea.Cmd {
	return tea.Batch(m.loadContents(), m.loadBanners())
}

func (m homeModel) loadContents() tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	category := homeCategories[m.category]
	reqID := m.reqID
	return func() tea.Msg {
		contents, err := c.ListContents(context.Background(), category, page)
		return contentsLoadedMsg{reqID: reqID, contents: contents, err: err}
	}
}

func (m homeModel) loadBanners() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		banners, err := c.ListBanners(context.Background())
		return bannersLoadedMsg{banners: banners, err: err}
	}
}

func (m homeModel) openDetail(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		content, err := c.GetContent(context.Background(), id)
		return contentDetailMsg{content: content, err: err}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case contentsLoadedMsg:
		if msg.reqID != m.reqID {
			return m, nil // superseded fetch
		}
		m.loading = false
		if msg.err != nil {
			m.contentsErr = describeErr(msg.err, "failed to load content")
			return m, authExpired(msg.err)
		}
		m.contents = msg.contents
		m.contentsErr = ""
		if m.cursor >= len(m.contents) {
			m.cursor = 0
		}

	case bannersLoadedMsg:
		if msg.err != nil {
			m.bannersErr = describeErr(msg.err, "failed to load banners")
			return m, authExpired(msg.err)
		}
		m.banners = msg.banners
		m.bannersErr = ""

	case contentDetailMsg:
		if msg.err != nil {
			m.contentsErr = describeErr(msg.err, "failed to load content")
			return m, authExpired(msg.err)
		}
		m.detail = msg.content

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m homeModel) handleKey(msg tea.KeyMsg) (homeModel, tea.Cmd) {
	if m.filtering {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
		default:
			m.filter = editRune(m.filter, msg.String())
			m.cursor = 0
		}
		return m, nil
	}

	if m.detail != nil {
		if msg.String() == "esc" {
			m.detail = nil
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.filtering = true
		m.filter = ""
		m.cursor = 0
	case "enter":
		visible := m.visible()
		if len(visible) > 0 && m.cursor < len(visible) {
			return m, m.openDetail(visible[m.cursor].ID)
		}
	case "n":
		m.page++
		m.cursor = 0
		m.loading = true
		m.reqID++
		return m, m.loadContents()
	case "p":
		if m.page > 0 {
			m.page--
			m.cursor = 0
			m.loading = true
			m.reqID++
			return m, m.loadContents()
		}
	case "c":
		m.category = (m.category + 1) % len(homeCategories)
		m.page = 0
		m.cursor = 0
		m.loading = true
		m.reqID++
		return m, m.loadContents()
	case "r":
		m.loading = true
		m.reqID++
		return m, tea.Batch(m.loadContents(), m.loadBanners())
	}
	return m, nil
}

// visible applies the client-side filter over the currently loaded page
// only; the full dataset is never filtered locally.
func (m homeModel) visible() []domain.Content {
	if m.filter == "" {
		return m.contents
	}
	needle := strings.ToLower(m.filter)
	var out []domain.Content
	for _, c := range m.contents {
		if strings.Contains(strings.ToLower(c.Title), needle) {
			out = append(out, c)
		}
	}
	return out
}

func (m homeModel) View() string {
	if m.detail != nil {
		return m.detailView()
	}

	var b strings.Builder

	// Banner strip
	switch {
	case m.bannersErr != "":
		b.WriteString(" " + errStyle.Render("banners: "+m.bannersErr) + "\n")
	case len(m.banners) > 0:
		var chips []string
		for _, bn := range m.banners {
			if !bn.Visible {
				continue
			}
			chips = append(chips, accentStyle.Render("▌")+normalStyle.Render(truncStr(bn.Title, 24)))
		}
		b.WriteString(" " + strings.Join(chips, dimStyle.Render("  ·  ")) + "\n")
	}
	b.WriteString("\n")

	if cat := homeCategories[m.category]; cat != "" {
		b.WriteString(" " + badgeStyle.Render(cat) + "\n")
	}

	if m.filtering || m.filter != "" {
		b.WriteString(" " + accentStyle.Render("/") + normalStyle.Render(m.filter))
		if m.filtering {
			b.WriteString(accentStyle.Render("█"))
		}
		b.WriteString("\n")
	}

	switch {
	case m.loading && len(m.contents) == 0:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.contentsErr != "":
		b.WriteString(" " + errStyle.Render("failed to load: "+m.contentsErr) + "\n")
		return b.String()
	}

	visible := m.visible()
	if len(visible) == 0 {
		if m.filter != "" {
			b.WriteString(" " + dimStyle.Render("nothing on this page matches") + "\n")
		} else {
			b.WriteString(" " + dimStyle.Render("no content yet") + "\n")
		}
		return b.String()
	}

	for i, c := range visible {
		cursor := " "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			titleStyle = selectedStyle
		}
		row := fmt.Sprintf(" %s %s %s", cursor,
			CategoryStyle(c.Category).Render(fmt.Sprintf("%-8s", c.Category)),
			titleStyle.Render(truncStr(c.Title, 48)))
		if c.DurationSec > 0 {
			row += "  " + dimStyle.Render(formatDuration(c.DurationSec))
		}
		row += "  " + metaStyle.Render(formatTime(c.CreatedAt))
		b.WriteString(row + "\n")
	}

	b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")
	return b.String()
}

func (m homeModel) detailView() string {
	c := m.detail
	var b strings.Builder
	b.WriteString(" " + CategoryStyle(c.Category).Render(c.Category) + "  " + selectedStyle.Render(c.Title) + "\n")
	meta := formatTime(c.CreatedAt) + " · " + fmt.Sprintf("%d views", c.ViewCount)
	if c.DurationSec > 0 {
		meta += " · " + formatDuration(c.DurationSec)
	}
	b.WriteString(" " + metaStyle.Render(meta) + "\n\n")
	if c.Body != "" {
		b.WriteString(" " + normalStyle.Render(truncStr(c.Body, 900)) + "\n")
	}
	if c.VideoID != "" {
		b.WriteString("\n " + dimStyle.Render("video: "+c.VideoID) + "\n")
	}
	return b.String()
}

func (m homeModel) helpKeys() string {
	if m.detail != nil {
		return helpEntry("esc", "back")
	}
	return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("/", "filter") + "  " + helpEntry("c", "category") + "  " + helpEntry("n/p", "page") + "  " + helpEntry("r", "refresh")
}
