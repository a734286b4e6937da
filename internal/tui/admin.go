package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjipark/encore/internal/media"
	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// -- messages --

type adminMembersMsg struct {
	reqID   int
	members []domain.Member
	err     error
}

type adminOrdersMsg struct {
	reqID  int
	orders []domain.Order
	err    error
}

type adminItemsMsg struct {
	reqID int
	items []domain.Item
	err   error
}

type adminBannersMsg struct {
	banners []domain.Banner
	err     error
}

type bannerOrderSavedMsg struct {
	err error
}

type durationDetectedMsg struct {
	seconds int
	err     error
}

type contentPublishedMsg struct {
	content *domain.Content
	err     error
}

// -- model --

type adminSection int

const (
	adminMenu adminSection = iota
	adminMembers
	adminOrders
	adminItems
	adminBanners
	adminNewContent
)

var adminMenuEntries = []struct {
	section adminSection
	label   string
}{
	{adminMembers, "members"},
	{adminOrders, "orders"},
	{adminItems, "items"},
	{adminBanners, "banner rotation"},
	{adminNewContent, "publish content"},
}

// content form field indexes
const (
	fieldContentTitle = iota
	fieldContentCategory
	fieldContentBody
	fieldContentVideo
	fieldContentThumb
	contentFieldCount
)

type adminModel struct {
	client   *api.Client
	detector *media.Detector

	section adminSection
	cursor  int
	page    int
	reqID   int
	loading bool
	errMsg  string
	notice  string

	members []domain.Member
	orders  []domain.Order
	items   []domain.Item

	// Banner rotation working copy. Edits stay local until an explicit
	// save; esc discards them without any endpoint call.
	banners []domain.Banner
	slots   []domain.BannerSlot
	saving  bool

	// new-content form
	formTitle    string
	formCategory string
	formBody     string
	formVideo    string
	formThumb    string
	formDuration int
	formField    int
	detecting    bool
	publishing   bool

	width  int
	height int
}

func newAdminModel(c *api.Client, detector *media.Detector) adminModel {
	return adminModel{client: c, detector: detector}
}

func (m adminModel) isEditing() bool {
	return m.section == adminNewContent
}

func (m adminModel) loadMembers() tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	reqID := m.reqID
	return func() tea.Msg {
		members, err := c.AdminListMembers(context.Background(), page)
		return adminMembersMsg{reqID: reqID, members: members, err: err}
	}
}

func (m adminModel) loadOrders() tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	reqID := m.reqID
	return func() tea.Msg {
		orders, err := c.AdminListOrders(context.Background(), page)
		return adminOrdersMsg{reqID: reqID, orders: orders, err: err}
	}
}

func (m adminModel) loadItems() tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	reqID := m.reqID
	return func() tea.Msg {
		items, err := c.AdminListItems(context.Background(), page)
		return adminItemsMsg{reqID: reqID, items: items, err: err}
	}
}

func (m adminModel) loadBanners() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		banners, err := c.AdminListBanners(context.Background())
		return adminBannersMsg{banners: banners, err: err}
	}
}

func (m adminModel) saveBannerOrder() tea.Cmd {
	c := m.client
	slots := make([]domain.BannerSlot, len(m.slots))
	copy(slots, m.slots)
	return func() tea.Msg {
		return bannerOrderSavedMsg{err: c.AdminSaveBannerOrder(context.Background(), slots)}
	}
}

func (m adminModel) detectDuration() tea.Cmd {
	d := m.detector
	videoID := strings.TrimSpace(m.formVideo)
	return func() tea.Msg {
		seconds, err := d.DetectDuration(context.Background(), videoID)
		return durationDetectedMsg{seconds: seconds, err: err}
	}
}

func (m adminModel) publishContent() tea.Cmd {
	c := m.client
	req := api.AdminCreateContentRequest{
		Title:       m.formTitle,
		Body:        m.formBody,
		Category:    m.formCategory,
		VideoID:     strings.TrimSpace(m.formVideo),
		DurationSec: m.formDuration,
	}
	thumbPath := strings.TrimSpace(m.formThumb)
	return func() tea.Msg {
		var att *api.Attachment
		if thumbPath != "" {
			data, err := os.ReadFile(thumbPath)
			if err != nil {
				return contentPublishedMsg{err: err}
			}
			att = &api.Attachment{Field: "thumbnail", Name: filepath.Base(thumbPath), Data: data}
		}
		content, err := c.AdminCreateContent(context.Background(), req, att)
		return contentPublishedMsg{content: content, err: err}
	}
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case adminMembersMsg:
		if msg.reqID != m.reqID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load members")
			return m, authExpired(msg.err)
		}
		m.members = msg.members
		m.errMsg = ""

	case adminOrdersMsg:
		if msg.reqID != m.reqID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load orders")
			return m, authExpired(msg.err)
		}
		m.orders = msg.orders
		m.errMsg = ""

	case adminItemsMsg:
		if msg.reqID != m.reqID {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load items")
			return m, authExpired(msg.err)
		}
		m.items = msg.items
		m.errMsg = ""

	case adminBannersMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load banners")
			return m, authExpired(msg.err)
		}
		m.banners = msg.banners
		m.slots = domain.SlotsFromBanners(msg.banners)
		m.errMsg = ""

	case bannerOrderSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to save banner order")
			return m, authExpired(msg.err)
		}
		m.notice = "banner order saved"
		m.errMsg = ""
		return m, m.loadBanners()

	case durationDetectedMsg:
		m.detecting = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "could not detect duration")
			return m, nil
		}
		m.formDuration = msg.seconds
		m.errMsg = ""

	case contentPublishedMsg:
		m.publishing = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to publish content")
			return m, authExpired(msg.err)
		}
		m.section = adminMenu
		m.cursor = 0
		m.notice = "published " + msg.content.Title
		m.resetForm()
		m.errMsg = ""

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *adminModel) resetForm() {
	m.formTitle = ""
	m.formCategory = ""
	m.formBody = ""
	m.formVideo = ""
	m.formThumb = ""
	m.formDuration = 0
	m.formField = fieldContentTitle
}

func (m adminModel) enter(section adminSection) (adminModel, tea.Cmd) {
	m.section = section
	m.cursor = 0
	m.page = 0
	m.loading = true
	m.reqID++
	m.notice = ""
	m.errMsg = ""
	switch section {
	case adminMembers:
		return m, m.loadMembers()
	case adminOrders:
		return m, m.loadOrders()
	case adminItems:
		return m, m.loadItems()
	case adminBanners:
		return m, m.loadBanners()
	case adminNewContent:
		m.loading = false
		m.resetForm()
		return m, nil
	}
	return m, nil
}

func (m adminModel) handleKey(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch m.section {
	case adminMenu:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(adminMenuEntries)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			return m.enter(adminMenuEntries[m.cursor].section)
		}

	case adminMembers, adminOrders, adminItems:
		switch msg.String() {
		case "j", "down":
			if m.cursor < m.listLen()-1 {
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
			return m, m.reloadList()
		case "p":
			if m.page > 0 {
				m.page--
				m.cursor = 0
				m.loading = true
				m.reqID++
				return m, m.reloadList()
			}
		case "esc":
			m.section = adminMenu
			m.cursor = 0
			m.errMsg = ""
		}

	case adminBanners:
		if m.saving {
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.banners)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case " ":
			if m.cursor < len(m.banners) {
				b := m.banners[m.cursor]
				m.slots = domain.ToggleSlot(m.slots, b.ID, b.Title)
			}
		case "J":
			if i := m.slotIndex(); i >= 0 {
				domain.MoveSlotDown(m.slots, i)
			}
		case "K":
			if i := m.slotIndex(); i >= 0 {
				domain.MoveSlotUp(m.slots, i)
			}
		case "s":
			m.saving = true
			m.errMsg = ""
			return m, m.saveBannerOrder()
		case "esc":
			// Discard the working copy; nothing was sent.
			m.slots = nil
			m.section = adminMenu
			m.cursor = 0
			m.errMsg = ""
		}

	case adminNewContent:
		if m.publishing || m.detecting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.section = adminMenu
			m.cursor = 0
			m.errMsg = ""
		case "tab", "down":
			m.formField = (m.formField + 1) % contentFieldCount
		case "shift+tab", "up":
			m.formField = (m.formField + contentFieldCount - 1) % contentFieldCount
		case "ctrl+d":
			if strings.TrimSpace(m.formVideo) == "" {
				m.errMsg = "enter a video id first"
				return m, nil
			}
			m.detecting = true
			m.errMsg = ""
			return m, m.detectDuration()
		case "enter":
			if strings.TrimSpace(m.formTitle) == "" || strings.TrimSpace(m.formCategory) == "" {
				m.errMsg = "title and category are required"
				return m, nil
			}
			m.publishing = true
			m.errMsg = ""
			return m, m.publishContent()
		default:
			switch m.formField {
			case fieldContentTitle:
				m.formTitle = editRune(m.formTitle, msg.String())
			case fieldContentCategory:
				m.formCategory = editRune(m.formCategory, msg.String())
			case fieldContentBody:
				m.formBody = editRune(m.formBody, msg.String())
			case fieldContentVideo:
				m.formVideo = editRune(m.formVideo, msg.String())
			case fieldContentThumb:
				m.formThumb = editRune(m.formThumb, msg.String())
			}
		}
	}
	return m, nil
}

func (m adminModel) listLen() int {
	switch m.section {
	case adminMembers:
		return len(m.members)
	case adminOrders:
		return len(m.orders)
	default:
		return len(m.items)
	}
}

func (m adminModel) reloadList() tea.Cmd {
	switch m.section {
	case adminMembers:
		return m.loadMembers()
	case adminOrders:
		return m.loadOrders()
	default:
		return m.loadItems()
	}
}

// slotIndex maps the banner cursor to its position in the working slot
// list, or -1 when the highlighted banner is not in the rotation.
func (m adminModel) slotIndex() int {
	if m.cursor >= len(m.banners) {
		return -1
	}
	id := m.banners[m.cursor].ID
	for i, s := range m.slots {
		if s.BannerID == id {
			return i
		}
	}
	return -1
}

func (m adminModel) View() string {
	var b strings.Builder

	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(" " + okStyle.Render(m.notice) + "\n\n")
	}

	if m.loading {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}

	switch m.section {
	case adminMenu:
		b.WriteString(" " + accentStyle.Render("admin console") + "\n\n")
		for i, e := range adminMenuEntries {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			b.WriteString(fmt.Sprintf(" %s %s\n", cursor, style.Render(e.label)))
		}

	case adminMembers:
		b.WriteString(" " + accentStyle.Render("members") + "\n\n")
		if len(m.members) == 0 {
			b.WriteString(" " + dimStyle.Render("no members") + "\n")
			break
		}
		for i, mem := range m.members {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			b.WriteString(fmt.Sprintf(" %s %s  %s  %s\n", cursor,
				style.Render(truncStr(mem.Email, 32)),
				metaStyle.Render(mem.Nickname),
				badgeStyle.Render(mem.Role)))
		}
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")

	case adminOrders:
		b.WriteString(" " + accentStyle.Render("orders") + "\n\n")
		if len(m.orders) == 0 {
			b.WriteString(" " + dimStyle.Render("no orders") + "\n")
			break
		}
		for i, o := range m.orders {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			b.WriteString(fmt.Sprintf(" %s %s %s  %s  %s\n", cursor,
				statusStyle(o.Status).Render(fmt.Sprintf("%-9s", o.Status)),
				style.Render(o.OrderNo),
				priceStyle.Render(formatWon(o.Amount)),
				metaStyle.Render(formatTime(o.CreatedAt))))
		}
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")

	case adminItems:
		b.WriteString(" " + accentStyle.Render("items") + "\n\n")
		if len(m.items) == 0 {
			b.WriteString(" " + dimStyle.Render("no items") + "\n")
			break
		}
		for i, it := range m.items {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			row := fmt.Sprintf(" %s %s  %s", cursor,
				style.Render(truncStr(it.Name, 36)),
				priceStyle.Render(formatWon(it.Price)))
			if it.SoldOut {
				row += "  " + errStyle.Render("sold out")
			}
			b.WriteString(row + "\n")
		}
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")

	case adminBanners:
		b.WriteString(" " + accentStyle.Render("banner rotation") + "  " + dimStyle.Render("space toggle · J/K reorder · s save") + "\n\n")
		for i, bn := range m.banners {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			mark := dimStyle.Render("  -")
			for _, s := range m.slots {
				if s.BannerID == bn.ID {
					mark = okStyle.Render(fmt.Sprintf("%3d", s.Order))
					break
				}
			}
			b.WriteString(fmt.Sprintf(" %s %s %s\n", cursor, mark, style.Render(truncStr(bn.Title, 40))))
		}
		if m.saving {
			b.WriteString("\n " + dimStyle.Render("saving...") + "\n")
		}

	case adminNewContent:
		b.WriteString(" " + accentStyle.Render("publish content") + "\n\n")
		duration := ""
		if m.formDuration > 0 {
			duration = formatDuration(m.formDuration)
		}
		fields := []struct {
			label string
			value string
			hint  string
		}{
			{"title:", m.formTitle, ""},
			{"category:", m.formCategory, "video / notice / photo / story / schedule"},
			{"body:", truncStr(m.formBody, 48), ""},
			{"video id:", m.formVideo, "ctrl+d detects duration"},
			{"thumbnail:", m.formThumb, "path to image file (optional)"},
		}
		for i, f := range fields {
			cursor := " "
			style := normalStyle
			if i == m.formField {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			val := f.value
			if val == "" && f.hint != "" {
				val = inputPlaceholderStyle.Render(f.hint)
			} else {
				val = style.Render(val)
			}
			b.WriteString(fmt.Sprintf(" %s %s %s\n", cursor, helpLabelStyle.Render(fmt.Sprintf("%-10s", f.label)), val))
		}
		if duration != "" {
			b.WriteString("\n " + helpLabelStyle.Render("duration:") + "  " + okStyle.Render(duration) + "\n")
		}
		switch {
		case m.detecting:
			b.WriteString("\n " + dimStyle.Render("detecting duration...") + "\n")
		case m.publishing:
			b.WriteString("\n " + dimStyle.Render("publishing...") + "\n")
		}
	}
	return b.String()
}

func (m adminModel) helpKeys() string {
	switch m.section {
	case adminMenu:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open")
	case adminBanners:
		return helpEntry("space", "toggle") + "  " + helpEntry("J/K", "move") + "  " + helpEntry("s", "save") + "  " + helpEntry("esc", "discard")
	case adminNewContent:
		return helpEntry("tab", "field") + "  " + helpEntry("ctrl+d", "detect duration") + "  " + helpEntry("enter", "publish") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("n/p", "page") + "  " + helpEntry("esc", "back")
	}
}
