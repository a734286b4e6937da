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

type itemsLoadedMsg struct {
	reqID int
	items []domain.Item
	err   error
}

type itemDetailMsg struct {
	item *domain.Item
	err  error
}

type cartLoadedMsg struct {
	lines []domain.CartLine
	err   error
}

type cartAddedMsg struct {
	line *domain.CartLine
	err  error
}

type cartRemovedMsg struct {
	err error
}

// -- model --

type shopLevel int

const (
	levelItems shopLevel = iota
	levelItemDetail
	levelCart
)

type shopModel struct {
	client *api.Client

	level shopLevel
	items []domain.Item
	item  *domain.Item
	cart  []domain.CartLine

	cursor    int
	optCursor int
	quantity  int
	page      int
	reqID     int
	loading   bool
	adding    bool
	errMsg    string
	notice    string

	width  int
	height int
}

func newShopModel(c *api.Client) shopModel {
	return shopModel{client: c, loading: true, quantity: 1}
}

func (m shopModel) Init() tea.Cmd {
	return m.loadItems()
}

func (m shopModel) loadItems() tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	reqID := m.reqID
	return func() tea.Msg {
		items, err := c.ListItems(context.Background(), page)
		return itemsLoadedMsg{reqID: reqID, items: items, err: err}
	}
}

func (m shopModel) loadItem(id int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		item, err := c.GetItem(context.Background(), id)
		return itemDetailMsg{item: item, err: err}
	}
}

func (m shopModel) loadCart() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		lines, err := c.ListCart(context.Background())
		return cartLoadedMsg{lines: lines, err: err}
	}
}

func (m shopModel) addToCart() tea.Cmd {
	c := m.client
	req := api.AddCartRequest{ItemID: m.item.ID, Quantity: m.quantity}
	if len(m.item.Options) > 0 {
		req.OptionID = m.item.Options[m.optCursor].ID
	}
	return func() tea.Msg {
		line, err := c.AddCartLine(context.Background(), req)
		return cartAddedMsg{line: line, err: err}
	}
}

func (m shopModel) removeLine(lineID int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return cartRemovedMsg{err: c.RemoveCartLine(context.Background(), lineID)}
	}
}

func (m shopModel) Update(msg tea.Msg) (shopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case itemsLoadedMsg:
		if msg.reqID != m.reqID {
			return m, nil // superseded fetch
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load items")
			return m, authExpired(msg.err)
		}
		m.items = msg.items
		m.errMsg = ""
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}

	case itemDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load item")
			return m, authExpired(msg.err)
		}
		m.item = msg.item
		m.level = levelItemDetail
		m.optCursor = 0
		m.quantity = 1
		m.errMsg = ""

	case cartLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load cart")
			return m, authExpired(msg.err)
		}
		// The server response replaces the local mirror wholesale.
		m.cart = msg.lines
		m.errMsg = ""
		if m.cursor >= len(m.cart) {
			m.cursor = 0
		}

	case cartAddedMsg:
		m.adding = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to add to cart")
			return m, authExpired(msg.err)
		}
		m.notice = fmt.Sprintf("added %s to cart", msg.line.ItemName)
		m.errMsg = ""

	case cartRemovedMsg:
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to remove line")
			return m, authExpired(msg.err)
		}
		m.loading = true
		return m, m.loadCart()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m shopModel) handleKey(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	switch m.level {
	case levelItems:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.items) > 0 && m.cursor < len(m.items) {
				m.loading = true
				return m, m.loadItem(m.items[m.cursor].ID)
			}
		case "c":
			m.level = levelCart
			m.cursor = 0
			m.loading = true
			m.notice = ""
			return m, m.loadCart()
		case "n":
			m.page++
			m.cursor = 0
			m.loading = true
			m.reqID++
			return m, m.loadItems()
		case "p":
			if m.page > 0 {
				m.page--
				m.cursor = 0
				m.loading = true
				m.reqID++
				return m, m.loadItems()
			}
		}

	case levelItemDetail:
		if m.adding {
			return m, nil // one in-flight add at a time
		}
		switch msg.String() {
		case "j", "down":
			if m.optCursor < len(m.item.Options)-1 {
				m.optCursor++
			}
		case "k", "up":
			if m.optCursor > 0 {
				m.optCursor--
			}
		case "+", "=":
			m.quantity++
		case "-":
			if m.quantity > 1 {
				m.quantity--
			}
		case "a", "enter":
			if m.item.SoldOut {
				m.errMsg = "item is sold out"
				return m, nil
			}
			if len(m.item.Options) > 0 && m.item.Options[m.optCursor].SoldOut {
				m.errMsg = "option is sold out"
				return m, nil
			}
			m.adding = true
			m.errMsg = ""
			return m, m.addToCart()
		case "esc":
			m.level = levelItems
			m.item = nil
			m.notice = ""
			m.errMsg = ""
		}

	case levelCart:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.cart)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "d", "x":
			if len(m.cart) > 0 && m.cursor < len(m.cart) {
				return m, m.removeLine(m.cart[m.cursor].ID)
			}
		case "esc":
			m.level = levelItems
			m.cursor = 0
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m shopModel) View() string {
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

	switch m.level {
	case levelItems:
		if len(m.items) == 0 {
			b.WriteString(" " + dimStyle.Render("no items yet") + "\n")
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
				style.Render(truncStr(it.Name, 40)),
				priceStyle.Render(formatWon(it.Price)))
			if it.SoldOut {
				row += "  " + errStyle.Render("sold out")
			}
			b.WriteString(row + "\n")
		}
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")

	case levelItemDetail:
		it := m.item
		b.WriteString(" " + selectedStyle.Render(it.Name) + "  " + priceStyle.Render(formatWon(it.Price)) + "\n")
		if it.Summary != "" {
			b.WriteString(" " + metaStyle.Render(truncStr(it.Summary, 70)) + "\n")
		}
		b.WriteString("\n")
		for i, opt := range it.Options {
			cursor := " "
			style := normalStyle
			if i == m.optCursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			row := fmt.Sprintf(" %s %s", cursor, style.Render(opt.Name))
			if opt.ExtraPrice > 0 {
				row += " " + metaStyle.Render("+"+formatWon(opt.ExtraPrice))
			}
			if opt.SoldOut {
				row += "  " + errStyle.Render("sold out")
			}
			b.WriteString(row + "\n")
		}
		b.WriteString("\n " + helpLabelStyle.Render("quantity:") + " " + normalStyle.Render(fmt.Sprintf("%d", m.quantity)) + "\n")
		if m.adding {
			b.WriteString("\n " + dimStyle.Render("adding to cart...") + "\n")
		}

	case levelCart:
		b.WriteString(" " + accentStyle.Render("cart") + "\n\n")
		if len(m.cart) == 0 {
			b.WriteString(" " + dimStyle.Render("cart is empty") + "\n")
			break
		}
		var total int64
		for i, line := range m.cart {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			name := line.ItemName
			if line.OptionName != "" {
				name += " / " + line.OptionName
			}
			sub := line.UnitPrice * int64(line.Quantity)
			total += sub
			b.WriteString(fmt.Sprintf(" %s %s  %s  %s\n", cursor,
				style.Render(truncStr(name, 40)),
				metaStyle.Render(fmt.Sprintf("x%d", line.Quantity)),
				priceStyle.Render(formatWon(sub))))
		}
		b.WriteString("\n " + helpLabelStyle.Render("total:") + " " + priceStyle.Render(formatWon(total)) + "\n")
	}
	return b.String()
}

func (m shopModel) helpKeys() string {
	switch m.level {
	case levelItems:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("c", "cart") + "  " + helpEntry("n/p", "page")
	case levelItemDetail:
		return helpEntry("j/k", "option") + "  " + helpEntry("+/-", "qty") + "  " + helpEntry("a", "add to cart") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("j/k", "nav") + "  " + helpEntry("d", "remove") + "  " + helpEntry("esc", "back")
	}
}
