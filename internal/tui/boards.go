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

type boardsLoadedMsg struct {
	boards []domain.Board
	err    error
}

type postsLoadedMsg struct {
	reqID int
	posts []domain.Post
	err   error
}

type postDetailMsg struct {
	post     *domain.Post
	comments []domain.Comment
	err      error
}

type postCreatedMsg struct {
	post *domain.Post
	err  error
}

type commentCreatedMsg struct {
	comment *domain.Comment
	err     error
}

// -- model --

type boardsLevel int

const (
	levelBoards boardsLevel = iota
	levelPosts
	levelPostDetail
)

type boardsModel struct {
	client *api.Client
	me     *domain.Member

	level  boardsLevel
	boards []domain.Board
	posts  []domain.Post

	board    *domain.Board
	post     *domain.Post
	comments []domain.Comment

	cursor  int
	page    int
	reqID   int
	loading bool
	errMsg  string
	notice  string

	// composing covers both the new-post form and the comment line.
	composing    bool
	composeTitle string
	composeBody  string
	composeField int // 0 title, 1 body
	submitting   bool

	width  int
	height int
}

func newBoardsModel(c *api.Client) boardsModel {
	return boardsModel{client: c, loading: true}
}

func (m *boardsModel) setMember(me *domain.Member) {
	m.me = me
}

func (m boardsModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		boards, err := c.ListBoards(context.Background())
		return boardsLoadedMsg{boards: boards, err: err}
	}
}

func (m boardsModel) loadPosts(boardID int64) tea.Cmd {
	c := m.client
	page := api.Page{Index: m.page, Size: pageSize, Sort: "createdAt", Direction: "desc"}
	reqID := m.reqID
	return func() tea.Msg {
		posts, err := c.ListPosts(context.Background(), boardID, page)
		return postsLoadedMsg{reqID: reqID, posts: posts, err: err}
	}
}

func (m boardsModel) loadPost(postID int64) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		post, err := c.GetPost(context.Background(), postID)
		if err != nil {
			return postDetailMsg{err: err}
		}
		comments, err := c.ListComments(context.Background(), postID)
		return postDetailMsg{post: post, comments: comments, err: err}
	}
}

func (m boardsModel) submitPost() tea.Cmd {
	c := m.client
	boardID := m.board.ID
	req := api.CreatePostRequest{Title: m.composeTitle, Body: m.composeBody}
	return func() tea.Msg {
		post, err := c.CreatePost(context.Background(), boardID, req)
		return postCreatedMsg{post: post, err: err}
	}
}

func (m boardsModel) submitComment() tea.Cmd {
	c := m.client
	postID := m.post.ID
	body := m.composeBody
	return func() tea.Msg {
		comment, err := c.CreateComment(context.Background(), postID, body)
		return commentCreatedMsg{comment: comment, err: err}
	}
}

func (m boardsModel) isEditing() bool {
	return m.composing
}

// canWrite gates the new-post and comment forms. Membership privilege is
// read from the freshly fetched profile so a lapsed membership takes effect
// on the next page load.
func (m boardsModel) canWrite() bool {
	return m.me != nil && m.me.HasMembershipPrivilege()
}

func (m boardsModel) Update(msg tea.Msg) (boardsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case boardsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load boards")
			return m, authExpired(msg.err)
		}
		m.boards = msg.boards
		m.errMsg = ""

	case postsLoadedMsg:
		if msg.reqID != m.reqID {
			return m, nil // superseded fetch
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load posts")
			return m, authExpired(msg.err)
		}
		m.posts = msg.posts
		m.errMsg = ""
		if m.cursor >= len(m.posts) {
			m.cursor = 0
		}

	case postDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load post")
			return m, authExpired(msg.err)
		}
		m.post = msg.post
		m.comments = msg.comments
		m.level = levelPostDetail
		m.errMsg = ""

	case postCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to create post")
			return m, authExpired(msg.err)
		}
		m.composing = false
		m.composeTitle = ""
		m.composeBody = ""
		m.notice = "post created"
		m.reqID++
		m.loading = true
		return m, m.loadPosts(m.board.ID)

	case commentCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to add comment")
			return m, authExpired(msg.err)
		}
		m.composing = false
		m.composeBody = ""
		return m, m.loadPost(m.post.ID)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardsModel) handleKey(msg tea.KeyMsg) (boardsModel, tea.Cmd) {
	if m.composing {
		return m.handleComposeKey(msg)
	}

	switch m.level {
	case levelBoards:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.boards)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.boards) > 0 && m.cursor < len(m.boards) {
				b := m.boards[m.cursor]
				m.board = &b
				m.level = levelPosts
				m.cursor = 0
				m.page = 0
				m.posts = nil
				m.loading = true
				m.reqID++
				return m, m.loadPosts(b.ID)
			}
		}

	case levelPosts:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.posts)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(m.posts) > 0 && m.cursor < len(m.posts) {
				m.loading = true
				return m, m.loadPost(m.posts[m.cursor].ID)
			}
		case "w":
			if !m.canWrite() {
				m.errMsg = "membership required to write"
				return m, nil
			}
			m.composing = true
			m.composeTitle = ""
			m.composeBody = ""
			m.composeField = 0
			m.errMsg = ""
		case "n":
			m.page++
			m.cursor = 0
			m.loading = true
			m.reqID++
			return m, m.loadPosts(m.board.ID)
		case "p":
			if m.page > 0 {
				m.page--
				m.cursor = 0
				m.loading = true
				m.reqID++
				return m, m.loadPosts(m.board.ID)
			}
		case "esc":
			m.level = levelBoards
			m.board = nil
			m.cursor = 0
			m.notice = ""
			m.errMsg = ""
		}

	case levelPostDetail:
		switch msg.String() {
		case "c":
			if !m.canWrite() {
				m.errMsg = "membership required to write"
				return m, nil
			}
			m.composing = true
			m.composeBody = ""
			m.composeField = 1
			m.errMsg = ""
		case "esc":
			m.level = levelPosts
			m.post = nil
			m.comments = nil
			m.errMsg = ""
		}
	}
	return m, nil
}

func (m boardsModel) handleComposeKey(msg tea.KeyMsg) (boardsModel, tea.Cmd) {
	if m.submitting {
		return m, nil // one in-flight submit at a time
	}
	switch msg.String() {
	case "esc":
		m.composing = false
		m.errMsg = ""
	case "tab":
		if m.level == levelPosts {
			m.composeField = 1 - m.composeField
		}
	case "enter":
		if m.level == levelPostDetail {
			if strings.TrimSpace(m.composeBody) == "" {
				return m, nil
			}
			m.submitting = true
			return m, m.submitComment()
		}
		if strings.TrimSpace(m.composeTitle) == "" || strings.TrimSpace(m.composeBody) == "" {
			m.errMsg = "title and body are required"
			return m, nil
		}
		m.submitting = true
		return m, m.submitPost()
	default:
		if m.composeField == 0 {
			m.composeTitle = editRune(m.composeTitle, msg.String())
		} else {
			m.composeBody = editRune(m.composeBody, msg.String())
		}
	}
	return m, nil
}

func (m boardsModel) View() string {
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
	case levelBoards:
		if len(m.boards) == 0 {
			b.WriteString(" " + dimStyle.Render("no boards yet") + "\n")
			break
		}
		for i, board := range m.boards {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			b.WriteString(fmt.Sprintf(" %s %s  %s\n", cursor,
				style.Render(truncStr(board.Name, 32)),
				metaStyle.Render(fmt.Sprintf("%d posts", board.PostCount))))
		}

	case levelPosts:
		b.WriteString(" " + accentStyle.Render(m.board.Name) + "\n\n")
		if m.composing {
			b.WriteString(m.composeView())
			break
		}
		if len(m.posts) == 0 {
			b.WriteString(" " + dimStyle.Render("no posts yet") + "\n")
			break
		}
		for i, p := range m.posts {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			b.WriteString(fmt.Sprintf(" %s %s  %s %s\n", cursor,
				style.Render(truncStr(p.Title, 44)),
				metaStyle.Render(p.AuthorNickname),
				dimStyle.Render(fmt.Sprintf("(%d)", p.CommentCount))))
		}
		b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d", m.page+1)) + "\n")

	case levelPostDetail:
		p := m.post
		b.WriteString(" " + selectedStyle.Render(p.Title) + "\n")
		b.WriteString(" " + metaStyle.Render(p.AuthorNickname+" · "+formatTime(p.CreatedAt)) + "\n\n")
		if p.Body != "" {
			b.WriteString(" " + normalStyle.Render(truncStr(p.Body, 800)) + "\n\n")
		}
		b.WriteString(" " + dimStyle.Render(fmt.Sprintf("── %d comments ──", len(m.comments))) + "\n")
		for _, cm := range m.comments {
			b.WriteString(" " + metaStyle.Render(cm.AuthorNickname) + " " + normalStyle.Render(truncStr(cm.Body, 56)) + "\n")
		}
		if m.composing {
			b.WriteString("\n " + accentStyle.Render(">") + " " + normalStyle.Render(m.composeBody) + accentStyle.Render("█") + "\n")
		}
	}
	return b.String()
}

func (m boardsModel) composeView() string {
	var b strings.Builder
	titleCur, bodyCur := " ", " "
	if m.composeField == 0 {
		titleCur = accentStyle.Render("▸")
	} else {
		bodyCur = accentStyle.Render("▸")
	}
	b.WriteString(fmt.Sprintf(" %s %s %s\n", titleCur, helpLabelStyle.Render("title:"), normalStyle.Render(m.composeTitle)))
	b.WriteString(fmt.Sprintf(" %s %s  %s\n", bodyCur, helpLabelStyle.Render("body:"), normalStyle.Render(truncStr(m.composeBody, 60))))
	if m.submitting {
		b.WriteString("\n " + dimStyle.Render("posting...") + "\n")
	} else {
		b.WriteString("\n " + dimStyle.Render("tab switch · enter submit · esc cancel") + "\n")
	}
	return b.String()
}

func (m boardsModel) helpKeys() string {
	if m.composing {
		return helpEntry("enter", "submit") + "  " + helpEntry("esc", "cancel")
	}
	switch m.level {
	case levelBoards:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open")
	case levelPosts:
		h := helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("n/p", "page") + "  " + helpEntry("esc", "back")
		if m.canWrite() {
			h += "  " + helpEntry("w", "write")
		}
		return h
	default:
		h := helpEntry("esc", "back")
		if m.canWrite() {
			h = helpEntry("c", "comment") + "  " + h
		}
		return h
	}
}
