package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openrevue/revue-cli/internal/api"
	"github.com/openrevue/revue-cli/internal/filter"
	"github.com/openrevue/revue-cli/internal/paginate"
	"github.com/openrevue/revue-cli/internal/render"
	"github.com/openrevue/revue-cli/internal/suggest"
	"github.com/openrevue/revue-cli/internal/tui/actions"
	"github.com/openrevue/revue-cli/internal/tui/platform"
	"github.com/openrevue/revue-cli/internal/tui/state"
	tuitheme "github.com/openrevue/revue-cli/internal/tui/theme"
	"github.com/openrevue/revue-cli/internal/tui/view"
	"github.com/openrevue/revue-cli/internal/urlstate"
)

type Auth interface {
	IsLoggedIn() bool
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

type viewKind int

const (
	viewHome viewKind = iota
	viewSearch
	viewDetail
	viewLogin
)

const (
	sectionRecent = iota
	sectionPopular
)

type clearStatusMsg struct {
	id int
}

type searchSaveErrorMsg struct {
	err error
}

type Model struct {
	service actions.Service
	auth    Auth
	th      tuitheme.Theme

	view viewKind
	// viewSeq stamps every async command. Results carrying an older stamp
	// belong to a view the user already left and are dropped.
	viewSeq int

	articles []api.Article
	filtered []api.Article
	popular  []api.Article
	criteria filter.Criteria
	authors  *suggest.Index

	pageSize      int
	recentCar     paginate.Carousel
	popularCar    paginate.Carousel
	section       int
	cursorRecent  int
	cursorPopular int

	fields        []string
	fieldCursor   int
	suggestions   []string
	suggestCursor int
	formErr       string

	detailID       int64
	detailArticle  api.Article
	detailComments []api.Comment
	articleLoaded  bool
	commentsLoaded bool
	detailTop      int
	bookmark       state.Bookmark
	bookmarkKnown  bool
	commentCursor  int
	composing      bool
	editingID      int64
	draft          string
	composeErr     string

	username   string
	password   string
	loginField int
	loginErr   string
	returnView viewKind

	shareBaseURL string

	width    int
	height   int
	loading  bool
	notice   state.Notice
	statusID int
	err      error
	showHelp bool

	openURLFn    func(string) error
	copyURLFn    func(string) error
	saveSearchFn func(string) error
	nowFn        func() time.Time
}

func NewModel(service actions.Service, auth Auth, articles []api.Article, initial filter.Criteria, pageSize int, shareBaseURL string) Model {
	if pageSize < 1 {
		pageSize = 4
	}
	m := Model{
		service:      service,
		auth:         auth,
		th:           tuitheme.Default(),
		criteria:     initial,
		pageSize:     pageSize,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		openURLFn:    platform.OpenURLInBrowser,
		copyURLFn:    platform.CopyURLToClipboard,
		nowFn:        time.Now,
		authors:      suggest.Build(articles),
	}
	m.fields = fieldsFromCriteria(initial)
	m.setArticles(articles)
	return m
}

// SetSaveSearchFn installs the callback that persists the applied criteria
// between runs.
func (m *Model) SetSaveSearchFn(fn func(string) error) {
	m.saveSearchFn = fn
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return actions.RefreshArticlesCmd(m.service, m.viewSeq, "init")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case actions.ArticlesLoadedMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		m.loading = false
		m.err = nil
		m.authors.Rebuild(msg.Articles)
		m.setArticles(msg.Articles)
		if msg.Source == "manual" {
			return m.setStatus(fmt.Sprintf("%d articles chargés", len(msg.Articles)))
		}
		return m, nil
	case actions.ArticlesErrorMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		m.loading = false
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		m.err = msg.Err
		return m, nil
	case actions.ArticleLoadedMsg:
		if msg.Seq != m.viewSeq || m.view != viewDetail {
			return m, nil
		}
		m.detailArticle = msg.Article
		m.articleLoaded = true
		m.loading = !m.commentsLoaded
		return m, nil
	case actions.CommentsLoadedMsg:
		if msg.Seq != m.viewSeq || m.view != viewDetail {
			return m, nil
		}
		m.detailComments = msg.Comments
		m.commentsLoaded = true
		m.commentCursor = state.ClampCursor(m.commentCursor, len(m.detailComments))
		m.loading = !m.articleLoaded
		return m, nil
	case actions.DetailErrorMsg:
		if msg.Seq != m.viewSeq || m.view != viewDetail {
			return m, nil
		}
		m.loading = false
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		m.err = msg.Err
		return m, nil
	case actions.BookmarkStatusMsg:
		if msg.Seq != m.viewSeq || msg.ArticleID != m.detailID {
			return m, nil
		}
		m.bookmark = state.Bookmark{Bookmarked: msg.Bookmarked}
		m.bookmarkKnown = true
		return m, nil
	case actions.BookmarkStatusErrorMsg:
		if msg.Seq != m.viewSeq || msg.ArticleID != m.detailID {
			return m, nil
		}
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		// the next b press refetches; no automatic retry
		m.bookmarkKnown = false
		return m.setError(msg.Err.Error())
	case actions.BookmarkToggledMsg:
		if msg.Seq != m.viewSeq || msg.ArticleID != m.detailID {
			return m, nil
		}
		m.bookmark = m.bookmark.Confirm(msg.Bookmarked)
		return m.setSuccess(msg.Status)
	case actions.BookmarkToggleErrorMsg:
		if msg.Seq != m.viewSeq || msg.ArticleID != m.detailID {
			return m, nil
		}
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		m.bookmark = m.bookmark.Rollback()
		m.bookmarkKnown = false
		m.err = msg.Err
		// reconcile with the server once the optimistic flip is undone
		return m, actions.BookmarkStatusCmd(m.service, m.viewSeq, m.detailID)
	case actions.CommentPostedMsg:
		if msg.Seq != m.viewSeq || m.view != viewDetail {
			return m, nil
		}
		m.detailComments = state.AppendComment(m.detailComments, msg.Comment)
		m.composing = false
		m.draft = ""
		m.composeErr = ""
		return m.setSuccess("Commentaire publié")
	case actions.CommentPostErrorMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		m.composeErr = validationDetail(msg.Err)
		return m, nil
	case actions.CommentEditedMsg:
		if msg.Seq != m.viewSeq || m.view != viewDetail {
			return m, nil
		}
		m.detailComments = state.ReplaceComment(m.detailComments, msg.Comment)
		if i := state.FindComment(m.detailComments, msg.Comment.ID); i >= 0 {
			m.commentCursor = i
		}
		m.composing = false
		m.editingID = 0
		m.draft = ""
		m.composeErr = ""
		return m.setSuccess("Commentaire modifié")
	case actions.CommentEditErrorMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		m.composeErr = validationDetail(msg.Err)
		return m, nil
	case actions.CommentDeletedMsg:
		if msg.Seq != m.viewSeq || m.view != viewDetail {
			return m, nil
		}
		m.detailComments = state.RemoveComment(m.detailComments, msg.CommentID)
		m.commentCursor = state.ClampCursor(m.commentCursor, len(m.detailComments))
		return m.setSuccess("Commentaire supprimé")
	case actions.CommentDeleteErrorMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return m.forceLogout()
		}
		m.err = msg.Err
		return m, nil
	case actions.LoginSuccessMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		m.loading = false
		if m.auth != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.auth.Login(ctx, msg.Token); err != nil {
				m.loginErr = err.Error()
				return m, nil
			}
		}
		m.username = ""
		m.password = ""
		m.loginField = 0
		m.loginErr = ""
		m.viewSeq++
		m.view = m.returnView
		if m.view == viewDetail {
			// the bookmark state was unknown while anonymous
			m.bookmarkKnown = false
			return m.withNotice(state.SuccessNotice("Connecté"), actions.BookmarkStatusCmd(m.service, m.viewSeq, m.detailID))
		}
		return m.setSuccess("Connecté")
	case actions.LoginErrorMsg:
		if msg.Seq != m.viewSeq {
			return m, nil
		}
		m.loading = false
		m.loginErr = validationDetail(msg.Err)
		return m, nil
	case actions.OpenLinkMsg:
		return m.setStatus(msg.Status)
	case actions.OpenLinkErrorMsg:
		return m.setError(msg.Err.Error())
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.notice = state.Notice{}
		}
		return m, nil
	case searchSaveErrorMsg:
		m.err = msg.err
		return m.setError("Impossible d'enregistrer la recherche")
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		switch key {
		case "?", "esc":
			m.showHelp = false
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.view {
	case viewSearch:
		return m.updateSearchKey(key)
	case viewDetail:
		return m.updateDetailKey(key)
	case viewLogin:
		return m.updateLoginKey(key)
	default:
		return m.updateHomeKey(key)
	}
}

func (m Model) updateHomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab", "down", "j", "up", "k":
		if m.section == sectionRecent {
			m.section = sectionPopular
		} else {
			m.section = sectionRecent
		}
		return m, nil
	case "h":
		m.activeCarousel().Scroll(-1)
		m.snapCursorToPage()
		return m, nil
	case "l":
		m.activeCarousel().Scroll(1)
		m.snapCursorToPage()
		return m, nil
	case "left":
		m.moveCursorBy(-1)
		return m, nil
	case "right":
		m.moveCursorBy(1)
		return m, nil
	case "enter":
		articles := m.sectionArticles(m.section)
		cursor := m.sectionCursor(m.section)
		if cursor < 0 || cursor >= len(articles) {
			return m, nil
		}
		return m.openDetail(articles[cursor])
	case "/":
		m.view = viewSearch
		m.fields = fieldsFromCriteria(m.criteria)
		m.fieldCursor = 0
		m.suggestions = nil
		m.suggestCursor = -1
		m.formErr = ""
		return m, nil
	case "r":
		if m.service == nil {
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, actions.RefreshArticlesCmd(m.service, m.viewSeq, "manual")
	case "y":
		return m, actions.CopyShareLinkCmd(m.shareLink(m.criteria), m.copyURLFn)
	case "L":
		if m.loggedIn() {
			return m.logout()
		}
		m.returnView = viewHome
		m.view = viewLogin
		m.loginErr = ""
		return m, nil
	}
	return m, nil
}

func (m Model) updateSearchKey(key string) (tea.Model, tea.Cmd) {
	dim := filter.Dimensions[m.fieldCursor]

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewHome
		return m, nil
	case "tab":
		m.fieldCursor = (m.fieldCursor + 1) % len(filter.Dimensions)
		m.resetSuggestions()
		return m, nil
	case "shift+tab":
		m.fieldCursor = (m.fieldCursor + len(filter.Dimensions) - 1) % len(filter.Dimensions)
		m.resetSuggestions()
		return m, nil
	case "up":
		if dim == filter.DimAuthor && len(m.suggestions) > 0 {
			if m.suggestCursor > 0 {
				m.suggestCursor--
			}
			return m, nil
		}
		m.fieldCursor = (m.fieldCursor + len(filter.Dimensions) - 1) % len(filter.Dimensions)
		m.resetSuggestions()
		return m, nil
	case "down":
		if dim == filter.DimAuthor && len(m.suggestions) > 0 {
			if m.suggestCursor < len(m.suggestions)-1 {
				m.suggestCursor++
			}
			return m, nil
		}
		m.fieldCursor = (m.fieldCursor + 1) % len(filter.Dimensions)
		m.resetSuggestions()
		return m, nil
	case "ctrl+r":
		m.fields = fieldsFromCriteria(filter.Criteria{})
		m.resetSuggestions()
		m.formErr = ""
		return m, nil
	case "enter":
		if dim == filter.DimAuthor && m.suggestCursor >= 0 && m.suggestCursor < len(m.suggestions) {
			m.fields[m.fieldCursor] = m.suggestions[m.suggestCursor]
			m.resetSuggestions()
			return m, nil
		}
		return m.applySearch()
	case "ctrl+y":
		c, err := criteriaFromFields(m.fields)
		if err != nil {
			m.formErr = err.Error()
			return m, nil
		}
		return m, actions.CopyShareLinkCmd(m.shareLink(c), m.copyURLFn)
	case "backspace":
		if field := m.fields[m.fieldCursor]; field != "" {
			runes := []rune(field)
			m.fields[m.fieldCursor] = string(runes[:len(runes)-1])
		}
		m.refreshSuggestions(dim)
		return m, nil
	case " ", "space":
		m.fields[m.fieldCursor] += " "
		m.refreshSuggestions(dim)
		return m, nil
	}

	if len([]rune(key)) == 1 {
		m.fields[m.fieldCursor] += key
		m.refreshSuggestions(dim)
	}
	return m, nil
}

func (m Model) updateDetailKey(key string) (tea.Model, tea.Cmd) {
	if m.composing {
		return m.updateComposeKey(key)
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.viewSeq++
		m.view = viewHome
		m.detailTop = 0
		return m, nil
	case "?":
		m.showHelp = true
		return m, nil
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
		return m, nil
	case "down", "j":
		maxTop := view.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
		if m.detailTop < maxTop {
			m.detailTop++
		}
		return m, nil
	case "[":
		if m.commentCursor > 0 {
			m.commentCursor--
		}
		return m, nil
	case "]":
		if m.commentCursor < len(m.detailComments)-1 {
			m.commentCursor++
		}
		return m, nil
	case "b":
		return m.toggleBookmark()
	case "c":
		if !m.loggedIn() {
			return m.requireLogin("Connectez-vous pour commenter")
		}
		m.composing = true
		m.editingID = 0
		m.draft = ""
		m.composeErr = ""
		return m, nil
	case "e":
		comment, ok := m.activeComment()
		if !ok || !comment.IsOwner {
			return m, nil
		}
		m.composing = true
		m.editingID = comment.ID
		m.draft = comment.Content
		m.composeErr = ""
		return m, nil
	case "x":
		comment, ok := m.activeComment()
		if !ok || !comment.IsOwner {
			return m, nil
		}
		return m, actions.DeleteCommentCmd(m.service, m.viewSeq, comment.ID)
	case "o":
		link, err := platform.ValidateLinkURL(platform.DOIURL(m.detailArticle.DOI))
		if err != nil {
			return m.setError(err.Error())
		}
		return m, actions.OpenDOICmd(link, m.openURLFn, m.copyURLFn)
	case "r":
		return m.openDetail(m.detailArticle)
	}
	return m, nil
}

func (m Model) updateComposeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.composing = false
		m.editingID = 0
		m.draft = ""
		m.composeErr = ""
		return m, nil
	case "enter":
		content := strings.TrimSpace(m.draft)
		if content == "" {
			m.composeErr = "Le commentaire ne peut pas être vide"
			return m, nil
		}
		if m.editingID != 0 {
			return m, actions.EditCommentCmd(m.service, m.viewSeq, m.editingID, content)
		}
		return m, actions.PostCommentCmd(m.service, m.viewSeq, m.detailID, content)
	case "backspace":
		if m.draft != "" {
			runes := []rune(m.draft)
			m.draft = string(runes[:len(runes)-1])
		}
		return m, nil
	case " ", "space":
		m.draft += " "
		return m, nil
	}
	if len([]rune(key)) == 1 {
		m.draft += key
	}
	return m, nil
}

func (m Model) updateLoginKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = m.returnView
		m.loginErr = ""
		return m, nil
	case "tab", "down", "up":
		m.loginField = 1 - m.loginField
		return m, nil
	case "enter":
		if strings.TrimSpace(m.username) == "" || m.password == "" {
			m.loginErr = "Nom d'utilisateur et mot de passe requis"
			return m, nil
		}
		m.loading = true
		m.loginErr = ""
		return m, actions.LoginCmd(m.service, m.viewSeq, strings.TrimSpace(m.username), m.password)
	case "backspace":
		if m.loginField == 0 {
			if m.username != "" {
				runes := []rune(m.username)
				m.username = string(runes[:len(runes)-1])
			}
		} else if m.password != "" {
			runes := []rune(m.password)
			m.password = string(runes[:len(runes)-1])
		}
		return m, nil
	case " ", "space":
		return m, nil
	}
	if len([]rune(key)) == 1 {
		if m.loginField == 0 {
			m.username += key
		} else {
			m.password += key
		}
	}
	return m, nil
}

func (m Model) toggleBookmark() (tea.Model, tea.Cmd) {
	if !m.loggedIn() {
		return m.requireLogin("Connectez-vous pour gérer vos signets")
	}
	if !m.bookmarkKnown {
		return m, actions.BookmarkStatusCmd(m.service, m.viewSeq, m.detailID)
	}
	before := m.bookmark.Bookmarked
	next, ok := m.bookmark.Begin()
	if !ok {
		return m, nil
	}
	m.bookmark = next
	return m, actions.ToggleBookmarkCmd(m.service, m.viewSeq, m.detailID, before)
}

func (m Model) requireLogin(status string) (tea.Model, tea.Cmd) {
	m.returnView = m.view
	m.view = viewLogin
	m.loginErr = ""
	return m.setStatus(status)
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.auth != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.auth.Logout(ctx); err != nil {
			m.err = err
			return m, nil
		}
	}
	return m.setSuccess("Déconnecté")
}

func (m Model) forceLogout() (tea.Model, tea.Cmd) {
	if m.auth != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.auth.Logout(ctx)
	}
	m.returnView = viewHome
	m.viewSeq++
	m.view = viewLogin
	m.loading = false
	return m.setError("Session expirée, reconnectez-vous")
}

func (m Model) openDetail(article api.Article) (tea.Model, tea.Cmd) {
	m.viewSeq++
	m.view = viewDetail
	m.detailID = article.ID
	m.detailArticle = article
	m.detailComments = nil
	m.articleLoaded = false
	m.commentsLoaded = false
	m.detailTop = 0
	m.commentCursor = 0
	m.composing = false
	m.editingID = 0
	m.composeErr = ""
	m.bookmark = state.Bookmark{}
	m.bookmarkKnown = false
	m.loading = true
	m.err = nil

	cmds := []tea.Cmd{
		actions.LoadArticleCmd(m.service, m.viewSeq, article.ID),
		actions.LoadCommentsCmd(m.service, m.viewSeq, article.ID),
	}
	if m.loggedIn() {
		cmds = append(cmds, actions.BookmarkStatusCmd(m.service, m.viewSeq, article.ID))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) applySearch() (tea.Model, tea.Cmd) {
	c, err := criteriaFromFields(m.fields)
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	m.criteria = c
	m.setArticles(m.articles)
	m.view = viewHome
	m.formErr = ""

	var saveCmd tea.Cmd
	if m.saveSearchFn != nil {
		fn := m.saveSearchFn
		encoded := urlstate.Encode(c)
		saveCmd = func() tea.Msg {
			if err := fn(encoded); err != nil {
				return searchSaveErrorMsg{err: err}
			}
			return nil
		}
	}
	model, statusCmd := m.setSuccess("Filtres appliqués")
	return model, tea.Batch(statusCmd, saveCmd)
}

func (m *Model) setArticles(articles []api.Article) {
	m.articles = articles
	m.filtered = filter.Evaluate(articles, m.criteria, m.nowTime())

	m.popular = append([]api.Article(nil), m.filtered...)
	sort.SliceStable(m.popular, func(i, j int) bool {
		return m.popular[i].Views > m.popular[j].Views
	})

	m.recentCar = paginate.New(len(m.filtered), m.pageSize)
	m.popularCar = paginate.New(len(m.popular), m.pageSize)
	m.cursorRecent = state.ClampCursor(m.cursorRecent, len(m.filtered))
	m.cursorPopular = state.ClampCursor(m.cursorPopular, len(m.popular))
	m.recentCar.ScrollTo(m.cursorRecent / m.pageSize)
	m.popularCar.ScrollTo(m.cursorPopular / m.pageSize)
}

func (m *Model) refreshSuggestions(dim filter.Dimension) {
	if dim != filter.DimAuthor {
		return
	}
	m.suggestions = m.authors.Suggest(m.fields[m.fieldCursor])
	m.suggestCursor = -1
}

func (m *Model) resetSuggestions() {
	m.suggestions = nil
	m.suggestCursor = -1
}

func (m *Model) activeCarousel() *paginate.Carousel {
	if m.section == sectionPopular {
		return &m.popularCar
	}
	return &m.recentCar
}

func (m Model) sectionArticles(section int) []api.Article {
	if section == sectionPopular {
		return m.popular
	}
	return m.filtered
}

func (m Model) sectionCursor(section int) int {
	if section == sectionPopular {
		return m.cursorPopular
	}
	return m.cursorRecent
}

func (m *Model) moveCursorBy(delta int) {
	articles := m.sectionArticles(m.section)
	if len(articles) == 0 {
		return
	}
	cursor := m.sectionCursor(m.section) + delta
	cursor = state.ClampCursor(cursor, len(articles))
	if m.section == sectionPopular {
		m.cursorPopular = cursor
	} else {
		m.cursorRecent = cursor
	}
	m.activeCarousel().ScrollTo(cursor / m.pageSize)
}

func (m *Model) snapCursorToPage() {
	start, end := m.activeCarousel().Window()
	cursor := m.sectionCursor(m.section)
	if cursor < start || cursor >= end {
		cursor = start
	}
	if m.section == sectionPopular {
		m.cursorPopular = cursor
	} else {
		m.cursorRecent = cursor
	}
}

func (m Model) activeComment() (api.Comment, bool) {
	if m.commentCursor < 0 || m.commentCursor >= len(m.detailComments) {
		return api.Comment{}, false
	}
	return m.detailComments[m.commentCursor], true
}

func (m Model) loggedIn() bool {
	return m.auth != nil && m.auth.IsLoggedIn()
}

func (m Model) nowTime() time.Time {
	if m.nowFn == nil {
		return time.Now()
	}
	return m.nowFn()
}

func (m Model) shareLink(c filter.Criteria) string {
	base := m.shareBaseURL
	if base == "" {
		base = "http://127.0.0.1:8000"
	}
	encoded := urlstate.Encode(c)
	if encoded == "" {
		return base + "/"
	}
	return base + "/?" + encoded
}

func (m Model) setNotice(n state.Notice) (Model, tea.Cmd) {
	m.notice = n
	m.statusID++
	return m, clearStatusCmd(m.statusID, 4*time.Second)
}

func (m Model) setStatus(status string) (Model, tea.Cmd) {
	return m.setNotice(state.InfoNotice(status))
}

func (m Model) setSuccess(status string) (Model, tea.Cmd) {
	return m.setNotice(state.SuccessNotice(status))
}

func (m Model) setError(status string) (Model, tea.Cmd) {
	return m.setNotice(state.ErrorNotice(status))
}

func (m Model) withNotice(n state.Notice, cmd tea.Cmd) (Model, tea.Cmd) {
	model, statusCmd := m.setNotice(n)
	return model, tea.Batch(statusCmd, cmd)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.th.Title.Render("Revue") + "\n")
	b.WriteString(view.Toolbar(m.viewName(), m.loggedIn()) + "\n\n")

	if m.showHelp {
		b.WriteString(m.helpView())
	} else {
		switch m.view {
		case viewSearch:
			b.WriteString(m.searchView())
		case viewDetail:
			b.WriteString(m.detailView())
		case viewLogin:
			b.WriteString(m.loginView())
		default:
			b.WriteString(m.homeView())
		}
	}

	errText := ""
	if m.err != nil {
		errText = m.err.Error()
	}
	b.WriteString("\n")
	b.WriteString(view.StatusLine(m.loading, m.err != nil, m.notice, errText, m.th))
	b.WriteString("\n")
	b.WriteString(view.Footer(view.FilterSummary(m.criteria), len(m.filtered), len(m.articles), m.th))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewName() string {
	switch m.view {
	case viewSearch:
		return "search"
	case viewDetail:
		return "detail"
	case viewLogin:
		return "login"
	default:
		return "home"
	}
}

func (m Model) homeView() string {
	if m.err != nil && len(m.articles) == 0 {
		return m.th.InputError.Render("Impossible de charger les articles : "+m.err.Error()) +
			"\n\nAppuyez sur r pour réessayer.\n"
	}

	var b strings.Builder
	width := m.contentWidth()

	b.WriteString(m.homeSection("Articles récents", sectionRecent, m.filtered, m.recentCar, m.cursorRecent, width))
	b.WriteString("\n")
	b.WriteString(m.homeSection("Articles populaires", sectionPopular, m.popular, m.popularCar, m.cursorPopular, width))
	return b.String()
}

func (m Model) homeSection(label string, section int, articles []api.Article, car paginate.Carousel, cursor, width int) string {
	header := view.RenderSectionHeader(label, car.Page(), car.PageCount(), width, m.th)
	if section == m.section {
		header = m.th.FilterActive.Render("▸ ") + header
	} else {
		header = "  " + header
	}
	start, end := car.Window()
	activeCursor := -1
	if section == m.section {
		activeCursor = cursor
	}
	body := view.RenderCarousel(articles, start, end, activeCursor, width, m.isBookmarked, m.th)
	return header + "\n" + body
}

// isBookmarked only knows the article currently open in the detail view.
// Home cards fall back to the unmarked style.
func (m Model) isBookmarked(id int64) bool {
	return m.bookmarkKnown && id == m.detailID && m.bookmark.Bookmarked
}

func (m Model) searchView() string {
	var b strings.Builder
	b.WriteString(m.th.Section.Render("Recherche") + "\n\n")

	labels := map[filter.Dimension]string{
		filter.DimQuery:     "Recherche",
		filter.DimAuthor:    "Auteur",
		filter.DimDateRange: "Période (week/month/year)",
		filter.DimVolume:    fmt.Sprintf("Volume (1..%d)", filter.MaxVolume),
		filter.DimType:      "Type (" + strings.Join(filter.ArticleTypes, ", ") + ")",
		filter.DimCategory:  "Catégorie (" + strings.Join(filter.Categories, ", ") + ")",
	}

	for i, dim := range filter.Dimensions {
		marker := "  "
		if i == m.fieldCursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s: %s", marker, labels[dim], m.fields[i])
		if i == m.fieldCursor {
			line += "_"
		}
		b.WriteString(m.th.RenderActiveCard(i == m.fieldCursor, line) + "\n")

		if dim == filter.DimAuthor && i == m.fieldCursor {
			for j, s := range m.suggestions {
				prefix := "      "
				if j == m.suggestCursor {
					prefix = "    > "
				}
				b.WriteString(m.th.MetaValue.Render(prefix+s) + "\n")
			}
		}
	}

	if m.formErr != "" {
		b.WriteString("\n" + m.th.InputError.Render(m.formErr) + "\n")
	}
	return b.String()
}

func (m Model) detailView() string {
	if m.err != nil && !(m.articleLoaded && m.commentsLoaded) {
		if errors.Is(m.err, api.ErrNotFound) {
			return "Article introuvable.\n\nAppuyez sur échap pour revenir.\n"
		}
		return m.th.InputError.Render("Impossible de charger l'article : "+m.err.Error()) +
			"\n\nAppuyez sur r pour réessayer.\n"
	}
	if m.loading && !(m.articleLoaded && m.commentsLoaded) {
		return "Chargement de l'article...\n"
	}

	body := view.RenderDetailLines(m.detailLines(), m.detailTop, m.detailBodyHeight())
	if !m.composing {
		return body
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	label := "Nouveau commentaire"
	if m.editingID != 0 {
		label = "Modifier le commentaire"
	}
	b.WriteString(m.th.Section.Render(label) + " : " + m.draft + "_\n")
	if m.composeErr != "" {
		b.WriteString(m.th.InputError.Render(m.composeErr) + "\n")
	}
	return b.String()
}

func (m Model) detailLines() []string {
	activeID := int64(0)
	if comment, ok := m.activeComment(); ok {
		activeID = comment.ID
	}
	bookmarked := m.bookmarkKnown && m.bookmark.Bookmarked
	return view.DetailLines(m.detailArticle, bookmarked, m.detailComments, activeID, m.contentWidth(), 2, wrapLines)
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(m.th.Section.Render("Connexion") + "\n\n")

	userMarker := "  "
	passMarker := "  "
	if m.loginField == 0 {
		userMarker = "> "
	} else {
		passMarker = "> "
	}
	b.WriteString(fmt.Sprintf("%sNom d'utilisateur : %s\n", userMarker, m.username))
	b.WriteString(fmt.Sprintf("%sMot de passe : %s\n", passMarker, strings.Repeat("*", len([]rune(m.password)))))
	if m.loginErr != "" {
		b.WriteString("\n" + m.th.InputError.Render(m.loginErr) + "\n")
	}
	return b.String()
}

func (m Model) helpView() string {
	lines := []string{
		"Navigation:",
		"  h/l page, left/right article, j/k section, enter détails",
		"Recherche:",
		"  / ouvre le formulaire, tab champ suivant, enter applique, ctrl+r réinitialise",
		"  up/down parcourt les suggestions d'auteur, ctrl+y copie le lien",
		"Article:",
		"  j/k défile, [ ] commentaire, b signet, c commenter, e modifier, x supprimer",
		"  o ouvre le lien DOI, esc retour",
		"Compte:",
		"  L connexion/déconnexion",
	}
	return strings.Join(lines, "\n") + "\n"
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	return width
}

func (m Model) detailBodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	height := m.height - 8
	if height < 5 {
		height = 5
	}
	return height
}

func wrapLines(s string, width int) []string {
	return render.WrapText(s, width)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func validationDetail(err error) string {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Detail
	}
	return err.Error()
}

func fieldsFromCriteria(c filter.Criteria) []string {
	fields := make([]string, len(filter.Dimensions))
	for i, dim := range filter.Dimensions {
		fields[i] = c.Get(dim)
	}
	return fields
}

func criteriaFromFields(fields []string) (filter.Criteria, error) {
	var c filter.Criteria
	for i, dim := range filter.Dimensions {
		if err := c.Set(dim, strings.TrimSpace(fields[i])); err != nil {
			return filter.Criteria{}, err
		}
	}
	return c, nil
}
