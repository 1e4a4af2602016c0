// Package ui provides the Bubble Tea terminal interface for portal.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/calebwray/portal/internal/catalog"
	"github.com/calebwray/portal/internal/favorites"
	"github.com/calebwray/portal/internal/prefs"
	"github.com/calebwray/portal/internal/query"
	"github.com/calebwray/portal/internal/session"
	"github.com/calebwray/portal/internal/viewstate"
)

// View represents the current active view.
type View int

const (
	ViewLogin View = iota
	ViewCharacters
	ViewDetail
	ViewCompare
	ViewFavorites
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    catalog.Browser
	Cache     *query.Cache
	Session   *session.Store
	Favorites *favorites.Store
	Logger    *log.Logger
	ThemeName string
	PrefsPath string
	// InitialState restores a previous session's listing state, encoded
	// as a query string.
	InitialState string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    catalog.Browser
	cache     *query.Cache
	session   *session.Store
	favorites *favorites.Store
	logger    *log.Logger
	prefsPath string

	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Login form
	loginInputs [2]textinput.Model
	loginFocus  int
	fieldErrs   [2]string
	authErr     string
	loggingIn   bool
	spin        spinner.Model

	// Character list
	params      viewstate.Params
	searchInput textinput.Model
	searchFocus bool
	debounce    *viewstate.Debouncer
	pager       paginator.Model
	list        query.Result
	listKey     query.Key
	prevList    query.Result // previous key's page, shown dimmed while the new key loads
	selectedRow int

	// Detail view
	detailTarget string
	detail       query.Result
	location     query.Result
	episodes     query.Result

	// Compare view
	comparePick int // id marked in the list as the left side; 0 = none
	compareIDs  [2]int
	compareRes  [2]query.Result

	// Favorites view
	favIDs []int
	favRes query.Result
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Placeholder = "search by name"
	search.Prompt = "/ "
	search.CharLimit = 64

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	pager := paginator.New()
	pager.Type = paginator.Arabic

	params := viewstate.ParseState(opts.InitialState)
	search.SetValue(params.Search)

	view := ViewLogin
	if opts.Session != nil && opts.Session.IsAuthenticated() {
		view = ViewCharacters
	}

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		cache:       opts.Cache,
		session:     opts.Session,
		favorites:   opts.Favorites,
		logger:      logger,
		prefsPath:   prefsPath,
		theme:       theme,
		styles:      theme.Styles(),
		currentView: view,
		loginInputs: [2]textinput.Model{username, password},
		spin:        spin,
		params:      params,
		searchInput: search,
		debounce:    viewstate.NewDebouncer(viewstate.DebounceWindow),
		pager:       pager,
		listKey:     listKey(params),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		textinput.Blink,
	}
	if m.currentView == ViewCharacters {
		cmds = append(cmds, m.fetchListCmd(m.params, false))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.loggingIn || m.anyFetching() {
			return m, cmd
		}
		return m, nil

	case debounceMsg:
		return m.handleDebounce(msg)

	case listResultMsg:
		return m.handleListResult(msg)

	case detailResultMsg:
		return m.handleDetailResult(msg)

	case locationResultMsg:
		if msg.key == locationKey(m.detailLocationURL()) {
			m.location = msg.res
		}
		return m, nil

	case episodesResultMsg:
		if msg.key == episodesKey(m.detailEpisodeURLs()) {
			m.episodes = msg.res
		}
		return m, nil

	case compareResultMsg:
		return m.handleCompareResult(msg)

	case favoritesResultMsg:
		if msg.key == favoritesKey(m.favIDs) {
			m.favRes = msg.res
		}
		return m, nil

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case logoutMsg:
		if msg.err != nil {
			m.logger.Error("logout failed", "error", msg.err)
		}
		m.currentView = ViewLogin
		m.loginFocus = 0
		m.loginInputs[0].Focus()
		m.loginInputs[1].Blur()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewDetail:
		return m.renderDetail()
	case ViewCompare:
		return m.renderCompare()
	case ViewFavorites:
		return m.renderFavorites()
	default:
		return m.renderList()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	// Text inputs swallow everything except their control keys.
	if m.currentView == ViewLogin {
		return m.handleLoginKey(msg)
	}
	if m.searchFocus {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
		return m, nil

	case "L":
		return m, m.logoutCmd()
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewCompare:
		return m.handleCompareKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) anyFetching() bool {
	for _, res := range []query.Result{m.list, m.detail, m.location, m.episodes, m.compareRes[0], m.compareRes[1], m.favRes} {
		if res.Status == query.StatusFetching {
			return true
		}
	}
	return false
}

// currentCharacters returns the sorted rows for the active list result,
// falling back to the previous key's data while the new key is loading.
func (m Model) currentCharacters() ([]catalog.Character, bool) {
	res := m.list
	stale := false
	if res.Status != query.StatusSuccess && m.prevList.Status == query.StatusSuccess {
		res = m.prevList
		stale = true
	}
	page, ok := res.Data.(catalog.CharacterPage)
	if !ok {
		return nil, stale
	}
	return viewstate.SortCharacters(page.Results, m.params), stale
}

func (m Model) detailLocationURL() string {
	ch, ok := m.detail.Data.(catalog.Character)
	if !ok {
		return ""
	}
	return ch.Location.URL
}

func (m Model) detailEpisodeURLs() []string {
	ch, ok := m.detail.Data.(catalog.Character)
	if !ok {
		return nil
	}
	return ch.Episodes
}

// Run boots the UI and blocks until exit. A panic anywhere in the update
// or render path is logged before the program dies so the terminal is
// not left with a raw stack as the only trace.
func Run(opts Options) (err error) {
	logger := opts.Logger
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error("panic in UI", "panic", r)
			}
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
