package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunelist/internal/formatter"
	"github.com/desertthunder/tunelist/internal/models"
	"github.com/desertthunder/tunelist/internal/tasks"
)

const toastTTL = 4 * time.Second

// Model is the bubbletea program. [State] holds everything the screens render; the
// widgets here only mirror it.
type Model struct {
	ctx      context.Context
	boot     *tasks.Bootstrapper
	ctrl     *Controller
	progress <-chan tasks.ProgressUpdate
	locale   string

	state  State
	update tasks.ProgressUpdate

	width  int
	height int

	playlistList list.Model
	trackList    list.Model
	resultList   list.Model
	cartList     list.Model

	email    textinput.Model
	password textinput.Model
	nickname textinput.Model
	title    textinput.Model
	content  textinput.Model
	query    textinput.Model
	focus    int

	help help.Model
	keys keyMap
}

// ModelOpts configures a [Model].
type ModelOpts struct {
	Bootstrapper *tasks.Bootstrapper
	Controller   *Controller
	// Progress is the channel the bootstrapper's aggregator reports on, if any.
	Progress <-chan tasks.ProgressUpdate
	Locale   string
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	m := &Model{
		ctx:          ctx,
		boot:         opts.Bootstrapper,
		ctrl:         opts.Controller,
		progress:     opts.Progress,
		locale:       opts.Locale,
		state:        Initial(),
		playlistList: newList("Playlists"),
		trackList:    newList("Songs"),
		resultList:   newList("Results"),
		cartList:     newList("Cart"),
		email:        newInput("email", false),
		password:     newInput("password", true),
		nickname:     newInput("nickname", false),
		title:        newInput("title", false),
		content:      newInput("description", false),
		query:        newInput("search songs or artists", false),
		help:         help.New(),
		keys:         newKeyMap(),
	}
	return m
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

// State returns the current view state.
func (m *Model) State() State { return m.state }

// Init starts the session bootstrap.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.bootstrap(), m.waitForProgress())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.playlistList, &m.trackList, &m.resultList, &m.cartList} {
			l.SetSize(max(msg.Width-4, 20), max(msg.Height-10, 5))
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state.Screen {
		case ScreenAuth:
			return m.handleAuthKeys(msg)
		case ScreenMain:
			return m.handleMainKeys(msg)
		default:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
		}
		return m, nil

	case actionMsg:
		return m, m.dispatch(msg.action)

	case Msg:
		switch msg.kind {
		case MsgBootstrapped:
			data := msg.data.(bootstrapResult)
			if data.err != nil {
				return m, m.dispatch(ShowToast{Text: data.err.Error(), Error: true})
			}
			cmd := m.dispatch(BootstrapFinished{Boot: data.boot})
			if m.state.Screen == ScreenAuth {
				return m, tea.Batch(cmd, m.focusAuth(0))
			}
			return m, tea.Batch(cmd, waitForPlaylists(data.boot.Playlists))
		case MsgProgressUpdate:
			m.update = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForProgress()
		case MsgToastExpired:
			if toast, ok := msg.data.(*Toast); ok && toast == m.state.Toast {
				return m, m.dispatch(ClearToast{})
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if l := m.activeList(); l != nil {
		*l, cmd = l.Update(msg)
	}
	return m, cmd
}

// dispatch is the only place [State] is replaced.
func (m *Model) dispatch(a Action) tea.Cmd {
	prev := m.state.Toast
	m.state = Reduce(m.state, a)
	m.sync()

	var cmds []tea.Cmd
	if t := m.state.Toast; t != nil && t != prev {
		cmds = append(cmds, expireToast(t, toastTTL))
	}
	switch a.(type) {
	case LoginSucceeded:
		m.resetInputs()
		cmds = append(cmds, m.run(func(ctx context.Context, s State) Action { return m.ctrl.Reload(ctx, s) }))
	case LoggedOut:
		m.resetInputs()
		cmds = append(cmds, m.focusAuth(0))
	case RegisterSucceeded:
		m.password.Reset()
		m.nickname.Reset()
		cmds = append(cmds, m.focusAuth(0))
	case PlaylistCreated, PlaylistUpdated:
		m.blurAll()
	}
	return tea.Batch(cmds...)
}

// run executes fn off the update loop against a snapshot of the current state.
func (m *Model) run(fn func(context.Context, State) Action) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctx, s := m.ctx, m.state
	return func() tea.Msg { return actionMsg{action: fn(ctx, s)} }
}

func (m *Model) sync() {
	m.playlistList.SetItems(playlistItems(m.state.Playlists, m.locale))
	if p, ok := m.state.DetailPlaylist(); ok {
		m.trackList.Title = p.Title
		m.trackList.SetItems(trackItems(p.Tracks))
	}
	m.resultList.SetItems(trackItems(m.state.Results))
	m.cartList.SetItems(trackItems(m.state.Cart))
}

func (m *Model) bootstrap() tea.Cmd {
	if m.boot == nil {
		return func() tea.Msg {
			return bootstrappedMsg(tasks.Bootstrap{State: tasks.Unauthenticated}, nil)
		}
	}
	return func() tea.Msg {
		boot, err := m.boot.Run(m.ctx)
		return bootstrappedMsg(boot, err)
	}
}

func waitForPlaylists(ch <-chan tasks.Aggregate) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		agg, ok := <-ch
		if !ok {
			return nil
		}
		return actionMsg{action: PlaylistsLoaded{Aggregate: agg}}
	}
}

func (m *Model) waitForProgress() tea.Cmd {
	if m.progress == nil {
		return nil
	}
	ch := m.progress
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) authInputs() []*textinput.Model {
	if m.state.AuthView == AuthRegister {
		return []*textinput.Model{&m.email, &m.password, &m.nickname}
	}
	return []*textinput.Model{&m.email, &m.password}
}

func (m *Model) modalInputs() []*textinput.Model {
	return []*textinput.Model{&m.title, &m.content}
}

func (m *Model) focusInputs(inputs []*textinput.Model, i int) tea.Cmd {
	m.blurAll()
	m.focus = i % len(inputs)
	return inputs[m.focus].Focus()
}

func (m *Model) focusAuth(i int) tea.Cmd { return m.focusInputs(m.authInputs(), i) }

func (m *Model) blurAll() {
	for _, in := range []*textinput.Model{&m.email, &m.password, &m.nickname, &m.title, &m.content, &m.query} {
		in.Blur()
	}
}

func (m *Model) resetInputs() {
	for _, in := range []*textinput.Model{&m.email, &m.password, &m.nickname, &m.title, &m.content, &m.query} {
		in.Reset()
	}
	m.blurAll()
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := m.authInputs()
	switch {
	case key.Matches(msg, m.keys.tab):
		step := 1
		if msg.String() == "shift+tab" {
			step = len(inputs) - 1
		}
		return m, m.focusAuth(m.focus + step)
	case key.Matches(msg, m.keys.register):
		next := AuthRegister
		if m.state.AuthView == AuthRegister {
			next = AuthLogin
		}
		cmd := m.dispatch(SwitchAuthView{View: next})
		return m, tea.Batch(cmd, m.focusAuth(0))
	case key.Matches(msg, m.keys.enter):
		email, password, nickname := m.email.Value(), m.password.Value(), m.nickname.Value()
		if m.state.AuthView == AuthRegister {
			return m, m.run(func(ctx context.Context, _ State) Action {
				return m.ctrl.Register(ctx, email, password, nickname)
			})
		}
		return m, m.run(func(ctx context.Context, _ State) Action {
			return m.ctrl.Login(ctx, email, password)
		})
	case key.Matches(msg, m.keys.back):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	in := inputs[m.focus%len(inputs)]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := m.modalInputs()
	switch {
	case key.Matches(msg, m.keys.back):
		m.blurAll()
		return m, m.dispatch(CloseModal{})
	case key.Matches(msg, m.keys.tab):
		return m, m.focusInputs(inputs, m.focus+1)
	case key.Matches(msg, m.keys.enter):
		title, content := m.title.Value(), m.content.Value()
		if m.state.Modal == ModalEdit {
			id := m.state.EditID
			return m, m.run(func(ctx context.Context, _ State) Action {
				return m.ctrl.UpdatePlaylist(ctx, id, title, content)
			})
		}
		return m, m.run(func(ctx context.Context, _ State) Action {
			return m.ctrl.CreatePlaylist(ctx, title, content)
		})
	}

	var cmd tea.Cmd
	in := inputs[m.focus%len(inputs)]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.blurAll()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		q := strings.TrimSpace(m.query.Value())
		m.blurAll()
		cmd := m.dispatch(SearchStarted{Query: q})
		return m, tea.Batch(cmd, m.run(func(ctx context.Context, _ State) Action {
			return m.ctrl.Search(ctx, q)
		}))
	}
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	return m, cmd
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Modal != ModalNone {
		return m.handleModalKeys(msg)
	}
	if m.query.Focused() {
		return m.handleSearchInput(msg)
	}
	if l := m.activeList(); l != nil && l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		*l, cmd = l.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.library):
		return m, m.dispatch(SwitchView{View: ViewLibrary})
	case key.Matches(msg, m.keys.search):
		cmd := m.dispatch(SwitchView{View: ViewSearch})
		return m, tea.Batch(cmd, m.query.Focus())
	case key.Matches(msg, m.keys.cart):
		return m, m.dispatch(SwitchView{View: ViewCart})
	case key.Matches(msg, m.keys.logout):
		return m, m.run(func(ctx context.Context, _ State) Action { return m.ctrl.Logout(ctx) })
	case key.Matches(msg, m.keys.reload):
		cmd := m.dispatch(ReloadStarted{})
		return m, tea.Batch(cmd, m.run(func(ctx context.Context, s State) Action { return m.ctrl.Reload(ctx, s) }))
	}

	switch m.state.View {
	case ViewLibrary:
		if m.state.Detail != 0 {
			return m.handleDetailKeys(msg)
		}
		return m.handleLibraryKeys(msg)
	case ViewSearch:
		if key.Matches(msg, m.keys.add) {
			if t, ok := selectedTrack(m.resultList); ok {
				return m, m.dispatch(AddToCart{Track: t})
			}
			return m, nil
		}
		if msg.String() == "t" {
			q := m.state.Query
			return m, m.run(func(ctx context.Context, _ State) Action { return m.ctrl.Top50(ctx, q) })
		}
	case ViewCart:
		return m.handleCartKeys(msg)
	}

	var cmd tea.Cmd
	if l := m.activeList(); l != nil {
		*l, cmd = l.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if p, ok := selectedPlaylist(m.playlistList); ok {
			cmd := m.dispatch(OpenDetail{ID: p.ID})
			m.trackList.ResetSelected()
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.create):
		m.title.Reset()
		m.content.Reset()
		cmd := m.dispatch(OpenCreate{})
		return m, tea.Batch(cmd, m.focusInputs(m.modalInputs(), 0))
	case key.Matches(msg, m.keys.edit):
		if p, ok := selectedPlaylist(m.playlistList); ok {
			return m, m.openEdit(p)
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if p, ok := selectedPlaylist(m.playlistList); ok {
			id := p.ID
			return m, m.run(func(ctx context.Context, _ State) Action { return m.ctrl.DeletePlaylist(ctx, id) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) openEdit(p models.Playlist) tea.Cmd {
	m.title.SetValue(p.Title)
	m.content.SetValue(p.Description)
	cmd := m.dispatch(OpenEdit{ID: p.ID})
	return tea.Batch(cmd, m.focusInputs(m.modalInputs(), 0))
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p, _ := m.state.DetailPlaylist()
	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.dispatch(CloseDetail{})
	case key.Matches(msg, m.keys.edit):
		return m, m.openEdit(p)
	case key.Matches(msg, m.keys.add):
		if t, ok := selectedTrack(m.trackList); ok {
			return m, m.dispatch(AddToCart{Track: t})
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if t, ok := selectedTrack(m.trackList); ok {
			id := p.ID
			return m, m.run(func(ctx context.Context, _ State) Action { return m.ctrl.RemoveTrack(ctx, id, t) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

// handleCartKeys adds the highlighted cart song to the open playlist, or to the one
// highlighted in the library.
func (m *Model) handleCartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		t, ok := selectedTrack(m.cartList)
		target, found := m.targetPlaylist()
		if !ok || !found {
			return m, nil
		}
		id := target.ID
		return m, m.run(func(ctx context.Context, _ State) Action { return m.ctrl.AddTrack(ctx, id, t) })
	case key.Matches(msg, m.keys.remove):
		if t, ok := selectedTrack(m.cartList); ok && t.ID != nil {
			return m, m.dispatch(RemoveFromCart{MusicID: *t.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.clear):
		return m, m.dispatch(ClearCart{})
	}

	var cmd tea.Cmd
	m.cartList, cmd = m.cartList.Update(msg)
	return m, cmd
}

func (m *Model) targetPlaylist() (models.Playlist, bool) {
	if p, ok := m.state.DetailPlaylist(); ok {
		return p, true
	}
	return selectedPlaylist(m.playlistList)
}

func (m *Model) activeList() *list.Model {
	if m.state.Screen != ScreenMain {
		return nil
	}
	switch m.state.View {
	case ViewSearch:
		return &m.resultList
	case ViewCart:
		return &m.cartList
	default:
		if m.state.Detail != 0 {
			return &m.trackList
		}
		return &m.playlistList
	}
}

func selectedPlaylist(l list.Model) (models.Playlist, bool) {
	if item, ok := l.SelectedItem().(playlistItem); ok {
		return item.playlist, true
	}
	return models.Playlist{}, false
}

func selectedTrack(l list.Model) (models.Track, bool) {
	if item, ok := l.SelectedItem().(trackItem); ok {
		return item.track, true
	}
	return models.Track{}, false
}

// View renders the UI based on the current state.
func (m *Model) View() string {
	var body string
	switch m.state.Screen {
	case ScreenChecking:
		body = m.renderChecking()
	case ScreenAuth:
		body = m.renderAuth()
	default:
		body = m.renderMain()
	}
	return strings.Join([]string{body, m.renderToast()}, "\n")
}

func (m *Model) renderToast() string {
	t := m.state.Toast
	if t == nil {
		return ""
	}
	if t.Error {
		return styles.err.Render(t.Text)
	}
	return styles.ok.Render(t.Text)
}

func (m *Model) renderChecking() string {
	title := styles.title.Render("tunelist")
	status := "Checking session..."
	if m.update.Phase == tasks.VerifySession && m.update.Message != "" {
		status = m.update.Message
	}
	return fmt.Sprintf("%s\n%s\n\n%s", title, status, m.help.ShortHelpView([]key.Binding{m.keys.quit}))
}

func (m *Model) renderAuth() string {
	heading := "Sign in"
	switch m.state.AuthView {
	case AuthRegister:
		heading = "Create account"
	}
	fields := []string{m.email.View(), m.password.View()}
	if m.state.AuthView == AuthRegister {
		fields = append(fields, m.nickname.View())
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.tab, m.keys.register, m.keys.back})
	return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render(heading), strings.Join(fields, "\n"), helpView)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, 3)
	for _, v := range []View{ViewLibrary, ViewSearch, ViewCart} {
		label := v.String()
		if v == ViewCart && len(m.state.Cart) > 0 {
			label = fmt.Sprintf("%s (%d)", label, len(m.state.Cart))
		}
		if v == m.state.View {
			tabs = append(tabs, styles.tab.Render(label))
		} else {
			tabs = append(tabs, styles.help.Render(label))
		}
	}
	user := ""
	if m.state.Session != nil {
		user = styles.help.Render("  " + m.state.Session.Identity.DisplayName)
	}
	return strings.Join(tabs, "  ") + user
}

func (m *Model) renderMain() string {
	var body string
	var keys []key.Binding
	switch {
	case m.state.Modal != ModalNone:
		body = m.renderModal()
		keys = []key.Binding{m.keys.enter, m.keys.tab, m.keys.back}
	case m.state.View == ViewSearch:
		body = fmt.Sprintf("%s\n\n%s", m.query.View(), m.renderResults())
		keys = []key.Binding{m.keys.search, m.keys.add, m.keys.library, m.keys.cart, m.keys.quit}
	case m.state.View == ViewCart:
		body = m.cartList.View()
		keys = []key.Binding{m.keys.enter, m.keys.remove, m.keys.clear, m.keys.library, m.keys.quit}
	case m.state.Detail != 0:
		body = m.renderDetail()
		keys = []key.Binding{m.keys.back, m.keys.edit, m.keys.add, m.keys.remove, m.keys.quit}
	default:
		body = m.renderLibrary()
		keys = []key.Binding{m.keys.enter, m.keys.create, m.keys.edit, m.keys.remove, m.keys.reload, m.keys.logout, m.keys.quit}
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", m.renderTabs(), body, m.help.ShortHelpView(keys))
}

func (m *Model) renderLibrary() string {
	if m.state.Loading {
		status := "Loading playlists..."
		if m.update.Phase == tasks.FetchTracks && m.update.Total > 0 {
			status = fmt.Sprintf("Loading playlists (%d/%d)", m.update.Step, m.update.Total)
		}
		return styles.warn.Render(status)
	}
	if len(m.state.Playlists) == 0 {
		return styles.help.Render("No playlists yet. Press n to create one.")
	}
	return m.playlistList.View()
}

func (m *Model) renderDetail() string {
	p, ok := m.state.DetailPlaylist()
	if !ok {
		return ""
	}
	meta := fmt.Sprintf("%d songs • %d min", len(p.Tracks), formatter.TotalMinutes(p.Tracks))
	if date := formatter.FormatDate(p.CreatedAt, m.locale, false); date != "" {
		meta = fmt.Sprintf("%s • %s", meta, date)
	}
	header := fmt.Sprintf("%s\n%s", styles.title.Render(p.Title), meta)
	if p.Description != "" {
		header = fmt.Sprintf("%s\n%s", header, styles.help.Render(p.Description))
	}
	cover := renderCover(formatter.CoverImages(p.Tracks))
	return fmt.Sprintf("%s\n%s\n\n%s", cover, header, m.trackList.View())
}

func (m *Model) renderResults() string {
	if m.state.Searching {
		return styles.warn.Render(fmt.Sprintf("Searching for %q...", m.state.Query))
	}
	if len(m.state.Results) == 0 {
		return styles.help.Render("No results.")
	}
	return m.resultList.View()
}

func (m *Model) renderModal() string {
	heading := "New playlist"
	if m.state.Modal == ModalEdit {
		heading = "Edit playlist"
	}
	form := fmt.Sprintf("%s\n%s\n%s", styles.title.Render(heading), m.title.View(), m.content.View())
	return styles.pane.Render(form)
}
