package ui

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cpdeck/internal/catalogue"
	"cpdeck/internal/config"
	"cpdeck/internal/domain"
	"cpdeck/internal/eventbus"
	"cpdeck/internal/lang"
	"cpdeck/internal/outline"
	"cpdeck/internal/ui/views"
	"cpdeck/internal/workspace"
)

type levelKind int

const (
	levelSources levelKind = iota
	levelCatalogue
)

// level is one entry of the navigation stack: the source picker at the
// bottom, one catalogue view per opened source above it.
type level struct {
	kind   levelKind
	source string
	title  string
	nav    *outline.Navigator
	list   *views.List
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusLoading
	statusError
	statusSuccess
)

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	cfg     *config.Config
	cfgSvc  config.ConfigService
	sources map[string]catalogue.Source
	langs   *lang.Registry
	ws      *workspace.Workspace
	styles  *views.Styles

	width  int
	height int

	levels       []*level
	cachedLevels map[string]*level // popped catalogue views, keyed by source

	count       int
	pendingG    bool
	commandMode bool
	input       textinput.Model

	statusMsg     string
	statusKind    statusKind
	loadingSource string

	pagerOps *PagerOps
	runOps   *RunOps
	program  *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, cfgSvc config.ConfigService,
	sources map[string]catalogue.Source, langs *lang.Registry, ws *workspace.Workspace) *Model {

	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 64

	m := &Model{
		bus:          bus,
		cfg:          cfg,
		cfgSvc:       cfgSvc,
		sources:      sources,
		langs:        langs,
		ws:           ws,
		styles:       views.NewStyles(),
		cachedLevels: make(map[string]*level),
		input:        ti,
		pagerOps:     NewPagerOps(),
		runOps:       NewRunOps(),
	}

	m.levels = []*level{m.sourcesLevel()}
	return m
}

func (m *Model) sourcesLevel() *level {
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]outline.Item, 0, len(names))
	for _, name := range names {
		items = append(items, outline.Item{ID: name})
	}

	o := outline.New([]outline.Group{{ID: "Sources", Items: items, Expanded: true}})
	return &level{
		kind:  levelSources,
		title: "cpdeck",
		nav:   outline.NewNavigator(o, 20),
		list:  views.NewList(m.styles, 80, m.cfg.UISettings.ShowSolvedCounts),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pagerOps.SetProgram(p)
	m.runOps.SetProgram(p)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) top() *level {
	return m.levels[len(m.levels)-1]
}

func (m *Model) listHeight() int {
	h := m.height - 2 // status bar and command line
	if h < 1 {
		h = 1
	}
	return h
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, lvl := range m.levels {
			lvl.nav.Resize(m.listHeight())
			lvl.list.SetWidth(m.width)
		}
		top := m.top()
		top.list.Sync(top.nav, outline.Redraw{Full: true})
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case editorDoneMsg:
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Editor failed: %v", msg.err))
		} else {
			m.setStatus(statusInfo, "Edited "+msg.path)
		}
		return m, nil

	case runDoneMsg:
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Run failed: %v", msg.err))
		} else {
			m.setStatus(statusInfo, "Ran "+msg.problem)
		}
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.setStatus(statusError, fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if m.commandMode {
			return m.handleCommandKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.statusKind = kind
	m.statusMsg = msg
}

func (m *Model) clearStatus() {
	m.statusMsg = ""
	m.statusKind = statusInfo
}

// handleEvent folds background outcomes into the view.
func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch event := e.(type) {
	case eventbus.CatalogueLoadedEvent:
		if m.loadingSource != event.Catalogue.Source {
			return
		}
		m.loadingSource = ""
		m.pushCatalogue(event.Catalogue)
		m.setStatus(statusSuccess, fmt.Sprintf("%s: %d problems in %d contests",
			event.Catalogue.Source, event.Catalogue.ProblemCount(), len(event.Catalogue.Contests)))

	case eventbus.ErrorEvent:
		m.loadingSource = ""
		msg := event.Message
		if event.Err != nil {
			msg = fmt.Sprintf("%s: %v", event.Message, event.Err)
		}
		m.setStatus(statusError, msg)

	case eventbus.LogInCompletedEvent:
		if event.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("Log in to %s failed: %v", event.Source, event.Err))
		} else {
			m.setStatus(statusSuccess, "Logged in to "+event.Source)
		}

	case eventbus.SubmitCompletedEvent:
		if event.Err != nil {
			m.setStatus(statusError, fmt.Sprintf("Submit %s failed: %v", event.Problem.Key(), event.Err))
		} else {
			m.setStatus(statusSuccess, "Submitted "+event.Problem.Key())
		}
	}
}

// outlineFromCatalogue flattens a catalogue into groups: one collapsed
// group per contest, one item per problem.
func outlineFromCatalogue(cat domain.Catalogue) *outline.Outline {
	groups := make([]outline.Group, 0, len(cat.Contests))
	for _, c := range cat.Contests {
		items := make([]outline.Item, 0, len(c.Problems))
		for _, p := range c.Problems {
			items = append(items, outline.Item{ID: p.Key(), Fields: p})
		}
		groups = append(groups, outline.Group{ID: c.Name, Items: items})
	}
	return outline.New(groups)
}

func (m *Model) pushCatalogue(cat domain.Catalogue) {
	lvl := &level{
		kind:   levelCatalogue,
		source: cat.Source,
		title:  cat.Source,
		nav:    outline.NewNavigator(outlineFromCatalogue(cat), m.listHeight()),
		list:   views.NewList(m.styles, m.width, m.cfg.UISettings.ShowSolvedCounts),
	}
	m.pushLevel(lvl)
}

func (m *Model) pushLevel(lvl *level) {
	lvl.nav.Resize(m.listHeight())
	lvl.list.SetWidth(m.width)
	lvl.list.Sync(lvl.nav, outline.Redraw{Full: true})
	m.levels = append(m.levels, lvl)
}

// popLevel returns to the previous level, keeping the popped catalogue
// view around so reopening the source restores the exact selection.
func (m *Model) popLevel() {
	if len(m.levels) <= 1 {
		return
	}
	lvl := m.top()
	if lvl.kind == levelCatalogue {
		m.cachedLevels[lvl.source] = lvl
	}
	m.levels = m.levels[:len(m.levels)-1]

	top := m.top()
	rd := top.nav.Resize(m.listHeight())
	top.list.SetWidth(m.width)
	top.list.Sync(top.nav, rd)
	m.clearStatus()
}

func (m *Model) openSource(name string) {
	if lvl, ok := m.cachedLevels[name]; ok {
		delete(m.cachedLevels, name)
		m.pushLevel(lvl)
		m.clearStatus()
		return
	}
	if m.loadingSource != "" {
		return
	}
	m.loadingSource = name
	m.setStatus(statusLoading, "Loading "+name+"…")
	m.bus.Publish(eventbus.CatalogueRequestedEvent{Source: name})
}

// currentProblem returns the problem under the selection, if any.
func (m *Model) currentProblem() (string, domain.Problem, bool) {
	lvl := m.top()
	if lvl.kind != levelCatalogue || lvl.nav.Outline().Len() == 0 {
		return "", domain.Problem{}, false
	}
	pos := lvl.nav.Selected()
	if pos.IsHeader() {
		return "", domain.Problem{}, false
	}
	it := lvl.nav.Outline().Group(pos.Group).Items[pos.Item]
	p, ok := it.Fields.(domain.Problem)
	return lvl.source, p, ok
}

// currentSource names the source the selection refers to: the open
// catalogue, or the highlighted entry of the source picker.
func (m *Model) currentSource() (string, bool) {
	lvl := m.top()
	if lvl.kind == levelCatalogue {
		return lvl.source, true
	}
	if lvl.nav.Outline().Len() == 0 {
		return "", false
	}
	pos := lvl.nav.Selected()
	if pos.IsHeader() {
		return "", false
	}
	return lvl.nav.Outline().Group(pos.Group).Items[pos.Item].ID, true
}

func (m *Model) solutionPath(source string, p domain.Problem) (string, error) {
	l, ok := m.langs.Lookup(m.cfg.Language)
	if !ok {
		return "", fmt.Errorf("unknown language %q", m.cfg.Language)
	}
	return m.ws.SolutionPath(source, p, l.Extension)
}

func (m *Model) quit() tea.Cmd {
	if m.cfg.UISettings.AutosaveOnExit && m.cfgSvc != nil {
		if err := m.cfgSvc.Save(m.cfg); err != nil {
			log.Printf("Saving config on exit failed: %v", err)
		}
	}
	return tea.Quit
}

func (m *Model) move(st outline.Step) {
	lvl := m.top()
	rd := lvl.nav.MoveBy(st)
	lvl.list.Sync(lvl.nav, rd)
	m.count = 0
	m.pendingG = false
}

func (m *Model) scroll(delta int) {
	lvl := m.top()
	rd := lvl.nav.ScrollBy(delta)
	lvl.list.Sync(lvl.nav, rd)
	m.count = 0
	m.pendingG = false
}

func (m *Model) toggle(group int) {
	lvl := m.top()
	rd := lvl.nav.ToggleGroup(group)
	lvl.list.Sync(lvl.nav, rd)
	m.count = 0
	m.pendingG = false
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	lvl := m.top()
	empty := lvl.nav.Outline().Len() == 0

	// Digits accumulate a count prefix. A leading 0 is not a count.
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		if key != "0" || m.count > 0 {
			m.count = m.count*10 + int(key[0]-'0')
			m.pendingG = false
			return m, nil
		}
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, m.quit()

	case "q":
		if len(m.levels) > 1 {
			m.popLevel()
			return m, nil
		}
		return m, m.quit()

	case "esc", "backspace":
		if m.count > 0 || m.pendingG {
			m.count = 0
			m.pendingG = false
			return m, nil
		}
		m.popLevel()
		return m, nil

	case "j", "down":
		m.move(outline.By(stepCount(m.count)))

	case "k", "up":
		m.move(outline.By(-stepCount(m.count)))

	case "pgdown", "ctrl+f":
		m.move(outline.By(pageCount(m.count)))

	case "pgup", "ctrl+b":
		m.move(outline.By(-pageCount(m.count)))

	case "ctrl+e":
		m.scroll(stepCount(m.count))

	case "ctrl+y":
		m.scroll(-stepCount(m.count))

	case "g":
		if m.pendingG {
			m.move(outline.ToStart())
		} else {
			m.pendingG = true
		}

	case "G", "end":
		m.move(outline.ToEnd())

	case "home":
		m.move(outline.ToStart())

	case " ", "z":
		if !empty {
			m.toggle(lvl.nav.Selected().Group)
		}

	case "h", "left":
		if empty {
			break
		}
		pos := lvl.nav.Selected()
		if !pos.IsHeader() || lvl.nav.Outline().Group(pos.Group).Expanded {
			m.toggle(pos.Group)
		}

	case "l", "right":
		if empty {
			break
		}
		pos := lvl.nav.Selected()
		if pos.IsHeader() {
			if !lvl.nav.Outline().Group(pos.Group).Expanded {
				m.toggle(pos.Group)
			}
		} else if lvl.kind == levelSources {
			return m, m.activate()
		}

	case "enter":
		if empty {
			break
		}
		return m, m.activate()

	case ":":
		m.commandMode = true
		m.input.SetValue("")
		m.count = 0
		m.pendingG = false
		return m, m.input.Focus()

	case "?":
		return m, func() tea.Msg {
			return pagerDoneMsg{err: m.pagerOps.Show(helpContent())}
		}

	default:
		m.pendingG = false
	}

	return m, nil
}

// activate handles enter: toggles a header, opens a source, or edits the
// selected problem's solution.
func (m *Model) activate() tea.Cmd {
	lvl := m.top()
	pos := lvl.nav.Selected()
	m.count = 0
	m.pendingG = false

	if pos.IsHeader() {
		m.toggle(pos.Group)
		return nil
	}

	switch lvl.kind {
	case levelSources:
		name := lvl.nav.Outline().Group(pos.Group).Items[pos.Item].ID
		m.openSource(name)
		return nil
	case levelCatalogue:
		return m.editCurrent()
	}
	return nil
}

func (m *Model) editCurrent() tea.Cmd {
	source, p, ok := m.currentProblem()
	if !ok {
		m.setStatus(statusError, "No problem selected")
		return nil
	}
	path, err := m.solutionPath(source, p)
	if err != nil {
		m.setStatus(statusError, err.Error())
		return nil
	}
	return openEditor(path)
}

func (m *Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.commandMode = false
		m.input.Blur()
		return m, m.execute(line)
	case "esc", "ctrl+c":
		m.commandMode = false
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var commandNames = []string{"edit", "login", "quit", "submit", "test"}

// resolveCommand expands a possibly abbreviated command name. A unique
// prefix is enough, an exact match always wins.
func resolveCommand(word string) (string, error) {
	var matches []string
	for _, name := range commandNames {
		if name == word {
			return name, nil
		}
		if strings.HasPrefix(name, word) {
			matches = append(matches, name)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("unknown command :%s", word)
	default:
		return "", fmt.Errorf("ambiguous command :%s (%s)", word, strings.Join(matches, ", "))
	}
}

func (m *Model) execute(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, err := resolveCommand(fields[0])
	if err != nil {
		m.setStatus(statusError, err.Error())
		return nil
	}

	switch name {
	case "quit":
		return m.quit()

	case "edit":
		return m.editCurrent()

	case "login":
		source, ok := m.currentSource()
		if !ok {
			m.setStatus(statusError, "No source selected")
			return nil
		}
		m.setStatus(statusLoading, "Logging in to "+source+"…")
		m.bus.Publish(eventbus.LogInRequestedEvent{Source: source})
		return nil

	case "submit":
		source, p, ok := m.currentProblem()
		if !ok {
			m.setStatus(statusError, "No problem selected")
			return nil
		}
		path, err := m.solutionPath(source, p)
		if err != nil {
			m.setStatus(statusError, err.Error())
			return nil
		}
		m.setStatus(statusLoading, "Submitting "+p.Key()+"…")
		m.bus.Publish(eventbus.SubmitRequestedEvent{Source: source, Problem: p, SolutionPath: path})
		return nil

	case "test":
		source, p, ok := m.currentProblem()
		if !ok {
			m.setStatus(statusError, "No problem selected")
			return nil
		}
		l, lok := m.langs.Lookup(m.cfg.Language)
		if !lok {
			m.setStatus(statusError, fmt.Sprintf("unknown language %q", m.cfg.Language))
			return nil
		}
		path, err := m.solutionPath(source, p)
		if err != nil {
			m.setStatus(statusError, err.Error())
			return nil
		}
		key := p.Key()
		return func() tea.Msg {
			return runDoneMsg{problem: key, err: m.runOps.RunSolution(l, path)}
		}
	}
	return nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	lvl := m.top()

	var b strings.Builder
	b.WriteString(lvl.list.View())
	for i := lvl.list.Len(); i < m.listHeight(); i++ {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine(lvl))
	b.WriteString("\n")
	b.WriteString(m.commandLine())
	return b.String()
}

func (m *Model) statusLine(lvl *level) string {
	if m.statusMsg != "" {
		switch m.statusKind {
		case statusError:
			return m.styles.StatusError.Render(m.statusMsg)
		case statusLoading:
			return m.styles.StatusLoading.Render(m.statusMsg)
		case statusSuccess:
			return m.styles.StatusSuccess.Render(m.statusMsg)
		}
		return m.styles.Status.Render(m.statusMsg)
	}

	crumbs := make([]string, 0, len(m.levels))
	for _, l := range m.levels {
		crumbs = append(crumbs, l.title)
	}
	left := m.styles.Title.Render(strings.Join(crumbs, " > "))

	right := ""
	if lvl.nav.Outline().Len() > 0 {
		right = fmt.Sprintf("%d/%d", lvl.nav.Outline().SlotIndex(lvl.nav.Selected())+1, lvl.nav.Outline().SlotCount())
	}
	if source, p, ok := m.currentProblem(); ok {
		if src, found := m.sources[source]; found {
			right = right + "  " + src.ProblemURL(p)
		}
	}
	return left + "  " + m.styles.Status.Render(right+"  ["+m.cfg.Language+"]")
}

func (m *Model) commandLine() string {
	if m.commandMode {
		return m.input.View()
	}

	pending := ""
	if m.count > 0 {
		pending = fmt.Sprintf("%d", m.count)
	}
	if m.pendingG {
		pending += "g"
	}
	hint := m.styles.Help.Render("j/k move  enter open  space fold  : command  ? help  q back")
	if pending != "" {
		return m.styles.Count.Render(pending) + "  " + hint
	}
	return hint
}
