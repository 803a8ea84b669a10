package ui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fragmede/hnpeek/internal/api"
	"github.com/fragmede/hnpeek/internal/config"
	"github.com/fragmede/hnpeek/internal/preview"
	"github.com/fragmede/hnpeek/internal/ui/keymap"
	"github.com/fragmede/hnpeek/internal/ui/messages"
	"github.com/fragmede/hnpeek/internal/ui/statusbar"
	"github.com/fragmede/hnpeek/internal/ui/storylist"
	"github.com/fragmede/hnpeek/internal/ui/storyview"
)

// App is the root Bubble Tea model: story list on the left half, preview on
// the right half, status bar below.
type App struct {
	// Child models
	storyList storylist.Model
	storyView storyview.Model
	statusBar statusbar.Model

	// Shared state
	ctx    context.Context
	cancel context.CancelFunc
	cfg    config.Config
	remote storylist.Remote
	store  *preview.Store
	loc    *time.Location
	log    zerolog.Logger
	open   func(url string) error

	// Dimensions
	width  int
	height int
}

// NewApp creates the root application model. Fetches started by the app
// are cancelled only when the app quits.
func NewApp(ctx context.Context, cfg config.Config, remote storylist.Remote, log zerolog.Logger) *App {
	ctx, cancel := context.WithCancel(ctx)
	store := preview.NewStore()
	loc := cfg.Location()
	store.Watch(func(st preview.State) {
		ev := log.Debug().Str("state", st.Kind.String())
		if st.Item != nil {
			ev = ev.Int("id", st.Item.Item.ID)
		}
		ev.Msg("preview state")
	})

	return &App{
		storyList: storylist.New(ctx, cfg.Feed, cfg.StoryCount, remote, store, loc, log),
		storyView: storyview.New(store),
		statusBar: statusbar.New(cfg.Feed, keymap.Help()),
		ctx:       ctx,
		cancel:    cancel,
		cfg:       cfg,
		remote:    remote,
		store:     store,
		loc:       loc,
		log:       log,
		open:      openBrowser,
	}
}

// Init starts the application.
func (a *App) Init() tea.Cmd {
	return a.storyList.Init()
}

// Store returns the shared preview store.
func (a *App) Store() *preview.Store {
	return a.store
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.Keys.Quit):
			a.cancel()
			return a, tea.Quit
		case key.Matches(msg, keymap.Keys.NextFeed):
			return a, a.switchFeed(a.nextFeed(1))
		case key.Matches(msg, keymap.Keys.PrevFeed):
			return a, a.switchFeed(a.nextFeed(-1))
		case key.Matches(msg, keymap.Keys.Feed1, keymap.Keys.Feed2, keymap.Keys.Feed3,
			keymap.Keys.Feed4, keymap.Keys.Feed5, keymap.Keys.Feed6):
			idx := int(msg.Runes[0] - '1')
			return a, a.switchFeed(api.Feeds[idx])
		case key.Matches(msg, keymap.Keys.PageUp, keymap.Keys.PageDown):
			a.storyView, cmd = a.storyView.Update(msg)
			return a, cmd
		}
		a.statusBar.SetStatus("", false)
		a.storyList, cmd = a.storyList.Update(msg)

	case tea.MouseMsg:
		left := a.leftWidth()
		if msg.X < left {
			a.storyList, cmd = a.storyList.Update(msg)
		} else {
			msg.X -= left
			a.storyView, cmd = a.storyView.Update(msg)
		}

	case preview.ResolvedMsg:
		// Settles into the store even if the row is no longer on screen.
		msg.Resolver.Settle(msg)

	case messages.StoriesLoadedMsg:
		a.storyList, cmd = a.storyList.Update(msg)

	case messages.SwitchFeedMsg:
		cmd = a.switchFeed(msg.Feed)

	case messages.OpenURLMsg:
		a.statusBar.SetStatus("Opening: "+msg.URL, false)
		open, url, log := a.open, msg.URL, a.log
		go func() {
			if err := open(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("opening browser")
			}
		}()

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
	}

	a.storyView.Sync()
	return a, cmd
}

// View renders the application.
func (a *App) View() string {
	contentHeight := max(a.height-1, 1)
	left := ListPaneStyle.
		Width(a.leftWidth()).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(a.storyList.View())
	right := PreviewPaneStyle.
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(a.storyView.View())

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

// leftWidth is the 50% share of the list pane.
func (a *App) leftWidth() int {
	return a.width / 2
}

func (a *App) resize() {
	contentHeight := max(a.height-1, 1) // Reserve 1 line for status bar.
	left := a.leftWidth()
	right := a.width - left

	a.storyList.SetSize(left-ListPaneStyle.GetHorizontalFrameSize(), contentHeight)
	a.storyView.SetSize(right-PreviewPaneStyle.GetHorizontalFrameSize(), contentHeight)
	a.statusBar.SetSize(a.width)
}

// switchFeed remounts the story list for feed. Rows of the old list are
// dropped along with their cache cells; their in-flight fetches still settle.
func (a *App) switchFeed(feed api.Feed) tea.Cmd {
	if feed == a.storyList.Feed() {
		return nil
	}
	a.storyList = storylist.New(a.ctx, feed, a.cfg.StoryCount, a.remote, a.store, a.loc, a.log)
	a.resize()
	a.statusBar.SetActiveFeed(feed)
	a.log.Info().Str("feed", string(feed)).Msg("switched feed")
	return a.storyList.Init()
}

func (a *App) nextFeed(step int) api.Feed {
	current := a.storyList.Feed()
	for i, f := range api.Feeds {
		if f == current {
			return api.Feeds[(i+step+len(api.Feeds))%len(api.Feeds)]
		}
	}
	return api.Feeds[0]
}

func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return nil
	}
	return cmd.Run()
}
