package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
	"github.com/vovakirdan/tui-protolab/internal/registry"
	"github.com/vovakirdan/tui-protolab/internal/storage"
)

// MaxFrameTime caps the dt handed to a prototype so a stalled terminal
// does not produce one huge simulation step.
const MaxFrameTime = 0.25

// statusTTL is how long a status message stays on the HUD line.
const statusTTL = 2 * time.Second

// Model is the Bubble Tea model for running a prototype.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	dl        *core.DrawList
	store     *storage.Store
	log       *log.Logger
	config    core.RuntimeConfig
	fixedSeed bool
	keys      *KeyMapper
	hold      *holdTracker
	lastTick  time.Time
	gameState core.GameState
	paused    bool
	status    string
	statusAt  time.Time
	quitting  bool
	runSaved  bool // whether the current session has been recorded
}

// NewModel creates a new Bubble Tea model for the given prototype.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		dl:        core.NewDrawList(),
		store:     store,
		log:       logging.OrDiscard(cfg.Logger),
		config:    cfg,
		fixedSeed: fixed,
		keys:      NewKeyMapper(),
		hold:      newHoldTracker(HoldWindow),
	}
}

// Init resets the prototype and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.log.Info("session started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records a key press; actions reach the prototype on the next tick.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.recordRun(now)
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionPause:
		m.paused = !m.paused
		m.hold.reset()
		return m, nil
	case action != core.ActionNone:
		m.hold.press(action, now)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// Prototypes lay out against the screen size at Reset.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// frameTime measures dt from consecutive tick timestamps.
func (m Model) frameTime(now time.Time) float64 {
	if m.lastTick.IsZero() {
		return 1 / float64(m.config.TickRate)
	}
	dt := now.Sub(m.lastTick).Seconds()
	if dt < 0 {
		return 0
	}
	return min(dt, MaxFrameTime)
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.frameTime(now)
	m.lastTick = now

	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	in := m.hold.frame(now)

	if in.Has(core.ActionRestart) && m.gameState.GameOver {
		if !m.fixedSeed {
			m.config.Seed = now.UnixNano()
		}
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.hold.reset()
		m.setStatus("restarted", now)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(in, dt)
	m.gameState = result.State
	for _, msg := range result.Messages {
		m.log.Debug("step message", "game", m.game.ID(), "msg", msg)
		m.setStatus(msg, now)
	}

	if m.gameState.GameOver {
		m.recordRun(now)
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string, now time.Time) {
	m.status = s
	m.statusAt = now
}

// recordRun stores the current session once and announces a new best
// score. Sessions that never advanced are not recorded.
func (m *Model) recordRun(now time.Time) {
	if m.runSaved || m.gameState.Elapsed <= 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}

	st := m.gameState
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.log.Warn("cannot read high score", "game", m.game.ID(), "error", err)
	}
	id, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Outcome:  st.Outcome.String(),
		Score:    st.Score,
		Duration: time.Duration(st.Elapsed * float64(time.Second)),
		Seed:     m.config.Seed,
	})
	if err != nil {
		m.log.Error("cannot record run", "game", m.game.ID(), "error", err)
		return
	}
	m.log.Info("run recorded", "game", m.game.ID(), "run", id, "outcome", st.Outcome, "score", st.Score)
	if st.Score > 0 && st.Score > best {
		m.setStatus(fmt.Sprintf("new best %d", st.Score), now)
	}
}

// saveScreenshot saves the current frame to ~/.protolab/screenshots.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".protolab", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// draw renders the prototype and the HUD line into the screen buffer.
func (m Model) draw() {
	m.screen.Clear()
	m.game.Render(m.dl)
	m.dl.Flush(m.screen)

	hud := m.hud(time.Now())
	if hud != "" {
		row := m.screen.Height() - 1
		m.screen.DrawHLine(0, row, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawText(0, row, hud, core.ColorGray)
	}
}

// hud returns the bottom status line.
func (m Model) hud(now time.Time) string {
	switch {
	case m.paused:
		return "PAUSED  P to resume"
	case m.status != "" && now.Sub(m.statusAt) < statusTTL:
		return m.status
	case m.gameState.Status != "":
		return m.gameState.Status
	}
	return ""
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
