package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/glyphsign/glyphsign/pkg/config"
	"github.com/glyphsign/glyphsign/pkg/display"
	"github.com/glyphsign/glyphsign/pkg/geometry"
	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
	"github.com/glyphsign/glyphsign/pkg/transition"
)

// playCommand creates the play command for interactive terminal
// playback.
func (c *CLI) playCommand() *cobra.Command {
	var (
		configPath string
		kindName   string
		planPath   string
		seed       uint64
		hold       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play [project.json]",
		Short: "Play glyph transitions in the terminal",
		Long: `Play glyph transitions in the terminal.

The play command runs a display instance over the project's glyphs,
cycling through them with animated transitions rendered as a character
raster. Useful for previewing a layout and its tuning without hardware.

With --plan, a saved plan.json from the plan command is replayed on the
layout instead of generating transitions live.

Keys: space advances to the next glyph (or restarts a replay), p pauses
the automatic cycle, 1-4 switch the transition kind, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if planPath != "" {
				return c.runReplay(args[0], planPath)
			}
			fileCfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			kind, err := resolveKind(kindName, fileCfg)
			if err != nil {
				return err
			}
			engineCfg, err := fileCfg.Transition.Engine()
			if err != nil {
				return err
			}
			return c.runPlay(args[0], kind, display.ParseEffect(fileCfg.Display.Effect), engineCfg, seed, hold)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath(), "TOML config file with transition defaults")
	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "transition kind: "+strings.Join(transition.KindNames(), ", "))
	cmd.Flags().StringVar(&planPath, "plan", "", "replay a saved plan.json instead of generating live")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for plan generation")
	cmd.Flags().DurationVar(&hold, "hold", 2*time.Second, "time to hold each glyph before advancing")

	return cmd
}

func (c *CLI) runPlay(input string, kind transition.Kind, effect display.Effect, cfg transition.Config, seed uint64, hold time.Duration) error {
	project, err := grid.ReadProjectFile(input)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	names := project.Glyphs.Names()
	if len(names) == 0 {
		return fmt.Errorf("project %s defines no glyphs to play", input)
	}

	graph := segmentgraph.Build(project.Grid, segmentgraph.Options{})
	d, err := display.New(project.Grid, graph, display.Options{
		Glyphs: project.Glyphs,
		Config: cfg,
		Seed:   seed,
	})
	if err != nil {
		return err
	}
	d.SetEffect(effect)

	m := newPlayModel(d, project, names, kind, hold)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (c *CLI) runReplay(input, planPath string) error {
	project, err := grid.ReadProjectFile(input)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	file, err := transition.ReadPlanFile(planPath)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	m := newReplayModel(project, file)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// Playback Model
// =============================================================================

// playFrame is the fixed simulation step between renders.
const playFrame = 33 * time.Millisecond

type playTickMsg time.Time

func playTick() tea.Cmd {
	return tea.Tick(playFrame, func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

var (
	playLitStyle      = lipgloss.NewStyle().Foreground(colorCyan)
	playBackboneStyle = lipgloss.NewStyle().Foreground(colorDim)
)

type playModel struct {
	d       *display.Display
	project *grid.Project
	glyphs  []string
	idx     int
	kind    transition.Kind
	hold    time.Duration
	idle    time.Duration
	paused  bool
}

func newPlayModel(d *display.Display, project *grid.Project, glyphs []string, kind transition.Kind, hold time.Duration) playModel {
	return playModel{
		d:       d,
		project: project,
		glyphs:  glyphs,
		idx:     -1,
		kind:    kind,
		hold:    hold,
	}
}

func (m playModel) Init() tea.Cmd {
	return playTick()
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			m.stageNext()
		case "p":
			m.paused = !m.paused
		case "1", "2", "3", "4":
			kinds := []transition.Kind{
				transition.KindImmediate,
				transition.KindRandom,
				transition.KindWriting,
				transition.KindOverwrite,
			}
			m.kind = kinds[int(msg.String()[0]-'1')]
		}
	case playTickMsg:
		if m.idx < 0 {
			m.stageNext()
		}
		m.d.Tick(playFrame)
		if !m.d.InTransition() {
			m.idle += playFrame
			if !m.paused && m.idle >= m.hold {
				m.stageNext()
			}
		}
		return m, playTick()
	}
	return m, nil
}

func (m *playModel) stageNext() {
	m.idx = (m.idx + 1) % len(m.glyphs)
	m.d.SetGlyph(m.glyphs[m.idx], m.kind)
	m.idle = 0
}

func (m playModel) View() string {
	var b strings.Builder

	glyph := "—"
	if m.idx >= 0 {
		glyph = m.glyphs[m.idx]
	}
	b.WriteString(StyleTitle.Render("glyphsign"))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render(glyph))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]  %s", m.idx+1, len(m.glyphs), m.kind)))
	if m.paused {
		b.WriteString("  " + StyleWarning.Render("paused"))
	}
	b.WriteString("\n\n")

	b.WriteString(renderRaster(m.project.Grid, m.d.IsActive))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d segments lit", m.d.ActiveCount())))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space next  p pause  1-4 kind  q quit"))

	return b.String()
}

// =============================================================================
// Plan Replay Model
// =============================================================================

type replayModel struct {
	project *grid.Project
	file    *transition.PlanFile
	cursor  *transition.Transition
	lit     map[string]struct{}
}

func newReplayModel(project *grid.Project, file *transition.PlanFile) *replayModel {
	m := &replayModel{project: project, file: file}
	m.restart()
	return m
}

func (m *replayModel) restart() {
	frame := time.Duration(m.file.FrameDuration) * time.Millisecond
	if frame <= 0 {
		frame = transition.DefaultFrameDuration
	}
	m.cursor = transition.New(m.file.Kind, m.file.Plan, frame)
	m.lit = make(map[string]struct{})
}

func (m *replayModel) Init() tea.Cmd {
	return playTick()
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter", "r":
			m.restart()
		}
	case playTickMsg:
		if m.cursor.Tick(playFrame) {
			if u, ok := m.cursor.Advance(); ok {
				for id := range u.On {
					m.lit[id] = struct{}{}
				}
				for id := range u.Off {
					delete(m.lit, id)
				}
			}
		}
		return m, playTick()
	}
	return m, nil
}

func (m *replayModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("glyphsign"))
	b.WriteString("  ")
	b.WriteString(StyleHighlight.Render("replay"))
	b.WriteString(StyleDim.Render("  " + m.cursor.Kind().String()))
	if m.cursor.Complete() {
		b.WriteString("  " + StyleSuccess.Render("done"))
	} else {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d steps left", m.cursor.Remaining())))
	}
	b.WriteString("\n\n")

	b.WriteString(renderRaster(m.project.Grid, func(id string) bool {
		_, ok := m.lit[id]
		return ok
	}))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d segments lit", len(m.lit))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space restart  q quit"))

	return b.String()
}

// =============================================================================
// Raster Rendering
// =============================================================================

// Cell states, in paint priority order.
const (
	cellEmpty = iota
	cellBackbone
	cellLit
)

// renderRaster draws the grid's segments as a character raster.
// Unlit segments form the dim backbone; lit segments are drawn bright
// on top of it. Terminal cells are roughly twice as tall as wide, so
// the vertical resolution is halved.
func renderRaster(g *grid.Grid, lit func(id string) bool) string {
	const cellsPerTileX = 10
	width := g.Cols() * cellsPerTileX
	height := g.Rows() * cellsPerTileX / 2
	if width == 0 || height == 0 {
		return ""
	}

	tileW, tileH := g.TileSize()
	scaleX := float64(width) / (float64(g.Cols()) * tileW)
	scaleY := float64(height) / (float64(g.Rows()) * tileH)

	cells := make([][]int, height)
	for y := range cells {
		cells[y] = make([]int, width)
	}

	plot := func(x, y float64, state int) {
		cx := int(x * scaleX)
		cy := int(y * scaleY)
		if cx < 0 || cx >= width || cy < 0 || cy >= height {
			return
		}
		if state > cells[cy][cx] {
			cells[cy][cx] = state
		}
	}

	for _, id := range g.SegmentIDs() {
		seg, _ := g.Segment(id)
		state := cellBackbone
		if lit(id) {
			state = cellLit
		}
		for _, prim := range seg.Primitives {
			plotPrimitive(prim, state, plot)
		}
	}

	var b strings.Builder
	for _, row := range cells {
		for _, state := range row {
			switch state {
			case cellLit:
				b.WriteString(playLitStyle.Render("█"))
			case cellBackbone:
				b.WriteString(playBackboneStyle.Render("·"))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// plotPrimitive samples a primitive's outline into the raster.
func plotPrimitive(prim geometry.Primitive, state int, plot func(x, y float64, state int)) {
	const samples = 24
	switch p := prim.(type) {
	case geometry.Line:
		for i := 0; i <= samples; i++ {
			t := float64(i) / samples
			plot(p.P1.X+(p.P2.X-p.P1.X)*t, p.P1.Y+(p.P2.Y-p.P1.Y)*t, state)
		}
	case geometry.Arc:
		for i := 0; i+1 < len(p.Points); i++ {
			a, b := p.Points[i], p.Points[i+1]
			for j := 0; j <= samples; j++ {
				t := float64(j) / samples
				plot(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t, state)
			}
		}
	case geometry.Circle:
		for i := 0; i < 2*samples; i++ {
			angle := 2 * math.Pi * float64(i) / float64(2*samples)
			plot(p.Center.X+p.Radius*math.Cos(angle), p.Center.Y+p.Radius*math.Sin(angle), state)
		}
	}
}
