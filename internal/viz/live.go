package viz

import (
	"fmt"
	"image"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/control"
	"github.com/san-kum/orbitbox/internal/metrics"
	"github.com/san-kum/orbitbox/internal/physics"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	trailCapacity   = 200
	maxStepsPerTick = 64
	rotateStep      = 0.1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a scene on every tick and routes edit keys to a
// control.Manual.
type Model struct {
	manual        *control.Manual
	initial       *scene.Scene
	name          string
	g, dt, t      float64
	frame         int
	stepsPerTick  int
	running       bool
	canvas        *Canvas
	camera        *Camera
	collisions    *metrics.Collisions
	energyHistory []float64
	trail         []mgl64.Vec3
	trailOf       int
	status        string
	failed        bool
	showHelp      bool
	recording     bool
	frames        []*image.Paletted
	gifPath       string
}

// NewModel wraps sc for live display. sc is edited in place.
func NewModel(sc *scene.Scene, name string, cfg *config.Config) Model {
	m := Model{
		manual:        control.NewManual(sc, cfg.Interaction, cfg.Dt),
		initial:       sc.Clone(),
		name:          name,
		g:             cfg.G,
		dt:            cfg.Dt,
		stepsPerTick:  2,
		running:       true,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		collisions:    metrics.NewCollisions(),
		energyHistory: make([]float64, 0, historyCapacity),
		trailOf:       scene.NoSelection,
		gifPath:       "orbitbox.gif",
	}
	m.camera.FitTo(extent(sc))
	m.manual.HoldAt(m.camera.HoldPoint())
	m.draw()
	return m
}

// extent is the distance from the origin to the farthest body surface.
func extent(sc *scene.Scene) float64 {
	e := 0.0
	for _, b := range sc.Bodies() {
		e = math.Max(e, b.Position.Len()+b.Radius)
	}
	return e
}

func (m Model) Scene() *scene.Scene { return m.manual.Scene() }

func (m Model) Time() float64 { return m.t }

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg.String())
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerTick)
		}
		m.manual.HoldAt(m.camera.HoldPoint())
		m.draw()
		if m.recording {
			m.frames = append(m.frames, m.canvas.Image(4, 4))
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	switch key {
	case " ":
		m.running = !m.running
		return
	case ".":
		if !m.running {
			m.advance(1)
		}
		return
	case "r":
		m.reset()
		return
	case ">":
		m.stepsPerTick = min(maxStepsPerTick, m.stepsPerTick*2)
		return
	case "<":
		m.stepsPerTick = max(1, m.stepsPerTick/2)
		return
	case "x":
		m.camera.RotateX(rotateStep)
	case "X":
		m.camera.RotateX(-rotateStep)
	case "y":
		m.camera.RotateY(rotateStep)
	case "Y":
		m.camera.RotateY(-rotateStep)
	case "z":
		m.camera.RotateZ(rotateStep)
	case "Z":
		m.camera.RotateZ(-rotateStep)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "enter":
		m.manual.HoldAt(m.camera.HoldPoint())
		if err := m.manual.Launch(m.camera.Forward()); err != nil {
			m.status = err.Error()
			return
		}
		m.status = fmt.Sprintf("launched at %.3g", m.Scene().LaunchSpeed()/m.dt)
	case "tab":
		NextTheme()
		m.status = "theme " + CurrentTheme.Name
	case "?":
		m.showHelp = !m.showHelp
	case "G":
		m.toggleRecording()
	default:
		if slot, ok := control.PremadeSlot(key); ok {
			name, err := m.manual.LoadSlot(slot)
			if err != nil {
				m.status = err.Error()
				return
			}
			m.status = "added " + name
			return
		}
		if a, ok := control.KeyAction(key); ok {
			if err := m.manual.Apply(a); err != nil {
				m.status = err.Error()
				return
			}
			m.status = a.String()
		}
	}
}

// advance steps the scene n times and records history. A non-finite state
// pauses the model.
func (m *Model) advance(n int) {
	if m.failed {
		return
	}
	sc := m.Scene()
	for i := 0; i < n; i++ {
		sc.Step(m.dt, m.g)
		m.t += m.dt
		m.frame++
		start, end := sc.SimRange()
		m.collisions.Observe(sim.Frame{Bodies: sc.Bodies(), Start: start, End: end, Index: m.frame, Time: m.t, Dt: m.dt})
		if !physics.IsFinite(sc.Bodies(), start, end) {
			m.failed = true
			m.running = false
			m.status = fmt.Sprintf("%v at t=%.2f", sim.ErrInvalidState, m.t)
			break
		}
	}

	start, end := sc.SimRange()
	m.energyHistory = append(m.energyHistory, physics.TotalEnergy(sc.Bodies(), start, end, m.dt, m.g))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	sel := sc.Selected()
	if sel != m.trailOf {
		m.trail = m.trail[:0]
		m.trailOf = sel
	}
	if sel != scene.NoSelection {
		m.trail = append(m.trail, sc.Bodies()[sel].Position)
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}
}

// reset restores the scene as it was when the model was created.
func (m *Model) reset() {
	m.manual.SetScene(m.initial.Clone())
	m.manual.HoldAt(m.camera.HoldPoint())
	m.t = 0
	m.frame = 0
	m.failed = false
	m.collisions.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.trail = m.trail[:0]
	m.trailOf = scene.NoSelection
	m.status = "reset"
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = m.frames[:0]
		m.status = "recording"
		return
	}
	m.recording = false
	if len(m.frames) == 0 {
		m.status = "nothing recorded"
		return
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.status = err.Error()
		return
	}
	defer f.Close()
	if err := WriteGIF(f, m.frames, 2); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.gifPath)
	m.frames = nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	sc := m.Scene()
	pw, ph := m.canvas.PixelSize()

	for _, p := range m.trail {
		if x, y, _, _, ok := m.camera.Project(p, pw, ph); ok {
			m.canvas.Set(x, y)
		}
	}

	held := -1
	if _, ok := sc.Held(); ok {
		held = sc.Len() - 1
	}
	for i, b := range sc.Bodies() {
		x, y, px, _, ok := m.camera.Project(b.Position, pw, ph)
		if !ok {
			continue
		}
		r := int(math.Round(b.Radius * px))
		switch {
		case i == held:
			m.canvas.Circle(x, y, max(r, 1))
		case r < 1:
			m.canvas.Set(x, y)
		default:
			m.canvas.Disc(x, y, r)
		}
		if i == sc.Selected() {
			m.canvas.Circle(x, y, max(r, 1)+2)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	st := currentStyles()
	sc := m.Scene()

	var s strings.Builder
	s.WriteString(st.title.Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.running:
		s.WriteString(st.running.Render("RUNNING"))
	case m.failed:
		s.WriteString(st.errText.Render("HALTED"))
	default:
		s.WriteString(st.paused.Render("PAUSED"))
	}
	if m.recording {
		s.WriteString(" " + st.errText.Render("● REC"))
	}
	s.WriteString("\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs  x%d", m.t, m.stepsPerTick))
	row("Bodies", fmt.Sprintf("%d", sc.NumSimulated()))
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	row("Energy", fmt.Sprintf("%.4g", energy))
	row("Collisions", fmt.Sprintf("%d", m.collisions.Count()))
	row("Launch", fmt.Sprintf("%.3g", sc.LaunchSpeed()/m.dt))

	s.WriteString("\n")
	if sel := sc.Selected(); sel != scene.NoSelection {
		b := sc.Bodies()[sel]
		s.WriteString(st.active.Render(fmt.Sprintf("> body %d", sel)) + "\n")
		row("Radius", fmt.Sprintf("%.3g", b.Radius))
		row("Density", fmt.Sprintf("%.3g", b.Density))
		row("Mass", fmt.Sprintf("%.3g", b.Mass))
		row("Speed", fmt.Sprintf("%.3g", b.Velocity(m.dt).Len()))
	} else {
		s.WriteString(st.label.Render("  (no selection)") + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + st.value.Render(m.status) + "\n")
	}
	s.WriteString(st.hint.Render(Separator(30) + "\nSP:Pause r:Reset ^C:Quit\nTab:Theme G:Record ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single step when paused  ║
║  < / >    - Slower / faster          ║
║  r        - Reset                    ║
║  e / q    - Select next / previous   ║
║  Esc      - Deselect                 ║
║  R / F    - Grow / shrink radius     ║
║  t / g    - Denser / lighter         ║
║  h j k l  - Move -x -y +y +x         ║
║  u / i    - Move -z / +z             ║
║  x y z    - Rotate view              ║
║  + / -    - Zoom                     ║
║  Enter    - Launch held body         ║
║  [ ] 0    - Launch speed down/up/0   ║
║  1..9     - Add premade scene        ║
║  ` + "`" + `        - Clear scene              ║
║  Tab      - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Ctrl+C   - Quit                     ║
╚══════════════════════════════════════╝`
