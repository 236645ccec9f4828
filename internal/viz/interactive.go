package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbitbox/internal/config"
	"github.com/san-kum/orbitbox/internal/scene"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var sceneInfo = map[string]string{
	"binary":  "two stars on a circular orbit",
	"cluster": "eight bodies collapsing from rest",
	"headon":  "two bodies on a collision course",
	"newton":  "a striker hitting a row of spheres",
	"solar":   "a lit sun with three planets",
}

// Picker lists the premade scenes and opens the chosen one in a Model.
type Picker struct {
	names  []string
	cursor int
	cfg    *config.Config
	sim    *Model
	err    error
}

func NewPicker(cfg *config.Config) Picker {
	return Picker{names: scene.PremadeNames(), cfg: cfg}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.sim != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+b" {
			p.sim = nil
			return p, nil
		}
		next, cmd := p.sim.Update(msg)
		m := next.(Model)
		p.sim = &m
		return p, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch k.String() {
	case "ctrl+c", "q":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.names) == 0 {
			return p, nil
		}
		name := p.names[p.cursor]
		entries, err := scene.Premade(name, p.cfg.Dt)
		if err != nil {
			p.err = err
			return p, nil
		}
		sc := scene.New()
		sc.Load(entries)
		m := NewModel(sc, name, p.cfg)
		p.sim = &m
		p.err = nil
		return p, m.Init()
	}
	return p, nil
}

func (p Picker) View() string {
	if p.sim != nil {
		return p.sim.View() + "\n" + dimmer.Render("  ctrl+b back to menu")
	}

	var b strings.Builder
	b.WriteString("\n  " + cyan.Render("orbitbox") + dim.Render("  gravity sandbox") + "\n\n")
	for i, name := range p.names {
		cur := "  "
		style := dim
		if i == p.cursor {
			cur = cyan.Render("▸ ")
			style = white
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cur, style.Render(fmt.Sprintf("%-10s", name)), dimmer.Render(sceneInfo[name])))
	}
	if p.err != nil {
		b.WriteString("\n  " + red.Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n  " + dimmer.Render("j/k move  enter open  q quit") + "\n")
	return b.String()
}
