package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rodwindswept/gyrokite/internal/config"
	"github.com/rodwindswept/gyrokite/internal/rotor"
	"github.com/rodwindswept/gyrokite/internal/sweep"
	"github.com/rodwindswept/gyrokite/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// param describes one editable slider: display label, units and the bounds
// the editor enforces before a value ever reaches the model.
type param struct {
	name  string
	label string
	unit  string
	min   float64
	max   float64
	step  float64
}

var params = []param{
	{"blade_length", "blade length", "m", 0.2, 4.0, 0.05},
	{"blade_chord", "blade chord", "m", 0.02, 0.6, 0.01},
	{"blade_pitch", "blade pitch", "deg", -10, 15, 0.5},
	{"rotor_mass", "rotor mass", "kg", 0.1, 12, 0.1},
	{"line_tension", "line tension", "N", 0, 1500, 10},
	{"line_angle", "line angle", "deg", 0, 90, 1},
	{"wind_speed", "wind speed", "m/s", 0, 40, 0.5},
	{"rotor_tilt", "rotor tilt", "deg", -45, 45, 1},
}

// curveSamples is how many times the model is re-evaluated per edit to
// rebuild the wind response sparkline.
const curveSamples = 12

type model struct {
	design rotor.Design
	state  rotor.State
	curve  []float64

	cursor  int
	editing bool
	editBuf string

	presets   []string
	presetIdx int

	width  int
	height int
}

func NewEditor(design rotor.Design) *model {
	names := config.ListPresets()
	sort.Strings(names)
	m := &model{
		design:    design,
		presets:   names,
		presetIdx: -1,
		width:     80,
		height:    24,
	}
	m.recompute()
	return m
}

// Run starts the interactive editor and blocks until it exits.
func Run(design rotor.Design) error {
	p := tea.NewProgram(NewEditor(design))
	_, err := p.Run()
	return err
}

func (m *model) recompute() {
	m.state = rotor.Compute(m.design)

	r := sweep.Range{Param: "wind_speed", From: 2, To: 24, Step: 2}
	points, err := sweep.Run(context.Background(), m.design, r)
	if err != nil {
		m.curve = nil
		return
	}
	m.curve = sweep.Curve(points[:curveSamples], func(s rotor.State) float64 { return s.GeneratedThrust })
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%f", &val); err == nil {
				p := params[m.cursor]
				m.setValue(p, val)
			}
			m.editing = false
			m.editBuf = ""
		case "escape":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(params)-1 {
			m.cursor++
		}
	case "left", "h":
		p := params[m.cursor]
		m.setValue(p, m.value(p)-p.step)
	case "right", "l":
		p := params[m.cursor]
		m.setValue(p, m.value(p)+p.step)
	case "shift+left", "H":
		p := params[m.cursor]
		m.setValue(p, m.value(p)-p.step*10)
	case "shift+right", "L":
		p := params[m.cursor]
		m.setValue(p, m.value(p)+p.step*10)
	case "enter", " ":
		m.editing = true
		m.editBuf = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", m.value(params[m.cursor])), "0"), ".")
	case "p":
		if len(m.presets) > 0 {
			m.presetIdx = (m.presetIdx + 1) % len(m.presets)
			preset := config.GetPreset(m.presets[m.presetIdx])
			m.design = preset.Design.ToRotor()
			m.recompute()
		}
	case "r":
		m.design = rotor.DefaultDesign()
		m.presetIdx = -1
		m.recompute()
	}
	return m, nil
}

func (m model) value(p param) float64 {
	return m.design.Params()[p.name]
}

// setValue clamps the edit to the slider bounds; the model itself accepts
// anything finite, so the editor is where physical limits live.
func (m *model) setValue(p param, v float64) {
	if v < p.min {
		v = p.min
	}
	if v > p.max {
		v = p.max
	}
	_ = m.design.SetParam(p.name, v)
	m.recompute()
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("            " + cyan.Render("g y r o k i t e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, p := range params {
		val := fmt.Sprintf("%9.2f %-4s", m.value(p), p.unit)
		if m.editing && i == m.cursor {
			val = fmt.Sprintf("%9s %-4s", m.editBuf+"▋", p.unit)
		}
		slider := m.slider(p, 16)
		if i == m.cursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-13s", p.label)) +
				magenta.Render(val) + "  " + slider + "\n")
		} else {
			b.WriteString("     " + dim.Render(fmt.Sprintf("%-13s", p.label)) +
				dim.Render(val) + "  " + dimmer.Render(slider) + "\n")
		}
	}

	b.WriteString("\n" + m.viewState())

	if len(m.curve) > 1 {
		b.WriteString(fmt.Sprintf("\n   %s %s %s\n",
			dim.Render("thrust 2-24 m/s"),
			cyan.Render(viz.Sparkline(m.curve, 24)),
			dim.Render(fmt.Sprintf("%.0f..%.0f N", m.curve[0], m.curve[len(m.curve)-1]))))
	}

	if m.presetIdx >= 0 {
		b.WriteString("\n   " + dim.Render("preset: ") + yellow.Render(m.presets[m.presetIdx]) + "\n")
	}

	b.WriteString("\n" + dim.Render("   ↑↓ select  ←→ adjust  shift+←→ coarse  enter type  p preset  r reset  q quit") + "\n")

	return b.String()
}

func (m model) slider(p param, width int) string {
	frac := (m.value(p) - p.min) / (p.max - p.min)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	pos := int(frac * float64(width-1))
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i == pos {
			sb.WriteRune('●')
		} else {
			sb.WriteRune('─')
		}
	}
	return sb.String()
}

func (m model) viewState() string {
	s := m.state
	var b strings.Builder

	regime := green.Render("● autorotating")
	if !s.Spinning() {
		regime = yellow.Render("○ stationary")
	}
	b.WriteString("   " + regime + "\n\n")

	row := func(label string, val string) {
		b.WriteString("   " + dim.Render(fmt.Sprintf("%-16s", label)) + white.Render(val) + "\n")
	}

	row("rpm", fmt.Sprintf("%.1f", s.RPM))
	row("gen thrust", fmt.Sprintf("%.1f N", s.GeneratedThrust))
	row("lift / drag", fmt.Sprintf("%.1f / %.1f N", s.Lift, s.Drag))
	row("tip speed", fmt.Sprintf("%.1f m/s  (ratio %.2f)", s.TipSpeed, s.TipSpeedRatio))
	row("power", fmt.Sprintf("%.0f W", s.PowerOutput))
	row("disc alpha", fmt.Sprintf("%.1f°", s.AngleOfAttack))
	row("anchor", fmt.Sprintf("%.0f N @ %.1f°", s.Anchor.Tension, s.Anchor.Angle))

	stab := fmt.Sprintf("%.0f", s.StabilityScore)
	switch {
	case s.StabilityScore >= 70:
		stab = green.Render(stab)
	case s.StabilityScore >= 40:
		stab = yellow.Render(stab)
	default:
		stab = red.Render(stab)
	}
	b.WriteString("   " + dim.Render(fmt.Sprintf("%-16s", "stability")) + stab + "\n")

	if s.Spinning() {
		bl := s.Blades
		b.WriteString("   " + dim.Render(fmt.Sprintf("%-16s", "blades adv/ret")) +
			white.Render(fmt.Sprintf("%.1f / %.1f m/s  aoa %.1f / %.1f°  μ %.2f  Re %.1e",
				bl.AdvancingVelocity, bl.RetreatingVelocity,
				bl.AdvancingAoA, bl.RetreatingAoA, bl.AdvanceRatio, bl.ReynoldsNumber)) + "\n")
	}

	return b.String()
}
