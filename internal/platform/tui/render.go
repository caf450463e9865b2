package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dodgesim/internal/core"
	"github.com/vovakirdan/dodgesim/internal/sim"
)

// Lane glyphs
const (
	PlayerChar   = '@'
	HitChar      = '*'
	ObstacleChar = '#'
	StackChar    = '%' // Several obstacles in one column
	GroundChar   = '═'
)

// Lane geometry: rows of the screen and the visible world window.
const (
	laneHeight = 3
	airRow     = 0
	groundRow  = 1
	floorRow   = 2
	viewMinX   = sim.PlayerX - 20
	viewMaxX   = sim.PlayerX + 50
)

var (
	laneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pausedText = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Render("PAUSED")
)

// drawLane draws the player and obstacles into dst. Obstacles outside the
// view window are skipped.
func drawLane(dst *core.Screen, p sim.Player, obs []sim.Obstacle, hit bool) {
	dst.Clear()
	dst.DrawHLine(0, floorRow, dst.Width(), GroundChar)

	for _, o := range obs {
		col := dst.Column(o.X, viewMinX, viewMaxX)
		if col < 0 {
			continue
		}
		if dst.Get(col, groundRow) == ' ' {
			dst.Set(col, groundRow, ObstacleChar)
		} else {
			dst.Set(col, groundRow, StackChar)
		}
	}

	col := dst.Column(p.X, viewMinX, viewMaxX)
	switch {
	case hit:
		dst.Set(col, groundRow, HitChar)
	case p.Airborne():
		dst.Set(col, airRow, PlayerChar)
	default:
		dst.Set(col, groundRow, PlayerChar)
	}
}
