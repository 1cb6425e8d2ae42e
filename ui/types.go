// Package ui draws game snapshots with raylib and turns key presses and
// raygui panel clicks into game commands.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// Anchor returns the top-left corner of a w×h panel placed at a on a
// screenW×screenH screen with margin m.
func Anchor(a PanelAnchor, w, h, screenW, screenH, m int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - m, m
	case AnchorBottomLeft:
		return m, screenH - h - m
	case AnchorBottomRight:
		return screenW - w - m, screenH - h - m
	case AnchorCenter:
		return (screenW - w) / 2, (screenH - h) / 2
	default:
		return m, m
	}
}

// Theme holds UI styling constants.
type Theme struct {
	Background     rl.Color
	GridLine       rl.Color
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillLow     rl.Color
	BarFillMedium  rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:     rl.Color{R: 12, G: 14, B: 18, A: 255},
		GridLine:       rl.Color{R: 30, G: 34, B: 40, A: 255},
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Palette colors the arena entities.
type Palette struct {
	Player      rl.Color
	PlayerHead  rl.Color
	AI          rl.Color
	AIHead      rl.Color
	Boss        [3]rl.Color // by phase
	Food        rl.Color
	Bonus       rl.Color
	Shield      rl.Color
	SpeedBoost  rl.Color
	Ghost       rl.Color
	Projectile  rl.Color
	Circular    rl.Color
	SafeZone    rl.Color
	Warning     rl.Color
	GlobalFlash rl.Color
}

// DefaultPalette returns the default entity colors.
func DefaultPalette() Palette {
	return Palette{
		Player:      rl.Color{R: 60, G: 200, B: 90, A: 255},
		PlayerHead:  rl.Color{R: 140, G: 255, B: 160, A: 255},
		AI:          rl.Color{R: 70, G: 120, B: 220, A: 255},
		AIHead:      rl.Color{R: 140, G: 180, B: 255, A: 255},
		Boss:        [3]rl.Color{{R: 200, G: 60, B: 60, A: 255}, {R: 220, G: 110, B: 40, A: 255}, {R: 170, G: 40, B: 200, A: 255}},
		Food:        rl.Color{R: 230, G: 80, B: 80, A: 255},
		Bonus:       rl.Gold,
		Shield:      rl.SkyBlue,
		SpeedBoost:  rl.Orange,
		Ghost:       rl.Color{R: 200, G: 200, B: 255, A: 160},
		Projectile:  rl.Color{R: 255, G: 90, B: 60, A: 255},
		Circular:    rl.Color{R: 255, G: 200, B: 60, A: 255},
		SafeZone:    rl.Color{R: 60, G: 220, B: 120, A: 70},
		Warning:     rl.Color{R: 255, G: 60, B: 60, A: 40},
		GlobalFlash: rl.Color{R: 255, G: 30, B: 30, A: 90},
	}
}
