package ui

import "image"

const (
	buttonWidth   = 88
	buttonHeight  = 24
	buttonSpacing = 8
)

// Action is what a toolbar button does.
type Action int

const (
	ActionNone Action = iota
	ActionNegative
	ActionReset
	ActionZoomIn
	ActionZoomOut
)

// Button is one toolbar slot.
type Button struct {
	Action Action
	Label  string
	Rect   image.Rectangle
}

// Toolbar lays out the action buttons in a row and hit-tests clicks.
// It does no drawing; the host paints Buttons however it likes.
type Toolbar struct {
	buttons []Button
}

// NewToolbar lays the buttons out left to right starting at origin.
func NewToolbar(origin image.Point) *Toolbar {
	defs := []struct {
		action Action
		label  string
	}{
		{ActionNegative, "Negative"},
		{ActionReset, "Reset"},
		{ActionZoomIn, "Zoom +"},
		{ActionZoomOut, "Zoom -"},
	}
	tb := &Toolbar{buttons: make([]Button, 0, len(defs))}
	for i, d := range defs {
		x := origin.X + i*(buttonWidth+buttonSpacing)
		tb.buttons = append(tb.buttons, Button{
			Action: d.action,
			Label:  d.label,
			Rect:   image.Rect(x, origin.Y, x+buttonWidth, origin.Y+buttonHeight),
		})
	}
	return tb
}

// Buttons returns the laid-out buttons in display order.
func (tb *Toolbar) Buttons() []Button { return tb.buttons }

// Height returns the total height of the toolbar.
func (tb *Toolbar) Height() int { return buttonHeight }

// Width returns the distance from the first button's left edge to the
// last button's right edge.
func (tb *Toolbar) Width() int {
	if len(tb.buttons) == 0 {
		return 0
	}
	return tb.buttons[len(tb.buttons)-1].Rect.Max.X - tb.buttons[0].Rect.Min.X
}

// HitTest returns the action of the button under p, or ActionNone.
func (tb *Toolbar) HitTest(p image.Point) Action {
	for _, b := range tb.buttons {
		if p.In(b.Rect) {
			return b.Action
		}
	}
	return ActionNone
}
