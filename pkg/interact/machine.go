// Package interact implements the per-board gesture state machine:
// dragging a card to a new spot and editing a card's name.
//
// The machine holds only gesture state (which card, the scratch buffer, the
// pose remembered for the enlarged edit view). The card slice it acts on is
// passed into each call, so the owner of the board decides how events are
// serialized.
//
//	Idle ──DragStart──▶ Dragging ──DragEnd──▶ Idle
//	Idle ──Select────▶ Editing  ──Done/Cancel──▶ Idle
//
// Starting a new gesture while one is active abandons the old one without
// touching any card.
package interact

import (
	"fmt"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/errors"
)

// Mode is the machine's state.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Editing
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Offset is a pointer displacement in container pixels.
type Offset struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Machine tracks the active gesture on one card set. The zero value is an
// idle machine.
type Machine struct {
	mode    Mode
	target  int
	scratch string
	origin  card.Pose
	offset  Offset
}

// Mode returns the current state.
func (m *Machine) Mode() Mode { return m.mode }

// Target returns the id of the card being dragged or edited.
func (m *Machine) Target() (id int, ok bool) {
	if m.mode == Idle {
		return 0, false
	}
	return m.target, true
}

// Scratch returns the edit buffer. It is empty unless editing.
func (m *Machine) Scratch() string { return m.scratch }

// Origin returns the pose the edited card had when it was selected, used
// as the entry and exit point of the enlarged edit view.
func (m *Machine) Origin() card.Pose { return m.origin }

// Offset returns the running drag displacement recorded by DragMove.
func (m *Machine) Offset() Offset { return m.offset }

// Reset returns the machine to Idle, discarding any gesture.
func (m *Machine) Reset() { *m = Machine{} }

// DragStart begins dragging the card with the given id. No card changes
// until DragEnd.
func (m *Machine) DragStart(cards []card.Card, id int) error {
	if _, err := find(cards, id); err != nil {
		return err
	}
	m.Reset()
	m.mode, m.target = Dragging, id
	return nil
}

// DragMove records the pointer displacement since DragStart, for previews.
func (m *Machine) DragMove(dx, dy float64) error {
	if m.mode != Dragging {
		return stateError("move", m.mode)
	}
	m.offset = Offset{DX: dx, DY: dy}
	return nil
}

// DragEnd drops the dragged card at its drag-start position plus the total
// pointer displacement (dx, dy) and brings it to the front.
func (m *Machine) DragEnd(cards []card.Card, dx, dy float64) error {
	if m.mode != Dragging {
		return stateError("drop", m.mode)
	}
	i, err := find(cards, m.target)
	if err != nil {
		m.Reset()
		return err
	}
	cards[i].X += dx
	cards[i].Y += dy
	card.BringToFront(cards, i)
	m.Reset()
	return nil
}

// Select opens the card with the given id for editing. Its value is copied
// into the scratch buffer, its pose is remembered, and it is brought to the
// front.
func (m *Machine) Select(cards []card.Card, id int) error {
	i, err := find(cards, id)
	if err != nil {
		return err
	}
	m.Reset()
	m.mode, m.target = Editing, id
	m.scratch = cards[i].Value
	m.origin = cards[i].Pose()
	card.BringToFront(cards, i)
	return nil
}

// Edit replaces the scratch buffer.
func (m *Machine) Edit(value string) error {
	if m.mode != Editing {
		return stateError("edit", m.mode)
	}
	m.scratch = value
	return nil
}

// Cancel leaves editing without changing any card.
func (m *Machine) Cancel() error {
	if m.mode != Editing {
		return stateError("cancel", m.mode)
	}
	m.Reset()
	return nil
}

// Done commits the scratch buffer as the edited card's value. An empty
// buffer is a valid value.
func (m *Machine) Done(cards []card.Card) error {
	if m.mode != Editing {
		return stateError("confirm", m.mode)
	}
	i, err := find(cards, m.target)
	if err != nil {
		m.Reset()
		return err
	}
	cards[i].Value = m.scratch
	m.Reset()
	return nil
}

func find(cards []card.Card, id int) (int, error) {
	i := card.IndexOf(cards, id)
	if i < 0 {
		return -1, errors.New(errors.ErrCodeCardNotFound, "no card with id %d", id)
	}
	return i, nil
}

func stateError(action string, mode Mode) error {
	return errors.New(errors.ErrCodeInvalidState, "cannot %s while %s", action, mode)
}

// String describes the machine for logs.
func (m *Machine) String() string {
	if m.mode == Idle {
		return "idle"
	}
	return fmt.Sprintf("%s(%d)", m.mode, m.target)
}
