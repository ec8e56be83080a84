package arrange

import (
	"github.com/matzehuels/nameplate/pkg/interact"
	"github.com/matzehuels/nameplate/pkg/observability"
)

// Gesture actions, as reported in Frame.Action and to observability hooks.
const (
	ActionDragStart = "drag_start"
	ActionDragMove  = "drag_move"
	ActionDragEnd   = "drag_end"
	ActionDrag      = "drag"
	ActionSelect    = "select"
	ActionEdit      = "edit"
	ActionCancel    = "cancel"
	ActionDone      = "done"
)

// DragStart begins dragging the card with the given id.
func (c *Controller) DragStart(id int) (Frame, error) {
	return c.interact(ActionDragStart, id, func(m *interact.Machine) error {
		return m.DragStart(c.cards, id)
	})
}

// DragMove reports the running pointer displacement of the active drag.
func (c *Controller) DragMove(dx, dy float64) (Frame, error) {
	return c.interact(ActionDragMove, -1, func(m *interact.Machine) error {
		return m.DragMove(dx, dy)
	})
}

// DragEnd drops the dragged card, offset by (dx, dy), on top of the others.
func (c *Controller) DragEnd(dx, dy float64) (Frame, error) {
	return c.interact(ActionDragEnd, -1, func(m *interact.Machine) error {
		return m.DragEnd(c.cards, dx, dy)
	})
}

// Drag runs a whole drag gesture on the card with the given id: the card
// moves by (dx, dy) and comes to the front. No other event can land between
// the start and the drop, and a single frame is published.
func (c *Controller) Drag(id int, dx, dy float64) (Frame, error) {
	return c.interact(ActionDrag, id, func(m *interact.Machine) error {
		if err := m.DragStart(c.cards, id); err != nil {
			return err
		}
		return m.DragEnd(c.cards, dx, dy)
	})
}

// Select opens the card with the given id for editing.
func (c *Controller) Select(id int) (Frame, error) {
	return c.interact(ActionSelect, id, func(m *interact.Machine) error {
		return m.Select(c.cards, id)
	})
}

// Edit replaces the edit buffer of the selected card.
func (c *Controller) Edit(value string) (Frame, error) {
	return c.interact(ActionEdit, -1, func(m *interact.Machine) error {
		return m.Edit(value)
	})
}

// Cancel closes the editor without changing the card.
func (c *Controller) Cancel() (Frame, error) {
	return c.interact(ActionCancel, -1, func(m *interact.Machine) error {
		return m.Cancel()
	})
}

// Done commits the edit buffer as the selected card's value.
func (c *Controller) Done() (Frame, error) {
	return c.interact(ActionDone, -1, func(m *interact.Machine) error {
		return m.Done(c.cards)
	})
}

// interact applies one gesture step under the lock and publishes the
// result. id is the card named by the step, or -1 for the active target.
func (c *Controller) interact(action string, id int, step func(*interact.Machine) error) (Frame, error) {
	c.mu.Lock()
	if id < 0 {
		if t, ok := c.machine.Target(); ok {
			id = t
		}
	}
	err := step(&c.machine)
	observability.Arrange().OnInteraction(c.ctx, action, id, err)
	if err != nil {
		c.logger.Debug("Gesture rejected", "action", action, "card", id, "err", err)
		c.mu.Unlock()
		return Frame{}, err
	}
	c.logger.Debug("Gesture", "action", action, "card", id, "state", c.machine.String())
	f := c.publish(c.snapshot(TriggerInteract, action, nil))
	c.mu.Unlock()

	c.emit(f)
	return f, nil
}
