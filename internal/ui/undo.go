package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wanderdesk/internal/model"
)

type undoAction struct {
	label  string
	screen model.Screen
	undo   func(ctx context.Context) error
	redo   func(ctx context.Context) error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

// undoTimeout bounds the request an undo or redo sends.
const undoTimeout = 15 * time.Second

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return runUndo(action, action.undo, "undo")
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return runUndo(action, action.redo, "redo")
}

func runUndo(action undoAction, fn func(ctx context.Context) error, direction string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), undoTimeout)
		defer cancel()
		return undoAppliedMsg{err: fn(ctx), action: action, direction: direction}
	}
}

// buildStatusAction records a successful delete, restore or toggle. Undo
// sends the inverse status; redo sends the original again.
func (m *Model) buildStatusAction(msg model.StatusChangedMsg) undoAction {
	desc := screenFor(msg.Screen)
	backend := m.backend
	send := func(active bool) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			var err error
			if msg.Toggle {
				_, err = backend.ToggleStatus(ctx, desc.resource, msg.ID, active)
			} else {
				_, err = backend.SetActive(ctx, desc.resource, msg.ID, active)
			}
			return err
		}
	}
	verb := "deleted"
	if msg.Active {
		verb = "restored"
	}
	if msg.Toggle {
		verb = "status changed"
	}
	return undoAction{
		label:  fmt.Sprintf("%s %q %s", desc.resource.Label, msg.Name, verb),
		screen: msg.Screen,
		undo:   send(!msg.Active),
		redo:   send(msg.Active),
	}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		// the action is dropped; a failed inverse leaves the server state unknown
		return m.notify(model.NoticeError, fmt.Sprintf("%s failed: %v", msg.direction, msg.err))
	}

	var text string
	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		text = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		text = "Redid: " + msg.action.label
	}
	return tea.Batch(m.notify(model.NoticeSuccess, text), m.reloadCmd(msg.action.screen))
}
