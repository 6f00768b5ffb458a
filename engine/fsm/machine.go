package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters initialID, running OnEnter for the chain from Root to the leaf
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}
	if node.Path == nil {
		return fmt.Errorf("paths not compiled")
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		for _, action := range m.nodes[id].OnEnter {
			action.Func(ctx, action.Args)
		}
	}
	return nil
}

// Update evaluates transitions, then runs OnUpdate for the resulting leaf
// Transitions bubble from the leaf to the root; the first passing guard wins.
// When nothing matches the active state is kept.
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	if target, ok := m.evaluate(ctx); ok {
		m.TransitionTo(ctx, target)
	}

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action.Func(ctx, action.Args)
	}
}

func (m *Machine[T]) evaluate(ctx T) (StateID, bool) {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Guard == nil || trans.Guard(ctx) {
				return trans.TargetID, true
			}
		}
		currID = node.ParentID
	}
	return StateNone, false
}

// TransitionTo moves to targetID running OnExit up to and OnEnter down from
// the lowest common ancestor. Targeting the active state is a no-op.
func (m *Machine[T]) TransitionTo(ctx T, targetID StateID) {
	if targetID == m.activeStateID {
		return
	}
	target, ok := m.nodes[targetID]
	if !ok {
		return
	}

	lca := 0
	for lca < len(m.activePath) && lca < len(target.Path) && m.activePath[lca] == target.Path[lca] {
		lca++
	}

	for i := len(m.activePath) - 1; i >= lca; i-- {
		for _, action := range m.nodes[m.activePath[i]].OnExit {
			action.Func(ctx, action.Args)
		}
	}

	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], target.Path...)

	for i := lca; i < len(m.activePath); i++ {
		for _, action := range m.nodes[m.activePath[i]].OnEnter {
			action.Func(ctx, action.Args)
		}
	}
}

// Reset returns to the initial state without running lifecycle actions
func (m *Machine[T]) Reset() {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return
	}
	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)
}

// Current returns the active leaf state
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// TimeInState returns time elapsed since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// StateName returns the node name, or "" for unknown IDs
func (m *Machine[T]) StateName(id StateID) string {
	if n, ok := m.nodes[id]; ok {
		return n.Name
	}
	return ""
}
