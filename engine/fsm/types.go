package fsm

import (
	"time"
)

// StateID identifies a node; StateNone terminates parent chains
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is a hierarchical state machine over context type T
// Build with AddState/AddTransition, then CompilePaths and Init.
type Machine[T any] struct {
	nodes map[StateID]*Node[T] // fixed once paths are compiled

	InitialStateID StateID // target of Reset

	activeStateID StateID
	timeInState   time.Duration
	activePath    []StateID // root first, active leaf last
}

// Node is one state. Transitions are tried in order and bubble up to the
// parent when none pass.
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	Path []StateID // root to this node, filled by CompilePaths

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	Transitions []Transition[T]
}

// Transition moves to TargetID when Guard passes; a nil Guard always passes
type Transition[T any] struct {
	TargetID StateID
	Guard    GuardFunc[T]
}

// Action pairs a callback with its fixed argument
type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

type GuardFunc[T any] func(ctx T) bool

type ActionFunc[T any] func(ctx T, args any)
