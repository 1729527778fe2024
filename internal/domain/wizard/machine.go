package wizard

import (
	"context"
	"fmt"
)

// GuardFunc evaluates whether a transition should be allowed
type GuardFunc func(ctx context.Context) bool

// Machine tracks the current wizard state and validates transitions
// against a fixed transition table.
type Machine struct {
	current     State
	transitions map[State]map[Trigger]transition
}

type transition struct {
	toState State
	guard   GuardFunc
}

// Builder assembles the transition table for a Machine
type Builder struct {
	transitions map[State]map[Trigger]transition
}

// NewBuilder creates an empty transition-table builder
func NewBuilder() *Builder {
	return &Builder{
		transitions: make(map[State]map[Trigger]transition),
	}
}

// Permit allows a trigger to transition from one state to another
func (b *Builder) Permit(from State, trigger Trigger, to State) *Builder {
	return b.PermitIf(from, trigger, to, nil)
}

// PermitIf allows a trigger to transition if the guard condition passes.
// A failed guard holds the machine in place.
func (b *Builder) PermitIf(from State, trigger Trigger, to State, guard GuardFunc) *Builder {
	if !from.IsValid() {
		panic(fmt.Sprintf("invalid source state: %s", from))
	}
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", to))
	}
	if from.IsTerminal() {
		panic(fmt.Sprintf("cannot transition out of terminal state: %s", from))
	}

	row, ok := b.transitions[from]
	if !ok {
		row = make(map[Trigger]transition)
		b.transitions[from] = row
	}
	row[trigger] = transition{toState: to, guard: guard}
	return b
}

// Build creates a Machine starting at the given initial state.
// The builder's table is copied so later builder mutations do not leak in.
func (b *Builder) Build(initial State) *Machine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initial))
	}

	table := make(map[State]map[Trigger]transition, len(b.transitions))
	for state, row := range b.transitions {
		rowCopy := make(map[Trigger]transition, len(row))
		for trigger, t := range row {
			rowCopy[trigger] = t
		}
		table[state] = rowCopy
	}

	return &Machine{current: initial, transitions: table}
}

// State returns the current state
func (m *Machine) State() State {
	return m.current
}

// CanFire returns true if the trigger has a configured transition in the current state
func (m *Machine) CanFire(trigger Trigger) bool {
	row, ok := m.transitions[m.current]
	if !ok {
		return false
	}
	_, ok = row[trigger]
	return ok
}

// Fire attempts to execute the trigger, moving to the target state if allowed
func (m *Machine) Fire(ctx context.Context, trigger Trigger) error {
	row, ok := m.transitions[m.current]
	if !ok {
		return fmt.Errorf("%w: trigger %s from state %s", ErrInvalidTransition, trigger, m.current)
	}

	t, ok := row[trigger]
	if !ok {
		return fmt.Errorf("%w: trigger %s from state %s", ErrInvalidTransition, trigger, m.current)
	}

	if t.guard != nil && !t.guard(ctx) {
		return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.current)
	}

	m.current = t.toState
	return nil
}

// Reset moves the machine back to the given state regardless of the table.
// Used when the form reopens for a fresh record.
func (m *Machine) Reset(state State) {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid reset state: %s", state))
	}
	m.current = state
}

// PermittedTriggers returns all triggers configured for the current state
func (m *Machine) PermittedTriggers() []Trigger {
	row, ok := m.transitions[m.current]
	if !ok {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(row))
	for trigger := range row {
		triggers = append(triggers, trigger)
	}
	return triggers
}
