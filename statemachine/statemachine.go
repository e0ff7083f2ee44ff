package statemachine

import (
	"fmt"
	"strings"
)

// Transition defines a valid state change
type Transition[S ~string] struct {
	From S `json:"from"`
	To   S `json:"to"`
}

// Machine is an explicit transition table over a closed set of states.
type Machine[S ~string] struct {
	name        string
	transitions []Transition[S]
	allowed     map[Transition[S]]bool
}

func newMachine[S ~string](name string, transitions []Transition[S]) *Machine[S] {
	m := &Machine[S]{name: name, transitions: transitions, allowed: make(map[Transition[S]]bool)}
	for _, t := range transitions {
		m.allowed[t] = true
	}
	return m
}

// ValidTransitionsFrom returns all valid next states from a given state
func (m *Machine[S]) ValidTransitionsFrom(from S) []S {
	var nexts []S
	for _, t := range m.transitions {
		if t.From == from {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

func (m *Machine[S]) IsTerminal(s S) bool {
	return len(m.ValidTransitionsFrom(s)) == 0
}

// CanTransition checks whether from → to is in the table
func (m *Machine[S]) CanTransition(from, to S) error {
	if m.allowed[Transition[S]{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("invalid %s transition: %s → %s. Valid transitions from %s are: %s",
		m.name, from, to, from, m.describeValidFrom(from))
}

func (m *Machine[S]) describeValidFrom(from S) string {
	nexts := m.ValidTransitionsFrom(from)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(nexts))
	for i, s := range nexts {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// Transitions returns the full table for documentation
func (m *Machine[S]) Transitions() []Transition[S] {
	return m.transitions
}

// TerminalStates lists the states that are reachable but have no way out.
func (m *Machine[S]) TerminalStates() []S {
	var out []S
	seen := map[S]bool{}
	for _, t := range m.transitions {
		if !seen[t.To] && m.IsTerminal(t.To) {
			seen[t.To] = true
			out = append(out, t.To)
		}
	}
	return out
}
