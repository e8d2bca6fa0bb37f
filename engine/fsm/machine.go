package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/honly-helper/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:      make(map[StateID]*Node[T]),
		activePath: make([]StateID, 0, 4),
	}
}

// Init enters InitialStateID, running OnEnter from Root down to the initial leaf
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	if len(node.Path) == 0 {
		return fmt.Errorf("paths not compiled")
	}

	m.activeStateID = m.InitialStateID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	m.transitioning = true
	for _, id := range m.activePath {
		if n, exists := m.nodes[id]; exists {
			for _, action := range n.OnEnter {
				action.Func(ctx, action.Args)
			}
		}
	}
	m.transitioning = false
	return nil
}

// Update advances the FSM by delta time
// Runs OnUpdate of the active leaf, then at most one tick transition (Event == 0), bubbling up
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	leaf := m.nodes[m.activeStateID]
	for _, action := range leaf.OnUpdate {
		action.Func(ctx, action.Args)
	}

	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == 0 {
				if trans.Guard == nil || trans.Guard(ctx) {
					m.transition(ctx, trans.TargetID)
					return
				}
			}
		}
		currID = node.ParentID
	}
}

// HandleEvent routes an external event, bubbling Leaf -> Parent -> Root
// The transition, including all exit and enter actions, completes before return
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone || eventType == 0 {
		return false
	}

	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for _, trans := range node.Transitions {
			if trans.Event == eventType {
				if trans.Guard == nil || trans.Guard(ctx) {
					m.transition(ctx, trans.TargetID)
					return true
				}
			}
		}
		currID = node.ParentID
	}

	return false
}

// transition performs state change: exit up to the LCA, enter down to the target
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	if m.transitioning {
		panic(fmt.Sprintf("FSM: re-entrant transition to state ID %d", targetID))
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	m.transitioning = true
	defer func() { m.transitioning = false }()

	// Find LCA; a self-transition re-enters the leaf
	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path

	minLen := len(currentPath)
	if len(targetPath) < minLen {
		minLen = len(targetPath)
	}
	for i := 0; i < minLen; i++ {
		if currentPath[i] == targetPath[i] {
			lcaIndex = i
		} else {
			break
		}
	}
	if targetID == m.activeStateID {
		lcaIndex = len(targetPath) - 2
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		if node, exists := m.nodes[currentPath[i]]; exists {
			for _, action := range node.OnExit {
				action.Func(ctx, action.Args)
			}
		}
	}

	// Commit before entering so enter actions observe the new state
	m.activeStateID = targetID
	m.timeInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		if node, exists := m.nodes[targetPath[i]]; exists {
			for _, action := range node.OnEnter {
				action.Func(ctx, action.Args)
			}
		}
	}
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.activeStateID != StateNone {
		m.transitioning = true
		for i := len(m.activePath) - 1; i >= 0; i-- {
			if node, ok := m.nodes[m.activePath[i]]; ok {
				for _, action := range node.OnExit {
					action.Func(ctx, action.Args)
				}
			}
		}
		m.transitioning = false
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// ActiveState returns the current leaf state
func (m *Machine[T]) ActiveState() StateID {
	return m.activeStateID
}

// ActiveStateName returns the current leaf name
func (m *Machine[T]) ActiveStateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// InState reports whether id is on the active path (leaf or ancestor)
func (m *Machine[T]) InState(id StateID) bool {
	for _, a := range m.activePath {
		if a == id {
			return true
		}
	}
	return false
}

// TimeInState returns time spent in the current leaf
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// StateName resolves a state ID to its name
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}
