package form

import "github.com/aretw0/espalier/pkg/domain"

// Event is the payload passed to hook listeners. It carries the node being
// processed and the in-flight value; listeners at the pre and normalize
// stages may replace the value with SetValue, the post stages ignore
// replacements.
type Event struct {
	node  *Node
	stage domain.Stage
	value domain.Value
}

// Node returns the node the pipeline is processing.
func (e *Event) Node() *Node { return e.node }

// Stage returns the stage the event fired at.
func (e *Event) Stage() domain.Stage { return e.stage }

// Value returns the current in-flight value.
func (e *Event) Value() domain.Value { return e.value }

// SetValue replaces the in-flight value for the remainder of the pipeline.
func (e *Event) SetValue(v domain.Value) { e.value = v }

// Listener is a hook invoked at a pipeline stage. Listeners run
// synchronously, in registration order, on the calling goroutine.
type Listener func(e *Event)

// dispatch fires the listeners registered for stage and returns the possibly
// replaced value. Stages without listeners return v untouched.
func (n *Node) dispatch(stage domain.Stage, v domain.Value) domain.Value {
	listeners := n.config.listeners[stage]
	if len(listeners) == 0 {
		return v
	}
	e := &Event{node: n, stage: stage, value: v}
	for _, l := range listeners {
		l(e)
	}
	return e.value
}
