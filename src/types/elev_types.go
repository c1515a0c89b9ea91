package types

import (
	"encoding/json"
	"fmt"
)

// Elevator is the state of one car in the bank.
type Elevator struct {
	ID           int       `json:"id"`
	CurrentFloor int       `json:"currentFloor"`
	Direction    Direction `json:"direction"`
	Destinations []int     `json:"destinations"`
	Status       Status    `json:"status"`
}

// Busy reports whether the elevator still has floors to visit.
func (e Elevator) Busy() bool {
	return len(e.Destinations) > 0
}

// HasDestination reports whether floor is already queued.
func (e Elevator) HasDestination(floor int) bool {
	for _, f := range e.Destinations {
		if f == floor {
			return true
		}
	}
	return false
}

// Span returns the lowest and highest queued floor. ok is false for an empty queue.
func (e Elevator) Span() (lowest, highest int, ok bool) {
	if len(e.Destinations) == 0 {
		return 0, 0, false
	}
	lowest, highest = e.Destinations[0], e.Destinations[0]
	for _, f := range e.Destinations[1:] {
		lowest = min(lowest, f)
		highest = max(highest, f)
	}
	return lowest, highest, true
}

// UpdateDirection recomputes Direction from the head of the queue.
// A head equal to the current floor keeps the previous travel direction until the stop is popped,
// or reports Up if the elevator had none.
func (e *Elevator) UpdateDirection() {
	if len(e.Destinations) == 0 {
		e.Direction = Idle
		return
	}
	switch head := e.Destinations[0]; {
	case head > e.CurrentFloor:
		e.Direction = Up
	case head < e.CurrentFloor:
		e.Direction = Down
	case e.Direction == Idle:
		e.Direction = Up
	}
}

func (e Elevator) String() string {
	return fmt.Sprintf("Elevator(%d @%d %s %v)", e.ID, e.CurrentFloor, e.Direction, e.Destinations)
}

// Request asks for a ride from OriginFloor to DestinationFloor.
// Direction is the caller's intent and only biases dispatch.
type Request struct {
	OriginFloor      int       `json:"originFloor"`
	DestinationFloor int       `json:"destinationFloor"`
	Direction        Direction `json:"direction"`
}

type Direction int

const (
	Idle Direction = iota
	Up
	Down
)

var directionNames = [...]string{
	Idle: "Idle",
	Up:   "Up",
	Down: "Down",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(directionNames) {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON accepts either a direction name or its number (0 Idle, 1 Up, 2 Down).
func (d *Direction) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 || n >= len(directionNames) {
			return fmt.Errorf("invalid direction %d", n)
		}
		*d = Direction(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("direction must be a name or a number: %w", err)
	}
	return d.UnmarshalText([]byte(name))
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return Idle, fmt.Errorf("unknown direction %q", s)
}

type Status string

const (
	Online Status = "Online"
)
