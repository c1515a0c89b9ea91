// State types are defined in elev package to make method receivers possible in elev_state.go.
package elev

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"elevbank/src/registry"
	"elevbank/src/types"
)

// ErrStopped is returned by every operation issued after Close.
var ErrStopped = errors.New("elevator system stopped")

// ElevStateCmd is executed by the state manager goroutine with exclusive access to the fleet.
type ElevStateCmd struct {
	Exec func(fleet []types.Elevator) []types.Elevator
}

// System owns the fleet and the floor registry.
// All fleet access is serialized through the Cmds channel.
type System struct {
	Cmds     chan ElevStateCmd
	registry *registry.FloorRegistry

	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Assignment describes where a submitted request went.
type Assignment struct {
	RequestID  uuid.UUID
	ElevatorID int
	Enqueued   []int
}
