// Package executor advances the simulated fleet by one tick.
package executor

import (
	"fmt"
	"log/slog"

	"github.com/tiendc/go-deepcopy"

	"elevbank/src/types"
)

// Step returns the fleet one tick later together with the floors where an elevator arrived.
//   - the input is deep-copied first, so every elevator is advanced from the state at tick start
//   - elevators are independent; the order of the slice does not affect the result
func Step(fleet []types.Elevator) ([]types.Elevator, []int, error) {
	next := make([]types.Elevator, 0, len(fleet))
	if err := deepcopy.Copy(&next, fleet); err != nil {
		return nil, nil, fmt.Errorf("copy fleet: %w", err)
	}

	var arrivals []int
	for i := range next {
		if floor, arrived := stepElevator(&next[i]); arrived {
			arrivals = append(arrivals, floor)
		}
	}
	return next, arrivals, nil
}

// stepElevator moves one elevator a single floor towards the head of its queue.
// The head is popped in the same tick the elevator reaches it, or right away if it was already there.
func stepElevator(elevator *types.Elevator) (floor int, arrived bool) {
	if !elevator.Busy() {
		elevator.Direction = types.Idle
		return 0, false
	}

	target := elevator.Destinations[0]
	switch {
	case elevator.CurrentFloor < target:
		elevator.CurrentFloor++
		elevator.Direction = types.Up
	case elevator.CurrentFloor > target:
		elevator.CurrentFloor--
		elevator.Direction = types.Down
	}
	if elevator.CurrentFloor != target {
		return 0, false
	}

	elevator.Destinations = elevator.Destinations[1:]
	if len(elevator.Destinations) == 0 {
		elevator.Destinations = nil
	}
	elevator.UpdateDirection()
	slog.Debug("Elevator arrived", "id", elevator.ID, "floor", target, "remaining", elevator.Destinations)
	return target, true
}
