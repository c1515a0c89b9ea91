package elev

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"elevbank/src/dispatcher"
	"elevbank/src/executor"
	"elevbank/src/registry"
	"elevbank/src/types"
)

// NewSystem builds count idle elevators with ids 1..count at groundFloor and starts the state manager.
func NewSystem(count, groundFloor int) *System {
	fleet := make([]types.Elevator, count)
	for i := range fleet {
		fleet[i] = types.Elevator{
			ID:           i + 1,
			CurrentFloor: groundFloor,
			Direction:    types.Idle,
			Status:       types.Online,
		}
	}
	slog.Debug("Fleet initialized", "elevators", count, "groundFloor", groundFloor)
	return start(fleet)
}

// NewSystemWithFleet starts a system from an explicit initial fleet.
// Direction is recomputed from each queue; the registry is seeded with every queued floor.
func NewSystemWithFleet(fleet []types.Elevator) (*System, error) {
	owned := make([]types.Elevator, 0, len(fleet))
	if err := deepcopy.Copy(&owned, fleet); err != nil {
		return nil, fmt.Errorf("copy initial fleet: %w", err)
	}
	seen := make(map[int]bool, len(owned))
	for i := range owned {
		if seen[owned[i].ID] {
			return nil, fmt.Errorf("duplicate elevator id %d", owned[i].ID)
		}
		seen[owned[i].ID] = true
		if !owned[i].Busy() {
			owned[i].Direction = types.Idle
		} else {
			owned[i].UpdateDirection()
		}
		owned[i].Status = types.Online
	}
	s := start(owned)
	for _, e := range owned {
		for _, f := range e.Destinations {
			s.registry.Add(f)
		}
	}
	return s, nil
}

func start(fleet []types.Elevator) *System {
	s := &System{
		Cmds:     make(chan ElevStateCmd),
		registry: registry.New(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for {
			select {
			case cmd := <-s.Cmds:
				fleet = cmd.Exec(fleet)
			case <-s.quit:
				return
			}
		}
	}()
	return s
}

// Close stops the state manager. It waits for a command already being executed to finish.
func (s *System) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

// exec runs fn on the state manager goroutine and waits for it to return.
// fn works on a copy of the fleet that replaces the current one only when fn returns normally.
// A panic inside fn is returned as an error and leaves both the fleet and the manager intact.
func (s *System) exec(fn func(fleet []types.Elevator) []types.Elevator) error {
	result := make(chan error, 1)
	cmd := ElevStateCmd{
		Exec: func(fleet []types.Elevator) (next []types.Elevator) {
			next = fleet
			var err error
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("state command panicked: %v", r)
				}
				result <- err
			}()
			work := make([]types.Elevator, 0, len(fleet))
			if err = deepcopy.Copy(&work, fleet); err != nil {
				err = fmt.Errorf("copy fleet: %w", err)
				return fleet
			}
			return fn(work)
		},
	}
	select {
	case s.Cmds <- cmd:
	case <-s.quit:
		return ErrStopped
	}
	return <-result
}

// Submit assigns request to an elevator and queues its stops.
// ok is false when no elevator was eligible; the request is dropped.
func (s *System) Submit(request types.Request) (Assignment, bool, error) {
	assignment := Assignment{RequestID: uuid.New()}
	var ok bool
	err := s.exec(func(fleet []types.Elevator) []types.Elevator {
		id, found := dispatcher.Select(request, fleet)
		if !found {
			return fleet
		}
		elevator := findElevator(fleet, id)
		assignment.ElevatorID = id
		assignment.Enqueued = s.enqueue(elevator, request)
		ok = true
		return fleet
	})
	if err != nil {
		return Assignment{}, false, err
	}

	if !ok {
		slog.Warn("No elevator assigned",
			"requestID", assignment.RequestID,
			"origin", request.OriginFloor,
			"destination", request.DestinationFloor,
			"direction", request.Direction)
		return assignment, false, nil
	}
	slog.Info("Request added",
		"requestID", assignment.RequestID,
		"origin", request.OriginFloor,
		"destination", request.DestinationFloor,
		"direction", request.Direction,
		"elevator", assignment.ElevatorID,
		"enqueued", assignment.Enqueued)
	return assignment, true, nil
}

// enqueue appends the origin and destination of request to elevator's queue and registers them.
//   - floors already queued are not duplicated, but are registered again
//   - an elevator with an empty queue serves its current floor on the spot
//   - an elevator leaving idle heads the way the trip goes, origin to destination
func (s *System) enqueue(elevator *types.Elevator, request types.Request) []int {
	wasIdle := !elevator.Busy()
	var added []int
	for _, floor := range []int{request.OriginFloor, request.DestinationFloor} {
		if elevator.HasDestination(floor) {
			s.registry.Add(floor)
			continue
		}
		if !elevator.Busy() && floor == elevator.CurrentFloor {
			continue
		}
		elevator.Destinations = append(elevator.Destinations, floor)
		s.registry.Add(floor)
		added = append(added, floor)
	}
	switch {
	case !elevator.Busy():
		elevator.Direction = types.Idle
	case wasIdle && request.DestinationFloor > request.OriginFloor:
		elevator.Direction = types.Up
	case wasIdle && request.DestinationFloor < request.OriginFloor:
		elevator.Direction = types.Down
	case wasIdle:
		elevator.UpdateDirection()
	}
	return added
}

// Tick advances every elevator by one step.
func (s *System) Tick() error {
	var stepErr error
	err := s.exec(func(fleet []types.Elevator) []types.Elevator {
		next, arrivals, err := executor.Step(fleet)
		if err != nil {
			stepErr = err
			return fleet
		}
		for _, floor := range arrivals {
			s.registry.Remove(floor)
		}
		return next
	})
	if err != nil {
		return err
	}
	return stepErr
}

// Status returns a copy of every elevator in fleet order.
func (s *System) Status() ([]types.Elevator, error) {
	var snapshot []types.Elevator
	var copyErr error
	err := s.exec(func(fleet []types.Elevator) []types.Elevator {
		copyErr = deepcopy.Copy(&snapshot, fleet)
		return fleet
	})
	if err != nil {
		return nil, err
	}
	if copyErr != nil {
		return nil, fmt.Errorf("copy fleet: %w", copyErr)
	}
	for i := range snapshot {
		snapshot[i].Status = types.Online
		if snapshot[i].Destinations == nil {
			snapshot[i].Destinations = []int{}
		}
	}
	return snapshot, nil
}

// PendingFloors returns the floors that still have an unserved stop, ascending.
func (s *System) PendingFloors() []int {
	return s.registry.Sorted()
}

func findElevator(fleet []types.Elevator, id int) *types.Elevator {
	for i := range fleet {
		if fleet[i].ID == id {
			return &fleet[i]
		}
	}
	panic(fmt.Sprintf("elevator %d selected but not in fleet", id))
}
