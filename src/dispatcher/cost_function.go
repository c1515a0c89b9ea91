package dispatcher

import (
	"elevbank/src/types"
)

// group orders the preference classes of eligible elevators. Lower is better.
type group int

const (
	sameDirection group = iota
	idle
	other
)

// cost ranks one eligible elevator for a request. Fields are compared in declaration order.
type cost struct {
	group        group
	queueLen     int
	distance     int
	destDistance int
	id           int
}

// costOf is called for every eligible elevator
//   - elevators already travelling in the requested direction come first
//   - then idle elevators
//   - the rest are ranked by how many stops they still owe before distance
//   - equal distances to the origin fall back to distance to the destination, then to the lowest id
func costOf(elevator types.Elevator, request types.Request) cost {
	c := cost{
		distance:     abs(elevator.CurrentFloor - request.OriginFloor),
		destDistance: abs(elevator.CurrentFloor - request.DestinationFloor),
		id:           elevator.ID,
	}
	switch {
	case !elevator.Busy():
		c.group = idle
	case request.Direction != types.Idle && elevator.Direction == request.Direction:
		c.group = sameDirection
	default:
		c.group = other
		c.queueLen = len(elevator.Destinations)
	}
	return c
}

func (c cost) less(o cost) bool {
	if c.group != o.group {
		return c.group < o.group
	}
	if c.queueLen != o.queueLen {
		return c.queueLen < o.queueLen
	}
	if c.distance != o.distance {
		return c.distance < o.distance
	}
	if c.destDistance != o.destDistance {
		return c.destDistance < o.destDistance
	}
	return c.id < o.id
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
