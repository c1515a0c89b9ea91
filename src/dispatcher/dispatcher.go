// Package dispatcher picks the elevator that should serve a request.
// It only reads the fleet it is given and never mutates it.
package dispatcher

import (
	"log/slog"

	"elevbank/src/types"
)

// Select returns the id of the elevator that should serve request.
// ok is false when no elevator is eligible; the caller drops the request.
func Select(request types.Request, fleet []types.Elevator) (id int, ok bool) {
	var best cost
	for _, elevator := range fleet {
		if !Eligible(elevator, request) {
			continue
		}
		c := costOf(elevator, request)
		if !ok || c.less(best) {
			best = c
			ok = true
		}
	}
	if !ok {
		slog.Debug("No eligible elevator", "origin", request.OriginFloor, "direction", request.Direction)
		return 0, false
	}
	slog.Debug("Selected elevator", "id", best.id, "group", best.group, "distance", best.distance)
	return best.id, true
}

// Eligible reports whether elevator can take request without leaving the span it is already committed to.
// Idle elevators can take anything. A moving elevator must still pass the origin floor.
func Eligible(elevator types.Elevator, request types.Request) bool {
	lowest, highest, busy := elevator.Span()
	if !busy {
		return true
	}
	origin := request.OriginFloor
	switch elevator.Direction {
	case types.Up:
		return elevator.CurrentFloor <= origin && origin <= highest
	case types.Down:
		return lowest <= origin && origin <= elevator.CurrentFloor
	default:
		return false
	}
}
