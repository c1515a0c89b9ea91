package network

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"elevbank/src/elev"
	"elevbank/src/types"
)

const invalidRequest = "Invalid request"

type requestResponse struct {
	Message    string    `json:"message"`
	RequestID  uuid.UUID `json:"requestId"`
	ElevatorID int       `json:"elevatorId,omitempty"`
}

func statusHandler(bank Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fleet, err := bank.Status()
		if err != nil {
			writeBankError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, fleet)
	}
}

// requestHandler accepts a ride request. Requests nobody can take are still acknowledged, without an elevator id.
func requestHandler(bank Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request *types.Request
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request == nil {
			slog.Debug("Rejected request body", "error", err)
			http.Error(w, invalidRequest, http.StatusBadRequest)
			return
		}
		if request.DestinationFloor < 0 {
			slog.Debug("Rejected negative destination", "destination", request.DestinationFloor)
			http.Error(w, invalidRequest, http.StatusBadRequest)
			return
		}

		assignment, ok, err := bank.Submit(*request)
		if err != nil {
			writeBankError(w, err)
			return
		}
		response := requestResponse{Message: "Request added", RequestID: assignment.RequestID}
		if ok {
			response.ElevatorID = assignment.ElevatorID
		}
		writeJSON(w, http.StatusOK, response)
	}
}

func pendingFloorsHandler(bank Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bank.PendingFloors())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

func writeBankError(w http.ResponseWriter, err error) {
	if errors.Is(err, elev.ErrStopped) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	slog.Error("Elevator system error", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
