package service

import (
	"encoding/json"
	"net/http"

	"github.com/Demigod345/privatefeedback-go/pkg/types"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeFailure maps a pipeline error onto the wire: client-facing kinds get
// a 400 with their message, everything else collapses to a generic 500. The
// specific kind always lands in the log, never in the internal-error body.
func (s *Server) writeFailure(w http.ResponseWriter, requestID string, err error) {
	kind := types.KindOf(err)
	s.logger.Sugar().Errorw("Request failed",
		"request_id", requestID,
		"kind", string(kind),
		"error", err,
	)

	if kind.ClientFacing() {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
}

// handleInteraction handles the /interaction endpoint for interaction claims
func (s *Server) handleInteraction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	requestID := uuid.NewString()

	var claim types.InteractionClaim
	if err := json.NewDecoder(r.Body).Decode(&claim); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "Failed to parse request body"})
		return
	}

	if err := s.service.SubmitInteraction(r.Context(), requestID, &claim); err != nil {
		s.writeFailure(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AckResponse{Message: "Email sent successfully"})
}

// handleDisclosure handles the /mail endpoint for attestation disclosure
func (s *Server) handleDisclosure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	requestID := uuid.NewString()

	var req types.DisclosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "Failed to parse request body"})
		return
	}

	if err := s.service.RequestDisclosure(r.Context(), requestID, req.AttestationUID); err != nil {
		s.writeFailure(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AckResponse{Message: "Email sent successfully"})
}

// handleHealth reports readiness of the chain, gateway and mail collaborators.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.service.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, types.ErrorResponse{Error: "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, types.AckResponse{Message: "ok"})
}
