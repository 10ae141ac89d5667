package http

import (
	"fmt"
	"net/http"
	"strings"

	"spendwise/internal/core"
)

// handleListFriendPayments lists payments, optionally filtered by ?direction=.
func (s *Server) handleListFriendPayments(w http.ResponseWriter, r *http.Request) {
	var dir core.Direction
	if v := strings.TrimSpace(r.URL.Query().Get("direction")); v != "" {
		d, err := core.ParseDirection(v)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", ErrMalformedRequest, err))
			return
		}
		dir = d
	}
	items, err := s.svc.ListFriendPayments(r.Context(), dir)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(items, newFriendPaymentView))
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	b, err := s.svc.Balances(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newBalancesView(b))
}

func (s *Server) handleCreateFriendPayment(w http.ResponseWriter, r *http.Request) {
	var req friendPaymentRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := req.toPayment()
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.AddFriendPayment(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/friend-payments/"+created.ID).
		Data(newFriendPaymentView(created)).
		Write(w)
}

func (s *Server) handleUpdateFriendPayment(w http.ResponseWriter, r *http.Request) {
	var req friendPaymentRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := req.toPayment()
	if err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.svc.UpdateFriendPayment(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newFriendPaymentView(updated))
}

func (s *Server) handleDeleteFriendPayment(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteFriendPayment(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}

// handleToggleFriendPayment flips the settled flag.
func (s *Server) handleToggleFriendPayment(w http.ResponseWriter, r *http.Request) {
	updated, err := s.svc.ToggleFriendPayment(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newFriendPaymentView(updated))
}
