package http

import (
	"net/http"

	"spendwise/internal/log"
)

// handleDashboard returns the summary for ?year=&month= (default: this
// month) or for all time with ?period=all.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	params, err := ParseMonthParams(r.URL.Query(), s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	d, err := s.svc.Dashboard(r.Context(), params.Year, params.Month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).DebugContext(r.Context(), "Dashboard served",
		log.FieldYear, params.Year,
		log.FieldMonth, params.Month,
		log.FieldAmountCents, d.TotalExpenses.Cents)
	writeJSON(w, http.StatusOK, newDashboardView(params, d))
}

// handleSplitPreview computes the shares a group payment would get.
func (s *Server) handleSplitPreview(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	split, err := req.toSplit()
	if err != nil {
		writeError(w, r, err)
		return
	}
	parts, err := s.svc.PreviewSplit(split)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"split_type":   split.Type,
		"total_amount": newMoneyView(split.Total),
		"participants": newParticipantViews(parts),
	})
}
