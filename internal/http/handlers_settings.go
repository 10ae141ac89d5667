package http

import (
	"net/http"

	"spendwise/internal/core"
)

// settingsKind resolves the {kind} path segment; unknown lists are 404.
func settingsKind(r *http.Request) (core.ListKind, error) {
	return core.ParseListKind(r.PathValue("kind"))
}

func newSettingView(i core.SettingsItem) settingView {
	return settingView{ID: i.ID, Name: i.Name}
}

func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	kind, err := settingsKind(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	items, err := s.svc.ListSettings(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapViews(items, newSettingView))
}

func (s *Server) handleCreateSetting(w http.ResponseWriter, r *http.Request) {
	kind, err := settingsKind(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req settingRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := s.svc.AddSetting(r.Context(), kind, sanitizeInput(req.Name))
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/settings/"+string(kind)+"/"+item.ID).
		Data(newSettingView(item)).
		Write(w)
}

func (s *Server) handleRenameSetting(w http.ResponseWriter, r *http.Request) {
	kind, err := settingsKind(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req settingRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	item, err := s.svc.RenameSetting(r.Context(), kind, r.PathValue("id"), sanitizeInput(req.Name))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSettingView(item))
}

func (s *Server) handleDeleteSetting(w http.ResponseWriter, r *http.Request) {
	kind, err := settingsKind(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.DeleteSetting(r.Context(), kind, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
