package api

import "net/http"

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.ProgressService.GetReport(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleRefreshProgress(w http.ResponseWriter, r *http.Request) {
	learnerID, err := learnerIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.ProgressService.RefreshReport(r.Context(), learnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
