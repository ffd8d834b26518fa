package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/huntmaster/hunt-services/internal/huntsvc/evidence"
)

// UploadEvidenceHandler pushes each uploaded file to the external evidence
// store and returns a URL (or error) per file. Partial success is fine; the
// client attaches whatever URLs came back to its submission.
func (h *Handler) UploadEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := h.callerID(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}

	// 32 MB in memory, the rest spills to disk
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "invalid multipart form"})
		return
	}

	teamID := r.FormValue("team_id")
	clueIndex, err := strconv.Atoi(r.FormValue("clue_index"))
	if err != nil || teamID == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "team_id and clue_index are required"})
		return
	}

	// Caller must own the team before we spend bandwidth on its behalf.
	if _, err := h.teams.GetTeam(r.Context(), teamID, userID); err != nil {
		h.writeError(w, err)
		return
	}

	files := map[string]io.Reader{}
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			closers = append(closers, f)
			files[fh.Filename] = f
		}
	}
	if len(files) == 0 {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "no files attached"})
		return
	}

	results := evidence.UploadAll(r.Context(), h.uploader, teamID, clueIndex, files)
	h.CreateResponse(w, Response{Code: http.StatusOK, Data: results})
}
