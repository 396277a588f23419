package api

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ironsheep/notesplit/internal/pipeline"
	"github.com/ironsheep/notesplit/internal/session"
)

// handleFile serves a session file and deletes it afterwards unless
// keep=true is given.
func (h *Handler) handleFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session")
	name := chi.URLParam(r, "name")
	keep := valueBool(r, "keep")

	path, err := h.store.File(id, name)
	if err != nil {
		writeError(w, http.StatusNotFound, CodeFileNotFound, "File not found", err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeError(w, http.StatusNotFound, CodeFileNotFound, "File not found", err)
		return
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		writeError(w, http.StatusInternalServerError, CodeProcessingError, "Failed to read file", err)
		return
	}

	w.Header().Set("Content-Type", contentType(name))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if !keep {
		w.Header().Set("X-Auto-Deleted", "true")
	}

	http.ServeContent(w, r, name, st.ModTime(), f)
	f.Close()

	if keep {
		return
	}
	if err := h.store.RemoveFile(id, name); err != nil {
		h.logger.Warn("failed to delete downloaded file", "session", id, "file", name, "error", err)
	}
}

func (h *Handler) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "session")
	info, err := h.store.Info(id)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	resp := SessionInfoResponse{Info: info}
	if path, err := h.store.File(id, pipeline.ManifestName); err == nil {
		m, err := pipeline.ReadManifest(path)
		if err != nil {
			h.logger.Warn("failed to read session manifest", "session", id, "error", err)
		} else {
			resp.Summary = &m.Summary
		}
	}
	writeJson(w, http.StatusOK, resp)
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Delete(chi.URLParam(r, "session"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJson(w, http.StatusOK, CleanupResponse{
		Success:      true,
		FilesDeleted: c.Files,
		BytesFreed:   c.Bytes,
	})
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrInvalidID) {
		writeError(w, http.StatusNotFound, CodeSessionNotFound, "Session not found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, CodeProcessingError, "Session operation failed", err)
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}
