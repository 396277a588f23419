package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/notesplit/internal/config"
	"github.com/ironsheep/notesplit/internal/imaging"
	"github.com/ironsheep/notesplit/internal/pipeline"
)

// InputName is the file name of the uploaded page inside a session.
const InputName = "input.png"

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit := int64(h.cfg.API.MaxFileSizeMB) << 20

	// room for the other form fields
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeFileTooLarge, "File too large",
				fmt.Errorf("maximum file size is %d MB", h.cfg.API.MaxFileSizeMB))
			return
		}
		writeError(w, http.StatusBadRequest, CodeInvalidFileFormat, "Invalid upload", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidFileFormat, "Missing file", err)
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeError(w, http.StatusBadRequest, CodeInvalidFileFormat, "File must be an image",
			fmt.Errorf("received content type %q", header.Header.Get("Content-Type")))
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".png") {
		writeError(w, http.StatusBadRequest, CodeInvalidFileFormat, "Only PNG files are supported",
			fmt.Errorf("received %q", header.Filename))
		return
	}
	if header.Size > limit {
		writeError(w, http.StatusRequestEntityTooLarge, CodeFileTooLarge, "File too large",
			fmt.Errorf("maximum file size is %d MB", h.cfg.API.MaxFileSizeMB))
		return
	}

	debug := valueBool(r, "debug")

	cfg, err := h.cfg.WithOverrides([]byte(r.FormValue("config")))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidConfig, "Invalid configuration", err)
		return
	}

	id, dir, err := h.store.Create()
	if err != nil {
		writeError(w, http.StatusInternalServerError, CodeProcessingError, "Processing failed", err)
		return
	}
	logger := h.logger.With("session", id)

	manifest, err := h.process(r.Context(), file, dir, cfg, debug)
	if err != nil {
		if _, derr := h.store.Delete(id); derr != nil {
			logger.Warn("failed to remove session", "error", derr)
		}
		if errors.Is(err, imaging.ErrNotPNG) {
			writeError(w, http.StatusBadRequest, CodeInvalidFileFormat, "Only PNG files are supported", err)
			return
		}
		logger.Error("extraction failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeProcessingError, "Processing failed", err)
		return
	}

	if c, err := h.store.EnforceLimit(); err != nil {
		logger.Warn("session limit cleanup incomplete", "error", err)
	} else if c.Sessions > 0 {
		logger.Info("removed old sessions", "sessions", c.Sessions)
	}

	resp := ExtractionResponse{
		Success:        true,
		ProcessingTime: math.Round(time.Since(start).Seconds()*100) / 100,
		SessionID:      id,
		Manifest:       manifest,
		Diagrams:       []DiagramFile{},
	}
	for _, d := range manifest.Diagrams {
		if !d.Extracted {
			continue
		}
		resp.Diagrams = append(resp.Diagrams, DiagramFile{
			ID:         d.ID,
			Filename:   d.File,
			BBox:       d.BBox,
			Confidence: d.Confidence,
			URL:        fileURL(id, d.File),
		})
	}
	for _, name := range manifest.DebugImages {
		resp.DebugImages = append(resp.DebugImages, DebugImage{
			Name: name,
			URL:  fileURL(id, name),
		})
	}

	logger.Info("extraction complete", "diagrams", len(resp.Diagrams), "debug", debug)
	writeJson(w, http.StatusOK, resp)
}

// process stores the upload in dir and runs the pipeline there under the
// processing timeout.
func (h *Handler) process(ctx context.Context, src io.Reader, dir string, cfg *config.Config, debug bool) (*pipeline.Manifest, error) {
	input := filepath.Join(dir, InputName)

	f, err := os.Create(input)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if cfg.API.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	p := pipeline.New(cfg, nil, h.logger.With("component", "pipeline"))
	m, err := p.Run(ctx, input, dir, pipeline.RunOptions{Debug: debug})
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("processing timed out after %d seconds", cfg.API.TimeoutSeconds)
	}
	return m, err
}

func fileURL(session, name string) string {
	return "/api/v1/files/" + session + "/" + name
}

func valueBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.FormValue(key))
	return err == nil && v
}
