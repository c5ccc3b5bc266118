package scribe

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server exposes the pipeline and the transcription jobs over HTTP.
type Server struct {
	pipeline *Pipeline
	jobs     *JobStore
	log      *slog.Logger

	// allowedOrigins for CORS; the dev front-end origins by default.
	allowedOrigins []string
}

// NewServer wires the HTTP layer over an assembled pipeline and job store.
func NewServer(pipeline *Pipeline, jobs *JobStore, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		pipeline:       pipeline,
		jobs:           jobs,
		log:            log,
		allowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
}

// processRequest is the body of POST /api/transcript/process.
type processRequest struct {
	Transcript string `json:"transcript"`
	Options    struct {
		Method       string `json:"method"`
		MockResponse bool   `json:"mockResponse"`
	} `json:"options"`
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.cors)

	r.Route("/api/transcript", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Post("/transcribe", s.handleTranscribe)
		r.Get("/status/{processingID}", s.handleStatus)
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"service": "Medical AI Scribe",
			})
		})
		r.Get("/categories", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string][]string{"categories": Categories()})
		})
	})
	return r
}

// handleProcess extracts clinical data from a transcript. A missing
// transcript is the only transport-level rejection; pipeline failures come
// back as 200 with a success:false envelope, so HTTP status only reflects
// transport success.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid request body.",
			"code":  "BAD_REQUEST",
		})
		return
	}
	if req.Transcript == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing transcript text.",
			"code":  "MISSING_TRANSCRIPT",
		})
		return
	}

	optFns := []func(*Options){}
	if req.Options.Method != "" {
		optFns = append(optFns, WithMethod(req.Options.Method))
	}
	if req.Options.MockResponse {
		optFns = append(optFns, WithMockResponse())
	}

	outcome := s.pipeline.Process(r.Context(), req.Transcript, optFns...)
	writeJSON(w, http.StatusOK, outcome)
}

// handleTranscribe accepts a multipart audio upload, enforces the size cap
// before anything else, and queues an asynchronous transcription job.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+4096) // slack for the multipart envelope

	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.rejectUpload(w, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Missing audio file.",
			"code":  "MISSING_FILE",
		})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		s.rejectUpload(w, err)
		return
	}
	if _, err := ValidateAudio(audio); err != nil {
		s.rejectUpload(w, err)
		return
	}

	opts := TranscribeOptions{
		Language:                 r.FormValue("language"),
		DeleteAfterTranscription: r.FormValue("deleteAfterTranscription") == "true",
		Filename:                 header.Filename,
	}

	id, err := s.jobs.Create(r.Context(), header.Filename, audio, opts)
	if err != nil {
		s.log.Error("job create failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Could not queue transcription.",
			"code":  "JOB_CREATE_FAILED",
		})
		return
	}

	s.log.Info("transcription queued", "job", id, "filename", header.Filename, "bytes", len(audio))
	writeJSON(w, http.StatusOK, map[string]string{
		"processingId": id,
		"status":       "started",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "processingID")
	job, err := s.jobs.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Processing ID not found."})
		return
	}
	if err != nil {
		s.log.Error("job lookup failed", "job", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Job lookup failed."})
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) rejectUpload(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.Is(err, ErrUploadTooLarge) || errors.As(err, &maxErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": "Audio upload exceeds the 25 MB limit.",
			"code":  "UPLOAD_TOO_LARGE",
		})
		return
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": err.Error(),
		"code":  "BAD_UPLOAD",
	})
}

// cors admits the known dev front-end origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range s.allowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				break
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
