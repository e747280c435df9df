// Package apitest provides a stand-in for the trace analysis service.
//
// The server honors the wire contract of POST /process and GET /download
// and records what it received. It does not look at log content: the
// process response is canned and can be replaced per test.
package apitest

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/charliek/tracehelper/internal/api"
	"github.com/charliek/tracehelper/internal/constants"
)

// Canned values of the default process response
const (
	DefaultQuery     = `("T-a9f624ee2e4f3c9b")`
	DefaultCount     = 1
	DefaultCountType = "unique trace IDs"

	// NoContentError is returned when neither a file nor text is sent
	NoContentError = "Please provide log content either by uploading a file or pasting text."
	// NoQueryError is returned by /download without a query
	NoQueryError = "No query provided"
)

const maxFormMemory = 32 << 20

// Request is a /process request as the server received it
type Request struct {
	RequestID    string
	FileName     string
	FileContent  string
	Text         string
	IncludeSpans bool
	Verbose      bool
}

// Content returns the log content the service would analyze. A non-empty
// file takes precedence over the text field.
func (r Request) Content() string {
	if r.FileContent != "" {
		return r.FileContent
	}
	return r.Text
}

// Server is a fake analysis service
type Server struct {
	router *chi.Mux

	mu       sync.Mutex
	requests []Request
	response *api.ProcessResponse
	rawCode  int
	rawBody  string
}

// NewServer creates a fake service with the default canned response
func NewServer() *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{router: r}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the service routes
func (s *Server) registerRoutes() {
	s.router.Post(constants.ProcessPath, s.process)
	s.router.Get(constants.DownloadPath, s.download)
}

// Handler returns the HTTP handler of the service
func (s *Server) Handler() http.Handler {
	return s.router
}

// Respond replaces the canned process response
func (s *Server) Respond(resp api.ProcessResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.response = &resp
	s.rawBody = ""
}

// RespondRaw makes /process answer with status and body verbatim
func (s *Server) RespondRaw(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawCode = status
	s.rawBody = body
}

// Requests returns the /process requests received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// process handles POST /process
func (s *Server) process(w http.ResponseWriter, r *http.Request) {
	req, err := parseProcessForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.ProcessResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	canned, rawCode, rawBody := s.response, s.rawCode, s.rawBody
	s.mu.Unlock()

	if rawBody != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rawCode)
		_, _ = io.WriteString(w, rawBody)
		return
	}

	if canned != nil {
		writeJSON(w, http.StatusOK, canned)
		return
	}

	if req.Content() == "" {
		writeJSON(w, http.StatusOK, api.ProcessResponse{Error: NoContentError})
		return
	}

	resp := api.ProcessResponse{
		Success:   true,
		Count:     DefaultCount,
		CountType: DefaultCountType,
		DQLQuery:  DefaultQuery,
	}
	if req.Verbose {
		resp.VerboseInfo = "Found " + strconv.Itoa(DefaultCount) + " " + DefaultCountType
	}
	writeJSON(w, http.StatusOK, resp)
}

// download handles GET /download
func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get(constants.DownloadQueryParam)
	if query == "" {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: NoQueryError})
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", `attachment; filename="`+constants.DownloadFileName+`"`)
	_, _ = io.WriteString(w, query)
}

// parseProcessForm reads the multipart fields of a /process request
func parseProcessForm(r *http.Request) (Request, error) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		return Request{}, err
	}

	req := Request{
		RequestID:    middleware.GetReqID(r.Context()),
		Text:         r.FormValue(constants.FormLogText),
		IncludeSpans: r.FormValue(constants.FormIncludeSpans) == "true",
		Verbose:      r.FormValue(constants.FormVerbose) == "true",
	}

	file, header, err := r.FormFile(constants.FormLogFile)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return req, nil
	case err != nil:
		return Request{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Request{}, err
	}
	req.FileName = header.Filename
	req.FileContent = string(data)
	return req, nil
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
