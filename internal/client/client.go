// Package client talks to the trace analysis service over HTTP.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/charliek/tracehelper/internal/api"
	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
)

// Client is an HTTP client for the analysis service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new service client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the service address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Process submits a log sample and returns the decoded service response.
// Service-reported failures come back as a response with Success false;
// only transport problems and malformed bodies are returned as errors.
func (c *Client) Process(ctx context.Context, source domain.LogSource, opts domain.SubmissionOptions) (*api.ProcessResponse, error) {
	body, contentType, err := buildProcessForm(source, opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constants.ProcessPath, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	requestID := c.tagRequest(req)

	c.logger.Debug("submitting log sample",
		"request_id", requestID,
		"source", source.Kind().String(),
		"include_spans", opts.IncludeSpans,
		"verbose", opts.Verbose)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	result, err := api.DecodeProcessResponse(data)
	if err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(data))
		}
		return nil, err
	}

	c.logger.Debug("service responded",
		"request_id", requestID,
		"status", resp.StatusCode,
		"success", result.Success)
	return result, nil
}

// Download fetches the downloadable form of query from the service
func (c *Client) Download(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set(constants.DownloadQueryParam, query)
	path := constants.DownloadPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := c.tagRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg, ok := api.DecodeErrorResponse(data); ok {
			return nil, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("downloaded query", "request_id", requestID, "bytes", len(data))
	return data, nil
}

// tagRequest attaches a fresh correlation ID to req and returns it
func (c *Client) tagRequest(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set(constants.RequestIDHeader, id)
	return id
}

// buildProcessForm encodes the multipart body of a /process request.
// log_text is always present; log_file only when a file is selected.
func buildProcessForm(source domain.LogSource, opts domain.SubmissionOptions) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if source.File != nil {
		if err := writeFilePart(w, *source.File); err != nil {
			return nil, "", err
		}
	}

	fields := []struct {
		key   string
		value string
	}{
		{constants.FormLogText, source.Text},
		{constants.FormIncludeSpans, strconv.FormatBool(opts.IncludeSpans)},
		{constants.FormVerbose, strconv.FormatBool(opts.Verbose)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.key, f.value); err != nil {
			return nil, "", fmt.Errorf("writing %s: %w", f.key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, file domain.LogFile) error {
	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(constants.FormLogFile, file.Name())
	if err != nil {
		return fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	return nil
}

// snippet returns a bounded, single-line excerpt of a response body
func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > constants.MaxErrorBodySize {
		// Back off to a rune boundary so the excerpt stays valid UTF-8
		cut := constants.MaxErrorBodySize
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return strings.Join(strings.Fields(s), " ")
}
