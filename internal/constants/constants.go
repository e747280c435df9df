// Package constants provides shared configuration values used across the tracehelper application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "tracehelper.yaml"

	// DefaultServiceAddress is the default address of the analysis service
	DefaultServiceAddress = "http://127.0.0.1:5000"

	// DefaultDownloadDir is where downloaded queries are written by default
	DefaultDownloadDir = "."

	// EnvPrefix is the prefix of environment overrides
	EnvPrefix = "TRACEHELPER_"
)

// Analysis service endpoints
const (
	// ProcessPath accepts a log sample and returns a generated query
	ProcessPath = "/process"

	// DownloadPath returns the query passed in DownloadQueryParam as a file
	DownloadPath = "/download"

	// DownloadQueryParam is the query string key carrying the query text
	DownloadQueryParam = "query"

	// DownloadFileName is the fixed name of the downloaded query file
	DownloadFileName = "trace_query.dql"

	// RequestIDHeader carries the client-generated correlation ID
	RequestIDHeader = "X-Request-ID"
)

// Multipart form keys of the process request
const (
	FormLogFile      = "log_file"
	FormLogText      = "log_text"
	FormIncludeSpans = "include_spans"
	FormVerbose      = "verbose"
)

// Timeout and duration defaults
const (
	// DefaultRequestTimeout is the default timeout for service requests
	DefaultRequestTimeout = 30 * time.Second

	// FeedbackDuration is how long an export notification stays on its control
	FeedbackDuration = 2 * time.Second
)

// Size limits
const (
	// MaxErrorBodySize caps how much of an unexpected response body is quoted in errors
	MaxErrorBodySize = 512
)

// DebugLogFile is where the TUI writes debug logs when verbose
const DebugLogFile = "tracehelper.log"

// ExampleLog is a small sample in the format the service understands
const ExampleLog = `2025-07-26 16:34:50.031 INFO  XxxxAdapter.lambda$afterBodyRead$0(): [http-nio-8080-exec-5] [T-a9f624ee2e4f3c9b,S-a9f624ee2e4f3c9b] :   [POST] /xxx/xx/xxxx
2025-07-26 16:34:50.060 INFO  XxxxAdapter.lambda$afterBodyRead$0(): [http-nio-8080-exec-4] [T-f0c8e2a82b6a2349,S-f0c8e2a82b6a2349] :   [POST] /xxx/xx/xxxx
2025-07-26 16:34:51.123 INFO  XxxxAdapter.lambda$afterBodyRead$0(): [http-nio-8080-exec-6] [T-01ca3088195366d4,S-01ca3088195366d4] :   [POST] /xxx/xx/xxxx`
