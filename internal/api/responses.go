// Package api defines the wire contract of the trace analysis service.
package api

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/charliek/tracehelper/internal/domain"
)

// ProcessResponse represents the response for POST /process
type ProcessResponse struct {
	Success     bool   `json:"success"`
	Count       int    `json:"count,omitempty"`
	CountType   string `json:"count_type,omitempty"`
	DQLQuery    string `json:"dql_query,omitempty"`
	VerboseInfo string `json:"verbose_info,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ErrorResponse represents the body of a rejected GET /download
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResult converts a successful ProcessResponse to a domain.Result
func (r *ProcessResponse) ToResult() domain.Result {
	return domain.Result{
		Count:       r.Count,
		CountType:   r.CountType,
		Query:       r.DQLQuery,
		VerboseInfo: r.VerboseInfo,
	}
}

// DecodeProcessResponse parses and validates a /process response body.
//
// The body must be an object with a boolean "success". Successful responses
// must carry count, count_type and dql_query; failed ones must carry error.
// Anything else wraps domain.ErrMalformedResponse.
func DecodeProcessResponse(data []byte) (*ProcessResponse, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: expected object, got %s", domain.ErrMalformedResponse, v.Type())
	}

	resp := &ProcessResponse{}
	switch success := v.Get("success"); {
	case success == nil:
		return nil, fmt.Errorf("%w: missing success", domain.ErrMalformedResponse)
	case success.Type() == fastjson.TypeTrue:
		resp.Success = true
	case success.Type() == fastjson.TypeFalse:
		resp.Success = false
	default:
		return nil, fmt.Errorf("%w: success must be a boolean, got %s", domain.ErrMalformedResponse, success.Type())
	}

	if !resp.Success {
		resp.Error, err = requiredString(v, "error")
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	count := v.Get("count")
	if count == nil || count.Type() != fastjson.TypeNumber {
		return nil, fmt.Errorf("%w: count must be a number", domain.ErrMalformedResponse)
	}
	if resp.Count, err = count.Int(); err != nil {
		return nil, fmt.Errorf("%w: count: %v", domain.ErrMalformedResponse, err)
	}
	if resp.CountType, err = requiredString(v, "count_type"); err != nil {
		return nil, err
	}
	if resp.DQLQuery, err = requiredString(v, "dql_query"); err != nil {
		return nil, err
	}
	if info := v.Get("verbose_info"); info != nil && info.Type() == fastjson.TypeString {
		resp.VerboseInfo = string(info.GetStringBytes())
	}

	return resp, nil
}

// DecodeErrorResponse extracts the message of an ErrorResponse body.
// Returns false if the body is not an object with a string "error".
func DecodeErrorResponse(data []byte) (string, bool) {
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return "", false
	}
	msg := v.Get("error")
	if msg == nil || msg.Type() != fastjson.TypeString {
		return "", false
	}
	return string(msg.GetStringBytes()), true
}

func requiredString(v *fastjson.Value, key string) (string, error) {
	field := v.Get(key)
	if field == nil || field.Type() != fastjson.TypeString {
		return "", fmt.Errorf("%w: %s must be a string", domain.ErrMalformedResponse, key)
	}
	return string(field.GetStringBytes()), nil
}
