package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain error", errors.New("timeout"), "Network error: timeout"},
		{"wrapped error", fmt.Errorf("request failed: %w", errors.New("connection refused")), "Network error: request failed: connection refused"},
		{"nil error", nil, "Network error: unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetworkErrorMessage(tt.err))
		})
	}
}
