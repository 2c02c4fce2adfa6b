package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		status   Status
		name     string
		degraded bool
	}{
		{OK, "ok", false},
		{Empty, "empty", true},
		{Unavailable, "unavailable", true},
		{Failed, "failed", true},
		{Status(42), "unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.status.String())
			assert.Equal(t, tt.degraded, tt.status.Degraded())
		})
	}
}
