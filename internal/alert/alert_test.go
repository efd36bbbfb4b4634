package alert

import (
	"testing"

	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/stretchr/testify/assert"
)

func TestFromResultMapsEveryKind(t *testing.T) {
	tests := []struct {
		kind     data.MessageKind
		severity Severity
		active   bool
	}{
		{data.MessageKindError, SeverityDanger, true},
		{data.MessageKindSuccess, SeveritySuccess, true},
		{data.MessageKindWarning, SeverityWarning, true},
		{data.MessageKindInformation, SeverityInfo, true},
		{data.MessageKindNone, SeverityPrimary, false},
		{data.MessageKindNotImplemented, SeverityPrimary, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := FromResult("msg", tt.kind)
			assert.Equal(t, tt.severity, got.Severity)
			assert.Equal(t, tt.active, got.IsActive)
			assert.Equal(t, "msg", got.Message)
		})
	}
}

func TestFromDataResult(t *testing.T) {
	got := FromDataResult(data.Succeeded("Forecast Saved", 3))
	assert.Equal(t, Success("Forecast Saved"), got)

	got = FromDataResult(data.NotImplemented("delete"))
	assert.False(t, got.IsActive)
}

func TestClearIsInactive(t *testing.T) {
	assert.False(t, Clear().IsActive)
	assert.False(t, Alert{}.IsActive)
	assert.True(t, Danger("x").IsActive)
}
