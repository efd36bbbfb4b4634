package errors

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/cristianoliveira/forecast-desk/internal/alert"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler records which ErrorHandler method was called.
type recordingHandler struct {
	calls []string
}

func (r *recordingHandler) Error(msg string)   { r.calls = append(r.calls, "error:"+msg) }
func (r *recordingHandler) Warning(msg string) { r.calls = append(r.calls, "warning:"+msg) }
func (r *recordingHandler) Info(msg string)    { r.calls = append(r.calls, "info:"+msg) }
func (r *recordingHandler) Success(msg string) { r.calls = append(r.calls, "success:"+msg) }

type recordingColors struct {
	recordingHandler
}

func (r *recordingColors) Error(msgs ...string)   { r.recordingHandler.Error(msgs[0]) }
func (r *recordingColors) Warning(msgs ...string) { r.recordingHandler.Warning(msgs[0]) }
func (r *recordingColors) Info(msgs ...string)    { r.recordingHandler.Info(msgs[0]) }
func (r *recordingColors) Success(msgs ...string) { r.recordingHandler.Success(msgs[0]) }

func TestCLIHandlerDelegates(t *testing.T) {
	out := &recordingColors{}
	h := NewCLIHandler(out)

	h.Error("e")
	h.Warning("w")
	h.Info("i")
	h.Success("s")

	assert.Equal(t, []string{"error:e", "warning:w", "info:i", "success:s"}, out.calls)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name   string
		result data.Result
		want   []string
	}{
		{name: "success", result: data.Succeeded("Forecast Saved", 1), want: []string{"success:Forecast Saved"}},
		{name: "error", result: data.Failed("", stderrors.New("boom")), want: []string{"error:boom"}},
		{name: "warning", result: data.Result{Kind: data.MessageKindWarning, Message: "careful"}, want: []string{"warning:careful"}},
		{name: "information", result: data.Result{Kind: data.MessageKindInformation, Message: "fyi"}, want: []string{"info:fyi"}},
		{name: "not implemented", result: data.NotImplemented("export"), want: []string{"warning:export is not implemented"}},
		{name: "none", result: data.Result{Message: "quiet"}},
		{name: "empty message", result: data.Result{Kind: data.MessageKindSuccess}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHandler{}
			Report(h, tt.result)
			assert.Equal(t, tt.want, h.calls)
		})
	}
}

func TestReportError(t *testing.T) {
	h := &recordingHandler{}
	ReportError(h, nil)
	assert.Empty(t, h.calls)

	ReportError(h, stderrors.New("failed"))
	assert.Equal(t, []string{"error:failed"}, h.calls)
}

func TestDefaultCLIHandlerWritesThroughColors(t *testing.T) {
	var out, errOut bytes.Buffer
	colors.SetOutput(&out, &errOut)
	t.Cleanup(func() { colors.SetOutput(nil, nil) })

	h := NewDefaultCLIHandler()
	h.Error("adapter error")
	h.Success("adapter success")

	assert.Contains(t, errOut.String(), "adapter error")
	assert.Contains(t, out.String(), "adapter success")
}

func TestTUIHandlerStoresAndNotifies(t *testing.T) {
	var seen []Message
	h := NewTUIHandler(func(m Message) { seen = append(seen, m) })

	_, ok := h.Latest()
	assert.False(t, ok)

	h.Warning("first")
	h.Error("second")

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "second", latest.Text)
	assert.Equal(t, MessageTypeError, latest.Type)
	assert.Len(t, h.All(), 2)
	assert.Len(t, seen, 2)

	h.Clear()
	assert.Empty(t, h.All())
}

func TestMessageAlert(t *testing.T) {
	assert.Equal(t, alert.Danger("x"), Message{Text: "x", Type: MessageTypeError}.Alert())
	assert.Equal(t, alert.Warning("x"), Message{Text: "x", Type: MessageTypeWarning}.Alert())
	assert.Equal(t, alert.Info("x"), Message{Text: "x", Type: MessageTypeInfo}.Alert())
	assert.Equal(t, alert.Success("x"), Message{Text: "x", Type: MessageTypeSuccess}.Alert())
}
