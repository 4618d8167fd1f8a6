package api

import (
	"context"
	"errors"
	"fmt"

	"premium-store/internal/domain"
	"premium-store/internal/domain/model"
	"premium-store/internal/domain/ports/adapter"
)

var (
	_ adapter.RenderSink = (*Recorder)(nil)
	_ adapter.Modal      = (*Recorder)(nil)
	_ adapter.Notifier   = (*Recorder)(nil)
)

// Toast is a transient notification for the browser to show.
type Toast struct {
	Message  string         `json:"message"`
	Severity model.Severity `json:"severity"`
}

// ModalEvent asks the browser to open a dialog.
type ModalEvent struct {
	Title string `json:"title"`
	Kind  string `json:"kind"` // "checkout" or "details"
}

// Recorder collects what the core asked the UI to do during one request.
// The session mutex guards it.
type Recorder struct {
	Rendered []model.CardView
	Patched  []model.CardView
	Modals   []ModalEvent
	Toasts   []Toast
}

func (r *Recorder) Reset() { *r = Recorder{} }

func (r *Recorder) Render(v model.CardView) { r.Rendered = append(r.Rendered, v) }

func (r *Recorder) Patch(v model.CardView) { r.Patched = append(r.Patched, v) }

func (r *Recorder) Show(title string, body any) {
	kind := "dialog"
	switch body.(type) {
	case *model.OrderSummary:
		kind = "checkout"
	case model.PlanDetails:
		kind = "details"
	}
	r.Modals = append(r.Modals, ModalEvent{Title: title, Kind: kind})
}

func (r *Recorder) Notify(message string, severity model.Severity) {
	r.Toasts = append(r.Toasts, Toast{Message: message, Severity: severity})
}

// ClipboardReport is the outcome of navigator.clipboard.writeText as seen by
// the browser.
type ClipboardReport string

const (
	ClipboardOK          ClipboardReport = "ok"
	ClipboardFailed      ClipboardReport = "failed"
	ClipboardUnavailable ClipboardReport = "unavailable"
)

func (c ClipboardReport) Valid() bool {
	switch c {
	case ClipboardOK, ClipboardFailed, ClipboardUnavailable:
		return true
	}
	return false
}

var errClipboardRejected = errors.New("clipboard write rejected by browser")

// reportedClipboard replays a browser-side clipboard outcome.
type reportedClipboard struct {
	report ClipboardReport
}

var _ adapter.Clipboard = reportedClipboard{}

func (c reportedClipboard) WriteText(_ context.Context, _ string) error {
	switch c.report {
	case ClipboardOK:
		return nil
	case ClipboardUnavailable:
		return domain.ErrClipboardUnavailable
	case ClipboardFailed:
		return errClipboardRejected
	default:
		return fmt.Errorf("unknown clipboard report %q", string(c.report))
	}
}
