package adapter

import (
	"context"

	"premium-store/internal/domain/model"
)

// RenderSink receives card views. Render is called once per card on load,
// Patch whenever a single card's prices change.
type RenderSink interface {
	Render(view model.CardView)
	Patch(view model.CardView)
}

// Modal displays plan details or the checkout summary.
type Modal interface {
	Show(title string, body any)
}

// Notifier shows a transient toast. Fire-and-forget.
type Notifier interface {
	Notify(message string, severity model.Severity)
}

// Clipboard copies text for the visitor. Implementations return
// domain.ErrClipboardUnavailable when the capability is missing.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}
