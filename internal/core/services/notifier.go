package services

import (
	"context"
	"log/slog"

	portssvc "github.com/hirepipe/hiring_pipeline_app/internal/core/ports/services"
)

// logNotifier implements the NotifierSvc interface by writing notifications to
// the structured log. Real delivery (email, push) belongs to the surrounding
// application; nothing in the pipeline depends on notifications being seen.
type logNotifier struct {
	BaseService
}

// NewLogNotifier creates a notifier that records notifications in the log
func NewLogNotifier() portssvc.NotifierSvc {
	return &logNotifier{}
}

// Ensure logNotifier implements the NotifierSvc interface
var _ portssvc.NotifierSvc = (*logNotifier)(nil)

// Notify records one notification. Never fails the calling operation.
func (s *logNotifier) Notify(ctx context.Context, n portssvc.Notification) {
	s.LogInfo(ctx, "Notification dispatched",
		slog.String("user_id", n.UserID),
		slog.String("application_id", n.ApplicationID),
		slog.String("event", n.Event))
}
