package analytics

import (
	"log"
	"time"

	"reelstgram-backend/internal/models"
	"reelstgram-backend/internal/store"
)

// Logger appends events to the write-only analytics collection. The
// application never reads the log back, so a failed append costs a log
// line and nothing else.
type Logger struct {
	store *store.Store
}

func NewLogger(st *store.Store) *Logger {
	return &Logger{store: st}
}

func (l *Logger) Log(eventType string, data map[string]any) {
	event := models.AnalyticsEvent{
		EventType: eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	if err := l.store.AppendAnalytics(event); err != nil {
		log.Printf("analytics: failed to log %s event: %v", eventType, err)
	}
}
