package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mobile-barber/internal/models"
)

// Logger persists events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	row := models.AuditLog{
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  EncodeMetadata(ev.Metadata),
		CreatedAt: ev.OccurredAt,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// EncodeMetadata renders metadata as JSON text; unencodable values become "".
func EncodeMetadata(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

func StrPtr(s string) *string {
	return &s
}
