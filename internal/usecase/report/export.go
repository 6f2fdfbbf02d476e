package report

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/mobile-barber/internal/audit"
	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
	"github.com/BruksfildServices01/mobile-barber/internal/httperr"
	"github.com/BruksfildServices01/mobile-barber/internal/session"
	"github.com/BruksfildServices01/mobile-barber/internal/timezone"
)

// Uploader stores a finished report under key.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
}

type ExportResult struct {
	Key  string `json:"key"`
	Rows int    `json:"rows"`
}

type ExportBookings struct {
	repo     booking.Repository
	uploader Uploader
	audit    *audit.Dispatcher
	clock    timezone.Clock
}

// NewExportBookings accepts a nil uploader; exports are then refused.
func NewExportBookings(
	repo booking.Repository,
	uploader Uploader,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ExportBookings {
	return &ExportBookings{repo: repo, uploader: uploader, audit: audit, clock: clock}
}

func ReportKey(prefix string, stamp string) string {
	return fmt.Sprintf("reports/%s-%s.csv", prefix, stamp)
}

func (uc *ExportBookings) Execute(ctx context.Context, sess session.Session) (*ExportResult, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}
	if uc.uploader == nil {
		return nil, httperr.ErrValidation("export_disabled")
	}

	list, err := uc.repo.ListAllBookings(ctx)
	if err != nil {
		return nil, httperr.ErrPersistence("export_failed", err)
	}

	body, err := RenderCSV(list)
	if err != nil {
		return nil, httperr.ErrPersistence("export_failed", err)
	}

	key := ReportKey("bookings", uc.clock().Format("20060102-150405"))
	if err := uc.uploader.Upload(ctx, key, "text/csv", body); err != nil {
		return nil, httperr.ErrPersistence("export_failed", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  sess.ActorID(),
		Action:   "bookings_exported",
		Entity:   "report",
		EntityID: audit.StrPtr(key),
		Metadata: map[string]any{"rows": len(list)},
	})

	return &ExportResult{Key: key, Rows: len(list)}, nil
}
