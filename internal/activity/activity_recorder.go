package activity

import (
	"context"
	"encoding/json"
	"time"

	"go-hrpay/internal/domain"
	"go-hrpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultRecordTimeout = 3 * time.Second

type Entry struct {
	CompanyID   string
	ActorID     string
	ActorRole   string
	Action      Action
	TargetType  string
	TargetID    string
	Description string
	Metadata    map[string]any
}

// NewEntry fills actor and tenant from the caller's identity.
func NewEntry(actor domain.Identity, action Action, targetType, targetID, description string) Entry {
	return Entry{
		CompanyID:   actor.CompanyID,
		ActorID:     actor.UserID,
		ActorRole:   actor.Role.String(),
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
	}
}

// Recorder writes activity entries after the mutation they describe has
// committed. Record never fails the caller: write errors are logged and
// dropped, and the mutation is not rolled back.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type recorder struct {
	repo    Repository
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("activity.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &recorder{repo: repo, timeout: defaultRecordTimeout, now: time.Now, logger: l}
}

func (r *recorder) Record(ctx context.Context, e Entry) {
	// detached from the request so a client disconnect right after the
	// commit does not drop the entry
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	row := &Activity{
		ID:          uuid.New(),
		CompanyID:   parseOptionalUUID(e.CompanyID),
		ActorID:     parseOptionalUUID(e.ActorID),
		ActorRole:   e.ActorRole,
		Action:      e.Action,
		TargetType:  e.TargetType,
		TargetID:    e.TargetID,
		Description: e.Description,
		CreatedAt:   r.now().UTC(),
	}
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			r.logger.Warn("activity metadata dropped", zap.String("target_type", e.TargetType), zap.Error(err))
		} else {
			row.Metadata = raw
		}
	}

	if err := r.repo.Create(ctx, row); err != nil {
		r.logger.Warn("activity record failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("action", string(e.Action)),
			zap.String("target_type", e.TargetType),
			zap.String("target_id", e.TargetID),
			zap.Error(err),
		)
	}
}

type nopRecorder struct{}

// Nop discards every entry. Services fall back to it when no recorder is wired.
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) Record(context.Context, Entry) {}

func parseOptionalUUID(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
