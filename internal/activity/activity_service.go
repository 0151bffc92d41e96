package activity

import (
	"context"

	activityerrors "go-hrpay/internal/activity/errors"
	"go-hrpay/internal/domain"

	"go.uber.org/zap"
)

const maxListLimit = 200

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, actor domain.Identity, limit int) ([]ActivityResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, logger: l}
}

// List returns the newest entries visible to actor: everything for a
// platform admin, the own tenant for a company admin.
func (s *service) List(ctx context.Context, actor domain.Identity, limit int) ([]ActivityResponse, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	var companyID string
	switch actor.Role {
	case domain.RolePlatformAdmin:
	case domain.RoleCompanyAdmin:
		companyID = actor.CompanyID
	default:
		return nil, activityerrors.ErrForbidden
	}

	rows, err := s.repo.FindRecent(ctx, companyID, limit)
	if err != nil {
		s.logger.Error("list activities failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	out := make([]ActivityResponse, len(rows))
	for i, a := range rows {
		out[i] = mapToResponse(a)
	}
	return out, nil
}

func mapToResponse(a Activity) ActivityResponse {
	resp := ActivityResponse{
		ID:          a.ID.String(),
		ActorRole:   a.ActorRole,
		Action:      string(a.Action),
		TargetType:  a.TargetType,
		TargetID:    a.TargetID,
		Description: a.Description,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
	if a.CompanyID != nil {
		resp.CompanyID = a.CompanyID.String()
	}
	if a.ActorID != nil {
		resp.ActorID = a.ActorID.String()
	}
	return resp
}
