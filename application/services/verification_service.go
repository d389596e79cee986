package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"kusina-backend/application/ports"
	"kusina-backend/domain/audit"
	"kusina-backend/domain/verification"
	"kusina-backend/infrastructure/cache"
	pkgerrors "kusina-backend/pkg/errors"
	"kusina-backend/pkg/notify"
)

// VerificationService owns the cook verification workflow. The pending
// queue lives in the dynamic store; per-cook profiles live in the
// user-scoped store since each key belongs to one session's view.
type VerificationService struct {
	verifications ports.VerificationRepository
	activities    ports.ActivityRepository
	router        *cache.Router
	notifier      *notify.Notifier
	logger        *zap.Logger

	getPendingVerifications cache.Func[[]verification.CookVerification]
	getCookProfile          cache.Func[verification.CookVerification]
}

// NewVerificationService builds the service and binds its readers.
func NewVerificationService(
	verifications ports.VerificationRepository,
	activities ports.ActivityRepository,
	dynamic *cache.Store,
	user *cache.Store,
	router *cache.Router,
	notifier *notify.Notifier,
	logger *zap.Logger,
) *VerificationService {
	s := &VerificationService{
		verifications: verifications,
		activities:    activities,
		router:        router,
		notifier:      notifier,
		logger:        logger,
	}

	s.getPendingVerifications = cache.Memoize(dynamic, "getPendingVerifications",
		func(ctx context.Context, args ...any) ([]verification.CookVerification, error) {
			return s.verifications.ListPending(ctx)
		})
	s.getCookProfile = cache.Memoize(user, "getCookProfile",
		func(ctx context.Context, args ...any) (verification.CookVerification, error) {
			return s.verifications.GetByCookID(ctx, args[0].(string))
		})

	return s
}

// GetPendingVerifications returns the review queue, cached briefly.
func (s *VerificationService) GetPendingVerifications(ctx context.Context) ([]verification.CookVerification, error) {
	return s.getPendingVerifications(ctx)
}

// GetCookProfile returns a cook's latest verification state.
func (s *VerificationService) GetCookProfile(ctx context.Context, cookID string) (verification.CookVerification, error) {
	if cookID == "" {
		return verification.CookVerification{}, pkgerrors.NewValidationError("cook id is required")
	}
	return s.getCookProfile(ctx, cookID)
}

// RequestVerification opens a pending request for a cook. A cook with a
// request already pending cannot open another.
func (s *VerificationService) RequestVerification(ctx context.Context, cookID, cookName string) (verification.CookVerification, error) {
	if cookID == "" {
		return verification.CookVerification{}, pkgerrors.NewValidationError("cook id is required")
	}
	if existing, err := s.verifications.GetByCookID(ctx, cookID); err == nil {
		if existing.Status == verification.StatusPending {
			return verification.CookVerification{}, pkgerrors.NewConflictError("a verification request is already pending for this cook")
		}
	} else if !pkgerrors.IsNotFound(err) {
		return verification.CookVerification{}, err
	}

	created, err := s.verifications.Create(ctx, verification.CookVerification{
		CookID:   cookID,
		CookName: cookName,
	})
	if err != nil {
		return verification.CookVerification{}, err
	}

	s.afterWrite(ctx, OpVerificationRequested, Actor{ID: cookID, Name: cookName},
		audit.ActionCreated, created.ID)
	return created, nil
}

// ReviewVerification applies a reviewer decision to a pending request.
func (s *VerificationService) ReviewVerification(ctx context.Context, reviewer Actor, id string, decision verification.Status, notes string) (verification.CookVerification, error) {
	req, err := s.verifications.GetByID(ctx, id)
	if err != nil {
		return verification.CookVerification{}, err
	}

	if err := req.Review(reviewer.ID, decision, notes, time.Now().UTC()); err != nil {
		return verification.CookVerification{}, pkgerrors.NewConflictError(err.Error())
	}

	updated, err := s.verifications.Update(ctx, req)
	if err != nil {
		return verification.CookVerification{}, err
	}

	s.afterWrite(ctx, OpVerificationReviewed, reviewer, audit.ActionReviewed, updated.ID)
	return updated, nil
}

func (s *VerificationService) afterWrite(ctx context.Context, op string, actor Actor, action audit.Action, entityID string) {
	s.router.Invalidate(op)

	if _, err := s.activities.Record(ctx, audit.Activity{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Entity:    "cook_verification",
		EntityID:  entityID,
	}); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("operation", op),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	} else {
		s.router.Invalidate(OpActivityLogged)
	}

	s.notifier.Publish(op)
}
