package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuditTrailService implements ports.AuditTrail. Entries are appended
// fire-and-forget: a failed write is logged and never propagated to the
// ledger mutation that produced it. Each entry's hash chains to the previous
// one so history tampering is detectable.
type AuditTrailService struct {
	repo   ports.AuditRepository
	sigSvc *HMACSignatureService
	secret string
	log    zerolog.Logger

	mu       sync.Mutex
	lastHash string
	seeded   bool
}

// NewAuditTrailService creates a new AuditTrailService.
// If repo is nil, audit entries are only written to the logger.
func NewAuditTrailService(repo ports.AuditRepository, sigSvc *HMACSignatureService, secret string, log zerolog.Logger) *AuditTrailService {
	return &AuditTrailService{
		repo:   repo,
		sigSvc: sigSvc,
		secret: secret,
		log:    log,
	}
}

// Record appends an audit entry asynchronously (fire-and-forget).
func (s *AuditTrailService) Record(ctx context.Context, p ports.RecordEntryParams) {
	go func() {
		s.log.Info().
			Str("actor_id", p.ActorID.String()).
			Str("action", p.Action).
			Str("entity_type", p.EntityType).
			Str("entity_id", p.EntityID.String()).
			Msg("audit")

		if s.repo == nil {
			return
		}
		if err := s.append(context.Background(), p); err != nil {
			s.log.Warn().Err(apperror.ErrAuditWriteFailure(err)).
				Str("action", p.Action).
				Msg("failed to persist audit entry")
		}
	}()
}

// Query returns the entity's audit entries in append order.
func (s *AuditTrailService) Query(ctx context.Context, entityID uuid.UUID) ([]domain.AuditEntry, error) {
	entries, err := s.repo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("query audit trail: %w", err))
	}
	return entries, nil
}

// append serializes chain-hash computation so concurrent recorders cannot
// fork the chain.
func (s *AuditTrailService) append(ctx context.Context, p ports.RecordEntryParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seeded {
		last, err := s.repo.LatestHash(ctx)
		if err != nil {
			return fmt.Errorf("seed hash chain: %w", err)
		}
		s.lastHash = last
		s.seeded = true
	}

	oldVal, err := marshalSnapshot(p.OldValue)
	if err != nil {
		return err
	}
	newVal, err := marshalSnapshot(p.NewValue)
	if err != nil {
		return err
	}

	entry := &domain.AuditEntry{
		ID:         uuid.New(),
		ActorID:    p.ActorID,
		Action:     p.Action,
		EntityType: p.EntityType,
		EntityID:   p.EntityID,
		OldValue:   oldVal,
		NewValue:   newVal,
		CreatedAt:  time.Now().UTC(),
	}

	canonical := fmt.Sprintf("%s|%s|%s|%s|%s",
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, deref(newVal))
	entry.EntryHash = s.sigSvc.ChainHash(s.secret, s.lastHash, canonical)

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	s.lastHash = entry.EntryHash
	return nil
}

func marshalSnapshot(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal audit snapshot: %w", err)
	}
	str := string(b)
	return &str, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
