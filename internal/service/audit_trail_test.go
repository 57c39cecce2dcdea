package service

import (
	"context"
	"fmt"
	"testing"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditAppend_ChainsEntryHashes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditRepository(ctrl)
	sigSvc := NewHMACSignatureService()
	svc := NewAuditTrailService(repo, sigSvc, "audit-secret", zerolog.Nop())

	repo.EXPECT().LatestHash(gomock.Any()).Return("", nil)

	var entries []*domain.AuditEntry
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.AuditEntry) error {
			entries = append(entries, e)
			return nil
		}).Times(2)

	actor := uuid.New()
	entity := uuid.New()
	first := ports.RecordEntryParams{
		ActorID:    actor,
		Action:     "WALLET_CREATED",
		EntityType: "master_wallet",
		EntityID:   entity,
		NewValue:   map[string]string{"status": "ACTIVE"},
	}
	second := ports.RecordEntryParams{
		ActorID:    actor,
		Action:     "WALLET_CLOSED",
		EntityType: "master_wallet",
		EntityID:   entity,
		NewValue:   map[string]string{"status": "CLOSED"},
	}

	require.NoError(t, svc.append(context.Background(), first))
	require.NoError(t, svc.append(context.Background(), second))

	require.Len(t, entries, 2)
	e0, e1 := entries[0], entries[1]
	assert.NotEmpty(t, e0.EntryHash)
	assert.NotEqual(t, e0.EntryHash, e1.EntryHash)

	canonical := fmt.Sprintf("%s|%s|%s|%s|%s",
		e1.ActorID, e1.Action, e1.EntityType, e1.EntityID, *e1.NewValue)
	assert.Equal(t, sigSvc.ChainHash("audit-secret", e0.EntryHash, canonical), e1.EntryHash)
}

func TestAuditAppend_SeedsChainFromStoredHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditRepository(ctrl)
	sigSvc := NewHMACSignatureService()
	svc := NewAuditTrailService(repo, sigSvc, "audit-secret", zerolog.Nop())

	storedHash := "deadbeef"
	repo.EXPECT().LatestHash(gomock.Any()).Return(storedHash, nil)

	var entry *domain.AuditEntry
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.AuditEntry) error {
			entry = e
			return nil
		})

	p := ports.RecordEntryParams{
		ActorID:    uuid.New(),
		Action:     "ALLOCATION_ACTIVATED",
		EntityType: "float_allocation",
		EntityID:   uuid.New(),
		NewValue:   map[string]string{"status": "ACTIVE"},
	}
	require.NoError(t, svc.append(context.Background(), p))

	require.NotNil(t, entry)
	canonical := fmt.Sprintf("%s|%s|%s|%s|%s",
		entry.ActorID, entry.Action, entry.EntityType, entry.EntityID, *entry.NewValue)
	assert.Equal(t, sigSvc.ChainHash("audit-secret", storedHash, canonical), entry.EntryHash)
}

func TestAuditAppend_NilSnapshotsAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditTrailService(repo, NewHMACSignatureService(), "audit-secret", zerolog.Nop())

	repo.EXPECT().LatestHash(gomock.Any()).Return("", nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.AuditEntry) error {
			assert.Nil(t, e.OldValue)
			assert.Nil(t, e.NewValue)
			return nil
		})

	require.NoError(t, svc.append(context.Background(), ports.RecordEntryParams{
		ActorID:    uuid.New(),
		Action:     "ALERT_RESOLVED",
		EntityType: "security_alert",
		EntityID:   uuid.New(),
	}))
}

func TestAuditQuery_ReturnsEntityEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditTrailService(repo, NewHMACSignatureService(), "audit-secret", zerolog.Nop())

	entityID := uuid.New()
	repo.EXPECT().ListByEntity(gomock.Any(), entityID).Return([]domain.AuditEntry{
		{ID: uuid.New(), Action: "WALLET_CREATED", EntityID: entityID},
		{ID: uuid.New(), Action: "WALLET_TX_COMPLETED", EntityID: entityID},
	}, nil)

	entries, err := svc.Query(context.Background(), entityID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "WALLET_CREATED", entries[0].Action)
}
