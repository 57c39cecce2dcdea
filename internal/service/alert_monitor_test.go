package service

import (
	"context"
	"testing"
	"time"

	"branch-cash-ledger/internal/core/domain"
	"branch-cash-ledger/internal/core/ports"
	"branch-cash-ledger/internal/core/ports/mocks"
	"branch-cash-ledger/internal/observability"
	"branch-cash-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRaise_PersistsAndDispatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alertRepo := mocks.NewMockAlertRepository(ctrl)
	notifier := mocks.NewMockNotificationDispatcher(ctrl)
	svc := NewAlertMonitorService(alertRepo, notifier, observability.NewMetrics(), zerolog.Nop())

	entityID := uuid.New()
	alertRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	dispatched := make(chan *domain.SecurityAlert, 1)
	notifier.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a *domain.SecurityAlert) error {
			dispatched <- a
			return nil
		})

	alert, err := svc.Raise(context.Background(), ports.RaiseAlertParams{
		Type:       domain.AlertTypeHighRiskTransaction,
		Severity:   domain.AlertSeverityHigh,
		EntityType: "wallet_transaction",
		EntityID:   entityID,
		Details:    "amount far above historical average",
		RiskScore:  82,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AlertTypeHighRiskTransaction, alert.Type)
	assert.Equal(t, entityID, alert.EntityID)
	assert.Equal(t, 3, alert.EscalationLevel)
	assert.False(t, alert.Resolved)

	select {
	case got := <-dispatched:
		assert.Equal(t, alert.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("alert was never dispatched")
	}
}

func TestRaise_NilNotifierStillPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alertRepo := mocks.NewMockAlertRepository(ctrl)
	svc := NewAlertMonitorService(alertRepo, nil, observability.NewMetrics(), zerolog.Nop())

	alertRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	alert, err := svc.Raise(context.Background(), ports.RaiseAlertParams{
		Type:     domain.AlertTypeLimitBreach,
		Severity: domain.AlertSeverityCritical,
		EntityID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, alert.EscalationLevel)
}

func TestResolve_SetsResolutionFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alertRepo := mocks.NewMockAlertRepository(ctrl)
	svc := NewAlertMonitorService(alertRepo, nil, observability.NewMetrics(), zerolog.Nop())

	alertID := uuid.New()
	actorID := uuid.New()
	alertRepo.EXPECT().GetByID(gomock.Any(), alertID).Return(&domain.SecurityAlert{
		ID:       alertID,
		Type:     domain.AlertTypeReconciliationVariance,
		Severity: domain.AlertSeverityMedium,
	}, nil)
	alertRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	alert, err := svc.Resolve(context.Background(), alertID, actorID, "variance approved by supervisor")
	require.NoError(t, err)

	assert.True(t, alert.Resolved)
	require.NotNil(t, alert.ResolvedBy)
	assert.Equal(t, actorID, *alert.ResolvedBy)
	assert.NotNil(t, alert.ResolvedAt)
	require.NotNil(t, alert.ResolutionNotes)
	assert.Equal(t, "variance approved by supervisor", *alert.ResolutionNotes)
}

func TestResolve_IdempotentOnResolvedAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alertRepo := mocks.NewMockAlertRepository(ctrl)
	svc := NewAlertMonitorService(alertRepo, nil, observability.NewMetrics(), zerolog.Nop())

	alertID := uuid.New()
	alertRepo.EXPECT().GetByID(gomock.Any(), alertID).Return(&domain.SecurityAlert{
		ID:       alertID,
		Resolved: true,
	}, nil)

	alert, err := svc.Resolve(context.Background(), alertID, uuid.New(), "again")
	require.NoError(t, err)
	assert.True(t, alert.Resolved)
}

func TestResolve_UnknownAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alertRepo := mocks.NewMockAlertRepository(ctrl)
	svc := NewAlertMonitorService(alertRepo, nil, observability.NewMetrics(), zerolog.Nop())

	alertID := uuid.New()
	alertRepo.EXPECT().GetByID(gomock.Any(), alertID).Return(nil, nil)

	_, err := svc.Resolve(context.Background(), alertID, uuid.New(), "")
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, "LED_005", appErr.Code)
}

func TestScoreTransaction(t *testing.T) {
	svc := &AlertMonitorService{log: zerolog.Nop()}

	tests := []struct {
		name   string
		amount string
		avg    string
		level  domain.SecurityLevel
		want   int
	}{
		{"no history baseline", "500.00", "0", domain.SecurityLevelStandard, 30},
		{"at average", "100.00", "100.00", domain.SecurityLevelStandard, 20},
		{"five times average caps", "500.00", "100.00", domain.SecurityLevelStandard, 100},
		{"high level shifts up", "100.00", "100.00", domain.SecurityLevelHigh, 30},
		{"critical level shifts up", "100.00", "100.00", domain.SecurityLevelCritical, 45},
		{"critical never exceeds cap", "1000.00", "100.00", domain.SecurityLevelCritical, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ScoreTransaction(
				decimal.RequireFromString(tt.amount),
				decimal.RequireFromString(tt.avg),
				tt.level,
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityForScore(t *testing.T) {
	assert.Equal(t, domain.AlertSeverityLow, SeverityForScore(0))
	assert.Equal(t, domain.AlertSeverityLow, SeverityForScore(49))
	assert.Equal(t, domain.AlertSeverityMedium, SeverityForScore(50))
	assert.Equal(t, domain.AlertSeverityHigh, SeverityForScore(75))
	assert.Equal(t, domain.AlertSeverityCritical, SeverityForScore(90))
}
