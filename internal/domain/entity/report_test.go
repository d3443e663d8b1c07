package entity

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/servantin-backend/internal/domain/valueobject"
	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

func TestNewReport(t *testing.T) {
	reporter := uuid.New()
	target := uuid.New()
	booking := uuid.New()

	r, err := NewReport(reporter, &target, nil, valueobject.ReportTypeFraud, "  asked for payment outside the app  ")
	require.NoError(t, err)
	assert.Equal(t, valueobject.ReportStatusPending, r.Status)
	assert.Equal(t, "asked for payment outside the app", r.Description)

	_, err = NewReport(reporter, nil, &booking, valueobject.ReportTypeOther, "no-show without notice")
	require.NoError(t, err)

	tests := []struct {
		name        string
		user        *uuid.UUID
		booking     *uuid.UUID
		description string
	}{
		{"no target", nil, nil, "nobody in particular"},
		{"self report", &reporter, nil, "reporting my own account"},
		{"short description", &target, nil, "rude"},
		{"long description", &target, nil, strings.Repeat("x", 2001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReport(reporter, tt.user, tt.booking, valueobject.ReportTypeSpam, tt.description)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}

func TestReport_UpdateStatus(t *testing.T) {
	target := uuid.New()
	admin := uuid.New()
	r, err := NewReport(uuid.New(), &target, nil, valueobject.ReportTypeHarassment, "insulting messages in chat")
	require.NoError(t, err)

	require.NoError(t, r.UpdateStatus(admin, valueobject.ReportStatusInvestigating, "  "))
	assert.Nil(t, r.AdminNotes)
	assert.Nil(t, r.ResolvedAt)

	require.NoError(t, r.UpdateStatus(admin, valueobject.ReportStatusResolved, "account warned"))
	require.NotNil(t, r.ResolvedBy)
	assert.Equal(t, admin, *r.ResolvedBy)
	assert.NotNil(t, r.ResolvedAt)
	assert.Equal(t, "account warned", *r.AdminNotes)

	err = r.UpdateStatus(admin, valueobject.ReportStatusPending, "")
	assert.Equal(t, apperror.ErrCodeBadRequest, apperror.CodeOf(err))
	assert.Equal(t, valueobject.ReportStatusResolved, r.Status)

	// Повторное рассмотрение без возврата в PENDING допустимо.
	require.NoError(t, r.UpdateStatus(admin, valueobject.ReportStatusInvestigating, ""))
}

func TestNewReportStats(t *testing.T) {
	s := NewReportStats(map[valueobject.ReportStatus]int{
		valueobject.ReportStatusPending:   3,
		valueobject.ReportStatusDismissed: 2,
	})
	assert.Equal(t, ReportStats{Pending: 3, Dismissed: 2, Total: 5}, s)
}
