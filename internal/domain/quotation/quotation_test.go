package quotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "servit/internal/domain/quotation/valueobjects"
	shared "servit/internal/domain/shared/valueobjects"
)

func newTestQuotation(t *testing.T, now time.Time) *Quotation {
	t.Helper()
	q, err := NewQuotation(
		"qt_7fK2mQ",
		"RT-20260829-0001",
		[]uint{10, 11, 12},
		shared.NewMoney(150000, ""),
		now.Add(7*24*time.Hour),
		now.Add(24*time.Hour),
		now,
	)
	require.NoError(t, err)
	require.NoError(t, q.SetID(1))
	return q
}

func TestNewQuotation_Validation(t *testing.T) {
	now := time.Now().UTC()
	labor := shared.NewMoney(150000, "")

	tests := []struct {
		name       string
		candidates []uint
		expiresAt  time.Time
		wantErr    string
	}{
		{name: "valid", candidates: []uint{10}, expiresAt: now.Add(time.Hour)},
		{name: "no candidates", candidates: nil, expiresAt: now.Add(time.Hour), wantErr: "at least one candidate"},
		{name: "zero candidate ID", candidates: []uint{10, 0}, expiresAt: now.Add(time.Hour), wantErr: "cannot be zero"},
		{name: "duplicate candidate", candidates: []uint{10, 10}, expiresAt: now.Add(time.Hour), wantErr: "duplicate candidate"},
		{name: "expiry in the past", candidates: []uint{10}, expiresAt: now.Add(-time.Hour), wantErr: "expiry must be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuotation("qt_x", "RT-20260829-0001", tt.candidates, labor, tt.expiresAt, now.Add(24*time.Hour), now)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusPending, q.Status())
			require.NotNil(t, q.NextReminderAt())
		})
	}
}

func TestQuotation_Approve(t *testing.T) {
	t.Run("totals labor plus the selected part only", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)

		err := q.Approve(11, shared.NewMoney(80000, ""), "customer", now.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, vo.StatusApproved, q.Status())
		require.NotNil(t, q.SelectedPartID())
		assert.Equal(t, uint(11), *q.SelectedPartID())
		require.NotNil(t, q.TotalCost())
		assert.Equal(t, int64(230000), q.TotalCost().AmountInCents())
		assert.Nil(t, q.NextReminderAt())
		require.NotNil(t, q.RespondedAt())
		assert.Equal(t, "customer", q.RespondedBy())
	})

	t.Run("rejects a part that is not a candidate", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)

		err := q.Approve(99, shared.NewMoney(80000, ""), "customer", now)
		assert.ErrorContains(t, err, "not a candidate")
		assert.Equal(t, vo.StatusPending, q.Status())
	})

	t.Run("rejects a second terminal transition", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)
		require.NoError(t, q.Approve(10, shared.NewMoney(80000, ""), "customer", now))

		assert.ErrorContains(t, q.Deny("customer", now), "cannot transition")
		assert.ErrorContains(t, q.Expire(now), "cannot transition")
		assert.ErrorContains(t, q.Approve(11, shared.NewMoney(80000, ""), "customer", now), "cannot transition")
	})
}

func TestQuotation_ApproveWithOverride(t *testing.T) {
	t.Run("requires notes", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)

		err := q.ApproveWithOverride(10, shared.NewMoney(80000, ""), "tech-01", "", now)
		assert.ErrorContains(t, err, "override notes are required")
		assert.Equal(t, vo.StatusPending, q.Status())
	})

	t.Run("records the override", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)

		err := q.ApproveWithOverride(10, shared.NewMoney(80000, ""), "tech-01", "customer confirmed by phone", now)
		require.NoError(t, err)
		assert.True(t, q.ApprovedByOverride())
		assert.Equal(t, "customer confirmed by phone", q.OverrideNotes())
		require.NotNil(t, q.OverriddenAt())
	})
}

func TestQuotation_ExpiryAndReminders(t *testing.T) {
	t.Run("expiry takes precedence over reminders", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)

		afterExpiry := now.Add(8 * 24 * time.Hour)
		assert.True(t, q.IsExpired(afterExpiry))
		assert.False(t, q.ShouldRemind(afterExpiry))
	})

	t.Run("reminder due after the delay", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)

		assert.False(t, q.ShouldRemind(now.Add(23*time.Hour)))
		assert.True(t, q.ShouldRemind(now.Add(25*time.Hour)))
	})

	t.Run("marking a reminder schedules the next", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)
		sentAt := now.Add(25 * time.Hour)

		require.NoError(t, q.MarkReminderSent(24*time.Hour, sentAt))
		assert.Equal(t, 1, q.ReminderSendCount())
		require.NotNil(t, q.LastReminderSentAt())
		require.NotNil(t, q.NextReminderAt())
		assert.Equal(t, sentAt.Add(24*time.Hour), *q.NextReminderAt())
		assert.False(t, q.ShouldRemind(sentAt.Add(time.Hour)))
	})

	t.Run("expired terminal state does not report IsExpired", func(t *testing.T) {
		now := time.Now().UTC()
		q := newTestQuotation(t, now)
		afterExpiry := now.Add(8 * 24 * time.Hour)

		require.NoError(t, q.Expire(afterExpiry))
		assert.Equal(t, vo.StatusExpired, q.Status())
		assert.False(t, q.IsExpired(afterExpiry.Add(time.Hour)))
		assert.Nil(t, q.NextReminderAt())
	})
}

func TestQuotation_MarkSummarySent(t *testing.T) {
	now := time.Now().UTC()
	q := newTestQuotation(t, now)

	assert.ErrorContains(t, q.MarkSummarySent(now), "only sent for approved")

	require.NoError(t, q.Approve(10, shared.NewMoney(80000, ""), "customer", now))
	require.NoError(t, q.MarkSummarySent(now.Add(time.Minute)))
	assert.ErrorContains(t, q.MarkSummarySent(now.Add(time.Hour)), "already sent")
}

func TestQuotation_Archive(t *testing.T) {
	now := time.Now().UTC()
	q := newTestQuotation(t, now)

	require.NoError(t, q.Archive(now))
	assert.Equal(t, vo.StatusArchived, q.Status())
	assert.False(t, q.Status().IsTerminal())
	assert.ErrorContains(t, q.Approve(10, shared.NewMoney(80000, ""), "customer", now), "cannot transition")
}
