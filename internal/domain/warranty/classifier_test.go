package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servit/internal/domain/part"
	partvo "servit/internal/domain/part/valueobjects"
	sharedvo "servit/internal/domain/shared/valueobjects"
	vo "servit/internal/domain/warranty/valueobjects"
)

func purchasedPart(t *testing.T, purchasedAt time.Time, warrantyUntil time.Time) *part.Part {
	t.Helper()
	now := purchasedAt
	p, err := part.NewPart("SCR-15-OLED", "SN-4451", "15in OLED panel", partvo.TypeStandard, sharedvo.NewMoney(80000, ""), 1, now)
	require.NoError(t, err)
	require.NoError(t, p.SetID(10))
	require.NoError(t, p.MarkCustomerPurchased(purchasedAt, warrantyUntil, now))
	return p
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cfg := ClassifierConfig{AutoReplacementDays: 7}

	t.Run("tampering voids everything", func(t *testing.T) {
		p := purchasedPart(t, now.Add(-24*time.Hour), now.Add(300*24*time.Hour))

		v := Classify(p, true, cfg, now)
		assert.Equal(t, vo.KindOutOfWarrantyChargeable, v.Kind)
		assert.Equal(t, CodeChargeable, v.StatusCode)
	})

	t.Run("unknown serial goes to admin review", func(t *testing.T) {
		v := Classify(nil, false, cfg, now)
		assert.Equal(t, vo.KindPendingAdminReview, v.Kind)
		assert.Equal(t, CodeAdminReview, v.StatusCode)
	})

	t.Run("expired warranty is chargeable", func(t *testing.T) {
		p := purchasedPart(t, now.Add(-400*24*time.Hour), now.Add(-35*24*time.Hour))

		v := Classify(p, false, cfg, now)
		assert.Equal(t, vo.KindOutOfWarrantyChargeable, v.Kind)
	})

	t.Run("no warranty on record is chargeable", func(t *testing.T) {
		p, err := part.NewPart("SCR-15-OLED", "SN-9000", "15in OLED panel", partvo.TypeStandard, sharedvo.NewMoney(80000, ""), 1, now)
		require.NoError(t, err)

		v := Classify(p, false, cfg, now)
		assert.Equal(t, vo.KindOutOfWarrantyChargeable, v.Kind)
	})

	t.Run("within the replacement window", func(t *testing.T) {
		p := purchasedPart(t, now.Add(-6*24*time.Hour), now.Add(300*24*time.Hour))

		v := Classify(p, false, cfg, now)
		assert.Equal(t, vo.KindAutoReplacement, v.Kind)
		assert.Equal(t, CodeAutoReplacement, v.StatusCode)
	})

	t.Run("replacement window boundary is inclusive", func(t *testing.T) {
		p := purchasedPart(t, now.Add(-7*24*time.Hour), now.Add(300*24*time.Hour))

		v := Classify(p, false, cfg, now)
		assert.Equal(t, vo.KindAutoReplacement, v.Kind)
	})

	t.Run("past the window but covered is a repair", func(t *testing.T) {
		p := purchasedPart(t, now.Add(-30*24*time.Hour), now.Add(300*24*time.Hour))

		v := Classify(p, false, cfg, now)
		assert.Equal(t, vo.KindInWarrantyRepair, v.Kind)
		assert.Equal(t, CodeInWarrantyRepair, v.StatusCode)
	})

	t.Run("tampering outranks a valid auto replacement", func(t *testing.T) {
		p := purchasedPart(t, now.Add(-24*time.Hour), now.Add(300*24*time.Hour))

		v := Classify(p, true, cfg, now)
		assert.Equal(t, vo.KindOutOfWarrantyChargeable, v.Kind)
	})
}

func TestClaim_Lifecycle(t *testing.T) {
	now := time.Now().UTC()
	partID := uint(10)

	newOpenClaim := func(t *testing.T) *Claim {
		t.Helper()
		c, err := NewClaim("wc_3jD9xP", &partID, "SN-4451", "RT-20260829-0002", vo.KindPendingAdminReview, "dead pixels after two weeks", false, now)
		require.NoError(t, err)
		require.NoError(t, c.SetID(1))
		return c
	}

	t.Run("approve then close", func(t *testing.T) {
		c := newOpenClaim(t)

		require.NoError(t, c.Approve("admin-01", "verified against supplier invoice", now))
		assert.Equal(t, vo.StatusApproved, c.Status())
		assert.True(t, c.Status().IsActive())

		require.NoError(t, c.Close("admin-01", now))
		assert.Equal(t, vo.StatusClosed, c.Status())
		assert.False(t, c.Status().IsActive())
	})

	t.Run("deny requires notes", func(t *testing.T) {
		c := newOpenClaim(t)

		assert.ErrorContains(t, c.Deny("admin-01", "", now), "denial notes are required")
		require.NoError(t, c.Deny("admin-01", "liquid damage, not a defect", now))
		assert.Equal(t, vo.StatusDenied, c.Status())
		assert.False(t, c.Status().IsActive())
	})

	t.Run("denied is terminal", func(t *testing.T) {
		c := newOpenClaim(t)
		require.NoError(t, c.Deny("admin-01", "liquid damage", now))

		assert.ErrorContains(t, c.Approve("admin-01", "", now), "cannot approve")
		assert.ErrorContains(t, c.Close("admin-01", now), "cannot close")
	})
}
