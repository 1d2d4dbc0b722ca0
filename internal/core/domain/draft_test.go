package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbooks/expense_booking_app/internal/apperrors"
	"github.com/finbooks/expense_booking_app/internal/core/domain"
)

func seededLine(claimID int64, amount string) domain.JournalLine {
	id := claimID
	return domain.JournalLine{
		LineType:      domain.Debit,
		AccountCode:   "6000",
		DebitAmount:   decimal.RequireFromString(amount),
		CreditAmount:  decimal.Zero,
		VoucherDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PostDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		SourceClaimID: &id,
	}
}

func draftingSession(t *testing.T, amounts ...string) *domain.DraftSession {
	t.Helper()
	session := domain.NewDraftSession()
	claimIDs := make([]int64, len(amounts))
	seeded := make([]domain.JournalLine, len(amounts))
	for i, amount := range amounts {
		claimIDs[i] = int64(i + 1)
		seeded[i] = seededLine(claimIDs[i], amount)
	}
	require.NoError(t, session.StartDrafting(claimIDs, seeded))
	return session
}

func TestStartDrafting(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("seeds one debit line per claim", func(t *testing.T) {
		session := draftingSession(t, "60.00", "40.00")

		assert.Equal(t, domain.StateDrafting, session.State)
		assert.Len(t, session.Lines, 2)
		assert.Equal(t, 2, session.SeededLineCount())
		for i, line := range session.Lines {
			assert.Equal(t, domain.Debit, line.LineType)
			require.NotNil(t, line.SourceClaimID)
			assert.Equal(t, session.SelectedClaimIDs[i], *line.SourceClaimID)
			assert.True(t, line.CreditAmount.IsZero())
		}
	})

	t.Run("rejects empty selection", func(t *testing.T) {
		session := domain.NewDraftSession()
		err := session.StartDrafting(nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, domain.StateSelecting, session.State)
	})

	t.Run("rejects seeded credit line", func(t *testing.T) {
		session := domain.NewDraftSession()
		bad := seededLine(1, "10.00")
		bad.LineType = domain.Credit
		err := session.StartDrafting([]int64{1}, []domain.JournalLine{bad})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects selection while confirmed", func(t *testing.T) {
		session := draftingSession(t, "10.00")
		require.NoError(t, session.AppendCreditLine(today))
		require.NoError(t, session.EditLine(1, domain.LineEdit{Amount: strPtr("10.00")}))
		require.NoError(t, session.Confirm(100000))

		err := session.StartDrafting([]int64{2}, []domain.JournalLine{seededLine(2, "5.00")})
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
		assert.Equal(t, domain.StateConfirmed, session.State)
	})
}

func TestSameSelection(t *testing.T) {
	session := draftingSession(t, "60.00", "40.00")

	tests := []struct {
		name     string
		claimIDs []int64
		want     bool
	}{
		{"identical order", []int64{1, 2}, true},
		{"different order", []int64{2, 1}, true},
		{"different set", []int64{1, 3}, false},
		{"subset", []int64{1}, false},
		{"superset", []int64{1, 2, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.SameSelection(tt.claimIDs))
		})
	}

	t.Run("false before drafting", func(t *testing.T) {
		fresh := domain.NewDraftSession()
		assert.False(t, fresh.SameSelection(nil))
	})
}

func TestRemoveLine(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("seeded lines cannot be removed", func(t *testing.T) {
		session := draftingSession(t, "60.00", "40.00")
		err := session.RemoveLine(0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
		assert.Len(t, session.Lines, 2)
	})

	t.Run("appended credit lines can be removed", func(t *testing.T) {
		session := draftingSession(t, "60.00")
		require.NoError(t, session.AppendCreditLine(today))
		require.NoError(t, session.RemoveLine(1))
		assert.Len(t, session.Lines, 1)
	})

	t.Run("out of range index", func(t *testing.T) {
		session := draftingSession(t, "60.00")
		assert.ErrorIs(t, session.RemoveLine(5), apperrors.ErrValidation)
		assert.ErrorIs(t, session.RemoveLine(-1), apperrors.ErrValidation)
	})
}

func TestSetLineType(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	session := draftingSession(t, "60.00")
	require.NoError(t, session.AppendCreditLine(today))
	require.NoError(t, session.EditLine(1, domain.LineEdit{Amount: strPtr("25.00")}))

	require.NoError(t, session.SetLineType(1, domain.Debit))
	line := session.Lines[1]
	assert.Equal(t, domain.Debit, line.LineType)
	assert.True(t, line.DebitAmount.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, line.CreditAmount.IsZero())

	require.NoError(t, session.SetLineType(1, domain.Credit))
	line = session.Lines[1]
	assert.True(t, line.CreditAmount.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, line.DebitAmount.IsZero())

	assert.ErrorIs(t, session.SetLineType(1, domain.LineType("transfer")), apperrors.ErrValidation)
}

func TestEditLine(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("amount applies to current side", func(t *testing.T) {
		session := draftingSession(t, "60.00")
		require.NoError(t, session.AppendCreditLine(today))

		require.NoError(t, session.EditLine(0, domain.LineEdit{Amount: strPtr("61.50")}))
		assert.True(t, session.Lines[0].DebitAmount.Equal(decimal.RequireFromString("61.50")))

		require.NoError(t, session.EditLine(1, domain.LineEdit{Amount: strPtr("61.50")}))
		assert.True(t, session.Lines[1].CreditAmount.Equal(decimal.RequireFromString("61.50")))
	})

	t.Run("nil fields untouched", func(t *testing.T) {
		session := draftingSession(t, "60.00")
		before := session.Lines[0]
		require.NoError(t, session.EditLine(0, domain.LineEdit{AccountDesc: strPtr("Travel")}))
		assert.Equal(t, "Travel", session.Lines[0].AccountDesc)
		assert.Equal(t, before.AccountCode, session.Lines[0].AccountCode)
		assert.True(t, before.DebitAmount.Equal(session.Lines[0].DebitAmount))
	})

	t.Run("rejects bad amounts", func(t *testing.T) {
		session := draftingSession(t, "60.00")
		assert.ErrorIs(t, session.EditLine(0, domain.LineEdit{Amount: strPtr("abc")}), apperrors.ErrValidation)
		assert.ErrorIs(t, session.EditLine(0, domain.LineEdit{Amount: strPtr("-5.00")}), apperrors.ErrValidation)
	})
}

func TestCheckBalance(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unbalanced draft rejected with difference", func(t *testing.T) {
		session := draftingSession(t, "60.00", "40.00")
		err := session.CheckBalance()
		require.ErrorIs(t, err, apperrors.ErrUnbalanced)
		assert.Contains(t, err.Error(), "100")
	})

	t.Run("exact decimal equality", func(t *testing.T) {
		session := draftingSession(t, "0.10", "0.20")
		require.NoError(t, session.AppendCreditLine(today))
		require.NoError(t, session.EditLine(2, domain.LineEdit{Amount: strPtr("0.30")}))
		assert.NoError(t, session.CheckBalance())
	})

	t.Run("check mutates nothing and is repeatable", func(t *testing.T) {
		session := draftingSession(t, "60.00", "40.00")
		require.NoError(t, session.AppendCreditLine(today))
		require.NoError(t, session.EditLine(2, domain.LineEdit{Amount: strPtr("100.00")}))

		linesBefore := append([]domain.JournalLine(nil), session.Lines...)
		assert.NoError(t, session.CheckBalance())
		assert.NoError(t, session.CheckBalance())
		assert.Equal(t, linesBefore, session.Lines)
		assert.Equal(t, domain.StateDrafting, session.State)
	})
}

func TestConfirmAndAcknowledge(t *testing.T) {
	session := draftingSession(t, "10.00")

	require.NoError(t, session.Confirm(100001))
	assert.Equal(t, domain.StateConfirmed, session.State)
	assert.Equal(t, int64(100001), session.VoucherNo)

	assert.ErrorIs(t, session.Confirm(100002), apperrors.ErrInvalidOperation)

	require.NoError(t, session.Acknowledge())
	assert.Equal(t, domain.StateSelecting, session.State)
	assert.Empty(t, session.SelectedClaimIDs)
	assert.Empty(t, session.Lines)
	assert.Zero(t, session.VoucherNo)

	assert.ErrorIs(t, session.Acknowledge(), apperrors.ErrInvalidOperation)
}

func strPtr(s string) *string {
	return &s
}
