package tests

import (
	"context"
	"testing"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingFixture struct {
	svc       service.ClosingService
	closings  *fakeClosingRepo
	sessions  *fakeSessionRepo
	fees      *fakeFeeRepo
	rentals   *fakeRentalRepo
	summaries *fakeSummaryRepo
	now       time.Time
}

func newClosingFixture(start time.Time) *closingFixture {
	f := &closingFixture{
		closings:  newFakeClosingRepo(),
		sessions:  newFakeSessionRepo(),
		fees:      newFakeFeeRepo(),
		rentals:   newFakeRentalRepo(),
		summaries: newFakeSummaryRepo(),
		now:       start,
	}
	f.svc = service.NewClosingServiceWithClock(
		f.closings, f.sessions, f.fees, f.rentals, f.summaries,
		newTestSettings(), nil,
		func() time.Time { return f.now },
	)
	return f
}

// seedDay loads one business day of activity:
// two checked-out sessions (10000 cash + 15000 card), one cancellation,
// one overstay fee (5000 card), one rental (2000 fee + 5000 held deposit, 7000 cash).
// Expected drawer: cash 17000, card 20000, transfer 0.
func (f *closingFixture) seedDay(t *testing.T, businessDay string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.sessions.Create(ctx, &model.LockerSession{
		LockerNumber: 1, StaffID: uuid.New(), BusinessDay: businessDay,
		EntryTier: "day", BasePrice: 10000, FinalPrice: 10000,
		Status: model.SessionCheckedOut, CashAmount: 10000,
	}))
	require.NoError(t, f.sessions.Create(ctx, &model.LockerSession{
		LockerNumber: 2, StaffID: uuid.New(), BusinessDay: businessDay,
		EntryTier: "night", BasePrice: 15000, FinalPrice: 15000,
		Status: model.SessionCheckedOut, CardAmount: 15000,
	}))
	require.NoError(t, f.sessions.Create(ctx, &model.LockerSession{
		LockerNumber: 3, StaffID: uuid.New(), BusinessDay: businessDay,
		EntryTier: "day", BasePrice: 10000, FinalPrice: 10000,
		Status: model.SessionCancelled,
	}))

	require.NoError(t, f.fees.CreateTx(nil, &model.AdditionalFee{
		SessionID: uuid.New(), Amount: 5000, OriginalAmount: 5000,
		AccrualCount: 1, BusinessDay: businessDay, CardAmount: 5000,
	}))

	require.NoError(t, f.rentals.Create(ctx, &model.Rental{
		SessionID: uuid.New(), Item: "blanket", Fee: 2000,
		DepositAmount: 5000, DepositStatus: model.DepositReceived,
		BusinessDay: businessDay, CashAmount: 7000, RentedAt: f.now,
	}))
}

func TestCloseDayNormalDeviation(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	f.seedDay(t, "2025-03-10")

	resp, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 17000, Card: 20000},
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.BusinessDay)
	assert.Equal(t, 37000, resp.Expected.Total)
	assert.Equal(t, 0, resp.Deviation.Amount)
	assert.Equal(t, "normal", resp.Deviation.Class)

	// Summary finalized alongside
	assert.True(t, resp.Summary.Closed)
	assert.Equal(t, 25000, resp.Summary.EntryTotal)
	assert.Equal(t, 5000, resp.Summary.AdditionalTotal)
	assert.Equal(t, 2000, resp.Summary.RentalTotal)
	assert.Equal(t, 5000, resp.Summary.DepositHeld)
	assert.Equal(t, 1, resp.Summary.Cancellations)

	stored, err := f.summaries.FindByBusinessDay(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.True(t, stored.Closed)
}

func TestCloseDayWarningDeviation(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	f.seedDay(t, "2025-03-10")

	// 1000 short on 37000 ≈ -2.7% — warning band
	resp, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 16000, Card: 20000},
	})
	require.NoError(t, err)

	assert.Equal(t, -1000, resp.Deviation.Amount)
	assert.Equal(t, "warning", resp.Deviation.Class)
}

func TestCloseDayCriticalRequiresNotes(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	f.seedDay(t, "2025-03-10")

	// Half the drawer missing — critical, refused without notes
	_, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 8500, Card: 10000},
	})
	assert.ErrorContains(t, err, "notes are required")

	notes := "drawer recount pending, incident filed"
	resp, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 8500, Card: 10000},
		Notes:       &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "critical", resp.Deviation.Class)
	require.NotNil(t, resp.Notes)
}

func TestCloseDayTwiceRejected(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	f.seedDay(t, "2025-03-10")

	_, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 17000, Card: 20000},
	})
	require.NoError(t, err)

	_, err = f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 17000, Card: 20000},
	})
	assert.ErrorContains(t, err, "already closed")
}

func TestBuildSummaryIgnoresOtherDays(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	f.seedDay(t, "2025-03-10")

	// An overstay fee settled the next day must not leak into the 10th
	require.NoError(t, f.fees.CreateTx(nil, &model.AdditionalFee{
		SessionID: uuid.New(), Amount: 15000, OriginalAmount: 15000,
		AccrualCount: 1, BusinessDay: "2025-03-11", CashAmount: 15000,
	}))

	summary, err := f.svc.BuildSummary(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 5000, summary.AdditionalTotal)

	next, err := f.svc.BuildSummary(context.Background(), "2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, 15000, next.AdditionalTotal)
	assert.Equal(t, 0, next.EntryTotal)
}

func TestGetClosing(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	f.seedDay(t, "2025-03-10")

	_, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 17000, Card: 20000},
	})
	require.NoError(t, err)

	resp, err := f.svc.GetClosing(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, 37000, resp.Declared.Total)

	_, err = f.svc.GetClosing(context.Background(), "2025-03-09")
	assert.ErrorContains(t, err, "no closing recorded")
}

func TestCloseDayEmptyDayNonzeroDeclaration(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))
	// No activity seeded: expected totals are all zero.

	// Money in the drawer with nothing sold is fully unexplained — critical,
	// and refused until the manager attaches notes.
	_, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 50000},
	})
	assert.ErrorContains(t, err, "notes are required")

	notes := "unexplained cash found at opening, owner notified"
	resp, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{
		Declaration: dto.ClosingDeclaration{Cash: 50000},
		Notes:       &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "critical", resp.Deviation.Class)
	assert.Equal(t, 50000, resp.Deviation.Amount)
	assert.True(t, resp.Deviation.Percentage.Equal(decimal.NewFromInt(100)))
}

func TestCloseDayEmptyDayZeroDeclaration(t *testing.T) {
	f := newClosingFixture(at(10, 23, 0))

	resp, err := f.svc.CloseDay(context.Background(), uuid.New(), dto.CloseDayRequest{})
	require.NoError(t, err)
	assert.Equal(t, "normal", resp.Deviation.Class)
	assert.Equal(t, 0, resp.Expected.Total)
	assert.True(t, resp.Deviation.Percentage.IsZero())
}
