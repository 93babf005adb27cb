package tests

import (
	"context"
	"testing"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/pricing"
	"saunapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rentalFixture struct {
	svc      service.RentalService
	rentals  *fakeRentalRepo
	sessions *fakeSessionRepo
	now      time.Time
}

func newRentalFixture(start time.Time) *rentalFixture {
	f := &rentalFixture{
		rentals:  newFakeRentalRepo(),
		sessions: newFakeSessionRepo(),
		now:      start,
	}
	f.svc = service.NewRentalServiceWithClock(
		f.rentals, f.sessions, newTestSettings(),
		func() time.Time { return f.now },
	)
	return f
}

func (f *rentalFixture) openSession(t *testing.T) uuid.UUID {
	t.Helper()
	session := &model.LockerSession{
		LockerNumber: 1,
		StaffID:      uuid.New(),
		EnteredAt:    f.now,
		BusinessDay:  "2025-03-10",
		EntryTier:    "day",
		BasePrice:    10000,
		FinalPrice:   10000,
		Status:       model.SessionInUse,
	}
	require.NoError(t, f.sessions.Create(context.Background(), session))
	return session.ID
}

func TestAttachRentalWithDeposit(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	resp, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:          "blanket",
		Fee:           2000,
		DepositAmount: 5000,
		Payment:       pricing.Split{Cash: 7000},
	})
	require.NoError(t, err)

	assert.Equal(t, model.DepositReceived, resp.DepositStatus)
	assert.Equal(t, "2025-03-10", resp.BusinessDay)
	assert.Equal(t, 2000, resp.Fee)
	assert.Equal(t, 5000, resp.DepositAmount)
}

func TestAttachRentalPaymentMustCoverFeePlusDeposit(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	_, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:          "towel",
		Fee:           2000,
		DepositAmount: 5000,
		Payment:       pricing.Split{Cash: 2000}, // deposit missing
	})
	var mismatch *pricing.AmountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 7000, mismatch.Target)
}

func TestAttachRentalNoDeposit(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	resp, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:    "towel",
		Fee:     1000,
		Payment: pricing.Split{Card: 1000},
	})
	require.NoError(t, err)
	assert.Equal(t, model.DepositNone, resp.DepositStatus)
}

func TestSettleRefundKeepsBusinessDay(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	attached, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:          "blanket",
		Fee:           2000,
		DepositAmount: 5000,
		Payment:       pricing.Split{Cash: 7000},
	})
	require.NoError(t, err)

	// Return two accounting days later
	f.now = at(12, 15, 0)

	settled, err := f.svc.Settle(context.Background(), uuid.MustParse(attached.ID), dto.SettleRentalRequest{
		Deposit: model.DepositRefunded,
	})
	require.NoError(t, err)

	assert.Equal(t, model.DepositRefunded, settled.DepositStatus)
	assert.Equal(t, "2025-03-10", settled.BusinessDay) // unchanged
	require.NotNil(t, settled.ReturnedAt)
}

func TestSettleForfeitRestampsBusinessDay(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	attached, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:          "blanket",
		Fee:           2000,
		DepositAmount: 5000,
		Payment:       pricing.Split{Cash: 7000},
	})
	require.NoError(t, err)

	f.now = at(12, 15, 0)

	settled, err := f.svc.Settle(context.Background(), uuid.MustParse(attached.ID), dto.SettleRentalRequest{
		Deposit: model.DepositForfeited,
	})
	require.NoError(t, err)

	// The kept deposit is revenue of the day it was kept
	assert.Equal(t, model.DepositForfeited, settled.DepositStatus)
	assert.Equal(t, "2025-03-12", settled.BusinessDay)
}

func TestSettleTwiceRejected(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	attached, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:          "towel",
		Fee:           1000,
		DepositAmount: 3000,
		Payment:       pricing.Split{Cash: 4000},
	})
	require.NoError(t, err)
	id := uuid.MustParse(attached.ID)

	_, err = f.svc.Settle(context.Background(), id, dto.SettleRentalRequest{Deposit: model.DepositRefunded})
	require.NoError(t, err)

	_, err = f.svc.Settle(context.Background(), id, dto.SettleRentalRequest{Deposit: model.DepositRefunded})
	assert.ErrorContains(t, err, "no deposit to settle")
}

func TestAttachRentalClosedSessionRejected(t *testing.T) {
	f := newRentalFixture(at(10, 14, 0))
	sessionID := f.openSession(t)

	session, _ := f.sessions.FindByID(context.Background(), sessionID)
	session.Status = model.SessionCheckedOut

	_, err := f.svc.Attach(context.Background(), sessionID, dto.AttachRentalRequest{
		Item:    "towel",
		Fee:     1000,
		Payment: pricing.Split{Cash: 1000},
	})
	assert.ErrorContains(t, err, "no longer in use")
}
