package tests

// Shared in-memory repository fakes. Services get the real computation paths;
// only persistence is swapped out, so these tests exercise the same code the
// HTTP layer calls.

import (
	"context"
	"errors"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/repository"
	"saunapos/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var kst = time.FixedZone("KST", 9*60*60)

// at builds a fixed KST instant in March 2025.
func at(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, kst)
}

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ── Settings fake ────────────────────────────────────────────────────────────

type fakeSettingsRepo struct{ settings model.PricingSettings }

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: model.PricingSettings{
		ID:                  1,
		StartHour:           10,
		DayPrice:            10000,
		NightPrice:          15000,
		DiscountAmount:      2000,
		ForeignPrice:        25000,
		ForeignAccrualHours: 24,
	}}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*model.PricingSettings, error) {
	return &r.settings, nil
}

func (r *fakeSettingsRepo) Save(_ context.Context, s *model.PricingSettings) error {
	r.settings = *s
	return nil
}

var _ repository.SettingsRepository = (*fakeSettingsRepo)(nil)

func newTestSettings() service.SettingsService {
	return service.NewSettingsService(newFakeSettingsRepo(), kst)
}

// ── Session fake ─────────────────────────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*model.LockerSession
	// lookupErr, when set, is returned by FindInUseByLocker to simulate a
	// storage failure.
	lookupErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*model.LockerSession)}
}

func (r *fakeSessionRepo) DB() *gorm.DB { return nil }

func (r *fakeSessionRepo) Create(_ context.Context, s *model.LockerSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LockerSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) FindInUseByLocker(_ context.Context, lockerNumber int) (*model.LockerSession, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, s := range r.sessions {
		if s.LockerNumber == lockerNumber && s.Status == model.SessionInUse {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) ListInUse(_ context.Context) ([]model.LockerSession, error) {
	var out []model.LockerSession
	for _, s := range r.sessions {
		if s.Status == model.SessionInUse {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) List(_ context.Context, filter dto.SessionFilter) ([]model.LockerSession, int64, error) {
	var out []model.LockerSession
	for _, s := range r.sessions {
		if filter.Status != "" && filter.Status != "all" && s.Status != filter.Status {
			continue
		}
		if filter.BusinessDay != "" && s.BusinessDay != filter.BusinessDay {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *model.LockerSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) UpdateTx(_ *gorm.DB, s *model.LockerSession) error {
	r.sessions[s.ID] = s
	return nil
}

var _ repository.SessionRepository = (*fakeSessionRepo)(nil)

// ── Fee fake ─────────────────────────────────────────────────────────────────

type fakeFeeRepo struct {
	fees []model.AdditionalFee
}

func newFakeFeeRepo() *fakeFeeRepo { return &fakeFeeRepo{} }

func (r *fakeFeeRepo) CreateTx(_ *gorm.DB, f *model.AdditionalFee) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.CreatedAt = time.Now()
	r.fees = append(r.fees, *f)
	return nil
}

func (r *fakeFeeRepo) ListByBusinessDay(_ context.Context, businessDay string) ([]model.AdditionalFee, error) {
	var out []model.AdditionalFee
	for _, f := range r.fees {
		if f.BusinessDay == businessDay {
			out = append(out, f)
		}
	}
	return out, nil
}

var _ repository.FeeRepository = (*fakeFeeRepo)(nil)

// ── Rental fake ──────────────────────────────────────────────────────────────

type fakeRentalRepo struct {
	rentals map[uuid.UUID]*model.Rental
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: make(map[uuid.UUID]*model.Rental)}
}

func (r *fakeRentalRepo) Create(_ context.Context, rt *model.Rental) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	r.rentals[rt.ID] = rt
	return nil
}

func (r *fakeRentalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Rental, error) {
	rt, ok := r.rentals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rt, nil
}

func (r *fakeRentalRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]model.Rental, error) {
	var out []model.Rental
	for _, rt := range r.rentals {
		if rt.SessionID == sessionID {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *fakeRentalRepo) ListByBusinessDay(_ context.Context, businessDay string) ([]model.Rental, error) {
	var out []model.Rental
	for _, rt := range r.rentals {
		if rt.BusinessDay == businessDay {
			out = append(out, *rt)
		}
	}
	return out, nil
}

func (r *fakeRentalRepo) Update(_ context.Context, rt *model.Rental) error {
	r.rentals[rt.ID] = rt
	return nil
}

func (r *fakeRentalRepo) CountUnresolvedDeposits(_ context.Context, sessionID uuid.UUID) (int64, error) {
	var n int64
	for _, rt := range r.rentals {
		if rt.SessionID == sessionID && rt.DepositStatus == model.DepositReceived {
			n++
		}
	}
	return n, nil
}

var _ repository.RentalRepository = (*fakeRentalRepo)(nil)

// ── Closing / summary fakes ──────────────────────────────────────────────────

type fakeClosingRepo struct {
	closings map[string]*model.DayClosing
}

func newFakeClosingRepo() *fakeClosingRepo {
	return &fakeClosingRepo{closings: make(map[string]*model.DayClosing)}
}

func (r *fakeClosingRepo) Create(_ context.Context, c *model.DayClosing) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, exists := r.closings[c.BusinessDay]; exists {
		return errors.New("duplicate business day")
	}
	r.closings[c.BusinessDay] = c
	return nil
}

func (r *fakeClosingRepo) FindByBusinessDay(_ context.Context, businessDay string) (*model.DayClosing, error) {
	c, ok := r.closings[businessDay]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClosingRepo) List(_ context.Context, page, limit int) ([]model.DayClosing, int64, error) {
	var out []model.DayClosing
	for _, c := range r.closings {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

var _ repository.ClosingRepository = (*fakeClosingRepo)(nil)

type fakeSummaryRepo struct {
	summaries map[string]*model.DailySummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: make(map[string]*model.DailySummary)}
}

func (r *fakeSummaryRepo) Upsert(_ context.Context, s *model.DailySummary) error {
	r.summaries[s.BusinessDay] = s
	return nil
}

func (r *fakeSummaryRepo) FindByBusinessDay(_ context.Context, businessDay string) (*model.DailySummary, error) {
	s, ok := r.summaries[businessDay]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSummaryRepo) ListRange(_ context.Context, from, to string) ([]model.DailySummary, error) {
	var out []model.DailySummary
	for _, s := range r.summaries {
		if s.BusinessDay >= from && s.BusinessDay <= to {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.SummaryRepository = (*fakeSummaryRepo)(nil)

// ── Staff fake ───────────────────────────────────────────────────────────────

type fakeStaffRepo struct {
	staff map[uuid.UUID]*model.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uuid.UUID]*model.Staff)}
}

func (r *fakeStaffRepo) Create(_ context.Context, s *model.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for _, existing := range r.staff {
		if existing.Username == s.Username {
			return errors.New("username already taken")
		}
	}
	r.staff[s.ID] = s
	return nil
}

func (r *fakeStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeStaffRepo) FindByUsername(_ context.Context, username string) (*model.Staff, error) {
	for _, s := range r.staff {
		if s.Username == username && s.Active {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStaffRepo) List(_ context.Context, includeInactive bool) ([]model.Staff, error) {
	var out []model.Staff
	for _, s := range r.staff {
		if !includeInactive && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, s *model.Staff) error {
	r.staff[s.ID] = s
	return nil
}

var _ repository.StaffRepository = (*fakeStaffRepo)(nil)
