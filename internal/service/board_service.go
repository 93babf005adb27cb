package service

import (
	"context"
	"encoding/json"
	"time"

	"saunapos/internal/dto"
	"saunapos/internal/pricing"
	"saunapos/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	boardCacheKey = "board:snapshot"
	boardCacheTTL = 3 * time.Second
)

type BoardService interface {
	// Board renders every locker's live state at "now". The front desk polls
	// it every few seconds; nothing is incrementally maintained — each call
	// recomputes accrual from the source timestamps.
	Board(ctx context.Context) (*dto.BoardResponse, error)
}

type boardService struct {
	repo        repository.SessionRepository
	settings    SettingsService
	rdb         *redis.Client
	lockerCount int
	now         func() time.Time
}

func NewBoardService(repo repository.SessionRepository, settings SettingsService, rdb *redis.Client, lockerCount int) BoardService {
	return &boardService{repo: repo, settings: settings, rdb: rdb, lockerCount: lockerCount, now: time.Now}
}

// NewBoardServiceWithClock pins "now" for tests.
func NewBoardServiceWithClock(repo repository.SessionRepository, settings SettingsService, rdb *redis.Client, lockerCount int, now func() time.Time) BoardService {
	svc := NewBoardService(repo, settings, rdb, lockerCount).(*boardService)
	svc.now = now
	return svc
}

func (s *boardService) Board(ctx context.Context) (*dto.BoardResponse, error) {
	// Short-lived cache absorbs multiple terminals polling in lockstep.
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, boardCacheKey).Result(); err == nil {
			var cached dto.BoardResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	tariff, err := s.settings.Tariff(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListInUse(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := tariff.BusinessDay(now)

	lockers := make([]dto.LockerStatus, s.lockerCount)
	for i := range lockers {
		lockers[i] = dto.LockerStatus{LockerNumber: i + 1, Color: dto.LockerEmpty}
	}

	for i := range sessions {
		sess := &sessions[i]
		if sess.LockerNumber < 1 || sess.LockerNumber > s.lockerCount {
			continue
		}
		accrual := tariff.AdditionalFee(sess.EnteredAt, pricing.Tier(sess.EntryTier), now, sess.Foreign)

		status := dto.LockerStatus{
			LockerNumber: sess.LockerNumber,
			SessionID:    sess.ID.String(),
			EntryTier:    sess.EntryTier,
			BusinessDay:  sess.BusinessDay,
			Badge:        accrual.Count,
			Fee:          accrual.Fee,
		}
		switch {
		case accrual.Count > 0:
			status.Color = dto.LockerOverstay
		case sess.BusinessDay != today:
			status.Color = dto.LockerCarryover
		case sess.EntryTier == string(pricing.TierDay):
			status.Color = dto.LockerDay
		default:
			status.Color = dto.LockerNight
		}
		lockers[sess.LockerNumber-1] = status
	}

	resp := &dto.BoardResponse{BusinessDay: today, Lockers: lockers}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, boardCacheKey, raw, boardCacheTTL)
		}
	}
	return resp, nil
}
