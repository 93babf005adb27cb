package service

import (
	"context"
	"errors"
	"time"

	"saunapos/internal/config"
	"saunapos/internal/dto"
	"saunapos/internal/model"
	"saunapos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error)
	DeactivateStaff(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.StaffRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.StaffRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	staff, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.buildLoginResponse(staff)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("malformed token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("malformed token")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.New("malformed token")
	}

	staff, err := s.repo.FindByID(ctx, uid)
	if err != nil || !staff.Active {
		return nil, errors.New("staff not found or inactive")
	}
	return s.buildLoginResponse(staff)
}

func (s *authService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	staff := &model.Staff{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staffToResponse(staff), nil
}

func (s *authService) ListStaff(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error) {
	staff, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		resp = append(resp, *staffToResponse(&staff[i]))
	}
	return resp, nil
}

func (s *authService) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("staff not found")
	}
	staff.Active = false
	return s.repo.Update(ctx, staff)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (s *authService) buildLoginResponse(staff *model.Staff) (*dto.LoginResponse, error) {
	access, err := s.generateToken(staff, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(staff, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *staffToResponse(staff),
	}, nil
}

func (s *authService) generateToken(staff *model.Staff, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  staff.ID.String(),
		"username": staff.Username,
		"role":     staff.Role,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func staffToResponse(m *model.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:       m.ID.String(),
		Username: m.Username,
		Name:     m.Name,
		Role:     m.Role,
		Active:   m.Active,
	}
}
