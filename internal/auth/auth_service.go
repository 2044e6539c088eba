package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "github.com/kingxjullien14/nkp-ems/internal/auth/errors"
	"github.com/kingxjullien14/nkp-ems/internal/employee"
	"github.com/kingxjullien14/nkp-ems/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"

	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 24 * 7 * time.Hour
)

type Service interface {
	// Login checks the admins table first, then employees, and issues a
	// token pair plus the session on the first credential match.
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, resp AuthResponse, err error)

	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)

	// Logout revokes the presented access token until its natural expiry.
	Logout(ctx context.Context, accessToken string) error

	Me(ctx context.Context, session Session) (*AuthResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	rdb          *redis.Client
	logger       *zap.Logger
}

func NewService(repo Repository, employeeRepo employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, employeeRepo: employeeRepo, rdb: rdb, logger: l}
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, AuthResponse, error) {
	s.logger.Debug("login requested", zap.String("username", username))

	// The first (code, password) pair that matches wins. Admins are
	// consulted first, but a failed admin compare still falls through
	// to the employees table: the same code can exist in both.
	admin, err := s.repo.FindAdminByCode(ctx, username)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) == nil {
			return s.issueSession(username, RoleAdmin, AuthResponse{Role: RoleAdmin, Code: admin.AdminCode})
		}
		s.logger.Warn("admin login rejected", zap.String("username", username))
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		s.logger.Error("admin lookup failed", zap.Error(err))
		return "", "", AuthResponse{}, err
	}

	empl, err := s.employeeRepo.FindByCode(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("employee lookup failed", zap.Error(err))
		return "", "", AuthResponse{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(empl.Password), []byte(password)) != nil {
		s.logger.Warn("employee login rejected", zap.String("username", username))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issueSession(username, RoleEmployee, AuthResponse{
		Role:     RoleEmployee,
		Code:     empl.EmpCode,
		FullName: empl.FullName,
	})
}

func (s *service) issueSession(code, role string, resp AuthResponse) (string, string, AuthResponse, error) {
	accessToken, err := generateToken(code, role, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(code, role, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("code", code), zap.String("role", role))
	return accessToken, refreshToken, resp, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := parseClaims(refreshToken)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	code, _ := claims["code"].(string)
	role, _ := claims["role"].(string)
	if code == "" || role == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	resp := AuthResponse{Role: role, Code: code}
	if role == RoleEmployee {
		empl, err := s.employeeRepo.FindByCode(ctx, code)
		if err != nil {
			return "", "", AuthResponse{}, autherrors.ErrPrincipalNotFound
		}
		resp.FullName = empl.FullName
	} else {
		if _, err := s.repo.FindAdminByCode(ctx, code); err != nil {
			return "", "", AuthResponse{}, autherrors.ErrPrincipalNotFound
		}
	}

	return s.issueSession(code, role, resp)
}

func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := parseClaims(accessToken)
	if err != nil {
		return autherrors.ErrInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return autherrors.ErrInvalidToken
	}

	ttl := time.Minute
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if until := time.Until(exp.Time); until > 0 {
			ttl = until
		}
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, middleware.RevokedTokenKey(tokenID), "revoked", ttl).Err(); err != nil {
			s.logger.Error("revoke token failed", zap.Error(err))
			return err
		}
	}

	s.logger.Info("logout success", zap.String("jti", tokenID))
	return nil
}

func (s *service) Me(ctx context.Context, session Session) (*AuthResponse, error) {
	resp := &AuthResponse{Role: session.Role, Code: session.Code}

	if session.Role == RoleEmployee {
		empl, err := s.employeeRepo.FindByCode(ctx, session.Code)
		if err != nil {
			return nil, autherrors.ErrPrincipalNotFound
		}
		resp.FullName = empl.FullName
	}

	return resp, nil
}

func generateToken(code, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"code": code,
		"role": role,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
