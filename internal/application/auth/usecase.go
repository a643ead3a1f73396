// Package auth implementa el ciclo de vida de la sesión: login, logout, revalidación.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/smartbodega-api/internal/application/dto"
	"github.com/jhoicas/smartbodega-api/internal/domain"
	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
	"github.com/jhoicas/smartbodega-api/pkg/jwt"
	"github.com/jhoicas/smartbodega-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
// Estados: anónimo -> autenticado (Login) -> anónimo (Logout o revalidación fallida).
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtCfg:      jwtCfg,
		log:         log.Component("auth"),
		now:         time.Now,
	}
}

// Login verifica email, contraseña, estado y rol en ese orden; registra el último acceso,
// firma el token y persiste la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*entity.Session, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Info().Str("email", email).Msg("login fallido: usuario no encontrado")
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Info().Str("email", email).Msg("login fallido: credenciales inválidas")
		return nil, domain.ErrInvalidCredential
	}
	if !user.IsActive() {
		uc.log.Info().Str("email", email).Msg("login fallido: cuenta inactiva")
		return nil, domain.ErrInactiveAccount
	}
	if in.Role != user.Role {
		uc.log.Info().Str("email", email).Str("role", in.Role).Msg("login fallido: rol no corresponde")
		return nil, domain.ErrRoleMismatch
	}

	now := uc.now().UTC()
	updated, err := uc.userRepo.Update(ctx, user.ID, map[string]any{"last_access": now})
	if err != nil {
		return nil, fmt.Errorf("login: registrar último acceso: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, updated.ID, updated.Email, updated.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	snapshot := *updated
	snapshot.PasswordHash = ""
	session := &entity.Session{
		TokenID:         token.ID,
		Token:           token.Raw,
		User:            snapshot,
		IsAuthenticated: true,
		IssuedAt:        token.IssuedAt,
		ExpiresAt:       token.ExpiresAt,
	}
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("login: guardar sesión: %w", err)
	}
	uc.log.Info().Int64("user_id", updated.ID).Str("role", updated.Role).Msg("inicio de sesión exitoso")
	return session, nil
}

// Logout elimina la sesión del token. Nunca falla: los errores solo se registran.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) {
	tokenID, err := jwt.TokenID(token)
	if err != nil {
		uc.log.Debug().Err(err).Msg("logout con token ilegible")
		return
	}
	if err := uc.sessionRepo.Delete(ctx, tokenID); err != nil {
		uc.log.Error().Err(err).Str("token_id", tokenID).Msg("no se pudo cerrar la sesión")
		return
	}
	uc.log.Info().Str("token_id", tokenID).Msg("sesión cerrada")
}

// CheckAuth devuelve la sesión persistida para token, o nil si no existe.
// No verifica la firma; para eso está ValidateToken.
func (uc *AuthUseCase) CheckAuth(ctx context.Context, token string) (*entity.Session, error) {
	tokenID, err := jwt.TokenID(token)
	if err != nil {
		return nil, nil
	}
	session, err := uc.sessionRepo.Get(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token != token {
		return nil, nil
	}
	return session, nil
}

// ValidateToken verifica firma y expiración y que la sesión siga persistida (no revocada).
func (uc *AuthUseCase) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	session, err := uc.sessionRepo.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Token != token {
		return nil, fmt.Errorf("%w: sesión revocada", domain.ErrUnauthorized)
	}
	return claims, nil
}

// CurrentUser usuario de la sesión, o nil si no hay sesión.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	session, err := uc.CheckAuth(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}
	u := session.User
	return &u, nil
}

// Resolve combina CheckAuth y ValidateToken; cualquier fallo fuerza el logout del token.
func (uc *AuthUseCase) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	session, err := uc.CheckAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uc.ValidateToken(ctx, token); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			uc.log.Warn().Str("token_id", session.TokenID).Int64("user_id", session.User.ID).Msg("sesión inválida, cierre forzado")
			uc.Logout(ctx, token)
		}
		return nil, err
	}
	return session, nil
}
