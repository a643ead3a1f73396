package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/smartbodega-api/internal/domain/entity"
	"github.com/jhoicas/smartbodega-api/internal/domain/repository"
	"github.com/jhoicas/smartbodega-api/pkg/config"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore persiste cada sesión como dos llaves con el mismo TTL:
// <prefix>token:<jti> guarda el bearer token y <prefix>user:<jti> el snapshot del usuario.
// La sesión existe solo si ambas llaves existen.
type SessionStore struct {
	client    *goredis.Client
	keyPrefix string
	now       func() time.Time
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewSessionStore construye el store; keyPrefix vacío usa "session:".
func NewSessionStore(client *goredis.Client, keyPrefix string) *SessionStore {
	if keyPrefix == "" {
		keyPrefix = "session:"
	}
	return &SessionStore{client: client, keyPrefix: keyPrefix, now: time.Now}
}

type storedSession struct {
	User            entity.User `json:"user"`
	IsAuthenticated bool        `json:"is_authenticated"`
	IssuedAt        time.Time   `json:"issued_at"`
	ExpiresAt       time.Time   `json:"expires_at"`
}

// Save guarda el token y los datos de usuario en dos llaves con el TTL restante de la sesión.
func (s *SessionStore) Save(ctx context.Context, session *entity.Session) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("redis: sesión %s ya vencida", session.TokenID)
	}
	raw, err := json.Marshal(storedSession{
		User:            session.User,
		IsAuthenticated: session.IsAuthenticated,
		IssuedAt:        session.IssuedAt,
		ExpiresAt:       session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("redis: serializar sesión: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.tokenKey(session.TokenID), session.Token, ttl)
		p.Set(ctx, s.userKey(session.TokenID), raw, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: guardar sesión: %w", err)
	}
	return nil
}

// Get obtiene la sesión; nil si no existe o ya expiró.
func (s *SessionStore) Get(ctx context.Context, tokenID string) (*entity.Session, error) {
	vals, err := s.client.MGet(ctx, s.tokenKey(tokenID), s.userKey(tokenID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: leer sesión: %w", err)
	}
	token, okToken := vals[0].(string)
	rawUser, okUser := vals[1].(string)
	if !okToken || !okUser {
		return nil, nil
	}
	var stored storedSession
	if err := json.UnmarshalString(rawUser, &stored); err != nil {
		return nil, fmt.Errorf("redis: decodificar sesión: %w", err)
	}
	session := &entity.Session{
		TokenID:         tokenID,
		Token:           token,
		User:            stored.User,
		IsAuthenticated: stored.IsAuthenticated,
		IssuedAt:        stored.IssuedAt,
		ExpiresAt:       stored.ExpiresAt,
	}
	if session.Expired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// Delete elimina la sesión. Borrar una inexistente no es error.
func (s *SessionStore) Delete(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.tokenKey(tokenID), s.userKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("redis: borrar sesión: %w", err)
	}
	return nil
}

func (s *SessionStore) tokenKey(id string) string { return s.keyPrefix + "token:" + id }
func (s *SessionStore) userKey(id string) string  { return s.keyPrefix + "user:" + id }
