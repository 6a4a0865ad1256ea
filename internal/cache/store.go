// Package cache is the redis-backed ephemeral store: captcha codes, email
// verification codes and the per-user liked-post sets. The three namespaces
// use distinct key formats so they can never collide.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// EmailPurpose scopes an email verification code to the flow that issued it.
type EmailPurpose int

const (
	EmailRegister EmailPurpose = iota
	EmailForget
)

const (
	captchaKeyFormat      = "CAPTCHA_%s"
	registerCodeKeyFormat = "REGISTER_EMAIL_CODE_%s"
	forgetCodeKeyFormat   = "FORGET_PASSWORD_EMAIL_CODE_%s"
	likedPostSetKeyFormat = "USER_%d_LIKE_POST_IDS"
)

var (
	// ErrUnavailable means the backing store itself failed; callers surface
	// it as a server error, never as a validation failure.
	ErrUnavailable = errors.New("ephemeral store unavailable")

	// ErrExpired means the key is gone: never stored, expired, or already
	// consumed. A 400-class outcome, distinct from ErrUnavailable.
	ErrExpired = errors.New("code expired")
)

type Store struct {
	client  *redis.Client
	codeTTL time.Duration
}

// New connects to redis and verifies the connection with a ping. The client
// pools connections and is safe for concurrent use by request workers.
func New(redisURL string, codeTTL time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, codeTTL: codeTTL}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Client exposes the underlying connection pool for components that share it,
// like the rate limiter.
func (s *Store) Client() *redis.Client {
	return s.client
}

// SaveCaptcha stores a captcha code under the client-supplied flag.
func (s *Store) SaveCaptcha(ctx context.Context, flag, code string) error {
	key := fmt.Sprintf(captchaKeyFormat, flag)
	if err := s.client.Set(ctx, key, code, s.codeTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CheckCaptcha verifies a captcha code. A missing key yields ErrExpired. A
// mismatch returns false and keeps the key so the caller may retry within the
// TTL. A match consumes the key: the code is single-use.
func (s *Store) CheckCaptcha(ctx context.Context, flag, input string) (bool, error) {
	key := fmt.Sprintf(captchaKeyFormat, flag)
	return s.checkAndConsume(ctx, key, input)
}

// SaveEmailCode stores a verification code scoped by purpose and address.
func (s *Store) SaveEmailCode(ctx context.Context, purpose EmailPurpose, email, code string) error {
	key, err := emailCodeKey(purpose, email)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key, code, s.codeTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CheckEmailCode verifies an email code with the same single-use contract as
// CheckCaptcha.
func (s *Store) CheckEmailCode(ctx context.Context, purpose EmailPurpose, email, input string) (bool, error) {
	key, err := emailCodeKey(purpose, email)
	if err != nil {
		return false, err
	}
	return s.checkAndConsume(ctx, key, input)
}

// CodeTTL reports how long stored codes live, for inclusion in mail bodies.
func (s *Store) CodeTTL() time.Duration {
	return s.codeTTL
}

func (s *Store) checkAndConsume(ctx context.Context, key, input string) (bool, error) {
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, ErrExpired
		}
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if stored != input {
		return false, nil
	}
	// Best-effort cleanup: a failed delete after a successful match is not
	// worth failing the request over.
	_ = s.client.Del(ctx, key).Err()
	return true, nil
}

// AddLikedPost records post membership in the user's liked-set.
func (s *Store) AddLikedPost(ctx context.Context, userID, postID uint) error {
	key := fmt.Sprintf(likedPostSetKeyFormat, userID)
	if err := s.client.SAdd(ctx, key, postID).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// RemoveLikedPost removes post membership from the user's liked-set.
func (s *Store) RemoveLikedPost(ctx context.Context, userID, postID uint) error {
	key := fmt.Sprintf(likedPostSetKeyFormat, userID)
	if err := s.client.SRem(ctx, key, postID).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// HasLikedPost reports liked-set membership. The set, not the post counter,
// is the source of truth for the like state machine.
func (s *Store) HasLikedPost(ctx context.Context, userID, postID uint) (bool, error) {
	key := fmt.Sprintf(likedPostSetKeyFormat, userID)
	member, err := s.client.SIsMember(ctx, key, postID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return member, nil
}

func emailCodeKey(purpose EmailPurpose, email string) (string, error) {
	switch purpose {
	case EmailRegister:
		return fmt.Sprintf(registerCodeKeyFormat, email), nil
	case EmailForget:
		return fmt.Sprintf(forgetCodeKeyFormat, email), nil
	default:
		return "", fmt.Errorf("unknown email purpose %d", purpose)
	}
}
