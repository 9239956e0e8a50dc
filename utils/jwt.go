package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/database"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/models"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

// RedisClient is an optional shared Redis client used for access-token
// revocation. Nil when REDIS_ADDR is not configured; revocation then falls
// back to refresh-token rotation alone.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		return
	}
	RedisClient = rc
}

type contextKey string

const UserIDKey = contextKey("userID")
const UserRoleKey = contextKey("userRole")
const RequestIDKey = contextKey("requestID")

// GetUserID extracts the authenticated user id injected by the auth middleware.
func GetUserID(r *http.Request) (uint, bool) {
	v := r.Context().Value(UserIDKey)
	id, ok := v.(uint)
	return id, ok
}

func generateJTI(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateAccessToken issues a short-lived access token (15 minutes).
func GenerateAccessToken(userID uint, role string) (string, error) {
	return GenerateAccessTokenWithExpiry(userID, role, 15*time.Minute)
}

func GenerateAccessTokenWithExpiry(userID uint, role string, expiry time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	now := time.Now()
	jti, err := generateJTI(16)
	if err != nil {
		return "", err
	}
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
		"aud":  os.Getenv("JWT_AUD"),
		"iss":  os.Getenv("JWT_ISS"),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken checks signature, registered claims and the revocation
// denylist, returning the parsed token and claims.
func ValidateAccessToken(tokenString string) (*jwt.Token, jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, errors.New("token expired")
		}
		return nil, nil, errors.New("invalid token")
	}
	if !token.Valid {
		return nil, nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, errors.New("invalid claims")
	}
	if jti, _ := claims["jti"].(string); jti != "" && RedisClient != nil {
		if n, err := RedisClient.Exists(context.Background(), "revoked:"+jti).Result(); err == nil && n > 0 {
			return nil, nil, errors.New("token revoked")
		}
	}
	return token, claims, nil
}

// RevokeAccessToken denylists a token's jti until its natural expiry.
func RevokeAccessToken(claims jwt.MapClaims) {
	if RedisClient == nil {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}
	ttl := time.Hour
	if exp, ok := claims["exp"].(float64); ok {
		if d := time.Until(time.Unix(int64(exp), 0)); d > 0 {
			ttl = d
		}
	}
	_ = RedisClient.Set(context.Background(), "revoked:"+jti, 1, ttl).Err()
}

// GenerateRefreshToken persists a new refresh token row and returns its id.
func GenerateRefreshToken(userID uint) (string, *models.RefreshToken, error) {
	rt, err := models.NewRefreshToken(userID, 30)
	if err != nil {
		return "", nil, err
	}
	if err := database.DB.Create(rt).Error; err != nil {
		return "", nil, err
	}
	return rt.ID, rt, nil
}

// ValidateRefreshToken loads a non-revoked, non-expired refresh token row.
func ValidateRefreshToken(id string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := database.DB.Where("id = ? AND revoked = ?", id, false).First(&rt).Error; err != nil {
		return nil, errors.New("refresh token not found")
	}
	if time.Now().After(rt.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}
	return &rt, nil
}
