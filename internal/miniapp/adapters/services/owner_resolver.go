// Package services provides implementations of service interfaces.
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/ports/services"
	"tgminiapp/pkg/logger"
)

// Константы для определения владельца.
const (
	methodResolveOwner = "OwnerResolver.ResolveOwner"
	msgResolvingOwner  = "resolving owner"
	msgOwnerResolved   = "owner resolved"
	msgTokenExpired    = "token has expired"
	msgErrParsingToken = "error parsing token" //nolint:gosec
	msgNotBase64       = "token is neither JWT nor base64"
	errCtxResolving    = "resolving owner"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - полезная нагрузка токена Mini App.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// OwnerResolver реализует services.OwnerResolver: HS256 JWT с claim username
// или обратимая base64-кодировка имени пользователя.
type OwnerResolver struct {
	secretKey []byte
}

// NewOwnerResolver создает резолвер. Пустой secretKey отключает JWT.
func NewOwnerResolver(secretKey string) services.OwnerResolver {
	return &OwnerResolver{secretKey: []byte(secretKey)}
}

// EncodeOwner возвращает обратимый токен для имени пользователя.
func EncodeOwner(username string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(username))
}

// ResolveOwner возвращает имя пользователя без ведущего "@".
func (r *OwnerResolver) ResolveOwner(ctx context.Context, token string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolveOwner))
	log.Debug(ctx, msgResolvingOwner)

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrEmptyOwner)
	}

	var (
		owner string
		err   error
	)
	if strings.Count(token, ".") == 2 {
		owner, err = r.parseJWT(ctx, log, token)
	} else {
		owner, err = decodeOwner(token)
		if err != nil {
			log.Debug(ctx, msgNotBase64)
		}
	}
	if err != nil {
		return "", err
	}

	owner = strings.TrimPrefix(strings.TrimSpace(owner), "@")
	if owner == "" {
		return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrEmptyOwner)
	}

	log.Debug(ctx, msgOwnerResolved, zap.String("owner", owner))
	return owner, nil
}

func (r *OwnerResolver) parseJWT(ctx context.Context, log *logger.Logger, tokenString string) (string, error) {
	if len(r.secretKey) == 0 {
		return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return r.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrExpiredToken)
		}
		log.Debug(ctx, msgErrParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrInvalidToken)
	}
	return claims.Username, nil
}

func decodeOwner(token string) (string, error) {
	encodings := []*base64.Encoding{
		base64.RawURLEncoding,
		base64.URLEncoding,
		base64.RawStdEncoding,
		base64.StdEncoding,
	}
	for _, enc := range encodings {
		raw, err := enc.DecodeString(token)
		if err == nil && utf8.Valid(raw) {
			return string(raw), nil
		}
	}
	return "", fmt.Errorf("%s: %w", errCtxResolving, services.ErrInvalidToken)
}
