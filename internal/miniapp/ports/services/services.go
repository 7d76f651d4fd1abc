// Package services defines service ports of the Mini App backend.
package services

import (
	"context"
	"errors"
)

// OwnerResolver определяет владельца по bearer-токену.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, token string) (string, error)
}

// Sanitizer очищает пользовательский HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

// Ошибки определения владельца.
var (
	ErrInvalidToken = errors.New("invalid owner token")
	ErrExpiredToken = errors.New("owner token has expired")
	ErrEmptyOwner   = errors.New("owner is empty")
)
