package client

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrNoToken — провайдер не смог выдать токен (например, пустая env-переменная).
var ErrNoToken = errors.New("no token available")

// TokenSource — провайдер учётных данных.
//
// Инжектируется в Client конструктором; клиент спрашивает токен на каждый
// запрос, так что реализация может его ротировать.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource — фиксированный токен. Пустое значение допустимо:
// запрос уйдёт без Authorization (анонимный доступ решает сервер).
type StaticTokenSource string

func (s StaticTokenSource) Token(_ context.Context) (string, error) {
	return string(s), nil
}

// EnvTokenSource читает токен из переменной окружения при каждом вызове.
type EnvTokenSource struct {
	// Key — имя переменной окружения.
	Key string
}

func (s EnvTokenSource) Token(_ context.Context) (string, error) {
	v := os.Getenv(s.Key)
	if v == "" {
		return "", fmt.Errorf("env %s: %w", s.Key, ErrNoToken)
	}

	return v, nil
}
