// errors.go нормализует ошибки бэкенда в единую форму *APIError.
//
// Бэкенд отдаёт два формата тела ошибки:
//   - структурный: {"error_code": "...", "message": "...", "details": ...};
//   - краткий:     {"detail": "..."}.
//
// Обе формы сводятся к APIError; дальше презентационному слою уходит
// только человекочитаемое Message (через Message()).
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Тело ошибки читаем ограниченно: битый апстрим не должен ронять клиент памятью.
const maxErrorBody = 64 << 10

// APIError — единая форма ошибки remote-вызова.
type APIError struct {
	// StatusCode — HTTP-статус ответа.
	StatusCode int
	// Code — стабильный машиночитаемый код ошибки (если бэкенд его отдал).
	Code string
	// Message — безопасное человекочитаемое описание.
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}

	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// errorBody — объединение обеих форм тела ошибки бэкенда.
type errorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Detail    string `json:"detail"`
}

// decodeAPIError собирает *APIError из не-2xx ответа.
// Тело не обязано быть валидным JSON: фоллбэк — текст HTTP-статуса.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(raw) > 0 {
		var body errorBody
		if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil {
			apiErr.Code = body.ErrorCode
			switch {
			case body.Message != "":
				apiErr.Message = body.Message
			case body.Detail != "":
				apiErr.Message = body.Detail
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

// Message возвращает человекочитаемое описание любой ошибки remote-вызова.
// Для транспортных ошибок (обрыв соединения, таймаут) детали не утекают
// наверх — презентационный слой получает общий текст, подробности в логах.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return "request failed"
}
