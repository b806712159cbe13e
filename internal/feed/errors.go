package feed

import (
	"errors"
	"fmt"
)

// ErrNoItems — документ разобран, но в канале нет ни одного <item>.
var ErrNoItems = errors.New("feed has no items")

// FetchError — сбой транспорта или не-2xx ответ при загрузке ленты.
// StatusCode == 0, если ответа не было вовсе.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("fetch %s: status=%d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError — тело ответа не является лентой с ожидаемой структурой channel/item.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
