package handlers_test

import (
	"context"
	"errors"
)

var errMock = errors.New("store unavailable")

// failingStore fails every operation.
type failingStore struct{}

func (s *failingStore) SaveIfAbsent(context.Context, string, string) (string, bool, error) {
	return "", false, errMock
}

func (s *failingStore) Get(context.Context, string) (string, error) {
	return "", errMock
}

func (s *failingStore) Len(context.Context) (int64, error) {
	return 0, errMock
}
