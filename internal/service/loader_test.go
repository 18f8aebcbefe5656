package service

import (
	"context"
	"sync/atomic"

	"modual-backend/internal/bundle"
)

// fakeLoader liefert ein vorgegebenes Ergebnis und zählt die Aufrufe.
type fakeLoader[T any] struct {
	res       bundle.Result[T]
	calls     atomic.Int32
	refreshes atomic.Int32
	cleared   atomic.Int32
}

func (f *fakeLoader[T]) Load(_ context.Context, forceRefresh bool) bundle.Result[T] {
	f.calls.Add(1)
	if forceRefresh {
		f.refreshes.Add(1)
	}
	return f.res
}

func (f *fakeLoader[T]) ClearCache(context.Context) {
	f.cleared.Add(1)
}
