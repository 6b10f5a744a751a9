package core

import "github.com/sirupsen/logrus"

// Result is the outcome of a best-effort read. Callers either inspect the
// error or call OrDefault, which makes the substitution visible in the logs.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) OrDefault(def T, operation, target string) T {
	if r.err == nil {
		return r.value
	}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"target":    target,
		"default":   def,
	}).Warnf("Read failed, substituting default - %v", r.err)

	return def
}
