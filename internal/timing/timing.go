// Package timing provides wall-clock measurement wrappers for corpus
// operations. Measure bundles the wrapped operation's result with a timing
// record; Logged emits the duration at info level and returns the result
// unchanged. Neither wrapper alters the operation's error.
package timing

import (
	"fmt"
	"log/slog"
	"time"
)

// Timing records the wall-clock span of one operation.
type Timing struct {
	Start    time.Time
	Finish   time.Time
	Duration time.Duration
}

// Seconds returns the elapsed duration in seconds.
func (t Timing) Seconds() float64 {
	return t.Duration.Seconds()
}

// Measure runs fn and returns its result together with a timing record.
// The error, if any, passes through unchanged.
func Measure[T any](fn func() (T, error)) (T, Timing, error) {
	start := time.Now()
	res, err := fn()
	finish := time.Now()
	return res, Timing{Start: start, Finish: finish, Duration: finish.Sub(start)}, err
}

// Logged runs fn and, on success, logs the operation name and elapsed
// seconds at info level. The result and error pass through unchanged; a
// failed operation is not logged.
func Logged[T any](logger *slog.Logger, name string, fn func() (T, error)) (T, error) {
	res, t, err := Measure(fn)
	if err != nil {
		return res, err
	}
	logger.Info(fmt.Sprintf("%s ran in %.3f seconds", name, t.Seconds()),
		slog.String("op", name),
		slog.Duration("elapsed", t.Duration))
	return res, nil
}
