package printer

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Unavailable is the sink used when no printer is configured.
type Unavailable struct{}

func (Unavailable) Print(ctx context.Context, job Job) error {
	return ErrUnavailable
}

// Multi fans a job out to every sink. It succeeds if at least one sink
// printed, reports ErrUnavailable if every sink was unavailable, and
// otherwise returns the joined failures.
type Multi []Sink

func (m Multi) Print(ctx context.Context, job Job) error {
	if len(m) == 0 {
		return ErrUnavailable
	}

	var errs []error
	printed := false
	for _, s := range m {
		err := s.Print(ctx, job)
		if err == nil {
			printed = true
			continue
		}
		errs = append(errs, err)
	}
	if printed {
		for _, err := range errs {
			if !errors.Is(err, ErrUnavailable) {
				log.Printf("WARN: print %s for order %s: %v", job.Receipt.Kind, job.Receipt.OrderID, err)
			}
		}
		return nil
	}

	var failures []error
	for _, err := range errs {
		if !errors.Is(err, ErrUnavailable) {
			failures = append(failures, err)
		}
	}
	if len(failures) == 0 {
		return ErrUnavailable
	}
	return fmt.Errorf("print %s: %w", job.Receipt.Kind, errors.Join(failures...))
}
