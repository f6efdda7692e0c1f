package views

import (
	"context"
	"errors"

	"bolpurmart/internal/core/ports"
	"bolpurmart/internal/pkg/live"

	"go.uber.org/zap"
)

// watch opens a stream that carries fetch's result now and again after every change on
// topics that relevant accepts. Resync changes are always relevant.
//
// Closing the returned stream closes the feed subscription. The stream is closed for the
// consumer as well when ctx ends or the feed shuts down.
func watch[T any](
	ctx context.Context,
	feed ports.ChangeFeed,
	logger *zap.Logger,
	fetch func(context.Context) (T, error),
	relevant func(ports.Change) bool,
	topics ...ports.Topic,
) (*live.Stream[T], error) {
	changes, err := feed.Subscribe(topics...)
	if err != nil {
		return nil, err
	}

	out := live.NewStream[T](func() {
		if err := changes.Close(); err != nil && !errors.Is(err, live.ErrStreamClosed) {
			logger.Warn("closing change subscription", zap.Error(err))
		}
	})

	go func() {
		defer func() { _ = out.Close() }()

		refresh := func() {
			v, err := fetch(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Debug("view query failed", zap.Error(err))
				}
				out.Fail(err)
				return
			}
			out.Publish(v)
		}

		refresh()
		for {
			select {
			case <-ctx.Done():
				return
			case <-out.Done():
				return
			case <-changes.Done():
				return
			case snap := <-changes.Updates():
				if snap.Err != nil {
					out.Fail(snap.Err)
					continue
				}
				if snap.Value.Resync || relevant(snap.Value) {
					refresh()
				}
			}
		}
	}()

	return out, nil
}

func anyChange(ports.Change) bool { return true }
