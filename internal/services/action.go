package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/inkwell/internal/apperr"
	"github.com/baharkarakas/inkwell/internal/metrics"
)

// Action names, shared with the store and metrics labels.
const (
	ActionFetchPosts = "posts/fetchPosts"
	ActionAddPost    = "posts/addPost"
	ActionUpdatePost = "posts/updatePost"
	ActionDeletePost = "posts/deletePost"
	ActionGetPost    = "posts/getPost"
	ActionLogin      = "auth/loginUser"
	ActionRegister   = "auth/registerUser"
)

// latency waits d, or until ctx is done. Cancellation is only honored here,
// before any repository work starts.
func latency(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// finish logs and measures one action outcome and hands err back.
func finish(log *slog.Logger, action string, started time.Time, err error, attrs ...any) error {
	metrics.ObserveAction(action, started, err)
	attrs = append(attrs, "action", action, "took", time.Since(started))
	switch {
	case err == nil:
		log.Debug("action fulfilled", attrs...)
	case apperr.KindOf(err) == apperr.KindInternal:
		log.Error("action failed", append(attrs, "err", err)...)
	default:
		log.Info("action rejected", append(attrs, "reason", err.Error())...)
	}
	return err
}

func orDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
