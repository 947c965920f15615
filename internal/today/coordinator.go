// Package today reconciles a single day's state across the on-device cache
// and the remote per-user store. It is the only place that decides which
// source is authoritative for a read.
package today

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rowanherne/morrow/internal/day"
	"github.com/rowanherne/morrow/internal/localstore"
	"github.com/rowanherne/morrow/internal/remote"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

const defaultRemoteWriteTimeout = 15 * time.Second

var (
	ErrInvalidSeverity = errors.New("invalid severity level")
	ErrNoCheckInToday  = errors.New("no check-in recorded for today")
)

// Coordinator orchestrates the local cache, the remote client and the plan
// generator into one canonical day view. A nil remote client means no signed-in
// identity; the local cache then carries the whole session.
type Coordinator struct {
	local         localstore.Store
	remote        remote.Client
	clock         day.Clock
	location      *time.Location
	logger        *slog.Logger
	remoteTimeout time.Duration

	remoteWrites sync.WaitGroup
}

func NewCoordinator(local localstore.Store, remoteClient remote.Client, clock day.Clock, location *time.Location, logger *slog.Logger) *Coordinator {
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		local:         local,
		remote:        remoteClient,
		clock:         clock,
		location:      location,
		logger:        logger,
		remoteTimeout: defaultRemoteWriteTimeout,
	}
}

// TodayID returns the calendar day id for the current device-local date.
func (coordinator *Coordinator) TodayID() string {
	return day.ID(coordinator.clock(), coordinator.location)
}

// WaitRemoteSync blocks until every in-flight background remote write has
// finished. Used on shutdown and in tests; normal callers never wait.
func (coordinator *Coordinator) WaitRemoteSync() {
	coordinator.remoteWrites.Wait()
}

// backgroundRemoteWrite runs a remote write without tying it to the caller's
// control flow. Local durability already satisfied the user action, so a
// failure here is logged and swallowed, attempted exactly once.
func (coordinator *Coordinator) backgroundRemoteWrite(operation string, write func(context.Context) error) {
	if coordinator.remote == nil {
		return
	}
	coordinator.remoteWrites.Add(1)
	go func() {
		defer coordinator.remoteWrites.Done()
		ctx, cancel := context.WithTimeout(context.Background(), coordinator.remoteTimeout)
		defer cancel()
		if err := write(ctx); err != nil {
			coordinator.logger.Warn("remote write failed", "op", operation, "error", err)
		}
	}()
}
