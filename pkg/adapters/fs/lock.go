package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
)

// LockName is the lock file guarding a dataset root against concurrent runs.
const LockName = ".ciphergen.lock"

const lockPoll = 10 * time.Millisecond

// Lock acquires the file-based lock of root, creating root if needed. It
// blocks until the lock is free or ctx is done. A lock left behind by a
// process that no longer exists is taken over. The returned function
// releases it.
func Lock(ctx context.Context, root string, logger *slog.Logger) (func(), error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dataset root: %w", err)
	}
	path := filepath.Join(root, LockName)

	waiting := false
	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
			f.Close()
			return func() {
				os.Remove(path)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		pid, ok := lockHolder(path)
		if ok && !processAlive(pid) {
			logger.Warn("removing stale dataset lock", "root", root, "pid", pid)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to remove stale lock: %w", err)
			}
			continue
		}
		if !waiting {
			waiting = true
			logger.Info("waiting for dataset lock", "root", root, "pid", pid)
		}

		if err := lifecycle.Sleep(ctx, lockPoll); err != nil {
			return nil, fmt.Errorf("dataset root %s is locked by pid %d: %w", root, pid, err)
		}
	}
}

// lockHolder reads the PID stored in the lock file. A file still being
// written, or gone, reports false.
func lockHolder(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
