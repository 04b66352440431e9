// Package auditlog appends timestamped run messages to a plain-text log.
//
// The file is only ever appended to. A fresh file starts with a comment
// header; every entry is preceded by a blank line so runs and messages stay
// visually separated. While a Log is open it holds an exclusive advisory lock
// on the file, so two runs cannot interleave their entries.
package auditlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Header is written at the top of a new log file.
const Header = "# Output log for the photorganiser tool."

// TimestampLayout formats entry timestamps in local time.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrLocked reports that another run holds the log.
var ErrLocked = errors.New("audit log is in use by another run")

// Options configures a Log.
type Options struct {
	// Echo receives every message as well when non-nil.
	Echo io.Writer
	Now  func() time.Time
}

// Log is an open, locked audit log.
type Log struct {
	path string
	file *os.File
	lock *flock.Flock
	echo io.Writer
	now  func() time.Time
}

// Open creates or appends to the log at path and takes its lock.
func Open(path string, opts Options) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("lock audit log: %w", err)
	}
	if !ok {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	l := &Log{path: path, file: file, lock: lock, echo: opts.Echo, now: opts.Now}
	if l.now == nil {
		l.now = time.Now
	}

	info, err := file.Stat()
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("stat audit log: %w", err)
	}
	if info.Size() == 0 {
		if _, err := io.WriteString(file, Header+"\n"); err != nil {
			_ = l.Close()
			return nil, fmt.Errorf("write audit log header: %w", err)
		}
	}
	return l, nil
}

// Path returns the log location.
func (l *Log) Path() string { return l.path }

// Write appends one timestamped entry and echoes the message when configured.
func (l *Log) Write(message string) error {
	if l.echo != nil {
		fmt.Fprintf(l.echo, "%s\n\n", message)
	}
	entry := fmt.Sprintf("\n%s   %s\n", l.now().Format(TimestampLayout), message)
	if _, err := io.WriteString(l.file, entry); err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

// Close releases the lock and closes the file.
func (l *Log) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	closeErr := l.file.Close()
	l.file = nil
	unlockErr := l.lock.Unlock()
	return errors.Join(closeErr, unlockErr)
}
