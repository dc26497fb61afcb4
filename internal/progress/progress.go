package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/Ning0612/Photostamp/internal/domain"
)

// Reporter receives per-file events of a rename run
type Reporter interface {
	// SetTotal sets the number of files in the run
	SetTotal(totalFiles int)
	// Planned reports a rename before it is attempted (also in dry-run)
	Planned(action domain.RenameAction)
	// Result reports the outcome of one file
	Result(result domain.FileResult)
}

// ConsoleReporter prints the plain-text lines users and scripts rely on:
// "RENAME <old> <new>" on stdout and one error line per failure on stderr.
type ConsoleReporter struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
}

// NewConsoleReporter creates a reporter writing to the given streams
func NewConsoleReporter(stdout, stderr io.Writer) *ConsoleReporter {
	return &ConsoleReporter{stdout: stdout, stderr: stderr}
}

// SetTotal is a no-op for console output
func (r *ConsoleReporter) SetTotal(int) {}

// Planned prints the RENAME line
func (r *ConsoleReporter) Planned(action domain.RenameAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.stdout, "RENAME", action.Path, action.NewName)
}

// Result prints an error line for failed files
func (r *ConsoleReporter) Result(result domain.FileResult) {
	line := ErrorLine(result)
	if line == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.stderr, line)
}

// ErrorLine returns the stderr line for a failed result, or "" on success
func ErrorLine(result domain.FileResult) string {
	switch result.Kind {
	case domain.ResultMissingFile:
		return fmt.Sprintf("ERROR %s does not exist", result.Path)
	case domain.ResultNotAFile:
		return fmt.Sprintf("ERROR %s is not a file", result.Path)
	case domain.ResultRenameFailed:
		return fmt.Sprintf("Error renaming %s", result.Path)
	case domain.ResultChecksumMismatch:
		return fmt.Sprintf("ERROR %s changed since it was renamed", result.Path)
	case domain.ResultUnexpected:
		if result.Err != nil {
			return result.Err.Error()
		}
		return fmt.Sprintf("%s: %s", result.Path, domain.ErrUnexpected)
	}
	return ""
}

// Callback is a function that receives progress updates
type Callback func(update Update)

// Update represents a progress update
type Update struct {
	Type           UpdateType
	Path           string
	Target         string
	Kind           domain.ResultKind
	FilesCompleted int
	FilesTotal     int
	Failures       int
	Error          error
}

// UpdateType indicates the type of progress update
type UpdateType int

const (
	UpdatePlanned UpdateType = iota
	UpdateComplete
	UpdateError
)

// CallbackReporter implements Reporter with a callback function
type CallbackReporter struct {
	callback       Callback
	mu             sync.Mutex
	filesTotal     int
	filesCompleted int
	failures       int
}

// NewCallbackReporter creates a new CallbackReporter
func NewCallbackReporter(callback Callback) *CallbackReporter {
	return &CallbackReporter{
		callback: callback,
	}
}

// SetTotal sets the total number of files to process
func (r *CallbackReporter) SetTotal(totalFiles int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filesTotal = totalFiles
}

// Planned reports a rename about to happen
func (r *CallbackReporter) Planned(action domain.RenameAction) {
	r.mu.Lock()
	update := Update{
		Type:           UpdatePlanned,
		Path:           action.Path,
		Target:         action.Target,
		FilesCompleted: r.filesCompleted,
		FilesTotal:     r.filesTotal,
		Failures:       r.failures,
	}
	callback := r.callback
	r.mu.Unlock()

	// Call callback outside lock to prevent deadlock
	if callback != nil {
		callback(update)
	}
}

// Result counts the file as completed and reports it
func (r *CallbackReporter) Result(result domain.FileResult) {
	r.mu.Lock()
	r.filesCompleted++
	updateType := UpdateComplete
	if result.Kind.Failed() {
		r.failures++
		updateType = UpdateError
	}
	update := Update{
		Type:           updateType,
		Path:           result.Path,
		Target:         result.Target,
		Kind:           result.Kind,
		FilesCompleted: r.filesCompleted,
		FilesTotal:     r.filesTotal,
		Failures:       r.failures,
		Error:          result.Err,
	}
	callback := r.callback
	r.mu.Unlock()

	if callback != nil {
		callback(update)
	}
}

// MultiReporter fans events out to several reporters in order
type MultiReporter []Reporter

// SetTotal implements Reporter
func (m MultiReporter) SetTotal(totalFiles int) {
	for _, r := range m {
		r.SetTotal(totalFiles)
	}
}

// Planned implements Reporter
func (m MultiReporter) Planned(action domain.RenameAction) {
	for _, r := range m {
		r.Planned(action)
	}
}

// Result implements Reporter
func (m MultiReporter) Result(result domain.FileResult) {
	for _, r := range m {
		r.Result(result)
	}
}

// NullReporter is a no-op reporter
type NullReporter struct{}

func (NullReporter) SetTotal(int)                {}
func (NullReporter) Planned(domain.RenameAction) {}
func (NullReporter) Result(domain.FileResult)    {}

// FormatProgress returns "[completed/total]" for log lines
func FormatProgress(completed, total int) string {
	if total == 0 {
		return ""
	}
	width := len(fmt.Sprint(total))
	return fmt.Sprintf("[%*d/%d]", width, completed, total)
}
