package namer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/Ning0612/Photostamp/internal/domain"
)

// Namer computes timestamp-prefixed filenames
type Namer interface {
	// NewName returns the new basename for path at time t
	NewName(path string, t time.Time) string
}

// StrftimeNamer formats the prefix with a strftime pattern in a fixed location
type StrftimeNamer struct {
	format   *strftime.Strftime
	location *time.Location
}

// New compiles pattern. An empty pattern means domain.DefaultPattern.
func New(pattern string) (*StrftimeNamer, error) {
	if pattern == "" {
		pattern = domain.DefaultPattern
	}
	f, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidPattern, pattern, err)
	}
	return &StrftimeNamer{format: f, location: time.Local}, nil
}

// WithLocation returns a copy formatting in loc instead of time.Local
func (n *StrftimeNamer) WithLocation(loc *time.Location) *StrftimeNamer {
	c := *n
	c.location = loc
	return &c
}

// Prefix formats t in the namer's location
func (n *StrftimeNamer) Prefix(t time.Time) string {
	return n.format.FormatString(t.In(n.location))
}

// NewName returns "<prefix>_<basename of path>"
func (n *StrftimeNamer) NewName(path string, t time.Time) string {
	return n.Prefix(t) + "_" + filepath.Base(path)
}

// Target returns the full path of the renamed file, in the same directory
func Target(path, newName string) string {
	return filepath.Join(filepath.Dir(path), newName)
}
