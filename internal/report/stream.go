package report

import (
	"context"
	"fmt"
	"io"

	"github.com/heartmarshall/fivewords/internal/domain"
)

// Stream writes each combination the moment it is reported, in discovery
// order. Report must not be called concurrently; search.Seen guarantees
// that.
type Stream struct {
	enc    *encoder
	groups Groups
}

// NewStream creates a Stream writing to w.
func NewStream(w io.Writer, groups Groups, format Format) *Stream {
	return &Stream{enc: &encoder{w: w, format: format}, groups: groups}
}

func (s *Stream) Start(context.Context, domain.Run) error {
	if err := s.enc.open(); err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	return nil
}

func (s *Stream) Report(c domain.Combination) error {
	if err := s.enc.write(s.groups.WordGroups(c)); err != nil {
		return fmt.Errorf("stream combination: %w", err)
	}
	return nil
}

func (s *Stream) Finish(context.Context, Summary) error {
	if err := s.enc.close(); err != nil {
		return fmt.Errorf("close stream: %w", err)
	}
	return nil
}
