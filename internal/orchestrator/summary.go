package orchestrator

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// SourceResult is outcome of syncing one source.
type SourceResult struct {
	Source      string
	OK          bool
	Error       error
	Observed    int32
	Inserted    int32
	Updated     int32
	Skipped     int32
	Dropped     int32
	Deactivated int32
}

// Summary is outcome of an orchestrated run over all sources.
type Summary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Sources    []SourceResult
}

// Failed returns names of sources which failed.
func (s Summary) Failed() []string {
	return lo.FilterMap(s.Sources, func(r SourceResult, _ int) (string, bool) {
		return r.Source, !r.OK
	})
}

// MarshalZerologObject writes summary fields to zerolog event.
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Time("startedAt", s.StartedAt).
		Dur("duration", s.FinishedAt.Sub(s.StartedAt)).
		Int("sources", len(s.Sources)).
		Strs("failed", s.Failed())
}

// MarshalZerologObject writes source result fields to zerolog event.
func (r SourceResult) MarshalZerologObject(e *zerolog.Event) {
	e.Str("source", r.Source).
		Bool("ok", r.OK).
		Int32("observed", r.Observed).
		Int32("inserted", r.Inserted).
		Int32("updated", r.Updated).
		Int32("skipped", r.Skipped).
		Int32("dropped", r.Dropped).
		Int32("deactivated", r.Deactivated)
	if r.Error != nil {
		e.AnErr("error", r.Error)
	}
}
