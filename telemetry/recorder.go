package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/dino/neat"
)

// Recorder turns generation reports into CSV rows and bookmarks. It
// implements neat.Reporter.
type Recorder struct {
	out       *OutputManager
	bookmarks *BookmarkDetector
	history   []GenerationStats
}

// NewRecorder creates a recorder writing to out, which may be nil.
func NewRecorder(out *OutputManager) *Recorder {
	return &Recorder{
		out:       out,
		bookmarks: NewBookmarkDetector(10),
	}
}

// EndGeneration implements neat.Reporter.
func (r *Recorder) EndGeneration(report neat.GenerationReport) {
	stats := ComputeGenerationStats(report)
	stats.LogStats()
	r.history = append(r.history, stats)

	if err := r.out.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation stats", "error", err)
	}
	for _, b := range r.bookmarks.Check(stats) {
		b.LogBookmark()
		if err := r.out.WriteBookmark(b); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// History returns the stats of every generation seen so far.
func (r *Recorder) History() []GenerationStats {
	return r.history
}
