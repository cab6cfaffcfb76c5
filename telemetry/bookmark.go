package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkNewRecord    BookmarkType = "new_record"
	BookmarkBreakthrough BookmarkType = "breakthrough"
	BookmarkPlateau      BookmarkType = "plateau"
	BookmarkSpeciesCrash BookmarkType = "species_crash"
)

// Bookmark marks a notable generation of a training run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable generations.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	record         float64
	hasRecord      bool
	sinceRecord    int // generations since the record was last beaten
	plateauSignals int
	speciesPeak    int
}

// plateauLength is the number of generations without a new record after
// which a plateau is reported.
const plateauLength = 10

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]GenerationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest generation and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkBreakthrough(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkRecord(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSpeciesCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []GenerationStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkRecord reports a best fitness above every earlier generation, and a
// plateau once per stretch of plateauLength generations without one.
func (bd *BookmarkDetector) checkRecord(stats GenerationStats) *Bookmark {
	if !bd.hasRecord || stats.BestFitness > bd.record {
		prev, had := bd.record, bd.hasRecord
		bd.record = stats.BestFitness
		bd.hasRecord = true
		bd.sinceRecord = 0
		bd.plateauSignals = 0
		if !had {
			return nil
		}
		return &Bookmark{
			Type:        BookmarkNewRecord,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Best fitness %.2f beats previous record %.2f", stats.BestFitness, prev),
		}
	}

	bd.sinceRecord++
	if bd.sinceRecord == plateauLength*(bd.plateauSignals+1) {
		bd.plateauSignals++
		return &Bookmark{
			Type:        BookmarkPlateau,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("No improvement on %.2f for %d generations", bd.record, bd.sinceRecord),
		}
	}
	return nil
}

// checkBreakthrough reports a mean fitness more than double the rolling
// average of earlier means.
func (bd *BookmarkDetector) checkBreakthrough(stats GenerationStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.MeanFitness
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.MeanFitness > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkBreakthrough,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Mean fitness %.2f is %.1fx average (%.2f)", stats.MeanFitness, stats.MeanFitness/avg, avg),
		}
	}
	return nil
}

// checkSpeciesCrash reports the species count halving from its recent peak.
func (bd *BookmarkDetector) checkSpeciesCrash(stats GenerationStats) *Bookmark {
	if stats.Species > bd.speciesPeak {
		bd.speciesPeak = stats.Species
		return nil
	}
	if bd.speciesPeak >= 4 && stats.Species*2 <= bd.speciesPeak {
		// Reset peak after crash
		oldPeak := bd.speciesPeak
		bd.speciesPeak = stats.Species
		return &Bookmark{
			Type:        BookmarkSpeciesCrash,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Species dropped from %d to %d", oldPeak, stats.Species),
		}
	}
	return nil
}
