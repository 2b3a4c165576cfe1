package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/warren/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkRabbitsExtinct  BookmarkType = "rabbits_extinct"
	BookmarkFoxesExtinct    BookmarkType = "foxes_extinct"
	BookmarkRabbitCrash     BookmarkType = "rabbit_crash"
	BookmarkStableEcosystem BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Generation  int          `csv:"generation" json:"generation"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	seen               bool
	prevRabbits        int
	prevFoxes          int
	recentRabbitPeak   int
	stableWindowsCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		cfg:         cfg,
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.seen {
		if bd.prevRabbits > 0 && stats.Rabbits == 0 {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkRabbitsExtinct,
				Generation:  stats.WindowEndGen,
				Description: fmt.Sprintf("Rabbits died out (last count %d)", bd.prevRabbits),
			})
		}
		if bd.prevFoxes > 0 && stats.Foxes == 0 {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkFoxesExtinct,
				Generation:  stats.WindowEndGen,
				Description: fmt.Sprintf("Foxes died out (last count %d)", bd.prevFoxes),
			})
		}
		if b := bd.checkRabbitCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.Rabbits > bd.recentRabbitPeak {
		bd.recentRabbitPeak = stats.Rabbits
	}
	bd.prevRabbits = stats.Rabbits
	bd.prevFoxes = stats.Foxes
	bd.seen = true

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the newest history entries, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	if n > count {
		n = count
	}
	out := make([]WindowStats, n)
	for i := 0; i < n; i++ {
		idx := (bd.historyIdx - n + i + bd.historySize) % bd.historySize
		out[i] = bd.history[idx]
	}
	return out
}

func (bd *BookmarkDetector) checkRabbitCrash(stats WindowStats) *Bookmark {
	if bd.recentRabbitPeak == 0 || stats.Rabbits == 0 {
		return nil
	}

	crash := bd.cfg.RabbitCrash
	dropPercent := 1.0 - float64(stats.Rabbits)/float64(bd.recentRabbitPeak)
	if dropPercent > crash.DropPercent && stats.Rabbits <= bd.recentRabbitPeak-crash.MinDrop {
		// Reset peak after crash
		oldPeak := bd.recentRabbitPeak
		bd.recentRabbitPeak = stats.Rabbits

		return &Bookmark{
			Type:        BookmarkRabbitCrash,
			Generation:  stats.WindowEndGen,
			Description: fmt.Sprintf("Rabbits crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Rabbits),
		}
	}

	return nil
}

// coefficientOfVariation returns std/mean, or 0 for a zero mean.
func coefficientOfVariation(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	stable := bd.cfg.Stable
	if stats.Rabbits < stable.MinRabbits || stats.Foxes < stable.MinFoxes {
		bd.stableWindowsCount = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	rabbits := make([]float64, len(window))
	foxes := make([]float64, len(window))
	for i, h := range window {
		rabbits[i] = float64(h.Rabbits)
		foxes[i] = float64(h.Foxes)
	}

	if coefficientOfVariation(rabbits) < stable.CVThreshold && coefficientOfVariation(foxes) < stable.CVThreshold {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	// Trigger exactly once per stable stretch
	if bd.stableWindowsCount == stable.StableWindows {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Generation:  stats.WindowEndGen,
			Description: fmt.Sprintf("Stable ecosystem with %d rabbits, %d foxes over %d windows", stats.Rabbits, stats.Foxes, stable.StableWindows),
		}
	}

	return nil
}
