// Package export writes filtered segmentation views to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/schollz/progressbar/v3"
)

// FilePrefix is the base name of timestamped export files.
const FilePrefix = "rfm_segments"

// Options configures ToFile.
type Options struct {
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	// Now stamps generated file names. Defaults to time.Now.
	Now func() time.Time
}

// WriteCSV writes the view with a header row in source column order and no
// index column. Values round-trip through the CSV source without loss.
func WriteCSV(w io.Writer, view *segment.View) error {
	return writeCSV(w, view, nil)
}

func writeCSV(w io.Writer, view *segment.View, onRow func()) error {
	columns := view.Table().Columns()
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("%w: header: %w", common.ErrExportFailed, err)
	}

	record := make([]string, len(columns))
	var writeErr error
	view.Each(func(c model.Customer) {
		if writeErr != nil {
			return
		}
		for i, col := range columns {
			record[i] = c.Field(col)
		}
		if err := cw.Write(record); err != nil {
			writeErr = fmt.Errorf("%w: row %d: %w", common.ErrExportFailed, c.Index, err)
			return
		}
		if onRow != nil {
			onRow()
		}
	})
	if writeErr != nil {
		return writeErr
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}
	return nil
}

// TimestampedFilename returns the export file name for the given selection.
func TimestampedFilename(sel segment.Selection, now time.Time) string {
	ids := sel.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	clusters := "none"
	if len(parts) > 0 {
		clusters = strings.Join(parts, "-")
	}
	return fmt.Sprintf("%s_c%s_%s.csv", FilePrefix, clusters, now.Format("20060102-150405"))
}

// ToFile writes the view to target and returns the path written. When
// target is an existing directory or ends in a separator, a timestamped
// file name is generated inside it.
func ToFile(target string, view *segment.View, opts Options) (string, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	path := target
	if isDirTarget(target) {
		path = filepath.Join(target, TimestampedFilename(view.Selection(), opts.Now()))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return "", fmt.Errorf("%w: create directory: %w", common.ErrExportFailed, err)
	}

	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}

	var onRow func()
	if opts.Progress != nil {
		bar := newProgressBar(opts.Progress, view.Len())
		onRow = func() {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	if err := writeCSV(f, view, onRow); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}

	slog.Info("Exported view", "path", path, "rows", view.Len(), "clusters", view.Selection().String())
	return path, nil
}

func isDirTarget(target string) bool {
	if target == "" || strings.HasSuffix(target, string(os.PathSeparator)) || strings.HasSuffix(target, "/") {
		return true
	}
	info, err := os.Stat(target)
	return err == nil && info.IsDir()
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Exporting customers...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
