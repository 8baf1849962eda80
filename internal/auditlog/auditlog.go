// Package auditlog records each CSV import attempt as a JSON line in a daily
// file, so a user can see what was imported when and why rows were skipped.
package auditlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var mu sync.Mutex

type Entry struct {
	Time            string   `json:"time"`
	BatchID         string   `json:"batch_id"`
	SourceFile      string   `json:"source_file,omitempty"`
	Rows            int      `json:"rows"`
	Imported        int      `json:"imported"`
	Skipped         int      `json:"skipped"`
	UnmappedColumns []string `json:"unmapped_columns,omitempty"`
	MissingRequired []string `json:"missing_required,omitempty"`
}

func logDir() string {
	if v := os.Getenv("TRACKER_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func dailyFilepath(t time.Time) string {
	return filepath.Join(logDir(), "imports", t.UTC().Format("2006-01-02")+".jsonl")
}

// Append writes one import entry to today's file, creating it as needed.
func Append(e Entry) error {
	mu.Lock()
	defer mu.Unlock()
	now := time.Now().UTC()
	e.Time = now.Format("2006-01-02 15:04:05")
	p := dailyFilepath(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	b, _ := json.Marshal(e)
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips import logs older than the retention window and
// removes the originals. A zero or negative retention disables it.
func CompressOlder(retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	root := filepath.Join(logDir(), "imports")
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(p) != ".jsonl" {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil || !info.ModTime().Before(cutoff) {
			return nil
		}
		gz := p + ".gz"
		if _, err := os.Stat(gz); err == nil {
			_ = os.Remove(p)
			return nil
		}
		in, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer in.Close()
		out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil
		}
		gw := gzip.NewWriter(out)
		if _, err := io.Copy(gw, in); err == nil {
			_ = gw.Close()
			_ = out.Close()
			_ = os.Remove(p)
		} else {
			_ = gw.Close()
			_ = out.Close()
		}
		return nil
	})
}
