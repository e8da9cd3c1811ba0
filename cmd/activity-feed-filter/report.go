package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/bnema/activity-feed-filter/internal/feed"
	"github.com/bnema/activity-feed-filter/internal/models"
)

// Report summarises one filtering run
type Report struct {
	GeneratedAt   string         `json:"generated_at" yaml:"generated_at"`
	Source        string         `json:"source" yaml:"source"`
	Target        int            `json:"target_load_count" yaml:"target_load_count"`
	Kept          int            `json:"kept" yaml:"kept"`
	Removed       int            `json:"removed" yaml:"removed"`
	Loads         int            `json:"loads" yaml:"loads"`
	PagesLeft     int            `json:"pages_left" yaml:"pages_left"`
	Cancelled     bool           `json:"cancelled,omitempty" yaml:"cancelled,omitempty"`
	RemoveReasons map[string]int `json:"remove_reasons,omitempty" yaml:"remove_reasons,omitempty"`
	Entries       []EntryReport  `json:"entries" yaml:"entries"`
}

// EntryReport contains the decision for a single activity
type EntryReport struct {
	Index   int            `json:"index" yaml:"index"`
	Kind    string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Remove  bool           `json:"remove" yaml:"remove"`
	Reasons []string       `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Signals models.Signals `json:"signals" yaml:"signals"`
}

func newReport(source string, cfg *models.Config, results []feed.Result) Report {
	r := Report{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Source:        source,
		Target:        cfg.Options.TargetLoadCount,
		RemoveReasons: make(map[string]int),
		Entries:       make([]EntryReport, 0, len(results)),
	}

	for _, res := range results {
		if res.Decision.Remove {
			r.Removed++
			for _, reason := range res.Decision.Reasons {
				r.RemoveReasons[reason]++
			}
		} else {
			r.Kept++
		}
		r.Entries = append(r.Entries, EntryReport{
			Index:   res.Entry.Index,
			Kind:    res.Entry.Kind,
			Remove:  res.Decision.Remove,
			Reasons: res.Decision.Reasons,
			Signals: res.Entry.Signals,
		})
	}

	return r
}

func validFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

func writeReport(w io.Writer, r Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		return writeText(w, r)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeText(w io.Writer, r Report) error {
	fmt.Fprintf(w, "Filtered %s\n", r.Source)
	for _, e := range r.Entries {
		verdict := "keep"
		if e.Remove {
			verdict = "remove"
		}
		fmt.Fprintf(w, "  #%-3d %-6s %s", e.Index, verdict, e.Kind)
		if len(e.Reasons) > 0 {
			fmt.Fprintf(w, " (%v)", e.Reasons)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Kept %d of %d (target %d) after %d load(s), %d page(s) left\n",
		r.Kept, r.Kept+r.Removed, r.Target, r.Loads, r.PagesLeft)
	if r.Cancelled {
		fmt.Fprintln(w, "Loading was cancelled")
	}

	if len(r.RemoveReasons) > 0 {
		reasons := make([]string, 0, len(r.RemoveReasons))
		for reason := range r.RemoveReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)

		fmt.Fprintln(w, "Removal reasons:")
		for _, reason := range reasons {
			fmt.Fprintf(w, "  %s: %d\n", reason, r.RemoveReasons[reason])
		}
	}
	return nil
}

func writeReportFile(fs afero.Fs, path string, r Report, format string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return writeReport(f, r, format)
}
