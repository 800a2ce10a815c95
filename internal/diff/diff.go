// Package diff compares generated manifests with the files already on disk.
package diff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/hupe1980/k8sdeployer/internal/k8s/parser"
	"github.com/hupe1980/k8sdeployer/internal/output"
	"github.com/hupe1980/k8sdeployer/internal/ui"
)

// Result holds the result of a unified diff computation.
type Result struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	OldLabel       string
	NewLabel       string
}

// Options configures diff computation.
type Options struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultOptions returns the labels and context used by the diff command.
func DefaultOptions() Options {
	return Options{
		OldLabel: "on-disk",
		NewLabel: "generated",
		Context:  3,
	}
}

// Compute computes a unified diff between two YAML documents.
func Compute(oldDoc, newDoc string, opts Options) (*Result, error) {
	ud := difflib.UnifiedDiff{
		A:        splitLines(oldDoc),
		B:        splitLines(newDoc),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	}

	unified, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	res := &Result{
		Unified:        unified,
		HasDifferences: unified != "",
		OldLabel:       opts.OldLabel,
		NewLabel:       opts.NewLabel,
	}

	if res.HasDifferences {
		res.Hunks = extractHunks(unified)
	}

	return res, nil
}

// Status classifies a manifest file against its on-disk counterpart.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusModified  Status = "modified"
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
)

// FileDiff is the comparison of one manifest with the file it would be
// written to.
type FileDiff struct {
	Name   string
	Path   string
	Status Status
	Result *Result
}

// Files renders each manifest and compares it with the file dw would write
// it to. Missing files are reported as added.
func Files(dw *output.DirWriter, prefix string, manifests []output.Manifest, opts Options) ([]FileDiff, error) {
	diffs := make([]FileDiff, 0, len(manifests))

	for _, m := range manifests {
		data, err := m.RenderManifest()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", m.Name(), err)
		}

		path := dw.Path(prefix, m.Name())
		fd := FileDiff{Name: m.Name(), Path: path, Status: StatusModified}

		existing, err := os.ReadFile(path) //nolint:gosec // path is derived from the output directory
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fd.Status = StatusAdded
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		fileOpts := opts
		fileOpts.OldLabel = path
		fileOpts.NewLabel = path + " (" + opts.NewLabel + ")"

		fd.Result, err = Compute(string(existing), string(data), fileOpts)
		if err != nil {
			return nil, err
		}

		if fd.Status == StatusModified && !fd.Result.HasDifferences {
			fd.Status = StatusUnchanged
		}

		diffs = append(diffs, fd)
	}

	return diffs, nil
}

// Stream compares each manifest with the object of the same kind, namespace
// and name in a multi-document YAML stream, such as one saved from
// "generate --stdout". Both sides are compared in canonical form. Objects in
// the stream that no manifest produces are reported as removed.
func Stream(stream []byte, manifests []output.Manifest, opts Options) ([]FileDiff, error) {
	existing, err := parser.Parse(stream)
	if err != nil {
		return nil, fmt.Errorf("parsing stream: %w", err)
	}

	byKey := make(map[string]*parser.Document, len(existing))
	for _, doc := range existing {
		byKey[doc.Key()] = doc
	}

	matched := map[string]bool{}
	diffs := make([]FileDiff, 0, len(manifests))

	for _, m := range manifests {
		data, err := m.RenderManifest()
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", m.Name(), err)
		}

		doc, err := parser.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("reading back %s: %w", m.Name(), err)
		}

		if doc == nil {
			return nil, fmt.Errorf("%s does not render a Kubernetes object", m.Name())
		}

		key := doc.Key()
		fd := FileDiff{Name: m.Name(), Path: key, Status: StatusAdded}

		var oldDoc string

		if prev, ok := byKey[key]; ok {
			matched[key] = true
			fd.Status = StatusModified

			if oldDoc, err = canonical(prev); err != nil {
				return nil, err
			}
		}

		if fd.Result, err = compareObject(key, oldDoc, string(data), opts); err != nil {
			return nil, err
		}

		if fd.Status == StatusModified && !fd.Result.HasDifferences {
			fd.Status = StatusUnchanged
		}

		diffs = append(diffs, fd)
	}

	for _, doc := range existing {
		if matched[doc.Key()] {
			continue
		}

		oldDoc, err := canonical(doc)
		if err != nil {
			return nil, err
		}

		res, err := compareObject(doc.Key(), oldDoc, "", opts)
		if err != nil {
			return nil, err
		}

		diffs = append(diffs, FileDiff{Name: doc.Name, Path: doc.Key(), Status: StatusRemoved, Result: res})
	}

	return diffs, nil
}

func canonical(doc *parser.Document) (string, error) {
	data, err := output.Serialize(doc.Object.Object)
	if err != nil {
		return "", fmt.Errorf("serializing %s: %w", doc.Key(), err)
	}

	return string(data), nil
}

func compareObject(key, oldDoc, newDoc string, opts Options) (*Result, error) {
	objOpts := opts
	objOpts.OldLabel = key + " (" + opts.OldLabel + ")"
	objOpts.NewLabel = key + " (" + opts.NewLabel + ")"

	return Compute(oldDoc, newDoc, objOpts)
}

// Changed reports whether any file differs from what is on disk.
func Changed(diffs []FileDiff) bool {
	for _, d := range diffs {
		if d.Status != StatusUnchanged {
			return true
		}
	}

	return false
}

// Write prints a unified diff, coloring lines through p.
func Write(p *ui.Printer, result *Result) {
	if !result.HasDifferences {
		p.Plain("No differences found.")
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(result.Unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			p.Title(line)
		case strings.HasPrefix(line, "@@"):
			p.Hunk(line)
		case strings.HasPrefix(line, "-"):
			p.Removed(line)
		case strings.HasPrefix(line, "+"):
			p.Added(line)
		default:
			p.Plain("%s", line)
		}
	}
}

func extractHunks(unified string) []string {
	var (
		hunks   []string
		current strings.Builder
	)

	for _, line := range strings.Split(unified, "\n") {
		if strings.HasPrefix(line, "@@") && current.Len() > 0 {
			hunks = append(hunks, current.String())
			current.Reset()
		}

		current.WriteString(line)
		current.WriteString("\n")
	}

	if current.Len() > 0 {
		hunks = append(hunks, current.String())
	}

	return hunks
}

// splitLines keeps trailing newlines on each element, as difflib expects.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}

	return strings.SplitAfter(s, "\n")
}
