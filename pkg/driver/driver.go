// Package driver orchestrates the full per-file assembly pipeline:
// macro expansion, first pass, second pass, and artifact emission.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hadarhalfon/assembler/pkg/config"
	"github.com/hadarhalfon/assembler/pkg/diag"
	"github.com/hadarhalfon/assembler/pkg/emit"
	"github.com/hadarhalfon/assembler/pkg/macro"
	"github.com/hadarhalfon/assembler/pkg/pass1"
	"github.com/hadarhalfon/assembler/pkg/pass2"
	"github.com/hadarhalfon/assembler/pkg/symtab"
)

// Report summarizes the outcome of assembling one source file.
type Report struct {
	SourceName string
	Diags      *diag.List
	Succeeded  bool
	Written    []string
}

// Driver carries the state shared across files in one invocation: the
// active configuration and, when FeatResetEntriesFlag is disabled, the
// unreset "did any file so far request .entry" flag the original carried
// as a process-wide global.
type Driver struct {
	cfg          *config.Config
	stickyEntry  bool
	AMOnly       bool // stop after writing the macro-expanded .am file
	OutDir       string
}

func New(cfg *config.Config) *Driver {
	return &Driver{cfg: cfg}
}

// AssembleFile runs the full pipeline for one ".as" source file, writing
// its .am, .ob, .ent (if any), and .ext (if any) artifacts alongside it
// (or under OutDir, if set).
func (d *Driver) AssembleFile(path string) (*Report, error) {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if d.OutDir == "" {
		base = filepath.Join(dir, base)
	}
	report := &Report{SourceName: path}

	content, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("can't open %s: %w", path, err)
	}

	src := diag.NewSource(path, string(content))
	diags := diag.NewList(src)
	report.Diags = diags

	rawLines := strings.Split(string(content), "\n")

	expanded := macro.Expand(rawLines, diags)
	if diags.HasErrors() {
		return report, nil
	}

	amPath := d.outputPath(base, ".am")
	if err := writeLines(amPath, expanded); err != nil {
		return report, fmt.Errorf("can't write %s: %w", amPath, err)
	}
	report.Written = append(report.Written, amPath)
	if d.AMOnly {
		report.Succeeded = true
		return report, nil
	}

	p1 := pass1.Run(expanded, d.cfg, diags)
	if diags.HasErrors() {
		return report, nil
	}

	p2 := pass2.Run(expanded, p1, diags)
	if diags.HasErrors() {
		return report, nil
	}

	entriesThisFile := p2.EntrySeen
	buildEnt := entriesThisFile
	if !d.cfg.IsFeatureEnabled(config.FeatResetEntriesFlag) {
		buildEnt = buildEnt || d.stickyEntry
		d.stickyEntry = d.stickyEntry || entriesThisFile
	}

	if len(p2.Externals) > 0 {
		path := d.outputPath(base, ".ext")
		f, err := os.Create(path)
		if err != nil {
			return report, fmt.Errorf("can't create %s: %w", path, err)
		}
		emit.WriteExternals(f, p2.Externals)
		f.Close()
		report.Written = append(report.Written, path)
	}

	if buildEnt {
		path := d.outputPath(base, ".ent")
		f, err := os.Create(path)
		if err != nil {
			return report, fmt.Errorf("can't create %s: %w", path, err)
		}
		emit.WriteEntries(f, entrySymbols(p1.Symbols))
		f.Close()
		report.Written = append(report.Written, path)
	}

	obPath := d.outputPath(base, ".ob")
	f, err := os.Create(obPath)
	if err != nil {
		return report, fmt.Errorf("can't create %s: %w", obPath, err)
	}
	emit.WriteObject(f, p1)
	f.Close()
	report.Written = append(report.Written, obPath)

	report.Succeeded = true
	return report, nil
}

func entrySymbols(t *symtab.Table) []*symtab.Symbol { return t.All() }

func (d *Driver) outputPath(base, ext string) string {
	name := base + ext
	if d.OutDir != "" {
		return filepath.Join(d.OutDir, name)
	}
	return name
}

func writeLines(path string, lines []string) error {
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
}
