package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hadarhalfon/assembler/pkg/config"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("could not write fixture %s: %v", path, err)
	}
	return path
}

func TestAssembleFileWritesObjectFile(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.as", "MAIN: mov r1, r2\nstop\n")

	d := New(config.New())
	report, err := d.AssembleFile(src)
	if err != nil {
		t.Fatalf("AssembleFile returned an error: %v", err)
	}
	if !report.Succeeded {
		t.Fatalf("report.Succeeded = false; diags: %v", report.Diags.Items())
	}

	obPath := filepath.Join(dir, "prog.ob")
	if _, err := os.Stat(obPath); err != nil {
		t.Errorf(".ob file was not written: %v", err)
	}
	amPath := filepath.Join(dir, "prog.am")
	if _, err := os.Stat(amPath); err != nil {
		t.Errorf(".am file was not written: %v", err)
	}
}

func TestAssembleFileWritesEntryAndExternalFiles(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.as", ".extern EXT\nMAIN: jmp EXT\n.entry MAIN\n")

	d := New(config.New())
	report, err := d.AssembleFile(src)
	if err != nil {
		t.Fatalf("AssembleFile returned an error: %v", err)
	}
	if !report.Succeeded {
		t.Fatalf("report.Succeeded = false; diags: %v", report.Diags.Items())
	}

	if _, err := os.Stat(filepath.Join(dir, "prog.ent")); err != nil {
		t.Errorf(".ent file was not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.ext")); err != nil {
		t.Errorf(".ext file was not written: %v", err)
	}
}

func TestAssembleFileAMOnlyStopsEarly(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "prog.as", "mov r1, r2\n")

	d := New(config.New())
	d.AMOnly = true
	report, err := d.AssembleFile(src)
	if err != nil {
		t.Fatalf("AssembleFile returned an error: %v", err)
	}
	if !report.Succeeded {
		t.Fatalf("report.Succeeded = false; diags: %v", report.Diags.Items())
	}
	if _, err := os.Stat(filepath.Join(dir, "prog.ob")); err == nil {
		t.Error(".ob file should not be written when AMOnly is set")
	}
}

func TestAssembleFileMissingSourceReturnsError(t *testing.T) {
	d := New(config.New())
	if _, err := d.AssembleFile("/nonexistent/prog.as"); err == nil {
		t.Error("AssembleFile should return an error for a missing source file")
	}
}

func TestAssembleFileStickyEntryFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.SetFeature(config.FeatResetEntriesFlag, false)
	d := New(cfg)

	src1 := writeSource(t, dir, "first.as", "L: mov r1, r2\n.entry L\n")
	if _, err := d.AssembleFile(src1); err != nil {
		t.Fatalf("AssembleFile(first) error: %v", err)
	}

	src2 := writeSource(t, dir, "second.as", "mov r1, r2\n")
	if _, err := d.AssembleFile(src2); err != nil {
		t.Fatalf("AssembleFile(second) error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "second.ent")); err != nil {
		t.Error("with reset-entries-flag disabled, the second file should inherit the sticky entry flag and still write .ent")
	}
}
