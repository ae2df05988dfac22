package main

import (
	"fmt"
	"os"

	"github.com/hadarhalfon/assembler/pkg/cli"
	"github.com/hadarhalfon/assembler/pkg/config"
	"github.com/hadarhalfon/assembler/pkg/driver"
)

func main() {
	app := cli.NewApp("asm")
	app.Synopsis = "[options] <input.as> ..."
	app.Description = "A two-pass assembler for a 10-bit word machine. Emits .ob, .ent, and .ext artifacts alongside the macro-expanded .am source."
	app.Authors = []string{"hadarhalfon"}
	app.Since = 2026

	var (
		outDir     string
		amOnly     bool
		warnFlags  []string
		featFlags  []string
	)

	fs := app.FlagSet
	fs.String(&outDir, "output", "o", "", "Write generated artifacts to <dir> instead of alongside each source file.", "dir")
	fs.Bool(&amOnly, "am-only", "", false, "Stop after macro expansion and write only the .am file.")
	fs.Special(&warnFlags, "W", "Enable or disable a warning, e.g. -Wall, -Wno-long-line.", "warning")
	fs.Special(&featFlags, "f", "Enable or disable a feature toggle, e.g. -fno-zero-fill-matrix.", "feature")

	cfg := config.New()

	app.Action = func(inputFiles []string) error {
		if len(inputFiles) == 0 {
			fmt.Fprintln(os.Stderr, "no files were sent to the assembler")
			return nil
		}

		for _, w := range warnFlags {
			if !cfg.Apply("W" + w) {
				fmt.Fprintf(os.Stderr, "unknown warning: -W%s\n", w)
			}
		}
		for _, f := range featFlags {
			if !cfg.Apply("f" + f) {
				fmt.Fprintf(os.Stderr, "unknown feature: -f%s\n", f)
			}
		}

		d := driver.New(cfg)
		d.OutDir = outDir
		d.AMOnly = amOnly

		for _, path := range inputFiles {
			report, err := d.AssembleFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "can't open %s or it does not exist.\n", path)
				continue
			}
			if report.Diags != nil {
				report.Diags.Render(os.Stderr)
			}
			if !report.Succeeded {
				fmt.Fprintf(os.Stderr, "can't finish the assembler process on file: %s.\n", path)
			}
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
