package cli

import "testing"

func TestFlagSetParsesStringAndBool(t *testing.T) {
	fs := NewFlagSet("test")
	var out string
	var verbose bool
	fs.String(&out, "output", "o", "", "output directory", "dir")
	fs.Bool(&verbose, "verbose", "v", false, "verbose output")

	if err := fs.Parse([]string{"-o", "build", "-v"}); err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if out != "build" {
		t.Errorf("output = %q; want %q", out, "build")
	}
	if !verbose {
		t.Error("verbose should be true after -v")
	}
}

func TestFlagSetSpecialCollectsRepeatedPrefix(t *testing.T) {
	fs := NewFlagSet("test")
	var warnings []string
	fs.Special(&warnings, "W", "warning toggle", "warning")

	if err := fs.Parse([]string{"-Wlong-line", "-Wno-all", "prog.as"}); err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if len(warnings) != 2 || warnings[0] != "long-line" || warnings[1] != "no-all" {
		t.Errorf("warnings = %v; want [long-line, no-all]", warnings)
	}
	if len(fs.Args()) != 1 || fs.Args()[0] != "prog.as" {
		t.Errorf("Args() = %v; want [prog.as]", fs.Args())
	}
}

func TestAppRunInvokesAction(t *testing.T) {
	app := NewApp("test")
	var gotArgs []string
	app.Action = func(args []string) error {
		gotArgs = args
		return nil
	}
	if err := app.Run([]string{"a.as", "b.as"}); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "a.as" || gotArgs[1] != "b.as" {
		t.Errorf("Action received %v; want [a.as b.as]", gotArgs)
	}
}
