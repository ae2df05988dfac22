// Package config holds the named, independently toggleable features and
// warnings that govern behavior the distilled specification left ambiguous.
package config

type Feature int

const (
	FeatStrictDirectiveMatch Feature = iota
	FeatStrictOpcodeMatch
	FeatZeroFillMatrix
	FeatExternRedefinitionError
	FeatResetEntriesFlag
	FeatCount
)

type Warning int

const (
	WarnExternLabelDiscarded Warning = iota
	WarnDuplicateExternDecl
	WarnLongLine
	WarnMatrixPartialFill
	WarnPedanticCommaSpacing
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
}

func New() *Config {
	c := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
	}

	features := map[Feature]Info{
		FeatStrictDirectiveMatch:    {"strict-directive-match", true, "Require a trailing delimiter after a directive keyword (.data, .string, .mat, .extern, .entry)."},
		FeatStrictOpcodeMatch:       {"strict-opcode-match", true, "Require a word boundary after an opcode mnemonic."},
		FeatZeroFillMatrix:          {"zero-fill-matrix", true, "Always reserve and zero-fill the full R*C words of a .mat declaration."},
		FeatExternRedefinitionError: {"extern-redefinition-error", true, "Treat redefining an existing non-extern symbol as extern as an error."},
		FeatResetEntriesFlag:        {"reset-entries-flag", true, "Clear the entries flag as part of per-file state reset."},
	}

	warnings := map[Warning]Info{
		WarnExternLabelDiscarded: {"extern-label-discarded", true, "Warn when a label precedes a .extern directive; the label is discarded."},
		WarnDuplicateExternDecl:  {"duplicate-extern-decl", false, "Warn on a harmless repeated .extern declaration of the same name."},
		WarnLongLine:             {"long-line", true, "Warn when a source line exceeds 80 characters, in addition to the error."},
		WarnMatrixPartialFill:    {"matrix-partial-fill", false, "Warn when a .mat initializer supplies fewer values than R*C."},
		WarnPedanticCommaSpacing: {"pedantic-comma-spacing", false, "Accepted by -W flags; no check emits a diagnostic under this name."},
	}

	c.Features = features
	c.Warnings = warnings
	for ft, info := range features {
		c.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		c.WarningMap[info.Name] = wt
	}
	return c
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

func (c *Config) SetAllWarnings(enabled bool) {
	for i := Warning(0); i < WarnCount; i++ {
		c.SetWarning(i, enabled)
	}
}

// Apply applies a single `-W<name>`, `-Wno-<name>`, `-f<name>`, `-fno-<name>`,
// `-Wall` or `-Wno-all` style flag (without its leading dash) to the config.
func (c *Config) Apply(flag string) bool {
	switch {
	case flag == "Wall":
		c.SetAllWarnings(true)
		return true
	case flag == "Wno-all":
		c.SetAllWarnings(false)
		return true
	case len(flag) > 1 && flag[0] == 'W':
		rest := flag[1:]
		enable := true
		if len(rest) > 3 && rest[:3] == "no-" {
			enable = false
			rest = rest[3:]
		}
		if w, ok := c.WarningMap[rest]; ok {
			c.SetWarning(w, enable)
			return true
		}
	case len(flag) > 1 && flag[0] == 'f':
		rest := flag[1:]
		enable := true
		if len(rest) > 3 && rest[:3] == "no-" {
			enable = false
			rest = rest[3:]
		}
		if f, ok := c.FeatureMap[rest]; ok {
			c.SetFeature(f, enable)
			return true
		}
	}
	return false
}
