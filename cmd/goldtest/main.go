// goldtest runs the assembler against a suite of ".as" fixtures and checks
// its generated .am/.ob/.ent/.ext artifacts against stored golden files,
// or regenerates those golden files on request.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"
)

// Artifacts is the full set of generated file contents for one source file,
// keyed by extension (".am", ".ob", ".ent", ".ext" — the latter two absent
// when the source declares no entries or external references).
type Artifacts map[string]string

// FileResult is the outcome of testing one source file.
type FileResult struct {
	File    string `json:"file"`
	Status  string `json:"status"` // PASS, FAIL, SKIP, ERROR, UPDATED
	Message string `json:"message,omitempty"`
	Diff    string `json:"diff,omitempty"`
}

var (
	targetBin  = flag.String("target", "./asm", "Path to the assembler binary under test.")
	testGlob   = flag.String("test-files", "tests/*.as", "Glob pattern(s) for fixture files (space-separated).")
	skipFiles  = flag.String("skip-files", "", "Files to skip (space-separated).")
	generate   = flag.String("generate-golden", "", "Generate a golden file for a single source file and exit.")
	update     = flag.Bool("update", false, "Regenerate the golden file for every fixture in the suite from the current assembler's output, instead of comparing against it.")
	goldenDir  = flag.String("dir", "", "Directory holding golden .json files (defaults to alongside each source file).")
	outputJSON = flag.String("output", ".goldtest_results.json", "Where to write the JSON test report.")
	jobs       = flag.Int("j", 4, "Number of parallel test jobs.")
)

const (
	cRed    = "\x1b[91m"
	cGreen  = "\x1b[92m"
	cYellow = "\x1b[93m"
	cNone   = "\x1b[0m"
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	tempDir, err := os.MkdirTemp("", "goldtest-*")
	if err != nil {
		log.Fatalf("%s[ERROR]%s failed to create temp directory: %v\n", cRed, cNone, err)
	}
	defer os.RemoveAll(tempDir)

	if *generate != "" {
		generateGolden(*generate, tempDir)
		return
	}
	runSuite(tempDir)
}

func hashContent(s string) string {
	h := xxhash.New()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%x", h.Sum64())
}

func goldenPath(source string) string {
	name := "." + filepath.Base(source) + ".golden.json"
	if *goldenDir != "" {
		return filepath.Join(*goldenDir, name)
	}
	return filepath.Join(filepath.Dir(source), name)
}

// assemble runs the target binary against source and collects the
// artifacts it produced in outDir.
func assemble(source, outDir string) (Artifacts, error) {
	cmd := exec.Command(*targetBin, "-o", outDir, source)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, output)
	}

	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	artifacts := Artifacts{}
	for _, ext := range []string{".am", ".ob", ".ent", ".ext"} {
		path := filepath.Join(outDir, base+ext)
		content, err := os.ReadFile(path)
		if err != nil {
			continue // .ent/.ext are legitimately absent for many fixtures
		}
		artifacts[ext] = string(content)
	}
	return artifacts, nil
}

func generateGolden(source, tempDir string) {
	outDir := filepath.Join(tempDir, "gen")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
	}
	artifacts, err := assemble(source, outDir)
	if err != nil {
		log.Fatalf("%s[ERROR]%s could not assemble %s: %v\n", cRed, cNone, source, err)
	}
	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
	}
	path := goldenPath(source)
	if *goldenDir != "" {
		if err := os.MkdirAll(*goldenDir, 0o755); err != nil {
			log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("%s[ERROR]%s %v\n", cRed, cNone, err)
	}
	log.Printf("%s[SUCCESS]%s golden file written to %s\n", cGreen, cNone, path)
}

func runSuite(tempDir string) {
	files, err := expandGlobs(*testGlob)
	if err != nil {
		log.Fatalf("%s[ERROR]%s invalid glob pattern(s): %v\n", cRed, cNone, err)
	}
	if len(files) == 0 {
		log.Println("no test files matched the given pattern(s)")
		return
	}

	skip := make(map[string]bool)
	for _, f := range strings.Fields(*skipFiles) {
		skip[f] = true
	}

	// Dedup identical fixtures by content hash, the way large fixture
	// suites accumulate near-duplicate regression cases over time.
	seen := make(map[string]string)
	tasks := make(chan string, len(files))
	results := make(chan *FileResult, len(files))

	for _, f := range files {
		if skip[f] {
			results <- &FileResult{File: f, Status: "SKIP", Message: "explicitly skipped"}
			continue
		}
		content, err := os.ReadFile(f)
		if err != nil {
			results <- &FileResult{File: f, Status: "ERROR", Message: err.Error()}
			continue
		}
		h := hashContent(string(content))
		if original, dup := seen[h]; dup {
			results <- &FileResult{File: f, Status: "SKIP", Message: fmt.Sprintf("identical to %s", original)}
			continue
		}
		seen[h] = f
		tasks <- f
	}
	close(tasks)

	var wg sync.WaitGroup
	for i := 0; i < *jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range tasks {
				results <- testFile(f, tempDir)
			}
		}()
	}
	wg.Wait()
	close(results)

	var all []*FileResult
	for r := range results {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].File < all[j].File })

	printSummary(all)
	writeReport(all)

	for _, r := range all {
		if r.Status == "FAIL" || r.Status == "ERROR" {
			os.Exit(1)
		}
	}
}

func testFile(source, tempDir string) *FileResult {
	outDir := filepath.Join(tempDir, hashContent(source))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return &FileResult{File: source, Status: "ERROR", Message: err.Error()}
	}
	got, err := assemble(source, outDir)
	if err != nil {
		return &FileResult{File: source, Status: "FAIL", Message: "assembler failed", Diff: err.Error()}
	}

	if *update {
		return writeGolden(source, got)
	}

	golden := goldenPath(source)
	data, err := os.ReadFile(golden)
	if err != nil {
		return &FileResult{File: source, Status: "SKIP", Message: "no golden file; run with -update or -generate-golden first"}
	}
	var want Artifacts
	if err := json.Unmarshal(data, &want); err != nil {
		return &FileResult{File: source, Status: "ERROR", Message: fmt.Sprintf("could not parse golden file: %v", err)}
	}

	if diff := cmp.Diff(want, got); diff != "" {
		return &FileResult{File: source, Status: "FAIL", Message: "artifacts differ from golden", Diff: diff}
	}
	return &FileResult{File: source, Status: "PASS"}
}

func writeGolden(source string, artifacts Artifacts) *FileResult {
	data, err := json.MarshalIndent(artifacts, "", "  ")
	if err != nil {
		return &FileResult{File: source, Status: "ERROR", Message: err.Error()}
	}
	if *goldenDir != "" {
		if err := os.MkdirAll(*goldenDir, 0o755); err != nil {
			return &FileResult{File: source, Status: "ERROR", Message: err.Error()}
		}
	}
	if err := os.WriteFile(goldenPath(source), data, 0o644); err != nil {
		return &FileResult{File: source, Status: "ERROR", Message: err.Error()}
	}
	return &FileResult{File: source, Status: "UPDATED"}
}

func expandGlobs(patterns string) ([]string, error) {
	var all []string
	for _, p := range strings.Fields(patterns) {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, err
		}
		all = append(all, matches...)
	}
	return all, nil
}

func printSummary(results []*FileResult) {
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
		color := cGreen
		switch r.Status {
		case "FAIL", "ERROR":
			color = cRed
		case "SKIP":
			color = cYellow
		}
		fmt.Printf("%s[%s]%s %s", color, r.Status, cNone, r.File)
		if r.Message != "" {
			fmt.Printf(" - %s", r.Message)
		}
		fmt.Println()
		if r.Diff != "" {
			fmt.Println(r.Diff)
		}
	}
	fmt.Printf("\n%d passed, %d failed, %d error, %d skipped\n", counts["PASS"], counts["FAIL"], counts["ERROR"], counts["SKIP"])
}

func writeReport(results []*FileResult) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Printf("%s[WARN]%s could not marshal report: %v\n", cYellow, cNone, err)
		return
	}
	if err := os.WriteFile(*outputJSON, data, 0o644); err != nil {
		log.Printf("%s[WARN]%s could not write report: %v\n", cYellow, cNone, err)
	}
}
