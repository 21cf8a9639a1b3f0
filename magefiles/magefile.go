//go:build mage

// Package main contains Mage build targets for research-report developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "research-report"
	cmdPkg  = "./cmd/research-report"
)

var binPath = filepath.Join(binDir, binName)

// workDirs lists the directories the pipeline writes into.
var workDirs = []string{
	"syntheses",
	"logs",
	".secrets",
}

// Init creates the working directories used by the pipeline.
func Init() error {
	for _, dir := range workDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Working directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Questions generates the questions file.
func Questions() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "questions")
}

// Collect gathers sources for every question.
func Collect() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "collect")
}

// Synthesize writes one synthesis per question.
func Synthesize() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "synthesize")
}

// Report assembles and renders the final report.
func Report() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "report")
}

// All runs every stage in order.
func All() {
	mg.SerialDeps(Questions, Collect, Synthesize, Report)
}

// Stats prints Go line counts and the size of the current pipeline outputs.
func Stats() error {
	prodLines, testLines, err := countGoLines(".")
	if err != nil {
		return err
	}
	syntheses, err := filepath.Glob(filepath.Join("syntheses", "*.md"))
	if err != nil {
		return err
	}
	sources, err := countLines("sources_combined.csv")
	if err != nil {
		return err
	}
	if sources > 0 {
		sources-- // header
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Syntheses:                       %d\n", len(syntheses))
	fmt.Printf("Collected sources:               %d\n", sources)
	return nil
}

// countGoLines counts non-blank lines in production and test Go files.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

// countLines returns the number of non-blank lines in path. A missing file
// counts as zero.
func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n, sc.Err()
}
