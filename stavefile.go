//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/mdlstyle"
	mainPkg = "./cmd/mdlstyle"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b": Build,
	"t": Test.Default,
	"l": Lint.Default,
	"c": Check,
	"s": Smoke,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles bin/mdlstyle with version info when its sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes the binary and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Smoke runs every subcommand of a fresh build against a generated style
// file and project config.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "mdlstyle-smoke-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	bin, err := filepath.Abs(binary)
	if err != nil {
		return err
	}
	styleFile := filepath.Join(dir, ".mdl_style.rb")
	runs := [][]string{
		{"init", "--config-file", "-o", styleFile},
		{"check", "--strict", styleFile},
		{"check", "--format", "sarif", styleFile},
		{"fmt", "--check", styleFile},
		{"show", "--format", "toml", styleFile},
		{"rules", "--tag", "headers"},
		{"export", styleFile, "--target", "markdownlint-yaml", "-o", "-"},
	}
	for _, args := range runs {
		if err := sh.RunV(bin, args...); err != nil {
			return fmt.Errorf("mdlstyle %s: %w", strings.Join(args, " "), err)
		}
	}
	fmt.Println("smoke test passed")
	return nil
}

// Default runs the test suite with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "./...",
		"-coverprofile=coverage.out", "-covermode=atomic")
}

// Verbose runs the test suite printing every test.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-v", "-race", "./...")
}

// Cover renders coverage.out as HTML.
func (Test) Cover() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Bench runs the style file parser benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/style/")
}

// Fuzz fuzzes the style file parser for FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	return sh.RunV("go", "test", "-run", "^$", "-fuzz", "^FuzzParseFile$",
		"-fuzztime", fuzzTime, "./pkg/style/")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt runs gofmt over the tree.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate runs the checks CI requires, without modifying the tree.
func (CI) Gate() error {
	st.SerialDeps(CI.Fmt, CI.Vet, CI.Lint, Build, Test.Default, CI.Tidy, CI.Cross)
	fmt.Println("CI gate passed")
	return nil
}

// Fmt fails when gofmt would change a file.
func (CI) Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Vet runs go vet.
func (CI) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs golangci-lint without fixes.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Tidy fails when go mod tidy changes go.mod or go.sum.
func (CI) Tidy() error {
	files := []string{"go.mod", "go.sum"}
	before := make(map[string][]byte, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if !bytes.Equal(before[name], after) {
			return errors.New(name + " is not tidy; run go mod tidy and commit the result")
		}
	}
	return nil
}

// Cross builds the binary for every release platform.
func (CI) Cross() error {
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "freebsd/amd64",
	}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// gotestsum runs go test through gotestsum with the given output format.
func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs}, args...)
	return sh.RunV("go", cmdArgs...)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	version := cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(git("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
