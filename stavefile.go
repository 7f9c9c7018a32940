//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/sharplint"
	mainPkg = "./cmd/sharplint"
)

var Default = Build

var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"i":     Install,
	"d":     Docs,
	"fmt":   Lint.Fmt,
	"bench": Bench.Default,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/sharplint with version info when any source changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Docs regenerates the per-rule Markdown pages under docs/rules.
func Docs() error {
	st.Deps(Build)
	return sh.RunV(binary, "rules", "--format", "markdown", "--docs-dir", "docs/rules")
}

// Coverage renders coverage.out from the last test run as HTML.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the race-enabled test suite with coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose is Default with every test name printed.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without fixing anything.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every check a pull request must pass.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
}

// ModTidy fails when go mod tidy changes go.mod.
func (CI) ModTidy() error {
	before, err := os.ReadFile("go.mod")
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := os.ReadFile("go.mod")
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod is not tidy; run 'go mod tidy' and commit the result")
	}
	return nil
}

// Cross builds the CLI for every release platform without cgo.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the Go benchmarks, including the dispatcher and parser ones.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/...")
}

func gotestsum(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
