//go:build mage

// Package main contains Mage build targets for wiki-research.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// commands maps each binary name to its package.
var commands = map[string]string{
	"arithmetic": "./cmd/arithmetic",
	"research":   "./cmd/research",
}

// Init creates the output directory the research command appends to.
func Init() error {
	for _, dir := range []string{"output", binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	return nil
}

// Build compiles both commands into bin/.
func Build() error {
	mg.Deps(Init)
	for name, pkg := range commands {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes built binaries and local telemetry artifacts.
func Clean() error {
	for _, dir := range []string{binDir, ".research"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
