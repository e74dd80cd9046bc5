// Package main builds the jsv binary into bin/, stamping the version from git.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const versionVar = "github.com/andyballingall/json-schema-validator/internal/app.Version"

func version() string {
	var out bytes.Buffer
	cmd := exec.Command("git", "describe", "--tags", "--always", "--dirty")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "dev"
	}
	return strings.TrimSpace(out.String())
}

func main() {
	binaryName := "jsv"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	if err := os.MkdirAll("bin", 0o755); err != nil {
		fmt.Printf("❌ Failed to create bin directory: %v\n", err)
		os.Exit(1)
	}

	v := version()
	outputPath := filepath.Join("bin", binaryName)
	fmt.Printf("Building jsv %s...\n", v)

	cmd := exec.Command("go", "build", "-ldflags", "-X "+versionVar+"="+v, "-o", outputPath, "./cmd/jsv")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Build complete: %s\n", outputPath)
}
