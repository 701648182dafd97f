package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"debdl/internal/ports"
	"debdl/internal/types"
)

// ScriptFileAdapter emits install.sh: an apt-based installation script
// that installs downloaded archives in dependency order. Packages without
// a Filename field are left out of the script; apt-get install -f at the
// end picks up anything the skipped entries leave dangling.
type ScriptFileAdapter struct {
	Dir string
}

func NewScriptFileAdapter(dir string) ScriptFileAdapter {
	return ScriptFileAdapter{Dir: dir}
}

func (a ScriptFileAdapter) WriteInstallScript(index types.PackageIndex, order []string, debsDir string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("script output directory is required")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create script directory").
			WithCause(err)
	}

	lines := []string{
		"#!/bin/bash",
		"set -e",
		"",
		"echo 'Starting installation of downloaded .deb packages...'",
		"",
	}
	for _, name := range order {
		record, ok := index[name]
		if !ok {
			continue
		}
		filename := record.Filename()
		if filename == "" {
			continue
		}
		debPath := filepath.Join(debsDir, filepath.Base(filename))
		lines = append(lines, fmt.Sprintf("echo 'Installing %s...'", name))
		lines = append(lines, fmt.Sprintf("sudo apt install ./%s || true", debPath))
		lines = append(lines, "")
	}
	lines = append(lines, "echo 'Fixing dependencies, if any...'")
	lines = append(lines, "sudo apt-get install -f -y")
	lines = append(lines, "echo 'Installation complete.'")

	path := filepath.Join(a.Dir, "install.sh")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write install script").
			WithCause(err)
	}
	return path, nil
}

var _ ports.ScriptWriterPort = ScriptFileAdapter{}
