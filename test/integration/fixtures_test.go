// Package integration runs typedcli applications configured from fixture files.
package integration

import (
	"bytes"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/AndreyAkinshin/typedcli/pkg/typedcli"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func loadFixture(t *testing.T, name string) (*typedcli.Config, []string) {
	t.Helper()
	cfg, warnings, err := typedcli.LoadConfig(filepath.Join(fixturesDir(), "valid", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return cfg, warnings
}

// app builds an application from cfg with the given command identifiers.
// Every command appends its name to *ran.
func app(cfg *typedcli.Config, ran *[]string, ids ...string) (*typedcli.App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	a := typedcli.New(typedcli.WithConfig(cfg), typedcli.WithOutput(&stdout, &stderr))
	for _, id := range ids {
		a.CommandResult(id, func(inv *typedcli.Invocation) typedcli.Outcome {
			*ran = append(*ran, inv.Command)
			return typedcli.Success()
		})
	}
	return a, &stdout, &stderr
}
