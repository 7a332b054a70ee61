package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/cellvm/internal/logger"
	"github.com/joshuapare/cellvm/registry"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		lines         []string
		wantErr       bool
		wantStdout    string
		wantStderr    []string
		wantNotStderr []string
	}{
		{
			name:       "arithmetic",
			lines:      []string{"Mal x 2", "Mal y 1", "Ass x 5", "Ass y 7", "Add x y", "Pri x 0", "Pra x"},
			wantStdout: "12\n[ 12 0 ]\n",
		},
		{
			name:       "failing lines are skipped",
			lines:      []string{"Mal x 1", "Pri q 0", "Inc x 0", "Pri x 0"},
			wantStdout: "1\n",
			wantStderr: []string{"line 2: variable does not exist", "1 of 4 lines failed"},
		},
		{
			name:          "quiet hides the summary",
			args:          []string{"--quiet"},
			lines:         []string{"Pri q 0"},
			wantStderr:    []string{"line 1: variable does not exist"},
			wantNotStderr: []string{"lines failed"},
		},
		{
			name:       "small memory",
			args:       []string{"--cells", "3"},
			lines:      []string{"Mal x 3", "Mal y 1"},
			wantStderr: []string{"line 2: not enough memory"},
		},
		{
			name:       "verbose with check",
			args:       []string{"-v", "--check"},
			lines:      []string{"Mal x 3", "Mal y 3", "Fre x"},
			wantStderr: []string{"Memory: 100 cells", "Lines: 3, executed: 3, failed: 0", "Free list invariants hold"},
		},
		{
			name:       "changes",
			args:       []string{"--changes"},
			lines:      []string{"Mal x 3", "Mal y 2", "Inc y 1", "Fre x", "Mal z 1", "Ass z 9"},
			wantStdout: "modified: [0,5)\n",
		},
		{
			name:    "invalid cells",
			args:    []string{"--cells", "0"},
			lines:   []string{"Mal x 1"},
			wantErr: true,
		},
		{
			name:    "cells beyond the arena limit",
			args:    []string{"--cells", "4611686018427387903"},
			lines:   []string{"Mal x 1"},
			wantErr: true,
		},
		{
			name:    "invalid dump format",
			args:    []string{"--dump", "xml"},
			lines:   []string{"Mal x 1"},
			wantErr: true,
		},
		{
			name:    "invalid encoding",
			args:    []string{"--encoding", "ebcdic"},
			lines:   []string{"Mal x 1"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			args:    []string{"--log-level", "loud"},
			lines:   []string{"Mal x 1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeScript(t, tt.lines...)
			args := append([]string{"run"}, tt.args...)
			args = append(args, script)

			stdout, stderr, err := runCLI(t, nil, args...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err, stderr)
			assert.Equal(t, tt.wantStdout, stdout)
			assertContains(t, stderr, tt.wantStderr)
			assertNotContains(t, stderr, tt.wantNotStderr)
		})
	}
}

func TestRunCommand_Stdin(t *testing.T) {
	stdout, _, err := runCLI(t, strings.NewReader("Mal a 3\nInc a 2\nPra a\n"), "run", "-")
	require.NoError(t, err)
	assert.Equal(t, "[ 0 0 1 ]\n", stdout)
}

func TestRunCommand_Strict(t *testing.T) {
	script := writeScript(t, "Mal x 1", "Pri q 0", "Pri x 0")
	stdout, _, err := runCLI(t, nil, "run", "--strict", script)
	require.ErrorIs(t, err, registry.ErrUnknown)
	assert.Empty(t, stdout)
}

func TestRunCommand_MissingScript(t *testing.T) {
	_, _, err := runCLI(t, nil, "run", filepath.Join(t.TempDir(), "nope.cvm"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open script")
}

func TestRunCommand_DumpJSON(t *testing.T) {
	script := writeScript(t, "Mal a 2", "Mal b 3", "Ass b 9", "Fre a")
	stdout, _, err := runCLI(t, nil, "run", "--cells", "10", "--dump", "json", script)
	require.NoError(t, err)

	var report runReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 4, report.Summary.Executed)
	assert.Equal(t, 10, report.Memory.Capacity)
	assert.Equal(t, 7, report.Memory.FreeCells)
	require.Len(t, report.Memory.Arrays, 1)
	assert.Equal(t, "b", report.Memory.Arrays[0].Name)
	assert.Equal(t, []int32{9, 0, 0}, report.Memory.Arrays[0].Values)
	assert.Equal(t, 2, report.Stats.Allocs)
	assert.Nil(t, report.Modified)
}

func TestRunCommand_DumpYAML(t *testing.T) {
	script := writeScript(t, "Mal a 2", "Ass a 4")
	stdout, _, err := runCLI(t, nil, "run", "--cells", "4", "--dump", "yaml", "--changes", script)
	require.NoError(t, err)
	assertContains(t, stdout, []string{"summary:", "executed: 2", "free_cells: 2", "values: [4, 0]", "modified:"})
	assertNotContains(t, stdout, []string{"modified: [0,2)"})
}

func TestRunCommand_Mapped(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("mapped storage needs unix")
	}
	script := writeScript(t, "Mal a 4", "Ass a 7", "Pri a 0")
	stdout, _, err := runCLI(t, nil, "run", "--mapped", "--cells", "16", script)
	require.NoError(t, err)
	assert.Equal(t, "7\n", stdout)
}

func TestRunCommand_EnvConfig(t *testing.T) {
	t.Setenv("CELLVM_CELLS", "2")
	script := writeScript(t, "Mal x 2", "Mal y 1")
	_, stderr, err := runCLI(t, nil, "run", script)
	require.NoError(t, err)
	assert.Contains(t, stderr, "line 2: not enough memory")
}

func TestRunCommand_FlagBeatsEnv(t *testing.T) {
	t.Setenv("CELLVM_CELLS", "2")
	script := writeScript(t, "Mal x 2", "Mal y 1")
	_, stderr, err := runCLI(t, nil, "run", "--cells", "3", script)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "not enough memory")
}

func TestRunCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cellvm.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cells: 1\nstrict: true\n"), 0644))

	script := writeScript(t, "Mal x 1", "Mal y 1", "Pri x 0")
	_, _, err := runCLI(t, nil, "run", "--config", cfgPath, script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, _, err = runCLI(t, nil, "run", "--config", filepath.Join(dir, "missing.yaml"), script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRunCommand_LogFile(t *testing.T) {
	t.Cleanup(logger.Close)
	logPath := filepath.Join(t.TempDir(), "cellvm.log")
	script := writeScript(t, "Mal x 1", "Pri q 0")

	_, _, err := runCLI(t, nil, "run", "--log-file", logPath, script)
	require.NoError(t, err)
	logger.Close()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assertContains(t, string(data), []string{`"msg":"line failed"`, `"msg":"script done"`})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, nil, "version")
	require.NoError(t, err)
	assertContains(t, stdout, []string{"cellvm dev", "commit: none"})
}
