package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"emitorcsv"
)

const sampleDoc = `<emitor nazwa="E1"><status typ="T1"><auto pkt="7"/></status></emitor>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "example.xml")
	out := filepath.Join(dir, "wyniki.csv")
	require.NoError(t, os.WriteFile(in, []byte(sampleDoc), 0o644))

	require.NoError(t, run(in, out, "", 1024, false, true))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, strings.TrimRight(emitorcsv.Header, "\n"), lines[0])
	require.Contains(t, lines[1], `"E1.status.T1.auto","7"`)
}

func TestRunFilter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "example.xml")
	out := filepath.Join(dir, "wyniki.csv")
	require.NoError(t, os.WriteFile(in, []byte(sampleDoc), 0o644))

	require.NoError(t, run(in, out, "pkt > 100", 1024, false, true))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, emitorcsv.Header, string(data), "filtered run leaves only the header")
}

func TestRunBadFilter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "example.xml")
	require.NoError(t, os.WriteFile(in, []byte(sampleDoc), 0o644))

	err := run(in, filepath.Join(dir, "out.csv"), "pkt >", 1024, false, true)
	require.Error(t, err)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "missing.xml"), filepath.Join(dir, "out.csv"), "", 1024, false, true)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist, "wrapping keeps the cause reachable")
}
