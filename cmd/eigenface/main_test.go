// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFaces writes n distinct 4×3 grayscale images and returns their paths.
func writeFaces(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		px := make([]byte, 12)
		for j := range px {
			px[j] = byte((j*37 + i*91 + (i*j)%7*13) % 256)
		}
		body := append([]byte("P5\n4 3\n255\n"), px...)
		paths[i] = filepath.Join(dir, name+".pgm")
		require.NoError(t, os.WriteFile(paths[i], body, 0o600))
	}

	return paths
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "eigenface.toml")
	body := fmt.Sprintf("[log]\nlevel = \"error\"\n[storage]\ndir = %q\n[metrics]\ntextfile = %q\n",
		filepath.Join(dir, "store"), filepath.Join(dir, "eigenface.prom"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestRun_TrainRecognizeExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conf := writeConfig(t, dir)
	faces := writeFaces(t, dir, "ann", "bob", "cid", "dee")
	ctx := context.Background()

	var out, errb bytes.Buffer
	code := run(ctx, append([]string{"train", "-db", "team", "-config", conf}, faces...), &out, &errb)
	require.Equal(t, exitOK, code, errb.String())
	require.Contains(t, out.String(), "trained team: 4 images, 12 pixels, 3 components")
	_, err := os.Stat(filepath.Join(dir, "store", "team"))
	require.NoError(t, err)

	out.Reset()
	code = run(ctx, []string{"recognize", "-db", "team", "-config", conf, faces[2], faces[0]}, &out, &errb)
	require.Equal(t, exitOK, code, errb.String())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, []string{faces[2], "cid", "0", "known"}, strings.Split(lines[0], "\t"))
	require.Equal(t, []string{faces[0], "ann", "0", "known"}, strings.Split(lines[1], "\t"))

	prom, err := os.ReadFile(filepath.Join(dir, "eigenface.prom"))
	require.NoError(t, err)
	require.Contains(t, string(prom), `eigenface_recognitions_total{result="known"} 2`)

	out.Reset()
	exportDir := filepath.Join(dir, "export")
	code = run(ctx, []string{"export", "-db", "team", "-config", conf, "-width", "4", "-height", "3", "-out", exportDir}, &out, &errb)
	require.Equal(t, exitOK, code, errb.String())
	for _, name := range []string{"mean.ppm", "eigenface-000.ppm", "eigenface-002.ppm"} {
		_, err = os.Stat(filepath.Join(exportDir, name))
		require.NoError(t, err, name)
	}
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conf := writeConfig(t, dir)
	faces := writeFaces(t, dir, "a", "b")
	ctx := context.Background()

	var out, errb bytes.Buffer
	code := run(ctx, []string{"recognize", "-db", "absent", "-config", conf, faces[0]}, &out, &errb)
	require.Equal(t, exitError, code)
	require.Contains(t, errb.String(), "object not found")

	odd := filepath.Join(dir, "odd.pgm")
	require.NoError(t, os.WriteFile(odd, append([]byte("P5 2 1 255\n"), 1, 2), 0o600))
	code = run(ctx, []string{"train", "-db", "x", "-config", conf, faces[0], odd}, &out, &errb)
	require.Equal(t, exitError, code)
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cases := [][]string{
		nil,
		{"fly"},
		{"train", "-db", "x"},
		{"train", "img.pgm"},
		{"recognize", "-bogus"},
		{"export", "-db", "x", "-out", "d"},
		{"export", "-db", "x", "-width", "2", "-height", "2"},
		{"train", "-h"},
	}
	for _, args := range cases {
		var out, errb bytes.Buffer
		require.Equal(t, exitUsage, run(ctx, args, &out, &errb), "%q", args)
	}
}
