package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hvec"
	"github.com/hupe1980/hvec/blobstore"
	"github.com/hupe1980/hvec/saveppm"
)

func runArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Default(t *testing.T) {
	code, out, _ := runArgs(t)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1 2 3 0\n", out)
}

func TestRun_PrintResult(t *testing.T) {
	tests := []struct {
		op   string
		want string
	}{
		{"cross", "1 2 3 0\n-3 6 -3 0\n"},
		{"add", "1 2 3 0\n5 7 9 0\n"},
		{"sub", "1 2 3 0\n-3 -3 -3 0\n"},
		{"hadamard", "1 2 3 0\n4 10 18 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			code, out, _ := runArgs(t, "-print-result", "-op", tt.op)
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRun_InvalidOp(t *testing.T) {
	code, out, errOut := runArgs(t, "-op", "dot")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "invalid op")
}

func TestRun_BadFlag(t *testing.T) {
	code, _, _ := runArgs(t, "-nope")
	assert.Equal(t, 2, code)
}

func TestRun_BadLogLevel(t *testing.T) {
	code, _, _ := runArgs(t, "-log-level", "loud")
	assert.Equal(t, 1, code)
}

func TestRun_RenderLocal(t *testing.T) {
	dir := t.TempDir()
	code, out, _ := runArgs(t, "-out", "grad", "-dir", dir, "-size", "32x4", "-compress", "zstd", "-log-level", "error")
	require.Equal(t, 0, code)
	assert.Equal(t, "1 2 3 0\n", out)

	_, err := os.Stat(filepath.Join(dir, "grad.ppm.zst"))
	require.NoError(t, err)

	img, err := saveppm.New(blobstore.NewLocalStore(dir)).Load(context.Background(), "grad.ppm.zst")
	require.NoError(t, err)
	w, h := img.Bounds()
	assert.Equal(t, 32, w)
	assert.Equal(t, 4, h)
}

func TestRun_RenderErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"size", []string{"-size", "big"}},
		{"zero size", []string{"-size", "0x4"}},
		{"trailing junk", []string{"-size", "32x4zz"}},
		{"format", []string{"-format", "png"}},
		{"compress", []string{"-compress", "gzip"}},
		{"store", []string{"-store", "ftp"}},
		{"s3 bucket", []string{"-store", "s3", "-bucket", ""}},
		{"minio endpoint", []string{"-store", "minio", "-bucket", "b", "-endpoint", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-out", "x", "-dir", dir}, tt.args...)
			code, out, errOut := runArgs(t, args...)
			assert.Equal(t, 1, code)
			assert.Equal(t, "1 2 3 0\n", out, "vector output precedes image work")
			assert.Contains(t, errOut, "render failed")
		})
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("32x4")
	require.NoError(t, err)
	assert.Equal(t, 32, w)
	assert.Equal(t, 4, h)

	for _, bad := range []string{"", "32", "32x", "x4", "32x4zz", "32zzx4", "32x4x2", " 32x4"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestRun_CrossMatchesCrossPromote(t *testing.T) {
	want := hvec.CrossPromote(hvec.MustNew[int](1, 2, 3), hvec.MustNew[float32](4, 5, 6))
	code, out, _ := runArgs(t, "-print-result")
	assert.Equal(t, 0, code)
	assert.Equal(t, "1 2 3 0\n"+want.String()+"\n", out)
}
