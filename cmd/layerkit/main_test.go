package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFloat32(buf *bytes.Buffer, v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	buf.Write(b[:])
}

func writeTetrahedronSTL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(4))

	tris := [][3][3]float32{
		{{0, 0, 0}, {10, 0, 0}, {0, 10, 0}},
		{{0, 0, 0}, {0, 0, 10}, {10, 0, 0}},
		{{0, 0, 0}, {0, 10, 0}, {0, 0, 10}},
		{{10, 0, 0}, {0, 0, 10}, {0, 10, 0}},
	}
	for _, tri := range tris {
		writeFloat32(&buf, 0)
		writeFloat32(&buf, 0)
		writeFloat32(&buf, 0)
		for _, v := range tri {
			writeFloat32(&buf, v[0])
			writeFloat32(&buf, v[1])
			writeFloat32(&buf, v[2])
		}
		buf.Write([]byte{0, 0})
	}

	path := filepath.Join(t.TempDir(), "tetra.stl")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestRunRequiresInputFlag(t *testing.T) {
	code := run([]string{})
	require.Equal(t, exitUsageOrIO, code)
}

func TestRunReturnsUsageErrorForMissingMesh(t *testing.T) {
	code := run([]string{"--input", "/nonexistent/does-not-exist.stl"})
	require.Equal(t, exitUsageOrIO, code)
}

func TestRunSlicesTetrahedronAndWritesGCode(t *testing.T) {
	meshPath := writeTetrahedronSTL(t)
	outPath := filepath.Join(t.TempDir(), "out.gcode")

	code := run([]string{"--input", meshPath, "--output", outPath})
	require.Equal(t, exitOK, code)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
