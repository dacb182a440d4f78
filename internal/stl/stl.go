// Package stl reads the binary triangle-soup mesh format layerkit's core
// treats as an external collaborator (spec.md §6): an 80-byte header, a
// little-endian uint32 triangle count, then that many 50-byte records
// (three float32 normal components, three float32 vertex triples, a
// trailing uint16 attribute byte count). Normals and the trailing field are
// read and discarded; only the nine vertex floats are kept.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/latticefab/layerkit/internal/mesh"
)

const (
	headerSize = 80
	recordSize = 50
)

// Read parses a binary STL stream into a Mesh.
func Read(r io.Reader) (*mesh.Mesh, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("stl: reading header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl: reading triangle count: %w", err)
	}

	triangles := make([]mesh.Triangle, 0, count)
	record := make([]byte, recordSize)
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, fmt.Errorf("stl: reading triangle %d: %w", i, err)
		}
		triangles = append(triangles, decodeTriangle(record))
	}

	return mesh.New(triangles), nil
}

func decodeTriangle(record []byte) mesh.Triangle {
	// bytes 0-11: normal (discarded); 12-23: v0; 24-35: v1; 36-47: v2;
	// 48-49: attribute byte count (discarded).
	readVec := func(offset int) mesh.Vec3 {
		x := readFloat32(record[offset:])
		y := readFloat32(record[offset+4:])
		z := readFloat32(record[offset+8:])
		return mesh.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
	}
	return mesh.Triangle{
		V0: readVec(12),
		V1: readVec(24),
		V2: readVec(36),
	}
}

func readFloat32(b []byte) float32 {
	bits := binary.LittleEndian.Uint32(b)
	return math.Float32frombits(bits)
}
