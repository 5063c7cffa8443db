package model

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the vertex buffer layout of the lit and shadow pipelines.
// Size: 32 bytes, no padding required.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// VertexStride is the byte stride between consecutive vertices in a vertex buffer.
const VertexStride = 32

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// MarshalInto writes the vertex into buf, which must hold at least 32 bytes.
//
// Parameters:
//   - buf: destination slice
func (g *GPUVertex) MarshalInto(buf []byte) {
	vals := [8]float32{
		g.Position[0], g.Position[1], g.Position[2],
		g.Normal[0], g.Normal[1], g.Normal[2],
		g.TexCoord[0], g.TexCoord[1],
	}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	g.MarshalInto(buf)
	return buf
}

// MarshalVertices packs vertices contiguously for a vertex buffer upload.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * 32 bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i := range vertices {
		vertices[i].MarshalInto(buf[i*VertexStride:])
	}
	return buf
}

// MarshalIndices packs 32-bit indices for an index buffer upload.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
