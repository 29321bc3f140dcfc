package wgpu_renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
)

// GPUMeshUniformSource is the WGSL definition of the MeshUniform struct.
// Matches GPUMeshUniform layout exactly (80 bytes).
const GPUMeshUniformSource = `struct MeshUniform {
    model: mat4x4<f32>,
    color: vec4<f32>,
};
`

// GPUMeshUniform is the GPU-aligned per-mesh uniform: model matrix and material colour.
// Size: 80 bytes (WGSL aligned).
type GPUMeshUniform struct {
	Model [16]float32 // offset  0: model matrix (mat4x4<f32>)
	Color [4]float32  // offset 64: material colour, alpha 1 (vec4<f32>)
}

// Size returns the size of the GPUMeshUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUMeshUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMeshUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUMeshUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}

// wireframeShaderSource draws line lists with per-vertex colour tinted by the mesh colour.
const wireframeShaderSource = camera.GPUCameraUniformSource + GPUMeshUniformSource + `
@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> mesh: MeshUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = camera.view_proj * mesh.model * vec4<f32>(in.position, 1.0);
    out.color = in.color * mesh.color.rgb;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(in.color, 1.0);
}
`
