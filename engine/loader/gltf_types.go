package loader

// The subset of the glTF 2.0 document model the scene importer needs: the node hierarchy,
// animations, and the accessor/bufferView/buffer chain that holds their data.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html

// gltfDocument is the root object of a glTF file.
type gltfDocument struct {
	// Asset carries the glTF version; required.
	Asset gltfAsset `json:"asset"`

	// Scene is the index of the default scene.
	Scene *int `json:"scene,omitempty"`

	// Scenes are the root node sets.
	Scenes []gltfScene `json:"scenes,omitempty"`

	// Nodes are the scene graph nodes.
	Nodes []gltfNode `json:"nodes,omitempty"`

	// Accessors describe typed views into buffer views.
	Accessors []gltfAccessor `json:"accessors,omitempty"`

	// BufferViews are byte ranges within buffers.
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`

	// Buffers hold raw binary data.
	Buffers []gltfBuffer `json:"buffers,omitempty"`

	// Animations are keyframe animations targeting nodes.
	Animations []gltfAnimation `json:"animations,omitempty"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is a scene graph node. A node carries either a matrix or a TRS triple.
type gltfNode struct {
	Name string `json:"name,omitempty"`

	Children []int `json:"children,omitempty"`

	// Matrix is a column-major local transform. Mutually exclusive with TRS.
	Matrix *[16]float64 `json:"matrix,omitempty"`

	Translation *[3]float64 `json:"translation,omitempty"`

	// Rotation is a unit quaternion (x, y, z, w).
	Rotation *[4]float64 `json:"rotation,omitempty"`

	Scale *[3]float64 `json:"scale,omitempty"`
}

type gltfAccessor struct {
	BufferView    *int   `json:"bufferView,omitempty"`
	ByteOffset    int    `json:"byteOffset,omitempty"`
	ComponentType int    `json:"componentType"`
	Normalized    bool   `json:"normalized,omitempty"`
	Count         int    `json:"count"`
	Type          string `json:"type"`

	Sparse *struct {
		Count int `json:"count"`
	} `json:"sparse,omitempty"`
}

// Component types (WebGL enums).
const (
	gltfComponentTypeByte          = 5120
	gltfComponentTypeUnsignedByte  = 5121
	gltfComponentTypeShort         = 5122
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeUnsignedInt   = 5125
	gltfComponentTypeFloat         = 5126
)

// Accessor element types.
const (
	gltfAccessorTypeScalar = "SCALAR"
	gltfAccessorTypeVec2   = "VEC2"
	gltfAccessorTypeVec3   = "VEC3"
	gltfAccessorTypeVec4   = "VEC4"
	gltfAccessorTypeMat2   = "MAT2"
	gltfAccessorTypeMat3   = "MAT3"
	gltfAccessorTypeMat4   = "MAT4"
)

type gltfBufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
}

type gltfBuffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`

	// Data is filled by the parser after resolving URI or the GLB binary chunk.
	Data []byte `json:"-"`
}

type gltfAnimation struct {
	Name     string                 `json:"name,omitempty"`
	Channels []gltfAnimationChannel `json:"channels"`
	Samplers []gltfAnimationSampler `json:"samplers"`
}

type gltfAnimationChannel struct {
	Sampler int                        `json:"sampler"`
	Target  gltfAnimationChannelTarget `json:"target"`
}

type gltfAnimationChannelTarget struct {
	// Node is the animated node; absent for extension-defined targets.
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
}

type gltfAnimationSampler struct {
	// Input is the accessor holding key times in seconds.
	Input int `json:"input"`

	// Interpolation is LINEAR (default), STEP or CUBICSPLINE.
	Interpolation string `json:"interpolation,omitempty"`

	// Output is the accessor holding key values.
	Output int `json:"output"`
}

// Animation target paths.
const (
	gltfAnimPathTranslation = "translation"
	gltfAnimPathRotation    = "rotation"
	gltfAnimPathScale       = "scale"
	gltfAnimPathWeights     = "weights"
)

// Sampler interpolation modes.
const (
	gltfInterpolationLinear      = "LINEAR"
	gltfInterpolationStep        = "STEP"
	gltfInterpolationCubicSpline = "CUBICSPLINE"
)

// GLB container constants.
const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0"
)
