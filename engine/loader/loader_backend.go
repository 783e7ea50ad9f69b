package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// loaderBackend defines the generic interface for loading scenes from files or streams.
// Concrete implementations (gltfLoaderBackendImpl, yamlLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Load performs a full scene import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - scene.Scene: the imported scene
	//   - error: error if loading fails
	Load(path string) (scene.Scene, error)

	// LoadReader imports a scene from a reader stream.
	//
	// Parameters:
	//   - name: the fallback scene name
	//   - r: the reader providing scene data
	//   - format: the encoding of the stream
	//
	// Returns:
	//   - scene.Scene: the imported scene
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, format Format) (scene.Scene, error)
}
