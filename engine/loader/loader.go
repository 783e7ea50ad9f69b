package loader

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// Format identifies the encoding of a scene file.
type Format int

const (
	// FormatGLTF is glTF 2.0 JSON (.gltf).
	FormatGLTF Format = iota
	// FormatGLB is binary glTF 2.0 (.glb).
	FormatGLB
	// FormatYAML is the YAML scene description (.yaml, .yml).
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatGLTF:
		return "gltf"
	case FormatGLB:
		return "glb"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath selects a Format from a file extension.
//
// Parameters:
//   - path: the scene file path
//
// Returns:
//   - Format: the detected format
//   - error: error if the extension is not supported
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf":
		return FormatGLTF, nil
	case ".glb":
		return FormatGLB, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported scene format: %s", ext)
	}
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fps           float64
	animationName string
	logger        *slog.Logger

	sceneCache map[string]scene.Scene

	gltf gltfLoaderBackend
	yaml yamlLoaderBackend
}

// Loader defines the public-facing interface for loading and caching scenes.
// It abstracts the file format (glTF, GLB, YAML) behind a backend chosen by extension and
// manages a cache of previously loaded scenes.
type Loader interface {
	// Load imports a scene file and caches the result.
	// If the scene is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the scene file
	//
	// Returns:
	//   - scene.Scene: the loaded and cached scene
	//   - error: error if loading fails
	Load(path string) (scene.Scene, error)

	// LoadReader imports a scene from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and fallback scene name
	//   - r: the reader providing scene data
	//   - format: the encoding of the stream
	//
	// Returns:
	//   - scene.Scene: the loaded scene
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, format Format) (scene.Scene, error)

	// Get retrieves a cached scene by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - scene.Scene: the cached scene or nil
	Get(name string) scene.Scene

	// Scenes returns a copy of the scene cache.
	//
	// Returns:
	//   - map[string]scene.Scene: all cached scenes keyed by name
	Scenes() map[string]scene.Scene

	// Evict removes a scene from the cache so the next Load reads the file again.
	//
	// Parameters:
	//   - name: the cache key to remove
	Evict(name string)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with options applied.
// Defaults: 24 fps for glTF key time conversion and YAML files without an fps, first glTF animation.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		fps:        scene.DefaultFPS,
		sceneCache: make(map[string]scene.Scene),
	}

	for _, option := range options {
		option(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}
	l.gltf = newGLTFLoaderBackend(newGLTFImporter(l.fps, l.animationName, l.logger))
	l.yaml = newYAMLLoaderBackend(l.fps, l.logger)
	return l
}

func (l *loader) Load(path string) (scene.Scene, error) {
	l.mu.RLock()
	if cached, ok := l.sceneCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	scn, err := l.resolveBackend(format).Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.mu.Lock()
	l.sceneCache[path] = scn
	l.mu.Unlock()

	l.logger.Info("scene loaded", "path", path, "format", format.String(), "scene", scn.Name(), "objects", scn.Count())
	return scn, nil
}

func (l *loader) LoadReader(name string, r io.Reader, format Format) (scene.Scene, error) {
	l.mu.RLock()
	if cached, ok := l.sceneCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	scn, err := l.resolveBackend(format).LoadReader(name, r, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.sceneCache[name] = scn
	l.mu.Unlock()

	return scn, nil
}

func (l *loader) Get(name string) scene.Scene {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sceneCache[name]
}

func (l *loader) Scenes() map[string]scene.Scene {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]scene.Scene, len(l.sceneCache))
	for k, v := range l.sceneCache {
		result[k] = v
	}
	return result
}

func (l *loader) Evict(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sceneCache, name)
}

// resolveBackend selects the loader backend for a format.
func (l *loader) resolveBackend(format Format) loaderBackend {
	if format == FormatYAML {
		return l.yaml
	}
	return l.gltf
}

// sceneNameFromPath derives a scene name from a file path: the base name without extension.
func sceneNameFromPath(path string) string {
	if path == "" {
		return "scene"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
