package loader

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	fps           float64
	animationName string
	logger        *slog.Logger
}

// gltfImporter defines the interface for orchestrating a full glTF/GLB import.
// It combines the parser and the extractors to produce a populated Scene.
type gltfImporter interface {
	// Import loads a glTF/GLB file and builds a Scene from its nodes and one animation.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - scene.Scene: the imported scene
	//   - error: error if import fails
	Import(path string) (scene.Scene, error)

	// ImportReader loads a glTF document from a reader.
	//
	// Parameters:
	//   - name: the scene name used when the document does not name its scene
	//   - r: the reader providing glTF/GLB data
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//
	// Returns:
	//   - scene.Scene: the imported scene
	//   - error: error if import fails
	ImportReader(name string, r io.Reader, isGLB bool) (scene.Scene, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Parameters:
//   - fps: frames per second used to convert key times to frames
//   - animationName: the animation to import, or "" for the first one
//   - logger: the structured logger
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter(fps float64, animationName string, logger *slog.Logger) gltfImporter {
	return &gltfImporterImpl{fps: fps, animationName: animationName, logger: logger}
}

func (imp *gltfImporterImpl) Import(path string) (scene.Scene, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader, isGLB bool) (scene.Scene, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(parser, name)
}

// importFromParser performs a full import from a parser that has already loaded a document.
//
// Parameters:
//   - parser: the glTF parser that has already loaded a document
//   - fallbackName: file path or name used when the document does not name its scene
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackName string) (scene.Scene, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	objects, order, err := newGLTFNodeExtractor(parser).ExtractNodes()
	if err != nil {
		return nil, fmt.Errorf("node extraction failed: %w", err)
	}

	animations := newGLTFAnimationExtractor(parser)
	animIndex, err := animations.FindAnimation(imp.animationName)
	if err != nil {
		return nil, fmt.Errorf("animation extraction failed: %w", err)
	}

	animName := ""
	if animIndex >= 0 {
		animName, err = animations.ExtractAnimation(animIndex, objects, imp.fps)
		if err != nil {
			return nil, fmt.Errorf("animation extraction failed: %w", err)
		}
	}

	scn := scene.NewScene(gltfExtractSceneName(doc, fallbackName), scene.WithFPS(imp.fps))
	for _, nodeIdx := range order {
		scn.Add(objects[nodeIdx])
	}

	imp.logger.Debug("imported glTF scene",
		"scene", scn.Name(),
		"objects", scn.Count(),
		"animation", animName,
		"animations_available", len(doc.Animations),
		"fps", imp.fps,
	)

	return scn, nil
}

// gltfExtractSceneName returns the name of the document's default scene, falling back to the file base name.
func gltfExtractSceneName(doc *gltfDocument, fallback string) string {
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx >= 0 && sceneIdx < len(doc.Scenes) && doc.Scenes[sceneIdx].Name != "" {
		return doc.Scenes[sceneIdx].Name
	}

	return sceneNameFromPath(fallback)
}
