package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
	"gopkg.in/yaml.v3"
)

// yamlLoaderBackendImpl is the implementation of yamlLoaderBackend.
type yamlLoaderBackendImpl struct {
	fps    float64
	logger *slog.Logger
}

// yamlLoaderBackend is a loaderBackend implementation for YAML scene descriptions.
// Parents are referenced by name and may be declared after their children.
type yamlLoaderBackend interface {
	loaderBackend
}

var _ yamlLoaderBackend = &yamlLoaderBackendImpl{}

// newYAMLLoaderBackend creates a new YAML loader backend.
//
// Parameters:
//   - fps: the frame rate used when the file does not declare one
//   - logger: the structured logger
//
// Returns:
//   - yamlLoaderBackend: the loader backend for YAML scenes
func newYAMLLoaderBackend(fps float64, logger *slog.Logger) yamlLoaderBackend {
	return &yamlLoaderBackendImpl{fps: fps, logger: logger}
}

func (b *yamlLoaderBackendImpl) Load(path string) (scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	return b.LoadReader(sceneNameFromPath(path), f, FormatYAML)
}

func (b *yamlLoaderBackendImpl) LoadReader(name string, r io.Reader, _ Format) (scene.Scene, error) {
	var doc yamlScene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty scene document")
		}
		return nil, fmt.Errorf("failed to parse YAML scene: %w", err)
	}

	if doc.Name == "" {
		doc.Name = name
	}
	if doc.FPS <= 0 {
		doc.FPS = b.fps
	}

	objects, err := buildYAMLObjects(doc.Objects)
	if err != nil {
		return nil, err
	}

	scn := scene.NewScene(doc.Name,
		scene.WithFPS(doc.FPS),
		scene.WithCurrentFrame(doc.FrameCurrent),
		scene.WithObjects(objects...),
	)

	b.logger.Debug("imported YAML scene", "scene", scn.Name(), "objects", scn.Count(), "fps", scn.FPS())
	return scn, nil
}

// buildYAMLObjects converts object descriptions into GameObjects and links parents by name.
func buildYAMLObjects(descs []yamlObject) ([]game_object.GameObject, error) {
	objects := make([]game_object.GameObject, len(descs))
	byName := make(map[string]game_object.GameObject, len(descs))

	for i, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("object %d: name is required", i)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("object %d: duplicate name %q", i, d.Name)
		}

		options := []game_object.GameObjectBuilderOption{game_object.WithName(d.Name)}
		if d.Translation != nil {
			options = append(options, game_object.WithPosition(d.Translation[0], d.Translation[1], d.Translation[2]))
		}
		if d.Rotation != nil {
			options = append(options, game_object.WithRotation(d.Rotation[0], d.Rotation[1], d.Rotation[2]))
		}
		if d.Scale != nil {
			options = append(options, game_object.WithScale(d.Scale[0], d.Scale[1], d.Scale[2]))
		}

		for _, c := range d.Channels {
			ch, err := buildYAMLChannel(c)
			if err != nil {
				return nil, fmt.Errorf("object %q: %w", d.Name, err)
			}
			options = append(options, game_object.WithChannel(ch))
		}

		objects[i] = game_object.NewGameObject(options...)
		byName[d.Name] = objects[i]
	}

	for i, d := range descs {
		if d.Parent == "" {
			continue
		}
		parent, ok := byName[d.Parent]
		if !ok {
			return nil, fmt.Errorf("object %q: unknown parent %q", d.Name, d.Parent)
		}
		objects[i].SetParent(parent)
	}

	for _, obj := range objects {
		seen := map[game_object.GameObject]bool{}
		for p := obj; p != nil; p = p.Parent() {
			if seen[p] {
				return nil, fmt.Errorf("object %q: parent chain contains a cycle", obj.Name())
			}
			seen[p] = true
		}
	}

	return objects, nil
}

func buildYAMLChannel(c yamlChannel) (*model.Channel, error) {
	path, err := model.ParseChannelPath(c.Path)
	if err != nil {
		return nil, err
	}
	interpolation, err := model.ParseInterpolation(c.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", path, err)
	}

	ch := model.NewChannel(path, interpolation)
	for _, k := range c.Keys {
		if k.Frame < 0 {
			return nil, fmt.Errorf("channel %s: negative key frame %d", path, k.Frame)
		}
		ch.AddKey(k.Frame, k.Value)
	}
	return ch, nil
}
