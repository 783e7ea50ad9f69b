package loader

import (
	"bytes"
	"fmt"

	"github.com/Carmen-Shannon/oxy-mcanim/engine/scene"
	"gopkg.in/yaml.v3"
)

// EncodeYAML writes a scene in the YAML scene description format, so a scene imported from
// glTF can be inspected or hand-edited and loaded back.
//
// Parameters:
//   - scn: the scene to encode
//
// Returns:
//   - []byte: the YAML document
//   - error: error if encoding fails
func EncodeYAML(scn scene.Scene) ([]byte, error) {
	doc := yamlScene{
		Name:         scn.Name(),
		FPS:          scn.FPS(),
		FrameCurrent: scn.CurrentFrame(),
	}

	for _, obj := range scn.Objects() {
		rest := obj.Rest()
		desc := yamlObject{
			Name:        obj.Name(),
			Translation: &rest.Translation,
			Rotation:    &rest.Rotation,
			Scale:       &rest.Scale,
		}
		if p := obj.Parent(); p != nil {
			desc.Parent = p.Name()
		}

		for _, ch := range obj.Channels() {
			yc := yamlChannel{
				Path:          string(ch.Path),
				Interpolation: string(ch.Interpolation),
				Keys:          make([]yamlKey, len(ch.Keys)),
			}
			for i, k := range ch.Keys {
				yc.Keys[i] = yamlKey{Frame: k.Frame, Value: k.Value}
			}
			desc.Channels = append(desc.Channels, yc)
		}

		doc.Objects = append(doc.Objects, desc)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML scene: %w", err)
	}
	return buf.Bytes(), nil
}
