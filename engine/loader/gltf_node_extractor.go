package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-mcanim/common"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-mcanim/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// gltfNodeExtractorImpl is the implementation of the gltfNodeExtractor interface.
type gltfNodeExtractorImpl struct {
	parser gltfParser
}

// gltfNodeExtractor converts the glTF node hierarchy into GameObjects.
// Every node becomes one object carrying its name, parent link and rest transform.
type gltfNodeExtractor interface {
	// ExtractNodes builds one GameObject per node.
	//
	// Returns:
	//   - []game_object.GameObject: objects indexed by glTF node index
	//   - []int: node indices in topological order (parents before children)
	//   - error: error if the hierarchy is malformed
	ExtractNodes() ([]game_object.GameObject, []int, error)
}

var _ gltfNodeExtractor = &gltfNodeExtractorImpl{}

// newGLTFNodeExtractor creates a new node extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfNodeExtractor: the node extractor
func newGLTFNodeExtractor(parser gltfParser) gltfNodeExtractor {
	return &gltfNodeExtractorImpl{parser: parser}
}

func (e *gltfNodeExtractorImpl) ExtractNodes() ([]game_object.GameObject, []int, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, nil, fmt.Errorf("no document loaded")
	}

	// parent[i] is the index of node i's parent, or -1 for roots
	parent := make([]int, len(doc.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for nodeIdx, node := range doc.Nodes {
		for _, childIdx := range node.Children {
			if childIdx < 0 || childIdx >= len(doc.Nodes) {
				return nil, nil, fmt.Errorf("node %d: invalid child index %d", nodeIdx, childIdx)
			}
			if parent[childIdx] >= 0 {
				return nil, nil, fmt.Errorf("node %d has more than one parent", childIdx)
			}
			parent[childIdx] = nodeIdx
		}
	}

	order := gltfTopologicalOrder(doc.Nodes, parent)
	if len(order) < len(doc.Nodes) {
		return nil, nil, fmt.Errorf("node hierarchy contains a cycle")
	}

	objects := make([]game_object.GameObject, len(doc.Nodes))
	for _, nodeIdx := range order {
		node := &doc.Nodes[nodeIdx]
		rest := gltfExtractNodeTransform(node)

		name := node.Name
		if name == "" {
			name = fmt.Sprintf("node_%d", nodeIdx)
		}

		options := []game_object.GameObjectBuilderOption{
			game_object.WithName(name),
			game_object.WithPosition(rest.Translation[0], rest.Translation[1], rest.Translation[2]),
			game_object.WithRotation(rest.Rotation[0], rest.Rotation[1], rest.Rotation[2]),
			game_object.WithScale(rest.Scale[0], rest.Scale[1], rest.Scale[2]),
		}
		if p := parent[nodeIdx]; p >= 0 {
			options = append(options, game_object.WithParent(objects[p]))
		}
		objects[nodeIdx] = game_object.NewGameObject(options...)
	}

	return objects, order, nil
}

// --- Helper Functions ---

// gltfTopologicalOrder returns node indices breadth-first from the roots, so parents always
// come before children. Nodes unreachable from any root (only possible with a cycle) are omitted.
func gltfTopologicalOrder(nodes []gltfNode, parent []int) []int {
	order := make([]int, 0, len(nodes))
	queue := make([]int, 0, len(nodes))
	for i := range nodes {
		if parent[i] < 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		order = append(order, idx)
		queue = append(queue, nodes[idx].Children...)
	}

	return order
}

// gltfExtractNodeTransform extracts the rest transform of a glTF node, with rotation in Euler degrees.
func gltfExtractNodeTransform(node *gltfNode) model.Transform {
	if node.Matrix != nil {
		t, r, s := common.DecomposeMatrix(mgl64.Mat4(*node.Matrix))
		return model.Transform{Translation: t, Rotation: r, Scale: s}
	}

	transform := model.IdentityTransform()
	if node.Translation != nil {
		transform.Translation = *node.Translation
	}
	if node.Rotation != nil {
		transform.Rotation = common.QuatToEuler(*node.Rotation)
	}
	if node.Scale != nil {
		transform.Scale = *node.Scale
	}

	return transform
}
