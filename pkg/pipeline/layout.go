package pipeline

import (
	"github.com/matzehuels/spanviz/pkg/render/scene"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// GenerateScene positions the tree and flattens it to viewport-scaled
// geometry. This is the serializable intermediate between building and
// rendering: `layout` writes it to disk, `visualize` renders from it,
// and the Runner caches it.
//
// The scene is a pure function of the tree and the viewport, so the
// same trace always yields byte-identical scene JSON.
func GenerateScene(root *tree.Node, opts Options) scene.Scene {
	opts.SetSceneDefaults()
	return scene.FromTree(root, opts.Width, opts.Height)
}
