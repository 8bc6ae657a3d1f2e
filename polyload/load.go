package polyload

import (
	"errors"
	"fmt"

	"github.com/royalcat/polyquad/quadtree"
)

// Load adds features to tree in order and returns how many were indexed.
// With WithSkipInvalid, polygons the tree rejects for their shape, their
// position or a duplicate id are logged and skipped; running out of nodes
// always stops the load.
func Load(tree *quadtree.Tree, features []Feature, opts ...Option) (int, error) {
	o := loadOptions(opts...)

	added := 0
	for _, f := range features {
		err := tree.Add(f.ID, f.Vertices)
		o.progress()
		if err == nil {
			added++
			continue
		}
		if o.skipInvalid && skippable(err) {
			o.logger.Warn("skipped polygon", "id", f.ID, "error", err)
			continue
		}
		return added, fmt.Errorf("loading polygons: %w", err)
	}
	return added, nil
}

func skippable(err error) bool {
	return errors.Is(err, quadtree.ErrInvalidPolygon) ||
		errors.Is(err, quadtree.ErrOutOfBounds) ||
		errors.Is(err, quadtree.ErrDuplicateID)
}
