package meta

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/metagraph/errs"
)

// FindRoot returns the only top-level structure that is not a resolution target.
//
// Blocks are scanned in order and values in position order. Zero or several
// candidates is errs.ErrMalformedGraph; no candidate is picked arbitrarily.
func FindRoot(blocks []*Block, refs ReferenceSet) (*Structure, error) {
	var (
		root      *Structure
		rootAt    [2]int
		candidate int
	)

	for bi, b := range blocks {
		for vi, v := range b.Values {
			s, ok := v.(*Structure)
			if !ok || refs.IsReferenced(bi, vi) {
				continue
			}
			candidate++
			if candidate == 1 {
				root, rootAt = s, [2]int{bi, vi}
				continue
			}
			if candidate == 2 {
				Logger().Debug("second root candidate",
					zap.Ints("first", []int{rootAt[0] + 1, rootAt[1]}),
					zap.Ints("second", []int{bi + 1, vi}))
			}
		}
	}

	switch candidate {
	case 0:
		return nil, fmt.Errorf("%w: no unreferenced structure", errs.ErrMalformedGraph)
	case 1:
		return root, nil
	default:
		return nil, fmt.Errorf("%w: %d unreferenced structures, first at block %d element %d",
			errs.ErrMalformedGraph, candidate, rootAt[0]+1, rootAt[1])
	}
}
