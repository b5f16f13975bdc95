package meta

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/internal/options"
)

// Graph is a decoded and linked meta object graph.
type Graph struct {
	// Blocks are the decoded blocks in resource order; they own every value.
	Blocks []*Block
	// Root is the only structure no pointer refers to.
	Root *Structure
	// Referenced is the number of distinct top-level values targeted by a pointer.
	Referenced int
	// DuplicateStructures counts the ignored repeat declarations per structure key.
	DuplicateStructures map[uint32]int
}

// Session decodes sets of raw blocks against one set of structure metadata.
//
// All per-call state lives inside Decode, so a Session may be used by several
// goroutines at once as long as its registry is not modified.
type Session struct {
	reg     *Registry
	workers int
}

// SessionOption configures a Session.
type SessionOption = options.Option[*Session]

// WithWorkers decodes up to n blocks in parallel. The default of 1 decodes blocks
// sequentially. Resolution is always single-threaded.
func WithWorkers(n int) SessionOption {
	return options.New(func(s *Session) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidWorkers, n)
		}
		s.workers = n

		return nil
	})
}

// WithRegistry replaces the registry built from the structure metadata, for callers
// that register custom codecs.
func WithRegistry(reg *Registry) SessionOption {
	return options.NoError(func(s *Session) {
		s.reg = reg
	})
}

// NewSession creates a session for the given structure metadata.
func NewSession(infos []StructureInfo, opts ...SessionOption) (*Session, error) {
	s := &Session{workers: 1}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}
	if s.reg == nil {
		s.reg = NewRegistry(infos)
	}

	return s, nil
}

// Registry returns the registry used by the session.
func (s *Session) Registry() *Registry {
	return s.reg
}

// Decode decodes raws, resolves every pointer and locates the root.
//
// Cancellation is checked before decoding starts and before resolution; once
// resolution starts it runs to completion. Any failure aborts the whole call and
// no partial graph is returned.
func (s *Session) Decode(ctx context.Context, raws []RawBlock) (*Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blocks, err := s.decodeBlocks(ctx, raws)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := NewResolver(blocks)
	defer r.Release()

	if err := r.Resolve(); err != nil {
		return nil, err
	}

	root, err := FindRoot(blocks, r)
	if err != nil {
		return nil, err
	}

	Logger().Debug("resolved meta graph",
		zap.Int("blocks", len(blocks)),
		zap.Int("values", r.Total()),
		zap.Int("referenced", r.ReferencedCount()),
		zap.Uint32("root", root.Key()))

	return &Graph{
		Blocks:              blocks,
		Root:                root,
		Referenced:          r.ReferencedCount(),
		DuplicateStructures: s.reg.Duplicates(),
	}, nil
}

func (s *Session) decodeBlocks(ctx context.Context, raws []RawBlock) ([]*Block, error) {
	blocks := make([]*Block, len(raws))

	if s.workers <= 1 || len(raws) < 2 {
		for i, raw := range raws {
			b, err := DecodeBlock(s.reg, raw)
			if err != nil {
				return nil, fmt.Errorf("block %d: %w", i+1, err)
			}
			blocks[i] = b
		}

		return blocks, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := DecodeBlock(s.reg, raw)
			if err != nil {
				return fmt.Errorf("block %d: %w", i+1, err)
			}
			blocks[i] = b

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return blocks, nil
}
