// Package metagraph decodes RSC7 "meta" resources into linked object graphs.
//
// A meta resource stores a typed, pointer-linked object graph inside the system pages
// of an RSC7 container. Decoding runs in four stages:
//
//  1. The container is parsed and its pages decompressed (package resource).
//  2. The meta header, structure and enum metadata, and raw data blocks are read
//     from the system pages (package section).
//  3. Every block is decoded into values, pointers are resolved to direct handles,
//     and the single unreferenced structure is located as the root (package meta).
//  4. The root, or a Document carrying it with the resource metadata, is returned.
//
// # Basic Usage
//
//	root, err := metagraph.DecodeFile("peds.ymt")
//	if err != nil {
//	    return err
//	}
//	s := root.(*meta.Structure)
//	for key, v := range s.Fields() {
//	    fmt.Printf("0x%08X: %s\n", key, v.Kind())
//	}
//
// Resources repacked with another codec are decoded with WithCompression:
//
//	doc, err := metagraph.DecodeDocument(data, metagraph.WithCompression(format.CompressionZstd))
//
// # Errors
//
// Every failure aborts the whole call and wraps one of the sentinels of package errs:
// ErrIOFailure when the resource cannot be opened, read or unpacked, ErrUnknownType,
// ErrCorruptBlock, ErrCorruptReference and ErrMalformedGraph for the decode stages.
package metagraph

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arloliu/metagraph/compress"
	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/internal/hash"
	"github.com/arloliu/metagraph/internal/options"
	"github.com/arloliu/metagraph/meta"
	"github.com/arloliu/metagraph/resource"
	"github.com/arloliu/metagraph/section"
)

type config struct {
	compression format.CompressionType
	workers     int
	logger      *zap.Logger
}

// Option configures a decode call.
type Option = options.Option[*config]

// WithCompression sets the codec of the container pages. The default is
// format.CompressionDeflate, the codec of game resources.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithWorkers decodes up to n data blocks in parallel. The default is 1.
func WithWorkers(n int) Option {
	return options.New(func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidWorkers, n)
		}
		cfg.workers = n

		return nil
	})
}

// WithLogger sets the logger receiving the per-call summary. Decoder internals log
// through meta.SetLogger. A nil logger disables the summary.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(cfg *config) {
		if l == nil {
			l = zap.NewNop()
		}
		cfg.logger = l
	})
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		compression: format.CompressionDeflate,
		workers:     1,
		logger:      meta.Logger(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Document is a decoded meta resource.
type Document struct {
	// Root is the root structure of the graph.
	Root *meta.Structure
	// Name is the resource name stored in the meta header, often empty.
	Name string
	// Version is the container version.
	Version uint32
	// RootBlockIndex is the 1-based root block index recorded by the writer. The
	// root is located from the graph itself; this value is informational.
	RootBlockIndex int
	// Enums are the enum types described by the resource.
	Enums []section.EnumInfo
	// Graph holds every decoded block.
	Graph *meta.Graph
	// Fingerprint is the xxHash64 of the decompressed system pages.
	Fingerprint uint64
}

// Enum returns the enum type whose name hash is key. Enum and flags fields carry
// this key as their EnumKey.
func (d *Document) Enum(key uint32) (*section.EnumInfo, bool) {
	for i := range d.Enums {
		if d.Enums[i].Key == key {
			return &d.Enums[i], true
		}
	}

	return nil, false
}

// EnumName returns the name hash of the enum value held by s.
//
// It reports false when s is not an enum, its enum type is unknown, or no entry has
// its value.
func (d *Document) EnumName(s *meta.Scalar) (uint32, bool) {
	if s.Kind() != meta.KindEnum {
		return 0, false
	}
	e, ok := d.Enum(s.EnumKey())
	if !ok {
		return 0, false
	}
	for _, entry := range e.Entries {
		if int64(entry.Value) == s.Int() {
			return entry.NameHash, true
		}
	}

	return 0, false
}

// Decode decodes a container and returns the root of its graph.
//
// The returned value is a *meta.Structure.
func Decode(data []byte, opts ...Option) (meta.Value, error) {
	return DecodeContext(context.Background(), data, opts...)
}

// DecodeContext is Decode with cancellation checked before decoding and before
// pointer resolution.
func DecodeContext(ctx context.Context, data []byte, opts ...Option) (meta.Value, error) {
	doc, err := DecodeDocumentContext(ctx, data, opts...)
	if err != nil {
		return nil, err
	}

	return doc.Root, nil
}

// DecodeFile reads the named resource and decodes it.
//
// Failing to read the file is an errs.ErrIOFailure wrapping the OS error.
func DecodeFile(path string, opts ...Option) (meta.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	return Decode(data, opts...)
}

// DecodeDocument decodes a container and returns the root with the resource metadata.
func DecodeDocument(data []byte, opts ...Option) (*Document, error) {
	return DecodeDocumentContext(context.Background(), data, opts...)
}

// DecodeDocumentContext is DecodeDocument with cancellation.
func DecodeDocumentContext(ctx context.Context, data []byte, opts ...Option) (*Document, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	f, err := resource.Load(data, codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}
	m, err := section.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	session, err := meta.NewSession(m.Structures, meta.WithWorkers(cfg.workers))
	if err != nil {
		return nil, err
	}
	graph, err := session.Decode(ctx, m.Blocks)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Root:           graph.Root,
		Name:           m.Name,
		Version:        f.Header.Version,
		RootBlockIndex: int(m.Header.RootBlockIndex),
		Enums:          m.Enums,
		Graph:          graph,
		Fingerprint:    hash.Fingerprint(f.System),
	}

	cfg.logger.Debug("decoded meta resource",
		zap.String("name", doc.Name),
		zap.Int("blocks", len(graph.Blocks)),
		zap.Int("structures", len(m.Structures)),
		zap.Int("duplicate_structures", len(graph.DuplicateStructures)),
		zap.Uint64("fingerprint", doc.Fingerprint))

	return doc, nil
}
