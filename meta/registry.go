package meta

import (
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/arloliu/metagraph/errs"
	"github.com/arloliu/metagraph/format"
	"github.com/arloliu/metagraph/internal/collision"
)

// builtinCodecs are the element decoders for the built-in block kinds.
var builtinCodecs = map[format.TypeKey]Codec{
	format.TypeGeneric: genericCodec{},
	format.TypeInt8:    scalarCodec{kind: KindInt8, size: 1},
	format.TypeUint8:   scalarCodec{kind: KindUint8, size: 1},
	format.TypeUint16:  scalarCodec{kind: KindUint16, size: 2},
	format.TypeUint32:  scalarCodec{kind: KindUint32, size: 4},
	format.TypeFloat:   scalarCodec{kind: KindFloat, size: 4},
	format.TypeVector4: scalarCodec{kind: KindVector4, size: 16},
	format.TypeHash:    scalarCodec{kind: KindHash, size: 4},
}

// Registry maps type keys to element codecs and sizes.
//
// It is seeded with the built-in kinds and one structure codec per structure info.
// When several infos share a key the first one wins. A Registry is read-only once
// decoding starts and may then be shared between goroutines.
type Registry struct {
	codecs     map[format.TypeKey]Codec
	structures map[uint32]*StructureInfo
	duplicates map[uint32]int
}

// NewRegistry creates a registry for the given structure metadata.
func NewRegistry(infos []StructureInfo) *Registry {
	r := &Registry{
		codecs:     make(map[format.TypeKey]Codec, len(builtinCodecs)+len(infos)),
		structures: make(map[uint32]*StructureInfo, len(infos)),
	}
	for key, codec := range builtinCodecs {
		r.codecs[key] = codec
	}

	tracker := collision.NewTracker(len(infos))
	for i := range infos {
		info := &infos[i]
		if first, dup := tracker.Track(info.Key, i); dup {
			Logger().Warn("duplicate structure info ignored",
				zap.Uint32("key", info.Key),
				zap.Int("first", first),
				zap.Int("index", i))

			continue
		}

		r.structures[info.Key] = info
		key := format.TypeKey(info.Key)
		if key.IsBuiltin() {
			// built-in kinds are never described by structure metadata
			continue
		}
		r.codecs[key] = &structureCodec{info: info, reg: r}
	}
	r.duplicates = tracker.Duplicates()

	return r
}

// Duplicates returns how many ignored declarations each repeated structure key had.
// It is empty when every key was declared once.
func (r *Registry) Duplicates() map[uint32]int {
	return maps.Clone(r.duplicates)
}

// Register installs a codec for key, replacing any existing one.
// It must not be called once decoding has started.
func (r *Registry) Register(key format.TypeKey, codec Codec) {
	r.codecs[key] = codec
}

// CodecFor returns the element codec for key.
func (r *Registry) CodecFor(key format.TypeKey) (Codec, error) {
	codec, ok := r.codecs[key]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%08X", errs.ErrUnknownType, uint32(key))
	}

	return codec, nil
}

// SizeOf returns the byte size of one element of type key.
func (r *Registry) SizeOf(key format.TypeKey) (int, error) {
	codec, err := r.CodecFor(key)
	if err != nil {
		return 0, err
	}

	return codec.Size(), nil
}

// Structure returns the layout registered for a structure key.
func (r *Registry) Structure(key uint32) (*StructureInfo, bool) {
	info, ok := r.structures[key]
	return info, ok
}
