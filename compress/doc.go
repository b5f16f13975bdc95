// Package compress provides the page-data codecs used by RSC7 resource containers.
//
// Resources shipped with the game store their system and graphics pages as a single
// raw deflate stream following the 16-byte header. Tools that repack resources
// sometimes store pages uncompressed or with a faster codec, so the container reader
// accepts any Decompressor selected by format.CompressionType:
//
//	codec, err := compress.GetCodec(format.CompressionDeflate)
//	if err != nil {
//	    return err
//	}
//	pages, err := codec.Decompress(payload)
//
// Supported algorithms:
//   - Deflate: raw RFC 1951 stream (klauspost/compress/flate), the RSC7 default
//   - None: stored pages
//   - Zstd: klauspost/compress/zstd, or valyala/gozstd when built with the gozstd tag
//   - S2: klauspost/compress/s2
//   - LZ4: pierrec/lz4 block format
//
// # Thread Safety
//
// All codecs are stateless values; pooled encoders and decoders are managed internally,
// so a single codec may be shared between goroutines.
package compress
