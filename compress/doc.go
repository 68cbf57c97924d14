// Package compress provides the codecs used to read and write compressed
// dictionary files.
//
// Every codec produces the stream format of the matching command-line tool,
// so a dictionary compressed with zstd, s2c or lz4 can be loaded directly:
//   - None: data is passed through unchanged
//   - Zstd: a Zstandard frame (klauspost/compress/zstd)
//   - S2: an S2 stream, which also accepts Snappy streams (klauspost/compress/s2)
//   - LZ4: an LZ4 frame (pierrec/lz4/v4)
//
// The codec for a file is chosen by its extension:
//
//	codec, err := compress.ForPath("strings.txt.zst")
//	if err != nil {
//	    return err
//	}
//	text, err := codec.Decompress(raw)
//
// All codecs are safe for concurrent use.
package compress
