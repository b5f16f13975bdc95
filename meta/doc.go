// Package meta decodes the data blocks of a meta resource into a linked object graph.
//
// A meta resource stores an object graph as a list of homogeneous data blocks. Each
// block carries a type key: either a built-in element kind (bytes, integers, floats,
// vectors, name hashes, generic pointers) or the name hash of a structure described
// by the resource's structure metadata. Structures refer to other blocks through
// packed pointers made of a 1-based block index and an offset; index 0 is null.
//
// # Decoding
//
// Decoding runs in three stages:
//
//  1. Every block is decoded into a sequence of values by the Codec registered for
//     its key (DecodeBlock, Registry).
//  2. The Resolver walks all values with an explicit work stack and replaces each
//     pointer descriptor with direct references into the target block: Array
//     entries, CharPointer text, Generic targets and BlockPointer data.
//  3. FindRoot returns the single structure that no pointer refers to.
//
// Session combines the three stages:
//
//	session, err := meta.NewSession(infos, meta.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	graph, err := session.Decode(ctx, blocks)
//	if err != nil {
//	    return err
//	}
//	name, _ := graph.Root.FieldByName("name")
//
// # Addressing
//
// Array offsets are byte offsets into the target block and must be a multiple of
// its element size. CharPointer offsets count elements. Generic offsets are in
// 16-byte units regardless of the target element size, so a generic pointer with
// offset 16 into a block of 16-byte vectors addresses element 16, not element 1.
//
// # Errors
//
// Failures wrap the sentinels of the errs package: errs.ErrUnknownType,
// errs.ErrCorruptBlock, errs.ErrCorruptReference and errs.ErrMalformedGraph.
package meta
