// Package lstore implements a local, in-memory, single-node document archive based on the
// store.IArchive interface. Data is stored entirely in memory and is not persisted between
// process restarts.
//
// Implementation Details:
//
//   - Identifier Allocation: The archive keeps an atomic counter. Every Publish takes the
//     next value, so ids start at 0, are never reused and are unique even under concurrent
//     publishers.
//
//   - Document Table: Documents are kept in an xsync.MapOf keyed by id. Each entry is a blob
//     of one codec byte, the uncompressed length as uvarint, and the (optionally zstd or lz4
//     compressed) document text. Documents that a codec cannot shrink are stored as is.
//
//   - Word Index: A patricia trie maps every word to the sorted list of ids of the documents
//     containing it. The trie is guarded by a sync.RWMutex; searches only take the read lock.
//     A document is written to the table before its words are indexed, so every id returned
//     by Search can be retrieved.
//
// Words are produced by store.Tokenize: lower-cased runs of letters and digits. A search
// query is normalized the same way and must consist of exactly one word, otherwise the
// result is empty.
//
// Usage Example:
//
//	archive := lstore.NewLocalArchive(lstore.CompressionZstd)
//	id, _ := archive.Publish("hello world")
//	ids, _ := archive.Search("Hello") // [id]
//	doc, found, _ := archive.Retrieve(id)
package lstore
