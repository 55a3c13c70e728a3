// Package store provides the interface of the document archive behind the server,
// together with the shared error type and the word tokenizer.
//
// Key Components:
//
//   - IArchive Interface: Publish stores a document and hands out an id, Search maps a
//     single word to the ids of all documents containing it, Retrieve maps an id back to
//     its document. All implementations must be safe for concurrent use.
//
//   - Error System: Errors returned by implementations are of type *Error and carry a
//     RetCode, so callers can tell internal failures from corrupted data.
//
//   - Tokenize / NormalizeWord: The single definition of what a word is. Documents are
//     split on every rune that is neither a letter nor a digit and lower-cased; queries
//     are normalized the same way.
//
// Implementations:
//
//	- Local Archive (lstore): an in-memory archive with an xsync document table and a
//	  patricia trie word index. Available in the "github.com/benjmnxu/ngram/lib/store/lstore"
//	  package.
package store
