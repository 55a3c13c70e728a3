package lstore

import (
	"github.com/benjmnxu/ngram/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tchap/go-patricia/v2/patricia"
	"sort"
	"sync"
	"sync/atomic"
)

var Logger = logger.GetLogger("store")

type archiveImpl struct {
	codec Compression

	// docs maps an id to its encoded blob
	docs   *xsync.MapOf[uint64, []byte]
	nextID atomic.Uint64

	// index maps a word to the sorted ids of the documents containing it
	indexMu sync.RWMutex
	index   *patricia.Trie
	words   uint64

	rawBytes    atomic.Uint64
	storedBytes atomic.Uint64
	sizes       *sizeHistogram
}

// NewLocalArchive creates a new in-memory archive that stores documents with the
// given compression codec. The archive is not persisted.
func NewLocalArchive(codec Compression) store.IArchive {
	return &archiveImpl{
		codec: codec,
		docs:  xsync.NewMapOf[uint64, []byte](),
		index: patricia.NewTrie(),
		sizes: newSizeHistogram(),
	}
}

// allocID returns the next unused id, starting at 0.
//
// Thread-safety: This method is thread-safe since it uses atomic operations.
func (a *archiveImpl) allocID() uint64 {
	return a.nextID.Add(1) - 1
}

// addPosting inserts id into the posting list of word, keeping the list sorted
// and free of duplicates. The caller must hold indexMu.
func (a *archiveImpl) addPosting(word string, id uint64) {
	key := patricia.Prefix(word)
	item := a.index.Get(key)
	if item == nil {
		a.index.Insert(key, []uint64{id})
		a.words++
		return
	}

	ids := item.([]uint64)
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if i < len(ids) && ids[i] == id {
		return
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	a.index.Set(key, ids)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (a *archiveImpl) Publish(doc string) (uint64, error) {
	blob, err := encodeBlob(doc, a.codec)
	if err != nil {
		return 0, store.NewError(store.RetCInternalError, err.Error())
	}

	id := a.allocID()

	// the document is stored before it is indexed, so every id a search returns can be retrieved
	a.docs.Store(id, blob)
	a.rawBytes.Add(uint64(len(doc)))
	a.storedBytes.Add(uint64(len(blob)))
	a.sizes.add(len(doc))

	words := store.Tokenize(doc)
	a.indexMu.Lock()
	for _, word := range words {
		a.addPosting(word, id)
	}
	a.indexMu.Unlock()

	Logger.Debugf("published document %d (%d bytes, %d words, %s)", id, len(doc), len(words), Compression(blob[0]))
	return id, nil
}

func (a *archiveImpl) Search(word string) ([]uint64, error) {
	term, ok := store.NormalizeWord(word)
	if !ok {
		return []uint64{}, nil
	}

	a.indexMu.RLock()
	defer a.indexMu.RUnlock()

	item := a.index.Get(patricia.Prefix(term))
	if item == nil {
		return []uint64{}, nil
	}
	ids := item.([]uint64)
	result := make([]uint64, len(ids))
	copy(result, ids)
	return result, nil
}

func (a *archiveImpl) Retrieve(id uint64) (string, bool, error) {
	blob, ok := a.docs.Load(id)
	if !ok {
		return "", false, nil
	}
	doc, err := decodeBlob(blob)
	if err != nil {
		Logger.Errorf("document %d is corrupted: %v", id, err)
		return "", false, store.NewError(store.RetCCorrupted, err.Error())
	}
	return doc, true, nil
}

func (a *archiveImpl) Info() (store.ArchiveInfo, error) {
	a.indexMu.RLock()
	words := a.words
	a.indexMu.RUnlock()

	return store.ArchiveInfo{
		Documents:   uint64(a.docs.Size()),
		Words:       words,
		RawBytes:    a.rawBytes.Load(),
		StoredBytes: a.storedBytes.Load(),
		Compression: a.codec.String(),

		AvgDocumentBytes:    a.sizes.average(),
		MedianDocumentBytes: a.sizes.percentile(50),
		P99DocumentBytes:    a.sizes.percentile(99),
	}, nil
}
