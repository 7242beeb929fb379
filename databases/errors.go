package databases

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when the requested document id is absent from its
// collection. Read paths that prefer graceful degradation check for this and
// substitute a placeholder entity instead of propagating.
var ErrNotFound = errors.New("document not found")

// StoreError wraps any transient, network or permission failure coming out of
// the underlying store. It is propagated to the caller unchanged; this layer
// never retries.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// wrapStoreError classifies an error from the store: the driver's no-documents
// sentinel becomes ErrNotFound, everything else a StoreError.
func wrapStoreError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Collection: collection, Err: err}
}
