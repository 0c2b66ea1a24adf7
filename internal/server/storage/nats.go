package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/avoronova/filecove/internal/common"
)

// objectStore is the slice of jetstream.ObjectStore used by NATSStore.
type objectStore interface {
	Put(ctx context.Context, meta jetstream.ObjectMeta, reader io.Reader) (*jetstream.ObjectInfo, error)
	Get(ctx context.Context, name string, opts ...jetstream.GetObjectOpt) (jetstream.ObjectResult, error)
	Delete(ctx context.Context, name string) error
}

// NATSStore keeps artifacts in a JetStream object store bucket, one object
// per artifact named <userID>/<storedName>.
type NATSStore struct {
	store objectStore
}

// NewNATSStore connects to the given NATS URL and creates (or reuses) the
// named object store bucket.
func NewNATSStore(ctx context.Context, url, bucket string) (*NATSStore, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	store, err := js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket: bucket,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("object store %q: %w", bucket, err)
	}

	return &NATSStore{store: store}, nil
}

func (s *NATSStore) key(userID, storedName string) string {
	return userID + "/" + storedName
}

func (s *NATSStore) Save(ctx context.Context, userID, storedName string, r io.Reader) (int64, error) {
	info, err := s.store.Put(ctx, jetstream.ObjectMeta{Name: s.key(userID, storedName)}, r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrWriteFailed, err)
	}
	return int64(info.Size), nil
}

func (s *NATSStore) Open(ctx context.Context, userID, storedName string) (io.ReadCloser, error) {
	res, err := s.store.Get(ctx, s.key(userID, storedName))
	if err != nil {
		if errors.Is(err, jetstream.ErrObjectNotFound) {
			return nil, common.ErrArtifactMissing
		}
		return nil, fmt.Errorf("get object: %w", err)
	}
	return res, nil
}

func (s *NATSStore) Remove(ctx context.Context, userID, storedName string) error {
	err := s.store.Delete(ctx, s.key(userID, storedName))
	if err != nil && !errors.Is(err, jetstream.ErrObjectNotFound) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
