package publish

import (
	"context"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/store"
)

// Snapshot writes the dataset to the JSON file the display layer reads. It is
// only needed when the primary store is a database.
type Snapshot struct {
	file *store.FileStore
}

func NewSnapshot(path string) *Snapshot {
	return &Snapshot{file: store.NewFileStore(path)}
}

func (s *Snapshot) Name() string { return "snapshot" }

func (s *Snapshot) Publish(ctx context.Context, dataset domain.Dataset) error {
	return s.file.Save(ctx, dataset)
}
