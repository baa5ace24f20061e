package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"fitscore/internal/models"
	"fitscore/internal/providers"
	"fitscore/internal/storage/interfaces"
)

// FileManager persists full record store snapshots as zstd-compressed JSON.
type FileManager struct {
	store      models.RecordStoreInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store models.RecordStoreInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

// SaveToFile writes the snapshot to a temp file and renames it over fileName.
func (f *FileManager) SaveToFile(ctx context.Context, fileName string) error {
	snapshot, err := f.store.GetSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("take snapshot: %w", err)
	}

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile replaces the store contents with the snapshot in fileName.
// A missing file leaves the store untouched.
func (f *FileManager) LoadFromFile(ctx context.Context, fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Infof(providers.TypeStore, "No snapshot at %s, starting empty", fileName)
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.Version > models.SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", snapshot.Version, models.SnapshotVersion)
	}
	if snapshot.Version < models.SnapshotVersion {
		f.logger.Warnf(providers.TypeStore, "Snapshot version %d is older than %d, loading as is", snapshot.Version, models.SnapshotVersion)
	}

	return f.store.PutSnapshot(ctx, &snapshot)
}
