package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// RecordVersion statuses.
const (
	VersionStatusDraft     = "draft"
	VersionStatusSubmitted = "submitted"
	VersionStatusApproved  = "approved"
	VersionStatusRejected  = "rejected"
)

// VersionIndex is the per-document ledger of which version numbers exist. It is
// owned exclusively by this store and mutated only through CreateVersion and
// ApproveVersion.
type VersionIndex struct {
	LatestVersion   int   `json:"latest_version"`
	ApprovedVersion *int  `json:"approved_version,omitempty"`
	Versions        []int `json:"versions"`
}

func (idx VersionIndex) has(version int) bool {
	return slices.Contains(idx.Versions, version)
}

// VersionMeta describes one immutable record version. Corrections are new
// versions, never edits in place.
type VersionMeta struct {
	Version   int       `json:"version"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	readAttempts = 3
	readBackoff  = 250 * time.Millisecond
)

// Store manages append-only version sequences for borelog documents on top of a
// plain object store. The backend has no multi-object transactions: a crash
// between the version writes and the index update leaves an orphaned payload that
// never becomes visible, and two concurrent CreateVersion calls on one document
// can race on the index (see DESIGN.md).
type Store struct {
	objects ObjectStore
}

func New(objects ObjectStore) *Store {
	return &Store{objects: objects}
}

// resolveRoot finds the key prefix a document lives under. Canonical wins; the
// legacy layout is a read fallback; new documents default to canonical.
func (s *Store) resolveRoot(ctx context.Context, ref DocumentRef) (string, error) {
	canonical := canonicalRoot(ref)
	ok, err := s.objects.Exists(ctx, indexKey(canonical))
	if err != nil {
		return "", err
	}
	if ok {
		return canonical, nil
	}

	legacy := legacyRoot(ref)
	ok, err = s.objects.Exists(ctx, indexKey(legacy))
	if err != nil {
		return "", err
	}
	if ok {
		return legacy, nil
	}
	return canonical, nil
}

// CreateVersion allocates the next version number (or validates the requested
// one), writes the version metadata and payload objects, then updates the index.
// The version becomes discoverable only once the index write completes. Writes are
// never retried here so a transient failure cannot double-allocate a number.
func (s *Store) CreateVersion(ctx context.Context, ref DocumentRef, requested *int, meta VersionMeta, payload any) (int, error) {
	root, err := s.resolveRoot(ctx, ref)
	if err != nil {
		return 0, err
	}

	index, err := s.loadIndex(ctx, root)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return 0, err
		}
		index = &VersionIndex{}
	}

	candidate := index.LatestVersion + 1
	if requested != nil {
		candidate = *requested
	}
	if index.has(candidate) {
		return 0, ErrVersionConflict
	}

	meta.Version = candidate
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	metaRaw, err := json.Marshal(meta)
	if err != nil {
		return 0, err
	}
	payloadRaw, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	// Two independent writes; neither is atomic with the index update below.
	if err := s.objects.Put(ctx, versionMetaKey(root, candidate), metaRaw); err != nil {
		return 0, err
	}
	if err := s.objects.Put(ctx, versionDataKey(root, candidate), payloadRaw); err != nil {
		return 0, err
	}

	index.Versions = append(index.Versions, candidate)
	slices.Sort(index.Versions)
	index.LatestVersion = max(index.LatestVersion, candidate)
	if err := s.writeIndex(ctx, root, index); err != nil {
		zap.S().Named("docstore").Warnf("version %d of %s written but index update failed, payload is orphaned: %v", candidate, ref, err)
		return 0, err
	}
	return candidate, nil
}

// ApproveVersion marks an existing version as the approved one. The version must
// be a member of the index.
func (s *Store) ApproveVersion(ctx context.Context, ref DocumentRef, version int) error {
	root, err := s.resolveRoot(ctx, ref)
	if err != nil {
		return err
	}
	index, err := s.loadIndex(ctx, root)
	if err != nil {
		return err
	}
	if !index.has(version) {
		return ErrNotFound
	}
	index.ApprovedVersion = &version
	return s.writeIndex(ctx, root, index)
}

// GetIndex returns the document's version index.
func (s *Store) GetIndex(ctx context.Context, ref DocumentRef) (*VersionIndex, error) {
	root, err := s.resolveRoot(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.loadIndex(ctx, root)
}

// ListVersions returns the strictly increasing set of version numbers.
func (s *Store) ListVersions(ctx context.Context, ref DocumentRef) ([]int, error) {
	index, err := s.GetIndex(ctx, ref)
	if err != nil {
		return nil, err
	}
	return index.Versions, nil
}

// GetVersion reads one version's metadata and unmarshals its payload into out.
// Versions not recorded in the index are treated as absent even if a payload
// object happens to exist (orphans are invisible).
func (s *Store) GetVersion(ctx context.Context, ref DocumentRef, version int, out any) (*VersionMeta, error) {
	root, err := s.resolveRoot(ctx, ref)
	if err != nil {
		return nil, err
	}
	index, err := s.loadIndex(ctx, root)
	if err != nil {
		return nil, err
	}
	if !index.has(version) {
		return nil, ErrNotFound
	}

	metaRaw, err := s.readObject(ctx, versionMetaKey(root, version))
	if err != nil {
		return nil, err
	}
	var meta VersionMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, err
	}

	if out != nil {
		payloadRaw, err := s.readObject(ctx, versionDataKey(root, version))
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payloadRaw, out); err != nil {
			return nil, err
		}
	}
	return &meta, nil
}

// GetLatest reads the newest version.
func (s *Store) GetLatest(ctx context.Context, ref DocumentRef, out any) (*VersionMeta, error) {
	index, err := s.GetIndex(ctx, ref)
	if err != nil {
		return nil, err
	}
	if index.LatestVersion == 0 {
		return nil, ErrNotFound
	}
	return s.GetVersion(ctx, ref, index.LatestVersion, out)
}

func (s *Store) loadIndex(ctx context.Context, root string) (*VersionIndex, error) {
	raw, err := s.readObject(ctx, indexKey(root))
	if err != nil {
		return nil, err
	}
	var index VersionIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

func (s *Store) writeIndex(ctx context.Context, root string, index *VersionIndex) error {
	raw, err := json.Marshal(index)
	if err != nil {
		return err
	}
	return s.objects.Put(ctx, indexKey(root), raw)
}

// readObject retries idempotent reads a bounded number of times with a linear
// backoff. Absence is final and never retried.
func (s *Store) readObject(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, retry.WithMaxRetries(readAttempts-1, retry.NewConstant(readBackoff)), func(ctx context.Context) error {
		var err error
		data, err = s.objects.Get(ctx, key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
