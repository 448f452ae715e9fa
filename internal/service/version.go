package service

import (
	"context"
	"errors"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/parser"
	"github.com/soilworks/borelog-registry/internal/service/mappers"
)

// VersionService reads the versioned document copies of materialized records.
type VersionService struct {
	docs *docstore.Store
}

func NewVersionService(docs *docstore.Store) *VersionService {
	return &VersionService{docs: docs}
}

func (s *VersionService) GetVersion(ctx context.Context, ref docstore.DocumentRef, version int) (*api.BorelogVersion, error) {
	var doc parser.Document
	meta, err := s.docs.GetVersion(ctx, ref, version, &doc)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, NewErrVersionNotFound(ref.String(), version)
		}
		return nil, err
	}
	return &api.BorelogVersion{Meta: mappers.VersionMetaToApi(*meta), Document: doc}, nil
}

func (s *VersionService) GetLatest(ctx context.Context, ref docstore.DocumentRef) (*api.BorelogVersion, error) {
	var doc parser.Document
	meta, err := s.docs.GetLatest(ctx, ref, &doc)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, NewErrDocumentNotFound(ref.String())
		}
		return nil, err
	}
	return &api.BorelogVersion{Meta: mappers.VersionMetaToApi(*meta), Document: doc}, nil
}

func (s *VersionService) ListVersions(ctx context.Context, ref docstore.DocumentRef) (*api.VersionList, error) {
	index, err := s.docs.GetIndex(ctx, ref)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, NewErrDocumentNotFound(ref.String())
		}
		return nil, err
	}

	metas := make([]docstore.VersionMeta, 0, len(index.Versions))
	for _, v := range index.Versions {
		meta, err := s.docs.GetVersion(ctx, ref, v, nil)
		if err != nil {
			return nil, err
		}
		metas = append(metas, *meta)
	}

	list := mappers.VersionListToApi(metas, index)
	return &list, nil
}
