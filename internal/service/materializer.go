package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/parser"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
	"github.com/soilworks/borelog-registry/pkg/metrics"
)

// Materializer turns an approved upload into permanent borehole records. All
// relational writes happen through the caller's transaction context; the
// versioned document write is a separate step after the transaction commits.
type Materializer struct {
	store store.Store
	docs  *docstore.Store
}

func NewMaterializer(store store.Store, docs *docstore.Store) *Materializer {
	return &Materializer{store: store, docs: docs}
}

// Materialize creates (or reuses) the borehole and creates the borelog with its
// stratum layers, sample points and audit entry. Calling it twice with the same
// upload returns the borelog created the first time.
func (m *Materializer) Materialize(ctx context.Context, upload *model.PendingUpload) (*model.Borelog, error) {
	if existing, err := m.store.Borelog().GetByPendingUpload(ctx, upload.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, store.ErrRecordNotFound) {
		return nil, err
	}

	doc := &upload.Payload.Data

	borehole, err := m.findOrCreateBorehole(ctx, upload, &doc.Metadata)
	if err != nil {
		return nil, err
	}

	uploadID := upload.ID
	borelog := &model.Borelog{
		ID:                 uuid.New(),
		BoreholeID:         borehole.ID,
		PendingUploadID:    &uploadID,
		CreatedBy:          upload.DecidedBy,
		BoringMethod:       doc.Metadata.BoringMethod,
		HoleDiameterMM:     doc.Metadata.HoleDiameterMM,
		TerminationDepth:   doc.Metadata.TerminationDepth,
		StandingWaterLevel: doc.Metadata.StandingWaterLevel,
		CommencementDate:   doc.Metadata.CommencementDate,
		CompletionDate:     doc.Metadata.CompletionDate,
		LabTestCount:       encodeLabTestCount(&doc.Metadata),
		Layers:             buildLayers(doc.Layers),
	}

	created, err := m.store.Borelog().Create(ctx, borelog)
	if err != nil {
		// Lost the race against a concurrent approval of the same upload.
		if errors.Is(err, store.ErrDuplicateKey) {
			return m.store.Borelog().GetByPendingUpload(ctx, upload.ID)
		}
		return nil, err
	}

	audit := &model.SubmissionAudit{
		BorelogID:       created.ID,
		PendingUploadID: upload.ID,
		Version:         1,
		SubmittedBy:     upload.DecidedBy,
		Payload:         model.MakeJSONField(*doc),
	}
	if err := m.store.Borelog().RecordSubmission(ctx, audit); err != nil {
		return nil, err
	}

	return created, nil
}

// WriteInitialVersion stores the parsed document as approved version 1 of the
// borelog's versioned record. A failure here leaves the relational record
// without its document copy; it is logged and surfaced for the caller to retry.
func (m *Materializer) WriteInitialVersion(ctx context.Context, upload *model.PendingUpload, borelog *model.Borelog) error {
	ref := docstore.DocumentRef{
		Project:   upload.ProjectCode,
		Structure: upload.StructureCode,
		Borelog:   borelog.ID.String(),
	}

	one := 1
	version, err := m.docs.CreateVersion(ctx, ref, &one, docstore.VersionMeta{
		Status:    docstore.VersionStatusSubmitted,
		CreatedBy: upload.DecidedBy,
	}, upload.Payload.Data)
	if err != nil {
		if errors.Is(err, docstore.ErrVersionConflict) {
			// Already written by an earlier attempt.
			return nil
		}
		return err
	}

	if err := m.docs.ApproveVersion(ctx, ref, version); err != nil {
		return err
	}

	metrics.IncreaseRecordVersionsCreatedMetric()
	zap.S().Named("materializer").Infow("initial record version written",
		"ref", ref.String(),
		"version", version,
	)
	return nil
}

// findOrCreateBorehole scans the project's boreholes for one matching the
// report's borehole number, falling back to the job code when the report
// carries no number. There is no unique constraint on the tuple, so two
// concurrent first approvals can still create twins.
func (m *Materializer) findOrCreateBorehole(ctx context.Context, upload *model.PendingUpload, meta *parser.ReportMetadata) (*model.Borehole, error) {
	filter := store.NewBoreholeQueryFilter().
		ByProject(upload.ProjectCode).
		ByStructure(upload.StructureCode)

	boreholes, err := m.store.Borehole().List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range boreholes {
		b := &boreholes[i]
		if meta.BoreholeNumber != "" {
			if b.BoreholeNumber == meta.BoreholeNumber {
				return b, nil
			}
			continue
		}
		if b.JobCode == meta.JobCode {
			return b, nil
		}
	}

	return m.store.Borehole().Create(ctx, &model.Borehole{
		ID:             uuid.New(),
		ProjectCode:    upload.ProjectCode,
		StructureCode:  upload.StructureCode,
		BoreholeNumber: meta.BoreholeNumber,
		JobCode:        meta.JobCode,
		Location:       meta.Location,
	})
}

func buildLayers(layers []parser.SoilLayer) []model.StratumLayer {
	result := make([]model.StratumLayer, 0, len(layers))
	for i, l := range layers {
		layer := model.StratumLayer{
			LayerOrder:  i,
			DepthFrom:   l.DepthFrom,
			DepthTo:     l.DepthTo,
			Thickness:   l.Thickness,
			Description: l.Description,
		}
		if point := buildSamplePoint(&l); point != nil {
			layer.SamplePoint = point
		}
		result = append(result, layer)
	}
	return result
}

// buildSamplePoint derives the sample point for a layer, or nil when the layer
// carries no sample data at all.
func buildSamplePoint(l *parser.SoilLayer) *model.StratumSamplePoint {
	nValue := deriveNValue(l)
	tcr := derivePercent(l.TCRPercent, l.TotalCoreLengthCM, l.RunLength)
	rqd := derivePercent(l.RQDPercent, l.RQDLengthCM, l.RunLength)

	if l.SampleID == "" && l.SampleType == "" && l.SampleDepth == nil &&
		len(l.SPTBlows) == 0 && l.TotalCoreLengthCM == nil && l.RQDLengthCM == nil &&
		nValue == nil && tcr == nil && rqd == nil {
		return nil
	}

	point := &model.StratumSamplePoint{
		SampleID:   l.SampleID,
		SampleType: l.SampleType,
		NValue:     nValue,
		TCRPercent: tcr,
		RQDPercent: rqd,
	}

	if l.SampleDepth != nil {
		point.DepthMode = model.DepthModeSingle
		point.SampleDepth = l.SampleDepth
		point.RunLength = l.RunLength
	} else {
		point.DepthMode = model.DepthModeRange
		runLength := l.DepthTo - l.DepthFrom
		if l.RunLength != nil {
			runLength = *l.RunLength
		}
		point.RunLength = &runLength
	}

	return point
}

// deriveNValue sums the second and third blow counts of a standard penetration
// test (the seating drive does not count), falling back to the explicit
// N-value field.
func deriveNValue(l *parser.SoilLayer) *float64 {
	if len(l.SPTBlows) == 3 && l.SPTBlows[1] != nil && l.SPTBlows[2] != nil {
		sum := *l.SPTBlows[1] + *l.SPTBlows[2]
		return &sum
	}
	return l.NValue
}

// derivePercent prefers the explicit percentage and otherwise derives it from
// the recovered length in centimeters over the run length in meters.
func derivePercent(explicit, lengthCM, runLength *float64) *float64 {
	if explicit != nil {
		return explicit
	}
	if lengthCM == nil || runLength == nil || *runLength == 0 {
		return nil
	}
	pct := (*lengthCM / 100) / *runLength * 100
	return &pct
}

func encodeLabTestCount(meta *parser.ReportMetadata) string {
	spt, vs := 0, 0
	if meta.SPTTestCount != nil {
		spt = *meta.SPTTestCount
	}
	if meta.VSTestCount != nil {
		vs = *meta.VSTestCount
	}
	return fmt.Sprintf("%d&%d", spt, vs)
}
