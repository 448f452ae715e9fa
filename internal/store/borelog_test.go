package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/parser"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

var _ = Describe("borelog store", Ordered, func() {
	var (
		s          store.Store
		gormdb     *gorm.DB
		boreholeID uuid.UUID
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		boreholeID = uuid.New()
		_, err := s.Borehole().Create(context.TODO(), &model.Borehole{
			ID:            boreholeID,
			ProjectCode:   "P1",
			StructureCode: "S1",
			JobCode:       "JOB-7",
		})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from stratum_sample_points;")
		gormdb.Exec("DELETE from stratum_layers;")
		gormdb.Exec("DELETE from submission_audits;")
		gormdb.Exec("DELETE from borelogs;")
		gormdb.Exec("DELETE from boreholes;")
	})

	ptr := func(v float64) *float64 { return &v }

	newBorelog := func(pendingUploadID *uuid.UUID) *model.Borelog {
		return &model.Borelog{
			ID:               uuid.New(),
			BoreholeID:       boreholeID,
			PendingUploadID:  pendingUploadID,
			CreatedBy:        "reviewer",
			BoringMethod:     "Rotary",
			TerminationDepth: ptr(18.5),
			LabTestCount:     "4&1",
			Layers: []model.StratumLayer{
				{
					LayerOrder:  0,
					DepthFrom:   0,
					DepthTo:     2,
					Thickness:   2,
					Description: "Topsoil",
				},
				{
					LayerOrder:  1,
					DepthFrom:   2,
					DepthTo:     8,
					Thickness:   6,
					Description: "Clayey silt",
					SamplePoint: &model.StratumSamplePoint{
						SampleID:   "U-1",
						SampleType: "U",
						DepthMode:  model.DepthModeSingle,
						SampleDepth: ptr(3.5),
						NValue:      ptr(14),
					},
				},
			},
		}
	}

	Context("create", func() {
		It("persists layers and sample points with the borelog", func() {
			created, err := s.Borelog().Create(context.TODO(), newBorelog(nil))
			Expect(err).To(BeNil())

			found, err := s.Borelog().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(found.Layers).To(HaveLen(2))
			Expect(found.Layers[0].Description).To(Equal("Topsoil"))
			Expect(found.Layers[0].SamplePoint).To(BeNil())
			Expect(found.Layers[1].SamplePoint).ToNot(BeNil())
			Expect(found.Layers[1].SamplePoint.SampleID).To(Equal("U-1"))
			Expect(*found.Layers[1].SamplePoint.NValue).To(Equal(float64(14)))
		})

		It("rejects a second borelog for the same pending upload", func() {
			uploadID := uuid.New()
			_, err := s.Borelog().Create(context.TODO(), newBorelog(&uploadID))
			Expect(err).To(BeNil())

			_, err = s.Borelog().Create(context.TODO(), newBorelog(&uploadID))
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})
	})

	Context("get by pending upload", func() {
		It("finds the borelog created from an upload", func() {
			uploadID := uuid.New()
			created, err := s.Borelog().Create(context.TODO(), newBorelog(&uploadID))
			Expect(err).To(BeNil())

			found, err := s.Borelog().GetByPendingUpload(context.TODO(), uploadID)
			Expect(err).To(BeNil())
			Expect(found.ID).To(Equal(created.ID))
		})

		It("returns ErrRecordNotFound when no borelog matches", func() {
			_, err := s.Borelog().GetByPendingUpload(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("submission audit", func() {
		It("stores the parsed payload alongside the borelog", func() {
			created, err := s.Borelog().Create(context.TODO(), newBorelog(nil))
			Expect(err).To(BeNil())

			doc := parser.Document{
				Metadata: parser.ReportMetadata{ProjectName: "NH-24 Bypass", JobCode: "JOB-7"},
			}
			err = s.Borelog().RecordSubmission(context.TODO(), &model.SubmissionAudit{
				BorelogID:       created.ID,
				PendingUploadID: uuid.New(),
				Version:         1,
				SubmittedBy:     "reviewer",
				Payload:         model.MakeJSONField(doc),
			})
			Expect(err).To(BeNil())

			count := 0
			err = gormdb.Raw("SELECT COUNT(*) from submission_audits;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})
	})
})
