package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/parser"
	"github.com/soilworks/borelog-registry/internal/service"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

var _ = Describe("approval service", Ordered, func() {
	var (
		s       store.Store
		gormdb  *gorm.DB
		docs    *docstore.Store
		uploads *service.UploadService
		svc     *service.ApprovalService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		docs = docstore.New(docstore.NewMemoryStore())
		uploads = service.NewUploadService(s)
		svc = service.NewApprovalService(s, service.NewMaterializer(s, docs))
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from stratum_sample_points;")
		gormdb.Exec("DELETE from stratum_layers;")
		gormdb.Exec("DELETE from submission_audits;")
		gormdb.Exec("DELETE from borelogs;")
		gormdb.Exec("DELETE from boreholes;")
		gormdb.Exec("DELETE from pending_uploads;")
	})

	submit := func() *model.PendingUpload {
		upload, err := uploads.SubmitUpload(context.TODO(), "engineer", &api.SubmitUploadRequest{
			ProjectCode:   "ORR-P4",
			StructureCode: "CH12-400",
			ReportText:    sampleReport,
		})
		Expect(err).To(BeNil())
		return upload
	}

	Context("approve", func() {
		It("materializes the borehole, borelog and layers", func() {
			upload := submit()

			decided, err := svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionApprove,
			})
			Expect(err).To(BeNil())
			Expect(decided.Status).To(Equal(model.UploadStatusApproved))
			Expect(decided.DecidedBy).To(Equal("reviewer"))
			Expect(decided.CreatedRecordID).ToNot(BeNil())

			borelog, err := s.Borelog().Get(context.TODO(), *decided.CreatedRecordID)
			Expect(err).To(BeNil())
			Expect(borelog.CreatedBy).To(Equal("reviewer"))
			Expect(borelog.LabTestCount).To(Equal("12&3"))
			Expect(borelog.Layers).To(HaveLen(2))

			// second layer carries the sample point with the explicit figures
			point := borelog.Layers[1].SamplePoint
			Expect(point).ToNot(BeNil())
			Expect(point.SampleID).To(Equal("U-1"))
			Expect(point.DepthMode).To(Equal(model.DepthModeSingle))
			Expect(*point.TCRPercent).To(BeNumerically("==", 90))
			Expect(*point.RQDPercent).To(BeNumerically("==", 89))
			// blows were 4, 7, 9: seating blow dropped
			Expect(*point.NValue).To(BeNumerically("==", 16))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from submission_audits;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("writes approved version 1 of the document copy", func() {
			upload := submit()

			decided, err := svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionApprove,
			})
			Expect(err).To(BeNil())

			ref := docstore.DocumentRef{
				Project:   "ORR-P4",
				Structure: "CH12-400",
				Borelog:   decided.CreatedRecordID.String(),
			}
			index, err := docs.GetIndex(context.TODO(), ref)
			Expect(err).To(BeNil())
			Expect(index.LatestVersion).To(Equal(1))
			Expect(index.ApprovedVersion).ToNot(BeNil())
			Expect(*index.ApprovedVersion).To(Equal(1))

			var doc parser.Document
			_, err = docs.GetVersion(context.TODO(), ref, 1, &doc)
			Expect(err).To(BeNil())
			Expect(doc.Metadata.JobCode).To(Equal("ORR-2023-117"))
		})

		It("reuses the existing borehole on a second report for the same hole", func() {
			first := submit()
			_, err := svc.Decide(context.TODO(), first.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionApprove,
			})
			Expect(err).To(BeNil())

			second := submit()
			_, err = svc.Decide(context.TODO(), second.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionApprove,
			})
			Expect(err).To(BeNil())

			boreholes := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from boreholes;").Scan(&boreholes).Error).To(BeNil())
			Expect(boreholes).To(Equal(1))

			borelogs := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from borelogs;").Scan(&borelogs).Error).To(BeNil())
			Expect(borelogs).To(Equal(2))
		})
	})

	Context("terminal decisions", func() {
		It("rejects without creating any records", func() {
			upload := submit()

			decided, err := svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionReject,
				Notes:    "depths disagree with the field log",
			})
			Expect(err).To(BeNil())
			Expect(decided.Status).To(Equal(model.UploadStatusRejected))
			Expect(decided.DecisionNotes).To(Equal("depths disagree with the field log"))
			Expect(decided.CreatedRecordID).To(BeNil())

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from borelogs;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("refuses a second decision on the same upload", func() {
			upload := submit()

			_, err := svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionReturnForRevision,
			})
			Expect(err).To(BeNil())

			_, err = svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
				Decision: api.DecisionApprove,
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidState{}))
		})

		It("rejects an unknown decision verb", func() {
			upload := submit()

			_, err := svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
				Decision: "escalate",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidDecision{}))
		})
	})
})
