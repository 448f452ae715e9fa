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

var _ = Describe("pending upload store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
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

	AfterEach(func() {
		gormdb.Exec("DELETE from pending_uploads;")
	})

	newUpload := func(uploader string) *model.PendingUpload {
		return &model.PendingUpload{
			ID:            uuid.New(),
			ProjectCode:   "P1",
			StructureCode: "S1",
			UploadedBy:    uploader,
			Status:        model.UploadStatusPending,
			Payload: model.MakeJSONField(parser.Document{
				Metadata: parser.ReportMetadata{ProjectName: "NH-24 Bypass", JobCode: "JOB-7"},
			}),
		}
	}

	Context("create and get", func() {
		It("round-trips the parsed payload", func() {
			created, err := s.PendingUpload().Create(context.TODO(), newUpload("engineer"))
			Expect(err).To(BeNil())

			found, err := s.PendingUpload().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(found.Status).To(Equal(model.UploadStatusPending))
			Expect(found.Payload).ToNot(BeNil())
			Expect(found.Payload.Data.Metadata.JobCode).To(Equal("JOB-7"))
		})

		It("returns ErrRecordNotFound for an unknown id", func() {
			_, err := s.PendingUpload().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("list", func() {
		It("filters by status and uploader", func() {
			first, err := s.PendingUpload().Create(context.TODO(), newUpload("engineer"))
			Expect(err).To(BeNil())
			_, err = s.PendingUpload().Create(context.TODO(), newUpload("surveyor"))
			Expect(err).To(BeNil())

			_, err = s.PendingUpload().UpdateDecision(context.TODO(), first.ID, model.UploadStatusRejected, "reviewer", "bad depths", nil)
			Expect(err).To(BeNil())

			pending, err := s.PendingUpload().List(context.TODO(),
				store.NewPendingUploadQueryFilter().ByStatus(model.UploadStatusPending))
			Expect(err).To(BeNil())
			Expect(pending).To(HaveLen(1))
			Expect(pending[0].UploadedBy).To(Equal("surveyor"))

			mine, err := s.PendingUpload().List(context.TODO(),
				store.NewPendingUploadQueryFilter().ByUploader("engineer"))
			Expect(err).To(BeNil())
			Expect(mine).To(HaveLen(1))
		})
	})

	Context("decision", func() {
		It("stamps the reviewer verdict once", func() {
			created, err := s.PendingUpload().Create(context.TODO(), newUpload("engineer"))
			Expect(err).To(BeNil())

			recordID := uuid.New()
			decided, err := s.PendingUpload().UpdateDecision(context.TODO(), created.ID, model.UploadStatusApproved, "reviewer", "", &recordID)
			Expect(err).To(BeNil())
			Expect(decided.Status).To(Equal(model.UploadStatusApproved))
			Expect(decided.DecidedBy).To(Equal("reviewer"))
			Expect(decided.DecidedAt).ToNot(BeNil())
			Expect(decided.CreatedRecordID).ToNot(BeNil())
			Expect(*decided.CreatedRecordID).To(Equal(recordID))
		})

		It("refuses to decide an already decided upload", func() {
			created, err := s.PendingUpload().Create(context.TODO(), newUpload("engineer"))
			Expect(err).To(BeNil())

			_, err = s.PendingUpload().UpdateDecision(context.TODO(), created.ID, model.UploadStatusRejected, "reviewer", "bad depths", nil)
			Expect(err).To(BeNil())

			_, err = s.PendingUpload().UpdateDecision(context.TODO(), created.ID, model.UploadStatusApproved, "reviewer", "", nil)
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
