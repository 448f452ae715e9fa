package service_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/service"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

const sampleReport = `
Project Name: Outer Ring Road Package 4
Job Code: ORR-2023-117
Location: CH 12+400, Bengaluru
Borehole No: BH-07
Method of Boring: Rotary Wash
Standing Water Level: 2.40
Lab Tests:
SPT: 12
VS: 3

DESCRIPTION OF STRATA

0.00 2.00 2.00 Topsoil
2.00 8.00 6.00 Clayey silt
Sample ID: U-1
Sample Depth: 3.50
SPT Blows: 4, 7, 9
Run Length: 1.50
TCR %: 90
RQD %: 89

Termination Depth: 8.00
`

var _ = Describe("upload service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.UploadService
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		svc = service.NewUploadService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE from pending_uploads;")
	})

	Context("submit", func() {
		It("queues a parseable report as pending", func() {
			upload, err := svc.SubmitUpload(context.TODO(), "engineer", &api.SubmitUploadRequest{
				ProjectCode:   "ORR-P4",
				StructureCode: "CH12-400",
				ReportText:    sampleReport,
			})
			Expect(err).To(BeNil())
			Expect(upload.Status).To(Equal(model.UploadStatusPending))
			Expect(upload.UploadedBy).To(Equal("engineer"))
			Expect(upload.Payload.Data.Metadata.JobCode).To(Equal("ORR-2023-117"))
			Expect(upload.Payload.Data.Layers).To(HaveLen(2))
		})

		It("rejects an unparseable report and stores nothing", func() {
			_, err := svc.SubmitUpload(context.TODO(), "engineer", &api.SubmitUploadRequest{
				ProjectCode:   "ORR-P4",
				StructureCode: "CH12-400",
				ReportText:    "Project Name: No job code here\n",
			})
			Expect(err).To(BeAssignableToTypeOf(&service.ErrReportCorrupted{}))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) from pending_uploads;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})
	})

	Context("get and list", func() {
		It("returns a typed not found error for unknown uploads", func() {
			_, err := svc.GetUpload(context.TODO(), uuid.New())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrResourceNotFound{}))
		})

		It("filters the review queue by status", func() {
			_, err := svc.SubmitUpload(context.TODO(), "engineer", &api.SubmitUploadRequest{
				ProjectCode:   "ORR-P4",
				StructureCode: "CH12-400",
				ReportText:    sampleReport,
			})
			Expect(err).To(BeNil())

			pending, err := svc.ListUploads(context.TODO(), &service.UploadFilter{Status: model.UploadStatusPending})
			Expect(err).To(BeNil())
			Expect(pending).To(HaveLen(1))

			approved, err := svc.ListUploads(context.TODO(), &service.UploadFilter{Status: model.UploadStatusApproved})
			Expect(err).To(BeNil())
			Expect(approved).To(BeEmpty())
		})
	})
})
