package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	api "github.com/soilworks/borelog-registry/api/v1alpha1"
	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/docstore"
	"github.com/soilworks/borelog-registry/internal/service"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

// A rock core report without explicit percentages: TCR and RQD have to be
// derived from the recovered lengths, and the sample has no single depth so
// the point spans the layer.
const coreRunReport = `
Project Name: Metro Line 3 Viaduct
Job Code: ML3-2024-052
Borehole No: BH-12

DESCRIPTION OF STRATA

0.00 3.00 3.00 Weathered granite
Sample ID: C-1
Sample Type: Core
Run Length: 1.50
Total Core Length: 135
RQD Length: 120

Termination Depth: 3.00
`

var _ = Describe("materializer", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		svc    *service.ApprovalService
		up     *service.UploadService
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
		docs := docstore.New(docstore.NewMemoryStore())
		up = service.NewUploadService(s)
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

	It("derives core recovery percentages from recovered lengths", func() {
		upload, err := up.SubmitUpload(context.TODO(), "engineer", &api.SubmitUploadRequest{
			ProjectCode:   "ML3",
			StructureCode: "V-52",
			ReportText:    coreRunReport,
		})
		Expect(err).To(BeNil())

		decided, err := svc.Decide(context.TODO(), upload.ID, "reviewer", &api.DecideUploadRequest{
			Decision: api.DecisionApprove,
		})
		Expect(err).To(BeNil())

		borelog, err := s.Borelog().Get(context.TODO(), *decided.CreatedRecordID)
		Expect(err).To(BeNil())
		Expect(borelog.Layers).To(HaveLen(1))
		Expect(borelog.LabTestCount).To(Equal("0&0"))

		point := borelog.Layers[0].SamplePoint
		Expect(point).ToNot(BeNil())
		Expect(point.SampleType).To(Equal("Core"))
		Expect(point.DepthMode).To(Equal(model.DepthModeRange))
		// run length comes from the report, not the layer span
		Expect(*point.RunLength).To(BeNumerically("==", 1.5))
		// 135 cm recovered over a 1.5 m run
		Expect(*point.TCRPercent).To(BeNumerically("~", 90.0, 1e-9))
		// 120 cm of sound core over a 1.5 m run
		Expect(*point.RQDPercent).To(BeNumerically("~", 80.0, 1e-9))
		Expect(point.NValue).To(BeNil())
	})
})
