package store_test

import (
	"context"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/soilworks/borelog-registry/internal/config"
	"github.com/soilworks/borelog-registry/internal/store"
	"github.com/soilworks/borelog-registry/internal/store/model"
)

var _ = Describe("borehole store", Ordered, func() {
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
		gormdb.Exec("DELETE from boreholes;")
	})

	newBorehole := func(project, structure, number string) *model.Borehole {
		return &model.Borehole{
			ID:             uuid.New(),
			ProjectCode:    project,
			StructureCode:  structure,
			BoreholeNumber: number,
			JobCode:        "JOB-7",
		}
	}

	Context("list", func() {
		It("lists all boreholes without filter", func() {
			_, err := s.Borehole().Create(context.TODO(), newBorehole("P1", "S1", "BH-1"))
			Expect(err).To(BeNil())
			_, err = s.Borehole().Create(context.TODO(), newBorehole("P2", "S1", "BH-1"))
			Expect(err).To(BeNil())

			boreholes, err := s.Borehole().List(context.TODO(), store.NewBoreholeQueryFilter())
			Expect(err).To(BeNil())
			Expect(boreholes).To(HaveLen(2))
		})

		It("filters by project and structure", func() {
			_, err := s.Borehole().Create(context.TODO(), newBorehole("P1", "S1", "BH-1"))
			Expect(err).To(BeNil())
			_, err = s.Borehole().Create(context.TODO(), newBorehole("P1", "S2", "BH-1"))
			Expect(err).To(BeNil())
			_, err = s.Borehole().Create(context.TODO(), newBorehole("P2", "S1", "BH-1"))
			Expect(err).To(BeNil())

			boreholes, err := s.Borehole().List(context.TODO(),
				store.NewBoreholeQueryFilter().ByProject("P1").ByStructure("S2"))
			Expect(err).To(BeNil())
			Expect(boreholes).To(HaveLen(1))
			Expect(boreholes[0].StructureCode).To(Equal("S2"))
		})

		It("filters by borehole number", func() {
			_, err := s.Borehole().Create(context.TODO(), newBorehole("P1", "S1", "BH-1"))
			Expect(err).To(BeNil())
			_, err = s.Borehole().Create(context.TODO(), newBorehole("P1", "S1", "BH-2"))
			Expect(err).To(BeNil())

			boreholes, err := s.Borehole().List(context.TODO(),
				store.NewBoreholeQueryFilter().ByProject("P1").ByBoreholeNumber("BH-2"))
			Expect(err).To(BeNil())
			Expect(boreholes).To(HaveLen(1))
			Expect(boreholes[0].BoreholeNumber).To(Equal("BH-2"))
		})
	})

	Context("get", func() {
		It("returns the borehole by id", func() {
			created, err := s.Borehole().Create(context.TODO(), newBorehole("P1", "S1", "BH-1"))
			Expect(err).To(BeNil())

			found, err := s.Borehole().Get(context.TODO(), created.ID)
			Expect(err).To(BeNil())
			Expect(found.ProjectCode).To(Equal("P1"))
		})

		It("returns ErrRecordNotFound for an unknown id", func() {
			_, err := s.Borehole().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
