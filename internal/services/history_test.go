package services_test

import (
	"context"
	"database/sql"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
	"github.com/vinforge/forgedfate/internal/store"
	"github.com/vinforge/forgedfate/internal/store/migrations"
)

var _ = Describe("HistoryService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		st  *store.Store
		srv *services.HistoryService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		st = store.NewStore(db)
		srv = services.NewHistoryService(st)

		now := time.Now()
		for i, r := range []models.TestResult{
			{Kind: models.KindTCP, Mode: models.ProbeModeInteractive, Status: models.TestStatusSuccess, Timestamp: now.Add(-3 * time.Minute)},
			{Kind: models.KindTCP, Mode: models.ProbeModeSilent, Status: models.TestStatusError, Timestamp: now.Add(-2 * time.Minute)},
			{Kind: models.KindMQTT, Mode: models.ProbeModeSilent, Status: models.TestStatusSuccess, Timestamp: now.Add(-1 * time.Minute)},
			{Kind: models.KindUDP, Mode: models.ProbeModeSilent, Status: models.TestStatusTimeout, Timestamp: now.Add(-48 * time.Hour)},
		} {
			Expect(st.Results().Insert(ctx, r)).To(Succeed(), "result %d", i)
		}
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	// Given four recorded results
	// When we list them filtered by kind
	// Then only that kind is returned, newest first
	It("should filter by kind", func() {
		// Act
		results, total, err := srv.List(ctx, services.HistoryParams{Kinds: []models.DestinationKind{models.KindTCP}})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(2))
		Expect(results).To(HaveLen(2))
		Expect(results[0].Status).To(Equal(models.TestStatusError))
		Expect(results[1].Status).To(Equal(models.TestStatusSuccess))
	})

	// Given four recorded results
	// When we list with a limit
	// Then the total still counts every match
	It("should apply the limit", func() {
		// Act
		results, total, err := srv.List(ctx, services.HistoryParams{Limit: 1})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(4))
		Expect(results).To(HaveLen(1))
		Expect(results[0].Kind).To(Equal(models.KindMQTT))
	})

	// Given a result older than a day
	// When we prune with a one day retention
	// Then only that result is removed
	It("should prune old results", func() {
		// Act
		n, err := srv.Prune(ctx, 24*time.Hour)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
		_, total, err := srv.List(ctx, services.HistoryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3))
	})

	// Given results recorded for three kinds
	// When we ask for the latest result of each kind
	// Then the newest one is returned and kinds without results are absent
	It("should return the latest result per kind", func() {
		// Act
		latest, err := srv.Latest(ctx)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(latest).To(HaveLen(3))
		Expect(latest).NotTo(HaveKey(models.KindElasticsearch))
		Expect(latest[models.KindTCP].Status).To(Equal(models.TestStatusError))
		Expect(latest[models.KindUDP].Status).To(Equal(models.TestStatusTimeout))
	})
})
