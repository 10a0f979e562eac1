package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/store"
	"github.com/vinforge/forgedfate/internal/store/migrations"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
)

var _ = Describe("SettingsStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("Get", func() {
		// Given an empty settings store
		// When we get a key
		// Then it should return ResourceNotFoundError
		It("should return ResourceNotFoundError when the key is missing", func() {
			// Act
			_, err := s.Settings().Get(ctx, "forgedfate.api.export_configs")

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should return the saved value", func() {
			// Arrange
			err := s.Settings().Save(ctx, "k", []byte(`{"a":1}`))
			Expect(err).NotTo(HaveOccurred())

			// Act
			value, err := s.Settings().Get(ctx, "k")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(string(value)).To(Equal(`{"a":1}`))
		})
	})

	Context("Save", func() {
		// Given a key saved once
		// When we save it again
		// Then the value is replaced and only one row exists
		It("should upsert", func() {
			// Arrange
			Expect(s.Settings().Save(ctx, "k", []byte("first"))).To(Succeed())

			// Act
			err := s.Settings().Save(ctx, "k", []byte("second"))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			value, err := s.Settings().Get(ctx, "k")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(value)).To(Equal("second"))

			var count int
			Expect(db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&count)).To(Succeed())
			Expect(count).To(Equal(1))
		})
	})

	Context("Delete", func() {
		It("should remove the key and ignore missing keys", func() {
			Expect(s.Settings().Save(ctx, "k", []byte("v"))).To(Succeed())

			Expect(s.Settings().Delete(ctx, "k")).To(Succeed())
			Expect(s.Settings().Delete(ctx, "k")).To(Succeed())

			_, err := s.Settings().Get(ctx, "k")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})
})
