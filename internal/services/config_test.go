package services_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
	"github.com/vinforge/forgedfate/internal/store"
	"github.com/vinforge/forgedfate/internal/store/migrations"
	"github.com/vinforge/forgedfate/pkg/command"
	srvErrors "github.com/vinforge/forgedfate/pkg/errors"
	"github.com/vinforge/forgedfate/pkg/validator"
)

var _ = Describe("ConfigService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		st  *store.Store
		srv *services.ConfigService
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		err = migrations.Run(ctx, db)
		Expect(err).NotTo(HaveOccurred())

		st = store.NewStore(db)
		srv = services.NewConfigService(st.Settings(), command.NewBuilder())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("Load", func() {
		// Given nothing was ever saved
		// When we load the configurations
		// Then the defaults should be returned
		It("should return the defaults when nothing is persisted", func() {
			// Act
			configs := srv.Load(ctx)

			// Assert
			Expect(configs).To(Equal(models.DefaultConfigSet()))
		})

		// Given a saved set
		// When a new service loads it
		// Then it should get the same set back
		It("should return what was saved", func() {
			// Arrange
			configs := models.DefaultConfigSet()
			configs.TCP.Enabled = true
			configs.TCP.ServerHost = "10.0.0.5"
			configs.MQTT.Password = "s3cret"
			Expect(srv.Save(ctx, configs)).To(Succeed())

			// Act
			other := services.NewConfigService(st.Settings(), command.NewBuilder())
			loaded := other.Load(ctx)

			// Assert
			Expect(loaded).To(Equal(configs))
			Expect(other.Snapshot()).To(Equal(configs))
		})

		// Given a snapshot which only mentions some fields and has unknown keys
		// When we load it
		// Then missing fields keep their defaults and unknown keys are ignored
		It("should merge a partial snapshot onto the defaults", func() {
			// Arrange
			err := st.Settings().Save(ctx, services.ExportConfigsKey,
				[]byte(`{"udp":{"server_port":9000},"mqtt":{"extra":"x"},"ftp":{}}`))
			Expect(err).NotTo(HaveOccurred())

			// Act
			configs := srv.Load(ctx)

			// Assert
			expected := models.DefaultConfigSet()
			expected.UDP.ServerPort = 9000
			Expect(configs).To(Equal(expected))
		})

		// Given a snapshot which is not JSON
		// When we load it
		// Then the defaults should be returned without error
		It("should fall back to the defaults when the snapshot is corrupted", func() {
			// Arrange
			err := st.Settings().Save(ctx, services.ExportConfigsKey, []byte(`{not json`))
			Expect(err).NotTo(HaveOccurred())

			// Act
			configs := srv.Load(ctx)

			// Assert
			Expect(configs).To(Equal(models.DefaultConfigSet()))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			srv.Load(ctx)
		})

		// Given the default set
		// When we change the tcp host
		// Then the view should carry the new command line and the change should be persisted
		It("should persist the field and return the derived view", func() {
			// Act
			view, err := srv.Update(ctx, models.KindTCP, "server_host", "192.168.1.9")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Kind).To(Equal(models.KindTCP))
			Expect(view.Command).To(Equal("python kismet_realtime_export.py --export-type tcp --server-host 192.168.1.9 --server-port 8685 --data-format json --update-rate 5"))
			Expect(view.Validation.Errors).To(BeEmpty())

			data, err := st.Settings().Get(ctx, services.ExportConfigsKey)
			Expect(err).NotTo(HaveOccurred())
			var persisted models.ConfigSet
			Expect(json.Unmarshal(data, &persisted)).To(Succeed())
			Expect(persisted.TCP.ServerHost).To(Equal("192.168.1.9"))
		})

		// Given the default set
		// When we enable mqtt
		// Then the enabled flag should be set and other kinds untouched
		It("should accept the enabled flag", func() {
			// Act
			_, err := srv.Update(ctx, models.KindMQTT, "enabled", true)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(srv.Snapshot().MQTT.Enabled).To(BeTrue())
			Expect(srv.Snapshot().Enabled()).To(Equal([]models.DestinationKind{models.KindMQTT}))
		})

		// Given a port cleared by the operator
		// When we update it
		// Then the view should report the port error
		It("should return the validation of the new record", func() {
			// Act
			view, err := srv.Update(ctx, models.KindUDP, "server_port", 0)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Validation.Errors).To(ContainElement(validator.MsgPortRequired))
		})

		// Given a field name the record does not have
		// When we update it
		// Then an InvalidFieldError should be returned and nothing persisted
		It("should reject an unknown field", func() {
			// Act
			_, err := srv.Update(ctx, models.KindTCP, "hostname", "x")

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsInvalidFieldError(err)).To(BeTrue())
			_, err = st.Settings().Get(ctx, services.ExportConfigsKey)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given a value of the wrong type
		// When we update the field
		// Then an InvalidFieldError should be returned and the set unchanged
		It("should reject a value of the wrong type", func() {
			// Act
			_, err := srv.Update(ctx, models.KindMQTT, "broker_port", "not a port")

			// Assert
			Expect(srvErrors.IsInvalidFieldError(err)).To(BeTrue())
			Expect(srv.Snapshot()).To(Equal(models.DefaultConfigSet()))
		})

		// Given an unknown kind
		// When we update it
		// Then an InvalidKindError should be returned
		It("should reject an unknown kind", func() {
			// Act
			_, err := srv.Update(ctx, models.DestinationKind("ftp"), "enabled", true)

			// Assert
			Expect(srvErrors.IsInvalidKindError(err)).To(BeTrue())
		})

		// Given a store that fails to write
		// When we update a field
		// Then the error should be returned and the in-memory set unchanged
		It("should keep the current set when persisting fails", func() {
			// Arrange
			settings := newFakeSettings()
			settings.saveErr = errors.New("disk full")
			failing := services.NewConfigService(settings, command.NewBuilder())
			failing.Load(ctx)

			// Act
			_, err := failing.Update(ctx, models.KindTCP, "enabled", true)

			// Assert
			Expect(err).To(HaveOccurred())
			Expect(failing.Snapshot().TCP.Enabled).To(BeFalse())
		})
	})

	Describe("Replace", func() {
		// Given the default elasticsearch record
		// When we replace a subset of its fields
		// Then only those fields should change
		It("should merge the partial record", func() {
			// Arrange
			srv.Load(ctx)

			// Act
			view, err := srv.Replace(ctx, models.KindElasticsearch, []byte(`{"username":"elastic","password":"changeme","offline_mode":true}`))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Command).To(Equal(`python kismet_elasticsearch_export.py --es-hosts "http://localhost:9200" --es-username elastic --es-password changeme --index-prefix kismet --offline`))
			Expect(srv.Snapshot().Elasticsearch.Hosts).To(Equal("http://localhost:9200"))
		})

		// Given a partial record with an unknown key
		// When we replace
		// Then it should be rejected
		It("should reject unknown keys", func() {
			// Act
			_, err := srv.Replace(ctx, models.KindTCP, []byte(`{"server_host":"a","colour":"red"}`))

			// Assert
			Expect(srvErrors.IsInvalidFieldError(err)).To(BeTrue())
			Expect(srv.Snapshot().TCP.ServerHost).To(Equal("172.18.18.20"))
		})
	})

	Describe("Views", func() {
		// Given the default set
		// When we list the views
		// Then every kind should be present in display order
		It("should return one view per kind", func() {
			// Act
			views, err := srv.Views()

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(views).To(HaveLen(4))
			for i, kind := range models.Kinds {
				Expect(views[i].Kind).To(Equal(kind))
				Expect(views[i].Command).NotTo(BeEmpty())
			}
		})

		// Given the default mqtt record
		// When we ask for its command and validation
		// Then they should match the builder and validator
		It("should expose the command and the validation", func() {
			// Act
			cmd, err := srv.Command(models.KindMQTT)
			Expect(err).NotTo(HaveOccurred())
			validation, err := srv.Validate(models.KindMQTT)
			Expect(err).NotTo(HaveOccurred())

			// Assert
			Expect(cmd).To(Equal("python kismet_realtime_export.py --export-type mqtt --mqtt-host localhost --mqtt-port 1883 --mqtt-topic-prefix kismet"))
			Expect(validation.Errors).To(BeEmpty())
			Expect(validation.Warnings).To(BeEmpty())
		})
	})
})
