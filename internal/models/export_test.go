package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
)

var _ = Describe("ConfigSet", func() {
	Context("defaults", func() {
		It("should start with every kind disabled", func() {
			set := models.DefaultConfigSet()

			Expect(set.Enabled()).To(BeEmpty())
			Expect(set.TCP.ServerHost).To(Equal("172.18.18.20"))
			Expect(set.UDP.ServerPort).To(Equal(8685))
			Expect(set.Elasticsearch.Hosts).To(Equal("http://localhost:9200"))
			Expect(set.MQTT.BrokerPort).To(Equal(1883))
		})
	})

	Context("Merge", func() {
		// Given the default set
		// When a partial record is merged onto mqtt
		// Then only the given keys change
		It("should keep keys that are not in the document", func() {
			// Arrange
			set := models.DefaultConfigSet()

			// Act
			err := set.Merge(models.KindMQTT, []byte(`{"enabled":true,"broker_port":8883}`))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(set.MQTT.Enabled).To(BeTrue())
			Expect(set.MQTT.BrokerPort).To(Equal(8883))
			Expect(set.MQTT.TopicPrefix).To(Equal("kismet"))
			Expect(set.Enabled()).To(Equal([]models.DestinationKind{models.KindMQTT}))
		})

		It("should reject unknown keys", func() {
			set := models.DefaultConfigSet()

			err := set.Merge(models.KindTCP, []byte(`{"colour":"red"}`))

			Expect(err).To(HaveOccurred())
		})

		It("should reject values of the wrong type", func() {
			set := models.DefaultConfigSet()

			err := set.Merge(models.KindUDP, []byte(`{"server_port":"eighty"}`))

			Expect(err).To(HaveOccurred())
		})
	})

	Context("Get", func() {
		It("should return the record of each kind", func() {
			set := models.DefaultConfigSet()

			for _, kind := range models.Kinds {
				cfg, err := set.Get(kind)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Fields()).NotTo(BeEmpty())
			}

			_, err := set.Get("ftp")
			Expect(err).To(HaveOccurred())
		})

		It("should know the field names of each kind", func() {
			set := models.DefaultConfigSet()

			Expect(set.HasField(models.KindElasticsearch, "index_prefix")).To(BeTrue())
			Expect(set.HasField(models.KindElasticsearch, "enabled")).To(BeTrue())
			Expect(set.HasField(models.KindTCP, "index_prefix")).To(BeFalse())
		})
	})

	It("should parse only the four kinds", func() {
		kind, err := models.ParseDestinationKind("elasticsearch")
		Expect(err).NotTo(HaveOccurred())
		Expect(kind).To(Equal(models.KindElasticsearch))

		_, err = models.ParseDestinationKind("TCP")
		Expect(err).To(HaveOccurred())
	})

	It("should map unknown remote statuses", func() {
		Expect(models.ParseTestStatus("timeout")).To(Equal(models.TestStatusTimeout))
		Expect(models.ParseTestStatus("degraded")).To(Equal(models.TestStatusUnknown))
	})
})
