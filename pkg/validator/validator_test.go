package validator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/pkg/validator"
)

var _ = Describe("Validate", func() {
	Context("tcp and udp", func() {
		It("should accept the default record", func() {
			result, err := validator.Validate(models.KindTCP, models.DefaultConfigSet().TCP)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Warnings).To(BeEmpty())
			Expect(result.HasErrors()).To(BeFalse())
		})

		// Given a tcp record on port 80
		// When we validate it
		// Then it is usable but warns about privileges
		It("should warn about privileged ports", func() {
			// Arrange
			cfg := models.DefaultConfigSet().TCP
			cfg.ServerPort = 80

			// Act
			result, err := validator.Validate(models.KindTCP, cfg)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Warnings).To(Equal([]string{validator.MsgPrivilegedPort}))
		})

		DescribeTable("should reject invalid ports",
			func(port int) {
				cfg := models.DefaultConfigSet().UDP
				cfg.ServerPort = port

				result, err := validator.Validate(models.KindUDP, cfg)

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Errors).To(ContainElement(validator.MsgPortRequired))
				Expect(result.Warnings).To(BeEmpty())
			},
			Entry("zero", 0),
			Entry("negative", -1),
			Entry("above range", 70000),
		)

		It("should require a host", func() {
			cfg := models.DefaultConfigSet().TCP
			cfg.ServerHost = "   "

			result, _ := validator.Validate(models.KindTCP, cfg)

			Expect(result.Errors).To(Equal([]string{validator.MsgServerHostRequired}))
		})

		It("should reject unknown data formats", func() {
			cfg := models.DefaultConfigSet().TCP
			cfg.DataFormat = "xml"

			result, _ := validator.Validate(models.KindTCP, cfg)

			Expect(result.Errors).To(Equal([]string{validator.MsgDataFormat}))
		})
	})

	Context("elasticsearch", func() {
		// Given a url without scheme
		// When we validate it
		// Then there is exactly one warning and no error
		It("should warn when the scheme is missing", func() {
			// Arrange
			cfg := models.DefaultConfigSet().Elasticsearch
			cfg.Hosts = "localhost:9200"

			// Act
			result, err := validator.Validate(models.KindElasticsearch, cfg)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Warnings).To(Equal([]string{validator.MsgElasticsearchScheme}))
		})

		It("should require a url and not warn about its scheme", func() {
			cfg := models.DefaultConfigSet().Elasticsearch
			cfg.Hosts = ""

			result, _ := validator.Validate(models.KindElasticsearch, cfg)

			Expect(result.Errors).To(Equal([]string{validator.MsgElasticsearchURL}))
			Expect(result.Warnings).To(BeEmpty())
		})

		It("should accept https", func() {
			cfg := models.DefaultConfigSet().Elasticsearch
			cfg.Hosts = "https://es.example.org:9243"

			result, _ := validator.Validate(models.KindElasticsearch, cfg)

			Expect(result.Errors).To(BeEmpty())
			Expect(result.Warnings).To(BeEmpty())
		})
	})

	Context("mqtt", func() {
		// Given a broker on a non standard port
		// When we validate it
		// Then it warns without any error
		It("should warn about non standard ports", func() {
			// Arrange
			cfg := models.DefaultConfigSet().MQTT
			cfg.BrokerPort = 9999

			// Act
			result, err := validator.Validate(models.KindMQTT, cfg)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Warnings).To(Equal([]string{validator.MsgNonStandardMQTTPorts}))
		})

		It("should accept the ssl port", func() {
			cfg := models.DefaultConfigSet().MQTT
			cfg.BrokerPort = 8883

			result, _ := validator.Validate(models.KindMQTT, cfg)

			Expect(result.Warnings).To(BeEmpty())
		})

		It("should report both a missing host and a bad port", func() {
			cfg := models.DefaultConfigSet().MQTT
			cfg.BrokerHost = ""
			cfg.BrokerPort = 0

			result, _ := validator.Validate(models.KindMQTT, cfg)

			Expect(result.Errors).To(Equal([]string{validator.MsgBrokerHostRequired, validator.MsgPortRequired}))
			Expect(result.Warnings).To(BeEmpty())
		})
	})

	It("should fail when the record does not match the kind", func() {
		_, err := validator.Validate(models.KindElasticsearch, models.DefaultConfigSet().MQTT)
		Expect(err).To(HaveOccurred())
	})
})
