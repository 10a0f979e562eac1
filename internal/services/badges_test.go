package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/internal/services"
)

var _ = Describe("BadgeBoard", func() {
	var board *services.BadgeBoard

	BeforeEach(func() {
		board = services.NewBadgeBoard(nil)
	})

	// Given a new board
	// When we list the badges
	// Then every kind is not tested, in display order
	It("should start with untested badges", func() {
		// Act
		all := board.All()

		// Assert
		Expect(all).To(HaveLen(len(models.Kinds)))
		for i, badge := range all {
			Expect(badge.Kind).To(Equal(models.Kinds[i]))
			Expect(badge.State).To(Equal(models.BadgeStateNotTested))
			Expect(badge.Text).To(Equal("Not tested"))
		}
	})

	DescribeTable("interactive outcome",
		func(status models.TestStatus, state models.BadgeState, text string) {
			// Arrange
			Expect(board.BeginTest(models.KindUDP)).To(BeTrue())

			// Act
			board.CompleteTest(models.KindUDP, status)

			// Assert
			badge := board.Get(models.KindUDP)
			Expect(badge.State).To(Equal(state))
			Expect(badge.Text).To(Equal(text))
			Expect(badge.InFlight).To(BeFalse())
			Expect(badge.Auto).To(BeFalse())
		},
		Entry("success", models.TestStatusSuccess, models.BadgeStateSuccess, "Connection successful"),
		Entry("warning", models.TestStatusWarning, models.BadgeStateWarning, "Connection warning"),
		Entry("error", models.TestStatusError, models.BadgeStateError, "Connection failed"),
		Entry("timeout", models.TestStatusTimeout, models.BadgeStateError, "Connection failed"),
		Entry("unknown", models.TestStatusUnknown, models.BadgeStateUnknown, "Unknown status"),
	)

	DescribeTable("background outcome on a tested badge",
		func(status models.TestStatus, changed bool, text string) {
			// Arrange
			board.CompleteTest(models.KindTCP, models.TestStatusSuccess)

			// Act
			applied := board.ApplyBackground(models.KindTCP, status)

			// Assert
			Expect(applied).To(Equal(changed))
			Expect(board.Get(models.KindTCP).Text).To(Equal(text))
		},
		Entry("success", models.TestStatusSuccess, true, "Connected (auto)"),
		Entry("warning", models.TestStatusWarning, true, "Connection issues (auto)"),
		Entry("error", models.TestStatusError, true, "Disconnected (auto)"),
		Entry("timeout", models.TestStatusTimeout, true, "Disconnected (auto)"),
		Entry("unknown is skipped", models.TestStatusUnknown, false, "Connection successful"),
	)

	// Given a running interactive test
	// When a background result arrives
	// Then the badge keeps showing the running test
	It("should not override a running test", func() {
		// Arrange
		Expect(board.BeginTest(models.KindMQTT)).To(BeTrue())

		// Act
		applied := board.ApplyBackground(models.KindMQTT, models.TestStatusError)

		// Assert
		Expect(applied).To(BeFalse())
		Expect(board.Get(models.KindMQTT).State).To(Equal(models.BadgeStateTesting))
		Expect(board.BeginTest(models.KindMQTT)).To(BeFalse())
	})

	// Given an untested badge
	// When a background result arrives
	// Then the badge stays untested
	It("should not touch an untested badge", func() {
		// Act
		applied := board.ApplyBackground(models.KindElasticsearch, models.TestStatusSuccess)

		// Assert
		Expect(applied).To(BeFalse())
		Expect(board.Get(models.KindElasticsearch).State).To(Equal(models.BadgeStateNotTested))
	})
})
