package notify_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vinforge/forgedfate/internal/models"
	"github.com/vinforge/forgedfate/pkg/notify"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, models.Event) error {
	return errors.New("broker down")
}

var _ = Describe("Hub", func() {
	var (
		hub *notify.Hub
		ctx context.Context
	)

	BeforeEach(func() {
		hub = notify.NewHub()
		ctx = context.Background()
	})

	AfterEach(func() {
		hub.Close()
	})

	// Given two subscribers
	// When an event is published
	// Then both receive it
	It("should deliver events to every subscriber", func() {
		// Arrange
		first, releaseFirst := hub.Subscribe()
		defer releaseFirst()
		second, releaseSecond := hub.Subscribe()
		defer releaseSecond()

		// Act
		err := hub.Publish(ctx, models.Event{Type: models.EventBadge, Kind: models.KindTCP, Timestamp: time.Now()})

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Eventually(first).Should(Receive(HaveField("Kind", models.KindTCP)))
		Eventually(second).Should(Receive(HaveField("Type", models.EventBadge)))
	})

	It("should close the channel on release", func() {
		events, release := hub.Subscribe()
		Expect(hub.Subscribers()).To(Equal(1))

		release()
		release()

		Eventually(events).Should(BeClosed())
		Expect(hub.Subscribers()).To(Equal(0))
	})

	It("should not block on a slow subscriber", func() {
		// Arrange
		_, release := hub.Subscribe()
		defer release()

		// Act
		done := make(chan struct{})
		go func() {
			for range 100 {
				_ = hub.Publish(ctx, models.Event{Type: models.EventResult})
			}
			close(done)
		}()

		// Assert
		Eventually(done, time.Second).Should(BeClosed())
	})

	It("should close subscribers when the hub closes", func() {
		events, _ := hub.Subscribe()

		hub.Close()

		Eventually(events).Should(BeClosed())
		late, _ := hub.Subscribe()
		Eventually(late).Should(BeClosed())
	})
})

var _ = Describe("Multi", func() {
	It("should publish to every publisher and join errors", func() {
		// Arrange
		hub := notify.NewHub()
		defer hub.Close()
		events, release := hub.Subscribe()
		defer release()
		multi := notify.Multi{failingPublisher{}, hub, nil}

		// Act
		err := multi.Publish(context.Background(), models.Event{Type: models.EventMonitor})

		// Assert
		Expect(err).To(MatchError(ContainSubstring("broker down")))
		Eventually(events).Should(Receive())
	})
})

var _ = Describe("RedisPublisher", func() {
	It("should fail fast when redis is unreachable", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := notify.NewRedisPublisher(ctx, "127.0.0.1:1", "forgedfate")

		Expect(err).To(HaveOccurred())
	})
})
