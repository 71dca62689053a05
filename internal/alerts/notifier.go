// FilePath: internal/alerts/notifier.go
package alerts

import (
	"context"
	"encoding/json"

	nuts "github.com/vaudience/go-nuts"

	"github.com/campuscompass/parkhub/internal/models"
)

// Notifier is the platform notification dispatcher boundary. Delivery is
// fire-and-forget; failures are logged, never surfaced.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, n models.Notification) error
}

// LogNotifier writes notifications to the service log. It is the default
// dispatcher and the degradation floor for every other one.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed dispatcher.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (n *LogNotifier) Schedule(ctx context.Context, notification models.Notification) error {
	nuts.L.Infof("[Notifier] (%s) %s: %s [lot %s]",
		notification.Kind, notification.Title, notification.Body, notification.LotID)
	return nil
}

// Publisher is the pub/sub capability of the remote store.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// PubSubNotifier forwards notifications to a remote pub/sub topic so
// subscribed clients can present them, echoing through a next dispatcher.
// Publish failures degrade silently to the next dispatcher alone.
type PubSubNotifier struct {
	publisher Publisher
	topic     string
	next      Notifier
}

// NewPubSubNotifier wraps next with remote pub/sub delivery on topic.
func NewPubSubNotifier(publisher Publisher, topic string, next Notifier) *PubSubNotifier {
	return &PubSubNotifier{
		publisher: publisher,
		topic:     topic,
		next:      next,
	}
}

func (n *PubSubNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return n.next.RequestPermission(ctx)
}

func (n *PubSubNotifier) Schedule(ctx context.Context, notification models.Notification) error {
	if err := n.next.Schedule(ctx, notification); err != nil {
		return err
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		nuts.L.Warnf("[Notifier] Failed to encode notification for topic %s: %v", n.topic, err)
		return nil
	}
	if err := n.publisher.Publish(ctx, n.topic, payload); err != nil {
		nuts.L.Warnf("[Notifier] Failed to publish notification to %s: %v", n.topic, err)
	}
	return nil
}
