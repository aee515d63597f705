package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Subjects for extraction lifecycle events
const (
	SubjectExtractionStarted   = "catalog.extraction.started"
	SubjectExtractionCompleted = "catalog.extraction.completed"
	SubjectExtractionFailed    = "catalog.extraction.failed"
)

// ExtractionEvent is the payload published on extraction state changes
type ExtractionEvent struct {
	ManufacturerID   string    `json:"manufacturerId"`
	ManufacturerName string    `json:"manufacturerName"`
	Website          string    `json:"website"`
	ExecutionID      string    `json:"pipelineExecutionId,omitempty"`
	ProductCount     int       `json:"productCount,omitempty"`
	Error            string    `json:"error,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Publisher publishes extraction lifecycle events to NATS. A nil Publisher or
// one constructed without a NATS URL is a no-op, so event publishing never
// blocks the workflow.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Logger
}

// NewPublisher connects to NATS. Returns a no-op publisher when url is empty.
func NewPublisher(url string, logger *logrus.Logger) *Publisher {
	if url == "" {
		logger.Info("NATS_URL not set, event publishing disabled")
		return &Publisher{logger: logger}
	}

	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		logger.WithError(err).Warn("Failed to connect to NATS, event publishing disabled")
		return &Publisher{logger: logger}
	}

	logger.WithField("url", url).Info("Connected to NATS")
	return &Publisher{conn: conn, logger: logger}
}

// Publish sends one event. Failures are logged, never returned: events are
// advisory and must not fail the triggering request.
func (p *Publisher) Publish(subject string, event ExtractionEvent) {
	if p == nil || p.conn == nil {
		return
	}
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to publish event")
		return
	}
	p.logger.WithFields(logrus.Fields{
		"subject":         subject,
		"manufacturer_id": event.ManufacturerID,
	}).Debug("Published extraction event")
}

// Close drains the connection
func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
