package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/pkg/helpers"
	"github.com/oksasatya/civic-reports/pkg/mailer"
)

// outcome is what the consumer does with a delivery.
type outcome int

const (
	ack outcome = iota
	drop
	requeue
)

type jobHandler struct {
	sender      mailer.Sender
	logger      *logrus.Logger
	sendTimeout time.Duration
}

// handle renders and sends one queued job. Jobs that can never succeed are
// dropped; transient send failures are requeued.
func (h *jobHandler) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(h.logger, "bad message", err, nil)
		return drop
	}

	subject, text, html, err := helpers.RenderJob(&job)
	if err != nil {
		helpers.LogError(h.logger, "render failed", err, logrus.Fields{"template": job.Template, "to": job.To})
		return drop
	}

	c, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()
	if err := h.sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(h.logger, "send failed", err, logrus.Fields{"to": job.To})
		return requeue
	}
	helpers.LogInfo(h.logger, "email sent", logrus.Fields{"template": job.Template, "to": job.To})
	return ack
}
