package mail

import (
	"context"
	"strings"

	"github.com/Demigod345/privatefeedback-go/pkg/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const invitationSubject = "Invitation to Provide Private Feedback - Rewards Available"

// Dispatcher sends the invitation mail for one flow. Each flow gets its own
// dispatcher because the two magic-link destinations are independent
// contracts with their own front ends.
type Dispatcher struct {
	logger    *zap.Logger
	linkBase  string
	renderer  Renderer
	transport Transport
}

func NewDispatcher(logger *zap.Logger, linkBase string, renderer Renderer, transport Transport) (*Dispatcher, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if linkBase == "" {
		return nil, errors.New("magic link base URL is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	return &Dispatcher{
		logger:    logger,
		linkBase:  strings.TrimRight(linkBase, "/"),
		renderer:  renderer,
		transport: transport,
	}, nil
}

// MagicLink joins the disclosure payload onto the link base as path segments.
func (d *Dispatcher) MagicLink(segments []string) string {
	return d.linkBase + "/" + strings.Join(segments, "/")
}

// Dispatch derives the messaging address, renders the invitation and hands it
// to the transport. A transport failure surfaces as DeliveryFailed and is not
// retried; by the time we are here the on-chain work is already done and the
// caller decides what a lost notification means.
func (d *Dispatcher) Dispatch(ctx context.Context, content types.NotificationContent) error {
	if len(content.DisclosureSegments) == 0 {
		return types.NewPipelineError(types.KindInvalidInput,
			errors.New("no disclosure payload"), "cannot build magic link")
	}

	to := MessagingAddress(content.RecipientAddress)
	link := d.MagicLink(content.DisclosureSegments)

	text, html, err := d.renderer.Render(content, link)
	if err != nil {
		return types.NewPipelineError(types.KindDeliveryFailed, err, "failed to render notification")
	}

	mail := &Mail{
		From:     d.transport.SenderAddress(),
		To:       to,
		Subject:  invitationSubject,
		TextBody: text,
		HTMLBody: html,
	}
	if err := d.transport.SendMail(ctx, mail); err != nil {
		return types.NewPipelineError(types.KindDeliveryFailed, err, "failed to deliver notification")
	}

	d.logger.Sugar().Infow("Dispatched notification",
		"to", to,
		"service_id", content.ServiceID,
	)
	return nil
}
