package mail

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/Demigod345/privatefeedback-go/pkg/types"
	"github.com/pkg/errors"
)

// Renderer turns notification content plus its magic link into the two
// renderings the transport delivers.
type Renderer interface {
	Render(content types.NotificationContent, magicLink string) (text string, html string, err error)
}

type renderContext struct {
	ServiceID     string
	WalletAddress string
	MagicLink     string
}

const plainTextTemplate = `PrivateFeedback Invitation

Hello,

You've been invited to provide private feedback on a recent service interaction. Your insights are valuable and could earn you rewards!

Service ID: {{.ServiceID}}
Your Address: {{.WalletAddress}}

To submit your private feedback, please visit the following link:
{{.MagicLink}}

Your privacy is our priority. All feedback is kept strictly confidential.

Thank you for contributing to service improvement.
Best regards,
Team PrivateFeedback`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>PrivateFeedback Invitation</title>
</head>
<body style="margin: 0; padding: 0; background-color: #1a1a1a;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="background-color: #ffffff; border-radius: 8px; overflow: hidden; margin-top: 20px;">
<div style="padding: 40px;">
<h1 style="color: #1a1a1a; font-family: Arial, sans-serif; font-size: 24px; text-align: center;">PrivateFeedback Invitation</h1>
<p style="color: #2c3e50; font-family: Arial, sans-serif; font-size: 16px; line-height: 1.6;">You've been invited to provide private feedback on a recent service interaction.</p>
<div style="background-color: #f8fafc; border-left: 4px solid #3b82f6; padding: 15px; margin: 25px 0;">
<p style="color: #1a1a1a; font-family: Arial, sans-serif; font-size: 14px; margin: 0;">
Service ID: <strong>{{.ServiceID}}</strong><br>
Your Address: <strong>{{.WalletAddress}}</strong>
</p>
</div>
<div style="text-align: center; margin: 30px 0;">
<a href="{{.MagicLink}}" style="display: inline-block; background-color: #3b82f6; color: #ffffff; font-family: Arial, sans-serif; font-size: 16px; text-decoration: none; padding: 12px 32px; border-radius: 6px;">Submit Your Private Feedback</a>
</div>
<p style="color: #475569; font-family: Arial, sans-serif; font-size: 14px; text-align: center;">Your privacy is our priority. All feedback is kept strictly confidential.</p>
</div>
</div>
<div style="text-align: center; padding: 20px;">
<p style="color: #94a3b8; font-family: Arial, sans-serif; font-size: 14px; margin: 0;">
Thank you for contributing to service improvement.<br>
Best regards,<br>
Team PrivateFeedback
</p>
</div>
</div>
</body>
</html>`

// DefaultRenderer renders the invitation mail from a pair of built-in
// templates, parsed once at construction.
type DefaultRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

func NewDefaultRenderer() (*DefaultRenderer, error) {
	text, err := texttemplate.New("invitation-text").Parse(plainTextTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse plain text template")
	}
	html, err := htmltemplate.New("invitation-html").Parse(htmlTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html template")
	}
	return &DefaultRenderer{text: text, html: html}, nil
}

func (r *DefaultRenderer) Render(content types.NotificationContent, magicLink string) (string, string, error) {
	ctx := renderContext{
		ServiceID:     content.ServiceID,
		WalletAddress: content.RecipientAddress.Hex(),
		MagicLink:     magicLink,
	}

	var textBuf strings.Builder
	if err := r.text.Execute(&textBuf, ctx); err != nil {
		return "", "", errors.Wrap(err, "failed to render plain text body")
	}

	var htmlBuf strings.Builder
	if err := r.html.Execute(&htmlBuf, ctx); err != nil {
		return "", "", errors.Wrap(err, "failed to render html body")
	}

	return textBuf.String(), htmlBuf.String(), nil
}
