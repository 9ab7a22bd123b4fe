package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/piresc/payrecon/internal/pkg/models"
)

type mailTemplate struct {
	subject string
	body    *template.Template
}

// templates are parsed once at startup; a parse error is a programming error
var templates = map[models.NotificationKind]mailTemplate{
	models.NotificationReceipt: {
		subject: "Payment receipt",
		body:    template.Must(template.New("receipt").Parse(receiptTemplate)),
	},
	models.NotificationFailure: {
		subject: "Payment was not completed",
		body:    template.Must(template.New("failure").Parse(failureTemplate)),
	},
	models.NotificationGiftInvite: {
		subject: "You have received a gift subscription",
		body:    template.Must(template.New("gift_invite").Parse(giftInviteTemplate)),
	},
}

type templateData struct {
	Job       models.NotificationJob
	Amount    string
	ClaimURL  string
	ExpiresOn string
}

func render(kind models.NotificationKind, data templateData) (string, string, error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}

	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render template: %w", err)
	}
	return tpl.subject, buf.String(), nil
}

const (
	receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Payment receipt</title>
</head>
<body>
    <h1>Thank you for your payment</h1>
    <p>We received {{.Amount}} {{.Job.Currency}} for {{.Job.Purpose}}.</p>
    {{if .Job.Plan}}<p>Plan: {{.Job.Plan}}</p>{{end}}
    <p>Reference: {{.Job.TransactionID}}</p>
</body>
</html>`

	failureTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Payment was not completed</title>
</head>
<body>
    <h1>Your payment was not completed</h1>
    <p>The payment of {{.Amount}} {{.Job.Currency}} ended with status {{.Job.Status}}.</p>
    {{if .Job.Reason}}<p>Reason: {{.Job.Reason}}</p>{{end}}
    <p>No charge was applied. You can start a new checkout at any time.</p>
    <p>Reference: {{.Job.TransactionID}}</p>
</body>
</html>`

	giftInviteTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>You have received a gift subscription</title>
</head>
<body>
    <h1>Someone sent you a {{.Job.Plan}} subscription</h1>
    {{if .Job.Message}}<blockquote>{{.Job.Message}}</blockquote>{{end}}
    <p>
        <a href="{{.ClaimURL}}" style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Claim your gift</a>
    </p>
    {{if .ExpiresOn}}<p>The invitation is valid until {{.ExpiresOn}}.</p>{{end}}
</body>
</html>`
)
