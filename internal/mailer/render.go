package mailer

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/wryteup/jobboard-be/internal/notify"
)

var ErrUnknownTemplate = errors.New("unknown notification template")

var publishedTmpl = template.Must(template.New(notify.TemplateJobPublished).Parse(
	`Hi {{.RecipientName}},

Good news: your job "{{.JobTitle}}" has been reviewed and published.
It is now visible to writers at /profile/{{.JobUUID}}.

The Wryteup Team
`))

var declinedTmpl = template.Must(template.New(notify.TemplateJobDeclined).Parse(
	`Hi {{.RecipientName}},

Unfortunately your job "{{.JobTitle}}" was declined during review.
{{- if .Reason}}

Reason: {{.Reason}}
{{- end}}

You can edit the posting and resubmit it for review at any time.

The Wryteup Team
`))

// RenderEmail produces the subject and body for a notification message.
// An unrecognized template is a permanent failure; the caller should drop
// the message rather than requeue it.
func RenderEmail(msg notify.Message) (subject, body string, err error) {
	var tmpl *template.Template

	switch msg.Template {
	case notify.TemplateJobPublished:
		subject = fmt.Sprintf("Your job %q is now live", msg.JobTitle)
		tmpl = publishedTmpl
	case notify.TemplateJobDeclined:
		subject = fmt.Sprintf("Your job %q was declined", msg.JobTitle)
		tmpl = declinedTmpl
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, msg.Template)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, msg); err != nil {
		return "", "", fmt.Errorf("failed to render %s template: %w", msg.Template, err)
	}

	return subject, sb.String(), nil
}
