package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/civic-reports/pkg/mailer"
	mailtpl "github.com/oksasatya/civic-reports/pkg/mailer/templates"
)

// ErrEmptyEmail is returned for jobs that carry neither a template nor a body.
var ErrEmptyEmail = errors.New("email job has no template and no body")

func SubjectFor(job *mailer.EmailJob) string {
	if s := strings.TrimSpace(job.Subject); s != "" {
		return s
	}
	switch strings.ToLower(job.Template) {
	case mailtpl.Welcome:
		return "Welcome to CivicConnect"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// RenderJob produces the final subject, text and html for a queued job.
// Template jobs are rendered from the embedded templates; raw jobs pass
// through with a fallback subject.
func RenderJob(job *mailer.EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	if job.Template != "" {
		name := strings.ToLower(job.Template)
		if !mailtpl.Known(name) {
			return "", "", "", fmt.Errorf("unknown template %q", job.Template)
		}
		EnsureRecipientAndEmail(job)
		subject, text, html, err = mailtpl.Render(name, job.Data)
		if err != nil {
			return "", "", "", err
		}
		if s := strings.TrimSpace(job.Subject); s != "" {
			subject = s
		}
		return subject, text, html, nil
	}
	if job.Text == "" && job.HTML == "" {
		return "", "", "", ErrEmptyEmail
	}
	return SubjectFor(job), job.Text, job.HTML, nil
}
