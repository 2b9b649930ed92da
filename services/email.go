package services

import (
	"bytes"
	"case_team_app_go/config"
	"case_team_app_go/models"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Notifier tells lawyers about changes that need their attention.
// Notifications are fire-and-forget and never fail the operation that
// triggered them.
type Notifier interface {
	AssignmentProposed(lawyer *models.User, c *models.LegalCase, a *models.CaseAssignment)
	TimeEntryRejected(lawyer *models.User, c *models.LegalCase, entry *models.TimeEntry)
}

// EmailNotifier delivers notifications by email
type EmailNotifier struct {
	cfg *config.Config
}

// NewEmailNotifier creates a notifier sending through Resend
func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

// AssignmentProposed emails a lawyer who was proposed for a case team
func (n *EmailNotifier) AssignmentProposed(lawyer *models.User, c *models.LegalCase, a *models.CaseAssignment) {
	if lawyer == nil || lawyer.Email == "" {
		return
	}
	SendEmailAsync(n.cfg, BuildAssignmentProposedEmail(lawyer.Email, lawyer.Name, c.CaseNumber, c.Title, a.Role))
}

// TimeEntryRejected emails a lawyer whose time entry was sent back
func (n *EmailNotifier) TimeEntryRejected(lawyer *models.User, c *models.LegalCase, entry *models.TimeEntry) {
	if lawyer == nil || lawyer.Email == "" {
		return
	}
	reason := ""
	if entry.RejectionReason != nil {
		reason = *entry.RejectionReason
	}
	SendEmailAsync(n.cfg, BuildTimeEntryRejectedEmail(
		lawyer.Email, lawyer.Name, c.CaseNumber, entry.WorkDate.Format("2006-01-02"), entry.Hours, reason,
	))
}

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("emails").Parse(`
{{define "assignment_proposed"}}<p>Hello {{.LawyerName}},</p>
<p>You have been proposed for the team of case <strong>{{.CaseNumber}}</strong> ({{.CaseTitle}}){{if .Role}} as {{.Role}}{{end}}.</p>
<p>The assignment stays pending until it is activated.</p>{{end}}
{{define "time_entry_rejected"}}<p>Hello {{.LawyerName}},</p>
<p>Your time entry of {{printf "%.2f" .Hours}}h on {{.WorkDate}} for case <strong>{{.CaseNumber}}</strong> was rejected.</p>
<p>Reason: {{.Reason}}</p>
<p>Reopen the entry to correct and resubmit it.</p>{{end}}
`))

	textTemplates = texttemplate.Must(texttemplate.New("emails").Parse(`
{{define "assignment_proposed"}}Hello {{.LawyerName}},

You have been proposed for the team of case {{.CaseNumber}} ({{.CaseTitle}}){{if .Role}} as {{.Role}}{{end}}.
The assignment stays pending until it is activated.
{{end}}
{{define "time_entry_rejected"}}Hello {{.LawyerName}},

Your time entry of {{printf "%.2f" .Hours}}h on {{.WorkDate}} for case {{.CaseNumber}} was rejected.
Reason: {{.Reason}}

Reopen the entry to correct and resubmit it.
{{end}}
`))
)

// renderEmail executes the named html and text templates
func renderEmail(name string, data interface{}) (string, string, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&htmlBuf, name, data); err != nil {
		return "", "", fmt.Errorf("failed to execute html template %s: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&textBuf, name, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text template %s: %w", name, err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

func buildEmail(name, to, subject string, data interface{}) *Email {
	htmlBody, textBody, err := renderEmail(name, data)
	if err != nil {
		log.Printf("[EMAIL] Error rendering %s: %v", name, err)
	}
	return &Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// AssignmentProposedEmailData contains data for the assignment email
type AssignmentProposedEmailData struct {
	LawyerName string
	CaseNumber string
	CaseTitle  string
	Role       string
}

// BuildAssignmentProposedEmail creates the notification for a new PENDING assignment
func BuildAssignmentProposedEmail(lawyerEmail, lawyerName, caseNumber, caseTitle, role string) *Email {
	data := AssignmentProposedEmailData{
		LawyerName: lawyerName,
		CaseNumber: caseNumber,
		CaseTitle:  caseTitle,
		Role:       role,
	}
	return buildEmail("assignment_proposed", lawyerEmail, fmt.Sprintf("You were proposed for case %s", caseNumber), data)
}

// TimeEntryRejectedEmailData contains data for the rejection email
type TimeEntryRejectedEmailData struct {
	LawyerName string
	CaseNumber string
	WorkDate   string
	Hours      float64
	Reason     string
}

// BuildTimeEntryRejectedEmail creates the notification for a rejected time entry
func BuildTimeEntryRejectedEmail(lawyerEmail, lawyerName, caseNumber, workDate string, hours float64, reason string) *Email {
	data := TimeEntryRejectedEmailData{
		LawyerName: lawyerName,
		CaseNumber: caseNumber,
		WorkDate:   workDate,
		Hours:      hours,
		Reason:     reason,
	}
	return buildEmail("time_entry_rejected", lawyerEmail, fmt.Sprintf("Time entry rejected on case %s", caseNumber), data)
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("[EMAIL] Sent via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n[EMAIL] Development mode, not sent\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// SendEmailAsync sends an email asynchronously using a goroutine
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Copy so the caller may reuse the message
	emailCopy := &Email{
		To:       append([]string{}, email.To...),
		Subject:  email.Subject,
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[EMAIL] Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}
