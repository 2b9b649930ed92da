package services

import (
	"case_team_app_go/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAssignmentProposedEmail(t *testing.T) {
	email := BuildAssignmentProposedEmail("ana@firm.test", "Ana", "CASE-2026-00001", "Acme v. Globex", "Lead counsel")

	assert.Equal(t, []string{"ana@firm.test"}, email.To)
	assert.Contains(t, email.Subject, "CASE-2026-00001")
	assert.Contains(t, email.HTMLBody, "Hello Ana")
	assert.Contains(t, email.HTMLBody, "<strong>CASE-2026-00001</strong>")
	assert.Contains(t, email.TextBody, "as Lead counsel")
}

func TestBuildAssignmentProposedEmail_EscapesHTML(t *testing.T) {
	email := BuildAssignmentProposedEmail("ana@firm.test", "Ana", "CASE-1", "<script>x</script>", "")

	assert.NotContains(t, email.HTMLBody, "<script>")
	assert.NotContains(t, email.TextBody, " as ")
}

func TestBuildTimeEntryRejectedEmail(t *testing.T) {
	email := BuildTimeEntryRejectedEmail("ben@firm.test", "Ben", "CASE-2026-00002", "2026-03-04", 2.5, "Missing task detail")

	assert.Contains(t, email.Subject, "CASE-2026-00002")
	assert.Contains(t, email.TextBody, "2.50h on 2026-03-04")
	assert.Contains(t, email.TextBody, "Reason: Missing task detail")
	assert.Contains(t, email.HTMLBody, "Missing task detail")
}

func TestSendEmail_TestMode(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: true,
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.NoError(t, err)
}

func TestSendEmail_NoApiKey(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "",
	}
	email := &Email{
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestSendEmail_NoBody(t *testing.T) {
	cfg := &config.Config{
		EmailTestMode: false,
		ResendAPIKey:  "key",
	}
	email := &Email{
		To:      []string{"test@example.com"},
		Subject: "Test",
	}

	err := SendEmail(cfg, email)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}
