package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
)

// Service handles email composition and sending
type Service struct {
	sender        Sender
	fromAddress   string
	fromName      string
	templateCache *template.Template
}

// NewService creates a new email service
func NewService(sender Sender, fromAddress, fromName, templateDir string) (*Service, error) {
	// Load all email templates
	tmpl, err := template.New("email").
		Funcs(template.FuncMap{"cents": FormatCents}).
		ParseGlob(filepath.Join(templateDir, "email", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &Service{
		sender:        sender,
		fromAddress:   fromAddress,
		fromName:      fromName,
		templateCache: tmpl,
	}, nil
}

// SendVerification sends an email verification link
func (s *Service) SendVerification(ctx context.Context, data VerificationEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

// SendPasswordReset sends a password reset email
func (s *Service) SendPasswordReset(ctx context.Context, data PasswordResetEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SendOrderConfirmation sends an order confirmation email to the customer
func (s *Service) SendOrderConfirmation(ctx context.Context, data OrderConfirmationEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send order confirmation email: %w", err)
	}
	return nil
}

// SendChefNewOrder notifies a chef about a new paid order
func (s *Service) SendChefNewOrder(ctx context.Context, data ChefNewOrderEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send chef new order email: %w", err)
	}
	return nil
}

// SendChefApproved sends a chef application approval email
func (s *Service) SendChefApproved(ctx context.Context, data ChefApprovedEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send chef approved email: %w", err)
	}
	return nil
}

// SendChefRejected sends a chef application rejection email
func (s *Service) SendChefRejected(ctx context.Context, data ChefRejectedEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send chef rejected email: %w", err)
	}
	return nil
}

// SendWaitlistAreaOpened tells a waitlisted user their postal code is covered
func (s *Service) SendWaitlistAreaOpened(ctx context.Context, data WaitlistAreaOpenedEmail) error {
	if err := s.send(ctx, data.Email, data); err != nil {
		return fmt.Errorf("failed to send waitlist area opened email: %w", err)
	}
	return nil
}

// send renders the template for tmpl and sends it to a single recipient.
func (s *Service) send(ctx context.Context, to string, tmpl EmailTemplate) error {
	htmlBody, textBody, err := s.renderTemplate(tmpl.TemplateName(), tmpl)
	if err != nil {
		return err
	}

	email := &Email{
		To:       []string{to},
		From:     fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress),
		Subject:  tmpl.Subject(),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}

	_, err = s.sender.Send(ctx, email)
	return err
}

// renderTemplate executes the named template and derives a plain text body.
// Each template wraps itself in the shared email_header/email_footer partials.
func (s *Service) renderTemplate(templateName string, data any) (string, string, error) {
	var htmlBuf bytes.Buffer
	err := s.templateCache.ExecuteTemplate(&htmlBuf, templateName, data)
	if err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	htmlBody := htmlBuf.String()

	plainText := generatePlainText(htmlBody)

	return htmlBody, plainText, nil
}

// blockBreaks turns block-level closing tags into line breaks before tags
// are stripped, so the text body keeps its paragraph shape.
var blockBreaks = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"</p>", "\n\n", "</h1>", "\n\n", "</h2>", "\n\n", "</h3>", "\n\n",
	"</div>", "\n", "</tr>", "\n",
)

// htmlEntities undoes the escaping html/template applied, run after the
// tags are gone so the unescaped characters cannot read as markup.
var htmlEntities = strings.NewReplacer(
	"&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">",
	"&quot;", `"`, "&#34;", `"`, "&#39;", "'",
)

// generatePlainText derives a readable text body from rendered HTML for
// the multipart alternative.
func generatePlainText(html string) string {
	text := blockBreaks.Replace(html)

	var b strings.Builder
	b.Grow(len(text))
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text = htmlEntities.Replace(b.String())

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatCents renders a cent amount as dollars.
// Registered as the "cents" template function.
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
