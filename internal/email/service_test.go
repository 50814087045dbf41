package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService builds a Service against the real shipped templates.
func newTestService(t *testing.T) (*Service, *MockSender) {
	t.Helper()

	mock := NewMockSender()
	svc, err := NewService(mock, "orders@localplate.com", "LocalPlate", "../../web/templates")
	require.NoError(t, err, "email templates should parse")
	return svc, mock
}

func TestSendVerification(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.SendVerification(context.Background(), VerificationEmail{
		Email:           "newuser@example.com",
		FirstName:       "Priya",
		VerificationURL: "https://localplate.test/verify?token=abc123",
		ExpiresAt:       time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	sent := mock.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, []string{"newuser@example.com"}, sent.To)
	assert.Equal(t, "LocalPlate <orders@localplate.com>", sent.From)
	assert.Equal(t, "Verify Your Email", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "https://localplate.test/verify?token=abc123")
	assert.Contains(t, sent.HTMLBody, "Priya")
	assert.Contains(t, sent.TextBody, "Priya")
	assert.NotContains(t, sent.TextBody, "<a href")
}

func TestSendPasswordReset(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.SendPasswordReset(context.Background(), PasswordResetEmail{
		Email:     "user@example.com",
		FirstName: "Sam",
		ResetURL:  "https://localplate.test/reset?token=xyz789",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	sent := mock.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, "Reset Your Password", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "xyz789")
}

func TestSendOrderConfirmation(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.SendOrderConfirmation(context.Background(), OrderConfirmationEmail{
		Email:        "hungry@example.com",
		CustomerName: "Jordan",
		OrderNumber:  "LP-20250601-0042",
		ChefName:     "Marisol's Kitchen",
		OrderDate:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Items: []OrderItem{
			{Title: "Chicken adobo (2 servings)", Quantity: 2, UnitPriceCents: 1800, TotalCents: 3600},
			{Title: "Garlic rice", Quantity: 1, UnitPriceCents: 500, TotalCents: 500},
		},
		SubtotalCents:    4100,
		DeliveryFeeCents: 500,
		TaxCents:         369,
		TotalCents:       4969,
		Fulfillment:      "delivery",
		OrderURL:         "https://localplate.test/orders/ord_42",
	})
	require.NoError(t, err)

	sent := mock.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, "Order Confirmation - LP-20250601-0042", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "Chicken adobo")
	assert.Contains(t, sent.HTMLBody, "$49.69")
	assert.Contains(t, sent.HTMLBody, "delivered")
	assert.Contains(t, sent.TextBody, "Marisol")
}

func TestSendChefLifecycleEmails(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendChefNewOrder(ctx, ChefNewOrderEmail{
		Email:        "chef@example.com",
		ChefName:     "Marisol",
		OrderNumber:  "LP-20250601-0042",
		CustomerName: "Jordan",
		Items:        []OrderItem{{Title: "Tamales (dozen)", Quantity: 1, UnitPriceCents: 2400, TotalCents: 2400}},
		TotalCents:   2400,
		Fulfillment:  "pickup",
		DashboardURL: "https://localplate.test/chef",
	}))

	require.NoError(t, svc.SendChefApproved(ctx, ChefApprovedEmail{
		Email:        "chef@example.com",
		FirstName:    "Marisol",
		BusinessName: "Marisol's Kitchen",
		DashboardURL: "https://localplate.test/chef",
	}))

	require.NoError(t, svc.SendChefRejected(ctx, ChefRejectedEmail{
		Email:        "applicant@example.com",
		FirstName:    "Lee",
		BusinessName: "Lee's Dumplings",
		Reason:       "We need a copy of your food handler permit.",
	}))

	require.Len(t, mock.Sent, 3)
	assert.Equal(t, "New Order - LP-20250601-0042", mock.Sent[0].Subject)
	assert.Equal(t, "Your Chef Application Was Approved", mock.Sent[1].Subject)
	assert.Contains(t, mock.Sent[2].HTMLBody, "food handler permit")
}

func TestSendWaitlistAreaOpened(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.SendWaitlistAreaOpened(context.Background(), WaitlistAreaOpenedEmail{
		Email:      "waiting@example.com",
		FirstName:  "Avery",
		PostalCode: "97214",
		PlaceName:  "Portland, OR",
		BrowseURL:  "https://localplate.test/offerings",
	})
	require.NoError(t, err)

	sent := mock.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, "Chefs Are Now Cooking in Portland, OR", sent.Subject)
	assert.Contains(t, sent.HTMLBody, "97214")
}

func TestSendPropagatesSenderFailure(t *testing.T) {
	mock := NewMockSender()
	mock.SendFunc = func(ctx context.Context, email *Email) (string, error) {
		return "", ErrNoRecipients
	}

	svc, err := NewService(mock, "orders@localplate.com", "LocalPlate", "../../web/templates")
	require.NoError(t, err)

	err = svc.SendVerification(context.Background(), VerificationEmail{
		Email:           "user@example.com",
		FirstName:       "Sam",
		VerificationURL: "https://localplate.test/verify",
		ExpiresAt:       time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.50", FormatCents(50))
	assert.Equal(t, "$12.00", FormatCents(1200))
	assert.Equal(t, "$49.69", FormatCents(4969))
	assert.Equal(t, "$0.05", FormatCents(5))
}

func TestGeneratePlainText(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "simple paragraph",
			html:     "<p>Hello, World!</p>",
			contains: []string{"Hello, World!"},
			excludes: []string{"<p>", "</p>"},
		},
		{
			name:     "line breaks",
			html:     "Line 1<br>Line 2<br/>Line 3<br />Line 4",
			contains: []string{"Line 1", "Line 2", "Line 3", "Line 4"},
			excludes: []string{"<br>", "<br/>", "<br />"},
		},
		{
			name:     "headings",
			html:     "<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>",
			contains: []string{"Title", "Subtitle", "Section"},
			excludes: []string{"<h1>", "</h1>", "<h2>", "</h2>", "<h3>", "</h3>"},
		},
		{
			name:     "nested tags",
			html:     "<div><p><strong>Bold text</strong> and <em>italic</em></p></div>",
			contains: []string{"Bold text", "and", "italic"},
			excludes: []string{"<div>", "<p>", "<strong>", "<em>"},
		},
		{
			name:     "HTML entities",
			html:     "Price: $10 &amp; delivery &nbsp; included &lt;$5&gt; &quot;free&quot;",
			contains: []string{"Price: $10 & delivery", "included <$5>", "\"free\""},
			excludes: []string{"&amp;", "&nbsp;", "&lt;", "&gt;", "&quot;"},
		},
		{
			name:     "links stripped",
			html:     `<a href="https://example.com">Click here</a>`,
			contains: []string{"Click here"},
			excludes: []string{"<a", "href", "</a>"},
		},
		{
			name:     "table rows become lines",
			html:     "<table><tr><td>Pho</td><td>$15.00</td></tr></table>",
			contains: []string{"Pho", "$15.00"},
			excludes: []string{"<tr>", "<td>"},
		},
		{
			name:     "empty content",
			html:     "",
			contains: []string{},
			excludes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := generatePlainText(tt.html)

			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("generatePlainText() result should contain %q, got: %q", want, result)
				}
			}

			for _, exclude := range tt.excludes {
				if strings.Contains(result, exclude) {
					t.Errorf("generatePlainText() result should not contain %q, got: %q", exclude, result)
				}
			}
		})
	}
}

func TestGeneratePlainText_WhitespaceHandling(t *testing.T) {
	html := `
		<p>   Line with spaces   </p>
		<p></p>
		<p>Another line</p>
	`

	result := generatePlainText(html)

	lines := strings.Split(result, "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" && line != "" {
			t.Error("generatePlainText() should not have blank lines with only whitespace")
		}
	}

	if !strings.Contains(result, "Line with spaces") {
		t.Error("generatePlainText() should contain trimmed content")
	}
	if !strings.Contains(result, "Another line") {
		t.Error("generatePlainText() should contain 'Another line'")
	}
}
