package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability:
// marketplace activity, payments, background work, and external API health.
type BusinessMetrics struct {
	// Auth & accounts
	Signups        *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	LoginFailed    *prometheus.CounterVec
	PasswordResets *prometheus.CounterVec
	EmailVerified  prometheus.Counter

	// Chefs
	ChefApplications   prometheus.Counter
	ChefStatusChanges  *prometheus.CounterVec
	ServiceAreaUpdates prometheus.Counter
	ServiceAreaSize    prometheus.Histogram

	// Offerings & discovery
	OfferingsPublished prometheus.Counter
	OfferingSearches   *prometheus.CounterVec
	CoverageChecks     *prometheus.CounterVec

	// Orders & payments
	CheckoutStarted  prometheus.Counter
	OrdersCreated    *prometheus.CounterVec
	OrderValue       prometheus.Histogram
	OrderItemCount   prometheus.Histogram
	PaymentSucceeded prometheus.Counter
	PaymentFailed    *prometheus.CounterVec
	RevenueCollected prometheus.Counter
	RefundsIssued    prometheus.Counter
	RefundAmount     prometheus.Counter

	// Waitlist
	WaitlistJoins         prometheus.Counter
	WaitlistNotifications prometheus.Counter

	// Assistant & meal plans
	AssistantChats     prometheus.Counter
	AssistantToolCalls *prometheus.CounterVec
	MealPlansGenerated *prometheus.CounterVec

	// Webhooks
	WebhookReceived  *prometheus.CounterVec
	WebhookProcessed *prometheus.CounterVec
	WebhookFailed    *prometheus.CounterVec
	WebhookLatency   *prometheus.HistogramVec

	// Background jobs
	JobsEnqueued  *prometheus.CounterVec
	JobsProcessed *prometheus.CounterVec
	JobsFailed    *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec

	// Email delivery
	EmailSent   *prometheus.CounterVec
	EmailFailed *prometheus.CounterVec

	// Postal data imports
	PostalCodesImported prometheus.Counter

	// External API performance
	StripeAPILatency *prometheus.HistogramVec
	OpenAIAPILatency *prometheus.HistogramVec
	KrogerAPILatency *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "localplate"
	}

	subsystem := "business"

	m := &BusinessMetrics{
		// =======================================================================
		// Auth & Accounts
		// =======================================================================
		Signups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "Total successful user signups",
			},
			[]string{"role"}, // role: customer, chef
		),
		Logins: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Total successful logins",
			},
			[]string{"role"}, // role: customer, chef, admin
		),
		LoginFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "login_failed_total",
				Help:      "Total failed login attempts",
			},
			[]string{"reason"}, // reason: invalid_password, user_not_found, suspended
		),
		PasswordResets: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "password_resets_total",
				Help:      "Total password reset requests by stage",
			},
			[]string{"stage"}, // stage: requested, completed
		),
		EmailVerified: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "email_verified_total",
				Help:      "Total email verifications completed",
			},
		),

		// =======================================================================
		// Chefs
		// =======================================================================
		ChefApplications: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chef_applications_total",
				Help:      "Total chef applications submitted",
			},
		),
		ChefStatusChanges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "chef_status_changes_total",
				Help:      "Total chef status transitions by outcome",
			},
			[]string{"status"}, // status: verified, rejected, suspended, pending
		),
		ServiceAreaUpdates: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_area_updates_total",
				Help:      "Total chef service area replacements",
			},
		),
		ServiceAreaSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_area_postal_codes",
				Help:      "Postal codes per chef service area",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
			},
		),

		// =======================================================================
		// Offerings & Discovery
		// =======================================================================
		OfferingsPublished: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "offerings_published_total",
				Help:      "Total offerings published by chefs",
			},
		),
		OfferingSearches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "offering_searches_total",
				Help:      "Total offering feed loads and searches",
			},
			[]string{"kind"}, // kind: browse, semantic
		),
		CoverageChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coverage_checks_total",
				Help:      "Total feature access checks by outcome",
			},
			[]string{"result"}, // result: granted, no_location, invalid_postal_code, no_chef_coverage
		),

		// =======================================================================
		// Orders & Payments
		// =======================================================================
		CheckoutStarted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_started_total",
				Help:      "Total checkout sessions created",
			},
		),
		OrdersCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Total orders created",
			},
			[]string{"fulfillment"}, // fulfillment: pickup, delivery
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value_cents",
				Help:      "Order totals in cents",
				Buckets:   []float64{500, 1500, 3000, 5000, 10000, 20000, 50000},
			},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Line items per order",
				Buckets:   []float64{1, 2, 3, 5, 8, 13},
			},
		),
		PaymentSucceeded: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_succeeded_total",
				Help:      "Total successful payments",
			},
		),
		PaymentFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payments_failed_total",
				Help:      "Total failed payments",
			},
			[]string{"reason"},
		),
		RevenueCollected: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "revenue_collected_cents",
				Help:      "Total revenue collected in cents (excludes refunds)",
			},
		),
		RefundsIssued: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "refunds_issued_total",
				Help:      "Total refunds issued to customers",
			},
		),
		RefundAmount: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "refund_amount_cents",
				Help:      "Total refund amount in cents",
			},
		),

		// =======================================================================
		// Waitlist
		// =======================================================================
		WaitlistJoins: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "waitlist_joins_total",
				Help:      "Total waitlist signups for uncovered areas",
			},
		),
		WaitlistNotifications: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "waitlist_notifications_total",
				Help:      "Total area-opened notifications sent to waitlisted users",
			},
		),

		// =======================================================================
		// Assistant & Meal Plans
		// =======================================================================
		AssistantChats: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "assistant_chats_total",
				Help:      "Total assistant chat turns",
			},
		),
		AssistantToolCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "assistant_tool_calls_total",
				Help:      "Total assistant tool invocations",
			},
			[]string{"tool"},
		),
		MealPlansGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "meal_plans_total",
				Help:      "Total meal plan generations by outcome",
			},
			[]string{"status"}, // status: generated, failed
		),

		// =======================================================================
		// Webhooks
		// =======================================================================
		WebhookReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_received_total",
				Help:      "Total webhook events received",
			},
			[]string{"provider", "event_type"},
		),
		WebhookProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_processed_total",
				Help:      "Total webhook events successfully processed",
			},
			[]string{"provider", "event_type"},
		),
		WebhookFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_failed_total",
				Help:      "Total webhook processing failures",
			},
			[]string{"provider", "event_type"},
		),
		WebhookLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhook_duration_seconds",
				Help:      "Webhook processing duration",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"provider", "event_type"},
		),

		// =======================================================================
		// Background Jobs
		// =======================================================================
		JobsEnqueued: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_enqueued_total",
				Help:      "Total background jobs enqueued",
			},
			[]string{"job_type"},
		),
		JobsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_processed_total",
				Help:      "Total background jobs successfully processed",
			},
			[]string{"job_type"},
		),
		JobsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "jobs_failed_total",
				Help:      "Total background job failures",
			},
			[]string{"job_type", "error_type"},
		),
		JobDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_duration_seconds",
				Help:      "Background job execution duration",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"job_type"},
		),

		// =======================================================================
		// Email Delivery
		// =======================================================================
		EmailSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emails_sent_total",
				Help:      "Total emails sent by type",
			},
			[]string{"email_type"}, // email_type: verification, password_reset, order_confirmation, etc.
		),
		EmailFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "emails_failed_total",
				Help:      "Total email delivery failures",
			},
			[]string{"email_type", "error_type"},
		),

		// =======================================================================
		// Postal Data Imports
		// =======================================================================
		PostalCodesImported: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "postal_codes_imported_total",
				Help:      "Total postal codes imported from GeoNames",
			},
		),

		// =======================================================================
		// External API Performance
		// =======================================================================
		StripeAPILatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stripe_api_duration_seconds",
				Help:      "Stripe API call duration (helps differentiate app slowness from Stripe issues)",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"}, // operation: create_checkout_session, create_refund, etc.
		),
		OpenAIAPILatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "openai_api_duration_seconds",
				Help:      "OpenAI API call duration",
				Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"}, // operation: chat, embedding
		),
		KrogerAPILatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "kroger_api_duration_seconds",
				Help:      "Kroger API call duration",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"}, // operation: token, product_search
		),
	}

	return m
}

// Global instance for easy access from handlers
var Business *BusinessMetrics

// InitBusinessMetrics initializes the global business metrics instance
func InitBusinessMetrics(namespace string) *BusinessMetrics {
	Business = NewBusinessMetrics(namespace)
	return Business
}
