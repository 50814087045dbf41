package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier covers every query in this package. Services depend on it
// instead of *Queries so tests can swap in MockQuerier.
type Querier interface {
	AddChefPostalCode(ctx context.Context, arg AddChefPostalCodeParams) error
	ClaimNextJob(ctx context.Context, arg ClaimNextJobParams) (Job, error)
	CompleteJob(ctx context.Context, id pgtype.UUID) error
	CountChefsByStatus(ctx context.Context, status string) (int64, error)
	CountJobsByStatus(ctx context.Context, status string) (int64, error)
	CountPostalCodes(ctx context.Context) (int64, error)
	CountRecentEmailVerificationTokensByIP(ctx context.Context, arg CountRecentEmailVerificationTokensByIPParams) (int64, error)
	CountRecentEmailVerificationTokensByUser(ctx context.Context, arg CountRecentEmailVerificationTokensByUserParams) (int64, error)
	CountRecentPasswordResetTokensByEmail(ctx context.Context, arg CountRecentPasswordResetTokensByEmailParams) (int64, error)
	CountRecentPasswordResetTokensByIP(ctx context.Context, arg CountRecentPasswordResetTokensByIPParams) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountWaitlistEntriesByPostalCode(ctx context.Context, postalCodeID pgtype.UUID) (int64, error)
	CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (User, error)
	CreateChef(ctx context.Context, arg CreateChefParams) (Chef, error)
	CreateEmailVerificationToken(ctx context.Context, arg CreateEmailVerificationTokenParams) (EmailVerificationToken, error)
	CreateMealPlan(ctx context.Context, arg CreateMealPlanParams) (MealPlan, error)
	CreateOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error)
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	CreatePasswordResetToken(ctx context.Context, arg CreatePasswordResetTokenParams) (PasswordResetToken, error)
	CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error)
	CreatePaymentLink(ctx context.Context, arg CreatePaymentLinkParams) (PaymentLink, error)
	CreatePostalCode(ctx context.Context, arg CreatePostalCodeParams) (PostalCode, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
	CreateWaitlistEntry(ctx context.Context, arg CreateWaitlistEntryParams) (AreaWaitlistEntry, error)
	DeactivatePaymentLink(ctx context.Context, id pgtype.UUID) error
	DeleteChefPostalCodes(ctx context.Context, chefID pgtype.UUID) error
	DeleteCompletedJobs(ctx context.Context, before pgtype.Timestamptz) (int64, error)
	DeleteExpiredEmailVerificationTokens(ctx context.Context) (int64, error)
	DeleteExpiredPasswordResetTokens(ctx context.Context) (int64, error)
	DeleteWaitlistEntry(ctx context.Context, arg DeleteWaitlistEntryParams) (int64, error)
	DeleteWebhookEvent(ctx context.Context, arg DeleteWebhookEventParams) error
	DeleteWebhookEventsBefore(ctx context.Context, before pgtype.Timestamptz) (int64, error)
	EnqueueJob(ctx context.Context, arg EnqueueJobParams) (Job, error)
	FailJob(ctx context.Context, arg FailJobParams) error
	GetAdministrativeAreaByID(ctx context.Context, id pgtype.UUID) (AdministrativeArea, error)
	GetChefByID(ctx context.Context, id pgtype.UUID) (Chef, error)
	GetChefByIDForUpdate(ctx context.Context, id pgtype.UUID) (Chef, error)
	GetChefByUserID(ctx context.Context, userID pgtype.UUID) (Chef, error)
	GetEmailVerificationTokenByHash(ctx context.Context, tokenHash string) (EmailVerificationToken, error)
	GetGroceryCredential(ctx context.Context, provider string) (GroceryCredential, error)
	GetJobByID(ctx context.Context, id pgtype.UUID) (Job, error)
	GetMealPlanByID(ctx context.Context, id pgtype.UUID) (MealPlan, error)
	GetOfferingByID(ctx context.Context, id pgtype.UUID) (Offering, error)
	GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrderByIDForUpdate(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrderByStripeSessionID(ctx context.Context, stripeSessionID pgtype.Text) (Order, error)
	GetPasswordResetTokenByHash(ctx context.Context, tokenHash string) (PasswordResetToken, error)
	GetPaymentByIntentID(ctx context.Context, stripePaymentIntentID pgtype.Text) (Payment, error)
	GetPaymentByOrderID(ctx context.Context, orderID pgtype.UUID) (Payment, error)
	GetPostalCodeByCode(ctx context.Context, arg GetPostalCodeByCodeParams) (PostalCode, error)
	GetPostalCodeByID(ctx context.Context, id pgtype.UUID) (PostalCode, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id pgtype.UUID) (User, error)
	GetUserByIDForUpdate(ctx context.Context, id pgtype.UUID) (User, error)
	GetWaitlistEntry(ctx context.Context, arg GetWaitlistEntryParams) (AreaWaitlistEntry, error)
	HasVerifiedChefForArea(ctx context.Context, areaID pgtype.UUID) (bool, error)
	HasVerifiedChefForPostalCode(ctx context.Context, postalCodeID pgtype.UUID) (bool, error)
	InsertWebhookEvent(ctx context.Context, arg InsertWebhookEventParams) (WebhookEvent, error)
	ListAdministrativeAreas(ctx context.Context, country string) ([]AdministrativeArea, error)
	ListChefPostalCodes(ctx context.Context, chefID pgtype.UUID) ([]PostalCode, error)
	ListChefsByStatus(ctx context.Context, arg ListChefsByStatusParams) ([]Chef, error)
	ListChildAreas(ctx context.Context, parentID pgtype.UUID) ([]AdministrativeArea, error)
	ListMealPlansByUser(ctx context.Context, arg ListMealPlansByUserParams) ([]MealPlan, error)
	ListOfferingsByChef(ctx context.Context, arg ListOfferingsByChefParams) ([]Offering, error)
	ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error)
	ListOrdersByChef(ctx context.Context, arg ListOrdersByChefParams) ([]Order, error)
	ListOrdersByCustomer(ctx context.Context, arg ListOrdersByCustomerParams) ([]Order, error)
	ListPaymentLinksByChef(ctx context.Context, chefID pgtype.UUID) ([]PaymentLink, error)
	ListPublishedOfferings(ctx context.Context, arg ListPublishedOfferingsParams) ([]ListPublishedOfferingsRow, error)
	ListUnnotifiedWaitlistEntriesByPostalCode(ctx context.Context, postalCodeID pgtype.UUID) ([]ListUnnotifiedWaitlistEntriesByPostalCodeRow, error)
	ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error)
	ListVerifiedChefsServingPostalCode(ctx context.Context, postalCodeID pgtype.UUID) ([]Chef, error)
	ListWaitlistEntriesByUser(ctx context.Context, userID pgtype.UUID) ([]ListWaitlistEntriesByUserRow, error)
	MarkEmailVerificationTokenUsed(ctx context.Context, id pgtype.UUID) error
	MarkOrderPaid(ctx context.Context, id pgtype.UUID) (Order, error)
	MarkPasswordResetTokenUsed(ctx context.Context, id pgtype.UUID) error
	MarkWaitlistEntryNotified(ctx context.Context, id pgtype.UUID) error
	RecordPaymentRefund(ctx context.Context, arg RecordPaymentRefundParams) (Payment, error)
	RefreshAreaPostalCodeCounts(ctx context.Context) error
	ReleaseOfferingCapacity(ctx context.Context, arg ReleaseOfferingCapacityParams) error
	ReserveOfferingCapacity(ctx context.Context, arg ReserveOfferingCapacityParams) (Offering, error)
	SearchOfferingsByEmbedding(ctx context.Context, arg SearchOfferingsByEmbeddingParams) ([]SearchOfferingsByEmbeddingRow, error)
	SetOrderStripeSession(ctx context.Context, arg SetOrderStripeSessionParams) (Order, error)
	SetUserEmailVerified(ctx context.Context, id pgtype.UUID) error
	UpdateChefBaseLocation(ctx context.Context, arg UpdateChefBaseLocationParams) (Chef, error)
	UpdateChefProfile(ctx context.Context, arg UpdateChefProfileParams) (Chef, error)
	UpdateChefStatus(ctx context.Context, arg UpdateChefStatusParams) (Chef, error)
	UpdateMealPlanFailed(ctx context.Context, arg UpdateMealPlanFailedParams) (MealPlan, error)
	UpdateMealPlanReady(ctx context.Context, arg UpdateMealPlanReadyParams) (MealPlan, error)
	UpdateOffering(ctx context.Context, arg UpdateOfferingParams) (Offering, error)
	UpdateOfferingEmbedding(ctx context.Context, arg UpdateOfferingEmbeddingParams) error
	UpdateOfferingStatus(ctx context.Context, arg UpdateOfferingStatusParams) (Offering, error)
	UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)
	UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (Payment, error)
	UpdateUserLocation(ctx context.Context, arg UpdateUserLocationParams) (User, error)
	UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error
	UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error)
	UpdateUserRole(ctx context.Context, arg UpdateUserRoleParams) (User, error)
	UpsertAdministrativeArea(ctx context.Context, arg UpsertAdministrativeAreaParams) (AdministrativeArea, error)
	UpsertGroceryCredential(ctx context.Context, arg UpsertGroceryCredentialParams) (GroceryCredential, error)
	UpsertPostalCode(ctx context.Context, arg UpsertPostalCodeParams) (PostalCode, error)
}

var _ Querier = (*Queries)(nil)
