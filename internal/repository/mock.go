package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// MockQuerier is a hand-rolled Querier for service tests. Set the XxxFunc
// field for each query the test expects; unset queries return an
// "unexpected call" error so tests fail loudly instead of passing on
// zero values. CallLog records method names in call order for assertions.
type MockQuerier struct {
	AddChefPostalCodeFunc                         func(ctx context.Context, arg AddChefPostalCodeParams) error
	ClaimNextJobFunc                              func(ctx context.Context, arg ClaimNextJobParams) (Job, error)
	CompleteJobFunc                               func(ctx context.Context, id pgtype.UUID) error
	CountChefsByStatusFunc                        func(ctx context.Context, status string) (int64, error)
	CountJobsByStatusFunc                         func(ctx context.Context, status string) (int64, error)
	CountPostalCodesFunc                          func(ctx context.Context) (int64, error)
	CountRecentEmailVerificationTokensByIPFunc    func(ctx context.Context, arg CountRecentEmailVerificationTokensByIPParams) (int64, error)
	CountRecentEmailVerificationTokensByUserFunc  func(ctx context.Context, arg CountRecentEmailVerificationTokensByUserParams) (int64, error)
	CountRecentPasswordResetTokensByEmailFunc     func(ctx context.Context, arg CountRecentPasswordResetTokensByEmailParams) (int64, error)
	CountRecentPasswordResetTokensByIPFunc        func(ctx context.Context, arg CountRecentPasswordResetTokensByIPParams) (int64, error)
	CountUsersFunc                                func(ctx context.Context) (int64, error)
	CountWaitlistEntriesByPostalCodeFunc          func(ctx context.Context, postalCodeID pgtype.UUID) (int64, error)
	CreateAdminUserFunc                           func(ctx context.Context, arg CreateAdminUserParams) (User, error)
	CreateChefFunc                                func(ctx context.Context, arg CreateChefParams) (Chef, error)
	CreateEmailVerificationTokenFunc              func(ctx context.Context, arg CreateEmailVerificationTokenParams) (EmailVerificationToken, error)
	CreateMealPlanFunc                            func(ctx context.Context, arg CreateMealPlanParams) (MealPlan, error)
	CreateOfferingFunc                            func(ctx context.Context, arg CreateOfferingParams) (Offering, error)
	CreateOrderFunc                               func(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItemFunc                           func(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	CreatePasswordResetTokenFunc                  func(ctx context.Context, arg CreatePasswordResetTokenParams) (PasswordResetToken, error)
	CreatePaymentFunc                             func(ctx context.Context, arg CreatePaymentParams) (Payment, error)
	CreatePaymentLinkFunc                         func(ctx context.Context, arg CreatePaymentLinkParams) (PaymentLink, error)
	CreatePostalCodeFunc                          func(ctx context.Context, arg CreatePostalCodeParams) (PostalCode, error)
	CreateUserFunc                                func(ctx context.Context, arg CreateUserParams) (User, error)
	CreateWaitlistEntryFunc                       func(ctx context.Context, arg CreateWaitlistEntryParams) (AreaWaitlistEntry, error)
	DeactivatePaymentLinkFunc                     func(ctx context.Context, id pgtype.UUID) error
	DeleteChefPostalCodesFunc                     func(ctx context.Context, chefID pgtype.UUID) error
	DeleteCompletedJobsFunc                       func(ctx context.Context, before pgtype.Timestamptz) (int64, error)
	DeleteExpiredEmailVerificationTokensFunc      func(ctx context.Context) (int64, error)
	DeleteExpiredPasswordResetTokensFunc          func(ctx context.Context) (int64, error)
	DeleteWaitlistEntryFunc                       func(ctx context.Context, arg DeleteWaitlistEntryParams) (int64, error)
	DeleteWebhookEventFunc                        func(ctx context.Context, arg DeleteWebhookEventParams) error
	DeleteWebhookEventsBeforeFunc                 func(ctx context.Context, before pgtype.Timestamptz) (int64, error)
	EnqueueJobFunc                                func(ctx context.Context, arg EnqueueJobParams) (Job, error)
	FailJobFunc                                   func(ctx context.Context, arg FailJobParams) error
	GetAdministrativeAreaByIDFunc                 func(ctx context.Context, id pgtype.UUID) (AdministrativeArea, error)
	GetChefByIDFunc                               func(ctx context.Context, id pgtype.UUID) (Chef, error)
	GetChefByIDForUpdateFunc                      func(ctx context.Context, id pgtype.UUID) (Chef, error)
	GetChefByUserIDFunc                           func(ctx context.Context, userID pgtype.UUID) (Chef, error)
	GetEmailVerificationTokenByHashFunc           func(ctx context.Context, tokenHash string) (EmailVerificationToken, error)
	GetGroceryCredentialFunc                      func(ctx context.Context, provider string) (GroceryCredential, error)
	GetJobByIDFunc                                func(ctx context.Context, id pgtype.UUID) (Job, error)
	GetMealPlanByIDFunc                           func(ctx context.Context, id pgtype.UUID) (MealPlan, error)
	GetOfferingByIDFunc                           func(ctx context.Context, id pgtype.UUID) (Offering, error)
	GetOrderByIDFunc                              func(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrderByIDForUpdateFunc                     func(ctx context.Context, id pgtype.UUID) (Order, error)
	GetOrderByStripeSessionIDFunc                 func(ctx context.Context, stripeSessionID pgtype.Text) (Order, error)
	GetPasswordResetTokenByHashFunc               func(ctx context.Context, tokenHash string) (PasswordResetToken, error)
	GetPaymentByIntentIDFunc                      func(ctx context.Context, stripePaymentIntentID pgtype.Text) (Payment, error)
	GetPaymentByOrderIDFunc                       func(ctx context.Context, orderID pgtype.UUID) (Payment, error)
	GetPostalCodeByCodeFunc                       func(ctx context.Context, arg GetPostalCodeByCodeParams) (PostalCode, error)
	GetPostalCodeByIDFunc                         func(ctx context.Context, id pgtype.UUID) (PostalCode, error)
	GetUserByEmailFunc                            func(ctx context.Context, email string) (User, error)
	GetUserByIDFunc                               func(ctx context.Context, id pgtype.UUID) (User, error)
	GetUserByIDForUpdateFunc                      func(ctx context.Context, id pgtype.UUID) (User, error)
	GetWaitlistEntryFunc                          func(ctx context.Context, arg GetWaitlistEntryParams) (AreaWaitlistEntry, error)
	HasVerifiedChefForAreaFunc                    func(ctx context.Context, areaID pgtype.UUID) (bool, error)
	HasVerifiedChefForPostalCodeFunc              func(ctx context.Context, postalCodeID pgtype.UUID) (bool, error)
	InsertWebhookEventFunc                        func(ctx context.Context, arg InsertWebhookEventParams) (WebhookEvent, error)
	ListAdministrativeAreasFunc                   func(ctx context.Context, country string) ([]AdministrativeArea, error)
	ListChefPostalCodesFunc                       func(ctx context.Context, chefID pgtype.UUID) ([]PostalCode, error)
	ListChefsByStatusFunc                         func(ctx context.Context, arg ListChefsByStatusParams) ([]Chef, error)
	ListChildAreasFunc                            func(ctx context.Context, parentID pgtype.UUID) ([]AdministrativeArea, error)
	ListMealPlansByUserFunc                       func(ctx context.Context, arg ListMealPlansByUserParams) ([]MealPlan, error)
	ListOfferingsByChefFunc                       func(ctx context.Context, arg ListOfferingsByChefParams) ([]Offering, error)
	ListOrderItemsFunc                            func(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error)
	ListOrdersByChefFunc                          func(ctx context.Context, arg ListOrdersByChefParams) ([]Order, error)
	ListOrdersByCustomerFunc                      func(ctx context.Context, arg ListOrdersByCustomerParams) ([]Order, error)
	ListPaymentLinksByChefFunc                    func(ctx context.Context, chefID pgtype.UUID) ([]PaymentLink, error)
	ListPublishedOfferingsFunc                    func(ctx context.Context, arg ListPublishedOfferingsParams) ([]ListPublishedOfferingsRow, error)
	ListUnnotifiedWaitlistEntriesByPostalCodeFunc func(ctx context.Context, postalCodeID pgtype.UUID) ([]ListUnnotifiedWaitlistEntriesByPostalCodeRow, error)
	ListUsersFunc                                 func(ctx context.Context, arg ListUsersParams) ([]User, error)
	ListVerifiedChefsServingPostalCodeFunc        func(ctx context.Context, postalCodeID pgtype.UUID) ([]Chef, error)
	ListWaitlistEntriesByUserFunc                 func(ctx context.Context, userID pgtype.UUID) ([]ListWaitlistEntriesByUserRow, error)
	MarkEmailVerificationTokenUsedFunc            func(ctx context.Context, id pgtype.UUID) error
	MarkOrderPaidFunc                             func(ctx context.Context, id pgtype.UUID) (Order, error)
	MarkPasswordResetTokenUsedFunc                func(ctx context.Context, id pgtype.UUID) error
	MarkWaitlistEntryNotifiedFunc                 func(ctx context.Context, id pgtype.UUID) error
	RecordPaymentRefundFunc                       func(ctx context.Context, arg RecordPaymentRefundParams) (Payment, error)
	RefreshAreaPostalCodeCountsFunc               func(ctx context.Context) error
	ReleaseOfferingCapacityFunc                   func(ctx context.Context, arg ReleaseOfferingCapacityParams) error
	ReserveOfferingCapacityFunc                   func(ctx context.Context, arg ReserveOfferingCapacityParams) (Offering, error)
	SearchOfferingsByEmbeddingFunc                func(ctx context.Context, arg SearchOfferingsByEmbeddingParams) ([]SearchOfferingsByEmbeddingRow, error)
	SetOrderStripeSessionFunc                     func(ctx context.Context, arg SetOrderStripeSessionParams) (Order, error)
	SetUserEmailVerifiedFunc                      func(ctx context.Context, id pgtype.UUID) error
	UpdateChefBaseLocationFunc                    func(ctx context.Context, arg UpdateChefBaseLocationParams) (Chef, error)
	UpdateChefProfileFunc                         func(ctx context.Context, arg UpdateChefProfileParams) (Chef, error)
	UpdateChefStatusFunc                          func(ctx context.Context, arg UpdateChefStatusParams) (Chef, error)
	UpdateMealPlanFailedFunc                      func(ctx context.Context, arg UpdateMealPlanFailedParams) (MealPlan, error)
	UpdateMealPlanReadyFunc                       func(ctx context.Context, arg UpdateMealPlanReadyParams) (MealPlan, error)
	UpdateOfferingFunc                            func(ctx context.Context, arg UpdateOfferingParams) (Offering, error)
	UpdateOfferingEmbeddingFunc                   func(ctx context.Context, arg UpdateOfferingEmbeddingParams) error
	UpdateOfferingStatusFunc                      func(ctx context.Context, arg UpdateOfferingStatusParams) (Offering, error)
	UpdateOrderStatusFunc                         func(ctx context.Context, arg UpdateOrderStatusParams) (Order, error)
	UpdatePaymentStatusFunc                       func(ctx context.Context, arg UpdatePaymentStatusParams) (Payment, error)
	UpdateUserLocationFunc                        func(ctx context.Context, arg UpdateUserLocationParams) (User, error)
	UpdateUserPasswordFunc                        func(ctx context.Context, arg UpdateUserPasswordParams) error
	UpdateUserProfileFunc                         func(ctx context.Context, arg UpdateUserProfileParams) (User, error)
	UpdateUserRoleFunc                            func(ctx context.Context, arg UpdateUserRoleParams) (User, error)
	UpsertAdministrativeAreaFunc                  func(ctx context.Context, arg UpsertAdministrativeAreaParams) (AdministrativeArea, error)
	UpsertGroceryCredentialFunc                   func(ctx context.Context, arg UpsertGroceryCredentialParams) (GroceryCredential, error)
	UpsertPostalCodeFunc                          func(ctx context.Context, arg UpsertPostalCodeParams) (PostalCode, error)

	// CallLog tracks method calls for test assertions
	CallLog []string
}

var _ Querier = (*MockQuerier)(nil)

// NewMockQuerier creates a mock with no queries configured.
func NewMockQuerier() *MockQuerier {
	return &MockQuerier{CallLog: []string{}}
}

func (m *MockQuerier) record(call string) {
	m.CallLog = append(m.CallLog, call)
}

func (m *MockQuerier) unexpected(call string) error {
	return fmt.Errorf("mock: unexpected call to %s", call)
}

func (m *MockQuerier) AddChefPostalCode(ctx context.Context, arg AddChefPostalCodeParams) error {
	m.record("AddChefPostalCode")
	if m.AddChefPostalCodeFunc != nil {
		return m.AddChefPostalCodeFunc(ctx, arg)
	}
	return m.unexpected("AddChefPostalCode")
}

func (m *MockQuerier) ClaimNextJob(ctx context.Context, arg ClaimNextJobParams) (Job, error) {
	m.record("ClaimNextJob")
	if m.ClaimNextJobFunc != nil {
		return m.ClaimNextJobFunc(ctx, arg)
	}
	return Job{}, m.unexpected("ClaimNextJob")
}

func (m *MockQuerier) CompleteJob(ctx context.Context, id pgtype.UUID) error {
	m.record("CompleteJob")
	if m.CompleteJobFunc != nil {
		return m.CompleteJobFunc(ctx, id)
	}
	return m.unexpected("CompleteJob")
}

func (m *MockQuerier) CountChefsByStatus(ctx context.Context, status string) (int64, error) {
	m.record("CountChefsByStatus")
	if m.CountChefsByStatusFunc != nil {
		return m.CountChefsByStatusFunc(ctx, status)
	}
	return 0, m.unexpected("CountChefsByStatus")
}

func (m *MockQuerier) CountJobsByStatus(ctx context.Context, status string) (int64, error) {
	m.record("CountJobsByStatus")
	if m.CountJobsByStatusFunc != nil {
		return m.CountJobsByStatusFunc(ctx, status)
	}
	return 0, m.unexpected("CountJobsByStatus")
}

func (m *MockQuerier) CountPostalCodes(ctx context.Context) (int64, error) {
	m.record("CountPostalCodes")
	if m.CountPostalCodesFunc != nil {
		return m.CountPostalCodesFunc(ctx)
	}
	return 0, m.unexpected("CountPostalCodes")
}

func (m *MockQuerier) CountRecentEmailVerificationTokensByIP(ctx context.Context, arg CountRecentEmailVerificationTokensByIPParams) (int64, error) {
	m.record("CountRecentEmailVerificationTokensByIP")
	if m.CountRecentEmailVerificationTokensByIPFunc != nil {
		return m.CountRecentEmailVerificationTokensByIPFunc(ctx, arg)
	}
	return 0, m.unexpected("CountRecentEmailVerificationTokensByIP")
}

func (m *MockQuerier) CountRecentEmailVerificationTokensByUser(ctx context.Context, arg CountRecentEmailVerificationTokensByUserParams) (int64, error) {
	m.record("CountRecentEmailVerificationTokensByUser")
	if m.CountRecentEmailVerificationTokensByUserFunc != nil {
		return m.CountRecentEmailVerificationTokensByUserFunc(ctx, arg)
	}
	return 0, m.unexpected("CountRecentEmailVerificationTokensByUser")
}

func (m *MockQuerier) CountRecentPasswordResetTokensByEmail(ctx context.Context, arg CountRecentPasswordResetTokensByEmailParams) (int64, error) {
	m.record("CountRecentPasswordResetTokensByEmail")
	if m.CountRecentPasswordResetTokensByEmailFunc != nil {
		return m.CountRecentPasswordResetTokensByEmailFunc(ctx, arg)
	}
	return 0, m.unexpected("CountRecentPasswordResetTokensByEmail")
}

func (m *MockQuerier) CountRecentPasswordResetTokensByIP(ctx context.Context, arg CountRecentPasswordResetTokensByIPParams) (int64, error) {
	m.record("CountRecentPasswordResetTokensByIP")
	if m.CountRecentPasswordResetTokensByIPFunc != nil {
		return m.CountRecentPasswordResetTokensByIPFunc(ctx, arg)
	}
	return 0, m.unexpected("CountRecentPasswordResetTokensByIP")
}

func (m *MockQuerier) CountUsers(ctx context.Context) (int64, error) {
	m.record("CountUsers")
	if m.CountUsersFunc != nil {
		return m.CountUsersFunc(ctx)
	}
	return 0, m.unexpected("CountUsers")
}

func (m *MockQuerier) CountWaitlistEntriesByPostalCode(ctx context.Context, postalCodeID pgtype.UUID) (int64, error) {
	m.record("CountWaitlistEntriesByPostalCode")
	if m.CountWaitlistEntriesByPostalCodeFunc != nil {
		return m.CountWaitlistEntriesByPostalCodeFunc(ctx, postalCodeID)
	}
	return 0, m.unexpected("CountWaitlistEntriesByPostalCode")
}

func (m *MockQuerier) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (User, error) {
	m.record("CreateAdminUser")
	if m.CreateAdminUserFunc != nil {
		return m.CreateAdminUserFunc(ctx, arg)
	}
	return User{}, m.unexpected("CreateAdminUser")
}

func (m *MockQuerier) CreateChef(ctx context.Context, arg CreateChefParams) (Chef, error) {
	m.record("CreateChef")
	if m.CreateChefFunc != nil {
		return m.CreateChefFunc(ctx, arg)
	}
	return Chef{}, m.unexpected("CreateChef")
}

func (m *MockQuerier) CreateEmailVerificationToken(ctx context.Context, arg CreateEmailVerificationTokenParams) (EmailVerificationToken, error) {
	m.record("CreateEmailVerificationToken")
	if m.CreateEmailVerificationTokenFunc != nil {
		return m.CreateEmailVerificationTokenFunc(ctx, arg)
	}
	return EmailVerificationToken{}, m.unexpected("CreateEmailVerificationToken")
}

func (m *MockQuerier) CreateMealPlan(ctx context.Context, arg CreateMealPlanParams) (MealPlan, error) {
	m.record("CreateMealPlan")
	if m.CreateMealPlanFunc != nil {
		return m.CreateMealPlanFunc(ctx, arg)
	}
	return MealPlan{}, m.unexpected("CreateMealPlan")
}

func (m *MockQuerier) CreateOffering(ctx context.Context, arg CreateOfferingParams) (Offering, error) {
	m.record("CreateOffering")
	if m.CreateOfferingFunc != nil {
		return m.CreateOfferingFunc(ctx, arg)
	}
	return Offering{}, m.unexpected("CreateOffering")
}

func (m *MockQuerier) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	m.record("CreateOrder")
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, arg)
	}
	return Order{}, m.unexpected("CreateOrder")
}

func (m *MockQuerier) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	m.record("CreateOrderItem")
	if m.CreateOrderItemFunc != nil {
		return m.CreateOrderItemFunc(ctx, arg)
	}
	return OrderItem{}, m.unexpected("CreateOrderItem")
}

func (m *MockQuerier) CreatePasswordResetToken(ctx context.Context, arg CreatePasswordResetTokenParams) (PasswordResetToken, error) {
	m.record("CreatePasswordResetToken")
	if m.CreatePasswordResetTokenFunc != nil {
		return m.CreatePasswordResetTokenFunc(ctx, arg)
	}
	return PasswordResetToken{}, m.unexpected("CreatePasswordResetToken")
}

func (m *MockQuerier) CreatePayment(ctx context.Context, arg CreatePaymentParams) (Payment, error) {
	m.record("CreatePayment")
	if m.CreatePaymentFunc != nil {
		return m.CreatePaymentFunc(ctx, arg)
	}
	return Payment{}, m.unexpected("CreatePayment")
}

func (m *MockQuerier) CreatePaymentLink(ctx context.Context, arg CreatePaymentLinkParams) (PaymentLink, error) {
	m.record("CreatePaymentLink")
	if m.CreatePaymentLinkFunc != nil {
		return m.CreatePaymentLinkFunc(ctx, arg)
	}
	return PaymentLink{}, m.unexpected("CreatePaymentLink")
}

func (m *MockQuerier) CreatePostalCode(ctx context.Context, arg CreatePostalCodeParams) (PostalCode, error) {
	m.record("CreatePostalCode")
	if m.CreatePostalCodeFunc != nil {
		return m.CreatePostalCodeFunc(ctx, arg)
	}
	return PostalCode{}, m.unexpected("CreatePostalCode")
}

func (m *MockQuerier) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	m.record("CreateUser")
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, arg)
	}
	return User{}, m.unexpected("CreateUser")
}

func (m *MockQuerier) CreateWaitlistEntry(ctx context.Context, arg CreateWaitlistEntryParams) (AreaWaitlistEntry, error) {
	m.record("CreateWaitlistEntry")
	if m.CreateWaitlistEntryFunc != nil {
		return m.CreateWaitlistEntryFunc(ctx, arg)
	}
	return AreaWaitlistEntry{}, m.unexpected("CreateWaitlistEntry")
}

func (m *MockQuerier) DeactivatePaymentLink(ctx context.Context, id pgtype.UUID) error {
	m.record("DeactivatePaymentLink")
	if m.DeactivatePaymentLinkFunc != nil {
		return m.DeactivatePaymentLinkFunc(ctx, id)
	}
	return m.unexpected("DeactivatePaymentLink")
}

func (m *MockQuerier) DeleteChefPostalCodes(ctx context.Context, chefID pgtype.UUID) error {
	m.record("DeleteChefPostalCodes")
	if m.DeleteChefPostalCodesFunc != nil {
		return m.DeleteChefPostalCodesFunc(ctx, chefID)
	}
	return m.unexpected("DeleteChefPostalCodes")
}

func (m *MockQuerier) DeleteCompletedJobs(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	m.record("DeleteCompletedJobs")
	if m.DeleteCompletedJobsFunc != nil {
		return m.DeleteCompletedJobsFunc(ctx, before)
	}
	return 0, m.unexpected("DeleteCompletedJobs")
}

func (m *MockQuerier) DeleteExpiredEmailVerificationTokens(ctx context.Context) (int64, error) {
	m.record("DeleteExpiredEmailVerificationTokens")
	if m.DeleteExpiredEmailVerificationTokensFunc != nil {
		return m.DeleteExpiredEmailVerificationTokensFunc(ctx)
	}
	return 0, m.unexpected("DeleteExpiredEmailVerificationTokens")
}

func (m *MockQuerier) DeleteExpiredPasswordResetTokens(ctx context.Context) (int64, error) {
	m.record("DeleteExpiredPasswordResetTokens")
	if m.DeleteExpiredPasswordResetTokensFunc != nil {
		return m.DeleteExpiredPasswordResetTokensFunc(ctx)
	}
	return 0, m.unexpected("DeleteExpiredPasswordResetTokens")
}

func (m *MockQuerier) DeleteWaitlistEntry(ctx context.Context, arg DeleteWaitlistEntryParams) (int64, error) {
	m.record("DeleteWaitlistEntry")
	if m.DeleteWaitlistEntryFunc != nil {
		return m.DeleteWaitlistEntryFunc(ctx, arg)
	}
	return 0, m.unexpected("DeleteWaitlistEntry")
}

func (m *MockQuerier) DeleteWebhookEvent(ctx context.Context, arg DeleteWebhookEventParams) error {
	m.record("DeleteWebhookEvent")
	if m.DeleteWebhookEventFunc != nil {
		return m.DeleteWebhookEventFunc(ctx, arg)
	}
	return m.unexpected("DeleteWebhookEvent")
}

func (m *MockQuerier) DeleteWebhookEventsBefore(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	m.record("DeleteWebhookEventsBefore")
	if m.DeleteWebhookEventsBeforeFunc != nil {
		return m.DeleteWebhookEventsBeforeFunc(ctx, before)
	}
	return 0, m.unexpected("DeleteWebhookEventsBefore")
}

func (m *MockQuerier) EnqueueJob(ctx context.Context, arg EnqueueJobParams) (Job, error) {
	m.record("EnqueueJob")
	if m.EnqueueJobFunc != nil {
		return m.EnqueueJobFunc(ctx, arg)
	}
	return Job{}, m.unexpected("EnqueueJob")
}

func (m *MockQuerier) FailJob(ctx context.Context, arg FailJobParams) error {
	m.record("FailJob")
	if m.FailJobFunc != nil {
		return m.FailJobFunc(ctx, arg)
	}
	return m.unexpected("FailJob")
}

func (m *MockQuerier) GetAdministrativeAreaByID(ctx context.Context, id pgtype.UUID) (AdministrativeArea, error) {
	m.record("GetAdministrativeAreaByID")
	if m.GetAdministrativeAreaByIDFunc != nil {
		return m.GetAdministrativeAreaByIDFunc(ctx, id)
	}
	return AdministrativeArea{}, m.unexpected("GetAdministrativeAreaByID")
}

func (m *MockQuerier) GetChefByID(ctx context.Context, id pgtype.UUID) (Chef, error) {
	m.record("GetChefByID")
	if m.GetChefByIDFunc != nil {
		return m.GetChefByIDFunc(ctx, id)
	}
	return Chef{}, m.unexpected("GetChefByID")
}

func (m *MockQuerier) GetChefByIDForUpdate(ctx context.Context, id pgtype.UUID) (Chef, error) {
	m.record("GetChefByIDForUpdate")
	if m.GetChefByIDForUpdateFunc != nil {
		return m.GetChefByIDForUpdateFunc(ctx, id)
	}
	return Chef{}, m.unexpected("GetChefByIDForUpdate")
}

func (m *MockQuerier) GetChefByUserID(ctx context.Context, userID pgtype.UUID) (Chef, error) {
	m.record("GetChefByUserID")
	if m.GetChefByUserIDFunc != nil {
		return m.GetChefByUserIDFunc(ctx, userID)
	}
	return Chef{}, m.unexpected("GetChefByUserID")
}

func (m *MockQuerier) GetEmailVerificationTokenByHash(ctx context.Context, tokenHash string) (EmailVerificationToken, error) {
	m.record("GetEmailVerificationTokenByHash")
	if m.GetEmailVerificationTokenByHashFunc != nil {
		return m.GetEmailVerificationTokenByHashFunc(ctx, tokenHash)
	}
	return EmailVerificationToken{}, m.unexpected("GetEmailVerificationTokenByHash")
}

func (m *MockQuerier) GetGroceryCredential(ctx context.Context, provider string) (GroceryCredential, error) {
	m.record("GetGroceryCredential")
	if m.GetGroceryCredentialFunc != nil {
		return m.GetGroceryCredentialFunc(ctx, provider)
	}
	return GroceryCredential{}, m.unexpected("GetGroceryCredential")
}

func (m *MockQuerier) GetJobByID(ctx context.Context, id pgtype.UUID) (Job, error) {
	m.record("GetJobByID")
	if m.GetJobByIDFunc != nil {
		return m.GetJobByIDFunc(ctx, id)
	}
	return Job{}, m.unexpected("GetJobByID")
}

func (m *MockQuerier) GetMealPlanByID(ctx context.Context, id pgtype.UUID) (MealPlan, error) {
	m.record("GetMealPlanByID")
	if m.GetMealPlanByIDFunc != nil {
		return m.GetMealPlanByIDFunc(ctx, id)
	}
	return MealPlan{}, m.unexpected("GetMealPlanByID")
}

func (m *MockQuerier) GetOfferingByID(ctx context.Context, id pgtype.UUID) (Offering, error) {
	m.record("GetOfferingByID")
	if m.GetOfferingByIDFunc != nil {
		return m.GetOfferingByIDFunc(ctx, id)
	}
	return Offering{}, m.unexpected("GetOfferingByID")
}

func (m *MockQuerier) GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error) {
	m.record("GetOrderByID")
	if m.GetOrderByIDFunc != nil {
		return m.GetOrderByIDFunc(ctx, id)
	}
	return Order{}, m.unexpected("GetOrderByID")
}

func (m *MockQuerier) GetOrderByIDForUpdate(ctx context.Context, id pgtype.UUID) (Order, error) {
	m.record("GetOrderByIDForUpdate")
	if m.GetOrderByIDForUpdateFunc != nil {
		return m.GetOrderByIDForUpdateFunc(ctx, id)
	}
	return Order{}, m.unexpected("GetOrderByIDForUpdate")
}

func (m *MockQuerier) GetOrderByStripeSessionID(ctx context.Context, stripeSessionID pgtype.Text) (Order, error) {
	m.record("GetOrderByStripeSessionID")
	if m.GetOrderByStripeSessionIDFunc != nil {
		return m.GetOrderByStripeSessionIDFunc(ctx, stripeSessionID)
	}
	return Order{}, m.unexpected("GetOrderByStripeSessionID")
}

func (m *MockQuerier) GetPasswordResetTokenByHash(ctx context.Context, tokenHash string) (PasswordResetToken, error) {
	m.record("GetPasswordResetTokenByHash")
	if m.GetPasswordResetTokenByHashFunc != nil {
		return m.GetPasswordResetTokenByHashFunc(ctx, tokenHash)
	}
	return PasswordResetToken{}, m.unexpected("GetPasswordResetTokenByHash")
}

func (m *MockQuerier) GetPaymentByIntentID(ctx context.Context, stripePaymentIntentID pgtype.Text) (Payment, error) {
	m.record("GetPaymentByIntentID")
	if m.GetPaymentByIntentIDFunc != nil {
		return m.GetPaymentByIntentIDFunc(ctx, stripePaymentIntentID)
	}
	return Payment{}, m.unexpected("GetPaymentByIntentID")
}

func (m *MockQuerier) GetPaymentByOrderID(ctx context.Context, orderID pgtype.UUID) (Payment, error) {
	m.record("GetPaymentByOrderID")
	if m.GetPaymentByOrderIDFunc != nil {
		return m.GetPaymentByOrderIDFunc(ctx, orderID)
	}
	return Payment{}, m.unexpected("GetPaymentByOrderID")
}

func (m *MockQuerier) GetPostalCodeByCode(ctx context.Context, arg GetPostalCodeByCodeParams) (PostalCode, error) {
	m.record("GetPostalCodeByCode")
	if m.GetPostalCodeByCodeFunc != nil {
		return m.GetPostalCodeByCodeFunc(ctx, arg)
	}
	return PostalCode{}, m.unexpected("GetPostalCodeByCode")
}

func (m *MockQuerier) GetPostalCodeByID(ctx context.Context, id pgtype.UUID) (PostalCode, error) {
	m.record("GetPostalCodeByID")
	if m.GetPostalCodeByIDFunc != nil {
		return m.GetPostalCodeByIDFunc(ctx, id)
	}
	return PostalCode{}, m.unexpected("GetPostalCodeByID")
}

func (m *MockQuerier) GetUserByEmail(ctx context.Context, email string) (User, error) {
	m.record("GetUserByEmail")
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(ctx, email)
	}
	return User{}, m.unexpected("GetUserByEmail")
}

func (m *MockQuerier) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	m.record("GetUserByID")
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(ctx, id)
	}
	return User{}, m.unexpected("GetUserByID")
}

func (m *MockQuerier) GetUserByIDForUpdate(ctx context.Context, id pgtype.UUID) (User, error) {
	m.record("GetUserByIDForUpdate")
	if m.GetUserByIDForUpdateFunc != nil {
		return m.GetUserByIDForUpdateFunc(ctx, id)
	}
	return User{}, m.unexpected("GetUserByIDForUpdate")
}

func (m *MockQuerier) GetWaitlistEntry(ctx context.Context, arg GetWaitlistEntryParams) (AreaWaitlistEntry, error) {
	m.record("GetWaitlistEntry")
	if m.GetWaitlistEntryFunc != nil {
		return m.GetWaitlistEntryFunc(ctx, arg)
	}
	return AreaWaitlistEntry{}, m.unexpected("GetWaitlistEntry")
}

func (m *MockQuerier) HasVerifiedChefForArea(ctx context.Context, areaID pgtype.UUID) (bool, error) {
	m.record("HasVerifiedChefForArea")
	if m.HasVerifiedChefForAreaFunc != nil {
		return m.HasVerifiedChefForAreaFunc(ctx, areaID)
	}
	return false, m.unexpected("HasVerifiedChefForArea")
}

func (m *MockQuerier) HasVerifiedChefForPostalCode(ctx context.Context, postalCodeID pgtype.UUID) (bool, error) {
	m.record("HasVerifiedChefForPostalCode")
	if m.HasVerifiedChefForPostalCodeFunc != nil {
		return m.HasVerifiedChefForPostalCodeFunc(ctx, postalCodeID)
	}
	return false, m.unexpected("HasVerifiedChefForPostalCode")
}

func (m *MockQuerier) InsertWebhookEvent(ctx context.Context, arg InsertWebhookEventParams) (WebhookEvent, error) {
	m.record("InsertWebhookEvent")
	if m.InsertWebhookEventFunc != nil {
		return m.InsertWebhookEventFunc(ctx, arg)
	}
	return WebhookEvent{}, m.unexpected("InsertWebhookEvent")
}

func (m *MockQuerier) ListAdministrativeAreas(ctx context.Context, country string) ([]AdministrativeArea, error) {
	m.record("ListAdministrativeAreas")
	if m.ListAdministrativeAreasFunc != nil {
		return m.ListAdministrativeAreasFunc(ctx, country)
	}
	return nil, m.unexpected("ListAdministrativeAreas")
}

func (m *MockQuerier) ListChefPostalCodes(ctx context.Context, chefID pgtype.UUID) ([]PostalCode, error) {
	m.record("ListChefPostalCodes")
	if m.ListChefPostalCodesFunc != nil {
		return m.ListChefPostalCodesFunc(ctx, chefID)
	}
	return nil, m.unexpected("ListChefPostalCodes")
}

func (m *MockQuerier) ListChefsByStatus(ctx context.Context, arg ListChefsByStatusParams) ([]Chef, error) {
	m.record("ListChefsByStatus")
	if m.ListChefsByStatusFunc != nil {
		return m.ListChefsByStatusFunc(ctx, arg)
	}
	return nil, m.unexpected("ListChefsByStatus")
}

func (m *MockQuerier) ListChildAreas(ctx context.Context, parentID pgtype.UUID) ([]AdministrativeArea, error) {
	m.record("ListChildAreas")
	if m.ListChildAreasFunc != nil {
		return m.ListChildAreasFunc(ctx, parentID)
	}
	return nil, m.unexpected("ListChildAreas")
}

func (m *MockQuerier) ListMealPlansByUser(ctx context.Context, arg ListMealPlansByUserParams) ([]MealPlan, error) {
	m.record("ListMealPlansByUser")
	if m.ListMealPlansByUserFunc != nil {
		return m.ListMealPlansByUserFunc(ctx, arg)
	}
	return nil, m.unexpected("ListMealPlansByUser")
}

func (m *MockQuerier) ListOfferingsByChef(ctx context.Context, arg ListOfferingsByChefParams) ([]Offering, error) {
	m.record("ListOfferingsByChef")
	if m.ListOfferingsByChefFunc != nil {
		return m.ListOfferingsByChefFunc(ctx, arg)
	}
	return nil, m.unexpected("ListOfferingsByChef")
}

func (m *MockQuerier) ListOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error) {
	m.record("ListOrderItems")
	if m.ListOrderItemsFunc != nil {
		return m.ListOrderItemsFunc(ctx, orderID)
	}
	return nil, m.unexpected("ListOrderItems")
}

func (m *MockQuerier) ListOrdersByChef(ctx context.Context, arg ListOrdersByChefParams) ([]Order, error) {
	m.record("ListOrdersByChef")
	if m.ListOrdersByChefFunc != nil {
		return m.ListOrdersByChefFunc(ctx, arg)
	}
	return nil, m.unexpected("ListOrdersByChef")
}

func (m *MockQuerier) ListOrdersByCustomer(ctx context.Context, arg ListOrdersByCustomerParams) ([]Order, error) {
	m.record("ListOrdersByCustomer")
	if m.ListOrdersByCustomerFunc != nil {
		return m.ListOrdersByCustomerFunc(ctx, arg)
	}
	return nil, m.unexpected("ListOrdersByCustomer")
}

func (m *MockQuerier) ListPaymentLinksByChef(ctx context.Context, chefID pgtype.UUID) ([]PaymentLink, error) {
	m.record("ListPaymentLinksByChef")
	if m.ListPaymentLinksByChefFunc != nil {
		return m.ListPaymentLinksByChefFunc(ctx, chefID)
	}
	return nil, m.unexpected("ListPaymentLinksByChef")
}

func (m *MockQuerier) ListPublishedOfferings(ctx context.Context, arg ListPublishedOfferingsParams) ([]ListPublishedOfferingsRow, error) {
	m.record("ListPublishedOfferings")
	if m.ListPublishedOfferingsFunc != nil {
		return m.ListPublishedOfferingsFunc(ctx, arg)
	}
	return nil, m.unexpected("ListPublishedOfferings")
}

func (m *MockQuerier) ListUnnotifiedWaitlistEntriesByPostalCode(ctx context.Context, postalCodeID pgtype.UUID) ([]ListUnnotifiedWaitlistEntriesByPostalCodeRow, error) {
	m.record("ListUnnotifiedWaitlistEntriesByPostalCode")
	if m.ListUnnotifiedWaitlistEntriesByPostalCodeFunc != nil {
		return m.ListUnnotifiedWaitlistEntriesByPostalCodeFunc(ctx, postalCodeID)
	}
	return nil, m.unexpected("ListUnnotifiedWaitlistEntriesByPostalCode")
}

func (m *MockQuerier) ListUsers(ctx context.Context, arg ListUsersParams) ([]User, error) {
	m.record("ListUsers")
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, arg)
	}
	return nil, m.unexpected("ListUsers")
}

func (m *MockQuerier) ListVerifiedChefsServingPostalCode(ctx context.Context, postalCodeID pgtype.UUID) ([]Chef, error) {
	m.record("ListVerifiedChefsServingPostalCode")
	if m.ListVerifiedChefsServingPostalCodeFunc != nil {
		return m.ListVerifiedChefsServingPostalCodeFunc(ctx, postalCodeID)
	}
	return nil, m.unexpected("ListVerifiedChefsServingPostalCode")
}

func (m *MockQuerier) ListWaitlistEntriesByUser(ctx context.Context, userID pgtype.UUID) ([]ListWaitlistEntriesByUserRow, error) {
	m.record("ListWaitlistEntriesByUser")
	if m.ListWaitlistEntriesByUserFunc != nil {
		return m.ListWaitlistEntriesByUserFunc(ctx, userID)
	}
	return nil, m.unexpected("ListWaitlistEntriesByUser")
}

func (m *MockQuerier) MarkEmailVerificationTokenUsed(ctx context.Context, id pgtype.UUID) error {
	m.record("MarkEmailVerificationTokenUsed")
	if m.MarkEmailVerificationTokenUsedFunc != nil {
		return m.MarkEmailVerificationTokenUsedFunc(ctx, id)
	}
	return m.unexpected("MarkEmailVerificationTokenUsed")
}

func (m *MockQuerier) MarkOrderPaid(ctx context.Context, id pgtype.UUID) (Order, error) {
	m.record("MarkOrderPaid")
	if m.MarkOrderPaidFunc != nil {
		return m.MarkOrderPaidFunc(ctx, id)
	}
	return Order{}, m.unexpected("MarkOrderPaid")
}

func (m *MockQuerier) MarkPasswordResetTokenUsed(ctx context.Context, id pgtype.UUID) error {
	m.record("MarkPasswordResetTokenUsed")
	if m.MarkPasswordResetTokenUsedFunc != nil {
		return m.MarkPasswordResetTokenUsedFunc(ctx, id)
	}
	return m.unexpected("MarkPasswordResetTokenUsed")
}

func (m *MockQuerier) MarkWaitlistEntryNotified(ctx context.Context, id pgtype.UUID) error {
	m.record("MarkWaitlistEntryNotified")
	if m.MarkWaitlistEntryNotifiedFunc != nil {
		return m.MarkWaitlistEntryNotifiedFunc(ctx, id)
	}
	return m.unexpected("MarkWaitlistEntryNotified")
}

func (m *MockQuerier) RecordPaymentRefund(ctx context.Context, arg RecordPaymentRefundParams) (Payment, error) {
	m.record("RecordPaymentRefund")
	if m.RecordPaymentRefundFunc != nil {
		return m.RecordPaymentRefundFunc(ctx, arg)
	}
	return Payment{}, m.unexpected("RecordPaymentRefund")
}

func (m *MockQuerier) RefreshAreaPostalCodeCounts(ctx context.Context) error {
	m.record("RefreshAreaPostalCodeCounts")
	if m.RefreshAreaPostalCodeCountsFunc != nil {
		return m.RefreshAreaPostalCodeCountsFunc(ctx)
	}
	return m.unexpected("RefreshAreaPostalCodeCounts")
}

func (m *MockQuerier) ReleaseOfferingCapacity(ctx context.Context, arg ReleaseOfferingCapacityParams) error {
	m.record("ReleaseOfferingCapacity")
	if m.ReleaseOfferingCapacityFunc != nil {
		return m.ReleaseOfferingCapacityFunc(ctx, arg)
	}
	return m.unexpected("ReleaseOfferingCapacity")
}

func (m *MockQuerier) ReserveOfferingCapacity(ctx context.Context, arg ReserveOfferingCapacityParams) (Offering, error) {
	m.record("ReserveOfferingCapacity")
	if m.ReserveOfferingCapacityFunc != nil {
		return m.ReserveOfferingCapacityFunc(ctx, arg)
	}
	return Offering{}, m.unexpected("ReserveOfferingCapacity")
}

func (m *MockQuerier) SearchOfferingsByEmbedding(ctx context.Context, arg SearchOfferingsByEmbeddingParams) ([]SearchOfferingsByEmbeddingRow, error) {
	m.record("SearchOfferingsByEmbedding")
	if m.SearchOfferingsByEmbeddingFunc != nil {
		return m.SearchOfferingsByEmbeddingFunc(ctx, arg)
	}
	return nil, m.unexpected("SearchOfferingsByEmbedding")
}

func (m *MockQuerier) SetOrderStripeSession(ctx context.Context, arg SetOrderStripeSessionParams) (Order, error) {
	m.record("SetOrderStripeSession")
	if m.SetOrderStripeSessionFunc != nil {
		return m.SetOrderStripeSessionFunc(ctx, arg)
	}
	return Order{}, m.unexpected("SetOrderStripeSession")
}

func (m *MockQuerier) SetUserEmailVerified(ctx context.Context, id pgtype.UUID) error {
	m.record("SetUserEmailVerified")
	if m.SetUserEmailVerifiedFunc != nil {
		return m.SetUserEmailVerifiedFunc(ctx, id)
	}
	return m.unexpected("SetUserEmailVerified")
}

func (m *MockQuerier) UpdateChefBaseLocation(ctx context.Context, arg UpdateChefBaseLocationParams) (Chef, error) {
	m.record("UpdateChefBaseLocation")
	if m.UpdateChefBaseLocationFunc != nil {
		return m.UpdateChefBaseLocationFunc(ctx, arg)
	}
	return Chef{}, m.unexpected("UpdateChefBaseLocation")
}

func (m *MockQuerier) UpdateChefProfile(ctx context.Context, arg UpdateChefProfileParams) (Chef, error) {
	m.record("UpdateChefProfile")
	if m.UpdateChefProfileFunc != nil {
		return m.UpdateChefProfileFunc(ctx, arg)
	}
	return Chef{}, m.unexpected("UpdateChefProfile")
}

func (m *MockQuerier) UpdateChefStatus(ctx context.Context, arg UpdateChefStatusParams) (Chef, error) {
	m.record("UpdateChefStatus")
	if m.UpdateChefStatusFunc != nil {
		return m.UpdateChefStatusFunc(ctx, arg)
	}
	return Chef{}, m.unexpected("UpdateChefStatus")
}

func (m *MockQuerier) UpdateMealPlanFailed(ctx context.Context, arg UpdateMealPlanFailedParams) (MealPlan, error) {
	m.record("UpdateMealPlanFailed")
	if m.UpdateMealPlanFailedFunc != nil {
		return m.UpdateMealPlanFailedFunc(ctx, arg)
	}
	return MealPlan{}, m.unexpected("UpdateMealPlanFailed")
}

func (m *MockQuerier) UpdateMealPlanReady(ctx context.Context, arg UpdateMealPlanReadyParams) (MealPlan, error) {
	m.record("UpdateMealPlanReady")
	if m.UpdateMealPlanReadyFunc != nil {
		return m.UpdateMealPlanReadyFunc(ctx, arg)
	}
	return MealPlan{}, m.unexpected("UpdateMealPlanReady")
}

func (m *MockQuerier) UpdateOffering(ctx context.Context, arg UpdateOfferingParams) (Offering, error) {
	m.record("UpdateOffering")
	if m.UpdateOfferingFunc != nil {
		return m.UpdateOfferingFunc(ctx, arg)
	}
	return Offering{}, m.unexpected("UpdateOffering")
}

func (m *MockQuerier) UpdateOfferingEmbedding(ctx context.Context, arg UpdateOfferingEmbeddingParams) error {
	m.record("UpdateOfferingEmbedding")
	if m.UpdateOfferingEmbeddingFunc != nil {
		return m.UpdateOfferingEmbeddingFunc(ctx, arg)
	}
	return m.unexpected("UpdateOfferingEmbedding")
}

func (m *MockQuerier) UpdateOfferingStatus(ctx context.Context, arg UpdateOfferingStatusParams) (Offering, error) {
	m.record("UpdateOfferingStatus")
	if m.UpdateOfferingStatusFunc != nil {
		return m.UpdateOfferingStatusFunc(ctx, arg)
	}
	return Offering{}, m.unexpected("UpdateOfferingStatus")
}

func (m *MockQuerier) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	m.record("UpdateOrderStatus")
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(ctx, arg)
	}
	return Order{}, m.unexpected("UpdateOrderStatus")
}

func (m *MockQuerier) UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (Payment, error) {
	m.record("UpdatePaymentStatus")
	if m.UpdatePaymentStatusFunc != nil {
		return m.UpdatePaymentStatusFunc(ctx, arg)
	}
	return Payment{}, m.unexpected("UpdatePaymentStatus")
}

func (m *MockQuerier) UpdateUserLocation(ctx context.Context, arg UpdateUserLocationParams) (User, error) {
	m.record("UpdateUserLocation")
	if m.UpdateUserLocationFunc != nil {
		return m.UpdateUserLocationFunc(ctx, arg)
	}
	return User{}, m.unexpected("UpdateUserLocation")
}

func (m *MockQuerier) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	m.record("UpdateUserPassword")
	if m.UpdateUserPasswordFunc != nil {
		return m.UpdateUserPasswordFunc(ctx, arg)
	}
	return m.unexpected("UpdateUserPassword")
}

func (m *MockQuerier) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	m.record("UpdateUserProfile")
	if m.UpdateUserProfileFunc != nil {
		return m.UpdateUserProfileFunc(ctx, arg)
	}
	return User{}, m.unexpected("UpdateUserProfile")
}

func (m *MockQuerier) UpdateUserRole(ctx context.Context, arg UpdateUserRoleParams) (User, error) {
	m.record("UpdateUserRole")
	if m.UpdateUserRoleFunc != nil {
		return m.UpdateUserRoleFunc(ctx, arg)
	}
	return User{}, m.unexpected("UpdateUserRole")
}

func (m *MockQuerier) UpsertAdministrativeArea(ctx context.Context, arg UpsertAdministrativeAreaParams) (AdministrativeArea, error) {
	m.record("UpsertAdministrativeArea")
	if m.UpsertAdministrativeAreaFunc != nil {
		return m.UpsertAdministrativeAreaFunc(ctx, arg)
	}
	return AdministrativeArea{}, m.unexpected("UpsertAdministrativeArea")
}

func (m *MockQuerier) UpsertGroceryCredential(ctx context.Context, arg UpsertGroceryCredentialParams) (GroceryCredential, error) {
	m.record("UpsertGroceryCredential")
	if m.UpsertGroceryCredentialFunc != nil {
		return m.UpsertGroceryCredentialFunc(ctx, arg)
	}
	return GroceryCredential{}, m.unexpected("UpsertGroceryCredential")
}

func (m *MockQuerier) UpsertPostalCode(ctx context.Context, arg UpsertPostalCodeParams) (PostalCode, error) {
	m.record("UpsertPostalCode")
	if m.UpsertPostalCodeFunc != nil {
		return m.UpsertPostalCodeFunc(ctx, arg)
	}
	return PostalCode{}, m.unexpected("UpsertPostalCode")
}

// MockTxRunner satisfies TxRunner by running fn directly against the
// wrapped Querier, without a real transaction.
type MockTxRunner struct {
	Q Querier

	// Err, when set, is returned before fn runs.
	Err error

	Calls int
}

func (m *MockTxRunner) ExecTx(ctx context.Context, fn func(Querier) error) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(m.Q)
}
