package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/jobs"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
)

// enqueuedJobTypes pulls the job types recorded by an EnqueueJobFunc capture.
func enqueuedJobTypes(captured []repository.EnqueueJobParams) []string {
	types := make([]string, len(captured))
	for i, arg := range captured {
		types[i] = arg.JobType
	}
	return types
}

func captureJobs(q *repository.MockQuerier) *[]repository.EnqueueJobParams {
	captured := &[]repository.EnqueueJobParams{}
	q.EnqueueJobFunc = func(ctx context.Context, arg repository.EnqueueJobParams) (repository.Job, error) {
		*captured = append(*captured, arg)
		return repository.Job{JobType: arg.JobType, Queue: arg.Queue}, nil
	}
	return captured
}

func TestChefService_Apply(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	verifiedUser := func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
		return repository.User{ID: id, Email: "chef@example.com", EmailVerified: true, Role: domain.RoleCustomer}, nil
	}

	t.Run("requires a verified email", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetUserByIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
			return repository.User{ID: id, EmailVerified: false}, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.Apply(ctx, userID, service.ApplyChefParams{DisplayName: "Ada's Kitchen", PostalCode: "98101", Country: "US"})
		assert.ErrorIs(t, err, domain.ErrEmailNotVerified)
	})

	t.Run("one chef per account", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetUserByIDFunc = verifiedUser
		q.GetChefByUserIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: repository.UUID(uuid.New())}, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.Apply(ctx, userID, service.ApplyChefParams{DisplayName: "Ada's Kitchen", PostalCode: "98101", Country: "US"})
		assert.ErrorIs(t, err, domain.ErrChefExists)
	})

	t.Run("seeds the service area with the kitchen postal code", func(t *testing.T) {
		baseID := repository.UUID(uuid.New())
		q := repository.NewMockQuerier()
		q.GetUserByIDFunc = verifiedUser
		q.GetChefByUserIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{}, pgx.ErrNoRows
		}
		q.CreatePostalCodeFunc = func(ctx context.Context, arg repository.CreatePostalCodeParams) (repository.PostalCode, error) {
			return repository.PostalCode{ID: baseID, Code: arg.Code, Country: arg.Country}, nil
		}
		var created repository.CreateChefParams
		chefID := repository.UUID(uuid.New())
		q.CreateChefFunc = func(ctx context.Context, arg repository.CreateChefParams) (repository.Chef, error) {
			created = arg
			return repository.Chef{ID: chefID, UserID: arg.UserID, DisplayName: arg.DisplayName, Status: string(domain.ChefStatusPending), BasePostalCodeID: arg.BasePostalCodeID}, nil
		}
		var seeded repository.AddChefPostalCodeParams
		q.AddChefPostalCodeFunc = func(ctx context.Context, arg repository.AddChefPostalCodeParams) error {
			seeded = arg
			return nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		miles := 10.0
		chef, err := svc.Apply(ctx, userID, service.ApplyChefParams{
			DisplayName:    "  Ada's Kitchen  ",
			Bio:            "Wood-fired everything",
			PostalCode:     "98101",
			Country:        "US",
			MaxTravelMiles: &miles,
		})

		require.NoError(t, err)
		assert.Equal(t, "Ada's Kitchen", created.DisplayName)
		assert.Equal(t, baseID, created.BasePostalCodeID)
		assert.Equal(t, 10.0, created.MaxTravelMiles.Float64)
		assert.Equal(t, chefID, seeded.ChefID)
		assert.Equal(t, baseID, seeded.PostalCodeID)
		assert.Equal(t, string(domain.ChefStatusPending), chef.Status)
	})
}

func TestChefService_Approve(t *testing.T) {
	ctx := context.Background()
	chefID := uuid.New()
	applicantID := repository.UUID(uuid.New())

	t.Run("verifies a pending chef and promotes the user", func(t *testing.T) {
		q := repository.NewMockQuerier()
		captured := captureJobs(q)
		q.GetChefByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: id, UserID: applicantID, DisplayName: "Ada's Kitchen", Status: string(domain.ChefStatusPending)}, nil
		}
		q.GetUserByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
			return repository.User{ID: id, Email: "chef@example.com", Role: domain.RoleCustomer}, nil
		}
		var roleUpdate repository.UpdateUserRoleParams
		q.UpdateUserRoleFunc = func(ctx context.Context, arg repository.UpdateUserRoleParams) (repository.User, error) {
			roleUpdate = arg
			return repository.User{ID: arg.ID, Role: arg.Role}, nil
		}
		q.UpdateChefStatusFunc = func(ctx context.Context, arg repository.UpdateChefStatusParams) (repository.Chef, error) {
			return repository.Chef{ID: arg.ID, UserID: applicantID, DisplayName: "Ada's Kitchen", Status: arg.Status, IsVerified: arg.IsVerified}, nil
		}
		q.ListChefPostalCodesFunc = func(ctx context.Context, id pgtype.UUID) ([]repository.PostalCode, error) {
			return []repository.PostalCode{{ID: repository.UUID(uuid.New()), Code: "98101"}}, nil
		}
		q.CountWaitlistEntriesByPostalCodeFunc = func(ctx context.Context, id pgtype.UUID) (int64, error) {
			return 2, nil
		}
		tx := &repository.MockTxRunner{Q: q}
		svc := service.NewChefService(q, tx, service.NewLocationService(q), nil, "https://localplate.test")

		chef, err := svc.Approve(ctx, chefID)

		require.NoError(t, err)
		assert.True(t, chef.IsVerified)
		assert.Equal(t, string(domain.ChefStatusVerified), chef.Status)
		assert.Equal(t, domain.RoleChef, roleUpdate.Role)
		assert.Equal(t, 1, tx.Calls)
		assert.Equal(t, []string{jobs.JobTypeChefApproved, jobs.JobTypeNotifyWaitlistArea}, enqueuedJobTypes(*captured))
	})

	t.Run("skips the waitlist sweep when nobody is waiting", func(t *testing.T) {
		q := repository.NewMockQuerier()
		captured := captureJobs(q)
		q.GetChefByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: id, UserID: applicantID, Status: string(domain.ChefStatusPending)}, nil
		}
		q.GetUserByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
			return repository.User{ID: id, Role: domain.RoleChef}, nil
		}
		q.UpdateChefStatusFunc = func(ctx context.Context, arg repository.UpdateChefStatusParams) (repository.Chef, error) {
			return repository.Chef{ID: arg.ID, UserID: applicantID, Status: arg.Status, IsVerified: true}, nil
		}
		q.ListChefPostalCodesFunc = func(ctx context.Context, id pgtype.UUID) ([]repository.PostalCode, error) {
			return []repository.PostalCode{{ID: repository.UUID(uuid.New())}}, nil
		}
		q.CountWaitlistEntriesByPostalCodeFunc = func(ctx context.Context, id pgtype.UUID) (int64, error) {
			return 0, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.Approve(ctx, chefID)

		require.NoError(t, err)
		assert.Equal(t, []string{jobs.JobTypeChefApproved}, enqueuedJobTypes(*captured))
	})

	t.Run("rejects an invalid transition", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetChefByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: id, Status: string(domain.ChefStatusRejected)}, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.Approve(ctx, chefID)
		assert.ErrorIs(t, err, domain.ErrChefStatusChange)
	})
}

func TestChefService_Reject(t *testing.T) {
	ctx := context.Background()

	q := repository.NewMockQuerier()
	captured := captureJobs(q)
	q.GetChefByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
		return repository.Chef{ID: id, UserID: repository.UUID(uuid.New()), Status: string(domain.ChefStatusPending)}, nil
	}
	q.GetUserByIDForUpdateFunc = func(ctx context.Context, id pgtype.UUID) (repository.User, error) {
		return repository.User{ID: id, Email: "chef@example.com"}, nil
	}
	var statusUpdate repository.UpdateChefStatusParams
	q.UpdateChefStatusFunc = func(ctx context.Context, arg repository.UpdateChefStatusParams) (repository.Chef, error) {
		statusUpdate = arg
		return repository.Chef{ID: arg.ID, Status: arg.Status, RejectedReason: arg.RejectedReason}, nil
	}
	svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

	chef, err := svc.Reject(ctx, uuid.New(), "no food handler permit")

	require.NoError(t, err)
	assert.Equal(t, string(domain.ChefStatusRejected), chef.Status)
	assert.Equal(t, "no food handler permit", statusUpdate.RejectedReason.String)
	assert.False(t, statusUpdate.IsVerified)
	require.Equal(t, []string{jobs.JobTypeChefRejected}, enqueuedJobTypes(*captured))

	var payload jobs.ChefRejectedPayload
	require.NoError(t, json.Unmarshal((*captured)[0].Payload, &payload))
	assert.Equal(t, "no food handler permit", payload.Reason)
}

func TestChefService_UpdateServiceArea(t *testing.T) {
	ctx := context.Background()
	chefID := uuid.New()

	t.Run("requires at least one code", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetChefByIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: id, IsVerified: true}, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.UpdateServiceArea(ctx, chefID, nil)
		assert.ErrorIs(t, err, domain.ErrServiceAreaRequired)
	})

	t.Run("replaces the area and sweeps only new codes", func(t *testing.T) {
		keptID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
		addedID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
		codeRows := map[string]repository.PostalCode{
			"98101": {ID: repository.UUID(keptID), Code: "98101", Country: "US"},
			"98102": {ID: repository.UUID(addedID), Code: "98102", Country: "US"},
		}

		q := repository.NewMockQuerier()
		captured := captureJobs(q)
		q.GetChefByIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: id, IsVerified: true}, nil
		}
		q.CreatePostalCodeFunc = func(ctx context.Context, arg repository.CreatePostalCodeParams) (repository.PostalCode, error) {
			return codeRows[arg.Code], nil
		}
		q.ListChefPostalCodesFunc = func(ctx context.Context, id pgtype.UUID) ([]repository.PostalCode, error) {
			return []repository.PostalCode{codeRows["98101"]}, nil
		}
		deleted := false
		q.DeleteChefPostalCodesFunc = func(ctx context.Context, id pgtype.UUID) error {
			deleted = true
			return nil
		}
		var added []repository.AddChefPostalCodeParams
		q.AddChefPostalCodeFunc = func(ctx context.Context, arg repository.AddChefPostalCodeParams) error {
			added = append(added, arg)
			return nil
		}
		q.CountWaitlistEntriesByPostalCodeFunc = func(ctx context.Context, id pgtype.UUID) (int64, error) {
			return 1, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		resolved, err := svc.UpdateServiceArea(ctx, chefID, []service.ServiceAreaCode{
			{PostalCode: "98101", Country: "US"},
			{PostalCode: "98102", Country: "US"},
			{PostalCode: "98102", Country: "US"},
		})

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Len(t, resolved, 2)
		assert.Len(t, added, 2)

		// Only 98102 is new, so only it gets a waitlist sweep.
		require.Equal(t, []string{jobs.JobTypeNotifyWaitlistArea}, enqueuedJobTypes(*captured))
		var payload jobs.NotifyWaitlistAreaPayload
		require.NoError(t, json.Unmarshal((*captured)[0].Payload, &payload))
		assert.Equal(t, addedID, payload.PostalCodeID)
	})

	t.Run("unverified chefs do not trigger sweeps", func(t *testing.T) {
		q := repository.NewMockQuerier()
		captured := captureJobs(q)
		q.GetChefByIDFunc = func(ctx context.Context, id pgtype.UUID) (repository.Chef, error) {
			return repository.Chef{ID: id, IsVerified: false}, nil
		}
		q.CreatePostalCodeFunc = func(ctx context.Context, arg repository.CreatePostalCodeParams) (repository.PostalCode, error) {
			return repository.PostalCode{ID: repository.UUID(uuid.New()), Code: arg.Code}, nil
		}
		q.ListChefPostalCodesFunc = func(ctx context.Context, id pgtype.UUID) ([]repository.PostalCode, error) {
			return nil, nil
		}
		q.DeleteChefPostalCodesFunc = func(ctx context.Context, id pgtype.UUID) error { return nil }
		q.AddChefPostalCodeFunc = func(ctx context.Context, arg repository.AddChefPostalCodeParams) error { return nil }
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.UpdateServiceArea(ctx, chefID, []service.ServiceAreaCode{{PostalCode: "98101", Country: "US"}})

		require.NoError(t, err)
		assert.Empty(t, *captured)
	})
}

func TestChefService_ListVerified(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown postal code lists nobody", func(t *testing.T) {
		q := repository.NewMockQuerier()
		q.GetPostalCodeByCodeFunc = func(ctx context.Context, arg repository.GetPostalCodeByCodeParams) (repository.PostalCode, error) {
			return repository.PostalCode{}, pgx.ErrNoRows
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		chefs, err := svc.ListVerified(ctx, service.ListChefsParams{PostalCode: "00000", Country: "US"})
		require.NoError(t, err)
		assert.Empty(t, chefs)
	})

	t.Run("postal filter narrows to serving chefs", func(t *testing.T) {
		codeID := repository.UUID(uuid.New())
		q := repository.NewMockQuerier()
		q.GetPostalCodeByCodeFunc = func(ctx context.Context, arg repository.GetPostalCodeByCodeParams) (repository.PostalCode, error) {
			assert.Equal(t, "98101", arg.Code)
			return repository.PostalCode{ID: codeID, Code: arg.Code}, nil
		}
		q.ListVerifiedChefsServingPostalCodeFunc = func(ctx context.Context, id pgtype.UUID) ([]repository.Chef, error) {
			require.Equal(t, codeID, id)
			return []repository.Chef{{DisplayName: "Ada's Kitchen", IsVerified: true}}, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		chefs, err := svc.ListVerified(ctx, service.ListChefsParams{PostalCode: "98101", Country: "US"})
		require.NoError(t, err)
		require.Len(t, chefs, 1)
		assert.Equal(t, "Ada's Kitchen", chefs[0].DisplayName)
	})

	t.Run("no filter falls back to the status list", func(t *testing.T) {
		q := repository.NewMockQuerier()
		var got repository.ListChefsByStatusParams
		q.ListChefsByStatusFunc = func(ctx context.Context, arg repository.ListChefsByStatusParams) ([]repository.Chef, error) {
			got = arg
			return nil, nil
		}
		svc := service.NewChefService(q, &repository.MockTxRunner{Q: q}, service.NewLocationService(q), nil, "https://localplate.test")

		_, err := svc.ListVerified(ctx, service.ListChefsParams{})
		require.NoError(t, err)
		assert.Equal(t, string(domain.ChefStatusVerified), got.Status)
		assert.Equal(t, int32(50), got.Limit)
	})
}
