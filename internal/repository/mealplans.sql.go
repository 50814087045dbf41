package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createMealPlan = `-- name: CreateMealPlan :one
INSERT INTO meal_plans (user_id, title, request)
VALUES ($1, $2, $3)
RETURNING id, user_id, title, status, request, plan, error_message, attempts, created_at, updated_at
`

type CreateMealPlanParams struct {
	UserID  pgtype.UUID
	Title   string
	Request string
}

func (q *Queries) CreateMealPlan(ctx context.Context, arg CreateMealPlanParams) (MealPlan, error) {
	row := q.db.QueryRow(ctx, createMealPlan, arg.UserID, arg.Title, arg.Request)
	var i MealPlan
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Title,
		&i.Status,
		&i.Request,
		&i.Plan,
		&i.ErrorMessage,
		&i.Attempts,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMealPlanByID = `-- name: GetMealPlanByID :one
SELECT id, user_id, title, status, request, plan, error_message, attempts, created_at, updated_at
FROM meal_plans
WHERE id = $1
`

func (q *Queries) GetMealPlanByID(ctx context.Context, id pgtype.UUID) (MealPlan, error) {
	row := q.db.QueryRow(ctx, getMealPlanByID, id)
	var i MealPlan
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Title,
		&i.Status,
		&i.Request,
		&i.Plan,
		&i.ErrorMessage,
		&i.Attempts,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listMealPlansByUser = `-- name: ListMealPlansByUser :many
SELECT id, user_id, title, status, request, plan, error_message, attempts, created_at, updated_at
FROM meal_plans
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

type ListMealPlansByUserParams struct {
	UserID pgtype.UUID
	Limit  int32
	Offset int32
}

func (q *Queries) ListMealPlansByUser(ctx context.Context, arg ListMealPlansByUserParams) ([]MealPlan, error) {
	rows, err := q.db.Query(ctx, listMealPlansByUser, arg.UserID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MealPlan
	for rows.Next() {
		var i MealPlan
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Title,
			&i.Status,
			&i.Request,
			&i.Plan,
			&i.ErrorMessage,
			&i.Attempts,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateMealPlanReady = `-- name: UpdateMealPlanReady :one
UPDATE meal_plans
SET status = 'ready',
    title = COALESCE(NULLIF($2, ''), title),
    plan = $3,
    attempts = $4,
    error_message = NULL,
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, title, status, request, plan, error_message, attempts, created_at, updated_at
`

type UpdateMealPlanReadyParams struct {
	ID       pgtype.UUID
	Title    string
	Plan     []byte
	Attempts int32
}

func (q *Queries) UpdateMealPlanReady(ctx context.Context, arg UpdateMealPlanReadyParams) (MealPlan, error) {
	row := q.db.QueryRow(ctx, updateMealPlanReady, arg.ID, arg.Title, arg.Plan, arg.Attempts)
	var i MealPlan
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Title,
		&i.Status,
		&i.Request,
		&i.Plan,
		&i.ErrorMessage,
		&i.Attempts,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateMealPlanFailed = `-- name: UpdateMealPlanFailed :one
UPDATE meal_plans
SET status = 'failed',
    error_message = $2,
    attempts = $3,
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, title, status, request, plan, error_message, attempts, created_at, updated_at
`

type UpdateMealPlanFailedParams struct {
	ID           pgtype.UUID
	ErrorMessage pgtype.Text
	Attempts     int32
}

func (q *Queries) UpdateMealPlanFailed(ctx context.Context, arg UpdateMealPlanFailedParams) (MealPlan, error) {
	row := q.db.QueryRow(ctx, updateMealPlanFailed, arg.ID, arg.ErrorMessage, arg.Attempts)
	var i MealPlan
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Title,
		&i.Status,
		&i.Request,
		&i.Plan,
		&i.ErrorMessage,
		&i.Attempts,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
