package service

import (
	"context"

	"alcyxob/fitsocial/internal/apiclient"
	"alcyxob/fitsocial/internal/domain"
)

// API is the remote surface the dispatcher drives. *apiclient.Client implements it.
type API interface {
	Login(ctx context.Context, creds domain.Credentials) (*apiclient.LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)

	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, activeOnly bool) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error)
	Follow(ctx context.Context, userID, followedID string) (*domain.User, error)

	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListUserPosts(ctx context.Context, userID string) ([]domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	UpdatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	DeletePost(ctx context.Context, postID string) error
	LikePost(ctx context.Context, postID, userID string) (*domain.Post, error)

	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
	AddComment(ctx context.Context, postID string, cm domain.Comment) (*domain.Comment, error)
	UpdateComment(ctx context.Context, commentID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error

	ListShares(ctx context.Context) ([]domain.SharedPost, error)
	SharePost(ctx context.Context, req domain.ShareRequest) (*domain.SharedPost, error)
	DeleteShare(ctx context.Context, shareID string) error
	LikeShare(ctx context.Context, shareID, userID string) (*domain.SharedPost, error)

	ListWorkoutStatuses(ctx context.Context) ([]domain.WorkoutStatus, error)
	GetWorkoutStatus(ctx context.Context, id string) (*domain.WorkoutStatus, error)
	CreateWorkoutStatus(ctx context.Context, s domain.WorkoutStatus) (*domain.WorkoutStatus, error)
	UpdateWorkoutStatus(ctx context.Context, s domain.WorkoutStatus) (*domain.WorkoutStatus, error)
	DeleteWorkoutStatus(ctx context.Context, id string) error

	ListWorkoutPlans(ctx context.Context) ([]domain.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	CreateWorkoutPlan(ctx context.Context, p domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, p domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, id string) error

	ListMealPlans(ctx context.Context) ([]domain.MealPlan, error)
	GetMealPlan(ctx context.Context, id string) (*domain.MealPlan, error)
	CreateMealPlan(ctx context.Context, m domain.MealPlan) (*domain.MealPlan, error)
	UpdateMealPlan(ctx context.Context, m domain.MealPlan) (*domain.MealPlan, error)
	DeleteMealPlan(ctx context.Context, id string) error
}

var _ API = (*apiclient.Client)(nil)
