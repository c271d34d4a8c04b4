package api

import (
	"context"
	"fmt"
	"net/http"

	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/listsync"
	"alcyxob/fitsocial/internal/service"

	"github.com/gin-gonic/gin"
)

// planOps binds one list kind (workout statuses, workout plans, meal plans)
// to its dispatcher operations.
type planOps[T listsync.Keyed] struct {
	list   *listsync.List[T]
	load   func(ctx context.Context) error
	get    func(ctx context.Context, id string) (*T, error)
	create func(ctx context.Context, e T) (*T, error)
	update func(ctx context.Context, id string, e T) (*T, error)
	remove func(ctx context.Context, id string) error
}

func statusOps(d *service.Dispatcher) planOps[domain.WorkoutStatus] {
	return planOps[domain.WorkoutStatus]{
		list:   d.Lists().WorkoutStatuses,
		load:   d.LoadWorkoutStatuses,
		get:    d.GetWorkoutStatus,
		create: d.CreateWorkoutStatus,
		update: d.UpdateWorkoutStatus,
		remove: d.DeleteWorkoutStatus,
	}
}

func workoutPlanOps(d *service.Dispatcher) planOps[domain.WorkoutPlan] {
	return planOps[domain.WorkoutPlan]{
		list:   d.Lists().WorkoutPlans,
		load:   d.LoadWorkoutPlans,
		get:    d.GetWorkoutPlan,
		create: d.CreateWorkoutPlan,
		update: d.UpdateWorkoutPlan,
		remove: d.DeleteWorkoutPlan,
	}
}

func mealPlanOps(d *service.Dispatcher) planOps[domain.MealPlan] {
	return planOps[domain.MealPlan]{
		list:   d.Lists().MealPlans,
		load:   d.LoadMealPlans,
		get:    d.GetMealPlan,
		create: d.CreateMealPlan,
		update: d.UpdateMealPlan,
		remove: d.DeleteMealPlan,
	}
}

// registerPlanRoutes mounts list/get/create/update/delete under group.
func registerPlanRoutes[T listsync.Keyed](group *gin.RouterGroup, ops planOps[T]) {
	group.GET("", listPlans(ops))
	group.POST("", createPlan(ops))
	group.GET("/:id", getPlan(ops))
	group.PUT("/:id", updatePlan(ops))
	group.DELETE("/:id", deletePlan(ops))
}

func listPlans[T listsync.Keyed](ops planOps[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ops.list.Loaded() || c.Query("reload") == "true" {
			if err := ops.load(c.Request.Context()); err != nil {
				respondError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, ops.list.Items())
	}
}

func getPlan[T listsync.Keyed](ops planOps[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := ops.get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

func createPlan[T listsync.Keyed](ops planOps[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var e T
		if err := c.ShouldBindJSON(&e); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
		created, err := ops.create(c.Request.Context(), e)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func updatePlan[T listsync.Keyed](ops planOps[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var e T
		if err := c.ShouldBindJSON(&e); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
		updated, err := ops.update(c.Request.Context(), c.Param("id"), e)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deletePlan[T listsync.Keyed](ops planOps[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ops.remove(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
