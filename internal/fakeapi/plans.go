package fakeapi

import (
	"net/http"

	"alcyxob/fitsocial/internal/domain"

	"github.com/gin-gonic/gin"
)

func setStatusID(v *domain.WorkoutStatus, id string) { v.ID = id }
func setPlanID(v *domain.WorkoutPlan, id string)     { v.ID = id }
func setMealID(v *domain.MealPlan, id string)        { v.ID = id }

// SeedWorkoutStatus stores a workout status.
func (s *Server) SeedWorkoutStatus(v domain.WorkoutStatus) domain.WorkoutStatus {
	return seed(s, &s.statuses, v, setStatusID)
}

// SeedWorkoutPlan stores a workout plan.
func (s *Server) SeedWorkoutPlan(v domain.WorkoutPlan) domain.WorkoutPlan {
	return seed(s, &s.plans, v, setPlanID)
}

// SeedMealPlan stores a meal plan.
func (s *Server) SeedMealPlan(v domain.MealPlan) domain.MealPlan {
	return seed(s, &s.meals, v, setMealID)
}

// WorkoutStatuses returns a copy of the stored statuses.
func (s *Server) WorkoutStatuses() []domain.WorkoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WorkoutStatus{}, s.statuses...)
}

// MealPlans returns a copy of the stored meal plans.
func (s *Server) MealPlans() []domain.MealPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MealPlan{}, s.meals...)
}

func seed[T keyed](s *Server, items *[]T, v T, setID func(*T, string)) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.Key() == "" {
		setID(&v, newID())
	}
	*items = append(*items, v)
	return v
}

func listAll[T keyed](s *Server, items *[]T) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.JSON(http.StatusOK, append([]T{}, *items...))
	}
}

func getOne[T keyed](s *Server, items *[]T, what string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := indexOf(*items, c.Param("id"))
		if i < 0 {
			notFound(c, what)
			return
		}
		c.JSON(http.StatusOK, (*items)[i])
	}
}

func createOne[T keyed](s *Server, items *[]T, what string, setID func(*T, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			abortWithError(c, http.StatusBadRequest, what+" validation error: "+err.Error())
			return
		}
		setID(&v, newID())
		s.mu.Lock()
		defer s.mu.Unlock()
		*items = append(*items, v)
		c.JSON(http.StatusCreated, v)
	}
}

func updateOne[T keyed](s *Server, items *[]T, what string, setID func(*T, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			abortWithError(c, http.StatusBadRequest, what+" validation error: "+err.Error())
			return
		}
		setID(&v, c.Param("id"))
		s.mu.Lock()
		defer s.mu.Unlock()
		i := indexOf(*items, c.Param("id"))
		if i < 0 {
			notFound(c, what)
			return
		}
		(*items)[i] = v
		c.JSON(http.StatusOK, v)
	}
}

func deleteOne[T keyed](s *Server, items *[]T, what string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := indexOf(*items, c.Param("id"))
		if i < 0 {
			notFound(c, what)
			return
		}
		*items = append((*items)[:i], (*items)[i+1:]...)
		c.Status(http.StatusNoContent)
	}
}
