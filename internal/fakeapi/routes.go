package fakeapi

func (s *Server) routes() {
	r := s.router

	r.GET("/api/user", s.me)

	users := r.Group("/users")
	{
		users.POST("/register", s.register)
		users.POST("/login", s.login)
		users.POST("/follow", s.follow)
		users.GET("", s.listUsers)
		users.GET("/active", s.listActiveUsers)
		users.GET("/:id", s.getUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
		users.POST("/:id/deactivate", s.deactivate)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", s.listPosts)
		posts.POST("", s.createPost)
		posts.PUT("", s.updatePost)
		posts.POST("/like", s.likePost)
		posts.GET("/user/:userId", s.listUserPosts)
		posts.GET("/:id", s.getPost)
		posts.DELETE("/:id", s.deletePost)
	}

	comments := r.Group("/api/comments")
	{
		comments.GET("/post/:postId", s.listComments)
		comments.POST("/post/:postId", s.addComment)
		comments.PUT("/:id", s.updateComment)
		comments.DELETE("/:postId/:id", s.deleteComment)
	}

	share := r.Group("/share")
	{
		share.GET("", s.listShares)
		share.POST("", s.createShare)
		share.POST("/like", s.likeShare)
		share.DELETE("/:id", s.deleteShare)
	}

	statuses := r.Group("/workoutStatus")
	{
		statuses.GET("", listAll(s, &s.statuses))
		statuses.POST("", createOne(s, &s.statuses, "Workout status", setStatusID))
		statuses.GET("/:id", getOne(s, &s.statuses, "Workout status"))
		statuses.PUT("/:id", updateOne(s, &s.statuses, "Workout status", setStatusID))
		statuses.DELETE("/:id", deleteOne(s, &s.statuses, "Workout status"))
	}

	plans := r.Group("/workoutPlans")
	{
		plans.GET("", listAll(s, &s.plans))
		plans.POST("", createOne(s, &s.plans, "Workout plan", setPlanID))
		plans.GET("/:id", getOne(s, &s.plans, "Workout plan"))
		plans.PUT("/:id", updateOne(s, &s.plans, "Workout plan", setPlanID))
		plans.DELETE("/:id", deleteOne(s, &s.plans, "Workout plan"))
	}

	meals := r.Group("/mealPlans")
	{
		meals.GET("", listAll(s, &s.meals))
		meals.POST("/add", createOne(s, &s.meals, "Meal plan", setMealID))
		meals.GET("/:id", getOne(s, &s.meals, "Meal plan"))
		meals.PUT("/update/:id", updateOne(s, &s.meals, "Meal plan", setMealID))
		meals.DELETE("/:id", deleteOne(s, &s.meals, "Meal plan"))
	}
}
