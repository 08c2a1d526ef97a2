package controllers

import (
	"net/http"

	"Inkwell/api/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {

	s.Router.Use(middlewares.CORSMiddleware())

	// Identity provider surface
	s.Router.POST("/auth/signup/", s.CreateUser)
	s.Router.POST("/auth/login/", s.Login)

	// Public read-only pages
	s.Router.GET("/", s.Index)
	s.Router.GET("/group/:slug/", s.GroupPosts)
	s.Router.GET("/profile/:username/", s.Profile)
	s.Router.GET("/posts/:id/", s.PostDetail)

	// Authenticated actions
	authorized := s.Router.Group("/")
	authorized.Use(middlewares.LoginRequiredMiddleware(s.DB))
	{
		authorized.GET("/create/", s.CreatePostForm)
		authorized.POST("/create/", s.CreatePost)
		authorized.GET("/posts/:id/edit/", s.EditPostForm)
		authorized.POST("/posts/:id/edit/", s.EditPost)
		authorized.POST("/posts/:id/delete/", s.DeletePost)
		authorized.POST("/posts/:id/comment/", s.AddComment)
		authorized.GET("/follow/", s.FollowIndex)
		authorized.POST("/profile/:username/follow/", s.ProfileFollow)
		authorized.POST("/profile/:username/unfollow/", s.ProfileUnfollow)
	}

	s.Router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Page not found",
		})
	})
}
