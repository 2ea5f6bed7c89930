package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zachricha/medium-clone-api/internal/config"
	"github.com/zachricha/medium-clone-api/internal/handlers"
	"github.com/zachricha/medium-clone-api/internal/middleware"
	"github.com/zachricha/medium-clone-api/internal/services"
	"github.com/zachricha/medium-clone-api/internal/stores"
)

func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	tokenService := services.NewTokenService(db, cfg)
	userStore := stores.NewUserStore(db)
	postStore := stores.NewPostStore(db)
	likeStore := stores.NewLikeStore(db)

	authHandler := handlers.NewAuthHandler(userStore, tokenService)
	userHandler := handlers.NewUserHandler(userStore, postStore)
	postHandler := handlers.NewPostHandler(postStore, likeStore)

	auth := middleware.RequireAuth(tokenService)
	check := middleware.CheckAuth(tokenService)

	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.DELETE("/logout", auth, authHandler.Logout)

	r.GET("/posts", postHandler.List)
	r.GET("/posts/:id", check, postHandler.Get)
	r.PATCH("/posts/:id", auth, postHandler.Update)
	r.DELETE("/posts/:id", auth, postHandler.Delete)
	r.POST("/posts/:id/like", auth, postHandler.Like)

	users := r.Group("/users")
	{
		users.GET("/me", auth, userHandler.Me)
		users.POST("/post", auth, userHandler.CreatePost)
		users.DELETE("/delete", auth, userHandler.DeleteUser)
		users.PATCH("/update/email", auth, userHandler.UpdateEmail)
		users.PATCH("/update/bio", auth, userHandler.UpdateBio)
		users.PATCH("/update/password", auth, userHandler.UpdatePassword)
		users.GET("/:username/posts", check, userHandler.Posts)
		users.GET("/:username/likes", check, userHandler.Likes)
	}

	return r
}
