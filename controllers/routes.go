package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/middleware"
)

func (a *App) RegisterRoutes(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	api.GET("/categories", a.GetCategories())
	api.GET("/categories/:slug", a.GetCategoryBySlug())
	api.GET("/products", a.GetProducts())
	api.GET("/products/:id", a.GetProduct())
	api.GET("/blog", a.GetPublishedBlogPosts())
	api.GET("/blog/:slug", a.GetPublishedBlogPost())
	api.GET("/testimonials", a.GetTestimonials())
	api.GET("/locations", a.GetLocations())
	api.GET("/addons", a.GetAddons())
	api.GET("/pages/:key", a.GetPage())
	api.GET("/configurator", a.GetConfigurator())
	api.POST("/inquiries", a.CreateInquiry())

	admin := api.Group("/admin")
	admin.POST("/login", a.Login())
	admin.POST("/logout", a.Logout())

	secured := admin.Group("")
	secured.Use(middleware.AdminSession(a.Cfg.JWTSecret))
	{
		secured.GET("/me", a.Me())
		secured.POST("/users", a.CreateUser())
		secured.POST("/users/me/password", a.ChangeMyPassword())

		secured.GET("/categories", a.GetCategories())
		secured.POST("/categories", a.AddCategory())
		secured.PATCH("/categories/:id", a.UpdateCategory())
		secured.DELETE("/categories/:id", a.DeleteCategory())

		secured.GET("/products", a.GetProducts())
		secured.POST("/products", a.AddProduct())
		secured.PATCH("/products/:id", a.UpdateProduct())
		secured.DELETE("/products/:id", a.DeleteProduct())

		secured.GET("/blog", a.GetBlogPosts())
		secured.POST("/blog", a.AddBlogPost())
		secured.PUT("/blog/:id", a.UpdateBlogPost())
		secured.DELETE("/blog/:id", a.DeleteBlogPost())

		secured.GET("/testimonials", a.GetTestimonials())
		secured.POST("/testimonials", a.AddTestimonial())
		secured.PUT("/testimonials/:id", a.UpdateTestimonial())
		secured.DELETE("/testimonials/:id", a.DeleteTestimonial())

		secured.GET("/locations", a.GetLocations())
		secured.POST("/locations", a.AddLocation())
		secured.PUT("/locations/:id", a.UpdateLocation())
		secured.DELETE("/locations/:id", a.DeleteLocation())

		secured.GET("/addons", a.GetAddons())
		secured.POST("/addons", a.AddAddon())
		secured.PUT("/addons/:id", a.UpdateAddon())
		secured.DELETE("/addons/:id", a.DeleteAddon())

		secured.PUT("/pages/:key", a.UpsertPage())
		secured.PUT("/configurator", a.UpdateConfigurator())

		secured.GET("/media", a.GetMedia())
		secured.POST("/media", a.UploadMedia())
		secured.DELETE("/media/:id", a.DeleteMedia())

		secured.GET("/inquiries", a.GetInquiries())
		secured.GET("/inquiries/:id", a.GetInquiry())
		secured.PATCH("/inquiries/:id/status", a.UpdateInquiryStatus())
		secured.POST("/inquiries/:id/notes", a.AddInquiryNote())
		secured.DELETE("/inquiries/:id", a.DeleteInquiry())

		secured.POST("/maintenance/backfill", a.BackfillCategories())
	}
}
