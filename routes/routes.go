// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"daarla-server/commons"
	"daarla-server/handlers"
	"daarla-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.POST("/auth/register", handlers.RegisterHandler)
	api_v1.POST("/auth/login", handlers.LoginHandler)
	api_v1.POST("/auth/logout", handlers.LogoutHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/auth/guest", handlers.GuestUserHandler)
	api_v1.GET("/auth/me", handlers.CurrentUserHandler)
	api_v1.PATCH("/auth/me", handlers.UpdateUserHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/auth/password-reset/request", handlers.ForgotPasswordHandler)
	api_v1.POST("/auth/password-reset/confirm", handlers.ResetPasswordHandler)
	api_v1.GET("/properties", handlers.ListPropertiesHandler)
	api_v1.GET("/properties/:id", handlers.GetPropertyHandler)
	api_v1.POST("/properties", handlers.CreatePropertyHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/properties/:id", handlers.UpdatePropertyHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/properties/:id", handlers.DeletePropertyHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/brokers", handlers.ListBrokersHandler)
	api_v1.GET("/brokers/:id", handlers.GetBrokerHandler)
	api_v1.POST("/brokers", handlers.CreateBrokerHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/brokers/:id", handlers.UpdateBrokerHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/brokers/:id", handlers.DeleteBrokerHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/property-images", handlers.ListPropertyImagesHandler)
	api_v1.POST("/property-images", handlers.CreatePropertyImageHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/property-images/:id", handlers.DeletePropertyImageHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/property-facts", handlers.ListPropertyFactsHandler)
	api_v1.POST("/property-facts", handlers.CreatePropertyFactHandler, middlewares.VerifySessionMiddleware)
	api_v1.PUT("/property-facts/:id", handlers.UpdatePropertyFactHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/property-facts/:id", handlers.DeletePropertyFactHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/contact", handlers.ContactHandler)
	commons.Logger.Info("v1 routes registered successfully")
}
