// Package routes defines the HTTP route table.
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emirkaya/staffdesk/internal/app/controllers"
	"github.com/emirkaya/staffdesk/internal/app/models/dto"
	"github.com/emirkaya/staffdesk/internal/middleware"
)

// SetupRouter configures all application routes. Every employee route
// sits behind the access guard; login is the only unauthenticated
// mutation path.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	employeeController *controllers.EmployeeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.POST("/login", authController.Login)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	employees := api.Group("/employees")
	employees.Use(authMiddleware.JWTAuth())
	{
		employees.POST("", employeeController.CreateEmployee)
		employees.GET("", employeeController.ListEmployees)
		employees.GET("/:id", employeeController.GetEmployeeByID)
		employees.PUT("/:id", employeeController.UpdateEmployee)
		employees.DELETE("/:id", employeeController.DeleteEmployee)
	}
}
