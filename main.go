// main.go
package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/theshantanusingh/maggie-point/activity"
	"github.com/theshantanusingh/maggie-point/controllers"
	"github.com/theshantanusingh/maggie-point/repository"
	"github.com/theshantanusingh/maggie-point/routes"
	"github.com/theshantanusingh/maggie-point/services"
	"github.com/theshantanusingh/maggie-point/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found. Proceeding with environment variables.")
	}

	utils.InitLogger()

	// Set the JWT secret key
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Warn("JWT_SECRET is not set; tokens will be signed with an empty key")
	}
	utils.JwtKey = []byte(secret)

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logrus.WithError(err).Fatal("Failed to disconnect from MongoDB")
		}
	}()

	// Initialize EmailService and the audit recorder
	emailService := utils.NewEmailService()
	recorder := activity.NewRecorder(client, repository.DatabaseName)

	// Repositories
	orderRepo := repository.NewOrderRepository(client)
	dishRepo := repository.NewDishRepository(client)
	offerRepo := repository.NewOfferRepository(client)
	userRepo := repository.NewUserRepository(client)
	inventoryRepo := repository.NewInventoryRepository(client)

	// Core order service
	orderService := services.NewOrderService(orderRepo, dishRepo, userRepo, recorder, emailService)

	// Controllers
	userController := controllers.NewUserController(userRepo, recorder)
	dishController := controllers.NewDishController(dishRepo, offerRepo, userRepo, recorder)
	offerController := controllers.NewOfferController(offerRepo, userRepo, recorder)
	orderController := controllers.NewOrderController(orderService, userRepo)
	adminOrderController := controllers.NewAdminOrderController(orderService, orderRepo, userRepo)
	inventoryController := controllers.NewInventoryController(inventoryRepo, userRepo, recorder)
	activityController := controllers.NewActivityController(recorder)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, dishController, offerController, orderController, adminOrderController, inventoryController, activityController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logrus.Infof("Server is running on port %s", port)
	logrus.Fatal(http.ListenAndServe(":"+port, router))
}
