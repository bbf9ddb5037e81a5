// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/theshantanusingh/maggie-point/controllers"
	"github.com/theshantanusingh/maggie-point/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	dishController *controllers.DishController,
	offerController *controllers.OfferController,
	orderController *controllers.OrderController,
	adminOrderController *controllers.AdminOrderController,
	inventoryController *controllers.InventoryController,
	activityController *controllers.ActivityController,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", userController.Register).Methods("POST")
	api.HandleFunc("/auth/login", userController.Login).Methods("POST")
	api.HandleFunc("/dishes", dishController.GetDishes).Methods("GET")
	api.HandleFunc("/dishes/available", dishController.GetAvailableDishes).Methods("GET")
	api.HandleFunc("/offers/active", offerController.GetActiveOffers).Methods("GET")

	// Authenticated routes
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/my-orders", orderController.GetMyOrders).Methods("GET")
	protected.HandleFunc("/orders/{orderId}", orderController.GetOrder).Methods("GET")
	protected.HandleFunc("/orders/{orderId}/payment", orderController.SubmitPayment).Methods("PUT")
	protected.HandleFunc("/orders/{orderId}/cancel", orderController.CancelOrder).Methods("PUT")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/orders", adminOrderController.GetAllOrders).Methods("GET")
	admin.HandleFunc("/orders/stats/summary", adminOrderController.GetStats).Methods("GET")
	admin.HandleFunc("/orders/{orderId}/verify-payment", adminOrderController.VerifyPayment).Methods("PUT")
	admin.HandleFunc("/orders/{orderId}/status", adminOrderController.UpdateStatus).Methods("PUT")
	admin.HandleFunc("/orders/{orderId}/time", adminOrderController.UpdateTime).Methods("PUT")
	admin.HandleFunc("/dishes", dishController.CreateDish).Methods("POST")
	admin.HandleFunc("/dishes/{id}", dishController.UpdateDish).Methods("PUT")
	admin.HandleFunc("/dishes/{id}", dishController.DeleteDish).Methods("DELETE")
	admin.HandleFunc("/offers", offerController.GetOffers).Methods("GET")
	admin.HandleFunc("/offers", offerController.CreateOffer).Methods("POST")
	admin.HandleFunc("/offers/{id}", offerController.UpdateOffer).Methods("PUT")
	admin.HandleFunc("/offers/{id}", offerController.DeleteOffer).Methods("DELETE")
	admin.HandleFunc("/inventory", inventoryController.GetInventory).Methods("GET")
	admin.HandleFunc("/inventory", inventoryController.CreateItem).Methods("POST")
	admin.HandleFunc("/inventory/{id}", inventoryController.UpdateQuantity).Methods("PATCH")
	admin.HandleFunc("/inventory/{id}", inventoryController.DeleteItem).Methods("DELETE")
	admin.HandleFunc("/activities", activityController.GetActivities).Methods("GET")
}
