package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/http/handlers"
	"github.com/greenhaven/nursery-service/internal/auth"
	"github.com/greenhaven/nursery-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Customer  *handlers.CustomerHandler
	Admin     *handlers.AdminHandler
	Caretaker *handlers.CaretakerHandler
	Chatbot   *handlers.ChatbotHandler
	Sessions  *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Rendered pages ride the session path;
// the /users REST surface rides the bearer path.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Customer.Home)

	authGroup := app.Group("/auth")
	authGroup.Get("/register", cfg.Auth.RegisterPage)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Get("/login", cfg.Auth.LoginPage)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/logout", cfg.Auth.Logout)
	authGroup.Get("/profile", cfg.Sessions.RequireBearer, cfg.Auth.Profile)

	app.Get("/dashboard",
		cfg.Sessions.RequireSession, auth.RequireRole(domain.RoleCustomer), cfg.Customer.Dashboard)

	customer := app.Group("/customer",
		cfg.Sessions.RequireSession, auth.RequireRole(domain.RoleCustomer))
	customer.Get("/plants", cfg.Customer.Plants)
	customer.Get("/cart", cfg.Customer.CartPage)
	customer.Post("/cart/add/:plantId", cfg.Customer.CartAdd)
	customer.Post("/cart/update/:plantId", cfg.Customer.CartUpdate)
	customer.Post("/cart/remove/:plantId", cfg.Customer.CartRemove)
	customer.Post("/cart/clear", cfg.Customer.CartClear)
	customer.Get("/wishlist", cfg.Customer.WishlistPage)
	customer.Post("/wishlist/add/:plantId", cfg.Customer.WishlistAdd)
	customer.Post("/wishlist/remove/:plantId", cfg.Customer.WishlistRemove)
	customer.Get("/checkout", cfg.Customer.CheckoutPage)
	customer.Post("/orders/place", cfg.Customer.PlaceOrder)
	customer.Get("/orders", cfg.Customer.Orders)
	customer.Get("/orders/:orderId", cfg.Customer.OrderDetails)

	admin := app.Group("/admin",
		cfg.Sessions.RequireSession, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/users", cfg.Admin.Users)
	admin.Get("/create-user", cfg.Admin.CreateUserPage)
	admin.Post("/create-user", cfg.Admin.CreateUser)
	admin.Get("/edit-user/:id", cfg.Admin.EditUserPage)
	admin.Post("/update-user/:id", cfg.Admin.UpdateUser)
	admin.Post("/delete-user/:id", cfg.Admin.DeleteUser)
	admin.Get("/plants", cfg.Admin.Plants)
	admin.Get("/plants/add", cfg.Admin.AddPlantPage)
	admin.Post("/plants/add", cfg.Admin.CreatePlant)
	admin.Get("/plants/edit/:id", cfg.Admin.EditPlantPage)
	admin.Post("/plants/edit/:id", cfg.Admin.UpdatePlant)
	admin.Post("/plants/delete/:id", cfg.Admin.DeletePlant)
	admin.Get("/orders", cfg.Admin.Orders)
	admin.Get("/orders/:id", cfg.Admin.OrderDetails)
	admin.Post("/orders/:id/status", cfg.Admin.OrderStatus)
	admin.Get("/tasks", cfg.Admin.Tasks)
	admin.Post("/tasks", cfg.Admin.CreateTask)
	admin.Post("/tasks/delete/:id", cfg.Admin.DeleteTask)

	caretaker := app.Group("/caretaker",
		cfg.Sessions.RequireSession, auth.RequireRole(domain.RoleCaretaker))
	caretaker.Get("/dashboard", cfg.Caretaker.Dashboard)
	caretaker.Get("/tasks", cfg.Caretaker.Tasks)
	caretaker.Get("/growth-tracker", cfg.Caretaker.GrowthTracker)
	caretaker.Get("/growth-tracker/add", cfg.Caretaker.GrowthTrackerAdd)
	caretaker.Post("/growth-tracker/save", cfg.Caretaker.GrowthTrackerSave)

	// Shared by admins and caretakers; ownership is checked in the service.
	app.Post("/tasks/:id/status",
		cfg.Sessions.RequireSession,
		auth.RequireRole(domain.RoleAdmin, domain.RoleCaretaker),
		cfg.Caretaker.TaskStatus)

	app.Get("/plant-gpt", cfg.Sessions.RequireSession, cfg.Chatbot.Page)
	app.Post("/plant-gpt/chat", cfg.Sessions.RequireSession, cfg.Chatbot.Chat)

	users := app.Group("/users",
		cfg.Sessions.RequireBearer, auth.RequireAPIRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
}
