package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/service"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// AdminHandler serves the back-office pages: account management, plant
// catalog, order fulfilment and caretaker task assignment.
type AdminHandler struct {
	users   *service.UserService
	catalog *service.CatalogService
	orders  *service.OrderService
	tasks   *service.TaskService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(
	users *service.UserService,
	catalog *service.CatalogService,
	orders *service.OrderService,
	tasks *service.TaskService,
) *AdminHandler {
	return &AdminHandler{users: users, catalog: catalog, orders: orders, tasks: tasks}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	stats, err := h.tasks.Stats(ctx)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load the dashboard")
	}
	users, err := h.users.List(ctx)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load the dashboard")
	}
	plants, err := h.catalog.AdminList(ctx)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load the dashboard")
	}
	orders, err := h.orders.AdminList(ctx, "")
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load the dashboard")
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Title":      "Admin Dashboard",
		"User":       identity,
		"TaskStats":  stats,
		"UserCount":  len(users),
		"PlantCount": len(plants),
		"OrderCount": len(orders),
	})
}

// Users handles GET /admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load users")
	}
	return c.Render("admin/users", fiber.Map{
		"Title": "Manage Users",
		"User":  mustIdentity(c),
		"Users": users,
	})
}

// CreateUserPage handles GET /admin/create-user.
func (h *AdminHandler) CreateUserPage(c *fiber.Ctx) error {
	return c.Render("admin/create-user", fiber.Map{
		"Title": "Create User",
		"User":  mustIdentity(c),
	})
}

// CreateUser handles POST /admin/create-user.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("admin/create-user", fiber.Map{
			"Title": "Create User",
			"User":  mustIdentity(c),
			"Flash": dangerFlash("Invalid form submission"),
		})
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	_, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		Role:      domain.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone,
	})
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).Render("admin/create-user", fiber.Map{
			"Title": "Create User",
			"User":  mustIdentity(c),
			"Flash": dangerFlash(domainErr.Message),
			"Form":  req,
		})
	}
	return c.Redirect("/admin/users", fiber.StatusFound)
}

// EditUserPage handles GET /admin/edit-user/:id.
func (h *AdminHandler) EditUserPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return renderNotFound(c, "User not found")
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return renderNotFound(c, "User not found")
	}
	return c.Render("admin/edit-user", fiber.Map{
		"Title":  "Edit User",
		"User":   mustIdentity(c),
		"Target": user,
	})
}

// UpdateUser handles POST /admin/update-user/:id.
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return renderNotFound(c, "User not found")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return renderError(c, fiber.StatusBadRequest, "Invalid form submission")
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}
	if _, err := h.users.Update(c.UserContext(), id, service.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     phone,
		Role:      domain.Role(req.Role),
	}); err != nil {
		domainErr := apperrors.ToDomainError(err)
		return renderError(c, domainErr.HTTPStatus, domainErr.Message)
	}
	return c.Redirect("/admin/users", fiber.StatusFound)
}

// DeleteUser handles POST /admin/delete-user/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id", nil)
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "User deleted")
}

// Plants handles GET /admin/plants.
func (h *AdminHandler) Plants(c *fiber.Ctx) error {
	plants, err := h.catalog.AdminList(c.UserContext())
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load plants")
	}
	return c.Render("admin/plants", fiber.Map{
		"Title":  "Manage Plants",
		"User":   mustIdentity(c),
		"Plants": plants,
	})
}

// AddPlantPage handles GET /admin/plants/add.
func (h *AdminHandler) AddPlantPage(c *fiber.Ctx) error {
	return c.Render("admin/add-plant", fiber.Map{
		"Title": "Add Plant",
		"User":  mustIdentity(c),
	})
}

// CreatePlant handles POST /admin/plants/add.
func (h *AdminHandler) CreatePlant(c *fiber.Ctx) error {
	input, formErr := parsePlantForm(c)
	if formErr != "" {
		return c.Status(fiber.StatusBadRequest).Render("admin/add-plant", fiber.Map{
			"Title": "Add Plant",
			"User":  mustIdentity(c),
			"Flash": dangerFlash(formErr),
		})
	}

	if _, err := h.catalog.Create(c.UserContext(), input); err != nil {
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).Render("admin/add-plant", fiber.Map{
			"Title": "Add Plant",
			"User":  mustIdentity(c),
			"Flash": dangerFlash(domainErr.Message),
		})
	}
	return c.Redirect("/admin/plants", fiber.StatusFound)
}

// EditPlantPage handles GET /admin/plants/edit/:id.
func (h *AdminHandler) EditPlantPage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return renderNotFound(c, "Plant not found")
	}
	plant, err := h.catalog.Get(c.UserContext(), id)
	if err != nil {
		return renderNotFound(c, "Plant not found")
	}
	return c.Render("admin/edit-plant", fiber.Map{
		"Title": "Edit Plant",
		"User":  mustIdentity(c),
		"Plant": plant,
	})
}

// UpdatePlant handles POST /admin/plants/edit/:id.
func (h *AdminHandler) UpdatePlant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return renderNotFound(c, "Plant not found")
	}

	input, formErr := parsePlantForm(c)
	if formErr != "" {
		return renderError(c, fiber.StatusBadRequest, formErr)
	}

	if _, err := h.catalog.Update(c.UserContext(), id, input); err != nil {
		domainErr := apperrors.ToDomainError(err)
		return renderError(c, domainErr.HTTPStatus, domainErr.Message)
	}
	return c.Redirect("/admin/plants", fiber.StatusFound)
}

// DeletePlant handles POST /admin/plants/delete/:id.
func (h *AdminHandler) DeletePlant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}
	if err := h.catalog.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Plant deleted")
}

func parsePlantForm(c *fiber.Ctx) (service.PlantInput, string) {
	var req dto.PlantRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PlantInput{}, "Invalid form submission"
	}
	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return service.PlantInput{}, "Price must be a number"
	}
	stock := 0
	if req.StockQuantity != "" {
		stock, err = strconv.Atoi(req.StockQuantity)
		if err != nil {
			return service.PlantInput{}, "Stock quantity must be a whole number"
		}
	}
	return service.PlantInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            price,
		StockQuantity:    stock,
		Category:         req.Category,
		CareInstructions: req.CareInstructions,
		ImageURL:         req.ImageURL,
	}, ""
}

// Orders handles GET /admin/orders with an optional status filter.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	status := domain.OrderStatus(c.Query("status"))
	orders, err := h.orders.AdminList(c.UserContext(), status)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		return renderError(c, domainErr.HTTPStatus, domainErr.Message)
	}
	return c.Render("admin/orders", fiber.Map{
		"Title":  "Manage Orders",
		"User":   mustIdentity(c),
		"Orders": orders,
		"Status": string(status),
	})
}

// OrderDetails handles GET /admin/orders/:id.
func (h *AdminHandler) OrderDetails(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return renderNotFound(c, "Order not found")
	}
	order, items, err := h.orders.AdminDetails(c.UserContext(), id)
	if err != nil {
		return renderNotFound(c, "Order not found")
	}
	return c.Render("admin/order-details", fiber.Map{
		"Title": "Order Details",
		"User":  mustIdentity(c),
		"Order": order,
		"Items": items,
	})
}

// OrderStatus handles POST /admin/orders/:id/status.
func (h *AdminHandler) OrderStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid order id", nil)
	}

	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.orders.UpdateStatus(c.UserContext(), id, domain.OrderStatus(req.Status)); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Order status updated")
}

// Tasks handles GET /admin/tasks, the assignment overview.
func (h *AdminHandler) Tasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	tasks, err := h.tasks.ListAll(ctx)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load tasks")
	}
	stats, err := h.tasks.Stats(ctx)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load tasks")
	}
	caretakers, err := h.users.ListByRole(ctx, domain.RoleCaretaker)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load tasks")
	}
	plants, err := h.catalog.AdminList(ctx)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load tasks")
	}

	return c.Render("admin/tasks", fiber.Map{
		"Title":      "Care Tasks",
		"User":       mustIdentity(c),
		"Tasks":      tasks,
		"Stats":      stats,
		"Caretakers": caretakers,
		"Plants":     plants,
	})
}

// CreateTask handles POST /admin/tasks.
func (h *AdminHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	plantID, err := strconv.ParseInt(req.PlantID, 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}
	caretakerID, err := strconv.ParseInt(req.CaretakerID, 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid caretaker id", nil)
	}
	scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return apperrors.NewValidationError("scheduled date must be YYYY-MM-DD", nil)
	}

	if _, err := h.tasks.Create(c.UserContext(), service.TaskInput{
		PlantID:         plantID,
		CaretakerID:     caretakerID,
		TaskDescription: req.TaskDescription,
		ScheduledDate:   scheduled,
	}); err != nil {
		return apperrors.MapError(err)
	}
	return c.Redirect("/admin/tasks", fiber.StatusFound)
}

// DeleteTask handles POST /admin/tasks/delete/:id.
func (h *AdminHandler) DeleteTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid task id", nil)
	}
	if err := h.tasks.Delete(c.UserContext(), id); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Task deleted")
}
