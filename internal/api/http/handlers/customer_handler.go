package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/greenhaven/nursery-service/internal/api/dto"
	"github.com/greenhaven/nursery-service/internal/domain"
	"github.com/greenhaven/nursery-service/internal/service"
	apperrors "github.com/greenhaven/nursery-service/pkg/util"
)

// CustomerHandler serves the storefront pages and the cart, wishlist and
// order endpoints behind them.
type CustomerHandler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	wishlist *service.WishlistService
	orders   *service.OrderService
}

// NewCustomerHandler constructs handler.
func NewCustomerHandler(
	catalog *service.CatalogService,
	cart *service.CartService,
	wishlist *service.WishlistService,
	orders *service.OrderService,
) *CustomerHandler {
	return &CustomerHandler{catalog: catalog, cart: cart, wishlist: wishlist, orders: orders}
}

// Home handles GET /, the public landing page with the in-stock catalog.
func (h *CustomerHandler) Home(c *fiber.Ctx) error {
	plants, err := h.catalog.Storefront(c.UserContext())
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load the catalog")
	}
	return c.Render("index", fiber.Map{
		"Title":  "Green Haven Nursery",
		"Plants": plants,
	})
}

// Dashboard handles GET /dashboard for customers.
func (h *CustomerHandler) Dashboard(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	return c.Render("customer/dashboard", fiber.Map{
		"Title":     "Dashboard",
		"User":      identity,
		"CartCount": h.cart.Count(c.UserContext(), identity),
	})
}

// Plants handles GET /customer/plants with optional search and category
// filters.
func (h *CustomerHandler) Plants(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	search := c.Query("search")
	category := c.Query("category")

	list, err := h.listPlants(c, search, category)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load plants")
	}
	return c.Render("customer/plants", fiber.Map{
		"Title":     "Our Plants",
		"User":      identity,
		"Plants":    list,
		"Search":    search,
		"Category":  category,
		"CartCount": h.cart.Count(ctx, identity),
	})
}

func (h *CustomerHandler) listPlants(c *fiber.Ctx, search, category string) ([]domain.Plant, error) {
	ctx := c.UserContext()
	switch {
	case search != "":
		return h.catalog.Search(ctx, search)
	case category != "":
		return h.catalog.ByCategory(ctx, category)
	default:
		return h.catalog.Storefront(ctx)
	}
}

// CartPage handles GET /customer/cart.
func (h *CustomerHandler) CartPage(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	lines, err := h.cart.Get(ctx, identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load your cart")
	}
	total, err := h.cart.Total(ctx, identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load your cart")
	}
	return c.Render("customer/cart", fiber.Map{
		"Title":     "Shopping Cart",
		"User":      identity,
		"Lines":     lines,
		"Total":     total,
		"CartCount": h.cart.Count(ctx, identity),
	})
}

// CartAdd handles POST /customer/cart/add/:plantId, returning the AJAX
// envelope consumed by the plants page.
func (h *CustomerHandler) CartAdd(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}

	var req dto.QuantityRequest
	_ = c.BodyParser(&req)

	if err := h.cart.Add(c.UserContext(), identity.ID, plantID, req.Quantity); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Plant added to cart!")
}

// CartUpdate handles POST /customer/cart/update/:plantId.
func (h *CustomerHandler) CartUpdate(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}

	var req dto.QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.cart.UpdateQuantity(c.UserContext(), identity.ID, plantID, req.Quantity); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Cart updated")
}

// CartRemove handles POST /customer/cart/remove/:plantId.
func (h *CustomerHandler) CartRemove(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}
	if err := h.cart.Remove(c.UserContext(), identity.ID, plantID); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Item removed from cart")
}

// CartClear handles POST /customer/cart/clear, emptying the cart in one
// action from the cart page.
func (h *CustomerHandler) CartClear(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	if err := h.cart.Clear(c.UserContext(), identity.ID); err != nil {
		return apperrors.MapError(err)
	}
	return okJSON(c, "Cart cleared")
}

// WishlistPage handles GET /customer/wishlist.
func (h *CustomerHandler) WishlistPage(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	entries, err := h.wishlist.List(ctx, identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load your wishlist")
	}
	return c.Render("customer/wishlist", fiber.Map{
		"Title":     "My Wishlist",
		"User":      identity,
		"Entries":   entries,
		"CartCount": h.cart.Count(ctx, identity),
	})
}

// WishlistAdd handles POST /customer/wishlist/add/:plantId. Adding a plant
// that is already saved is reported, not treated as an error.
func (h *CustomerHandler) WishlistAdd(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}

	added, err := h.wishlist.Add(c.UserContext(), identity.ID, plantID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !added {
		return okJSON(c, "Plant is already in your wishlist")
	}
	return okJSON(c, "Plant added to wishlist!")
}

// WishlistRemove handles POST /customer/wishlist/remove/:plantId.
func (h *CustomerHandler) WishlistRemove(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	plantID, err := paramID(c, "plantId")
	if err != nil {
		return apperrors.NewValidationError("invalid plant id", nil)
	}

	removed, err := h.wishlist.Remove(c.UserContext(), identity.ID, plantID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !removed {
		return okJSON(c, "Plant was not in your wishlist")
	}
	return okJSON(c, "Plant removed from wishlist")
}

// CheckoutPage handles GET /customer/checkout. An empty cart sends the
// visitor back to the cart page.
func (h *CustomerHandler) CheckoutPage(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	lines, err := h.cart.Get(ctx, identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load checkout")
	}
	if len(lines) == 0 {
		return c.Redirect("/customer/cart", fiber.StatusFound)
	}
	total, err := h.cart.Total(ctx, identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load checkout")
	}
	return c.Render("customer/checkout", fiber.Map{
		"Title":     "Checkout",
		"User":      identity,
		"Lines":     lines,
		"Total":     total,
		"CartCount": h.cart.Count(ctx, identity),
	})
}

// PlaceOrder handles POST /customer/orders/place. An empty cart is the
// normal redirect outcome; a missing address re-renders the checkout form.
func (h *CustomerHandler) PlaceOrder(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	var req dto.PlaceOrderRequest
	_ = c.BodyParser(&req)

	order, err := h.orders.Place(ctx, identity.ID, req.DeliveryAddress)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			return c.Redirect("/customer/cart", fiber.StatusFound)
		}
		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus == fiber.StatusBadRequest {
			lines, lerr := h.cart.Get(ctx, identity.ID)
			if lerr != nil {
				return renderError(c, fiber.StatusInternalServerError, "Could not load checkout")
			}
			total, _ := h.cart.Total(ctx, identity.ID)
			return c.Status(fiber.StatusBadRequest).Render("customer/checkout", fiber.Map{
				"Title":     "Checkout",
				"User":      identity,
				"Lines":     lines,
				"Total":     total,
				"Flash":     dangerFlash(domainErr.Message),
				"CartCount": h.cart.Count(ctx, identity),
			})
		}
		return renderError(c, domainErr.HTTPStatus, "Could not place your order")
	}

	return c.Render("customer/order-success", fiber.Map{
		"Title": "Order Placed",
		"User":  identity,
		"Order": order,
	})
}

// Orders handles GET /customer/orders.
func (h *CustomerHandler) Orders(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	ctx := c.UserContext()

	orders, err := h.orders.ListForCustomer(ctx, identity.ID)
	if err != nil {
		return renderError(c, fiber.StatusInternalServerError, "Could not load your orders")
	}
	return c.Render("customer/orders", fiber.Map{
		"Title":     "My Orders",
		"User":      identity,
		"Orders":    orders,
		"CartCount": h.cart.Count(ctx, identity),
	})
}

// OrderDetails handles GET /customer/orders/:orderId, scoped to the owner.
func (h *CustomerHandler) OrderDetails(c *fiber.Ctx) error {
	identity := mustIdentity(c)
	orderID, err := paramID(c, "orderId")
	if err != nil {
		return renderNotFound(c, "Order not found")
	}

	order, items, err := h.orders.GetForCustomer(c.UserContext(), orderID, identity.ID)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus == fiber.StatusNotFound {
			return renderNotFound(c, "Order not found")
		}
		return renderError(c, domainErr.HTTPStatus, "Could not load the order")
	}
	return c.Render("customer/order-details", fiber.Map{
		"Title":     "Order Details",
		"User":      identity,
		"Order":     order,
		"Items":     items,
		"CartCount": h.cart.Count(c.UserContext(), identity),
	})
}
