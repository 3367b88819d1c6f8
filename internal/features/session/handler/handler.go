package handler

import (
	"errors"
	"net/http"

	"storefront/internal/core/logger"
	catalogdomain "storefront/internal/features/catalog/domain"
	"storefront/internal/features/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles HTTP requests for shopping sessions.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{
		manager: manager,
	}
}

// RegisterRoutes mounts the session routes on the given router.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	sessions := router.Group("/sessions")

	sessions.Post("/", h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.DeleteSession)

	sessions.Post("/:id/selection", h.SelectProduct)
	sessions.Delete("/:id/selection", h.ClosePreview)

	sessions.Post("/:id/cart", h.AddToCart)
	sessions.Delete("/:id/cart/:productID", h.RemoveFromCart)
	sessions.Post("/:id/cart/open", h.OpenCart)
	sessions.Post("/:id/cart/close", h.CloseModal)

	sessions.Post("/:id/checkout", h.StartCheckout)
	sessions.Patch("/:id/order", h.SetOrderField)
	sessions.Post("/:id/checkout/address", h.SubmitAddress)
	sessions.Post("/:id/checkout/contacts", h.SubmitContacts)

	sessions.Post("/:id/order", h.SubmitOrder)
	sessions.Post("/:id/order/ack", h.AcknowledgeOrder)
	sessions.Get("/:id/orders", h.ListOrders)
}

// selectRequest is the body of POST /sessions/:id/selection.
type selectRequest struct {
	ProductID string `json:"product_id"`
}

// fieldChangeRequest is the body of PATCH /sessions/:id/order.
type fieldChangeRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// lookup resolves the :id path parameter to a live session. A nil session
// means the 404 has already been written; the error is the write result.
func (h *SessionHandler) lookup(c *fiber.Ctx) (*session.Session, error) {
	id := c.Params("id")
	s, ok := h.manager.Get(id)
	if !ok {
		return nil, c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return s, nil
}

// respond maps a session operation result onto the HTTP surface: flow
// rejections become 409, validation failures 422 with the field errors,
// unknown products 404 and anything else 502.
func respond(c *fiber.Ctx, s *session.Session, err error) error {
	switch {
	case err == nil:
		return c.Status(http.StatusOK).JSON(s.Snapshot())
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrAlreadyInCart),
		errors.Is(err, session.ErrEmptyCart),
		errors.Is(err, catalogdomain.ErrPriceless),
		errors.Is(err, catalogdomain.ErrNoSelection):
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, session.ErrValidation):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":       err.Error(),
			"form_errors": s.Snapshot().FormErrors,
		})
	case errors.Is(err, catalogdomain.ErrProductNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	default:
		logger.Get().Error("Session operation failed",
			zap.String("session_id", s.ID()),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error": "Order service is temporarily unavailable, please retry",
		})
	}
}

// CreateSession handles POST /sessions.
// @Summary Start a shopping session
// @Description Creates a session seeded with the current catalog.
// @Tags Sessions
// @Produce json
// @Success 201 {object} session.Snapshot
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	s := h.manager.Create()
	logger.Get().Info("Session created", zap.String("session_id", s.ID()))
	return c.Status(http.StatusCreated).JSON(s.Snapshot())
}

// GetSession handles GET /sessions/:id.
// @Summary Get the session snapshot
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(s.Snapshot())
}

// DeleteSession handles DELETE /sessions/:id.
// @Summary End a shopping session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	h.manager.Delete(c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

// SelectProduct handles POST /sessions/:id/selection.
// @Summary Open a product preview
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body selectRequest true "Product to preview"
// @Success 200 {object} session.Snapshot
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/selection [post]
func (h *SessionHandler) SelectProduct(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}

	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	return respond(c, s, s.SelectProduct(req.ProductID))
}

// ClosePreview handles DELETE /sessions/:id/selection.
// @Summary Close the product preview
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/selection [delete]
func (h *SessionHandler) ClosePreview(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.Cancel())
}

// AddToCart handles POST /sessions/:id/cart.
// @Summary Add the previewed product to the cart
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/cart [post]
func (h *SessionHandler) AddToCart(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.AddToCart())
}

// RemoveFromCart handles DELETE /sessions/:id/cart/:productID.
// @Summary Remove one unit of a product from the cart
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param productID path string true "Product ID"
// @Success 200 {object} session.Snapshot
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/cart/{productID} [delete]
func (h *SessionHandler) RemoveFromCart(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.RemoveFromCart(c.Params("productID")))
}

// OpenCart handles POST /sessions/:id/cart/open.
// @Summary Open the cart view
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/cart/open [post]
func (h *SessionHandler) OpenCart(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.OpenCart())
}

// CloseModal handles POST /sessions/:id/cart/close.
// @Summary Close the open view and return to browsing
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/cart/close [post]
func (h *SessionHandler) CloseModal(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.Cancel())
}

// StartCheckout handles POST /sessions/:id/checkout.
// @Summary Begin checkout
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/checkout [post]
func (h *SessionHandler) StartCheckout(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.StartCheckout())
}

// SetOrderField handles PATCH /sessions/:id/order.
// @Summary Update one checkout form field
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body fieldChangeRequest true "Field change"
// @Success 200 {object} session.Snapshot
// @Failure 400 {object} map[string]string
// @Router /sessions/{id}/order [patch]
func (h *SessionHandler) SetOrderField(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}

	var req fieldChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := s.SetField(req.Field, req.Value); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(http.StatusOK).JSON(s.Snapshot())
}

// SubmitAddress handles POST /sessions/:id/checkout/address.
// @Summary Submit the delivery step
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /sessions/{id}/checkout/address [post]
func (h *SessionHandler) SubmitAddress(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.SubmitAddress())
}

// SubmitContacts handles POST /sessions/:id/checkout/contacts.
// @Summary Submit the contacts step
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 422 {object} map[string]interface{}
// @Router /sessions/{id}/checkout/contacts [post]
func (h *SessionHandler) SubmitContacts(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.SubmitContacts())
}

// SubmitOrder handles POST /sessions/:id/order.
// @Summary Submit the order
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Router /sessions/{id}/order [post]
func (h *SessionHandler) SubmitOrder(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.SubmitOrder(c.Context()))
}

// AcknowledgeOrder handles POST /sessions/:id/order/ack.
// @Summary Close the order confirmation
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/order/ack [post]
func (h *SessionHandler) AcknowledgeOrder(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return respond(c, s, s.Acknowledge())
}

// ListOrders handles GET /sessions/:id/orders.
// @Summary List completed orders of the session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} domain.OrderResult
// @Failure 404 {object} map[string]string
// @Router /sessions/{id}/orders [get]
func (h *SessionHandler) ListOrders(c *fiber.Ctx) error {
	s, err := h.lookup(c)
	if s == nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(s.CompletedOrders())
}
