// internal/handlers/customer.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shamaim/admin-dashboard/internal/i18n"
	"github.com/shamaim/admin-dashboard/internal/services"
	"github.com/shamaim/admin-dashboard/internal/utils"
)

type CustomerHandler struct {
	customers *services.CustomerClient
}

func NewCustomerHandler(customers *services.CustomerClient) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
	}
}

// GET /users
func (h *CustomerHandler) GetUsers(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	users, err := h.customers.Users(c.Request.Context())
	if err != nil {
		utils.BadGatewayResponse(c, upstreamMessage(err, i18n.T(lang, i18n.KeyUserFetchFailed)))
		return
	}

	result := utils.CreatePaginationResult(utils.Paginate(users, params), int64(len(users)), params)
	utils.PaginatedResponse(c, result)
}

// GET /users/:id/orders
func (h *CustomerHandler) GetUserOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orders, err := h.customers.UserOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		if services.IsNotFound(err) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.BadGatewayResponse(c, upstreamMessage(err, i18n.T(lang, i18n.KeyOrderFetchFailed)))
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /orders
func (h *CustomerHandler) GetOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	params := utils.GetPaginationParams(c)

	filter := services.OrderFilter{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
		Search: params.Search,
	}

	orders, err := h.customers.Orders(c.Request.Context(), filter)
	if err != nil {
		utils.BadGatewayResponse(c, upstreamMessage(err, i18n.T(lang, i18n.KeyOrderFetchFailed)))
		return
	}

	result := utils.CreatePaginationResult(utils.Paginate(orders, params), int64(len(orders)), params)
	utils.PaginatedResponse(c, result)
}
