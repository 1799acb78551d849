package controllers

import (
	"net/http"

	"github.com/aurigalabs/storefront/app/services"
	"github.com/aurigalabs/storefront/pkg/middleware"
	"github.com/aurigalabs/storefront/pkg/response"
	"github.com/aurigalabs/storefront/pkg/ws"
)

type NotificationController struct {
	service *services.NotificationService
	hub     *ws.Hub
}

func NewNotificationController(service *services.NotificationService, hub *ws.Hub) *NotificationController {
	return &NotificationController{service: service, hub: hub}
}

func (c *NotificationController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	page, limit := pageParams(r)
	notifications, pagination, err := c.service.ListForUser(r.Context(), userID, page, limit)
	if err != nil {
		fail(w, err)
		return
	}
	response.Paginated(w, notifications, pagination)
}

func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, err := objectID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := c.service.MarkRead(r.Context(), id, userID); err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]string{"read": id.Hex()})
}

func (c *NotificationController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	count, err := c.service.UnreadCount(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]int64{"unread": count})
}

// Subscribe upgrades to WebSocket and registers the connection under the
// authenticated user. Runs behind middleware.Auth.
func (c *NotificationController) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	ws.Upgrade(w, r, c.hub, userID.Hex())
}
