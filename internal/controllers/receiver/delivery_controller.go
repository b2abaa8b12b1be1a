package receiver

import (
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/webhook-validator/internal/services/deliverylog"
	"github.com/gofiber/fiber/v2"
)

// DeliveryStore exposes recorded deliveries.
type DeliveryStore interface {
	Get(id string) (deliverylog.Delivery, bool)
	List() []deliverylog.Delivery
}

// DeliveryController lets an operator inspect recently received payloads.
type DeliveryController struct {
	store DeliveryStore
}

// NewDeliveryController creates a new DeliveryController.
func NewDeliveryController(store DeliveryStore) *DeliveryController {
	return &DeliveryController{store: store}
}

// ListDeliveries godoc
// @Summary      List recent deliveries
// @Description  Returns recently received payloads and their verdicts, newest first.
// @Tags         Deliveries
// @Produce      json
// @Success      200  {array}  deliverylog.Delivery
// @Router       /v1/deliveries [get]
func (d *DeliveryController) ListDeliveries(c *fiber.Ctx) error {
	return c.JSON(d.store.List())
}

// GetDelivery godoc
// @Summary      Get a delivery
// @Tags         Deliveries
// @Produce      json
// @Param        deliveryId  path      string  true  "Delivery ID"
// @Success      200         {object}  deliverylog.Delivery
// @Failure      404         "Delivery not found"
// @Router       /v1/deliveries/{deliveryId} [get]
func (d *DeliveryController) GetDelivery(c *fiber.Ctx) error {
	delivery, ok := d.store.Get(c.Params("deliveryId"))
	if !ok {
		return richerrors.Error{
			ExternalMsg: "Delivery not found",
			Code:        fiber.StatusNotFound,
		}
	}
	return c.JSON(delivery)
}
