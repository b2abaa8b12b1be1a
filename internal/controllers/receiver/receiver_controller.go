package receiver

import (
	"context"
	"errors"
	"fmt"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/webhook-validator/internal/dispatcher"
	"github.com/DIMO-Network/webhook-validator/internal/schema"
	"github.com/DIMO-Network/webhook-validator/internal/services/deliverylog"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const validationFailedMsg = "Payload failed validation"

// DeliveryRecorder reports each received payload and its outcome.
type DeliveryRecorder interface {
	Record(ctx context.Context, delivery deliverylog.Delivery) string
}

// ReceiverController validates inbound event payloads.
type ReceiverController struct {
	registry *schema.Registry
	recorder DeliveryRecorder
}

// NewReceiverController creates a new ReceiverController.
func NewReceiverController(registry *schema.Registry, recorder DeliveryRecorder) *ReceiverController {
	return &ReceiverController{
		registry: registry,
		recorder: recorder,
	}
}

// ReceivePayload godoc
// @Summary      Validate an event payload
// @Description  Parses the JSON body, selects the contract from "type" (and "eventType" for EVENT) and checks every required field.
// @Tags         Receiver
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string                     "<TYPE> validated"
// @Failure      400  {object}  ValidationFailureResponse  "Invalid JSON, unknown type or failed validation"
// @Failure      500  "Validator not present"
// @Router       / [post]
// @Router       /httpauth [post]
func (r *ReceiverController) ReceivePayload(c *fiber.Ctx) error {
	delivery := deliverylog.Delivery{
		Route:    utils.CopyString(c.Path()),
		AuthUser: utils.CopyString(authUser(c)),
		Body:     string(c.Body()),
	}

	result, err := r.evaluate(c)
	delivery.Type = result.payloadType
	delivery.Validator = string(result.validator)
	if err != nil {
		delivery.StatusCode = fiber.StatusInternalServerError
		delivery.Message = err.Error()
		if richErr, ok := richerrors.AsRichError(err); ok {
			delivery.StatusCode = richErr.Code
			delivery.Message = richErr.ExternalMsg
		}
		r.recorder.Record(c.UserContext(), delivery)
		return err
	}

	if len(result.violations) > 0 {
		delivery.StatusCode = fiber.StatusBadRequest
		delivery.Message = validationFailedMsg
		delivery.Violations = result.violations
		r.recorder.Record(c.UserContext(), delivery)
		return c.Status(fiber.StatusBadRequest).JSON(ValidationFailureResponse{
			Message:    validationFailedMsg,
			Violations: result.violations,
		})
	}

	msg := result.payloadType + " validated"
	delivery.StatusCode = fiber.StatusOK
	delivery.Message = msg
	r.recorder.Record(c.UserContext(), delivery)
	return c.SendString(msg)
}

// evaluate decodes the body and checks it against its contract. Errors are
// richerrors carrying the response status.
func (r *ReceiverController) evaluate(c *fiber.Ctx) (verdict, error) {
	var result verdict

	var payload map[string]any
	if err := c.App().Config().JSONDecoder(c.Body(), &payload); err != nil || payload == nil {
		if err == nil {
			err = errors.New("payload is not a JSON object")
		}
		return result, richerrors.Error{
			ExternalMsg: "Invalid JSON",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}
	result.payloadType = dispatcher.DisplayValue(payload[dispatcher.TypeField])

	name, err := dispatcher.SelectValidator(payload)
	if err != nil {
		return result, richerrors.Error{
			ExternalMsg: err.Error(),
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}
	result.validator = name

	ruleSet, err := r.registry.Lookup(name)
	if err != nil {
		return result, richerrors.Error{
			ExternalMsg: fmt.Sprintf("Validator not present for %s", name),
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}

	result.violations = schema.Validate(payload, ruleSet)
	return result, nil
}
