package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"coffeeapi/internal/model"
	"coffeeapi/internal/service"
)

// ListCoffees godoc
// @Summary List coffees
// @Tags coffees
// @Produce json
// @Success 200 {array} model.Coffee
// @Failure 500 {object} errorPayload
// @Router /coffees [get]
func ListCoffees(svc service.CoffeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return fmt.Errorf("list coffees: %w", err)
		}
		return c.JSON(items)
	}
}

// GetCoffee godoc
// @Summary Get a coffee
// @Tags coffees
// @Produce json
// @Param id path string true "Coffee ID"
// @Success 200 {object} model.Coffee
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /coffees/{id} [get]
func GetCoffee(svc service.CoffeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		coffee, err := svc.Get(c.UserContext(), pathID(c))
		if err != nil {
			return serviceError(c, err, "get coffee")
		}
		return c.JSON(coffee)
	}
}

// CreateCoffee godoc
// @Summary Create a coffee
// @Description The id is generated when omitted.
// @Tags coffees
// @Accept json
// @Produce json
// @Param coffee body model.Coffee true "Coffee"
// @Success 200 {object} model.Coffee
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /coffees [post]
func CreateCoffee(svc service.CoffeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Coffee
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON coffee")
		}
		coffee, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return serviceError(c, err, "create coffee")
		}
		return c.Status(fiber.StatusOK).JSON(coffee)
	}
}

// UpdateCoffee godoc
// @Summary Update a coffee
// @Description Renames the coffee. An unknown id creates the supplied coffee instead and answers 201.
// @Tags coffees
// @Accept json
// @Produce json
// @Param id path string true "Coffee ID"
// @Param coffee body model.Coffee true "Coffee"
// @Success 200 {object} model.Coffee
// @Success 201 {object} model.Coffee
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /coffees/{id} [put]
func UpdateCoffee(svc service.CoffeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Coffee
		if err := decodeBody(c, &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON coffee")
		}
		res, err := svc.Update(c.UserContext(), pathID(c), &in)
		if err != nil {
			return serviceError(c, err, "update coffee")
		}
		status := fiber.StatusOK
		if res.Outcome == service.OutcomeCreated {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(res.Coffee)
	}
}

// DeleteCoffee godoc
// @Summary Delete a coffee
// @Description Unknown ids are accepted.
// @Tags coffees
// @Param id path string true "Coffee ID"
// @Success 204
// @Failure 500 {object} errorPayload
// @Router /coffees/{id} [delete]
func DeleteCoffee(svc service.CoffeeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), pathID(c)); err != nil {
			return serviceError(c, err, "delete coffee")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// pathID copies the :id param out of fasthttp's request buffer, which is reused
// once the handler returns. Backends may keep the string (the memory map does).
func pathID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return errors.New("empty body")
	}
	return c.App().Config().JSONDecoder(body, v)
}

// serviceError maps service sentinels to client errors. Anything else goes to the
// global ErrorHandler, which logs it and answers 500.
func serviceError(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "coffee not found")
	case errors.Is(err, service.ErrNameRequired):
		return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
