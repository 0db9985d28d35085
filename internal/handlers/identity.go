package handlers

import "github.com/gofiber/fiber/v2"

type callerIdentity struct {
	ExternalID string
	Name       string
	Email      string
	Role       string
}

func identityFromLocals(c *fiber.Ctx) (callerIdentity, bool) {
	externalID, ok := c.Locals("user_id").(string)
	if !ok || externalID == "" {
		return callerIdentity{}, false
	}
	name, _ := c.Locals("name").(string)
	email, _ := c.Locals("email").(string)
	role, _ := c.Locals("role").(string)
	return callerIdentity{
		ExternalID: externalID,
		Name:       name,
		Email:      email,
		Role:       role,
	}, true
}
