package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/medcore-io/appointment-service/internal/domain"
)

// RequirePatient ensures a PATIENT is authenticated.
func RequirePatient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypePatient || principal.User == nil {
			return fiber.NewError(http.StatusForbidden, "patient required")
		}
		return c.Next()
	}
}

// RequireDoctor ensures a DOCTOR is authenticated.
func RequireDoctor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeDoctor || principal.Doctor == nil {
			return fiber.NewError(http.StatusForbidden, "doctor required")
		}
		return c.Next()
	}
}

// RequireAnySubject ensures the caller is authenticated (patient or doctor).
func RequireAnySubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
