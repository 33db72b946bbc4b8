package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/pkg/jwt"
)

// localSession clave de la sesión en c.Locals.
const localSession = "session"

// Session identidad de la cuenta que hace la petición. Se construye una vez
// por request y se pasa explícitamente; no hay estado global de sesión.
// Solo establece identidad: este servicio no aplica un modelo de autorización.
type Session struct {
	AccountID string
	Name      string
}

// SessionMiddleware valida el Bearer Token y deja la Session en c.Locals.
func SessionMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		accountID, name, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(localSession, Session{AccountID: accountID, Name: name})
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware).
// El segundo retorno es false si la ruta no pasó por el middleware.
func GetSession(c *fiber.Ctx) (Session, bool) {
	v := c.Locals(localSession)
	if v == nil {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
