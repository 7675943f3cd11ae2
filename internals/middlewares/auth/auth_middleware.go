package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"schoolfeesku_backend/internals/configs"
	helper "schoolfeesku_backend/internals/helpers"
)

// Path publik yang di-skip auth (webhook gateway dsb.)
var skipPaths = map[string]struct{}{
	"/api/payments/webhook": {},
}

// AuthMiddleware parse & verifikasi JWT lalu menaruh SessionContext di locals.
// Identitas selalu di-thread eksplisit dari sini, tidak dibaca ulang dari token
// di dalam controller.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		sc, err := sessionFromClaims(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		helper.SetSessionContext(c, sc)
		c.Locals("userRole", sc.Role)
		c.Locals("user_id", sc.UserID.String())

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1], nil
		}
		return "", errors.New("Unauthorized - Malformed Authorization header")
	}
	// cookie fallback
	if tok := c.Cookies("access_token"); tok != "" {
		return tok, nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func sessionFromClaims(claims jwt.MapClaims) (helper.SessionContext, error) {
	sc := helper.SessionContext{}

	role, _ := claims["role"].(string)
	if role == "" {
		return sc, errors.New("Unauthorized - missing role claim")
	}
	sc.Role = role

	sub, _ := claims["user_id"].(string)
	if sub == "" {
		sub, _ = claims["sub"].(string)
	}
	uid, err := uuid.Parse(sub)
	if err != nil {
		return sc, errors.New("Unauthorized - invalid user id claim")
	}
	sc.UserID = uid

	if s, _ := claims["student_year_id"].(string); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			sc.StudentYearID = &id
		}
	}
	if s, _ := claims["school_year_id"].(string); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			sc.SchoolYearID = &id
		}
	}

	return sc, nil
}
