package httpserver

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	cartHeader      = "X-Cart-Id"
	cartCookie      = "cartId"
	cartCookieTTL   = 7 * 24 * time.Hour
	cartIDKey       = "cartID"
)

// requestID echoes the caller's request id or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(requestIDHeader, id)
		c.Next()
	}
}

// cartIdentity binds every cart request to a cart. The header or cartId query
// parameter wins over the cookie; an id that no longer resolves falls through
// to the next source, and a fresh cart is created when nothing resolves.
func cartIdentity(carts CartService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		candidates := []string{
			strings.TrimSpace(c.GetHeader(cartHeader)),
			strings.TrimSpace(c.Query("cartId")),
		}
		if cookie, err := c.Cookie(cartCookie); err == nil {
			candidates = append(candidates, strings.TrimSpace(cookie))
		}

		for _, id := range candidates {
			if id == "" {
				continue
			}
			existing, err := carts.Find(ctx, id)
			if err != nil {
				respondError(c, err)
				return
			}
			if existing != nil {
				bindCart(c, existing.ID)
				return
			}
		}

		created, err := carts.Create(ctx, "")
		if err != nil {
			respondError(c, err)
			return
		}
		logger.Printf("cart: created id=%s currency=%s", created.ID, created.TotalPrice.CurrencyCode)
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cartCookie,
			Value:    created.ID,
			Path:     "/",
			MaxAge:   int(cartCookieTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		bindCart(c, created.ID)
	}
}

func bindCart(c *gin.Context, id string) {
	c.Set(cartIDKey, id)
	c.Header(cartHeader, id)
	c.Next()
}

func cartID(c *gin.Context) string {
	return c.GetString(cartIDKey)
}
