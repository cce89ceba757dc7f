package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MehediHasan95/tasty-pizza-server/internal/auth"
	"github.com/MehediHasan95/tasty-pizza-server/internal/repository"
)

type Handlers struct {
	Users    *UserHandler
	Items    *ItemHandler
	Carts    *CartHandler
	Orders   *OrderHandler
	Payments *PaymentHandler
}

// NewRouter wires the full route surface. Route names and spellings match
// the frontend the server was built for, cancle-payment included.
func NewRouter(h Handlers, tokens *auth.TokenService, users repository.UserRepository, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))

	verify := VerifyToken(tokens)
	admin := RequireAdmin(users)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("TASTY PIZZA SERVER RUNNING"))
	})

	// Public surface.
	r.Post("/jwt", h.Users.IssueToken)
	r.Get("/role/{uid}", h.Users.GetRole)
	r.Post("/users", h.Users.CreateUser)
	r.Get("/all-items", h.Items.ListItems)
	r.Get("/item-detail/{id}", h.Items.ItemDetail)
	r.Delete("/remove-cart-item/{id}", h.Carts.RemoveCartItem)
	r.Post("/payment-success/{tran_id}", h.Payments.PaymentSuccess)
	r.Post("/cancle-payment", h.Payments.CancelPayment)

	// Owner-scoped: token subject must match the uid query parameter.
	r.Group(func(r chi.Router) {
		r.Use(verify, RequireOwner)
		r.Get("/profile", h.Users.GetProfile)
		r.Patch("/update-profile/{id}", h.Users.UpdateProfile)
		r.Delete("/delete-user", h.Users.DeleteUser)
		r.Get("/add-to-cart", h.Carts.ListCart)
		r.Get("/my-orders", h.Orders.MyOrders)
		r.Post("/create-payment-intent", h.Payments.CreateIntent)
	})

	// Token only.
	r.Group(func(r chi.Router) {
		r.Use(verify)
		r.Post("/add-to-cart", h.Carts.AddToCart)
		r.Delete("/order-delete/{id}", h.Orders.DeleteOrder)
	})

	// Operator surface, gated on the stored role.
	r.Group(func(r chi.Router) {
		r.Use(verify, admin)
		r.Get("/users", h.Users.ListUsers)
		r.Get("/admin-all-items", h.Items.AdminListItems)
		r.Get("/admin-item-update/{id}", h.Items.ItemDetail)
		r.Patch("/admin-item-update/{id}", h.Items.UpdateItem)
		r.Post("/add-item", h.Items.CreateItem)
		r.Delete("/item-delete/{id}", h.Items.DeleteItem)
		r.Get("/admin-order", h.Orders.AdminListOrders)
		r.Delete("/admin-order-delete/{id}", h.Orders.AdminDeleteOrder)
		r.Patch("/admin-order-delete/{id}", h.Orders.AdminFulfillOrder)
	})

	return r
}
