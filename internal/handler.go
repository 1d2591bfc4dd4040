package internal

// Handler declares routes on a router.
//
// Example:
//
//	type BillingHandler struct {
//	    repo *billing.Repo
//	}
//
//	func (h *BillingHandler) Routes(r loom.Router) {
//	    r.GET("/billing", h.showPlans)
//	    r.POST("/billing/subscribe", h.subscribe)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers. Returning a non-nil
// error hands control to the app's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting behavior. It can
// inspect or modify the request, short-circuit, or wrap the response.
//
// Example:
//
//	func RequireAuth(next loom.HandlerFunc) loom.HandlerFunc {
//	    return func(c loom.Context) error {
//	        if !c.IsAuthenticated() {
//	            return c.Redirect(http.StatusFound, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
