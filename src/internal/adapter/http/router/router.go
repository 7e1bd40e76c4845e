package router

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	ledgerController RouteRegistrar,
	authController RouteRegistrar,
	billingController RouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	for _, registrar := range []RouteRegistrar{ledgerController, authController, billingController} {
		if registrar != nil {
			registrar.RegisterRoutes(mux, authMiddleware)
		}
	}

	return mux
}
