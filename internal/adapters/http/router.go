package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/offerdesk/offerdesk/internal/core/domain"
	"github.com/offerdesk/offerdesk/internal/core/ports"
	"github.com/offerdesk/offerdesk/internal/core/usecase"
)

type Router struct {
	customers *usecase.CustomerService
	offers    *usecase.OfferService
	comments  *usecase.CommentService
	files     *usecase.FileService
	search    ports.SearchTaskRegistry
	auth      *Gate
	assetsDir string
	metrics   http.Handler
}

func NewRouter(
	customers *usecase.CustomerService,
	offers *usecase.OfferService,
	comments *usecase.CommentService,
	files *usecase.FileService,
	search ports.SearchTaskRegistry,
	auth *Gate,
	assetsDir string,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		customers: customers,
		offers:    offers,
		comments:  comments,
		files:     files,
		search:    search,
		auth:      auth,
		assetsDir: assetsDir,
		metrics:   metricsHandler,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	am := []domain.Role{domain.RoleAccountManager}
	amDev := []domain.Role{domain.RoleAccountManager, domain.RoleDeveloper}
	amUser := []domain.Role{domain.RoleAccountManager, domain.RoleUser}
	all := domain.KnownRoles()

	mux.HandleFunc("GET /healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics)
	}
	if rt.assetsDir != "" {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(rt.assetsDir))))
	}

	mux.Handle("GET /customers", rt.auth.RequireRole(rt.listCustomers, all...))
	mux.Handle("POST /customers", rt.auth.RequireRole(rt.createCustomer, amDev...))
	mux.Handle("POST /customers/seed", rt.auth.RequireRole(rt.seedCustomers, amDev...))
	mux.Handle("PUT /customers/{idOrName}", rt.auth.RequireRole(rt.updateCustomer, amDev...))
	mux.Handle("DELETE /customers/{id}", rt.auth.RequireRole(rt.deleteCustomer, am...))

	mux.Handle("GET /offers", rt.auth.RequireRole(rt.listOffers, all...))
	mux.Handle("POST /offers", rt.auth.RequireRole(rt.createOffer, amDev...))
	mux.Handle("POST /offers/seed", rt.auth.RequireRole(rt.seedOffers, amDev...))
	mux.Handle("POST /offers/sample", rt.auth.RequireRole(rt.loadSampleOffers, amDev...))
	mux.Handle("PUT /offers/{id}", rt.auth.RequireRole(rt.updateOffer, amDev...))
	mux.Handle("DELETE /offers/{id}", rt.auth.RequireRole(rt.deleteOffer, am...))
	mux.Handle("PATCH /offers/{id}/status", rt.auth.RequireRole(rt.updateOfferStatus, amUser...))

	mux.Handle("GET /offers/{offerId}/comments", rt.auth.RequireRole(rt.listComments, all...))
	mux.Handle("POST /offers/{offerId}/comments", rt.auth.RequireRole(rt.createComment, all...))
	mux.Handle("PUT /offers/{offerId}/comments/{id}", rt.auth.RequireRole(rt.updateComment, amDev...))
	mux.Handle("DELETE /offers/{offerId}/comments/{id}", rt.auth.RequireRole(rt.deleteComment, amDev...))

	mux.Handle("POST /offers/{offerId}/files", rt.auth.RequireRole(rt.uploadFile, all...))
	mux.Handle("GET /offers/{offerId}/files", rt.auth.RequireRole(rt.listFiles, all...))
	mux.Handle("GET /offers/{offerId}/files/{fileId}/tags", rt.auth.RequireRole(rt.listTags, all...))
	mux.Handle("POST /offers/{offerId}/files/{fileId}/tags", rt.auth.RequireRole(rt.addTag, all...))
	mux.Handle("PUT /offers/{offerId}/files/{fileId}/tags/{tagId}", rt.auth.RequireRole(rt.updateTag, all...))
	mux.Handle("DELETE /offers/{offerId}/files/{fileId}/tags/{tagId}", rt.auth.RequireRole(rt.deleteTag, all...))

	mux.Handle("POST /tags/search", rt.auth.RequireRole(rt.submitSearch, all...))
	mux.Handle("GET /tags/search/{taskId}", rt.auth.RequireRole(rt.pollSearch, all...))

	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("write_response_failed", "error", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewError(domain.ErrInvalidInput, "Invalid JSON body")
	}
	return nil
}
