package httpadapter

import (
	"net/http"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

func (rt *Router) listCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.CustomerFilter{
		Name:    query.Get("name"),
		Email:   query.Get("email"),
		Address: query.Get("address"),
		Contact: query.Get("contact"),
	}

	customers, err := rt.customers.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (rt *Router) createCustomer(w http.ResponseWriter, r *http.Request) {
	var patch domain.CustomerPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := rt.customers.Create(r.Context(), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (rt *Router) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var patch domain.CustomerPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	customer, err := rt.customers.Update(r.Context(), r.PathValue("idOrName"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (rt *Router) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := rt.customers.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (rt *Router) seedCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := rt.customers.Seed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customers)
}
