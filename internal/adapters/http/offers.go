package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

func (rt *Router) listOffers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.OfferFilter{
		Name:   query.Get("name"),
		Status: query.Get("status"),
	}
	if raw := query.Get("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, r, domain.NewError(domain.ErrInvalidInput, "Invalid price filter. It must be a number."))
			return
		}
		filter.Price = &price
	}

	offers, err := rt.offers.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

func (rt *Router) createOffer(w http.ResponseWriter, r *http.Request) {
	var patch domain.OfferPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	offer, err := rt.offers.Create(r.Context(), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

func (rt *Router) updateOffer(w http.ResponseWriter, r *http.Request) {
	var patch domain.OfferPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}

	offer, err := rt.offers.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Offer successfully updated",
		"updatedOffer": offer,
	})
}

func (rt *Router) deleteOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := rt.offers.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Offer successfully deleted",
		"deletedOffer": offer,
	})
}

func (rt *Router) updateOfferStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewStatus string `json:"newStatus"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	offer, err := rt.offers.UpdateStatus(r.Context(), r.PathValue("id"), body.NewStatus)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":      "Offer status successfully updated",
		"updatedOffer": offer,
	})
}

func (rt *Router) seedOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := rt.offers.Seed(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, offers)
}

func (rt *Router) loadSampleOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := rt.offers.LoadSamples(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, offers)
}
