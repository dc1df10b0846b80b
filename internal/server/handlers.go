package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/diogosantosua/onboarding-tools/internal/policy"
	"github.com/diogosantosua/onboarding-tools/internal/tmf"
)

// listServiceOrders returns the ids of all active service orders.
func (s *Server) listServiceOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.openslice.ListActiveServiceOrders(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Could not get Service Orders from OpenSlice")
		return
	}

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		if order.ID != "" {
			ids = append(ids, order.ID)
		}
	}
	respondJSON(w, http.StatusOK, ids)
}

// listServiceSpecs returns the names of all service specifications.
func (s *Server) listServiceSpecs(w http.ResponseWriter, r *http.Request) {
	specs, err := s.openslice.ListServiceSpecs(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Could not get Service Specifications from OpenSlice")
		return
	}

	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.Name != "" {
			names = append(names, spec.Name)
		}
	}
	respondJSON(w, http.StatusOK, names)
}

// handleOpenSliceServiceOrder receives the MSPL attached to a new OpenSlice
// service order, forwards it to the Security Orchestrator and parks the
// order until the orchestrator pushes back the corresponding policy. The
// order id is echoed on success, an empty string otherwise.
func (s *Server) handleOpenSliceServiceOrder(w http.ResponseWriter, r *http.Request) {
	serviceOrderID := chi.URLParam(r, "serviceOrderID")

	mspl, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not read MSPL body")
		return
	}

	policyType, ok := policy.TypeFromMSPL(string(mspl))
	if !ok {
		log.Warn().Str("order", serviceOrderID).Msg("mspl names no known capability")
		respondJSON(w, http.StatusOK, "")
		return
	}

	if err := s.orchestrator.SendMSPL(r.Context(), mspl); err != nil {
		log.Warn().Err(err).Str("order", serviceOrderID).Msg("could not forward mspl")
		respondJSON(w, http.StatusOK, "")
		return
	}

	if !s.queues.Enqueue(policyType, serviceOrderID) {
		log.Warn().Str("order", serviceOrderID).Str("type", string(policyType)).
			Msg("policy waiting queue full")
		respondJSON(w, http.StatusOK, "")
		return
	}

	log.Debug().Str("order", serviceOrderID).Str("type", string(policyType)).
		Msg("service order waiting for policy")
	respondJSON(w, http.StatusOK, serviceOrderID)
}

// handleRiskSpecification applies TRA risk and PQ privacy scores to every
// customer-facing service spec matching the specification's CPE, propagating
// the update to the affected service orders and inventories.
func (s *Server) handleRiskSpecification(w http.ResponseWriter, r *http.Request) {
	var rs tmf.RiskSpecification
	if err := json.NewDecoder(r.Body).Decode(&rs); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Risk Specification")
		return
	}
	if rs.CPE == "" {
		respondError(w, http.StatusBadRequest, "Missing attribute 'cpe' in Risk Specification")
		return
	}

	specs, err := s.openslice.ListServiceSpecs(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "Could not reach OpenSlice")
		return
	}

	updated := make([]tmf.ServiceOrder, 0)
	for _, summary := range specs {
		if summary.Type != tmf.SpecTypeCFSS {
			continue
		}
		spec, err := s.openslice.GetServiceSpec(r.Context(), summary.ID)
		if err != nil {
			log.Warn().Err(err).Str("spec", summary.ID).Msg("could not fetch service spec")
			continue
		}
		if !spec.UpdateRisk(rs) {
			continue
		}
		orders, err := s.openslice.UpdateServiceOrdersFromSpec(r.Context(), *spec)
		if err != nil {
			log.Warn().Err(err).Str("spec", summary.ID).Msg("could not propagate risk update")
			continue
		}
		updated = append(updated, orders...)
	}
	respondJSON(w, http.StatusOK, updated)
}

// handleNMTDPolicy applies a network MTD policy: the provided service spec
// (with its action characteristics) is pushed to every active order
// referencing it.
func (s *Server) handleNMTDPolicy(w http.ResponseWriter, r *http.Request) {
	var spec tmf.ServiceSpecWithAction
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		respondError(w, http.StatusBadRequest, "Malformed Service Specification")
		return
	}
	if spec.Name == "" && spec.ID == "" {
		respondError(w, http.StatusBadRequest, "Missing service 'name' or 'id' from provided Service Specification")
		return
	}

	orders, err := s.openslice.UpdateServiceOrdersFromSpec(r.Context(), spec.ServiceSpec)
	if err != nil {
		if errors.Is(err, tmf.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "Could not reach OpenSlice")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []tmf.ServiceOrder{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// policyHandler builds the handler for one typed Security Orchestrator
// policy endpoint. The oldest service order waiting for this policy type is
// dequeued and patched with the policy's service characteristics; when no
// order is waiting the handler responds null.
func policyHandler[P policy.Policy](s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p P
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			respondError(w, http.StatusBadRequest, "Malformed policy")
			return
		}

		orderID, ok := s.queues.Dequeue(p.Type())
		if !ok {
			log.Debug().Str("type", string(p.Type())).Msg("no service order waiting for policy")
			respondJSON(w, http.StatusOK, nil)
			return
		}

		order, err := s.openslice.UpdateServiceOrderAndInventories(r.Context(), orderID, p.ToServiceSpec())
		if err != nil {
			if errors.Is(err, tmf.ErrUnavailable) {
				respondError(w, http.StatusServiceUnavailable, "Could not reach OpenSlice")
				return
			}
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}
