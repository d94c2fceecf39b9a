package httpapi

import (
    "encoding/json"
    "net/http"

    chi "github.com/go-chi/chi/v5"
    "github.com/google/uuid"
)

func (s *Server) postParty(w http.ResponseWriter, r *http.Request) {
    if !requireJSON(w, r) {
        return
    }
    var req postPartyRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        badRequest(w, "invalid JSON body")
        return
    }
    p, err := s.partySvc.Create(r.Context(), identityFrom(r).Role, req.Name)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    toJSON(w, http.StatusCreated, partyResponse{ID: p.ID, Name: p.Name})
}

func (s *Server) listParties(w http.ResponseWriter, r *http.Request) {
    parties, err := s.partySvc.List(r.Context())
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    out := make([]partyResponse, 0, len(parties))
    for _, p := range parties {
        out = append(out, partyResponse{ID: p.ID, Name: p.Name})
    }
    toJSON(w, http.StatusOK, out)
}

func (s *Server) renameParty(w http.ResponseWriter, r *http.Request) {
    if !requireJSON(w, r) {
        return
    }
    id, ok := pathID(w, r)
    if !ok {
        return
    }
    var req postPartyRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        badRequest(w, "invalid JSON body")
        return
    }
    p, err := s.partySvc.Rename(r.Context(), identityFrom(r).Role, id, req.Name)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    toJSON(w, http.StatusOK, partyResponse{ID: p.ID, Name: p.Name})
}

func (s *Server) deleteParty(w http.ResponseWriter, r *http.Request) {
    id, ok := pathID(w, r)
    if !ok {
        return
    }
    if err := s.partySvc.Delete(r.Context(), identityFrom(r).Role, id); err != nil {
        writeDomainErr(w, err)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
    id, err := uuid.Parse(chi.URLParam(r, "id"))
    if err != nil {
        badRequest(w, "invalid id")
        return uuid.Nil, false
    }
    return id, true
}
