package httpapi

import (
    "fmt"
    "net/http"
    "strconv"

    "github.com/pharmadesk/pharmapay/internal/errs"
)

// defaultTrendMonths is the analytics window when none is requested.
const defaultTrendMonths = 6

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
    d, err := s.summary.Dashboard(r.Context(), identityFrom(r).Role)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    toJSON(w, http.StatusOK, toDashboardResponse(d))
}

func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
    months := defaultTrendMonths
    if v := r.URL.Query().Get("months"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil {
            writeDomainErr(w, fmt.Errorf("%w: months must be an integer", errs.ErrValidation))
            return
        }
        months = n
    }
    o, err := s.summary.Overview(r.Context(), identityFrom(r).Role, months)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    toJSON(w, http.StatusOK, toOverviewResponse(o))
}
