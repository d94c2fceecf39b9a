package httpapi

import (
    "context"
    "fmt"
    "net/http"
    "time"

    "github.com/google/uuid"

    "github.com/pharmadesk/pharmapay/internal/errs"
    "github.com/pharmadesk/pharmapay/internal/policy"
    "github.com/pharmadesk/pharmapay/internal/report"
)

// exportReport streams a payment report for the requested window in the
// requested encoding. Reports expose monetary sums, so the caller needs
// financial visibility.
func (s *Server) exportReport(w http.ResponseWriter, r *http.Request) {
    if !policy.ForRole(identityFrom(r).Role).CanViewFinancials {
        writeDomainErr(w, errs.ErrForbidden)
        return
    }
    format, err := report.ParseFormat(r.URL.Query().Get("format"))
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    f, err := parseFilter(r)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    if f.From == nil || f.To == nil {
        writeDomainErr(w, fmt.Errorf("%w: from and to are required", errs.ErrValidation))
        return
    }
    txs, err := s.txSvc.Query(r.Context(), f)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    names, err := s.partyNames(r.Context())
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    doc, err := report.Build(txs, names, s.org, *f.From, *f.To)
    if err != nil {
        writeDomainErr(w, err)
        return
    }
    filename := "payment-report-" + time.Now().UTC().Format("20060102") + format.Ext()
    w.Header().Set("Content-Type", format.ContentType())
    w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
    if err := report.Encode(w, format, doc); err != nil {
        s.log.Error("report encode failed", "error", err)
    }
}

func (s *Server) partyNames(ctx context.Context) (map[uuid.UUID]string, error) {
    parties, err := s.partySvc.List(ctx)
    if err != nil {
        return nil, err
    }
    names := make(map[uuid.UUID]string, len(parties))
    for _, p := range parties {
        names[p.ID] = p.Name
    }
    return names, nil
}
