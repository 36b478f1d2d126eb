package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
	"line-of-credit/internal/service"
)

type PeriodHandler struct {
	ledger *service.LedgerService
}

func NewPeriodHandler(ledger *service.LedgerService) *PeriodHandler {
	return &PeriodHandler{
		ledger: ledger,
	}
}

// ClosePeriodRequest may be empty; the service's period length applies then.
type ClosePeriodRequest struct {
	PeriodLength int `json:"period_length,omitempty"`
}

type PeriodResponse struct {
	ID             string          `json:"id,omitempty"`
	PeriodNumber   int             `json:"period_number"`
	PeriodLength   int             `json:"period_length"`
	OpeningBalance string          `json:"opening_balance"`
	ClosingBalance string          `json:"closing_balance"`
	FinanceCharge  string          `json:"finance_charge"`
	Entries        []EntryResponse `json:"entries"`
	ClosedAt       time.Time       `json:"closed_at"`
}

func newPeriodResponse(p *domain.PeriodClose) PeriodResponse {
	response := PeriodResponse{
		PeriodNumber:   p.PeriodNumber,
		PeriodLength:   p.PeriodLength,
		OpeningBalance: p.OpeningBalance.StringFixed(2),
		ClosingBalance: p.ClosingBalance.StringFixed(2),
		FinanceCharge:  p.FinanceCharge.StringFixed(2),
		Entries:        make([]EntryResponse, 0, len(p.Entries)),
		ClosedAt:       p.ClosedAt,
	}
	// a close with nothing to accrue is not archived and has no id
	if p.ID != uuid.Nil {
		response.ID = p.ID.String()
	}
	for _, e := range p.Entries {
		response.Entries = append(response.Entries, newEntryResponse(e))
	}
	return response
}

func (h *PeriodHandler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req ClosePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid request body").WithDetails(err.Error()))
		return
	}

	period, err := h.ledger.ClosePeriod(r.Context(), id, req.PeriodLength)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newPeriodResponse(period))
}

func (h *PeriodHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	periods, err := h.ledger.PeriodHistory(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]PeriodResponse, 0, len(periods))
	for i := range periods {
		response = append(response, newPeriodResponse(&periods[i]))
	}
	writeJSON(w, http.StatusOK, response)
}
