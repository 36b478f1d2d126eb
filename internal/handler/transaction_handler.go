package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
	"line-of-credit/internal/service"
)

type TransactionHandler struct {
	ledger *service.LedgerService
}

func NewTransactionHandler(ledger *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledger: ledger,
	}
}

type TransactionRequest struct {
	Day    *int   `json:"day"`
	Amount string `json:"amount"`
}

type EntryResponse struct {
	ID                string `json:"id"`
	Kind              string `json:"kind"`
	Day               int    `json:"day"`
	Sequence          int    `json:"sequence"`
	Amount            string `json:"amount"`
	FinanceChargePaid string `json:"finance_charge_paid"`
}

func newEntryResponse(e domain.TransactionEntry) EntryResponse {
	return EntryResponse{
		ID:                e.ID.String(),
		Kind:              string(e.Kind),
		Day:               e.DayOffset,
		Sequence:          e.Sequence,
		Amount:            e.Amount.StringFixed(2),
		FinanceChargePaid: e.FinanceChargePaid.StringFixed(2),
	}
}

func (h *TransactionHandler) Draw(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.ledger.Draw)
}

func (h *TransactionHandler) Payment(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.ledger.Payment)
}

type recordFunc func(ctx context.Context, accountID uuid.UUID, day int, amount decimal.Decimal) (*domain.TransactionEntry, error)

func (h *TransactionHandler) handle(w http.ResponseWriter, r *http.Request, record recordFunc) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req TransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Day == nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "day is required"))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(err.Error()))
		return
	}

	entry, err := record(r.Context(), id, *req.Day, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newEntryResponse(*entry))
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.ledger.Transactions(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, newEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, response)
}
