package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"line-of-credit/internal/domain"
	"line-of-credit/internal/errors"
	"line-of-credit/internal/service"
)

type AccountHandler struct {
	ledger *service.LedgerService
}

func NewAccountHandler(ledger *service.LedgerService) *AccountHandler {
	return &AccountHandler{
		ledger: ledger,
	}
}

type CreateAccountRequest struct {
	AnnualRate  string `json:"annual_rate"`
	CreditLimit string `json:"credit_limit"`
}

type StatementResponse struct {
	AccountID             string `json:"account_id"`
	AnnualRate            string `json:"annual_rate"`
	CreditLimit           string `json:"credit_limit"`
	Balance               string `json:"balance"`
	AccruedFinanceCharges string `json:"accrued_finance_charges"`
	TotalPayoff           string `json:"total_payoff"`
	RemainingCredit       string `json:"remaining_credit"`
	PeriodNumber          int    `json:"period_number"`
}

func newStatementResponse(st *domain.Statement) StatementResponse {
	return StatementResponse{
		AccountID:             st.AccountID.String(),
		AnnualRate:            st.AnnualRate.String(),
		CreditLimit:           st.CreditLimit.StringFixed(2),
		Balance:               st.Balance.StringFixed(2),
		AccruedFinanceCharges: st.AccruedFinanceCharges.StringFixed(2),
		TotalPayoff:           st.TotalPayoff.StringFixed(2),
		RemainingCredit:       st.RemainingCredit.StringFixed(2),
		PeriodNumber:          st.PeriodNumber,
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	annualRate, err := decimal.NewFromString(req.AnnualRate)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidInput, "invalid annual_rate format").WithDetails(err.Error()))
		return
	}

	creditLimit, err := decimal.NewFromString(req.CreditLimit)
	if err != nil {
		writeError(w, errors.NewAppError(errors.InvalidAmount, "invalid credit_limit format").WithDetails(err.Error()))
		return
	}

	account, err := h.ledger.CreateAccount(r.Context(), annualRate, creditLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newStatementResponse(account.Statement()))
}

func (h *AccountHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	id, err := accountID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	statement, err := h.ledger.Statement(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newStatementResponse(statement))
}
