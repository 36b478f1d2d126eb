package handler

import (
	"github.com/gorilla/mux"

	"line-of-credit/internal/service"
)

// RegisterRoutes mounts the ledger API on router.
func RegisterRoutes(router *mux.Router, ledger *service.LedgerService) {
	accountHandler := NewAccountHandler(ledger)
	transactionHandler := NewTransactionHandler(ledger)
	periodHandler := NewPeriodHandler(ledger)

	// Account routes
	router.HandleFunc("/accounts", accountHandler.CreateAccount).Methods("POST")
	router.HandleFunc("/accounts/{account_id}", accountHandler.GetStatement).Methods("GET")

	// Transaction routes
	router.HandleFunc("/accounts/{account_id}/draws", transactionHandler.Draw).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/payments", transactionHandler.Payment).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/transactions", transactionHandler.ListTransactions).Methods("GET")

	// Period routes
	router.HandleFunc("/accounts/{account_id}/periods", periodHandler.ClosePeriod).Methods("POST")
	router.HandleFunc("/accounts/{account_id}/periods", periodHandler.ListPeriods).Methods("GET")
}
