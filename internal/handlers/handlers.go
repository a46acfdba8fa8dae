package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/AmirSomo/api/internal/httputil"
	"github.com/AmirSomo/api/internal/ledger"
	"github.com/AmirSomo/api/internal/logger"
)

type Handler struct {
	ledger   *ledger.Ledger
	validate *validator.Validate
}

func New(l *ledger.Ledger) *Handler {
	return &Handler{
		ledger:   l,
		validate: validator.New(),
	}
}

type CreateAccountRequest struct {
	Username       string          `json:"username" validate:"required"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type TransferRequest struct {
	FromUsername string          `json:"from_username" validate:"required"`
	ToUsername   string          `json:"to_username" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	acct, err := h.ledger.CreateAccount(req.Username, req.InitialBalance)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	logger.Log.Info("account created",
		zap.String("username", req.Username),
		zap.String("account_id", acct.ID))
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"account_id": acct.ID})
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	balance, err := h.ledger.GetBalance(username)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutateBalance(w, r, h.ledger.Deposit)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutateBalance(w, r, h.ledger.Withdraw)
}

// mutateBalance factors the shared shape of deposit and withdraw: decode the
// amount, apply the operation to the account from the URL, return the new
// balance.
func (h *Handler) mutateBalance(w http.ResponseWriter, r *http.Request, op func(string, decimal.Decimal) (decimal.Decimal, error)) {
	username := chi.URLParam(r, "username")

	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance, err := op(username, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.ledger.Transfer(req.FromUsername, req.ToUsername, req.Amount); err != nil {
		writeLedgerError(w, err)
		return
	}

	logger.Log.Info("transfer completed",
		zap.String("from", req.FromUsername),
		zap.String("to", req.ToUsername),
		zap.String("amount", req.Amount.String()))
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "transfer successful"})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	txs, err := h.ledger.ListTransactions(username)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.ledger.DeleteAccount(username); err != nil {
		writeLedgerError(w, err)
		return
	}

	logger.Log.Info("account deleted", zap.String("username", username))
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	stmt, err := h.ledger.GetStatement(username)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stmt)
}

// writeLedgerError maps domain errors to HTTP status codes: unknown accounts
// are 404, every other validation failure is 400.
func writeLedgerError(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, ledger.ErrAccountNotFound) {
		code = http.StatusNotFound
	}
	httputil.WriteError(w, code, err.Error())
}
