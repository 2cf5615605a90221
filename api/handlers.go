package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
)

// Clock endpoints.

type dateResponse struct {
	Date string `json:"date"`
}

func (s *Server) handleGetDate(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.CurrentDate()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, dateResponse{Date: d.String()})
}

func (s *Server) handleSetDate(w http.ResponseWriter, r *http.Request) {
	var req dateResponse
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := calendar.Parse(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.engine.SetDate(d); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dateResponse{Date: d.String()})
}

type advanceRequest struct {
	Unit  string `json:"unit"` // days, weeks or months
	Count int    `json:"count"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("count must be non-negative"))
		return
	}

	var (
		d   calendar.Date
		err error
	)
	switch req.Unit {
	case "days":
		d, err = s.engine.AdvanceDays(req.Count)
	case "weeks":
		d, err = s.engine.AdvanceWeeks(req.Count)
	case "months":
		d, err = s.engine.AdvanceMonths(req.Count)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unit must be days, weeks or months"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dateResponse{Date: d.String()})
}

// Account and money endpoints.

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.store.Accounts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

type createAccountRequest struct {
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	if req.Balance.IsNegative() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("balance must be non-negative"))
		return
	}
	a, err := s.store.CreateAccount(campaign.Account{
		Name: req.Name, Balance: req.Balance, InterestRate: req.InterestRate,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := s.ledger.Deposit(chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := s.ledger.Withdraw(chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type transferRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.ledger.Transfer(req.From, req.To, req.Amount); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

// Posting endpoints.

func (s *Server) handleListPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := s.store.Postings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, postings)
}

type createPostingRequest struct {
	Name      string          `json:"name"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Cadence   string          `json:"cadence"`
	AccountID string          `json:"account_id"`
}

func (s *Server) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	var req createPostingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dir := campaign.Direction(req.Direction)
	if dir != campaign.Credit && dir != campaign.Debit {
		writeError(w, http.StatusBadRequest, fmt.Errorf("direction must be credit or debit"))
		return
	}
	cadence := campaign.Cadence(req.Cadence)
	if !cadence.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("cadence must be daily, weekly or monthly"))
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("amount must be positive"))
		return
	}
	p, err := s.store.CreatePosting(campaign.Posting{
		Name: req.Name, Direction: dir, Amount: req.Amount,
		Cadence: cadence, AccountID: req.AccountID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Objective endpoints.

func (s *Server) handleListObjectives(w http.ResponseWriter, r *http.Request) {
	objectives, err := s.store.Objectives()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, objectives)
}

type createObjectiveRequest struct {
	Name            string          `json:"name"`
	EstimatedMonths decimal.Decimal `json:"estimated_months"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	AccountID       string          `json:"account_id"`
}

func (s *Server) handleCreateObjective(w http.ResponseWriter, r *http.Request) {
	var req createObjectiveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !req.EstimatedMonths.IsPositive() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("estimated_months must be positive"))
		return
	}
	if req.TotalCost.IsNegative() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("total_cost must be non-negative"))
		return
	}
	o, err := s.store.CreateObjective(campaign.Objective{
		Name:                req.Name,
		EstimatedMonths:     req.EstimatedMonths,
		BaseEstimatedMonths: req.EstimatedMonths,
		TotalCost:           req.TotalCost,
		AccountID:           req.AccountID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleStartObjective(w http.ResponseWriter, r *http.Request) {
	o, err := s.engine.StartObjective(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// Event endpoints.

func (s *Server) handlePendingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.PendingEvents()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

type createEventRequest struct {
	ObjectiveID string `json:"objective_id"`
	Description string `json:"description"`
}

// handleCreateEvent records a new complication on an in-progress
// objective, asking the proposal source for its outcome candidates.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	obj, err := s.store.Objective(req.ObjectiveID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if obj.Status != campaign.StatusInProgress {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("objective %q is %s, events attach to IN_PROGRESS objectives", obj.Name, obj.Status))
		return
	}

	outcomes, err := s.proposals.Propose(r.Context(), req.Description)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("propose outcomes: %w", err))
		return
	}

	ev, err := s.store.CreateEvent(campaign.Event{
		ObjectiveID: obj.ID,
		Description: req.Description,
		Options:     outcomes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

type chooseOutcomeRequest struct {
	Option int `json:"option"`
}

func (s *Server) handleChooseOutcome(w http.ResponseWriter, r *http.Request) {
	var req chooseOutcomeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ev, err := s.store.Event(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if ev.Handled || ev.Decided() {
		writeError(w, http.StatusConflict, fmt.Errorf("event already decided"))
		return
	}
	if req.Option < 0 || req.Option >= len(ev.Options) {
		writeError(w, http.StatusBadRequest,
			fmt.Errorf("option %d out of range, event has %d options", req.Option, len(ev.Options)))
		return
	}
	if err := s.store.ChooseOutcome(ev.ID, ev.Options[req.Option]); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	chosen, err := s.store.Event(ev.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, chosen)
}

// Journal endpoints.

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if s.audit == nil {
		writeError(w, http.StatusNotFound, errors.New("journal backend does not support queries"))
		return
	}
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := calendar.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entries, err := s.audit.EntriesByDate(d)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := s.audit.Recent(100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
