// Package ledger provides the manual money operations that live outside
// the tick: deposits, withdrawals and transfers between bank accounts.
// The clock never calls these; they are operator actions, and unlike
// tick sub-steps their failures come back to the caller.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/campaign"
	"github.com/gmtools/campaigner/journal"
	"github.com/gmtools/campaigner/store"
)

type Service struct {
	store   store.Store
	journal journal.Journal
}

func NewService(st store.Store, j journal.Journal) *Service {
	return &Service{store: st, journal: j}
}

// Deposit credits amount to an account. Amount must be positive.
func (s *Service) Deposit(accountID string, amount decimal.Decimal) (campaign.Account, error) {
	if !amount.IsPositive() {
		return campaign.Account{}, fmt.Errorf("deposit amount %s must be positive", amount)
	}
	acct, err := s.store.Account(accountID)
	if err != nil {
		return campaign.Account{}, err
	}
	acct.Balance = acct.Balance.Add(amount)
	if err := s.store.SetBalance(acct.ID, acct.Balance); err != nil {
		return campaign.Account{}, err
	}
	s.log(acct.Name, fmt.Sprintf("deposited %s", amount), amount)
	return acct, nil
}

// Withdraw debits amount from an account, refusing to take the balance
// negative.
func (s *Service) Withdraw(accountID string, amount decimal.Decimal) (campaign.Account, error) {
	if !amount.IsPositive() {
		return campaign.Account{}, fmt.Errorf("withdrawal amount %s must be positive", amount)
	}
	acct, err := s.store.Account(accountID)
	if err != nil {
		return campaign.Account{}, err
	}
	if !acct.CanCover(amount) {
		return campaign.Account{}, fmt.Errorf("withdraw %s from %s holding %s: %w",
			amount, acct.Name, acct.Balance, campaign.ErrInsufficientFunds)
	}
	acct.Balance = acct.Balance.Sub(amount)
	if err := s.store.SetBalance(acct.ID, acct.Balance); err != nil {
		return campaign.Account{}, err
	}
	s.log(acct.Name, fmt.Sprintf("withdrew %s", amount), amount)
	return acct, nil
}

// Transfer moves amount between two accounts. The withdrawal side is
// checked first, so a transfer that would overdraw moves nothing.
func (s *Service) Transfer(fromID, toID string, amount decimal.Decimal) error {
	if fromID == toID {
		return fmt.Errorf("transfer needs two distinct accounts")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("transfer amount %s must be positive", amount)
	}

	from, err := s.store.Account(fromID)
	if err != nil {
		return err
	}
	to, err := s.store.Account(toID)
	if err != nil {
		return err
	}
	if !from.CanCover(amount) {
		return fmt.Errorf("transfer %s from %s holding %s: %w",
			amount, from.Name, from.Balance, campaign.ErrInsufficientFunds)
	}

	if err := s.store.SetBalance(from.ID, from.Balance.Sub(amount)); err != nil {
		return err
	}
	if err := s.store.SetBalance(to.ID, to.Balance.Add(amount)); err != nil {
		// The debit landed; surface the half-applied transfer loudly
		// rather than guessing at compensation.
		s.log(from.Name, fmt.Sprintf("transfer to %s debited %s but credit failed: %v", to.Name, amount, err), amount)
		return fmt.Errorf("credit %s after debiting %s: %w", to.Name, from.Name, err)
	}

	s.log(from.Name, fmt.Sprintf("transferred %s to %s", amount, to.Name), amount)
	return nil
}

func (s *Service) log(subject, message string, amount decimal.Decimal) {
	// No campaign date yet journals as the zero date. Ledger entries are
	// an audit convenience; a failing journal does not undo money
	// movement.
	date, _ := s.store.CurrentDate()
	_ = s.journal.Record(journal.NewEntry(date, journal.KindLedger, subject, message).WithAmount(amount))
}
