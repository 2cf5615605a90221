package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/gmtools/campaigner/calendar"
	"github.com/gmtools/campaigner/campaign"
)

// SQLite is the campaign store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Game state.

func (s *SQLite) CurrentDate() (calendar.Date, error) {
	var raw string
	err := s.db.QueryRow(`SELECT campaign_date FROM game_state WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return calendar.Date{}, ErrNotFound
	}
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.Parse(raw)
}

func (s *SQLite) SetCurrentDate(d calendar.Date) error {
	_, err := s.db.Exec(`
		INSERT INTO game_state (id, campaign_date) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET campaign_date = excluded.campaign_date`,
		d.String())
	return err
}

// Accounts.

func (s *SQLite) Accounts() ([]campaign.Account, error) {
	rows, err := s.db.Query(`SELECT id, name, balance, interest_rate FROM banks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []campaign.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLite) Account(id string) (campaign.Account, error) {
	row := s.db.QueryRow(`SELECT id, name, balance, interest_rate FROM banks WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return campaign.Account{}, fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	return a, err
}

func (s *SQLite) CreateAccount(a campaign.Account) (campaign.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`INSERT INTO banks (id, name, balance, interest_rate) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Balance.String(), a.InterestRate.String())
	return a, err
}

func (s *SQLite) SetBalance(id string, balance decimal.Decimal) error {
	res, err := s.db.Exec(`UPDATE banks SET balance = ? WHERE id = ?`, balance.String(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("account %q: %w", id, ErrNotFound)
	}
	return nil
}

// Postings returns every recurring posting: economic activities read as
// credits, fixed expenses as debits.
func (s *SQLite) Postings() ([]campaign.Posting, error) {
	return s.queryPostings(`
		SELECT id, name, amount, cadence, bank_id, 'credit' AS direction FROM economic_activities
		UNION ALL
		SELECT id, name, amount, cadence, bank_id, 'debit' FROM fixed_expenses
		ORDER BY name`)
}

func (s *SQLite) PostingsByCadence(c campaign.Cadence) ([]campaign.Posting, error) {
	return s.queryPostings(`
		SELECT id, name, amount, cadence, bank_id, 'credit' AS direction FROM economic_activities WHERE cadence = ?
		UNION ALL
		SELECT id, name, amount, cadence, bank_id, 'debit' FROM fixed_expenses WHERE cadence = ?
		ORDER BY name`, string(c), string(c))
}

func (s *SQLite) queryPostings(q string, args ...any) ([]campaign.Posting, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []campaign.Posting
	for rows.Next() {
		var (
			p      campaign.Posting
			amount string
			bank   sql.NullString
			dir    string
		)
		if err := rows.Scan(&p.ID, &p.Name, &amount, &p.Cadence, &bank, &dir); err != nil {
			return nil, err
		}
		p.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, err
		}
		p.AccountID = bank.String
		p.Direction = campaign.Direction(dir)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLite) CreatePosting(p campaign.Posting) (campaign.Posting, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	table := "economic_activities"
	if p.Direction == campaign.Debit {
		table = "fixed_expenses"
	}
	_, err := s.db.Exec(
		`INSERT INTO `+table+` (id, name, amount, cadence, bank_id) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Amount.String(), string(p.Cadence), nullable(p.AccountID))
	return p, err
}

// Objectives.

const objectiveCols = `id, name, status, progress, estimated_months, base_estimated_months, total_cost, bank_id, start_date`

func (s *SQLite) Objectives() ([]campaign.Objective, error) {
	return s.queryObjectives(`SELECT ` + objectiveCols + ` FROM follower_objectives ORDER BY name`)
}

func (s *SQLite) ObjectivesInProgress() ([]campaign.Objective, error) {
	return s.queryObjectives(
		`SELECT `+objectiveCols+` FROM follower_objectives WHERE status = ? ORDER BY name`,
		string(campaign.StatusInProgress))
}

func (s *SQLite) Objective(id string) (campaign.Objective, error) {
	objs, err := s.queryObjectives(`SELECT `+objectiveCols+` FROM follower_objectives WHERE id = ?`, id)
	if err != nil {
		return campaign.Objective{}, err
	}
	if len(objs) == 0 {
		return campaign.Objective{}, fmt.Errorf("objective %q: %w", id, ErrNotFound)
	}
	return objs[0], nil
}

func (s *SQLite) queryObjectives(q string, args ...any) ([]campaign.Objective, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []campaign.Objective
	for rows.Next() {
		var (
			o                            campaign.Objective
			progress, est, baseEst, cost string
			bank, start                  sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.Name, &o.Status, &progress, &est, &baseEst, &cost, &bank, &start); err != nil {
			return nil, err
		}
		if o.Progress, err = decimal.NewFromString(progress); err != nil {
			return nil, err
		}
		if o.EstimatedMonths, err = decimal.NewFromString(est); err != nil {
			return nil, err
		}
		if o.BaseEstimatedMonths, err = decimal.NewFromString(baseEst); err != nil {
			return nil, err
		}
		if o.TotalCost, err = decimal.NewFromString(cost); err != nil {
			return nil, err
		}
		o.AccountID = bank.String
		if start.Valid && start.String != "" {
			d, err := calendar.Parse(start.String)
			if err != nil {
				return nil, err
			}
			o.StartDate = &d
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateObjective(o campaign.Objective) (campaign.Objective, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = campaign.StatusNotStarted
	}
	_, err := s.db.Exec(`
		INSERT INTO follower_objectives (`+objectiveCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, string(o.Status), o.Progress.String(),
		o.EstimatedMonths.String(), o.BaseEstimatedMonths.String(), o.TotalCost.String(),
		nullable(o.AccountID), nullableDate(o.StartDate))
	return o, err
}

func (s *SQLite) UpdateObjective(o campaign.Objective) error {
	res, err := s.db.Exec(`
		UPDATE follower_objectives
		SET status = ?, progress = ?, estimated_months = ?, total_cost = ?, start_date = ?
		WHERE id = ?`,
		string(o.Status), o.Progress.String(), o.EstimatedMonths.String(),
		o.TotalCost.String(), nullableDate(o.StartDate), o.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("objective %q: %w", o.ID, ErrNotFound)
	}
	return nil
}

// Events.

const eventCols = `id, objective_id, description, options, chosen, handled`

func (s *SQLite) Events() ([]campaign.Event, error) {
	return s.queryEvents(`SELECT ` + eventCols + ` FROM follower_objective_events ORDER BY id`)
}

func (s *SQLite) Event(id string) (campaign.Event, error) {
	evs, err := s.queryEvents(`SELECT `+eventCols+` FROM follower_objective_events WHERE id = ?`, id)
	if err != nil {
		return campaign.Event{}, err
	}
	if len(evs) == 0 {
		return campaign.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	return evs[0], nil
}

// UnresolvedEvents is the sweep's work queue: outcome chosen, not yet
// applied.
func (s *SQLite) UnresolvedEvents() ([]campaign.Event, error) {
	return s.queryEvents(`
		SELECT ` + eventCols + ` FROM follower_objective_events
		WHERE handled = 0 AND chosen IS NOT NULL ORDER BY id`)
}

// PendingEvents are the ones still waiting on a human decision.
func (s *SQLite) PendingEvents() ([]campaign.Event, error) {
	return s.queryEvents(`
		SELECT ` + eventCols + ` FROM follower_objective_events
		WHERE handled = 0 AND chosen IS NULL ORDER BY id`)
}

func (s *SQLite) queryEvents(q string, args ...any) ([]campaign.Event, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []campaign.Event
	for rows.Next() {
		var (
			e       campaign.Event
			options string
			chosen  sql.NullString
			handled int
		)
		if err := rows.Scan(&e.ID, &e.ObjectiveID, &e.Description, &options, &chosen, &handled); err != nil {
			return nil, err
		}
		// A row with corrupt options still surfaces (the sweep only cares
		// about the chosen outcome), but the decode failure is logged so
		// an empty option list is explainable.
		if err := json.Unmarshal([]byte(options), &e.Options); err != nil {
			slog.Warn("event options decode failed", "event", e.ID, "error", err)
		}
		if chosen.Valid {
			e.Chosen = json.RawMessage(chosen.String)
		}
		e.Handled = handled != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLite) CreateEvent(e campaign.Event) (campaign.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	options, err := json.Marshal(e.Options)
	if err != nil {
		return campaign.Event{}, err
	}
	var chosen any
	if e.Decided() {
		chosen = string(e.Chosen)
	}
	_, err = s.db.Exec(`
		INSERT INTO follower_objective_events (`+eventCols+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ObjectiveID, e.Description, string(options), chosen, boolInt(e.Handled))
	return e, err
}

func (s *SQLite) ChooseOutcome(eventID string, chosen campaign.Outcome) error {
	raw, err := json.Marshal(chosen)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE follower_objective_events SET chosen = ? WHERE id = ? AND handled = 0`,
		string(raw), eventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unhandled event %q: %w", eventID, ErrNotFound)
	}
	return nil
}

func (s *SQLite) MarkEventHandled(eventID string) error {
	res, err := s.db.Exec(`UPDATE follower_objective_events SET handled = 1 WHERE id = ?`, eventID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %q: %w", eventID, ErrNotFound)
	}
	return nil
}

// Scan helpers.

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (campaign.Account, error) {
	var (
		a                 campaign.Account
		balance, interest string
	)
	if err := row.Scan(&a.ID, &a.Name, &balance, &interest); err != nil {
		return campaign.Account{}, err
	}
	var err error
	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return campaign.Account{}, err
	}
	if a.InterestRate, err = decimal.NewFromString(interest); err != nil {
		return campaign.Account{}, err
	}
	return a, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableDate(d *calendar.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
