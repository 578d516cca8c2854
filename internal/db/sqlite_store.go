package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/aditigupta-200/ESG-Questionnaire/internal/api"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		log.Printf("sqlite store: %s: %v", prefix, err)
	}
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func fromNullFloat(ns sql.NullFloat64) *float64 {
	if !ns.Valid {
		return nil
	}
	v := ns.Float64
	return &v
}

func fromNullInt(ns sql.NullInt64) *int {
	if !ns.Valid {
		return nil
	}
	v := int(ns.Int64)
	return &v
}

func fromNullBool(ns sql.NullInt64) *bool {
	if !ns.Valid {
		return nil
	}
	v := ns.Int64 != 0
	return &v
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

func (s *SQLiteStore) AddUser(u *api.User) error {
	if u == nil || strings.TrimSpace(u.Email) == "" {
		return errors.New("invalid user")
	}
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT INTO users (id, name, email, pass_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PassHash, created.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return api.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*api.User, error) {
	row := s.db.QueryRow(`SELECT id, name, email, pass_hash, created_at FROM users WHERE email = ? COLLATE NOCASE`, email)
	var u api.User
	var created string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PassHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = parseTimestamp(created)
	return &u, nil
}

// UpsertResponse inserts or field-level-merges one record keyed by
// (user_id, financial_year). Only the columns present in the submission make
// it into the conflict update list, so a partial update never clears stored
// values. The single statement keeps the upsert atomic per key.
func (s *SQLiteStore) UpsertResponse(r *api.Response) (*api.Response, error) {
	if r == nil || strings.TrimSpace(r.UserID) == "" || strings.TrimSpace(r.FinancialYear) == "" {
		return nil, errors.New("invalid response")
	}
	now := r.UpdatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}
	stamp := now.UTC().Format(time.RFC3339Nano)

	cols := []string{"user_id", "financial_year", "created_at", "updated_at"}
	args := []any{r.UserID, r.FinancialYear, stamp, stamp}
	updates := []string{"updated_at = excluded.updated_at"}
	add := func(name string, v any) {
		cols = append(cols, name)
		args = append(args, v)
		updates = append(updates, name+" = excluded."+name)
	}
	addF := func(name string, v *float64) {
		if v != nil {
			add(name, *v)
		}
	}

	addF("total_electricity_consumption", r.TotalElectricityConsumption)
	addF("renewable_electricity_consumption", r.RenewableElectricityConsumption)
	addF("total_fuel_consumption", r.TotalFuelConsumption)
	addF("carbon_emissions", r.CarbonEmissions)
	if r.TotalEmployees != nil {
		add("total_employees", *r.TotalEmployees)
	}
	if r.FemaleEmployees != nil {
		add("female_employees", *r.FemaleEmployees)
	}
	addF("average_training_hours_per_employee", r.AverageTrainingHoursPerEmployee)
	addF("community_investment_spend", r.CommunityInvestmentSpend)
	addF("percent_independent_board_members", r.PercentIndependentBoardMembers)
	if r.DataPrivacyPolicy != nil {
		n := 0
		if *r.DataPrivacyPolicy {
			n = 1
		}
		add("data_privacy_policy", n)
	}
	addF("total_revenue", r.TotalRevenue)
	addF("carbon_intensity", r.CarbonIntensity)
	addF("renewable_electricity_ratio", r.RenewableElectricityRatio)
	addF("diversity_ratio", r.DiversityRatio)
	addF("community_spend_ratio", r.CommunitySpendRatio)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := "INSERT INTO responses (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders +
		") ON CONFLICT(user_id, financial_year) DO UPDATE SET " + strings.Join(updates, ", ")
	if _, err := s.db.Exec(query, args...); err != nil {
		s.logErr("UpsertResponse", err)
		return nil, err
	}
	return s.GetResponse(r.UserID, r.FinancialYear)
}

const responseColumns = `user_id, financial_year,
    total_electricity_consumption, renewable_electricity_consumption, total_fuel_consumption, carbon_emissions,
    total_employees, female_employees, average_training_hours_per_employee, community_investment_spend,
    percent_independent_board_members, data_privacy_policy, total_revenue,
    carbon_intensity, renewable_electricity_ratio, diversity_ratio, community_spend_ratio,
    created_at, updated_at`

func scanResponse(row interface{ Scan(...any) error }) (*api.Response, error) {
	var r api.Response
	var (
		elec, renew, fuel, carbon       sql.NullFloat64
		trainHours, commSpend, pctBoard sql.NullFloat64
		revenue, intensity, renewRatio  sql.NullFloat64
		diversityRatio, commRatio       sql.NullFloat64
		totalEmployees, femaleEmployees sql.NullInt64
		privacy                         sql.NullInt64
		created, updated                string
	)
	err := row.Scan(&r.UserID, &r.FinancialYear,
		&elec, &renew, &fuel, &carbon,
		&totalEmployees, &femaleEmployees, &trainHours, &commSpend,
		&pctBoard, &privacy, &revenue,
		&intensity, &renewRatio, &diversityRatio, &commRatio,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	r.TotalElectricityConsumption = fromNullFloat(elec)
	r.RenewableElectricityConsumption = fromNullFloat(renew)
	r.TotalFuelConsumption = fromNullFloat(fuel)
	r.CarbonEmissions = fromNullFloat(carbon)
	r.TotalEmployees = fromNullInt(totalEmployees)
	r.FemaleEmployees = fromNullInt(femaleEmployees)
	r.AverageTrainingHoursPerEmployee = fromNullFloat(trainHours)
	r.CommunityInvestmentSpend = fromNullFloat(commSpend)
	r.PercentIndependentBoardMembers = fromNullFloat(pctBoard)
	r.DataPrivacyPolicy = fromNullBool(privacy)
	r.TotalRevenue = fromNullFloat(revenue)
	r.CarbonIntensity = fromNullFloat(intensity)
	r.RenewableElectricityRatio = fromNullFloat(renewRatio)
	r.DiversityRatio = fromNullFloat(diversityRatio)
	r.CommunitySpendRatio = fromNullFloat(commRatio)
	r.CreatedAt = parseTimestamp(created)
	r.UpdatedAt = parseTimestamp(updated)
	return &r, nil
}

func (s *SQLiteStore) GetResponse(userID, financialYear string) (*api.Response, error) {
	row := s.db.QueryRow(`SELECT `+responseColumns+` FROM responses WHERE user_id = ? AND financial_year = ?`,
		userID, financialYear)
	r, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

func (s *SQLiteStore) ListResponses(userID string) ([]*api.Response, error) {
	rows, err := s.db.Query(`SELECT `+responseColumns+` FROM responses WHERE user_id = ? ORDER BY financial_year ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logErr("ListResponses: rows.Close", cerr)
		}
	}()
	out := []*api.Response{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) DeleteResponse(userID, financialYear string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM responses WHERE user_id = ? AND financial_year = ?`, userID, financialYear)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ api.Store = (*SQLiteStore)(nil)
