package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Balance is a cached projection of the user's transaction log, in VND.
type Balance struct {
	ID      int   `db:"id"`
	UserID  int   `db:"user_id"`
	Current int64 `db:"current_balance"`
}

type Wager struct {
	ID        int        `db:"id"`
	UserID    int        `db:"user_id"`
	Kind      WagerKind  `db:"kind"`
	Numbers   []string   `db:"numbers"`
	Amount    int64      `db:"amount"`
	Stake     int64      `db:"stake"`
	DrawDate  string     `db:"draw_date"`
	Status    string     `db:"status"`
	Payout    int64      `db:"payout"`
	RateValue int64      `db:"rate_value"`
	CreatedAt time.Time  `db:"created_at"`
	SettledAt *time.Time `db:"settled_at"`
}

type Transaction struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Type      string    `db:"type"`
	Amount    int64     `db:"amount"`
	WagerID   *int      `db:"wager_id"`
	CreatedAt time.Time `db:"created_at"`
}

// DrawResult holds the 27 winning numbers of one daily draw.
// Immutable once stored; at most one per date.
type DrawResult struct {
	ID        int       `db:"id"`
	DrawDate  string    `db:"draw_date"`
	Special   string    `db:"special"`
	First     string    `db:"first_prize"`
	Second    []string  `db:"second_prize"`
	Third     []string  `db:"third_prize"`
	Fourth    []string  `db:"fourth_prize"`
	Fifth     []string  `db:"fifth_prize"`
	Sixth     []string  `db:"sixth_prize"`
	Seventh   []string  `db:"seventh_prize"`
	CreatedAt time.Time `db:"created_at"`
}

// RateTable is a versioned payout-multiplier table. Settlement reads the
// table effective at settlement time and stamps the used rate onto the wager.
type RateTable struct {
	ID            int              `db:"id"`
	Rates         map[string]int64 `db:"rates"`
	EffectiveFrom time.Time        `db:"effective_from"`
}

// Rate returns the multiplier for a kind; false when the table has no entry.
func (t *RateTable) Rate(kind WagerKind) (int64, bool) {
	v, ok := t.Rates[string(kind)]
	return v, ok
}

// DateLayout is the wire and storage format for draw dates.
const DateLayout = "2006-01-02"
