package postgres

import (
	"time"

	"github.com/dafibh/burnrate/burnrate-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// pgNumericToDecimalPtr maps SQL NULL to nil
func pgNumericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := pgNumericToDecimal(n)
	return &d
}

func pgDateToTime(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return d.Time
}

func pgInt8ToPtr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func pgTimestamptzToPtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	return &ts.Time
}

// sinceArg turns the zero time into SQL NULL, meaning "no lower bound"
func sinceArg(since time.Time) any {
	if since.IsZero() {
		return nil
	}
	return since
}

func centsToMoney(cents int64, currency string) domain.Money {
	return domain.MoneyFromCentsIn(cents, currency)
}
