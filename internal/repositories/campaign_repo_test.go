package repositories

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreateCampaignErr(t *testing.T) {
	c := qt.New(t)

	c.Assert(createCampaignErr(nil), qt.IsNil)

	missingBrand := fmt.Errorf("scan: %w", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "campaigns_brand_user_id_fkey"})
	c.Assert(createCampaignErr(missingBrand), qt.Equals, ErrNotFound)

	other := &pgconn.PgError{Code: "23514"}
	err := createCampaignErr(other)
	c.Assert(err, qt.Not(qt.ErrorIs), ErrNotFound)
	var pgErr *pgconn.PgError
	c.Assert(errors.As(err, &pgErr), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "create campaign: .*")
}
