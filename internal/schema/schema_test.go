package schema_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HikkiElf/cart-manager/internal/logging"
	"github.com/HikkiElf/cart-manager/internal/schema"
	"github.com/HikkiElf/cart-manager/internal/testutil"
)

func TestBootstrap_Idempotent(t *testing.T) {
	db := testutil.OpenSQLite(t)
	ctx := context.Background()

	require.NoError(t, schema.Bootstrap(ctx, db))
	require.NoError(t, schema.Bootstrap(ctx, db))
	assert.True(t, db.Migrator().HasTable("cart"))

	for _, col := range []string{"user_id", "product_id", "quantity"} {
		assert.True(t, db.Migrator().HasColumn("cart", col), col)
	}
}

func TestBootstrap_KeepsExistingRows(t *testing.T) {
	db := testutil.NewCartDB(t, []int64{1}, []int64{42})
	ctx := context.Background()

	require.NoError(t, db.Exec("INSERT INTO cart (user_id, product_id, quantity) VALUES (1, 42, 3)").Error)
	require.NoError(t, schema.Bootstrap(ctx, db))

	var n int64
	require.NoError(t, db.Table("cart").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRun_Policy(t *testing.T) {
	db := testutil.OpenSQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	var buf bytes.Buffer
	l := logging.NewWithWriter(&buf, "info")

	err = schema.Run(context.Background(), db, false, l)
	require.Error(t, err)

	err = schema.Run(context.Background(), db, true, l)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "schema_bootstrap_error")
}
