// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests opt in by setting DATABASE_URL (or SHOP_TEST_DB_URL). Without it,
// GetTestDBWithT skips the calling test. The schema is migrated once per
// process from the embedded migrations, and each test body runs inside a
// transaction that WithTx rolls back, so tests leave no data behind:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        user := testdb.InsertUser(t, tx)
//	        // ...
//	    })
//	}
package testdb
