package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Expects a MySQL instance
// on localhost:3306 with a 'mimo_test' schema; skips otherwise.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/mimo_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the handle.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	if _, err := db.Exec("DELETE FROM Orders"); err != nil {
		t.Logf("failed to clean table Orders: %v", err)
	}

	db.Close()
}

// SetupTestTables creates the tables the repositories need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId VARCHAR(30) NOT NULL,
		origin VARCHAR(20) NOT NULL,
		customerName VARCHAR(150) NOT NULL,
		customerEmail VARCHAR(150) NOT NULL,
		customerPhone VARCHAR(30) NOT NULL,
		contentFrom VARCHAR(100) NOT NULL,
		contentTo VARCHAR(100) NOT NULL,
		contentText TEXT NOT NULL,
		formatSlug VARCHAR(40) NOT NULL,
		deliveryDate DATETIME,
		audioRef VARCHAR(500),
		videoRef VARCHAR(500),
		deliveryKind VARCHAR(20) NOT NULL,
		address VARCHAR(255),
		postalCode VARCHAR(10),
		digitalMethod VARCHAR(20),
		physicalMethod VARCHAR(20),
		totalCents BIGINT NOT NULL DEFAULT 0,
		method VARCHAR(20) NOT NULL,
		externalPaymentId VARCHAR(64),
		paymentStatus VARCHAR(20) NOT NULL DEFAULT 'pending',
		shippingPending TINYINT(1) NOT NULL DEFAULT 0,
		confirmedMethod VARCHAR(20),
		paidAt DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_external_payment (externalPaymentId),
		INDEX idx_order_id (orderId)
	)`

	if _, err := db.Exec(createOrdersTable); err != nil {
		t.Logf("failed to create table Orders: %v", err)
	}
}
