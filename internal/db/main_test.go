package db_test

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// every test must close the handles it opens
	goleak.VerifyTestMain(m)
}
