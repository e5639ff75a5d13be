package factory

import (
	"time"

	"github.com/jcallaghan/betpool/internal/dependencies/mocks"
	"github.com/jcallaghan/betpool/internal/services/ledger"
	"github.com/jcallaghan/betpool/internal/storage/memory"
	"github.com/jcallaghan/betpool/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked
// dependencies, in-memory storage and the default economy
func NewTestApp(operators ...string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, ledger.DefaultConfig(), operators, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
