package factory

import (
	"time"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/mocks"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/memory"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/testutil"
)

// TestBotID is the bot identity used by test apps
const TestBotID = "999@s.whatsapp.net"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Storage backs both live games and round history
	Storage *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, store, mockClock, mockRandom, TestBotID, testutil.NopLogger())

	return &TestApp{
		App:        app,
		Storage:    store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
