package store

// MockMedium is an in-memory Medium whose operations can be made to fail.
type MockMedium struct {
	*MemoryMedium

	// Error flags for testing error conditions
	LoadError   error
	SaveError   error
	DeleteError error

	Saves int
}

// NewMockMedium creates a mock medium with no failures configured.
func NewMockMedium() *MockMedium {
	return &MockMedium{MemoryMedium: NewMemoryMedium()}
}

// Load returns LoadError when set.
func (m *MockMedium) Load(key string) ([]byte, bool, error) {
	if m.LoadError != nil {
		return nil, false, m.LoadError
	}
	return m.MemoryMedium.Load(key)
}

// Save returns SaveError when set.
func (m *MockMedium) Save(key string, data []byte) error {
	m.Saves++
	if m.SaveError != nil {
		return m.SaveError
	}
	return m.MemoryMedium.Save(key, data)
}

// Delete returns DeleteError when set.
func (m *MockMedium) Delete(key string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	return m.MemoryMedium.Delete(key)
}

// Name identifies the mock in log fields.
func (m *MockMedium) Name() string { return "mock" }
