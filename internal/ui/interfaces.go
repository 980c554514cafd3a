package ui

// Prompter defines interface for user interaction
type Prompter interface {
	ConfirmIssueCreation(repo string, count int) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// ConfirmIssueCreation prompts user to confirm the issue creation
func (p *DefaultPrompter) ConfirmIssueCreation(repo string, count int) (bool, error) {
	return ConfirmIssueCreation(repo, count)
}

// MockPrompter for testing
type MockPrompter struct {
	Confirmed         bool
	ConfirmationError error

	// Call tracking
	ConfirmCalled bool
	LastRepo      string
	LastCount     int
}

// ConfirmIssueCreation mocks confirmation
func (m *MockPrompter) ConfirmIssueCreation(repo string, count int) (bool, error) {
	m.ConfirmCalled = true
	m.LastRepo = repo
	m.LastCount = count
	return m.Confirmed, m.ConfirmationError
}
