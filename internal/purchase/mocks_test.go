package purchase

import "context"

type mockNotifier struct {
	err      error
	messages []string
}

func (m *mockNotifier) Notify(_ context.Context, content string) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, content)
	return nil
}
