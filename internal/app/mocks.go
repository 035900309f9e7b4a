package app

import "inviteme_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки без SMTP.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }

func (m *MockEmailProvider) SendPasswordReset(to, resetURL string) error { return nil }

func (m *MockEmailProvider) Validate() error { return nil }

func (m *MockEmailProvider) Close() error { return nil }
