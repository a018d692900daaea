package payment

import "context"

type mockProvider struct {
	created   *Payment
	createErr error

	found  *Payment
	getErr error

	executed   *Payment
	executeErr error

	createCalls  int
	getCalls     int
	executeCalls int

	lastCreateReq *PaymentRequest
	lastPaymentID string
	lastPayerID   string
}

func (m *mockProvider) Create(_ context.Context, req *PaymentRequest) (*Payment, error) {
	m.createCalls++
	m.lastCreateReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.created, nil
}

func (m *mockProvider) Get(_ context.Context, paymentID string) (*Payment, error) {
	m.getCalls++
	m.lastPaymentID = paymentID
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.found != nil {
		return m.found, nil
	}
	return &Payment{ID: paymentID}, nil
}

func (m *mockProvider) Execute(_ context.Context, paymentID, payerID string) (*Payment, error) {
	m.executeCalls++
	m.lastPaymentID = paymentID
	m.lastPayerID = payerID
	if m.executeErr != nil {
		return nil, m.executeErr
	}
	return m.executed, nil
}

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

type mockPaymentService struct {
	approvalURL string
	createErr   error

	receipt    *Receipt
	executeErr error

	gotProduct   string
	gotUsername  string
	gotPaymentID string
	gotPayerID   string
}

func (m *mockPaymentService) CreatePayment(_ context.Context, productName, username string) (string, error) {
	m.gotProduct = productName
	m.gotUsername = username
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.approvalURL, nil
}

func (m *mockPaymentService) ExecutePayment(_ context.Context, paymentID, payerID string) (*Receipt, error) {
	m.gotPaymentID = paymentID
	m.gotPayerID = payerID
	if m.executeErr != nil {
		return nil, m.executeErr
	}
	return m.receipt, nil
}
