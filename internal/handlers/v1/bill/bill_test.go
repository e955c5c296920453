package bill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budgetforge/internal/billing"
	"github.com/carson-networks/budgetforge/internal/handlers/v1/respond/respondtest"
	"github.com/carson-networks/budgetforge/internal/service"
)

type mockBillService struct {
	mock.Mock
}

func (m *mockBillService) Upcoming(ctx context.Context, userID uuid.UUID, query service.UpcomingQuery) ([]service.UpcomingBill, error) {
	args := m.Called(ctx, userID, query)
	bills, _ := args.Get(0).([]service.UpcomingBill)
	return bills, args.Error(1)
}

func (m *mockBillService) CreateBill(ctx context.Context, userID uuid.UUID, create service.BillCreate) (*service.Bill, error) {
	args := m.Called(ctx, userID, create)
	b, _ := args.Get(0).(*service.Bill)
	return b, args.Error(1)
}

func (m *mockBillService) GetBill(ctx context.Context, userID, id uuid.UUID) (*service.BillDetails, error) {
	args := m.Called(ctx, userID, id)
	d, _ := args.Get(0).(*service.BillDetails)
	return d, args.Error(1)
}

func (m *mockBillService) PayBill(ctx context.Context, userID, id uuid.UUID, pay service.BillPay) (*service.BillPaymentResult, error) {
	args := m.Called(ctx, userID, id, pay)
	r, _ := args.Get(0).(*service.BillPaymentResult)
	return r, args.Error(1)
}

func (m *mockBillService) DeactivateBill(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

var testUserID = uuid.Must(uuid.NewV4())

func newTestAPI(t *testing.T, svc *mockBillService) humatest.TestAPI {
	t.Helper()
	api := respondtest.New(t, testUserID)
	NewUpcomingBillsHandler(svc).Register(api)
	NewCreateBillHandler(svc).Register(api)
	NewGetBillHandler(svc).Register(api)
	NewPayBillHandler(svc).Register(api)
	NewDeactivateBillHandler(svc).Register(api)
	return api
}

func sampleBill() service.Bill {
	monthly := billing.FrequencyMonthly
	return service.Bill{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        "Rent",
		Amount:      decimal.RequireFromString("1500"),
		DueDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring: true,
		Frequency:   &monthly,
		IsActive:    true,
		CreatedAt:   time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestParseCreateBillInput(t *testing.T) {
	freq := "Quarterly"

	create, err := parseCreateBillInput(CreateBillBody{
		Name:        "Insurance",
		Amount:      "320.00",
		DueDate:     "2025-05-31",
		IsRecurring: true,
		Frequency:   &freq,
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), create.DueDate)
	require.NotNil(t, create.Frequency)
	assert.Equal(t, billing.FrequencyQuarterly, *create.Frequency)
}

func TestParseCreateBillInput_MissingDueDate(t *testing.T) {
	_, err := parseCreateBillInput(CreateBillBody{Name: "Insurance", Amount: "1"})

	assert.Error(t, err)
}

func TestParsePayBillInput(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4()).String()
	paidAt := "2025-03-09T12:00:00Z"

	pay, err := parsePayBillInput(PayBillBody{Amount: "10", PaidAt: &paidAt, AccountID: &accountID})

	require.NoError(t, err)
	require.NotNil(t, pay.PaidAt)
	require.NotNil(t, pay.AccountID)
	assert.Equal(t, accountID, pay.AccountID.String())
}

func TestHTTP_Upcoming(t *testing.T) {
	b := sampleBill()
	mockSvc := new(mockBillService)
	mockSvc.On("Upcoming", mock.Anything, testUserID, service.UpcomingQuery{Days: 14, IncludeOverdue: true}).
		Return([]service.UpcomingBill{{Bill: b, DaysUntilDue: 3, Status: billing.StatusDueSoon}}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/billing/upcoming?days=14&includeOverdue=true")

	require.Equal(t, http.StatusOK, resp.Code)
	var body []UpcomingBill
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "DueSoon", body[0].Status)
	assert.Equal(t, 3, body[0].DaysUntilDue)
	assert.Equal(t, "2025-04-01", body[0].DueDate)
	require.NotNil(t, body[0].Frequency)
	assert.Equal(t, "Monthly", *body[0].Frequency)
}

func TestHTTP_CreateBill_Created(t *testing.T) {
	b := sampleBill()
	mockSvc := new(mockBillService)
	mockSvc.On("CreateBill", mock.Anything, testUserID, mock.MatchedBy(func(c service.BillCreate) bool {
		return c.Name == "Rent" && c.Amount.Equal(decimal.RequireFromString("1500"))
	})).Return(&b, nil)

	freq := "Monthly"
	resp := newTestAPI(t, mockSvc).Post("/api/billing/bills", CreateBillBody{
		Name:        "Rent",
		Amount:      "1500",
		DueDate:     "2025-04-01",
		IsRecurring: true,
		Frequency:   &freq,
	})

	require.Equal(t, http.StatusCreated, resp.Code)
	var body Bill
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, b.ID.String(), body.ID)
}

func TestHTTP_CreateBill_Duplicate(t *testing.T) {
	mockSvc := new(mockBillService)
	mockSvc.On("CreateBill", mock.Anything, testUserID, mock.Anything).
		Return(nil, fmt.Errorf("%w: an active bill with this name and due date already exists", service.ErrConflict))

	resp := newTestAPI(t, mockSvc).Post("/api/billing/bills", CreateBillBody{Name: "Rent", Amount: "1500", DueDate: "2025-04-01"})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHTTP_CreateBill_UnknownFrequency(t *testing.T) {
	mockSvc := new(mockBillService)
	freq := "Daily"

	resp := newTestAPI(t, mockSvc).Post("/api/billing/bills", CreateBillBody{Name: "Rent", Amount: "1", DueDate: "2025-04-01", Frequency: &freq})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_GetBill_WithPayments(t *testing.T) {
	b := sampleBill()
	notes := "march"
	mockSvc := new(mockBillService)
	mockSvc.On("GetBill", mock.Anything, testUserID, b.ID).Return(&service.BillDetails{
		Bill:         b,
		DaysUntilDue: -2,
		Status:       billing.StatusOverdue,
		Payments: []service.BillPayment{{
			ID:     uuid.Must(uuid.NewV4()),
			PaidAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
			Amount: decimal.RequireFromString("1500"),
			Notes:  &notes,
		}},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/api/billing/bills/" + b.ID.String())

	require.Equal(t, http.StatusOK, resp.Code)
	var body BillDetails
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Overdue", body.Status)
	require.Len(t, body.Payments, 1)
	assert.Equal(t, "2025-03-01T09:00:00Z", body.Payments[0].PaidAt)
}

func TestHTTP_PayBill_PostsTransaction(t *testing.T) {
	b := sampleBill()
	txID := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBillService)
	mockSvc.On("PayBill", mock.Anything, testUserID, b.ID, mock.MatchedBy(func(p service.BillPay) bool {
		return p.Amount.Equal(decimal.RequireFromString("1500")) && p.AccountID != nil
	})).Return(&service.BillPaymentResult{
		Payment:     service.BillPayment{ID: uuid.Must(uuid.NewV4()), PaidAt: time.Now(), Amount: b.Amount},
		Bill:        b,
		Transaction: &service.Transaction{ID: txID},
	}, nil)

	accountID := uuid.Must(uuid.NewV4()).String()
	resp := newTestAPI(t, mockSvc).Post("/api/billing/bills/"+b.ID.String()+"/pay", PayBillBody{Amount: "1500", AccountID: &accountID})

	require.Equal(t, http.StatusOK, resp.Code)
	var body PaymentResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotNil(t, body.Transaction)
	assert.Equal(t, txID.String(), *body.Transaction)
}

func TestHTTP_PayBill_InactiveBill(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBillService)
	mockSvc.On("PayBill", mock.Anything, testUserID, id, mock.Anything).Return(nil, service.ErrNotFound)

	resp := newTestAPI(t, mockSvc).Post("/api/billing/bills/"+id.String()+"/pay", PayBillBody{Amount: "10"})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_DeactivateBill(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	mockSvc := new(mockBillService)
	mockSvc.On("DeactivateBill", mock.Anything, testUserID, id).Return(nil)

	resp := newTestAPI(t, mockSvc).Delete("/api/billing/bills/" + id.String())

	assert.Equal(t, http.StatusNoContent, resp.Code)
	mockSvc.AssertExpectations(t)
}
