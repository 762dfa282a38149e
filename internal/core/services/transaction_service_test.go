package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/core/services"
	"github.com/ratbook/ratbook_backend/internal/dto"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

// --- Implement mock methods for TransactionRepositoryFacade ---

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, products []domain.Product) error {
	args := m.Called(ctx, txn, products)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, start, end *time.Time, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, start, end, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	mockProductRepo *MockProductRepository
	service         portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockProductRepo)
}

func (suite *TransactionServiceTestSuite) knownAccounts(ids ...string) map[string]domain.Account {
	accounts := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		accounts[id] = domain.Account{AccountID: id, Code: "10100", Name: "Kas"}
	}
	return accounts
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success_General() {
	ctx := context.Background()
	userID := uuid.NewString()
	cashID := uuid.NewString()
	expenseID := uuid.NewString()

	req := portssvc.CreateTransactionData{
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Bayar listrik",
		Kind:        domain.KindGeneral,
		Lines: []dto.EntryLine{
			{AccountID: expenseID, Debit: decimal.NewFromInt(250000)},
			{AccountID: cashID, Credit: decimal.NewFromInt(250000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{expenseID, cashID}).
		Return(suite.knownAccounts(expenseID, cashID), nil).Once()

	var savedTxn domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		savedTxn = txn
		return txn.Description == "Bayar listrik" &&
			txn.Kind == domain.KindGeneral &&
			len(txn.Entries) == 2 &&
			txn.CreatedBy == userID
	}), mock.Anything).Return(nil).Once()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Bayar listrik"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(savedTxn.TransactionID)
	suite.Equal(savedTxn.TransactionID, savedTxn.Entries[0].TransactionID)

	// General transactions never touch products.
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_EmptyLines() {
	ctx := context.Background()

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Kosong",
		Kind:        domain.KindGeneral,
	}

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownKind() {
	ctx := context.Background()

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Jenis aneh",
		Kind:        domain.TransactionKind("Hibah"),
		Lines: []dto.EntryLine{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(1000)},
		},
	}

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownAccount() {
	ctx := context.Background()
	knownID := uuid.NewString()
	missingID := uuid.NewString()

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Akun hilang",
		Kind:        domain.KindGeneral,
		Lines: []dto.EntryLine{
			{AccountID: knownID, Debit: decimal.NewFromInt(1000)},
			{AccountID: missingID, Credit: decimal.NewFromInt(1000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{knownID, missingID}).
		Return(suite.knownAccounts(knownID), nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), missingID)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnbalancedLinesStillSaved() {
	ctx := context.Background()
	userID := uuid.NewString()
	accountID := uuid.NewString()

	// Debits and credits do not match; the posting is accepted anyway.
	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Selisih",
		Kind:        domain.KindGeneral,
		Lines: []dto.EntryLine{
			{AccountID: accountID, Debit: decimal.NewFromInt(5000)},
			{AccountID: accountID, Credit: decimal.NewFromInt(3000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(suite.knownAccounts(accountID), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Selisih"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Purchase_ReAveragesCost() {
	ctx := context.Background()
	userID := uuid.NewString()
	inventoryAccID := uuid.NewString()
	cashID := uuid.NewString()
	productID := uuid.NewString()

	product := &domain.Product{
		ProductID: productID,
		Name:      "Tikus Putih",
		Quantity:  decimal.NewFromInt(10),
		AvgCost:   decimal.NewFromInt(100),
	}

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Beli stok",
		Kind:        domain.KindPurchase,
		Lines: []dto.EntryLine{
			{AccountID: inventoryAccID, Debit: decimal.NewFromInt(3000), ProductID: productID, Quantity: decimal.NewFromInt(10)},
			{AccountID: cashID, Credit: decimal.NewFromInt(3000)},
		},
		Inventory: []dto.InventoryHint{
			{ProductID: productID, Total: decimal.NewFromInt(3000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{inventoryAccID, cashID}).
		Return(suite.knownAccounts(inventoryAccID, cashID), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	// 10 units at 100 plus 10 units worth 3000 averages to 200.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 1 &&
			products[0].ProductID == productID &&
			products[0].Quantity.Equal(decimal.NewFromInt(20)) &&
			products[0].AvgCost.Equal(decimal.NewFromInt(200)) &&
			products[0].LastUpdatedBy == userID
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Beli stok"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Purchase_RepeatedLinesCompound() {
	ctx := context.Background()
	userID := uuid.NewString()
	inventoryAccID := uuid.NewString()
	productID := uuid.NewString()

	product := &domain.Product{
		ProductID: productID,
		Name:      "Hamster Syrian",
		Quantity:  decimal.Zero,
		AvgCost:   decimal.Zero,
	}

	// Two lines on the same product; the second re-averages on top of the
	// state the first one produced. The product is fetched only once.
	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Beli dua batch",
		Kind:        domain.KindPurchase,
		Lines: []dto.EntryLine{
			{AccountID: inventoryAccID, Debit: decimal.NewFromInt(1000), ProductID: productID, Quantity: decimal.NewFromInt(5)},
			{AccountID: inventoryAccID, Debit: decimal.NewFromInt(1000), ProductID: productID, Quantity: decimal.NewFromInt(5)},
		},
		Inventory: []dto.InventoryHint{
			{ProductID: productID, Total: decimal.NewFromInt(1000)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{inventoryAccID}).
		Return(suite.knownAccounts(inventoryAccID), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	// First line: (0*0+1000)/5 = 200 at qty 5. Second: (5*200+1000)/10 = 200 at qty 10.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 1 &&
			products[0].Quantity.Equal(decimal.NewFromInt(10)) &&
			products[0].AvgCost.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Beli dua batch"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	suite.mockProductRepo.AssertNumberOfCalls(suite.T(), "FindProductByID", 1)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Purchase_NoCostHintLeavesProductAlone() {
	ctx := context.Background()
	userID := uuid.NewString()
	inventoryAccID := uuid.NewString()
	cashID := uuid.NewString()
	productID := uuid.NewString()

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Beli stok tanpa rincian biaya",
		Kind:        domain.KindPurchase,
		Lines: []dto.EntryLine{
			{AccountID: inventoryAccID, Debit: decimal.NewFromInt(500), ProductID: productID, Quantity: decimal.NewFromInt(5)},
			{AccountID: cashID, Credit: decimal.NewFromInt(500)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{inventoryAccID, cashID}).
		Return(suite.knownAccounts(inventoryAccID, cashID), nil).Once()

	// Without an inventory hint for the product the purchase line carries no
	// cost information; quantity and average cost stay as they are.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 0
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Beli stok tanpa rincian biaya"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveQuantitySkipsInventory() {
	ctx := context.Background()
	userID := uuid.NewString()
	revenueID := uuid.NewString()
	cashID := uuid.NewString()
	productID := uuid.NewString()

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Jual stok dengan qty negatif",
		Kind:        domain.KindSale,
		Lines: []dto.EntryLine{
			{AccountID: cashID, Debit: decimal.NewFromInt(600), ProductID: productID, Quantity: decimal.NewFromInt(-3)},
			{AccountID: revenueID, Credit: decimal.NewFromInt(600)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{cashID, revenueID}).
		Return(suite.knownAccounts(cashID, revenueID), nil).Once()

	// A negative quantity would otherwise restock on a sale; such lines are
	// ignored for inventory purposes.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 0
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Jual stok dengan qty negatif"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Sale_AllowsNegativeStock() {
	ctx := context.Background()
	userID := uuid.NewString()
	revenueID := uuid.NewString()
	productID := uuid.NewString()

	product := &domain.Product{
		ProductID: productID,
		Name:      "Tikus Putih",
		Quantity:  decimal.NewFromInt(5),
		AvgCost:   decimal.NewFromInt(200),
	}

	// Selling more than is on hand drives the quantity negative.
	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Jual stok",
		Kind:        domain.KindSale,
		Lines: []dto.EntryLine{
			{AccountID: revenueID, Credit: decimal.NewFromInt(4000), ProductID: productID, Quantity: decimal.NewFromInt(8)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{revenueID}).
		Return(suite.knownAccounts(revenueID), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(products []domain.Product) bool {
		return len(products) == 1 &&
			products[0].Quantity.Equal(decimal.NewFromInt(-3)) &&
			products[0].AvgCost.Equal(decimal.NewFromInt(200)) // Sales never touch the average cost
	})).Return(nil).Once()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Transaction{Description: "Jual stok"}, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Purchase_ProductNotFound() {
	ctx := context.Background()
	inventoryAccID := uuid.NewString()
	productID := uuid.NewString()

	req := portssvc.CreateTransactionData{
		Date:        time.Now(),
		Description: "Beli barang hilang",
		Kind:        domain.KindPurchase,
		Lines: []dto.EntryLine{
			{AccountID: inventoryAccID, Debit: decimal.NewFromInt(1000), ProductID: productID, Quantity: decimal.NewFromInt(2)},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{inventoryAccID}).
		Return(suite.knownAccounts(inventoryAccID), nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_EmptyPage() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx, (*time.Time)(nil), (*time.Time)(nil), 50, (*string)(nil)).
		Return(nil, nil, nil).Once()

	transactions, token, err := suite.service.ListTransactions(ctx, nil, nil, 50, nil)

	suite.Require().NoError(err)
	suite.NotNil(transactions)
	suite.Empty(transactions)
	suite.Nil(token)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteTransaction", ctx, testID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, testID)

	suite.Require().NoError(err)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockTxnRepo.On("DeleteTransaction", ctx, testID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, testID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
