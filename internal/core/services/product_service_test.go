package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ratbook/ratbook_backend/internal/apperrors"
	"github.com/ratbook/ratbook_backend/internal/core/domain"
	portssvc "github.com/ratbook/ratbook_backend/internal/core/ports/services"
	"github.com/ratbook/ratbook_backend/internal/core/services"
	"github.com/ratbook/ratbook_backend/internal/dto"
)

// MockProductRepository is a mock type for the ProductRepositoryFacade interface
type MockProductRepository struct {
	mock.Mock
}

// --- Implement mock methods for ProductRepositoryFacade ---

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProductBalancesInTx(ctx context.Context, tx pgx.Tx, products []domain.Product) error {
	args := m.Called(ctx, tx, products)
	return args.Error(0)
}

// --- Test Suite Setup ---

type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo *MockProductRepository
	service  portssvc.ProductSvcFacade
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateProductRequest{
		Code:     "TKS-001",
		Name:     "Tikus Putih",
		Quantity: decimal.NewFromInt(10),
		AvgCost:  decimal.NewFromInt(15000),
	}

	// Expect SaveProduct to be called once
	suite.mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	// Call the service method
	createdProduct, err := suite.service.CreateProduct(ctx, req, creatorUserID)

	// Assertions
	suite.Require().NoError(err)
	suite.Require().NotNil(createdProduct)
	suite.NotEmpty(createdProduct.ProductID)
	suite.Equal(req.Code, createdProduct.Code)
	suite.Equal(req.Name, createdProduct.Name)
	suite.True(req.Quantity.Equal(createdProduct.Quantity))
	suite.True(req.AvgCost.Equal(createdProduct.AvgCost))
	suite.Equal(creatorUserID, createdProduct.CreatedBy)
	suite.WithinDuration(time.Now(), createdProduct.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_SaveError() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateProductRequest{
		Code: "TKS-002",
		Name: "Tikus Rumah",
	}

	expectedErr := assert.AnError

	suite.mockRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(expectedErr).Once()

	createdProduct, err := suite.service.CreateProduct(ctx, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(createdProduct)
	suite.ErrorIs(err, expectedErr)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestGetProductByID_Success() {
	ctx := context.Background()
	testID := uuid.NewString()
	expectedProduct := &domain.Product{
		ProductID: testID,
		Code:      "HAM-001",
		Name:      "Hamster Syrian",
		Quantity:  decimal.NewFromInt(4),
		AvgCost:   decimal.NewFromInt(50000),
	}

	suite.mockRepo.On("FindProductByID", ctx, testID).Return(expectedProduct, nil).Once()

	product, err := suite.service.GetProductByID(ctx, testID)

	suite.Require().NoError(err)
	suite.Require().NotNil(product)
	suite.Equal(expectedProduct, product)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestGetProductByID_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("FindProductByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	product, err := suite.service.GetProductByID(ctx, testID)

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestListProducts_Empty() {
	ctx := context.Background()
	var expectedProducts []domain.Product

	suite.mockRepo.On("ListProducts", ctx).Return(expectedProducts, nil).Once()

	products, err := suite.service.ListProducts(ctx)

	suite.Require().NoError(err)
	suite.Empty(products)
	suite.NotNil(products) // Should be an empty slice, not nil

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_Success_QuantityAndCost() {
	ctx := context.Background()
	testID := uuid.NewString()
	updaterUserID := uuid.NewString()
	initialTime := time.Now().Add(-time.Hour)

	originalProduct := &domain.Product{
		ProductID: testID,
		Code:      "HAM-002",
		Name:      "Hamster Campbell",
		Quantity:  decimal.NewFromInt(2),
		AvgCost:   decimal.NewFromInt(35000),
		AuditFields: domain.AuditFields{
			CreatedBy:     "creator",
			LastUpdatedBy: "creator",
			CreatedAt:     initialTime,
			LastUpdatedAt: initialTime,
		},
	}

	// Direct stock corrections go through the same update path as renames.
	newQty := decimal.NewFromInt(7)
	newCost := decimal.NewFromInt(32000)
	req := dto.UpdateProductRequest{
		Quantity: &newQty,
		AvgCost:  &newCost,
	}

	suite.mockRepo.On("FindProductByID", ctx, testID).Return(originalProduct, nil).Once()
	suite.mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p domain.Product) bool {
		return p.ProductID == testID &&
			p.Quantity.Equal(newQty) &&
			p.AvgCost.Equal(newCost) &&
			p.Name == "Hamster Campbell" && // Unchanged
			p.LastUpdatedBy == updaterUserID &&
			p.LastUpdatedAt.After(initialTime)
	})).Return(nil).Once()

	updatedProduct, err := suite.service.UpdateProduct(ctx, testID, req, updaterUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updatedProduct)
	suite.True(updatedProduct.Quantity.Equal(newQty))
	suite.True(updatedProduct.AvgCost.Equal(newCost))
	suite.Equal(updaterUserID, updatedProduct.LastUpdatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()
	updaterUserID := uuid.NewString()
	newName := "Doesn't matter"
	req := dto.UpdateProductRequest{Name: &newName}

	suite.mockRepo.On("FindProductByID", ctx, testID).Return(nil, apperrors.ErrNotFound).Once()

	updatedProduct, err := suite.service.UpdateProduct(ctx, testID, req, updaterUserID)

	suite.Require().Error(err)
	suite.Nil(updatedProduct)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_Success() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("DeleteProduct", ctx, testID).Return(nil).Once()

	err := suite.service.DeleteProduct(ctx, testID)

	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct_NotFound() {
	ctx := context.Background()
	testID := uuid.NewString()

	suite.mockRepo.On("DeleteProduct", ctx, testID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteProduct(ctx, testID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
