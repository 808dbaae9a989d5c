package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lanari/internal/cache"
	"lanari/internal/models"
	"lanari/internal/repositories"
	"lanari/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(activeOnly bool) ([]models.Product, error) {
	args := m.Called(activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(id string, fields map[string]interface{}) error {
	args := m.Called(id, fields)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(id string, qty int) error {
	args := m.Called(id, qty)
	return args.Error(0)
}

func newTestProductCache(t *testing.T) cache.ProductCache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisCache(client, time.Minute)
}

func TestProductService_GetProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Swieca Lawenda", PricePLN: 4990, StockQty: 10, IsActive: true},
		{ID: "2", Name: "Swieca Cynamon", PricePLN: 5990, StockQty: 5, IsActive: true},
	}

	mockRepo.On("GetAll", true).Return(expectedProducts, nil).Once()

	products, err := service.GetProducts(context.Background(), true)

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductsCached(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, newTestProductCache(t))
	ctx := context.Background()

	active := []models.Product{{ID: "1", Name: "Swieca Lawenda", PricePLN: 4990, IsActive: true}}
	mockRepo.On("GetAll", true).Return(active, nil).Once()

	// The second read is served from redis, so the repository is hit only once.
	for i := 0; i < 2; i++ {
		products, err := service.GetProducts(ctx, true)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Swieca Lawenda", products[0].Name)
	}
	mockRepo.AssertExpectations(t)

	// A write invalidates the cached list.
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	require.NoError(t, service.CreateProduct(ctx, &models.Product{Name: "Nowa", PricePLN: 100, IsActive: true}))

	mockRepo.On("GetAll", true).Return(append(active, models.Product{ID: "2", Name: "Nowa"}), nil).Once()
	products, err := service.GetProducts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, products, 2)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: "1", Name: "Swieca Lawenda", PricePLN: 4990}
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()

	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", "2").Return(nil, fmt.Errorf("product with ID 2: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID("2")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, "product not found", err.Error())
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Name: "  Swieca Wanilia ", PricePLN: 3990, StockQty: 20}
	mockRepo.On("Create", newProduct).Return(nil).Once()

	err := service.CreateProduct(context.Background(), newProduct)
	assert.NoError(t, err)
	assert.Equal(t, "Swieca Wanilia", newProduct.Name)

	err = service.CreateProduct(context.Background(), &models.Product{Name: "   "})
	assert.ErrorIs(t, err, services.ErrValidation)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	ctx := context.Background()

	mockRepo.On("Update", "1", map[string]interface{}{"name": "New", "price_pln": int64(2500)}).Return(nil).Once()
	mockRepo.On("GetByID", "1").Return(&models.Product{ID: "1", Name: "New", PricePLN: 2500, IsActive: true}, nil).Once()

	name := " New "
	price := int64(2500)
	updated, err := service.UpdateProduct(ctx, "1", services.ProductPatch{Name: &name, PricePLN: &price})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, int64(2500), updated.PricePLN)
	assert.True(t, updated.IsActive)

	// Invalid patches never reach the repository.
	blank := " "
	_, err = service.UpdateProduct(ctx, "1", services.ProductPatch{Name: &blank})
	assert.ErrorIs(t, err, services.ErrValidation)

	zero := int64(0)
	_, err = service.UpdateProduct(ctx, "1", services.ProductPatch{PricePLN: &zero})
	assert.ErrorIs(t, err, services.ErrValidation)

	negative := -1
	_, err = service.UpdateProduct(ctx, "1", services.ProductPatch{StockQty: &negative})
	assert.ErrorIs(t, err, services.ErrValidation)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeactivateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Update", "1", map[string]interface{}{"is_active": false}).Return(nil).Once()
	mockRepo.On("GetByID", "1").Return(&models.Product{ID: "1", Name: "P", PricePLN: 1000}, nil).Once()

	assert.NoError(t, service.DeactivateProduct(context.Background(), "1"))

	mockRepo.On("Update", "missing", mock.Anything).Return(fmt.Errorf("product with ID missing for update: %w", repositories.ErrNotFound)).Once()
	assert.ErrorIs(t, service.DeactivateProduct(context.Background(), "missing"), services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

// checkoutBeforeWrite commits a stock decrement right before every product write,
// the way a checkout finishing between an admin's read and save would.
type checkoutBeforeWrite struct {
	repositories.ProductRepository
	productID string
	qty       int
}

func (r *checkoutBeforeWrite) Update(id string, fields map[string]interface{}) error {
	if err := r.ProductRepository.DecrementStock(r.productID, r.qty); err != nil {
		return err
	}
	return r.ProductRepository.Update(id, fields)
}

func TestProductService_UpdateKeepsConcurrentStockDecrement(t *testing.T) {
	repos := repositories.NewGORMRepositories(setupTestDB(t))
	product := seedProduct(t, repos, "Swieca Y", 1000, 10)

	// The admin screen was loaded while stock was still 10.
	loaded, err := repos.Products.GetByID(product.ID)
	require.NoError(t, err)
	require.Equal(t, 10, loaded.StockQty)

	service := services.NewProductService(&checkoutBeforeWrite{ProductRepository: repos.Products, productID: product.ID, qty: 4}, nil)
	ctx := context.Background()

	name := "Swieca Y2"
	updated, err := service.UpdateProduct(ctx, product.ID, services.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Swieca Y2", updated.Name)
	assert.Equal(t, 6, updated.StockQty)

	require.NoError(t, service.DeactivateProduct(ctx, product.ID))
	stored, err := repos.Products.GetByID(product.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 2, stored.StockQty)

	// An explicit stock edit is still written.
	restock := 50
	r := services.NewProductService(repos.Products, nil)
	updated, err = r.UpdateProduct(ctx, product.ID, services.ProductPatch{StockQty: &restock})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.StockQty)
	assert.Equal(t, "Swieca Y2", updated.Name)
}
