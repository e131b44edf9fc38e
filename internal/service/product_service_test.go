package service_test

import (
	"fmt"
	"testing"

	"go-gudang-tekstil/internal/apperr"
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/internal/service"
	"go-gudang-tekstil/pkg/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testDefaultLimit  = 10
	testMaxLimit      = 100
	testLowStock      = 10
	testLowStockLimit = 20
)

// setupDB opens a fresh in-memory SQLite database for one test.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupProductService(t *testing.T) service.ProductService {
	t.Helper()
	repo := repository.NewProductRepo(setupDB(t))
	return service.NewProductService(repo, nil, testDefaultLimit, testMaxLimit, testLowStock)
}

func testInput(name string) *service.CreateProductInput {
	return &service.CreateProductInput{
		Name:     name,
		Category: model.CategoryBaju,
		Sizes:    []string{"M", "L"},
		Color:    "Blue",
		Material: "Cotton",
		Stock:    20,
		Price:    decimal.NewFromFloat(99.99),
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an operational error, got %v", err)
	assert.Equal(t, status, appErr.Status)
}

func TestCreateProductRoundTrip(t *testing.T) {
	svc := setupProductService(t)

	actor := uuid.New()
	created, err := svc.Create(testInput("Test Shirt"), &actor)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, actor, *created.CreatedBy)

	fetched, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Shirt", fetched.Name)
	assert.Equal(t, model.CategoryBaju, fetched.Category)
	assert.Equal(t, model.SizeList{"M", "L"}, fetched.Sizes)
	assert.Equal(t, "Blue", fetched.Color)
	assert.Equal(t, "Cotton", fetched.Material)
	assert.Equal(t, 20, fetched.Stock)
	assert.True(t, fetched.Price.Equal(decimal.NewFromFloat(99.99)), "price was %s", fetched.Price)
}

func TestCreateProductDuplicateName(t *testing.T) {
	svc := setupProductService(t)

	first, err := svc.Create(testInput("Kemeja Putih"), nil)
	require.NoError(t, err)

	_, err = svc.Create(testInput("Kemeja Putih"), nil)
	assertStatus(t, err, 409)

	// After soft-deleting the first, the name becomes available again.
	require.NoError(t, svc.Delete(first.ID))

	_, err = svc.Create(testInput("Kemeja Putih"), nil)
	assert.NoError(t, err)
}

func TestCreateProductValidation(t *testing.T) {
	svc := setupProductService(t)

	tests := []struct {
		name   string
		mutate func(*service.CreateProductInput)
	}{
		{"missing name", func(in *service.CreateProductInput) { in.Name = "" }},
		{"invalid category", func(in *service.CreateProductInput) { in.Category = "Sepatu" }},
		{"empty sizes", func(in *service.CreateProductInput) { in.Sizes = []string{} }},
		{"duplicate sizes", func(in *service.CreateProductInput) { in.Sizes = []string{"M", "M"} }},
		{"invalid size", func(in *service.CreateProductInput) { in.Sizes = []string{"XXXXL"} }},
		{"negative stock", func(in *service.CreateProductInput) { in.Stock = -1 }},
		{"zero price", func(in *service.CreateProductInput) { in.Price = decimal.Zero }},
		{"negative price", func(in *service.CreateProductInput) { in.Price = decimal.NewFromInt(-5) }},
		{"invalid image url", func(in *service.CreateProductInput) { in.ImageURL = "not-a-url" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := testInput("Valid Name")
			tc.mutate(input)

			_, err := svc.Create(input, nil)
			assertStatus(t, err, 400)
			assert.NotNil(t, apperr.As(err).Errors, "expected field-level detail")
		})
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc := setupProductService(t)

	_, err := svc.GetByID(uuid.New())
	assertStatus(t, err, 404)
}

func TestDeleteProduct(t *testing.T) {
	svc := setupProductService(t)

	created, err := svc.Create(testInput("Jaket Kulit"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	// Soft-deleted products are gone from lookups and listings.
	_, err = svc.GetByID(created.ID)
	assertStatus(t, err, 404)

	page, err := svc.List(repository.ProductFilters{})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.EqualValues(t, 0, page.Pagination.TotalItems)

	// Deleting twice reports NotFound.
	err = svc.Delete(created.ID)
	assertStatus(t, err, 404)
}

func TestListPagination(t *testing.T) {
	svc := setupProductService(t)

	for i := 0; i < 25; i++ {
		_, err := svc.Create(testInput(fmt.Sprintf("Product %02d", i)), nil)
		require.NoError(t, err)
	}

	page, err := svc.List(repository.ProductFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Products, 10)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.EqualValues(t, 25, page.Pagination.TotalItems)
	assert.Equal(t, 10, page.Pagination.ItemsPerPage)
	assert.True(t, page.Pagination.HasNextPage)
	assert.False(t, page.Pagination.HasPreviousPage)

	last, err := svc.List(repository.ProductFilters{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, last.Products, 5)
	assert.False(t, last.Pagination.HasNextPage)
	assert.True(t, last.Pagination.HasPreviousPage)

	// A page past the end is empty but the metadata stays valid.
	beyond, err := svc.List(repository.ProductFilters{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Products)
	assert.Equal(t, 9, beyond.Pagination.CurrentPage)
	assert.Equal(t, 3, beyond.Pagination.TotalPages)
	assert.EqualValues(t, 25, beyond.Pagination.TotalItems)
}

func TestListDefaults(t *testing.T) {
	svc := setupProductService(t)

	for i := 0; i < 12; i++ {
		_, err := svc.Create(testInput(fmt.Sprintf("Product %02d", i)), nil)
		require.NoError(t, err)
	}

	page, err := svc.List(repository.ProductFilters{})
	require.NoError(t, err)
	assert.Len(t, page.Products, testDefaultLimit)
	assert.Equal(t, 1, page.Pagination.CurrentPage)

	// Limit is capped at the configured maximum.
	capped, err := svc.List(repository.ProductFilters{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, testMaxLimit, capped.Pagination.ItemsPerPage)
}

func TestListFilters(t *testing.T) {
	svc := setupProductService(t)

	seed := []*service.CreateProductInput{
		{Name: "Celana Jeans Slim", Category: model.CategoryCelanaJeans, Sizes: []string{"S", "M"}, Color: "Dark Blue", Material: "Denim", Stock: 10, Price: decimal.NewFromInt(250000)},
		{Name: "Kemeja Formal", Category: model.CategoryBaju, Sizes: []string{"M", "L"}, Color: "White", Material: "Cotton", Stock: 20, Price: decimal.NewFromInt(150000)},
		{Name: "Jaket Bomber", Category: model.CategoryJaket, Sizes: []string{"XL"}, Color: "Navy Blue", Material: "Polyester", Stock: 5, Price: decimal.NewFromInt(350000)},
	}
	for _, in := range seed {
		_, err := svc.Create(in, nil)
		require.NoError(t, err)
	}

	// Free-text search is a case-insensitive substring match on the name.
	page, err := svc.List(repository.ProductFilters{Search: "jeans"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Celana Jeans Slim", page.Products[0].Name)

	// Category is an exact match.
	page, err = svc.List(repository.ProductFilters{Category: model.CategoryBaju})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Kemeja Formal", page.Products[0].Name)

	// Size is a membership test against the product's size set.
	page, err = svc.List(repository.ProductFilters{Size: "M"})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)

	page, err = svc.List(repository.ProductFilters{Size: "XL"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Jaket Bomber", page.Products[0].Name)

	// Color is a case-insensitive substring match.
	page, err = svc.List(repository.ProductFilters{Color: "blue"})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)

	// Filters combine with AND.
	page, err = svc.List(repository.ProductFilters{Color: "blue", Material: "denim"})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Celana Jeans Slim", page.Products[0].Name)

	page, err = svc.List(repository.ProductFilters{Category: model.CategoryJaket, Size: "S"})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestListSorting(t *testing.T) {
	svc := setupProductService(t)

	stocks := map[string]int{"Banana": 30, "Apple": 10, "Cherry": 20}
	for name, stock := range stocks {
		in := testInput(name)
		in.Stock = stock
		_, err := svc.Create(in, nil)
		require.NoError(t, err)
	}

	page, err := svc.List(repository.ProductFilters{SortBy: "name", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, page.Products, 3)
	assert.Equal(t, "Apple", page.Products[0].Name)
	assert.Equal(t, "Cherry", page.Products[2].Name)

	page, err = svc.List(repository.ProductFilters{SortBy: "stock", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, 30, page.Products[0].Stock)
	assert.Equal(t, 10, page.Products[2].Stock)
}

func TestUpdateProduct(t *testing.T) {
	svc := setupProductService(t)

	created, err := svc.Create(testInput("Kaos Polos"), nil)
	require.NoError(t, err)

	// Partial update touches only the provided fields.
	newStock := 99
	actor := uuid.New()
	updated, err := svc.Update(created.ID, &service.UpdateProductInput{Stock: &newStock}, &actor)
	require.NoError(t, err)
	assert.Equal(t, 99, updated.Stock)
	assert.Equal(t, "Kaos Polos", updated.Name)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, actor, *updated.UpdatedBy)

	// Re-submitting the product's own name never conflicts with itself.
	sameName := "Kaos Polos"
	_, err = svc.Update(created.ID, &service.UpdateProductInput{Name: &sameName}, nil)
	assert.NoError(t, err)
}

func TestUpdateProductNameConflict(t *testing.T) {
	svc := setupProductService(t)

	_, err := svc.Create(testInput("Product A"), nil)
	require.NoError(t, err)
	b, err := svc.Create(testInput("Product B"), nil)
	require.NoError(t, err)

	taken := "Product A"
	_, err = svc.Update(b.ID, &service.UpdateProductInput{Name: &taken}, nil)
	assertStatus(t, err, 409)
}

func TestUpdateProductNotFound(t *testing.T) {
	svc := setupProductService(t)

	name := "Anything"
	_, err := svc.Update(uuid.New(), &service.UpdateProductInput{Name: &name}, nil)
	assertStatus(t, err, 404)
}

func TestUpdateProductValidation(t *testing.T) {
	svc := setupProductService(t)

	created, err := svc.Create(testInput("Valid Product"), nil)
	require.NoError(t, err)

	negative := -3
	_, err = svc.Update(created.ID, &service.UpdateProductInput{Stock: &negative}, nil)
	assertStatus(t, err, 400)

	zero := decimal.Zero
	_, err = svc.Update(created.ID, &service.UpdateProductInput{Price: &zero}, nil)
	assertStatus(t, err, 400)
}

func TestCategoriesAndSizes(t *testing.T) {
	svc := setupProductService(t)

	for _, in := range []*service.CreateProductInput{
		testInput("Baju 1"), testInput("Baju 2"),
	} {
		_, err := svc.Create(in, nil)
		require.NoError(t, err)
	}
	jaket := testInput("Jaket 1")
	jaket.Category = model.CategoryJaket
	deleted, err := svc.Create(jaket, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(deleted.ID))

	counts, err := svc.Categories()
	require.NoError(t, err)
	require.Len(t, counts, 1, "deleted products must not contribute to category counts")
	assert.Equal(t, model.CategoryBaju, counts[0].Name)
	assert.EqualValues(t, 2, counts[0].ProductCount)

	assert.Equal(t, model.ValidSizes, svc.Sizes())
}
