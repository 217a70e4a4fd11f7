package productrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/productrepo"
	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ProductCatalogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   *productrepo.GormProductCatalog
}

func (suite *ProductCatalogIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&productrepo.ProductDTO{}))
	suite.Require().NoError(db.Create(&[]productrepo.ProductDTO{
		{ID: "p-1", Name: "Kurta", Price: decimal.RequireFromString("249.50"), Image: "kurta.jpg", IsActive: true},
		{ID: "p-2", Name: "Dupatta", Price: decimal.NewFromInt(125), IsActive: false},
	}).Error)

	suite.catalog = productrepo.NewGormProductCatalog(db)
}

func (suite *ProductCatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductCatalogIntegrationTestSuite) TestGetByIDs_ReturnsKnownProducts() {
	products, err := suite.catalog.GetByIDs(context.Background(), []string{"p-1", "p-2", "p-404"})

	suite.Require().NoError(err)
	suite.Len(products, 2)
	suite.Equal("Kurta", products["p-1"].Name)
	suite.True(products["p-1"].Price.IsEqual(mustMoney(suite, "249.50")))
	suite.False(products["p-2"].IsActive)
	suite.NotContains(products, "p-404")
}

func (suite *ProductCatalogIntegrationTestSuite) TestGetByIDs_EmptyInput() {
	products, err := suite.catalog.GetByIDs(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Empty(products)
}

func mustMoney(suite *ProductCatalogIntegrationTestSuite, s string) kernel.Money {
	m, err := kernel.MoneyFromString(s)
	suite.Require().NoError(err)
	return m
}

func TestProductCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductCatalogIntegrationTestSuite))
}
