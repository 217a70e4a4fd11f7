package tierrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/tierrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/tier"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *tierrepo.GormTierRepository
}

func (suite *TierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&tierrepo.TierDTO{}))
	suite.repository = tierrepo.NewGormTierRepository(db)
}

func (suite *TierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE discount_tiers").Error)
}

func (suite *TierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TierRepositoryIntegrationTestSuite) TestReplaceAll_SwapsTheWholeSet() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.ReplaceAll(ctx, []tier.Tier{suite.tier(999, 5)}))
	suite.Require().NoError(suite.repository.ReplaceAll(ctx, []tier.Tier{suite.tier(2999, 10), suite.tier(1499, 7)}))

	got, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].MinAmount().IsEqual(kernel.MoneyFromInt(1499)))
	suite.True(got[1].DiscountPercent().Equal(decimal.NewFromInt(10)))
}

func (suite *TierRepositoryIntegrationTestSuite) TestReplaceAll_EmptySetDisablesTiers() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.ReplaceAll(ctx, []tier.Tier{suite.tier(999, 5)}))

	suite.Require().NoError(suite.repository.ReplaceAll(ctx, nil))

	got, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Empty(got)
}

func (suite *TierRepositoryIntegrationTestSuite) TestReplaceAll_RejectsDuplicates() {
	err := suite.repository.ReplaceAll(context.Background(), []tier.Tier{suite.tier(999, 5), suite.tier(999, 6)})

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *TierRepositoryIntegrationTestSuite) tier(minAmount, percent int64) tier.Tier {
	t, err := tier.NewTier(kernel.MoneyFromInt(minAmount), decimal.NewFromInt(percent), "")
	suite.Require().NoError(err)
	return t
}

func TestTierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TierRepositoryIntegrationTestSuite))
}
