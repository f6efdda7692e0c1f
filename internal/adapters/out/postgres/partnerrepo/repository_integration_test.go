package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"bolpurmart/internal/adapters/out/postgres/partnerrepo"
	"bolpurmart/internal/core/domain/model/kernel"
	"bolpurmart/internal/core/domain/model/partner"
	"bolpurmart/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
	suite.repository = partnerrepo.NewGormPartnerRepository(db)
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_partners").Error)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) addPartner(id string) kernel.ID {
	pid := kernel.MustIDFromString(id)
	p, err := partner.NewPartner(pid, "Ravi Das", "9876543210", id+"@example.com", partner.Scooter, "WB 54 A 1234", now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), p))
	return pid
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAdd_StartsUnapprovedAndOffline() {
	id := suite.addPartner("P1")

	got, err := suite.repository.Get(context.Background(), id)

	suite.Require().NoError(err)
	suite.False(got.AdminApproved())
	suite.Equal(partner.Offline, got.Status())
	suite.Zero(got.TotalDeliveries())
	suite.Empty(got.DeviceTokens())
	suite.Nil(got.Payment())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestMerge_ProfileLeavesVehicleUntouched() {
	ctx := context.Background()
	id := suite.addPartner("P1")
	patch, err := partner.NewProfilePatch("A", "9999999999")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Merge(ctx, id, patch, now.Add(time.Hour)))

	got, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("A", got.Name())
	suite.Equal("9999999999", got.Phone())
	suite.Equal(partner.Scooter, got.VehicleType())
	suite.Equal("WB 54 A 1234", got.VehicleNumber())
	suite.True(now.Add(time.Hour).Equal(got.UpdatedAt()))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestMerge_PaymentAndStatus() {
	ctx := context.Background()
	id := suite.addPartner("P1")

	payment, err := partner.NewPaymentPatch("ravi@okaxis", "Ravi Das")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Merge(ctx, id, payment, now))

	status, err := partner.NewStatusPatch("online")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Merge(ctx, id, status, now))

	got, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Require().NotNil(got.Payment())
	suite.Equal("ravi@okaxis", got.Payment().UPIID())
	suite.Equal(partner.Online, got.Status())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestMerge_MissingPartner_ReturnsNotFound() {
	patch, _ := partner.NewStatusPatch("busy")

	err := suite.repository.Merge(context.Background(), kernel.MustIDFromString("nobody"), patch, now)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAddDeviceToken_IsASet() {
	ctx := context.Background()
	id := suite.addPartner("P1")

	suite.Require().NoError(suite.repository.AddDeviceToken(ctx, id, "t1", now))
	suite.Require().NoError(suite.repository.AddDeviceToken(ctx, id, "t2", now))
	suite.Require().NoError(suite.repository.AddDeviceToken(ctx, id, "t1", now))

	got, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal([]string{"t1", "t2"}, got.DeviceTokens())

	err = suite.repository.AddDeviceToken(ctx, kernel.MustIDFromString("nobody"), "t1", now)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestIncrementDeliveries() {
	ctx := context.Background()
	id := suite.addPartner("P1")

	suite.Require().NoError(suite.repository.IncrementDeliveries(ctx, id, now))
	suite.Require().NoError(suite.repository.IncrementDeliveries(ctx, id, now))

	got, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(2, got.TotalDeliveries())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestListNotifiable() {
	ctx := context.Background()
	online, _ := partner.NewStatusPatch("online")

	ready := suite.addPartner("ready")
	suite.Require().NoError(suite.repository.Merge(ctx, ready, online, now))
	suite.Require().NoError(suite.repository.AddDeviceToken(ctx, ready, "t1", now))
	suite.Require().NoError(suite.db.Exec("UPDATE delivery_partners SET admin_approved = true WHERE id = ?", "ready").Error)

	unapproved := suite.addPartner("unapproved")
	suite.Require().NoError(suite.repository.Merge(ctx, unapproved, online, now))
	suite.Require().NoError(suite.repository.AddDeviceToken(ctx, unapproved, "t2", now))

	suite.addPartner("offline")

	got, err := suite.repository.ListNotifiable(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal("ready", got[0].ID().String())
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
