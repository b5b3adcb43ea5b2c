package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatmovers/booking-service/internal/domain"
)

func (e *testEnv) catalogService() *CatalogService {
	return NewCatalogService(e.vehicleTypes, e.services)
}

func TestCatalogCreateVehicleType(t *testing.T) {
	env := newTestEnv()
	staff := env.seedActor("staff-1", domain.RoleStaff)
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	customer := env.seedActor("cust-1", domain.RoleCustomer)
	svc := env.catalogService()

	_, err := svc.CreateVehicleType(context.Background(), customer, VehicleTypeInput{Name: "Van"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	// Staff may create non-pricing data.
	vt, err := svc.CreateVehicleType(context.Background(), staff, VehicleTypeInput{Name: "Van", Capacity: "750kg"})
	require.NoError(t, err)
	assert.Equal(t, "Van", vt.Name)

	// Setting a price needs admin.
	price := decimal.RequireFromString("9.75")
	_, err = svc.CreateVehicleType(context.Background(), staff, VehicleTypeInput{Name: "Truck", PricePerKM: &price})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	priced, err := svc.CreateVehicleType(context.Background(), admin, VehicleTypeInput{Name: "Truck", PricePerKM: &price})
	require.NoError(t, err)
	assert.True(t, priced.PricePerKM.Equal(price))
}

func TestCatalogUpdateVehicleTypePriceAdminOnly(t *testing.T) {
	env := newTestEnv()
	staff := env.seedActor("staff-1", domain.RoleStaff)
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	env.vehicleTypes.add(&domain.VehicleType{ID: "vt-1", Name: "Van", PricePerKM: decimal.RequireFromString("5")})
	svc := env.catalogService()

	// Staff edits that leave pricing alone are fine.
	vt, err := svc.UpdateVehicleType(context.Background(), staff, "vt-1", VehicleTypeInput{Description: "City van"})
	require.NoError(t, err)
	assert.Equal(t, "City van", vt.Description)

	price := decimal.RequireFromString("6")
	_, err = svc.UpdateVehicleType(context.Background(), staff, "vt-1", VehicleTypeInput{PricePerKM: &price})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", domainCode(t, err))

	vt, err = svc.UpdateVehicleType(context.Background(), admin, "vt-1", VehicleTypeInput{PricePerKM: &price})
	require.NoError(t, err)
	assert.True(t, vt.PricePerKM.Equal(price))

	negative := decimal.RequireFromString("-1")
	_, err = svc.UpdateVehicleType(context.Background(), admin, "vt-1", VehicleTypeInput{PricePerKM: &negative})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestCatalogCreateService(t *testing.T) {
	env := newTestEnv()
	admin := env.seedActor("admin-1", domain.RoleAdmin)
	env.vehicleTypes.add(&domain.VehicleType{ID: "vt-1", Name: "Van"})
	svc := env.catalogService()

	_, err := svc.CreateService(context.Background(), admin, ServiceInput{Name: "Office Move"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))

	// Unknown vehicle type is rejected.
	_, err = svc.CreateService(context.Background(), admin, ServiceInput{Name: "Office Move", VehicleTypeID: "vt-9"})
	require.Error(t, err)

	price := decimal.RequireFromString("1500")
	created, err := svc.CreateService(context.Background(), admin, ServiceInput{
		Name:          "Office Move",
		VehicleTypeID: "vt-1",
		BasePrice:     &price,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.True(t, created.BasePrice.Equal(price))
}

func TestCatalogListServicesVisibility(t *testing.T) {
	env := newTestEnv()
	staff := env.seedActor("staff-1", domain.RoleStaff)
	customer := env.seedActor("cust-1", domain.RoleCustomer)
	env.services.add(&domain.Service{ID: "svc-1", Name: "Active", VehicleTypeID: "vt-1", IsActive: true})
	env.services.add(&domain.Service{ID: "svc-2", Name: "Retired", VehicleTypeID: "vt-1"})
	svc := env.catalogService()

	visible, err := svc.ListServices(context.Background(), nil, false, "")
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	// include_inactive is honored for staff only.
	visible, err = svc.ListServices(context.Background(), customer, true, "")
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	visible, err = svc.ListServices(context.Background(), staff, true, "")
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}
