package payments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lumenfoto/studio-backend/pkg/db/models"
	"github.com/lumenfoto/studio-backend/pkg/enums"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/mercadopago"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  client_name TEXT NOT NULL,
  client_email TEXT NOT NULL,
  client_phone TEXT,
  event_type TEXT,
  event_date TEXT,
  event_time TEXT,
  event_location TEXT,
  package_name TEXT,
  total_cents INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'pending',
  preference_id TEXT,
  failure_reason TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	require.NoError(t, db.Exec(`DELETE FROM bookings`).Error)
	return db
}

type fakeProvider struct {
	token  string
	pref   mercadopago.Preference
	result *mercadopago.PreferenceResult
	err    error
	calls  int
}

func (f *fakeProvider) CreatePreference(_ context.Context, token string, pref mercadopago.Preference) (*mercadopago.PreferenceResult, error) {
	f.calls++
	f.token = token
	f.pref = pref
	return f.result, f.err
}

func sampleInput() CreatePreferenceInput {
	return CreatePreferenceInput{
		Preference: mercadopago.Preference{
			Items: []mercadopago.Item{{Title: "Pacote Ensaio", Quantity: 1, UnitPrice: decimal.RequireFromString("800"), CurrencyID: "BRL"}},
		},
		BookingData: BookingData{
			ClientName:  "Ana Souza",
			ClientEmail: "Ana@Example.com",
			EventType:   "Ensaio",
			EventDate:   "2025-03-15",
			Total:       decimal.RequireFromString("800.00"),
		},
	}
}

func loadOnlyBooking(t *testing.T, db *gorm.DB) models.Booking {
	t.Helper()
	var rows []models.Booking
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestCreatePreferenceSuccess(t *testing.T) {
	db := setupBookingsTestDB(t)
	provider := &fakeProvider{result: &mercadopago.PreferenceResult{ID: "pref-1", InitPoint: "https://mp/init", SandboxInitPoint: "https://mp/sb"}}
	svc, err := NewService(NewRepository(db), provider, "APP_USR-configured", nil)
	require.NoError(t, err)

	in := sampleInput()
	in.AccessToken = "request-token"
	result, err := svc.CreatePreference(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "pref-1", result.ID)
	assert.Equal(t, "APP_USR-configured", provider.token)

	booking := loadOnlyBooking(t, db)
	assert.Equal(t, enums.BookingStatusPreferenceCreated, booking.Status)
	require.NotNil(t, booking.PreferenceID)
	assert.Equal(t, "pref-1", *booking.PreferenceID)
	assert.Equal(t, "ana@example.com", booking.ClientEmail)
	assert.Equal(t, int64(80000), booking.TotalCents)
	assert.Equal(t, booking.ID.String(), provider.pref.ExternalReference)
	assert.Equal(t, booking.ID.String(), provider.pref.Metadata["booking_id"])
}

func TestCreatePreferenceFallsBackToRequestToken(t *testing.T) {
	db := setupBookingsTestDB(t)
	provider := &fakeProvider{result: &mercadopago.PreferenceResult{ID: "pref-2"}}
	svc, err := NewService(NewRepository(db), provider, "", nil)
	require.NoError(t, err)

	in := sampleInput()
	in.AccessToken = " request-token "
	in.Preference.ExternalReference = "order-77"
	_, err = svc.CreatePreference(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "request-token", provider.token)
	assert.Equal(t, "order-77", provider.pref.ExternalReference)
}

func TestCreatePreferenceWithoutAnyTokenIsConfigurationError(t *testing.T) {
	db := setupBookingsTestDB(t)
	provider := &fakeProvider{}
	svc, err := NewService(NewRepository(db), provider, "", nil)
	require.NoError(t, err)

	_, err = svc.CreatePreference(context.Background(), sampleInput())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConfiguration))
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, provider.calls)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePreferenceProviderFailureMarksBooking(t *testing.T) {
	db := setupBookingsTestDB(t)
	upstream := pkgerrors.Wrap(pkgerrors.CodeValidation, &mercadopago.APIError{StatusCode: 400, Message: "invalid items"}, "mercadopago create preference failed")
	svc, err := NewService(NewRepository(db), &fakeProvider{err: upstream}, "token", nil)
	require.NoError(t, err)

	_, err = svc.CreatePreference(context.Background(), sampleInput())
	require.Error(t, err)
	var apiErr *mercadopago.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)

	booking := loadOnlyBooking(t, db)
	assert.Equal(t, enums.BookingStatusPreferenceFailed, booking.Status)
	require.NotNil(t, booking.FailureReason)
	assert.Contains(t, *booking.FailureReason, "invalid items")
}

func TestCreatePreferenceRequiresItems(t *testing.T) {
	db := setupBookingsTestDB(t)
	svc, err := NewService(NewRepository(db), &fakeProvider{}, "token", nil)
	require.NoError(t, err)

	in := sampleInput()
	in.Preference.Items = nil
	_, err = svc.CreatePreference(context.Background(), in)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, &fakeProvider{}, "", nil)
	require.Error(t, err)
	_, err = NewService(NewRepository(nil), nil, "", nil)
	require.Error(t, err)
}
