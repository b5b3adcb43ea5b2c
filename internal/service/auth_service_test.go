package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bharatmovers/booking-service/internal/config"
	"github.com/bharatmovers/booking-service/internal/domain"
)

func newAuthService(actors *fakeActorRepo) *AuthService {
	cfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}
	return NewAuthService(cfg, actors, nil, zap.NewNop())
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
		Password: "Secret123",
	}
}

func TestRegisterCreatesCustomer(t *testing.T) {
	actors := newFakeActorRepo()
	svc := newAuthService(actors)

	actor, token, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleCustomer, actor.Role)
	assert.True(t, actor.IsCustomer)
	assert.False(t, actor.IsStaff)
	assert.True(t, actor.Active)
	assert.NotEqual(t, "Secret123", actor.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	actors := newFakeActorRepo()
	svc := newAuthService(actors)

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short phone", func(in *RegisterInput) { in.Phone = "12345" }},
		{"alpha phone", func(in *RegisterInput) { in.Phone = "98765abcde" }},
		{"short password", func(in *RegisterInput) { in.Password = "Ab1" }},
		{"no uppercase", func(in *RegisterInput) { in.Password = "secret123" }},
		{"no digit", func(in *RegisterInput) { in.Password = "SecretPass" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegistration()
			tc.mutate(&input)
			_, _, err := svc.Register(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	actors := newFakeActorRepo()
	svc := newAuthService(actors)

	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	input := validRegistration()
	input.Email = "RAVI@example.com" // emails are case-insensitive
	_, _, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestLogin(t *testing.T) {
	actors := newFakeActorRepo()
	svc := newAuthService(actors)
	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	actor, token, err := svc.Login(context.Background(), "ravi@example.com", "Secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ravi@example.com", actor.Email)

	_, _, err = svc.Login(context.Background(), "ravi@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "Secret123")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	actors := newFakeActorRepo()
	svc := newAuthService(actors)
	actor, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	actor.Active = false
	require.NoError(t, actors.Update(context.Background(), actor))

	_, _, err = svc.Login(context.Background(), "ravi@example.com", "Secret123")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestTokenRoundTrip(t *testing.T) {
	actors := newFakeActorRepo()
	svc := newAuthService(actors)
	actor, token, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, actor.ID, claims.ActorID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestPasswordPolicy(t *testing.T) {
	assert.Empty(t, passwordPolicy("Secret123"))
	assert.NotEmpty(t, passwordPolicy("short"))
	assert.NotEmpty(t, passwordPolicy("alllowercase1"))
	assert.NotEmpty(t, passwordPolicy("NODIGITSHERE"))
}
