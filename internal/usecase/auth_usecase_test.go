package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrolink/internal/domain/entity"
	"agrolink/pkg/errors"
	"agrolink/pkg/utils"
)

func producerInput() RegisterInput {
	return RegisterInput{
		Username:  "maria.souza",
		Email:     "  Maria@Example.com ",
		Password:  "s3cret-pass",
		Name:      "Maria Souza",
		UserType:  entity.UserTypeProducer,
		FarmName:  "Sítio Boa Vista",
		Location:  "Piracicaba, SP",
		Latitude:  utils.Ptr(-22.7253),
		Longitude: utils.Ptr(-47.6492),
		FarmSize:  utils.Ptr(35.0),
	}
}

func TestRegister_Producer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.auth.Register(ctx, producerInput())
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "maria@example.com", result.User.Email)
	assert.NotEqual(t, "s3cret-pass", result.User.Password)
	require.NotNil(t, result.Producer)
	assert.Nil(t, result.Provider)
	assert.Equal(t, result.User.ID, result.Producer.UserID)
	assert.NotNil(t, result.Producer.CropTypes)

	userID, err := env.tokens.Verify(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestRegister_ProviderDefaults(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.auth.Register(context.Background(), RegisterInput{
		Username:  "pedro.drone",
		Email:     "pedro@example.com",
		Password:  "s3cret-pass",
		Name:      "Pedro Lima",
		UserType:  entity.UserTypeProvider,
		Specialty: "Mapeamento",
		Location:  "Sorocaba, SP",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Provider)

	provider := result.Provider
	assert.Equal(t, entity.ServiceTypeDrone, provider.ServiceType)
	assert.Equal(t, entity.DefaultCoverageRadius, provider.CoverageRadius)
	assert.True(t, provider.IsAvailable)
	assert.True(t, provider.EquipmentOwned)
	assert.Zero(t, provider.Rating)
	assert.Zero(t, provider.TotalReviews)
	assert.NotNil(t, provider.Certifications)
}

func TestRegister_Conflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, producerInput())
	require.NoError(t, err)

	sameEmail := producerInput()
	sameEmail.Username = "outra.maria"
	_, err = env.auth.Register(ctx, sameEmail)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)

	sameUsername := producerInput()
	sameUsername.Email = "maria2@example.com"
	_, err = env.auth.Register(ctx, sameUsername)
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestRegister_ProviderNeedsSpecialty(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), RegisterInput{
		Username: "sem.especialidade",
		Email:    "sem@example.com",
		Password: "s3cret-pass",
		Name:     "Sem Especialidade",
		UserType: entity.UserTypeProvider,
		Location: "Bauru, SP",
	})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	result, err := env.auth.Login(ctx, "CARLOS@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, carlosUserID, result.User.ID)
	require.NotNil(t, result.Provider)
	assert.Equal(t, carlosProvider, result.Provider.ID)

	_, err = env.auth.Login(ctx, "carlos@example.com", "wrong")
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)

	_, err = env.auth.Login(ctx, "nobody@example.com", "password123")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestLogout_RevokesToken(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	ctx := context.Background()

	result, err := env.auth.Login(ctx, "joao@example.com", "password123")
	require.NoError(t, err)

	_, err = env.tokens.Verify(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx, result.Token))

	_, err = env.tokens.Verify(ctx, result.Token)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	// A fresh login still works.
	again, err := env.auth.Login(ctx, "joao@example.com", "password123")
	require.NoError(t, err)
	_, err = env.tokens.Verify(ctx, again.Token)
	assert.NoError(t, err)
}
