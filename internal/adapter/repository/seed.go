package repository

import (
	"context"
	"fmt"

	"agrolink/internal/domain/entity"
	"agrolink/internal/domain/repository"
	"agrolink/pkg/errors"
	"agrolink/pkg/logger"
	"agrolink/pkg/utils"
)

const demoPassword = "password123"

type demoAccount struct {
	user     entity.User
	provider *entity.Provider
	producer *entity.Producer
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{
			user: entity.User{
				Username: "carlos.santos",
				Email:    "carlos@example.com",
				Name:     "Carlos Santos",
				Phone:    "(11) 99999-1111",
				UserType: entity.UserTypeProvider,
			},
			provider: &entity.Provider{
				ServiceType:     entity.ServiceTypeDrone,
				Specialty:       "Pulverização Agrícola",
				Description:     "Operador de drone especializado em pulverização com certificação ANAC",
				PricePerHectare: utils.Ptr(35.0),
				Location:        "São Paulo, SP",
				Latitude:        utils.Ptr(-23.5505),
				Longitude:       utils.Ptr(-46.6333),
				CoverageRadius:  50,
				IsAvailable:     true,
				Certifications:  []string{"ANAC", "Fitossanitário"},
				EquipmentOwned:  true,
				Rating:          4.9,
				TotalReviews:    127,
			},
		},
		{
			user: entity.User{
				Username: "ana.oliveira",
				Email:    "ana@example.com",
				Name:     "Ana Oliveira",
				Phone:    "(11) 99999-2222",
				UserType: entity.UserTypeProvider,
			},
			provider: &entity.Provider{
				ServiceType:     entity.ServiceTypeDrone,
				Specialty:       "Pulverização Orgânica",
				Description:     "Especialista em produtos orgânicos e sustentabilidade",
				PricePerHectare: utils.Ptr(32.0),
				Location:        "Campinas, SP",
				Latitude:        utils.Ptr(-22.9056),
				Longitude:       utils.Ptr(-47.0608),
				CoverageRadius:  40,
				IsAvailable:     true,
				Certifications:  []string{"ANAC", "Orgânicos"},
				EquipmentOwned:  true,
				Rating:          4.8,
				TotalReviews:    89,
			},
		},
		{
			user: entity.User{
				Username: "joao.silva",
				Email:    "joao@example.com",
				Name:     "João Silva",
				Phone:    "(11) 99999-3333",
				UserType: entity.UserTypeProducer,
			},
			producer: &entity.Producer{
				FarmName:  "Fazenda Santa Maria",
				Location:  "Ribeirão Preto, SP",
				Latitude:  utils.Ptr(-21.1775),
				Longitude: utils.Ptr(-47.8100),
				FarmSize:  utils.Ptr(150.0),
				CropTypes: []string{"soja", "milho", "cana"},
			},
		},
	}
}

// SeedDemoData writes the demo users and profiles through the store's
// repositories. It does nothing when the first demo user already exists.
func SeedDemoData(ctx context.Context, store *repository.Store, hashPassword func(string) (string, error)) error {
	accounts := demoAccounts()

	_, err := store.Users.GetByEmail(ctx, accounts[0].user.Email)
	if err == nil {
		logger.Info("Demo data already present, skipping seed")
		return nil
	}
	if !errors.IsNotFound(err) {
		return err
	}

	hash, err := hashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	for _, account := range accounts {
		user := account.user
		user.Password = hash
		if err := store.Users.Create(ctx, &user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", user.Username, err)
		}

		if account.provider != nil {
			account.provider.UserID = user.ID
			if err := store.Providers.Create(ctx, account.provider); err != nil {
				return fmt.Errorf("failed to seed provider for %s: %w", user.Username, err)
			}
		}
		if account.producer != nil {
			account.producer.UserID = user.ID
			if err := store.Producers.Create(ctx, account.producer); err != nil {
				return fmt.Errorf("failed to seed producer for %s: %w", user.Username, err)
			}
		}
	}

	logger.Info("Seeded %d demo accounts", len(accounts))
	return nil
}
