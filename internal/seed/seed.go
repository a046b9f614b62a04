package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/vdab/fietsen/internal/app/models"
	appRepos "github.com/vdab/fietsen/internal/app/repositories"
)

// DefaultCampusName is the campus created on an empty database
const DefaultCampusName = "HQ"

// DefaultResponsibilities are created when no responsibility with the same name exists
var DefaultResponsibilities = []string{"EHBO", "Veiligheid", "Onthaal"}

// CreateDefaultData creates the default campus and responsibilities if they don't exist.
// Every item is checked separately; failures are collected and returned together.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Campus/Responsibilities)...")

	return repos.TxManager.WithTransaction(ctx, func(ctx context.Context) error {
		var finalErr error

		campus, err := repos.CampusRepository.FindByName(ctx, DefaultCampusName)
		switch {
		case err != nil:
			lgr.Error().Err(err).Msg("Error looking up default campus")
			finalErr = errors.Join(finalErr, err)
		case campus == nil:
			campus, err = appModels.NewCampus(DefaultCampusName, appModels.NewAddress("Keizerslaan", "11", "1000", "Brussel"))
			if err == nil {
				err = repos.CampusRepository.Create(ctx, campus)
			}
			if err != nil {
				lgr.Error().Err(err).Msg("Error creating default campus")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("campusID", campus.ID).Msg("Default campus created")
			}
		}

		for _, name := range DefaultResponsibilities {
			existing, err := repos.ResponsibilityRepository.FindByName(ctx, name)
			if err != nil {
				lgr.Error().Err(err).Str("name", name).Msg("Error looking up responsibility")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			if existing != nil {
				continue
			}

			responsibility, err := appModels.NewResponsibility(name)
			if err == nil {
				err = repos.ResponsibilityRepository.Create(ctx, responsibility)
			}
			if err != nil {
				lgr.Error().Err(err).Str("name", name).Msg("Error creating responsibility")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			lgr.Debug().Str("name", name).Int64("responsibilityID", responsibility.ID).Msg("Responsibility created")
		}

		if finalErr == nil {
			lgr.Info().Msg("Default data check/creation completed.")
		}
		return finalErr
	})
}
