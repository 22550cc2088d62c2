package services

import (
	"errors"

	"gorm.io/gorm"

	"ruedo-cms/logging"
	"ruedo-cms/models"
)

// storeError translates gorm errors into the error types handlers understand.
// conflict is the message used for constraint violations; empty falls back
// to a generic one.
func storeError(err error, conflict string) error {
	if conflict == "" {
		conflict = models.MsgConflict
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrorNotFound{Message: models.MsgNotFound}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrorConflict{Message: conflict}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.ErrorConflict{Message: conflict}
	}
	logging.Error().Err(err).Msg("store operation failed")
	return err
}

func notFound() error {
	return models.ErrorNotFound{Message: models.MsgNotFound}
}
