package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/kSibalic/nba/internal/app"
	apperrors "github.com/kSibalic/nba/internal/errors"
)

func main() {
	application, err := app.NewApplication(context.Background())
	if err != nil {
		if errors.Is(err, apperrors.ErrSourceUnavailable) {
			slog.Error("Season data could not be loaded; check data.regular_source and data.playoff_source",
				slog.String("error", err.Error()))
		} else {
			slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		}
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
