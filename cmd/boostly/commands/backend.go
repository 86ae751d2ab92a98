package commands

import (
	"context"
	"fmt"

	"github.com/boostly/boostly/internal/client"
	"github.com/boostly/boostly/internal/client/fake"
	"github.com/boostly/boostly/internal/model"
	"github.com/boostly/boostly/internal/printer"
	"github.com/boostly/boostly/internal/storage/sqlite"
	"github.com/boostly/boostly/internal/wizard"
)

// newBackend creates the backend client from the root configuration, a
// REST client against the configured API or an in-memory fake.
func newBackend(rootCmd *RootCommand) (client.Backend, error) {
	if rootCmd.FakeBackend {
		b, err := fake.NewBackend(fake.BackendConfig{
			Creator: model.Creator{ID: rootCmd.UserID, DisplayName: rootCmd.UserID},
			Logger:  rootCmd.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create fake backend: %w", err)
		}
		return b, nil
	}

	c, err := client.NewRESTClient(client.RESTClientConfig{
		BaseURL: rootCmd.APIURL,
		Token:   rootCmd.APIToken,
		Logger:  rootCmd.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create API client: %w", err)
	}
	return c, nil
}

// openSession creates the SQLite session repository and rehydrates the
// wizard session from it. The returned closer must be called before the
// process exits.
func openSession(ctx context.Context, rootCmd *RootCommand) (*wizard.Session, func(), error) {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: rootCmd.DBPath,
		Logger: rootCmd.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create repository: %w", err)
	}

	session, err := wizard.NewSession(ctx, wizard.SessionConfig{
		Repository: repo,
		Logger:     rootCmd.Logger,
	})
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("could not create wizard session: %w", err)
	}

	closer := func() {
		session.Close()
		repo.Close()
	}

	return session, closer, nil
}

// newPrinter returns the printer for the selected output format.
func newPrinter(rootCmd *RootCommand, format string) printer.Printer {
	switch format {
	case "json":
		return printer.NewJSONPrinter(rootCmd.Stdout)
	default: // table
		return printer.NewTablePrinter(rootCmd.Stdout)
	}
}
