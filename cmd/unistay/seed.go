package main

import (
	"fmt"

	"github.com/Lalith0024/unistay/internal/roomstore"
	"github.com/Lalith0024/unistay/pkg/store"
	"github.com/spf13/cobra"
)

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the room inventory with the stock rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeDB, err := c.openStore()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := s.Rooms.Seed(cmd.Context(), roomstore.DefaultRooms())
			if err != nil {
				c.logger.Error(err, "seeding rooms")
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d rooms\n", n)
			return nil
		},
	}
}

// openStore opens the database and runs the migrations.
func (c *cli) openStore() (*store.Store, func(), error) {
	db, err := c.openDB()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(db, store.DBTypeSQLite, c.slogger(), store.Config{
		TokenSecret: c.cfg.Token.Secret,
		TokenTTL:    c.cfg.Token.TTL,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return s, func() { _ = db.Close() }, nil
}
