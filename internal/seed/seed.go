// Package seed inserts demo data for manual testing: two users with albums,
// pages and addresses, so a cart can be filled and ordered right away.
package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	addressrepo "albumizer/internal/repository/address"
	albumrepo "albumizer/internal/repository/album"
	userrepo "albumizer/internal/repository/user"
)

type userSeed struct {
	Username string
	Password string
	Albums   []albumSeed
	Address  addressrepo.CreateAddressInput
}

type albumSeed struct {
	Title       string
	Description string
	IsPublic    bool
	Pages       int
}

// Apply inserts the demo fixtures. Users are upserted by username, albums and
// addresses are skipped when the user already owns data, so re-running is
// safe.
func Apply(ctx context.Context, users userrepo.Repository, albums albumrepo.Repository, addresses addressrepo.Repository) error {
	fixtures := []userSeed{
		{
			Username: "lisa",
			Password: "lisa12345",
			Albums: []albumSeed{
				{Title: "Holiday Memories", Description: "Two weeks in Lapland", IsPublic: true, Pages: 4},
				{Title: "Empty Draft Album", IsPublic: true, Pages: 0},
			},
			Address: addressrepo.CreateAddressInput{
				Line1: "Kaislapolku 5 A 24", ZipCode: "05100", City: "Tampere", Country: "Finland",
			},
		},
		{
			Username: "antero",
			Password: "antero12345",
			Albums: []albumSeed{
				{Title: "Dad's Birthday", Description: "Surprise party photos", IsPublic: false, Pages: 10},
			},
			Address: addressrepo.CreateAddressInput{
				Line1: "Mannerheimintie 1", ZipCode: "00100", City: "Helsinki", Country: "Finland",
			},
		},
	}

	for _, f := range fixtures {
		if err := applyUser(ctx, users, albums, addresses, f); err != nil {
			return fmt.Errorf("seed user %s: %w", f.Username, err)
		}
	}
	return nil
}

func applyUser(ctx context.Context, users userrepo.Repository, albums albumrepo.Repository, addresses addressrepo.Repository, f userSeed) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u, err := users.Create(ctx, userrepo.CreateUserInput{
		Username:     f.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	owned, err := albums.ListByOwner(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(owned) > 0 {
		return nil
	}

	for _, a := range f.Albums {
		created, err := albums.Create(ctx, albumrepo.CreateAlbumInput{
			OwnerID:     u.ID,
			Title:       a.Title,
			Description: a.Description,
			IsPublic:    a.IsPublic,
		})
		if err != nil {
			return fmt.Errorf("album %q: %w", a.Title, err)
		}
		for page := 1; page <= a.Pages; page++ {
			if err := albums.AddPage(ctx, created.ID, page, fmt.Sprintf("layout-%d", page%3+1)); err != nil {
				return fmt.Errorf("album %q page %d: %w", a.Title, page, err)
			}
		}
	}

	addr := f.Address
	addr.OwnerID = u.ID
	if _, err := addresses.Create(ctx, addr); err != nil {
		return err
	}
	return nil
}
