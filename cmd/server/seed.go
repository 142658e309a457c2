package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
)

type seedUser struct {
	firstName string
	lastName  string
	email     string
	password  string
	role      domain.Role
}

type seedBook struct {
	title       string
	author      string
	description string
	category    string
	copies      int
}

type seedAuthor struct {
	name        string
	bio         string
	nationality string
	birthDate   string
}

var seedUsers = []seedUser{
	{"Admin", "User", "admin@example.com", "123456", domain.RoleAdministrator},
	{"John", "Doe", "john@example.com", "123456", domain.RoleMember},
	{"Jane", "Doe", "jane@example.com", "123456", domain.RoleMember},
}

var seedAuthors = []seedAuthor{
	{
		name:        "F. Scott Fitzgerald",
		bio:         "American novelist of the Jazz Age.",
		nationality: "American",
		birthDate:   "1896-09-24",
	},
	{
		name:        "George Orwell",
		bio:         "English novelist and essayist.",
		nationality: "British",
		birthDate:   "1903-06-25",
	},
	{
		name:        "Jane Austen",
		bio:         "English novelist known for her social commentary.",
		nationality: "British",
		birthDate:   "1775-12-16",
	},
}

var seedBooks = []seedBook{
	{"The Great Gatsby", "F. Scott Fitzgerald", "A portrait of the Jazz Age.", "Fiction", 5},
	{"1984", "George Orwell", "A dystopian story of surveillance.", "Dystopian", 3},
	{"Animal Farm", "George Orwell", "A satirical allegorical novella.", "Satire", 4},
	{"Pride and Prejudice", "Jane Austen", "A classic novel of manners.", "Romance", 2},
}

// runSeed replaces the database contents with the sample data set.
func runSeed() error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			app.logger.Error("failed to close application resources", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear in FK order so the inserts below start from a clean slate.
	for _, table := range []string{"borrows", "books", "authors", "users"} {
		if _, err := app.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear table %q: %w", table, err)
		}
	}

	for _, su := range seedUsers {
		user, err := domain.NewUser(su.firstName, su.lastName, su.email, su.password)
		if err != nil {
			return fmt.Errorf("invalid seed user %q: %w", su.email, err)
		}
		user.Role = su.role

		hashed, err := app.passwordHasher.Hash(su.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", su.email, err)
		}
		user.HashedPassword = hashed

		if err := app.userStore.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", su.email, err)
		}
		app.logger.Info("seeded user", "email", su.email, "role", user.Role)
	}

	authorIDs := make(map[string]*domain.Author, len(seedAuthors))
	for _, sa := range seedAuthors {
		birthDate, err := time.Parse("2006-01-02", sa.birthDate)
		if err != nil {
			return fmt.Errorf("invalid seed birth date for %q: %w", sa.name, err)
		}

		author, err := domain.NewAuthor(sa.name, sa.bio, sa.nationality, &birthDate)
		if err != nil {
			return fmt.Errorf("invalid seed author %q: %w", sa.name, err)
		}

		if err := app.authorStore.Create(ctx, author); err != nil {
			return fmt.Errorf("failed to seed author %q: %w", sa.name, err)
		}
		authorIDs[sa.name] = author
		app.logger.Info("seeded author", "name", sa.name)
	}

	for _, sb := range seedBooks {
		author, ok := authorIDs[sb.author]
		if !ok {
			return fmt.Errorf("seed book %q references unknown author %q", sb.title, sb.author)
		}

		book, err := domain.NewBook(sb.title, author.ID, sb.description, sb.category, sb.copies)
		if err != nil {
			return fmt.Errorf("invalid seed book %q: %w", sb.title, err)
		}

		if err := app.bookStore.Create(ctx, book); err != nil {
			return fmt.Errorf("failed to seed book %q: %w", sb.title, err)
		}
		app.logger.Info("seeded book", "title", sb.title, "copies", sb.copies)
	}

	app.logger.Info("seed complete",
		"users", len(seedUsers),
		"authors", len(seedAuthors),
		"books", len(seedBooks))
	return nil
}
