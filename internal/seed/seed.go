// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	_ "embed"
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed categories.yml
var categoryFixtures []byte

// Options controls how much demo data gets generated.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	// Password is assigned to every generated account; empty means
	// "password1".
	Password string
}

// DefaultOptions returns a small but lively demo dataset.
func DefaultOptions() Options {
	return Options{
		Users:           8,
		PostsPerUser:    4,
		CommentsPerPost: 3,
		Password:        "password1",
	}
}

type categoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type fixtureFile struct {
	Categories []categoryFixture `yaml:"categories"`
}

// Categories inserts the built-in category fixtures, skipping names that
// already exist. Returns the full category list afterwards.
func Categories(db *gorm.DB) ([]models.Category, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(categoryFixtures, &file); err != nil {
		return nil, fmt.Errorf("parse category fixtures: %w", err)
	}

	for _, fixture := range file.Categories {
		category := models.Category{
			Name:        fixture.Name,
			Slug:        slug.Make(fixture.Name),
			Description: fixture.Description,
		}
		err := db.Where("name = ?", fixture.Name).FirstOrCreate(&category).Error
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", fixture.Name, err)
		}
	}

	var categories []models.Category
	if err := db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Run fills the database with fake users, posts, and comments on top of
// the category fixtures.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	categories, err := Categories(db)
	if err != nil {
		return err
	}

	password := opts.Password
	if password == "" {
		password = "password1"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: string(hash),
			FullName: gofakeit.Name(),
			Role:     models.RoleUser,
			Active:   true,
		}
		// Sprinkle in some authors so the content surfaces have users.
		if i%3 == 0 {
			user.Role = models.RoleAuthor
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		for j := 0; j < opts.PostsPerUser; j++ {
			title := gofakeit.Sentence(r.Intn(5) + 3)
			post := &models.Post{
				Title:       title,
				Slug:        slug.Make(title),
				Description: gofakeit.Sentence(10),
				Content:     gofakeit.Paragraph(3, 5, 12, "\n\n"),
				AuthorID:    user.ID,
				Published:   r.Intn(5) != 0,
				Views:       uint(r.Intn(500)),
				CreatedAt:   time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
			}
			if len(categories) > 0 && r.Intn(4) != 0 {
				id := categories[r.Intn(len(categories))].ID
				post.CategoryID = &id
			}
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for k := 0; k < r.Intn(opts.CommentsPerPost+1); k++ {
				at := post.CreatedAt.Add(time.Duration(r.Intn(72)) * time.Hour)
				comment := &models.Comment{
					PostID:    post.ID,
					UserID:    user.ID,
					Content:   gofakeit.Sentence(r.Intn(12) + 3),
					CreatedAt: at,
					UpdatedAt: at,
				}
				if err := db.Create(comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	return nil
}
