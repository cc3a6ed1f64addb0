package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"quill/app/models"
	"quill/app/routes"
)

const (
	userCount     = 5
	locationCount = 4
	postCount     = 30
)

var categories = []struct {
	title string
	slug  string
}{
	{"Travel", "travel"},
	{"Food", "food"},
	{"Technology", "technology"},
	{"Culture", "culture"},
}

// Run populates an empty database with demo users, taxonomy, posts and
// comments. A fixed seed keeps the data set reproducible.
func Run(svc *routes.Services, log *zap.Logger) error {
	gofakeit.Seed(42)

	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user, err := svc.Users.Register(username, gofakeit.Email(), gofakeit.Password(true, true, true, false, false, 12))
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	categoryIDs := make([]int, 0, len(categories))
	for _, c := range categories {
		category := &models.Category{
			Title:       c.title,
			Description: gofakeit.Sentence(8),
			Slug:        c.slug,
			IsPublished: true,
		}
		if err := svc.Taxonomy.CreateCategory(category); err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}

	locationIDs := make([]int, 0, locationCount)
	for i := 0; i < locationCount; i++ {
		location := &models.Location{Name: gofakeit.City(), IsPublished: true}
		if err := svc.Taxonomy.CreateLocation(location); err != nil {
			return fmt.Errorf("seed location: %w", err)
		}
		locationIDs = append(locationIDs, location.ID)
	}

	now := time.Now()
	for i := 0; i < postCount; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		categoryID := categoryIDs[gofakeit.Number(0, len(categoryIDs)-1)]
		post := &models.Post{
			Title:       gofakeit.Sentence(5),
			Text:        gofakeit.Paragraph(2, 4, 10, " "),
			PubDate:     now.AddDate(0, 0, -gofakeit.Number(0, 60)),
			IsPublished: gofakeit.Number(0, 9) > 1,
			CategoryID:  &categoryID,
		}
		if gofakeit.Bool() {
			locationID := locationIDs[gofakeit.Number(0, len(locationIDs)-1)]
			post.LocationID = &locationID
		}
		if err := svc.Posts.Create(author, post); err != nil {
			return fmt.Errorf("seed post: %w", err)
		}
		for j := 0; j < gofakeit.Number(0, 4); j++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := svc.Comments.Add(commenter, post.ID, gofakeit.Sentence(10)); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}
	}

	log.Info("demo data seeded",
		zap.Int("users", userCount),
		zap.Int("categories", len(categories)),
		zap.Int("locations", locationCount),
		zap.Int("posts", postCount))
	return nil
}
