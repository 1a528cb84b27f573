// Package seed provides helpers to create development and demo data.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"kkapi/internal/auth"
	"kkapi/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSpeaks   int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with fake but realistic data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes seeded data in dependency order.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.SpeakEntry{},
		&models.Tag{},
		&models.APIToken{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// Run seeds users, tags, speak entries and feed posts per the options.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}
	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	tagsByUser := make(map[uint][]*models.Tag, len(users))
	for _, u := range users {
		tags, err := s.seedTags(u)
		if err != nil {
			return err
		}
		tagsByUser[u.ID] = tags
	}
	if err := s.seedSpeaks(users, tagsByUser, opts.NumSpeaks); err != nil {
		return err
	}
	if err := s.seedPosts(opts.NumPosts); err != nil {
		return err
	}
	log.Printf("seeded %d users, %d speaks, %d posts", len(users), opts.NumSpeaks, opts.NumPosts)
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	digest, err := auth.HashPassword("password123")
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:    fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Password:    digest,
			Nickname:    gofakeit.Name(),
			Avatar:      fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
			Description: gofakeit.Sentence(8),
			Link:        gofakeit.URL(),
			Email:       gofakeit.Email(),
			HomePath:    "/about/index",
		}
		users = append(users, user)
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}

	// Every user gets a posting token for the delegated API.
	tokens := make([]*models.APIToken, 0, n)
	for _, u := range users {
		tokens = append(tokens, &models.APIToken{
			UserID: u.ID,
			Title:  models.SpeakTokenTitle,
			Value:  gofakeit.UUID(),
		})
	}
	if err := s.db.Create(&tokens).Error; err != nil {
		return nil, fmt.Errorf("seed tokens: %w", err)
	}
	return users, nil
}

func (s *Seeder) seedTags(user *models.User) ([]*models.Tag, error) {
	names := []string{"Life", "Work", "Reading", "Travel", "Code"}
	colors := []string{"#409EFF", "#67C23A", "#E6A23C", "#F56C6C", "#909399"}
	count := 2 + s.rand.Intn(len(names)-1)
	tags := make([]*models.Tag, 0, count)
	for i := 0; i < count; i++ {
		tags = append(tags, &models.Tag{
			UserID:      user.ID,
			Name:        names[i],
			BgColor:     colors[i],
			OrderNo:     i,
			Description: gofakeit.Sentence(5),
		})
	}
	if err := s.db.Create(&tags).Error; err != nil {
		return nil, fmt.Errorf("seed tags: %w", err)
	}
	return tags, nil
}

func (s *Seeder) seedSpeaks(users []*models.User, tagsByUser map[uint][]*models.Tag, n int) error {
	if len(users) == 0 || n == 0 {
		return nil
	}
	entries := make([]*models.SpeakEntry, 0, n)
	for i := 0; i < n; i++ {
		user := users[s.rand.Intn(len(users))]
		tags := tagsByUser[user.ID]
		entry := &models.SpeakEntry{
			AuthorID:    user.ID,
			Title:       gofakeit.Sentence(3),
			Content:     gofakeit.Paragraph(1, 2, 8, "\n"),
			Visibility:  models.Visibility(s.rand.Intn(3)),
			TagID:       tags[s.rand.Intn(len(tags))].ID,
			Commentable: s.rand.Intn(4) != 0,
		}
		// realistic created_at spread over the past 90 days
		daysBack := s.rand.Intn(90)
		entry.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(s.rand.Intn(24))*time.Hour)
		entries = append(entries, entry)
	}
	if err := s.db.Create(&entries).Error; err != nil {
		return fmt.Errorf("seed speaks: %w", err)
	}
	return nil
}

func (s *Seeder) seedPosts(n int) error {
	if n == 0 {
		return nil
	}
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		published := time.Now().Add(-time.Duration(s.rand.Intn(180)) * 24 * time.Hour)
		posts = append(posts, &models.Post{
			Title:     gofakeit.Sentence(6),
			Link:      gofakeit.URL(),
			Author:    gofakeit.Name(),
			Avatar:    fmt.Sprintf("https://picsum.photos/seed/%s/100/100", gofakeit.UUID()),
			Rule:      "feed",
			Published: published,
			Updated:   published,
		})
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	return nil
}
