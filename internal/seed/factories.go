// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"time"

	"soulverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var (
	mbtiTypes = []string{
		"INTJ", "INTP", "ENTJ", "ENTP", "INFJ", "INFP", "ENFJ", "ENFP",
		"ISTJ", "ISFJ", "ESTJ", "ESFJ", "ISTP", "ISFP", "ESTP", "ESFP",
	}
	enneagramTypes = []string{
		"1w2", "1w9", "2w1", "2w3", "3w2", "3w4", "4w3", "4w5", "5w4",
		"5w6", "6w5", "6w7", "7w6", "7w8", "8w7", "8w9", "9w8", "9w1",
	}
	zodiacSigns = []string{
		"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
		"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
	}
	instinctVariants = []string{"sp/so", "sp/sx", "so/sp", "so/sx", "sx/sp", "sx/so"}
	socionicsTypes   = []string{"ILE", "SEI", "ESE", "LII", "EIE", "LSI", "SLE", "IEI", "SEE", "ILI", "LIE", "ESI", "LSE", "EII", "IEE", "SLI"}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	// maxDays spreads created_at over the past maxDays days.
	maxDays int
}

// NewFactory creates a Factory bound to db. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64, maxDays int) *Factory {
	if maxDays <= 0 {
		maxDays = 30
	}
	return &Factory{db: db, faker: gofakeit.New(seed), maxDays: maxDays}
}

// BuildProfile constructs a profile without persisting it.
func (f *Factory) BuildProfile() *models.Profile {
	return &models.Profile{
		Name:        f.faker.Name(),
		Description: f.faker.Paragraph(1, 3, 12, " "),
		MBTI:        f.faker.RandomString(mbtiTypes),
		Enneagram:   f.faker.RandomString(enneagramTypes),
		Variant:     f.faker.RandomString(instinctVariants),
		Tritype:     f.tritype(),
		Socionics:   f.faker.RandomString(socionicsTypes),
		Sloan:       f.sloan(),
		Psyche:      f.psyche(),
		Image:       fmt.Sprintf("https://picsum.photos/seed/%s/400/400", f.faker.UUID()),
	}
}

// BuildComment constructs a comment by author tagged with a random non-empty set of
// personality systems.
func (f *Factory) BuildComment(author *models.Profile) *models.Comment {
	c := &models.Comment{
		UserID: author.ID,
		Title:  f.faker.Sentence(5),
		Text:   f.faker.Paragraph(1, 2, 10, " "),
	}

	for c.Personalities.Empty() {
		if f.faker.Bool() {
			c.Personalities.MBTI = strPtr(f.faker.RandomString(mbtiTypes))
		}
		if f.faker.Bool() {
			c.Personalities.Enneagram = strPtr(f.faker.RandomString(enneagramTypes))
		}
		if f.faker.Bool() {
			c.Personalities.Zodiac = strPtr(f.faker.RandomString(zodiacSigns))
		}
	}

	created := time.Now().
		Add(-time.Duration(f.faker.Number(0, f.maxDays-1)) * 24 * time.Hour).
		Add(-time.Duration(f.faker.Number(0, 23*60)) * time.Minute)
	c.CreatedAt = created
	c.UpdatedAt = created
	return c
}

// CreateProfiles persists n generated profiles.
func (f *Factory) CreateProfiles(n int) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0, n)
	for i := 0; i < n; i++ {
		profiles = append(profiles, f.BuildProfile())
	}
	if len(profiles) == 0 {
		return profiles, nil
	}
	if err := f.db.CreateInBatches(profiles, 100).Error; err != nil {
		return nil, fmt.Errorf("create profiles: %w", err)
	}
	return profiles, nil
}

// CreateComments persists n comments with authors drawn from profiles.
func (f *Factory) CreateComments(profiles []*models.Profile, n int) ([]*models.Comment, error) {
	if len(profiles) == 0 || n <= 0 {
		return []*models.Comment{}, nil
	}
	comments := make([]*models.Comment, 0, n)
	for i := 0; i < n; i++ {
		author := profiles[f.faker.Number(0, len(profiles)-1)]
		comments = append(comments, f.BuildComment(author))
	}
	if err := f.db.CreateInBatches(comments, 100).Error; err != nil {
		return nil, fmt.Errorf("create comments: %w", err)
	}
	return comments, nil
}

// CreateLikes gives each comment up to maxPerComment likes from distinct profiles and
// returns the number of likes stored.
func (f *Factory) CreateLikes(profiles []*models.Profile, comments []*models.Comment, maxPerComment int) (int, error) {
	if maxPerComment > len(profiles) {
		maxPerComment = len(profiles)
	}
	if maxPerComment <= 0 {
		return 0, nil
	}

	var likes []*models.CommentLike
	for _, c := range comments {
		n := f.faker.Number(0, maxPerComment)
		order := f.faker.Rand.Perm(len(profiles))
		for _, idx := range order[:n] {
			likes = append(likes, &models.CommentLike{UserID: profiles[idx].ID, CommentID: c.ID})
		}
	}
	if len(likes) == 0 {
		return 0, nil
	}
	if err := f.db.CreateInBatches(likes, 500).Error; err != nil {
		return 0, fmt.Errorf("create likes: %w", err)
	}
	return len(likes), nil
}

func (f *Factory) tritype() int {
	heads := [3][]int{{1, 8, 9}, {2, 3, 4}, {5, 6, 7}}
	order := f.faker.Rand.Perm(3)
	t := 0
	for _, i := range order {
		group := heads[i]
		t = t*10 + group[f.faker.Number(0, len(group)-1)]
	}
	return t
}

func (f *Factory) sloan() string {
	pairs := [5]string{"SR", "CL", "OU", "AE", "NI"}
	out := make([]byte, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p[f.faker.Number(0, 1)])
	}
	return string(out)
}

func (f *Factory) psyche() string {
	order := f.faker.Rand.Perm(4)
	aspects := "VLEF"
	out := make([]byte, 0, len(order))
	for _, i := range order {
		out = append(out, aspects[i])
	}
	return string(out)
}

func strPtr(s string) *string {
	return &s
}
