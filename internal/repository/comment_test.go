package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"soulverse/internal/models"
	"soulverse/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCommentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mbti := "INFP"
	comment := &models.Comment{UserID: 1, Title: "hello", Text: "world", Personalities: models.Personalities{MBTI: &mbti}}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "comments" ("user_id","title","text","personality_mbti","personality_enneagram","personality_zodiac","created_at","updated_at")`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), comment)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), comment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_ListSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT comments.*, (SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id) AS likes_count FROM "comments" WHERE comments.personality_mbti IS NOT NULL ORDER BY comments.created_at DESC, comments.id DESC LIMIT $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "likes_count"}).AddRow(1, "a", 4))

	comments, err := repo.List(context.Background(), ListCommentsQuery{
		Sort:          SortRecent,
		Personalities: []string{"MBTI"},
		Limit:         10,
	})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 4, comments[0].LikesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type listFixture struct {
	db       *gorm.DB
	repo     CommentRepository
	likes    LikeRepository
	users    []*models.Profile
	comments map[string]*models.Comment
}

// newListFixture seeds three comments an hour apart:
// "old" (mbti, enneagram; 2 likes), "mid" (mbti, zodiac; 0 likes), "new" (enneagram; 1 like).
func newListFixture(t *testing.T) *listFixture {
	db := testutil.NewSQLiteDB(t)
	f := &listFixture{
		db:       db,
		repo:     NewCommentRepository(db),
		likes:    NewLikeRepository(db),
		comments: map[string]*models.Comment{},
	}
	for _, name := range []string{"Ann", "Bo", "Cy"} {
		f.users = append(f.users, testutil.CreateProfile(t, db, name))
	}

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		key  string
		p    models.Personalities
		at   time.Time
		like []int
	}{
		{"old", models.Personalities{MBTI: testutil.StrPtr("INTJ"), Enneagram: testutil.StrPtr("5w4")}, base, []int{0, 1}},
		{"mid", models.Personalities{MBTI: testutil.StrPtr("ENFP"), Zodiac: testutil.StrPtr("Leo")}, base.Add(time.Hour), nil},
		{"new", models.Personalities{Enneagram: testutil.StrPtr("2w1")}, base.Add(2 * time.Hour), []int{2}},
	}
	for _, s := range seed {
		c := &models.Comment{
			UserID:        f.users[0].ID,
			Title:         s.key,
			Text:          s.key + " text",
			Personalities: s.p,
			CreatedAt:     s.at,
		}
		require.NoError(t, f.repo.Create(context.Background(), c))
		for _, u := range s.like {
			_, err := f.likes.Like(context.Background(), f.users[u].ID, c.ID)
			require.NoError(t, err)
		}
		f.comments[s.key] = c
	}
	return f
}

func titles(comments []*models.Comment) []string {
	out := make([]string, 0, len(comments))
	for _, c := range comments {
		out = append(out, c.Title)
	}
	return out
}

func TestCommentRepository_ListSortsByLikesByDefault(t *testing.T) {
	f := newListFixture(t)

	comments, err := f.repo.List(context.Background(), ListCommentsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new", "mid"}, titles(comments))
	assert.Equal(t, []int{2, 1, 0}, []int{comments[0].LikesCount, comments[1].LikesCount, comments[2].LikesCount})

	for _, sort := range []string{"oldest", "RECENT", " Recent "} {
		other, err := f.repo.List(context.Background(), ListCommentsQuery{Sort: sort})
		require.NoError(t, err)
		assert.Equal(t, titles(comments), titles(other), sort)
	}
}

func TestCommentRepository_ListSortsRecent(t *testing.T) {
	f := newListFixture(t)

	comments, err := f.repo.List(context.Background(), ListCommentsQuery{Sort: SortRecent})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, titles(comments))
	for i := 1; i < len(comments); i++ {
		assert.True(t, comments[i-1].CreatedAt.After(comments[i].CreatedAt))
	}
}

func TestCommentRepository_ListTieBreaksOnCreatedAt(t *testing.T) {
	f := newListFixture(t)
	_, err := f.likes.Like(context.Background(), f.users[0].ID, f.comments["new"].ID)
	require.NoError(t, err)

	// "old" and "new" both have two likes now.
	comments, err := f.repo.List(context.Background(), ListCommentsQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old", "mid"}, titles(comments))
}

func TestCommentRepository_ListFiltersPersonalities(t *testing.T) {
	f := newListFixture(t)

	tests := []struct {
		name          string
		personalities []string
		expected      []string
	}{
		{"none", nil, []string{"old", "new", "mid"}},
		{"mbti", []string{"mbti"}, []string{"old", "mid"}},
		{"enneagram", []string{"enneagram"}, []string{"old", "new"}},
		{"mbti and zodiac", []string{"mbti", "zodiac"}, []string{"mid"}},
		{"case and blanks", []string{" MBTI ", "", "mbti"}, []string{"old", "mid"}},
		{"all three", []string{"mbti", "enneagram", "zodiac"}, []string{}},
		{"unknown", []string{"socionics"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments, err := f.repo.List(context.Background(), ListCommentsQuery{Personalities: tt.personalities})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, titles(comments))
		})
	}
}

func TestCommentRepository_ListPaginates(t *testing.T) {
	f := newListFixture(t)

	page, err := f.repo.List(context.Background(), ListCommentsQuery{Sort: SortRecent, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid"}, titles(page))

	rest, err := f.repo.List(context.Background(), ListCommentsQuery{Sort: SortRecent, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, titles(rest))

	skipped, err := f.repo.List(context.Background(), ListCommentsQuery{Sort: SortRecent, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "old"}, titles(skipped))
}

func TestCommentRepository_GetByIDIncludesLikes(t *testing.T) {
	f := newListFixture(t)

	c, err := f.repo.GetByID(context.Background(), f.comments["old"].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.LikesCount)
	require.NotNil(t, c.Personalities.Enneagram)
	assert.Equal(t, "5w4", *c.Personalities.Enneagram)
	assert.Nil(t, c.Personalities.Zodiac)

	ok, err := f.repo.Exists(context.Background(), 9999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLikeRepository_SQLiteRoundTrip(t *testing.T) {
	f := newListFixture(t)
	ctx := context.Background()
	commentID := f.comments["mid"].ID
	userID := f.users[1].ID

	_, err := f.likes.Like(ctx, userID, commentID)
	require.NoError(t, err)

	_, err = f.likes.Like(ctx, userID, commentID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	require.NoError(t, f.likes.Unlike(ctx, userID, commentID))
	assert.ErrorIs(t, f.likes.Unlike(ctx, userID, commentID), ErrLikeNotFound)

	n, err := f.likes.CountByComment(ctx, commentID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
