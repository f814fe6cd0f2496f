package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func TestListByMoodOrdersByRelevanceThenID(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewGormMoodSongRepository(db)

	// The ranking contract lives in this ORDER BY: relevance descending,
	// equal scores in insertion order. A changed clause fails the match.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `mood_songs` WHERE mood = ? ORDER BY relevance_score DESC, id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "mood", "song_id", "relevance_score"}).
			AddRow(int64(1), "happy", int64(11), 0.9).
			AddRow(int64(2), "happy", int64(12), 0.6).
			AddRow(int64(3), "happy", int64(13), 0.6).
			AddRow(int64(4), "happy", int64(14), 0.3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `songs`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "artist"}).
			AddRow(int64(11), "A", "X").
			AddRow(int64(12), "B", "X").
			AddRow(int64(13), "C", "Y").
			AddRow(int64(14), "D", "Y"))

	got, err := repo.ListByMood(context.Background(), "happy", 0, 20)
	if err != nil {
		t.Fatalf("ListByMood error: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(got))
	}
	wantScores := []float64{0.9, 0.6, 0.6, 0.3}
	wantIDs := []int64{1, 2, 3, 4}
	for i := range got {
		if got[i].RelevanceScore != wantScores[i] || got[i].ID != wantIDs[i] {
			t.Errorf("row %d: got (id=%d, score=%v), want (id=%d, score=%v)",
				i, got[i].ID, got[i].RelevanceScore, wantIDs[i], wantScores[i])
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCountByMoodFiltersByMood(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewGormMoodSongRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `mood_songs` WHERE mood = ?")).
		WithArgs("happy").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(int64(4)))

	count, err := repo.CountByMood(context.Background(), "happy")
	if err != nil {
		t.Fatalf("CountByMood error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected count 4, got %d", count)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListMoodsAggregatesOverExistingLinks(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewGormMoodSongRepository(db)

	// Aggregating with GROUP BY over mood_songs itself is what keeps moods
	// without links out of the result: there is no row to group.
	mock.ExpectQuery("SELECT mood, COUNT\\(\\*\\) AS count FROM `mood_songs` GROUP BY .mood. ORDER BY count DESC, mood ASC").
		WillReturnRows(sqlmock.NewRows([]string{"mood", "count"}).
			AddRow("happy", int64(3)).
			AddRow("calm", int64(1)))

	counts, err := repo.ListMoods(context.Background())
	if err != nil {
		t.Fatalf("ListMoods error: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 moods, got %d", len(counts))
	}
	if counts[0].Mood != "happy" || counts[0].Count != 3 {
		t.Errorf("expected most populated mood first, got %+v", counts[0])
	}
	for _, c := range counts {
		if c.Count == 0 {
			t.Errorf("mood %q has a zero count", c.Mood)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
