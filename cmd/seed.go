package cmd

import (
	"fmt"
	"log"

	"MoodSync/config"
	"MoodSync/db"
	"MoodSync/model"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo catalog data",
	Long:  `Populate the database with a small demo catalog: genres, songs and mood mappings. Safe to run repeatedly; existing rows are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if err := db.ConnectGormDB(cfg); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseGormDB()

		if err := db.AutoMigrateModels(
			&model.User{},
			&model.Genre{},
			&model.Song{},
			&model.MoodSong{},
			&model.Favorite{},
			&model.Playlist{},
			&model.PlaylistSong{},
			&model.EmotionRecord{},
			&model.Feedback{},
		); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}

		if err := seedCatalog(); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Println("Demo catalog seeded.")
	},
}

type seedSong struct {
	title    string
	artist   string
	album    string
	duration float64
	genre    string
	moods    map[string]float64
}

func seedCatalog() error {
	genres := []string{"Pop", "Rock", "Jazz", "Classical", "Electronic"}
	genreIDs := make(map[string]int64, len(genres))
	for _, name := range genres {
		genre := model.Genre{Name: name}
		if err := db.GormDB.Where(model.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
			return fmt.Errorf("seed genre %q: %w", name, err)
		}
		genreIDs[name] = genre.ID
	}

	songs := []seedSong{
		{"Walking on Sunshine", "Katrina and the Waves", "Walking on Sunshine", 238, "Pop",
			map[string]float64{"happy": 0.95, "energetic": 0.8}},
		{"Here Comes the Sun", "The Beatles", "Abbey Road", 185, "Rock",
			map[string]float64{"happy": 0.9, "calm": 0.6}},
		{"Clair de Lune", "Claude Debussy", "Suite bergamasque", 300, "Classical",
			map[string]float64{"calm": 0.95, "sad": 0.5}},
		{"So What", "Miles Davis", "Kind of Blue", 562, "Jazz",
			map[string]float64{"calm": 0.85, "focused": 0.7}},
		{"Someone Like You", "Adele", "21", 285, "Pop",
			map[string]float64{"sad": 0.95}},
		{"Strobe", "deadmau5", "For Lack of a Better Name", 634, "Electronic",
			map[string]float64{"focused": 0.9, "energetic": 0.6}},
		{"Thunderstruck", "AC/DC", "The Razors Edge", 292, "Rock",
			map[string]float64{"energetic": 0.95, "angry": 0.6}},
		{"Weightless", "Marconi Union", "Weightless", 480, "Electronic",
			map[string]float64{"calm": 0.9, "sleepy": 0.85}},
	}

	for _, s := range songs {
		genreID := genreIDs[s.genre]
		song := model.Song{
			Title:    s.title,
			Artist:   s.artist,
			Album:    s.album,
			Duration: s.duration,
			GenreID:  &genreID,
		}
		if err := db.GormDB.
			Where(map[string]interface{}{"title": s.title, "artist": s.artist}).
			FirstOrCreate(&song).Error; err != nil {
			return fmt.Errorf("seed song %q: %w", s.title, err)
		}

		for mood, score := range s.moods {
			mapping := model.MoodSong{Mood: mood, SongID: song.ID, RelevanceScore: score}
			if err := db.GormDB.
				Where(model.MoodSong{Mood: mood, SongID: song.ID}).
				FirstOrCreate(&mapping).Error; err != nil {
				return fmt.Errorf("seed mood %q for song %q: %w", mood, s.title, err)
			}
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
