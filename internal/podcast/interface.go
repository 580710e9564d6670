package podcast

import "context"

// Generator runs the full recording-to-podcast pipeline for one file.
type Generator interface {
	GenerateFromFile(ctx context.Context, audioPath, title string) (Podcast, error)
}

// Store persists generated podcasts for listing and playback.
type Store interface {
	Insert(ctx context.Context, p Podcast) error
	List(ctx context.Context) ([]Podcast, error)
	Get(ctx context.Context, id string) (Podcast, error)
}
