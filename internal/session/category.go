package session

// Category classifies managed applications and sets the coin exchange rate
// for timed access.
type Category string

const (
	Game   Category = "game"
	Music  Category = "music"
	Social Category = "social"
)

// AllCategories returns the categories in display order.
func AllCategories() []Category {
	return []Category{Game, Music, Social}
}

// MinutesPerCoin returns the fixed exchange rate for the category.
// Social access is deliberately the worst deal.
func (c Category) MinutesPerCoin() int {
	switch c {
	case Game:
		return 15
	case Music:
		return 30
	case Social:
		return 5
	default:
		return 0
	}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case Game:
		return "Games"
	case Music:
		return "Music"
	case Social:
		return "Social"
	default:
		return string(c)
	}
}

// Icon returns the display icon for the category.
func (c Category) Icon() string {
	switch c {
	case Game:
		return "🎮"
	case Music:
		return "🎵"
	case Social:
		return "💬"
	default:
		return "✦"
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case Game, Music, Social:
		return true
	}
	return false
}
