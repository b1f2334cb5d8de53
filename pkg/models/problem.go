package models

// Problem is a catalog entry. The catalog is read-only at runtime and gets
// seeded through the importer.
type Problem struct {
	Slug               string `json:"slug" db:"slug"`
	Title              string `json:"title" db:"title"`
	OfficialDifficulty string `json:"official_difficulty" db:"official_difficulty"`
	Tags               Tags   `json:"tags" db:"tags"`
}
