package seeder

import "portfolio-api/internal/resource"

// Defaults seeds the collections that need no uploaded file. Projects and
// certifications reference objects in the store, so starter records for
// them would carry dangling keys.
func Defaults() []Seeder {
	return []Seeder{
		SampleContentSeeder{
			Def: resource.Skills,
			Docs: []map[string]any{
				{"title": "Go"},
				{"title": "TypeScript"},
				{"title": "PostgreSQL"},
				{"title": "Docker"},
			},
		},
		SampleContentSeeder{
			Def: resource.BlogPosts,
			Docs: []map[string]any{
				{
					"title":   "Hello, world",
					"content": "First post. More to come.",
					"image":   "https://placehold.co/600x400",
				},
			},
		},
	}
}
