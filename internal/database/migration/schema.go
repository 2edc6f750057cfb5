package migration

// Default is the migration set for the portfolio collections. Each
// collection is a table of JSON documents ordered by insertion time.
var Default = []Migration{
	{
		Version: 1,
		Name:    "create_skills",
		SQL: `CREATE TABLE IF NOT EXISTS skills (
			id         uuid PRIMARY KEY,
			doc        jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	},
	{
		Version: 2,
		Name:    "create_projects",
		SQL: `CREATE TABLE IF NOT EXISTS projects (
			id         uuid PRIMARY KEY,
			doc        jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	},
	{
		Version: 3,
		Name:    "create_certifications",
		SQL: `CREATE TABLE IF NOT EXISTS certifications (
			id         uuid PRIMARY KEY,
			doc        jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	},
	{
		Version: 4,
		Name:    "create_blog_posts",
		SQL: `CREATE TABLE IF NOT EXISTS blog_posts (
			id         uuid PRIMARY KEY,
			doc        jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	},
}
