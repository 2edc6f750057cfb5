package resource

import "time"

// Skills, Projects, Certifications, and BlogPosts are the four independent
// collections backing the portfolio site. Route prefixes match the plural
// names except certifications, which the wire contract shortens to "certs".

var Skills = Definition{
	Singular: "skill",
	Plural:   "skills",
	Table:    "skills",
	Fields: []Field{
		{Name: "title", Kind: KindString, Required: true},
	},
}

var Projects = Definition{
	Singular:   "project",
	Plural:     "projects",
	Table:      "projects",
	FileBacked: true,
	Fields: []Field{
		{Name: "title", Kind: KindString, Required: true},
		{Name: "description", Kind: KindString, Required: true},
		{Name: "link", Kind: KindString, Required: true},
		{Name: "fileKey", Kind: KindString, Required: true},
		{Name: "fileUrl", Kind: KindString, Required: true},
		{Name: "skills", Kind: KindStringList, Required: true},
	},
}

var Certifications = Definition{
	Singular:   "cert",
	Plural:     "certs",
	Table:      "certifications",
	FileBacked: true,
	Fields: []Field{
		{Name: "title", Kind: KindString, Required: true},
		{Name: "description", Kind: KindStringList, Required: true},
		{Name: "dateAcquired", Kind: KindDate, Required: true},
		{Name: "fileKey", Kind: KindString, Required: true},
		{Name: "fileUrl", Kind: KindString, Required: true},
	},
}

var BlogPosts = Definition{
	Singular: "blog",
	Plural:   "blogs",
	Table:    "blog_posts",
	Fields: []Field{
		{Name: "title", Kind: KindString, Required: true},
		{Name: "content", Kind: KindString, Required: true},
		{Name: "image", Kind: KindString, Required: true},
		{Name: "dateCreated", Kind: KindTimestamp, Required: false},
	},
	Defaults: func(doc map[string]any) {
		if _, ok := doc["dateCreated"]; !ok {
			doc["dateCreated"] = time.Now().UTC().Format(time.RFC3339)
		}
	},
}

// All lists every definition in route-registration order.
var All = []Definition{Skills, Projects, Certifications, BlogPosts}
