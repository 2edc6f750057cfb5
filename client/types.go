package client

// Record types mirror the wire contract of the API. IDs are assigned by the
// server; leave them empty on add calls.

type Skill struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
}

type Project struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	FileKey     string   `json:"fileKey"`
	FileURL     string   `json:"fileUrl"`
	Skills      []string `json:"skills"`
}

type Certification struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  []string `json:"description"`
	DateAcquired string   `json:"dateAcquired"`
	FileKey      string   `json:"fileKey"`
	FileURL      string   `json:"fileUrl"`
}

type BlogPost struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	DateCreated string `json:"dateCreated,omitempty"`
}

// FileRef is the stored-object reference returned by the upload proxy.
type FileRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
