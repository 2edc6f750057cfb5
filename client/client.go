// Package client is the data layer for the portfolio API: typed calls per
// resource, bearer-token attachment on mutations, and a local list cache
// that is invalidated after every successful mutation. The cache is only a
// mirror; the server is always authoritative.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	skillsKey   = "skills"
	projectsKey = "projects"
	certsKey    = "certs"
	blogsKey    = "blogs"
)

type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	cache   *gocache.Cache
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = gocache.New(ttl, 2*ttl) }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError carries a non-2xx response: the status and the raw body text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// Login authenticates against the admin login endpoint and keeps the issued
// token for subsequent mutating calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", err
	}
	c.token = res.Token
	return res.Token, nil
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Skills(ctx context.Context) ([]Skill, error) {
	return listResource[Skill](ctx, c, "/api/skills", skillsKey)
}

func (c *Client) AddSkill(ctx context.Context, s Skill) (Skill, error) {
	return mutateResource[Skill](ctx, c, http.MethodPost, "/api/skills/admin", "skill", skillsKey, s)
}

func (c *Client) EditSkill(ctx context.Context, id string, s Skill) (Skill, error) {
	return mutateResource[Skill](ctx, c, http.MethodPut, "/api/skills/admin/"+id, "skill", skillsKey, s)
}

func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "/api/skills/admin/"+id, skillsKey)
}

func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	return listResource[Project](ctx, c, "/api/projects", projectsKey)
}

func (c *Client) AddProject(ctx context.Context, p Project) (Project, error) {
	return mutateResource[Project](ctx, c, http.MethodPost, "/api/projects/admin", "project", projectsKey, p)
}

func (c *Client) EditProject(ctx context.Context, id string, p Project) (Project, error) {
	return mutateResource[Project](ctx, c, http.MethodPut, "/api/projects/admin/"+id, "project", projectsKey, p)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "/api/projects/admin/"+id, projectsKey)
}

func (c *Client) Certifications(ctx context.Context) ([]Certification, error) {
	return listResource[Certification](ctx, c, "/api/certs", certsKey)
}

func (c *Client) AddCertification(ctx context.Context, cert Certification) (Certification, error) {
	return mutateResource[Certification](ctx, c, http.MethodPost, "/api/certs/admin", "cert", certsKey, cert)
}

func (c *Client) EditCertification(ctx context.Context, id string, cert Certification) (Certification, error) {
	return mutateResource[Certification](ctx, c, http.MethodPut, "/api/certs/admin/"+id, "cert", certsKey, cert)
}

func (c *Client) DeleteCertification(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "/api/certs/admin/"+id, certsKey)
}

func (c *Client) Blogs(ctx context.Context) ([]BlogPost, error) {
	return listResource[BlogPost](ctx, c, "/api/blogs", blogsKey)
}

func (c *Client) AddBlog(ctx context.Context, b BlogPost) (BlogPost, error) {
	return mutateResource[BlogPost](ctx, c, http.MethodPost, "/api/blogs/admin", "blog", blogsKey, b)
}

func (c *Client) EditBlog(ctx context.Context, id string, b BlogPost) (BlogPost, error) {
	return mutateResource[BlogPost](ctx, c, http.MethodPut, "/api/blogs/admin/"+id, "blog", blogsKey, b)
}

func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.deleteResource(ctx, "/api/blogs/admin/"+id, blogsKey)
}

// UploadFile sends one file through the reference proxy and returns the
// { key, url } pair to attach to a record.
func (c *Client) UploadFile(ctx context.Context, folder, filename, contentType string, r io.Reader) (FileRef, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	hdr.Set("Content-Type", contentType)

	part, err := w.CreatePart(hdr)
	if err != nil {
		return FileRef{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return FileRef{}, err
	}
	if err := w.Close(); err != nil {
		return FileRef{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/s3/"+folder, &buf)
	if err != nil {
		return FileRef{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.attachToken(req)

	body, err := c.send(req)
	if err != nil {
		return FileRef{}, err
	}

	var ref FileRef
	if err := json.Unmarshal(body, &ref); err != nil {
		return FileRef{}, err
	}
	return ref, nil
}

func (c *Client) DeleteFile(ctx context.Context, folder, name string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/s3/"+folder+"/"+name, nil)
	return err
}

func listResource[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	if cached, ok := c.cache.Get(key); ok {
		if items, ok := cached.([]T); ok {
			return items, nil
		}
	}

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	envelope := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if raw, ok := envelope[key]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
	}

	c.cache.Set(key, items, gocache.DefaultExpiration)
	return items, nil
}

func mutateResource[T any](ctx context.Context, c *Client, method, path, singular, listKey string, payload T) (T, error) {
	var zero T

	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return zero, err
	}

	envelope := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return zero, err
	}

	var out T
	if raw, ok := envelope[singular]; ok {
		if err := json.Unmarshal(raw, &out); err != nil {
			return zero, err
		}
	}

	c.cache.Delete(listKey)
	return out, nil
}

func (c *Client) deleteResource(ctx context.Context, path, listKey string) error {
	if _, err := c.do(ctx, http.MethodDelete, path, nil); err != nil {
		return err
	}
	c.cache.Delete(listKey)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachToken(req)

	return c.send(req)
}

func (c *Client) attachToken(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{StatusCode: res.StatusCode, Body: string(body)}
	}
	return body, nil
}
