package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio-api/client"

	"github.com/joho/godotenv"
)

// portfolioctl is a thin admin console over the client package: list, add,
// edit and delete portfolio records, and push files through the upload
// proxy.
func main() {
	baseURL := flag.String("base-url", "http://localhost:4992", "API base URL")
	token := flag.String("token", "", "bearer token (skips login)")
	email := flag.String("email", "", "admin email for login")
	password := flag.String("password", "", "admin password for login")

	res := flag.String("resource", "", "skills|projects|certs|blogs")
	op := flag.String("op", "list", "list|add|edit|delete|upload")
	id := flag.String("id", "", "record id for edit/delete")

	title := flag.String("title", "", "record title")
	description := flag.String("description", "", "description (certs: semicolon-separated bullets)")
	link := flag.String("link", "", "project link")
	content := flag.String("content", "", "blog content")
	image := flag.String("image", "", "blog image URL")
	date := flag.String("date", "", "certification date acquired (YYYY-MM-DD)")
	skills := flag.String("skills", "", "project skills, comma-separated")
	fileKey := flag.String("file-key", "", "stored object key")
	fileURL := flag.String("file-url", "", "stored object URL")

	folder := flag.String("folder", "", "upload folder: certs|projects")
	file := flag.String("file", "", "path of the file to upload")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*baseURL)
	switch {
	case *token != "":
		c.SetToken(*token)
	case *email != "" && *password != "":
		if _, err := c.Login(ctx, *email, *password); err != nil {
			log.Fatalf("login failed: %v", err)
		}
	}

	if *op == "upload" {
		upload(ctx, c, *folder, *file)
		return
	}

	switch *res {
	case "skills":
		runSkills(ctx, c, *op, *id, client.Skill{Title: *title})
	case "projects":
		runProjects(ctx, c, *op, *id, client.Project{
			Title:       *title,
			Description: *description,
			Link:        *link,
			FileKey:     *fileKey,
			FileURL:     *fileURL,
			Skills:      splitList(*skills, ","),
		})
	case "certs":
		runCerts(ctx, c, *op, *id, client.Certification{
			Title:        *title,
			Description:  splitList(*description, ";"),
			DateAcquired: *date,
			FileKey:      *fileKey,
			FileURL:      *fileURL,
		})
	case "blogs":
		runBlogs(ctx, c, *op, *id, client.BlogPost{
			Title:   *title,
			Content: *content,
			Image:   *image,
		})
	default:
		log.Fatalf("provide -resource skills|projects|certs|blogs (or -op upload)")
	}
}

func runSkills(ctx context.Context, c *client.Client, op, id string, payload client.Skill) {
	switch op {
	case "list":
		items, err := c.Skills(ctx)
		exitOnErr(err)
		printJSON(items)
	case "add":
		out, err := c.AddSkill(ctx, payload)
		exitOnErr(err)
		printJSON(out)
	case "edit":
		out, err := c.EditSkill(ctx, id, payload)
		exitOnErr(err)
		printJSON(out)
	case "delete":
		exitOnErr(c.DeleteSkill(ctx, id))
		fmt.Println("deleted")
	default:
		log.Fatalf("unknown op %q", op)
	}
}

func runProjects(ctx context.Context, c *client.Client, op, id string, payload client.Project) {
	switch op {
	case "list":
		items, err := c.Projects(ctx)
		exitOnErr(err)
		printJSON(items)
	case "add":
		out, err := c.AddProject(ctx, payload)
		exitOnErr(err)
		printJSON(out)
	case "edit":
		out, err := c.EditProject(ctx, id, payload)
		exitOnErr(err)
		printJSON(out)
	case "delete":
		exitOnErr(c.DeleteProject(ctx, id))
		fmt.Println("deleted")
	default:
		log.Fatalf("unknown op %q", op)
	}
}

func runCerts(ctx context.Context, c *client.Client, op, id string, payload client.Certification) {
	switch op {
	case "list":
		items, err := c.Certifications(ctx)
		exitOnErr(err)
		printJSON(items)
	case "add":
		out, err := c.AddCertification(ctx, payload)
		exitOnErr(err)
		printJSON(out)
	case "edit":
		out, err := c.EditCertification(ctx, id, payload)
		exitOnErr(err)
		printJSON(out)
	case "delete":
		exitOnErr(c.DeleteCertification(ctx, id))
		fmt.Println("deleted")
	default:
		log.Fatalf("unknown op %q", op)
	}
}

func runBlogs(ctx context.Context, c *client.Client, op, id string, payload client.BlogPost) {
	switch op {
	case "list":
		items, err := c.Blogs(ctx)
		exitOnErr(err)
		printJSON(items)
	case "add":
		out, err := c.AddBlog(ctx, payload)
		exitOnErr(err)
		printJSON(out)
	case "edit":
		out, err := c.EditBlog(ctx, id, payload)
		exitOnErr(err)
		printJSON(out)
	case "delete":
		exitOnErr(c.DeleteBlog(ctx, id))
		fmt.Println("deleted")
	default:
		log.Fatalf("unknown op %q", op)
	}
}

func upload(ctx context.Context, c *client.Client, folder, path string) {
	if folder == "" || path == "" {
		log.Fatalf("upload needs -folder and -file")
	}

	f, err := os.Open(path)
	exitOnErr(err)
	defer f.Close()

	ref, err := c.UploadFile(ctx, folder, filepath.Base(path), "", f)
	exitOnErr(err)
	printJSON(ref)
}

func splitList(s, sep string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	exitOnErr(err)
	fmt.Println(string(b))
}

func exitOnErr(err error) {
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
