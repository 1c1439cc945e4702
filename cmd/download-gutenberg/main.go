package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// book describes one public-domain text to fetch.
type book struct {
	ID       string
	Title    string
	Category string
	URL      string
}

// Plain-text mirrors from Project Gutenberg. Categories follow the
// bookshelf each title is filed under.
var books = []book{
	{ID: "pg84", Title: "Frankenstein", Category: "gothic", URL: "https://www.gutenberg.org/cache/epub/84/pg84.txt"},
	{ID: "pg345", Title: "Dracula", Category: "gothic", URL: "https://www.gutenberg.org/cache/epub/345/pg345.txt"},
	{ID: "pg1342", Title: "Pride and Prejudice", Category: "romance", URL: "https://www.gutenberg.org/cache/epub/1342/pg1342.txt"},
	{ID: "pg158", Title: "Emma", Category: "romance", URL: "https://www.gutenberg.org/cache/epub/158/pg158.txt"},
	{ID: "pg1661", Title: "The Adventures of Sherlock Holmes", Category: "detective", URL: "https://www.gutenberg.org/cache/epub/1661/pg1661.txt"},
	{ID: "pg2852", Title: "The Hound of the Baskervilles", Category: "detective", URL: "https://www.gutenberg.org/cache/epub/2852/pg2852.txt"},
	{ID: "pg36", Title: "The War of the Worlds", Category: "scifi", URL: "https://www.gutenberg.org/cache/epub/36/pg36.txt"},
	{ID: "pg35", Title: "The Time Machine", Category: "scifi", URL: "https://www.gutenberg.org/cache/epub/35/pg35.txt"},
}

// doc is the JSONL line format consumed by termrel-analyze.
type doc struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

func main() {
	out := flag.String("out", "testdata/gutenberg/docs.jsonl", "Output JSONL path")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output file: %v", err)
	}
	defer outFile.Close()

	encoder := json.NewEncoder(outFile)
	downloaded := 0

	for _, b := range books {
		text, err := fetch(b.URL)
		if err != nil {
			log.Printf("fetch %s: %v", b.Title, err)
			continue
		}

		if err := encoder.Encode(doc{
			ID:       b.ID,
			Title:    b.Title,
			Category: b.Category,
			Text:     text,
		}); err != nil {
			log.Printf("encode %s: %v", b.Title, err)
			continue
		}
		downloaded++
		log.Printf("downloaded %s (%s)", b.Title, b.Category)

		// Be nice to the mirror
		time.Sleep(500 * time.Millisecond)
	}

	if downloaded == 0 {
		log.Fatal("no books downloaded")
	}
	log.Printf("wrote %d books to %s", downloaded, *out)
}

func fetch(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	text := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "html") {
		text = stripHTML(text)
	}
	return trimGutenbergBoilerplate(text), nil
}

// stripHTML extracts the text content from an HTML page.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}

// trimGutenbergBoilerplate drops the license header and footer that
// would otherwise dominate every category's vocabulary.
func trimGutenbergBoilerplate(text string) string {
	const (
		startMarker = "*** START OF"
		endMarker   = "*** END OF"
	)

	if idx := strings.Index(text, startMarker); idx >= 0 {
		if nl := strings.IndexByte(text[idx:], '\n'); nl >= 0 {
			text = text[idx+nl+1:]
		}
	}
	if idx := strings.Index(text, endMarker); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
