// Package docs holds the user manual of cbk as embedded markdown topics.
//
// readme.md is the table of contents: every other file is a topic, listed
// there as "* name: summary".
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// All names every topic at once.
const All = "*"

// Topic is an entry of the table of contents.
type Topic struct {
	Name    string
	Summary string
}

// Index returns the topics listed in readme.md, in their order.
func Index() ([]Topic, error) {
	f, err := files.Open("readme.md")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var index []Topic
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line, ok := strings.CutPrefix(sc.Text(), "* ")
		if !ok {
			continue
		}
		name, summary, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		index = append(index, Topic{Name: strings.TrimSpace(name), Summary: strings.TrimSpace(summary)})
	}
	return index, sc.Err()
}

// GetAllTopics returns the names of the embedded topics, sorted, readme excluded.
func GetAllTopics() ([]string, error) {
	names, err := fs.Glob(files, "*.md")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(names))
	for _, n := range names {
		if n == "readme.md" {
			continue
		}
		topics = append(topics, strings.TrimSuffix(n, ".md"))
	}
	slices.Sort(topics)
	return topics, nil
}

// GetTopic returns the markdown of a topic, or of all of them for All.
func GetTopic(topic string) (string, error) {
	if topic == All {
		return GetTopics(All)
	}
	content, err := files.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates topics, All expanding to every topic.
func GetTopics(topics ...string) (string, error) {
	var names []string
	for _, t := range topics {
		if t != All {
			names = append(names, t)
			continue
		}
		all, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		names = append(names, all...)
	}

	var b strings.Builder
	for _, n := range names {
		content, err := GetTopic(n)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
