package remark

import (
	"regexp"
	"strings"
)

// MediaKind tags the variant held by a Media value.
type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is the first image or bare-link reference found in a section.
type Media struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url,omitempty"`
	Alt  string    `json:"alt,omitempty"`
}

// Section is one heading-delimited slice of the Markdown document.
type Section struct {
	Content string `json:"content"`
	Media   Media  `json:"media"`
}

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+\S`)
	imagePattern   = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	videoPattern   = regexp.MustCompile(`^\[(.*?)\]\((.*?)\)$`)
	commentPattern = regexp.MustCompile(`<!--.*?-->`)
	newlineRuns    = regexp.MustCompile(`\n{2,}`)
)

// SplitSections groups Markdown lines under headings of level <= maxLevel.
// Lines before the first qualifying heading are discarded. Each section
// records the first media reference it contains: an image anywhere in a
// line wins over a line that is entirely a link (treated as video). A
// non-positive maxLevel defaults to 1.
func SplitSections(markdown string, maxLevel int) []Section {
	if maxLevel <= 0 {
		maxLevel = 1
	}

	var sections []Section
	var lines []string
	media := Media{Kind: MediaNone}
	inSection := false

	flush := func() {
		content := strings.Join(lines, "\n")
		content = commentPattern.ReplaceAllString(content, "")
		content = newlineRuns.ReplaceAllString(content, "\n")
		content = strings.TrimSpace(content)
		if content != "" {
			sections = append(sections, Section{Content: content, Media: media})
		}
		lines = nil
		media = Media{Kind: MediaNone}
	}

	scanMedia := func(line string) {
		if media.Kind != MediaNone {
			return
		}
		if im := imagePattern.FindStringSubmatch(line); im != nil {
			media = Media{Kind: MediaImage, URL: im[2], Alt: im[1]}
		} else if vm := videoPattern.FindStringSubmatch(line); vm != nil {
			media = Media{Kind: MediaVideo, URL: vm[2]}
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		if m := headingPattern.FindStringSubmatch(line); m != nil && len(m[1]) <= maxLevel {
			if inSection {
				flush()
			}
			inSection = true
			lines = append(lines, line)
			// The heading is the section's first line and may itself
			// carry an image, e.g. an img inside an h1.
			scanMedia(line)
			continue
		}
		if !inSection {
			continue
		}
		lines = append(lines, line)
		scanMedia(line)
	}

	if inSection {
		flush()
	}
	return sections
}
