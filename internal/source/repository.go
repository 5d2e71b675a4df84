package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/getlawrence/techprofile/internal/domain"
)

var repoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	regexp.MustCompile(`^git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`),
	regexp.MustCompile(`^https://www\.github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`),
}

// ParseRepositoryURL extracts owner and repository name from a GitHub URL.
func ParseRepositoryURL(url string) (owner, repo string, err error) {
	url = strings.TrimSpace(url)
	for _, re := range repoURLPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return m[1], m[2], nil
		}
	}
	return "", "", fmt.Errorf("unsupported repository url %q: %w", url, domain.ErrInvalidInput)
}

// RepositoryInfo builds repository metadata from a URL. Fields the URL cannot
// supply are left zero.
func RepositoryInfo(url string) (*domain.RepositoryInfo, error) {
	_, repo, err := ParseRepositoryURL(url)
	if err != nil {
		return nil, err
	}
	return &domain.RepositoryInfo{URL: strings.TrimSpace(url), Name: repo, Topics: []string{}}, nil
}
