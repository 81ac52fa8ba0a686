package discovery

import (
	"bufio"
	"bytes"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// GitRemote describes the origin remote of a repository checkout.
type GitRemote struct {
	URL   string
	Owner string
	Repo  string
}

// ReadGitRemote reads the origin URL from .git/config without invoking git.
func ReadGitRemote(fs billy.Filesystem) (GitRemote, bool) {
	content, err := util.ReadFile(fs, ".git/config")
	if err != nil {
		return GitRemote{}, false
	}

	inOrigin := false
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inOrigin = line == `[remote "origin"]`
			continue
		}
		if !inOrigin {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) != "url" {
			continue
		}
		url := strings.TrimSpace(value)
		owner, repo := ParseRemoteURL(url)
		if owner == "" {
			return GitRemote{}, false
		}
		return GitRemote{URL: url, Owner: owner, Repo: repo}, true
	}
	return GitRemote{}, false
}

// ParseRemoteURL extracts owner and repository from SSH
// (git@github.com:org/repo.git) and HTTPS (https://github.com/org/repo.git)
// remote URLs.
func ParseRemoteURL(remoteURL string) (owner, repo string) {
	var path string
	switch {
	case strings.HasPrefix(remoteURL, "git@"):
		parts := strings.SplitN(remoteURL, ":", 2)
		if len(parts) != 2 {
			return "", ""
		}
		path = parts[1]
	case strings.Contains(remoteURL, "://"):
		parts := strings.Split(remoteURL, "/")
		if len(parts) < 5 {
			return "", ""
		}
		path = strings.Join(parts[len(parts)-2:], "/")
	default:
		return "", ""
	}

	owner, repo, ok := strings.Cut(strings.TrimSuffix(path, ".git"), "/")
	if !ok || owner == "" || repo == "" {
		return "", ""
	}
	return owner, repo
}
