package gs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// releaseFeedURL lists the latest upstream Ghostscript release assets.
const releaseFeedURL = "https://api.github.com/repos/ArtifexSoftware/ghostpdl-downloads/releases/latest"

var (
	// ErrNotFound reports that no usable executable could be located.
	ErrNotFound = errors.New("ghostscript executable not found")
	// ErrInstallUnsupported reports that automatic installation is not
	// available on this platform. The upstream feed only publishes Windows
	// installers.
	ErrInstallUnsupported = errors.New("automatic ghostscript install is only supported on windows")
)

// Installer downloads and runs the upstream Ghostscript installer when the
// binary cannot be located. It is consumed by the CLI and the web interface
// before a batch starts, never by the job runner.
type Installer struct {
	finder *Finder
	client *retryablehttp.Client
	log    *logrus.Logger
}

// NewInstaller returns an Installer re-detecting through the given Finder.
func NewInstaller(finder *Finder, log *logrus.Logger) *Installer {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 60 * time.Second
	client.Logger = nil
	return &Installer{finder: finder, client: client, log: log}
}

// EnsureInstalled returns the path of a usable executable, installing one
// first when autoInstall is set and nothing can be located.
func (i *Installer) EnsureInstalled(ctx context.Context, autoInstall bool) (string, error) {
	if p, ok := i.finder.Locate(); ok {
		return p, nil
	}
	if !autoInstall {
		return "", ErrNotFound
	}
	if runtime.GOOS != "windows" {
		return "", ErrInstallUnsupported
	}

	url, err := i.latestInstallerURL(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve installer download: %w", err)
	}
	i.log.WithField("url", url).Info("Downloading Ghostscript installer")

	installer, err := i.download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download installer: %w", err)
	}
	defer os.Remove(installer)

	if err := runInstaller(ctx, installer); err != nil {
		return "", fmt.Errorf("run installer: %w", err)
	}

	if p, ok := i.finder.Locate(); ok {
		i.log.WithField("path", p).Info("Ghostscript installed")
		return p, nil
	}
	return "", fmt.Errorf("%w after install", ErrNotFound)
}

// latestInstallerURL picks the release asset matching this machine's
// architecture, e.g. gs10040w64.exe.
func (i *Installer) latestInstallerURL(ctx context.Context) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, releaseFeedURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "pdf-kompressor")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := i.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release feed returned %s", resp.Status)
	}

	var release struct {
		Assets []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	pattern := regexp.MustCompile(`(?i)gs\d{5}` + archTag() + `\.exe$`)
	for _, a := range release.Assets {
		if pattern.MatchString(a.Name) && strings.HasSuffix(a.BrowserDownloadURL, ".exe") {
			return a.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no %s installer asset in latest release", archTag())
}

func (i *Installer) download(ctx context.Context, url string) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %s", resp.Status)
	}

	f, err := os.CreateTemp("", "gs-setup-*.exe")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// runInstaller tries the NSIS-style silent switch first, then falls back to
// an interactive run.
func runInstaller(ctx context.Context, path string) error {
	if err := exec.CommandContext(ctx, path, "/S").Run(); err == nil {
		return nil
	}
	return exec.CommandContext(ctx, path).Run()
}

func archTag() string {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return "w64"
	default:
		return "w32"
	}
}
