package metadata

import (
	"regexp"
	"runtime"
	"strings"

	"github.com/verte-zerg/doxsim/internal/model"
)

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`Mobile|Android|iP(hone|od)|IEMobile|BlackBerry|Kindle|Silk-Accelerated|(hpw|web)OS|Opera M(obi|ini)`)
)

// DefaultUserAgent returns a browser-like user agent for the host platform.
func DefaultUserAgent() string {
	switch runtime.GOOS {
	case "windows":
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	case "darwin":
		return "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"
	case "android":
		return "Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Mobile Safari/537.36"
	default:
		return "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"
	}
}

// DetectBrowserInfo classifies a user agent string.
func DetectBrowserInfo(userAgent string) model.BrowserInfo {
	return model.BrowserInfo{
		UserAgent:  userAgent,
		Browser:    DetectBrowser(userAgent),
		OS:         DetectOS(userAgent),
		DeviceType: DetectDeviceType(userAgent),
	}
}

// DetectBrowser names the browser. Order matters: Chromium-based agents also
// mention Chrome and Safari.
func DetectBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Firefox"):
		return "Mozilla Firefox"
	case strings.Contains(ua, "SamsungBrowser"):
		return "Samsung Browser"
	case strings.Contains(ua, "Opera"), strings.Contains(ua, "OPR"):
		return "Opera"
	case strings.Contains(ua, "Trident"):
		return "Internet Explorer"
	case strings.Contains(ua, "Edge"):
		return "Microsoft Edge (Legacy)"
	case strings.Contains(ua, "Edg"):
		return "Microsoft Edge (Chromium)"
	case strings.Contains(ua, "Chrome"):
		return "Google Chrome"
	case strings.Contains(ua, "Safari"):
		return "Apple Safari"
	default:
		return "Unknown Browser"
	}
}

// DetectOS names the operating system.
func DetectOS(ua string) string {
	switch {
	case strings.Contains(ua, "Win"):
		return "Windows"
	case strings.Contains(ua, "Mac"):
		return "MacOS"
	case strings.Contains(ua, "Linux"):
		return "Linux"
	case strings.Contains(ua, "Android"):
		return "Android"
	case strings.Contains(ua, "iPhone"), strings.Contains(ua, "iPad"):
		return "iOS"
	default:
		return "Unknown OS"
	}
}

// DetectDeviceType returns Tablet, Mobile or Desktop.
func DetectDeviceType(ua string) string {
	lower := strings.ToLower(ua)
	if tabletPattern.MatchString(ua) || (strings.Contains(lower, "android") && !strings.Contains(lower, "mobi")) {
		return "Tablet"
	}
	if mobilePattern.MatchString(ua) {
		return "Mobile"
	}
	return "Desktop"
}
