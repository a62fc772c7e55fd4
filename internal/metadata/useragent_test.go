package metadata

import "testing"

func TestDetectBrowserInfo(t *testing.T) {
	cases := []struct {
		ua      string
		browser string
		os      string
		device  string
	}{
		{
			ua:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 Edg/124.0",
			browser: "Microsoft Edge (Chromium)",
			os:      "Windows",
			device:  "Desktop",
		},
		{
			ua:      "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1",
			browser: "Apple Safari",
			os:      "MacOS",
			device:  "Mobile",
		},
		{
			ua:      "Mozilla/5.0 (Linux; Android 14; SM-X710) AppleWebKit/537.36 (KHTML, like Gecko) SamsungBrowser/24.0 Chrome/117.0 Safari/537.36",
			browser: "Samsung Browser",
			os:      "Linux",
			device:  "Tablet",
		},
		{
			ua:      "curl/8.5.0",
			browser: "Unknown Browser",
			os:      "Unknown OS",
			device:  "Desktop",
		},
	}
	for _, tc := range cases {
		info := DetectBrowserInfo(tc.ua)
		if info.Browser != tc.browser || info.OS != tc.os || info.DeviceType != tc.device {
			t.Fatalf("%q: got %+v", tc.ua, info)
		}
	}
}
