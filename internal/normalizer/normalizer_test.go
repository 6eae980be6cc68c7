package normalizer

import "testing"

func TestNormalize(t *testing.T) {
	n := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "http upgraded to https",
			input:    "http://example.com",
			expected: "https://example.com/",
		},
		{
			name:     "https untouched",
			input:    "https://example.com/path",
			expected: "https://example.com/path",
		},
		{
			name:     "non-http scheme untouched",
			input:    "ftp://example.com/file",
			expected: "ftp://example.com/file",
		},
		{
			name:     "twitter aliased to x.com",
			input:    "https://www.twitter.com/a",
			expected: "https://x.com/a",
		},
		{
			name:     "mobile twitter aliased to x.com",
			input:    "https://mobile.twitter.com/a/b",
			expected: "https://x.com/a/b",
		},
		{
			name:     "old reddit aliased to reddit.com",
			input:    "https://old.reddit.com/r/golang",
			expected: "https://reddit.com/r/golang",
		},
		{
			name:     "alias preserves port",
			input:    "http://twitter.com:8080/a",
			expected: "https://x.com:8080/a",
		},
		{
			name:     "unknown subdomain not aliased",
			input:    "https://m.twitter.com/a",
			expected: "https://m.twitter.com/a",
		},
		{
			name:     "host lowercased",
			input:    "https://Example.COM/path",
			expected: "https://example.com/path",
		},
		{
			name:     "mixed-case alias host aliased",
			input:    "https://WWW.Twitter.com/a",
			expected: "https://x.com/a",
		},
		{
			name:     "tracking parameter removed",
			input:    "https://example.com/?utm_source=x&id=5",
			expected: "https://example.com/?id=5",
		},
		{
			name:     "empty query dropped entirely",
			input:    "https://example.com/?utm_source=x",
			expected: "https://example.com/",
		},
		{
			name:     "surviving pairs keep order",
			input:    "https://example.com/?b=2&fbclid=x&a=1",
			expected: "https://example.com/?b=2&a=1",
		},
		{
			name:     "tracking match is case sensitive",
			input:    "https://example.com/?UTM_SOURCE=x",
			expected: "https://example.com/?UTM_SOURCE=x",
		},
		{
			name:     "percent-encoded tracking key removed",
			input:    "https://example.com/?%72ef=x&id=1",
			expected: "https://example.com/?id=1",
		},
		{
			name:     "surviving values kept literally",
			input:    "https://example.com/?q=a%20b&gclid=1",
			expected: "https://example.com/?q=a%20b",
		},
		{
			name:     "fragment removed",
			input:    "https://example.com/#section",
			expected: "https://example.com/",
		},
		{
			name:     "fragment removed after query",
			input:    "https://example.com/p?id=1#frag",
			expected: "https://example.com/p?id=1",
		},
		{
			name:     "trailing slash removed",
			input:    "https://example.com/a/",
			expected: "https://example.com/a",
		},
		{
			name:     "all trailing slashes removed",
			input:    "https://example.com/a///",
			expected: "https://example.com/a",
		},
		{
			name:     "encoded slash is path data, not a trailing slash",
			input:    "https://example.com/a%2F",
			expected: "https://example.com/a%2F",
		},
		{
			name:     "trailing slash after encoded slash trimmed",
			input:    "https://example.com/a%2F/",
			expected: "https://example.com/a%2F",
		},
		{
			name:     "root path preserved",
			input:    "https://example.com/",
			expected: "https://example.com/",
		},
		{
			name:     "bare host gains root path",
			input:    "https://example.com",
			expected: "https://example.com/",
		},
		{
			name:     "all rules combined",
			input:    "http://www.twitter.com/user/?utm_campaign=x&id=7#top",
			expected: "https://x.com/user?id=7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New()

	urls := []string{
		"http://example.com",
		"https://www.twitter.com/a?utm_source=x",
		"https://example.com/a/b/?gclid=1#frag",
		"https://old.reddit.com/r/golang/",
		"https://example.com/?b=2&a=1",
		"https://Example.com/a%2F/",
	}

	for _, u := range urls {
		once := n.Normalize(u)

		twice := n.Normalize(once)
		if twice != once {
			t.Errorf("normalize not idempotent for %q: first %q, second %q", u, once, twice)
		}
	}
}

func TestNormalize_InvalidInputReturnedUnchanged(t *testing.T) {
	n := New()

	inputs := []string{
		"",
		"not a url",
		"://invalid",
		"example.com/path",
		"/relative/path",
		"http://exa mple.com/",
	}

	for _, input := range inputs {
		if got := n.Normalize(input); got != input {
			t.Errorf("normalize(%q) = %q, want input unchanged", input, got)
		}
	}
}

func TestNormalize_ConcurrentUse(t *testing.T) {
	n := New()

	done := make(chan struct{})

	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()

			for j := 0; j < 100; j++ {
				got := n.Normalize("http://www.twitter.com/a?utm_source=x")
				if got != "https://x.com/a" {
					t.Errorf("got %q, want %q", got, "https://x.com/a")

					return
				}
			}
		}()
	}

	for i := 0; i < 8; i++ {
		<-done
	}
}
