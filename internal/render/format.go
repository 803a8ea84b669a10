package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// TimestampLayout renders as MM/DD/YY H:MM AM/PM.
const TimestampLayout = "01/02/06 3:04 PM"

// Hostname strips every leading scheme and "www." from a story URL, so the
// result has none left to strip.
func Hostname(url string) string {
	host := url
	for {
		before := host
		for _, p := range []string{"https://", "http://", "www."} {
			for strings.HasPrefix(host, p) {
				host = host[len(p):]
			}
		}
		if host == before {
			return host
		}
	}
}

// ScoreLabel returns "1 point" or "{n} points".
func ScoreLabel(score int) string {
	return plural(score, "point")
}

// CommentLabel returns "1 comment" or "{n} comments" for n child IDs.
func CommentLabel(n int) string {
	return plural(n, "comment")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Timestamp formats t in loc with TimestampLayout. A nil loc means UTC.
func Timestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(TimestampLayout)
}

// TimeAgo renders a unix time relative to now ("3 hours ago").
func TimeAgo(unix int64) string {
	return humanize.Time(time.Unix(unix, 0))
}

// Link wraps text in an OSC 8 terminal hyperlink. An empty href still
// produces a link sequence, which terminals render as plain text.
func Link(href, text string) string {
	return termenv.Hyperlink(href, text)
}

// FromSiteURL is the HN listing of stories from host.
func FromSiteURL(host string) string {
	return "https://news.ycombinator.com/from?site=" + host
}

// ItemURL is the HN discussion page of an item.
func ItemURL(id int) string {
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
}
