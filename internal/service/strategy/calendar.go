// internal/service/strategy/calendar.go

// Package strategy expands an analyzed trend list into a content calendar.
// Everything here is pure and offline.
package strategy

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"contentengine/internal/domain/trend"
)

const calendarDays = 30

var contentFormats = []string{
	"Reel", "Short", "Post", "Story", "Carousel", "IGTV", "Thread",
}

var postingTimes = []string{
	"6:00 AM", "9:00 AM", "12:00 PM", "3:00 PM", "6:00 PM", "9:00 PM",
}

var engagementHooks = []string{
	"Challenge", "Tutorial", "Behind-the-scenes", "Tips", "Story", "Trend",
}

var platformMapping = map[string]string{
	"google_trends": "Instagram",
	"reddit":        "TikTok",
}

var fixedHashtags = []string{"#trending", "#viral", "#content"}

var ctas = []string{
	"Double tap if you agree! 💙",
	"Save this for later! 📌",
	"Share your thoughts below! 👇",
	"Tag someone who needs this! 🔥",
	"Follow for more trending content! ✨",
}

// GenerateCalendar expands the top trends into a 30-day calendar starting
// at startDate. Trends and the format/time/hook pools are assigned
// cyclically by day index, so output is fully deterministic.
func GenerateCalendar(topTrends []trend.Item, targetAudience string, startDate time.Time) ([]trend.CalendarEntry, error) {
	if len(topTrends) == 0 {
		return nil, trend.NewValidationError("top_trends", "no trends provided for calendar generation")
	}

	calendar := make([]trend.CalendarEntry, 0, calendarDays)
	for day := 0; day < calendarDays; day++ {
		date := startDate.AddDate(0, 0, day)
		t := topTrends[day%len(topTrends)]

		calendar = append(calendar, trend.CalendarEntry{
			Date:        date.Format("2006-01-02"),
			Title:       fmt.Sprintf("%s - %s Edition", t.Title, targetAudience),
			Format:      contentFormats[day%len(contentFormats)],
			Platform:    recommendPlatform(t.Platform),
			BestTime:    postingTimes[day%len(postingTimes)],
			Hook:        engagementHooks[day%len(engagementHooks)],
			Description: fmt.Sprintf("Create content around %s targeting %s", t.Title, targetAudience),
			Hashtags:    generateHashtags(t.Title),
			CTA:         generateCTA(t.Title),
		})
	}

	return calendar, nil
}

// recommendPlatform maps a trend's source platform to a posting platform.
func recommendPlatform(sourcePlatform string) string {
	if platform, ok := platformMapping[sourcePlatform]; ok {
		return platform
	}
	return "Instagram"
}

// generateHashtags derives tags from words longer than three characters in
// the title plus the fixed set. The fixed tags are always present and the
// total never exceeds ten, so title-derived tags are capped at seven.
func generateHashtags(title string) []string {
	maxTitleTags := 10 - len(fixedHashtags)

	hashtags := []string{}
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if len(hashtags) >= maxTitleTags {
			break
		}
		if len(word) > 3 {
			hashtags = append(hashtags, "#"+word)
		}
	}
	return append(hashtags, fixedHashtags...)
}

// generateCTA picks a call-to-action by a stable hash of the title, so the
// same title always gets the same CTA within a run.
func generateCTA(title string) string {
	h := fnv.New32a()
	h.Write([]byte(title))
	return ctas[int(h.Sum32())%len(ctas)]
}
