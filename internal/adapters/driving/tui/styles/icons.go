package styles

import "strings"

// DefaultIcon is shown for condition text with no known icon.
const DefaultIcon = "🌡"

// keywordIcons is consulted in order when the text is not a known condition.
var keywordIcons = []struct {
	keyword string
	icon    string
}{
	{"thunder", "⛈"},
	{"snow", "🌨"},
	{"sleet", "🌨"},
	{"ice", "🌨"},
	{"rain", "🌧"},
	{"drizzle", "🌧"},
	{"shower", "🌧"},
	{"fog", "🌫"},
	{"mist", "🌫"},
	{"cloud", "☁️"},
	{"overcast", "☁️"},
	{"sun", "☀️"},
	{"clear", "🌙"},
}

// ConditionIcon returns the icon for a WeatherAPI condition description.
// Unknown text falls back to DefaultIcon.
func ConditionIcon(text string) string {
	normalised := strings.ToLower(strings.TrimSpace(text))

	switch normalised {
	case "":
		return DefaultIcon
	case "sunny":
		return "☀️"
	case "clear":
		return "🌙"
	case "partly cloudy":
		return "⛅"
	case "cloudy", "overcast":
		return "☁️"
	case "patchy rain possible", "patchy rain nearby", "light rain shower":
		return "🌦"
	case "blizzard", "heavy snow":
		return "❄️"
	}

	for _, k := range keywordIcons {
		if strings.Contains(normalised, k.keyword) {
			return k.icon
		}
	}
	return DefaultIcon
}
