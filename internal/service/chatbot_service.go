package service

import "strings"

// ChatbotService answers plant-care questions by scanning an ordered list of
// keyword rules; the first match wins. No external model is involved.
type ChatbotService struct {
	rules    []chatRule
	fallback []chatRule
}

type chatRule struct {
	match    func(string) bool
	response string
}

func contains(keyword string) func(string) bool {
	return func(msg string) bool { return strings.Contains(msg, keyword) }
}

func containsAll(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, k := range keywords {
			if !strings.Contains(msg, k) {
				return false
			}
		}
		return true
	}
}

func containsAny(keywords ...string) func(string) bool {
	return func(msg string) bool {
		for _, k := range keywords {
			if strings.Contains(msg, k) {
				return true
			}
		}
		return false
	}
}

const chatbotDefault = "🌱 **Plant Care Assistant:** I can help with plant care advice! Try asking about:\n• Watering schedules\n• Plant recommendations\n• Problem diagnosis (yellow leaves, pests)\n• Specific plant care (succulents, orchids, etc.)\n• Light and soil requirements"

// EmptyMessageResponse is returned when no question was asked.
const EmptyMessageResponse = "Please ask a question about plants!"

// NewChatbotService builds the rule table. Multi-word phrases come before
// their single-word prefixes so "how often water" is not swallowed by
// "water".
func NewChatbotService() *ChatbotService {
	return &ChatbotService{
		rules: []chatRule{
			{contains("how often water"), "💧 **Watering Frequency:** It depends on the plant type: Succulents (every 2-3 weeks), Tropical plants (weekly), Most houseplants (when top soil is dry). Always check soil moisture first!"},
			{contains("overwater"), "🚫 **Overwatering Signs:** Yellow leaves, mushy stems, moldy soil. Solution: Let soil dry completely, improve drainage, remove affected leaves."},
			{contains("underwater"), "🏜️ **Underwatering Signs:** Dry crispy leaves, drooping, soil pulling from pot edges. Solution: Water thoroughly until it drains out bottom."},
			{contains("which plant"), "🏡 **Best Indoor Plants:** Snake Plant (low light), Pothos (easy care), Spider Plant (pet-safe), Peace Lily (blooms indoors), ZZ Plant (neglect-tolerant)."},
			{contains("home plant"), "🌿 **Home-Friendly Plants:** For beginners: Snake Plant, Pothos, Spider Plant. For low light: ZZ Plant, Chinese Evergreen. For air purification: Peace Lily, Boston Fern."},
			{contains("indoor plant"), "🪴 **Top Indoor Plants:** 1. Snake Plant - thrives on neglect, 2. Pothos - grows anywhere, 3. Spider Plant - purifies air, 4. Peace Lily - shows when thirsty, 5. ZZ Plant - low light champion!"},
			{contains("beginner plant"), "🌱 **Beginner-Friendly:** Start with Snake Plant, Pothos, Spider Plant, or ZZ Plant. They're forgiving and easy to care for!"},
			{contains("low light plant"), "💡 **Low Light Plants:** Snake Plant, ZZ Plant, Pothos, Chinese Evergreen, Peace Lily, Philodendron. Perfect for rooms with north-facing windows!"},
			{contains("yellow"), "🍂 **Yellow Leaves Solution:** Usually means overwatering! Check soil moisture. Let soil dry between waterings. Could also be nutrient deficiency or natural shedding."},
			{contains("brown"), "🔴 **Brown Tips/Edges:** Caused by low humidity, underwatering, or fertilizer burn. Increase humidity, water consistently, flush soil occasionally."},
			{contains("droop"), "😴 **Drooping Plants:** Could be underwatering (dry soil) or overwatering (soggy soil). Check soil and adjust watering. Might need more light."},
			{contains("die"), "😢 **Reviving Plants:** Check roots for rot, ensure proper drainage, adjust light. Repot with fresh soil if needed. Trim dead leaves."},
			{contains("succulent"), "🌵 **Succulent Care:** Bright direct light, infrequent watering (every 2-3 weeks), excellent drainage. Use succulent/cactus mix."},
			{contains("orchid"), "🌸 **Orchid Care:** Bright indirect light, water once weekly, use orchid bark mix. Keep in stable temperature away from drafts."},
			{contains("rose"), "🌹 **Rose Care:** Full sun (6+ hours daily), well-draining soil, regular watering. Prune in early spring, fertilize during growing season."},
			{contains("bonsai"), "🎋 **Bonsai Care:** Bright indirect light, consistent watering (don't let dry completely), regular pruning. Use bonsai-specific soil."},
			{contains("water"), "💧 **Watering Guide:** Most plants prefer when the top 1-2 inches of soil dry out between waterings. Stick your finger in the soil to test! Overwatering is the #1 plant killer."},
			{contains("soil"), "🟫 **Soil Tips:** Well-draining potting mix is essential. Add perlite for drainage. Most plants hate soggy soil!"},
			{contains("fertiliz"), "🌿 **Fertilizing:** Use balanced liquid fertilizer every 2-4 weeks in spring/summer. Reduce in fall/winter. Don't over-fertilize!"},
			{contains("sunlight"), "☀️ **Light Requirements:** Bright indirect light is ideal. South/east windows are best. Direct sun can scorch leaves."},
			{contains("repot"), "🪴 **Repotting:** Do in spring, pot 2 inches larger. Water thoroughly after. Refresh soil annually."},
			{contains("propagat"), "✂️ **Propagation:** Many plants grow from cuttings in water or soil. Try with Pothos, Spider Plant, or Snake Plant!"},
			{contains("bug"), "🐛 **Pest Control:** For aphids/spider mites, use neem oil or insecticidal soap. Isolate affected plants. Wipe leaves regularly."},
			{contains("fungus"), "🍄 **Fungus Issues:** Improve air circulation, reduce watering, remove affected parts. Use fungicide if severe."},
		},
		fallback: []chatRule{
			{containsAll("good", "plant"), "🏡 **Best Home Plants:** Snake Plant (low maintenance), Pothos (versatile), Peace Lily (blooms + air purifying), Spider Plant (pet-safe), ZZ Plant (low light tolerant). All are beginner-friendly!"},
			{func(msg string) bool {
				return containsAny("keep", "grow")(msg) && strings.Contains(msg, "home")
			}, "🌿 **Easy Home Plants:** Snake Plant, Pothos, Spider Plant, ZZ Plant, Peace Lily. These adapt well to indoor conditions and are perfect for beginners!"},
			{containsAny("suitable", "recommend"), "🪴 **Plant Recommendations:** For low light: Snake Plant, ZZ Plant. For easy care: Pothos, Spider Plant. For air purification: Peace Lily, Boston Fern. For beginners: all of the above!"},
			{containsAny("care", "tip"), "💡 **Essential Plant Care:** 1. Right light for plant type, 2. Water when soil is dry, 3. Use well-draining soil, 4. Fertilize in growing season, 5. Watch for pests regularly."},
		},
	}
}

// Reply answers a question. Rules are evaluated in declaration order, then
// the looser heuristics, then a default help response.
func (s *ChatbotService) Reply(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return EmptyMessageResponse
	}

	lower := strings.ToLower(message)
	for _, rule := range s.rules {
		if rule.match(lower) {
			return rule.response
		}
	}
	for _, rule := range s.fallback {
		if rule.match(lower) {
			return rule.response
		}
	}
	return chatbotDefault
}
